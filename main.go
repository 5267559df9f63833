package main

import (
	"os"

	"github.com/BoxDragon/unreal-rust-compile/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
