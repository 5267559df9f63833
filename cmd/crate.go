package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BoxDragon/unreal-rust-compile/bindgen"
	"github.com/BoxDragon/unreal-rust-compile/cargo"
	"github.com/BoxDragon/unreal-rust-compile/config"
	"github.com/BoxDragon/unreal-rust-compile/logging"

	"github.com/ComedicChimera/olive"
)

// execGenBindingsCommand executes the `gen-bindings` subcommand.  The header
// is only rewritten if its content changed so that Unreal does not rebuild the
// code that includes it.
func execGenBindingsCommand(result *olive.ArgParseResult) int {
	headerPath := result.Arguments["output_header_file"].(string)

	crateDir, ok := crateDirArg(result)
	if !ok {
		return 1
	}

	proj, _, err := config.LoadProject(crateDir, "")
	if err != nil {
		logging.LogConfigError("Project", err.Error())
		return finish()
	}

	logging.BeginPhase("Generating")
	data, err := bindgen.Generate(context.Background(), proj.CBindgen, crateDir)
	if err != nil {
		logging.EndPhase(false)

		var genErr *bindgen.GenerateError
		if errors.As(err, &genErr) {
			logging.LogToolOutput(genErr.Stderr)
		}

		logging.LogBuildError("Bindings", err)
		return finish()
	}
	logging.EndPhase(true)

	change, err := bindgen.WriteHeader(headerPath, data)
	if err != nil {
		logging.LogBuildError("Bindings", err)
		return finish()
	}

	if change.Changed {
		fmt.Println("Header changed")
		logging.LogInfo("Bindings", fmt.Sprintf("%d lines added, %d lines removed", change.Added, change.Removed))
	}

	return finish()
}

// execSourceFilesCommand executes the `source-files` subcommand.  It prints one
// file per line for the build system to read, so informational output is
// suppressed.
func execSourceFilesCommand(result *olive.ArgParseResult, loglevel string) int {
	if logging.LogLevelFromName(loglevel) > logging.LogLevelError {
		logging.Initialize("error")
	}

	crateDir, ok := crateDirArg(result)
	if !ok {
		return 1
	}

	proj, prof, err := config.LoadProject(crateDir, "")
	if err != nil {
		logging.LogConfigError("Project", err.Error())
		return 1
	}

	runner := &cargo.Runner{Cargo: proj.Cargo, Dir: crateDir, Env: prof.Env}
	meta, err := runner.Metadata(context.Background())
	if err != nil {
		var exitErr *cargo.ExitError
		if errors.As(err, &exitErr) {
			logging.LogToolOutput(exitErr.Stderr)
		}

		logging.LogBuildError("Cargo", err)
		return 1
	}

	files, err := cargo.SourceFiles(cargo.LocalLibraryDirs(meta))
	if err != nil {
		logging.LogBuildError("Source Files", err)
		return 1
	}

	for _, file := range files {
		fmt.Println(file)
	}

	return 0
}

// execInitCommand executes the `init` subcommand.
func execInitCommand(result *olive.ArgParseResult) int {
	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return 1
	}

	name, ok := result.PrimaryArg()
	if !ok || name == "" {
		name = filepath.Base(workDir)
	}

	if err := config.InitProject(name, workDir); err != nil {
		logging.PrintErrorMessage("Project Init Error", err)
		return 1
	}

	return 0
}
