package cmd

import (
	"os"
	"path/filepath"

	"github.com/BoxDragon/unreal-rust-compile/common"
	"github.com/BoxDragon/unreal-rust-compile/logging"

	"github.com/ComedicChimera/olive"
)

// passthroughMarker separates this tool's arguments from the arguments that are
// passed to cargo unchanged.
const passthroughMarker = "--"

// Execute runs the main `unreal_rust_compile` application and returns the
// process exit code.
func Execute() int {
	args, cargoArgs := splitPassthrough(os.Args)

	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI(common.ToolName, "runs cargo and cbindgen on a crate for Unreal Engine's build system", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	genCmd := cli.AddSubcommand("gen-bindings", "generate the C header for a crate using cbindgen", true)
	genCmd.AddStringArg("crate_dir", "cd", "the crate directory", true)
	genCmd.AddStringArg("output_header_file", "oh", "the header file to write", true)

	rustcCmd := cli.AddSubcommand("rustc", "build a crate and write its link arguments (cargo arguments follow `--`)", true)
	rustcCmd.AddStringArg("output_linker_file", "ol", "the linker argument file to write", true)
	rustcCmd.AddStringArg("output_lib_link_file", "oa", "the archiver argument file to write", true)
	rustcCmd.AddStringArg("crate_dir", "cd", "the crate directory (defaults to the working directory)", false)
	rustcCmd.AddStringArg("profile", "p", "the name of the build profile to use", false)

	srcCmd := cli.AddSubcommand("source-files", "list all source files required to compile a crate", true)
	srcCmd.AddStringArg("crate_dir", "cd", "the crate directory", true)

	initCmd := cli.AddSubcommand("init", "create a project file in the working directory", true)
	initCmd.AddPrimaryArg("crate-name", "the name of the crate", false)

	cli.AddSubcommand("version", "print the tool version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	loglevel := result.Arguments["loglevel"].(string)
	logging.Initialize(loglevel)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "gen-bindings":
		return execGenBindingsCommand(subResult)
	case "rustc":
		return execRustcCommand(subResult, cargoArgs)
	case "source-files":
		return execSourceFilesCommand(subResult, loglevel)
	case "init":
		return execInitCommand(subResult)
	case "version":
		logging.PrintInfoMessage(common.ToolName+" Version", common.ToolVersion)
	}

	return 0
}

// splitPassthrough splits the command line at the first `--`.  Everything after
// it is returned separately so that the argument parser never sees it.
func splitPassthrough(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == passthroughMarker {
			return args[:i], args[i+1:]
		}
	}

	return args, nil
}

// finish reports the outcome of the run and returns the matching exit code.
func finish() int {
	logging.ReportFinished()

	if logging.ShouldProceed() {
		return 0
	}

	return 1
}

// stringArg returns the value of an optional string argument.
func stringArg(result *olive.ArgParseResult, name string) string {
	if val, ok := result.Arguments[name]; ok {
		return val.(string)
	}

	return ""
}

// crateDirArg returns the absolute crate directory given on the command line.
// If no directory was given, the working directory is used.
func crateDirArg(result *olive.ArgParseResult) (string, bool) {
	crateDir := stringArg(result, "crate_dir")
	if crateDir == "" {
		crateDir = "."
	}

	absDir, err := filepath.Abs(crateDir)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return "", false
	}

	return absDir, true
}
