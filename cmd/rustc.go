package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BoxDragon/unreal-rust-compile/cargo"
	"github.com/BoxDragon/unreal-rust-compile/config"
	"github.com/BoxDragon/unreal-rust-compile/linkargs"
	"github.com/BoxDragon/unreal-rust-compile/logging"

	"github.com/ComedicChimera/olive"
)

// execRustcCommand executes the `rustc` subcommand: it builds the crate with
// cargo and splits the printed link command into the linker and archiver
// argument files.
func execRustcCommand(result *olive.ArgParseResult, cargoArgs []string) int {
	if len(cargoArgs) == 0 {
		logging.LogConfigError("Usage", "expected cargo arguments after `--`")
		return finish()
	}

	linkerPath := result.Arguments["output_linker_file"].(string)
	archiverPath := result.Arguments["output_lib_link_file"].(string)

	crateDir, ok := crateDirArg(result)
	if !ok {
		return 1
	}

	proj, prof, err := config.LoadProject(crateDir, stringArg(result, "profile"))
	if err != nil {
		logging.LogConfigError("Project", err.Error())
		return finish()
	}

	ctx := context.Background()
	runner := &cargo.Runner{Cargo: proj.Cargo, Dir: crateDir, Env: prof.Env}
	if !checkToolchain(ctx, runner, proj, prof) {
		return finish()
	}

	args := make([]string, 0, len(prof.CargoArgs)+len(cargoArgs))
	args = append(args, prof.CargoArgs...)
	args = append(args, cargoArgs...)

	logging.BeginPhase("Building")
	out, err := runner.Rustc(ctx, args)
	if err != nil {
		logging.EndPhase(false)

		var exitErr *cargo.ExitError
		if errors.As(err, &exitErr) {
			logging.LogToolOutput(exitErr.Stderr)
		}

		logging.LogBuildError("Cargo", err)
		return finish()
	}
	logging.EndPhase(true)

	writeLinkArgs(out, linkargs.Options{
		LinkerPath:   linkerPath,
		ArchiverPath: archiverPath,
		FrontEnds:    proj.FrontEnds,
		DefFileName:  proj.DefFileName,
	})

	return finish()
}

// writeLinkArgs echoes the diagnostics of a successful cargo run and writes the
// argument files for the link command it printed.  Failures are logged.
func writeLinkArgs(out *cargo.Output, opts linkargs.Options) {
	// rustc warnings go to stderr even when the build succeeds
	logging.LogToolOutput(out.Stderr)

	res, err := linkargs.Process(out.Stdout, opts)
	if err != nil {
		logLinkArgsError(err)
		return
	}

	if res.Found {
		logging.LogInfo("Link Arguments", fmt.Sprintf("wrote %d linker and %d archiver arguments", res.LinkerLines, res.ArchiverLines))
	} else {
		logging.LogInfo("Link Arguments", "no linker arguments found")
	}
}

// logLinkArgsError logs a failure to write the argument files.  An invalid
// destination is a bug in the classifier rather than a problem with the build.
func logLinkArgsError(err error) {
	if errors.Is(err, linkargs.ErrInvalidDestination) {
		logging.LogFatal(err.Error())
	} else {
		logging.LogBuildError("Link Argument", err)
	}
}

// checkToolchain verifies that the configured cargo can print link arguments.
// It returns false if the build should not proceed.
func checkToolchain(ctx context.Context, runner *cargo.Runner, proj *config.Project, prof *config.BuildProfile) bool {
	v, err := runner.Version(ctx)
	if err != nil {
		var exitErr *cargo.ExitError
		if errors.As(err, &exitErr) {
			logging.LogToolOutput(exitErr.Stderr)
		}

		logging.LogBuildError("Toolchain", err)
		return false
	}

	if err := cargo.CheckVersion(v, proj.MinCargoVersion); err != nil {
		logging.LogBuildError("Toolchain", err)
		return false
	}

	if !cargo.IsNightly(v) && !hasBootstrap(prof) {
		logging.LogBuildWarning("Toolchain", fmt.Sprintf("cargo %s is not a nightly toolchain: `-Z unstable-options` requires nightly or RUSTC_BOOTSTRAP=1", v))
	}

	return true
}

// hasBootstrap returns whether RUSTC_BOOTSTRAP is set for the build.
func hasBootstrap(prof *config.BuildProfile) bool {
	if _, ok := prof.Env["RUSTC_BOOTSTRAP"]; ok {
		return true
	}

	_, ok := os.LookupEnv("RUSTC_BOOTSTRAP")
	return ok
}
