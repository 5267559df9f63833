// Package cargo runs cargo on the crate being built and interprets its output.
package cargo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/BoxDragon/unreal-rust-compile/logging"

	"github.com/kballard/go-shellquote"
	"golang.org/x/sys/execabs"
)

// Runner runs cargo commands in a crate directory.
type Runner struct {
	// The cargo executable.
	Cargo string

	// The crate directory cargo is run in.
	Dir string

	// Additional environment variables.  These override inherited variables
	// with the same name.
	Env map[string]string
}

// Output is the captured output of a cargo command.
type Output struct {
	Stdout string
	Stderr string
}

// ExitError is returned when cargo runs but exits with a non-zero status.
type ExitError struct {
	Code   int
	Stderr string
}

func (ee *ExitError) Error() string {
	return fmt.Sprintf("cargo exited with status %d", ee.Code)
}

// Rustc runs `cargo rustc` with the given arguments followed by the rustc
// arguments that make it print the link command.  The output is returned even
// if cargo fails.
func (r *Runner) Rustc(ctx context.Context, args []string) (*Output, error) {
	// a fresh /VERSION forces rustc to relink (and so print the link command)
	// even when nothing else changed
	tag := uint16(rand.Intn(1 << 16))

	env := map[string]string{"CARGO_INCREMENTAL": "1"}
	for k, v := range r.Env {
		env[k] = v
	}

	return r.run(ctx, env, RustcArgs(args, tag)...)
}

// RustcArgs builds the full argument list of a `cargo rustc` run.
func RustcArgs(args []string, versionTag uint16) []string {
	full := make([]string, 0, len(args)+9)
	full = append(full, "rustc")
	full = append(full, args...)
	full = append(full,
		"--print", "link-args",
		"-Z", "unstable-options",
		"-C", "save-temps",
		"-Clink-arg=/VERSION:"+strconv.Itoa(int(versionTag)),
	)

	return full
}

// run runs cargo with the given arguments and captures its output.
func (r *Runner) run(ctx context.Context, env map[string]string, args ...string) (*Output, error) {
	logging.LogInfo("Running", shellquote.Join(append([]string{r.Cargo}, args...)...))

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	cmd := execabs.CommandContext(ctx, r.Cargo, args...)
	cmd.Dir = r.Dir
	cmd.Env = mergeEnv(os.Environ(), env)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	out := &Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// we were able to run cargo, but the build failed
			return out, &ExitError{Code: exitErr.ExitCode(), Stderr: out.Stderr}
		}

		// some other error: probably couldn't find cargo
		return out, fmt.Errorf("failed to run %s: %w", r.Cargo, err)
	}

	return out, nil
}

// mergeEnv adds the variables in extra to an environment list, replacing any
// existing variables with the same name.  Names are compared case-insensitively
// since that is how Windows treats them.
func mergeEnv(base []string, extra map[string]string) []string {
	merged := make([]string, 0, len(base)+len(extra))

envloop:
	for _, envv := range base {
		k := strings.SplitN(envv, "=", 2)[0]

		for ek := range extra {
			if strings.EqualFold(k, ek) {
				continue envloop
			}
		}

		merged = append(merged, envv)
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		merged = append(merged, k+"="+extra[k])
	}

	return merged
}
