// Package bindgen generates the C header for a crate and keeps the header on
// disk up to date.
package bindgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BoxDragon/unreal-rust-compile/logging"

	"github.com/kballard/go-shellquote"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sys/execabs"
)

// GenerateError is returned when cbindgen runs but fails to generate a header.
type GenerateError struct {
	Code   int
	Stderr string
}

func (ge *GenerateError) Error() string {
	return fmt.Sprintf("cbindgen exited with status %d", ge.Code)
}

// Generate runs cbindgen on the crate in crateDir and returns the generated
// header.  cbindgen picks up the `cbindgen.toml` in the crate directory if
// there is one.
func Generate(ctx context.Context, cbindgen, crateDir string) ([]byte, error) {
	logging.LogInfo("Running", shellquote.Join(cbindgen, crateDir))

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	cmd := execabs.CommandContext(ctx, cbindgen, crateDir)
	cmd.Dir = crateDir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &GenerateError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}

		return nil, fmt.Errorf("failed to run %s: %w", cbindgen, err)
	}

	return stdout.Bytes(), nil
}

// Change summarizes how a header file changed.
type Change struct {
	Changed bool
	Added   int
	Removed int
}

// WriteHeader writes data to the header at path unless the header already
// holds exactly that data.  A header that does not exist yet counts as empty.
func WriteHeader(path string, data []byte) (Change, error) {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Change{}, fmt.Errorf("failed to read header %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModeDir|0o755); err != nil {
		return Change{}, fmt.Errorf("failed to create header directory: %w", err)
	}

	if bytes.Equal(existing, data) {
		return Change{}, nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Change{}, fmt.Errorf("failed to write header %s: %w", path, err)
	}

	added, removed := diffLines(string(existing), string(data))
	return Change{Changed: true, Added: added, Removed: removed}, nil
}

// diffLines counts the lines added and removed going from before to after.
func diffLines(before, after string) (added, removed int) {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	for _, diff := range diffs {
		n := strings.Count(diff.Text, "\n")
		if diff.Text != "" && !strings.HasSuffix(diff.Text, "\n") {
			n++
		}

		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		}
	}

	return
}
