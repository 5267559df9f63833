package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/BoxDragon/unreal-rust-compile/cargo"
	"github.com/BoxDragon/unreal-rust-compile/linkargs"
	"github.com/BoxDragon/unreal-rust-compile/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout returns everything f prints to standard output.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	f()
	require.NoError(t, w.Close())

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func linkArgsOptions(t *testing.T) linkargs.Options {
	t.Helper()

	dir := t.TempDir()
	return linkargs.Options{
		LinkerPath:   filepath.Join(dir, "linker.rsp"),
		ArchiverPath: filepath.Join(dir, "lib.rsp"),
	}
}

func TestWriteLinkArgsEchoesWarnings(t *testing.T) {
	logging.Initialize("error")
	defer logging.Initialize("silent")

	opts := linkArgsOptions(t)
	out := &cargo.Output{
		Stdout: "\"link.exe\" \"foo.o\" \"bar.lib\"\n",
		Stderr: "warning: unused variable: `speed`\n --> src/lib.rs:4:9\n",
	}

	printed := captureStdout(t, func() { writeLinkArgs(out, opts) })
	assert.Contains(t, printed, "warning: unused variable: `speed`")
	assert.Contains(t, printed, "src/lib.rs:4:9")

	// no module definition file: nothing is written and the run succeeds
	assert.NoFileExists(t, opts.LinkerPath)
	assert.NoFileExists(t, opts.ArchiverPath)
	assert.Equal(t, 0, finish())
}

func TestWriteLinkArgsWritesFiles(t *testing.T) {
	logging.Initialize("silent")

	opts := linkArgsOptions(t)
	out := &cargo.Output{
		Stdout: `"link.exe" "/LIBPATH:C:\\lib" "foo.o" "/DEF:C:\\gone\\lib.def" "bar.lib"` + "\n",
		Stderr: "   Compiling game_logic v0.1.0\n",
	}

	writeLinkArgs(out, opts)
	assert.FileExists(t, opts.LinkerPath)
	assert.FileExists(t, opts.ArchiverPath)
	assert.Equal(t, 0, finish())
}

func TestWriteLinkArgsUnknownFrontEnd(t *testing.T) {
	logging.Initialize("silent")
	defer logging.Initialize("silent")

	out := &cargo.Output{Stdout: `"cl.exe" "foo.o" "/DEF:lib.def"` + "\n"}

	writeLinkArgs(out, linkArgsOptions(t))
	assert.Equal(t, 1, finish())
}

func TestLogLinkArgsError(t *testing.T) {
	defer logging.Initialize("silent")

	for _, err := range []error{
		fmt.Errorf("%w: %s", linkargs.ErrInvalidDestination, linkargs.Destination(7)),
		&linkargs.FrontEndError{Path: "cl.exe"},
	} {
		logging.Initialize("silent")

		logLinkArgsError(err)
		assert.Equal(t, 1, finish(), err.Error())
	}
}

func TestRustcRequiresCargoArgs(t *testing.T) {
	logging.Initialize("silent")
	defer logging.Initialize("silent")

	assert.Equal(t, 1, execRustcCommand(nil, nil))
	assert.Equal(t, 1, execRustcCommand(nil, []string{}))
}
