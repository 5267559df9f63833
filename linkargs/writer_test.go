package linkargs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriter(t *testing.T) {
	dir := t.TempDir()
	linkerPath := filepath.Join(dir, "linker.rsp")
	archiverPath := filepath.Join(dir, "lib.rsp")

	w, err := CreateWriter(linkerPath, archiverPath)
	require.NoError(t, err)

	require.NoError(t, w.Emit(LinkerFile, Argument{Option: OptionLibPath, Value: `C:\lib`}))
	require.NoError(t, w.Emit(ArchiverFile, Argument{Value: "foo.o"}))
	require.NoError(t, w.Emit(Both, Argument{Option: OptionDef, Value: "build_def.def"}))
	require.NoError(t, w.Emit(Discard, Argument{Value: "ignored.lib"}))
	require.NoError(t, w.Close())

	assert.Equal(t, 2, w.LinkerLines)
	assert.Equal(t, 2, w.ArchiverLines)
	assert.Equal(t, "/LIBPATH:\"C:\\lib\"\n/DEF:\"build_def.def\"\n", readFile(t, linkerPath))
	assert.Equal(t, "\"foo.o\"\n/DEF:\"build_def.def\"\n", readFile(t, archiverPath))
}

func TestWriterTruncates(t *testing.T) {
	dir := t.TempDir()
	linkerPath := filepath.Join(dir, "linker.rsp")
	archiverPath := filepath.Join(dir, "lib.rsp")
	require.NoError(t, os.WriteFile(linkerPath, []byte("old\n"), 0o644))
	require.NoError(t, os.WriteFile(archiverPath, []byte("old\n"), 0o644))

	w, err := CreateWriter(linkerPath, archiverPath)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Empty(t, readFile(t, linkerPath))
	assert.Empty(t, readFile(t, archiverPath))
}

func TestCreateWriterFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := CreateWriter(filepath.Join(dir, "missing", "linker.rsp"), filepath.Join(dir, "lib.rsp"))
	assert.Error(t, err)

	_, err = CreateWriter(filepath.Join(dir, "linker.rsp"), filepath.Join(dir, "missing", "lib.rsp"))
	assert.Error(t, err)
}

func TestWriterInvalidDestination(t *testing.T) {
	dir := t.TempDir()
	w, err := CreateWriter(filepath.Join(dir, "linker.rsp"), filepath.Join(dir, "lib.rsp"))
	require.NoError(t, err)

	err = w.Emit(Destination(7), Argument{Value: "foo.o"})
	assert.ErrorIs(t, err, ErrInvalidDestination)
	assert.Contains(t, err.Error(), "Destination(7)")

	require.NoError(t, w.Close())
	assert.Equal(t, 0, w.LinkerLines)
	assert.Equal(t, 0, w.ArchiverLines)
	assert.Empty(t, readFile(t, filepath.Join(dir, "linker.rsp")))
}
