package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BoxDragon/unreal-rust-compile/common"
	"github.com/BoxDragon/unreal-rust-compile/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logging.Initialize("silent")
}

const testConfig = `
[project]
name = "game_logic"
cargo = "C:/rust/bin/cargo.exe"
front-ends = ["link.exe", "lld-link.exe"]
def-file-name = "exports.def"
min-cargo-version = "1.65.0"

[[profiles]]
name = "development"
default = true
cargo-args = ["--lib"]
env = { RUSTFLAGS = "-Ctarget-feature=+crt-static" }

[[profiles]]
name = "shipping"
cargo-args = ["--lib"]
cargo-flags = "--release --features \"simd fast-math\""
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, common.ConfigFileName), []byte(contents), 0o644))
	return dir
}

func TestLoadProjectWithoutConfig(t *testing.T) {
	dir := t.TempDir()

	proj, prof, err := LoadProject(dir, "")
	require.NoError(t, err)

	assert.Equal(t, dir, proj.Root)
	assert.Equal(t, DefaultCargo, proj.Cargo)
	assert.Equal(t, DefaultCBindgen, proj.CBindgen)
	assert.Empty(t, proj.FrontEnds)
	assert.Empty(t, proj.DefFileName)
	assert.Nil(t, proj.MinCargoVersion)
	assert.Equal(t, &BuildProfile{}, prof)

	_, _, err = LoadProject(dir, "shipping")
	assert.Error(t, err)
}

func TestLoadProjectDefaultProfile(t *testing.T) {
	dir := writeConfig(t, testConfig)

	proj, prof, err := LoadProject(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "game_logic", proj.Name)
	assert.Equal(t, "C:/rust/bin/cargo.exe", proj.Cargo)
	assert.Equal(t, DefaultCBindgen, proj.CBindgen)
	assert.Equal(t, []string{"link.exe", "lld-link.exe"}, proj.FrontEnds)
	assert.Equal(t, "exports.def", proj.DefFileName)
	require.NotNil(t, proj.MinCargoVersion)
	assert.Equal(t, "1.65.0", proj.MinCargoVersion.String())

	assert.Equal(t, "development", prof.Name)
	assert.Equal(t, []string{"--lib"}, prof.CargoArgs)
	assert.Equal(t, map[string]string{"RUSTFLAGS": "-Ctarget-feature=+crt-static"}, prof.Env)
}

func TestLoadProjectSelectedProfile(t *testing.T) {
	dir := writeConfig(t, testConfig)

	_, prof, err := LoadProject(dir, "shipping")
	require.NoError(t, err)

	assert.Equal(t, "shipping", prof.Name)
	assert.Equal(t, []string{"--lib", "--release", "--features", "simd fast-math"}, prof.CargoArgs)
	assert.Empty(t, prof.Env)

	_, _, err = LoadProject(dir, "debuggame")
	assert.EqualError(t, err, "project `game_logic` has no profile `debuggame`")
}

func TestLoadProjectNoDefaultProfile(t *testing.T) {
	dir := writeConfig(t, `
[[profiles]]
name = "shipping"
cargo-args = ["--release"]
`)

	proj, prof, err := LoadProject(dir, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultCargo, proj.Cargo)
	assert.Equal(t, &BuildProfile{}, prof)
}

func TestLoadProjectMultipleDefaults(t *testing.T) {
	dir := writeConfig(t, `
[[profiles]]
name = "a"
default = true

[[profiles]]
name = "b"
default = true
`)

	_, prof, err := LoadProject(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "a", prof.Name)
}

func TestLoadProjectErrors(t *testing.T) {
	for name, contents := range map[string]string{
		"invalid toml":       "[project\n",
		"invalid name":       "[project]\nname = \"1abc\"\n",
		"front end path":     "[project]\nfront-ends = [\"C:/bin/link.exe\"]\n",
		"def file path":      "[project]\ndef-file-name = \"out/build.def\"\n",
		"bad version":        "[project]\nmin-cargo-version = \"nightly\"\n",
		"duplicate profiles": "[[profiles]]\nname = \"a\"\n[[profiles]]\nname = \"a\"\n",
		"unnamed profile":    "[[profiles]]\ndefault = true\n",
		"bad cargo flags":    "[[profiles]]\nname = \"a\"\ndefault = true\ncargo-flags = \"--features \\\"x\"\n",
	} {
		dir := writeConfig(t, contents)

		_, _, err := LoadProject(dir, "")
		assert.Error(t, err, name)
	}
}

func TestIsValidCrateName(t *testing.T) {
	assert.True(t, IsValidCrateName("game_logic"))
	assert.True(t, IsValidCrateName("game-logic2"))
	assert.True(t, IsValidCrateName("_private"))
	assert.False(t, IsValidCrateName(""))
	assert.False(t, IsValidCrateName("2d"))
	assert.False(t, IsValidCrateName("-x"))
	assert.False(t, IsValidCrateName("game logic"))
}
