package cmd

import (
	"errors"
	"os"
	"testing"

	"github.com/BoxDragon/unreal-rust-compile/config"
	"github.com/BoxDragon/unreal-rust-compile/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPassthrough(t *testing.T) {
	testCases := []struct {
		args      []string
		own       []string
		cargoArgs []string
	}{
		{
			args:      []string{"unreal_rust_compile", "rustc", "--crate_dir", "Game", "--", "--lib", "--release"},
			own:       []string{"unreal_rust_compile", "rustc", "--crate_dir", "Game"},
			cargoArgs: []string{"--lib", "--release"},
		},
		{
			args:      []string{"unreal_rust_compile", "rustc", "--", "--", "-v"},
			own:       []string{"unreal_rust_compile", "rustc"},
			cargoArgs: []string{"--", "-v"},
		},
		{
			args:      []string{"unreal_rust_compile", "rustc", "--"},
			own:       []string{"unreal_rust_compile", "rustc"},
			cargoArgs: []string{},
		},
		{
			args: []string{"unreal_rust_compile", "version"},
			own:  []string{"unreal_rust_compile", "version"},
		},
	}

	for _, tc := range testCases {
		own, cargoArgs := splitPassthrough(tc.args)
		assert.Equal(t, tc.own, own)
		assert.Equal(t, tc.cargoArgs, cargoArgs)
	}
}

func TestHasBootstrap(t *testing.T) {
	// t.Setenv restores the original value once the test is done
	t.Setenv("RUSTC_BOOTSTRAP", "")
	require.NoError(t, os.Unsetenv("RUSTC_BOOTSTRAP"))

	assert.False(t, hasBootstrap(&config.BuildProfile{}))
	assert.False(t, hasBootstrap(&config.BuildProfile{Env: map[string]string{"RUSTFLAGS": "-g"}}))
	assert.True(t, hasBootstrap(&config.BuildProfile{Env: map[string]string{"RUSTC_BOOTSTRAP": "1"}}))

	t.Setenv("RUSTC_BOOTSTRAP", "1")
	assert.True(t, hasBootstrap(&config.BuildProfile{}))
}

func TestFinish(t *testing.T) {
	logging.Initialize("silent")
	assert.Equal(t, 0, finish())

	logging.LogBuildError("Cargo", errors.New("cargo exited with status 101"))
	assert.Equal(t, 1, finish())

	logging.Initialize("silent")
}
