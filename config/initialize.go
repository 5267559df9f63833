package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BoxDragon/unreal-rust-compile/common"

	"github.com/pelletier/go-toml"
)

// InitProject creates a new configuration file for the crate with the given
// name in the given directory
func InitProject(name, dir string) error {
	cfgFilePath := filepath.Join(dir, common.ConfigFileName)

	// check to see if a configuration file already exists
	_, err := os.Stat(cfgFilePath)
	if err == nil {
		return errors.New("configuration file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("configuration file error: %s", err.Error())
	}

	if !IsValidCrateName(name) {
		return fmt.Errorf("`%s` is not a valid crate name", name)
	}

	cfg := &tomlConfigFile{
		Project: &tomlProject{
			Name:     name,
			Cargo:    DefaultCargo,
			CBindgen: DefaultCBindgen,
		},
		Profiles: []*tomlProfile{newInitProfile(true), newInitProfile(false)},
	}

	f, err := os.Create(cfgFilePath)
	if err != nil {
		return fmt.Errorf("error creating configuration file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("error encoding TOML %s", err.Error())
	}

	return nil
}

// newInitProfile creates one of the two initial profiles, mirroring the
// Development and Shipping configurations of the host build
func newInitProfile(development bool) *tomlProfile {
	if development {
		return &tomlProfile{
			Name:      "development",
			Default:   true, // development profile is the default
			CargoArgs: []string{"--lib"},
		}
	}

	return &tomlProfile{
		Name:      "shipping",
		CargoArgs: []string{"--lib", "--release"},
	}
}
