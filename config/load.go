package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BoxDragon/unreal-rust-compile/common"
	"github.com/BoxDragon/unreal-rust-compile/logging"

	"github.com/hashicorp/go-version"
	"github.com/kballard/go-shellquote"
	"github.com/pelletier/go-toml"
)

// tomlConfigFile represents the configuration file as it is encoded in TOML
type tomlConfigFile struct {
	Project  *tomlProject   `toml:"project"`
	Profiles []*tomlProfile `toml:"profiles"`
}

// tomlProject represents the project table as it is encoded in TOML
type tomlProject struct {
	Name            string   `toml:"name"`
	Cargo           string   `toml:"cargo,omitempty"`
	CBindgen        string   `toml:"cbindgen,omitempty"`
	FrontEnds       []string `toml:"front-ends,omitempty"`
	DefFileName     string   `toml:"def-file-name,omitempty"`
	MinCargoVersion string   `toml:"min-cargo-version,omitempty"`
}

// tomlProfile represents a profile as it is encoded in TOML
type tomlProfile struct {
	Name       string            `toml:"name"`
	Default    bool              `toml:"default"`
	CargoArgs  []string          `toml:"cargo-args,omitempty"`
	CargoFlags string            `toml:"cargo-flags,omitempty"`
	Env        map[string]string `toml:"env,omitempty"`
}

// LoadProject loads and validates the configuration of the crate in `dir` and
// selects a build profile.  `selectedProfile` can be empty if no profile was
// requested, in which case the default profile (if any) is used.  A crate
// without a configuration file gets the default configuration.
func LoadProject(dir, selectedProfile string) (*Project, *BuildProfile, error) {
	proj := &Project{
		Root:     dir,
		Cargo:    DefaultCargo,
		CBindgen: DefaultCBindgen,
	}

	buff, err := os.ReadFile(filepath.Join(dir, common.ConfigFileName))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, nil, err
		}

		if selectedProfile != "" {
			return nil, nil, fmt.Errorf("profile `%s` selected but %s does not exist in %s", selectedProfile, common.ConfigFileName, dir)
		}

		return proj, &BuildProfile{}, nil
	}

	tcf := &tomlConfigFile{}
	if err := toml.Unmarshal(buff, tcf); err != nil {
		return nil, nil, fmt.Errorf("error decoding %s: %w", common.ConfigFileName, err)
	}

	if tcf.Project != nil {
		if err := applyProject(proj, tcf.Project); err != nil {
			return nil, nil, err
		}
	}

	prof, err := selectProfile(proj, tcf.Profiles, selectedProfile)
	if err != nil {
		return nil, nil, err
	}

	return proj, prof, nil
}

// applyProject validates the project table and moves its values onto the
// project
func applyProject(proj *Project, tp *tomlProject) error {
	if tp.Name != "" && !IsValidCrateName(tp.Name) {
		return fmt.Errorf("`%s` is not a valid crate name", tp.Name)
	}
	proj.Name = tp.Name

	if tp.Cargo != "" {
		proj.Cargo = tp.Cargo
	}

	if tp.CBindgen != "" {
		proj.CBindgen = tp.CBindgen
	}

	for _, fe := range tp.FrontEnds {
		if !isFileName(fe) {
			return fmt.Errorf("linker front end `%s` must be a file name", fe)
		}
	}
	proj.FrontEnds = tp.FrontEnds

	if tp.DefFileName != "" && !isFileName(tp.DefFileName) {
		return fmt.Errorf("def-file-name `%s` must be a file name", tp.DefFileName)
	}
	proj.DefFileName = tp.DefFileName

	if tp.MinCargoVersion != "" {
		v, err := version.NewVersion(tp.MinCargoVersion)
		if err != nil {
			return fmt.Errorf("invalid min-cargo-version: %w", err)
		}

		proj.MinCargoVersion = v
	}

	return nil
}

// selectProfile selects either the requested profile or the default profile
// and converts it
func selectProfile(proj *Project, profiles []*tomlProfile, selectedProfile string) (*BuildProfile, error) {
	names := make(map[string]struct{})
	for _, prof := range profiles {
		if _, ok := names[prof.Name]; ok {
			return nil, fmt.Errorf("profile `%s` is defined multiple times", prof.Name)
		}

		names[prof.Name] = struct{}{}
	}

	if selectedProfile != "" {
		for _, prof := range profiles {
			if prof.Name == selectedProfile {
				return convertProfile(prof)
			}
		}

		return nil, fmt.Errorf("project `%s` has no profile `%s`", proj.Name, selectedProfile)
	}

	var defaultProf *tomlProfile
	for _, prof := range profiles {
		if !prof.Default {
			continue
		}

		if defaultProf == nil {
			defaultProf = prof
		} else {
			logging.LogBuildWarning(
				"Config",
				fmt.Sprintf("multiple default profiles; building with profile `%s`", defaultProf.Name),
			)
			break
		}
	}

	if defaultProf == nil {
		return &BuildProfile{}, nil
	}

	return convertProfile(defaultProf)
}

// convertProfile converts a TOML profile into a `*BuildProfile`
func convertProfile(tprof *tomlProfile) (*BuildProfile, error) {
	if tprof.Name == "" {
		return nil, errors.New("profile must specify a name")
	}

	args := append([]string(nil), tprof.CargoArgs...)

	if tprof.CargoFlags != "" {
		flags, err := shellquote.Split(tprof.CargoFlags)
		if err != nil {
			return nil, fmt.Errorf("invalid cargo-flags in profile `%s`: %w", tprof.Name, err)
		}

		args = append(args, flags...)
	}

	return &BuildProfile{
		Name:      tprof.Name,
		CargoArgs: args,
		Env:       tprof.Env,
	}, nil
}

// isFileName returns whether a string is a bare file name
func isFileName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
