package config

import (
	"github.com/hashicorp/go-version"
)

// Project represents the configuration of the crate being built.  All fields
// have usable defaults so a crate without a configuration file can be built.
type Project struct {
	// Name is the name of the crate.  It is informational only.
	Name string

	// Root is the crate directory: the directory containing `Cargo.toml` and
	// the configuration file.
	Root string

	// Cargo is the cargo executable to run.
	Cargo string

	// CBindgen is the cbindgen executable used to generate C headers.
	CBindgen string

	// FrontEnds is the list of accepted linker front ends.  If this is empty,
	// the built-in list is used.
	FrontEnds []string

	// DefFileName is the name module definition files are copied to.  If this
	// is empty, the built-in name is used.
	DefFileName string

	// MinCargoVersion is the oldest cargo that may be used.  It may be nil in
	// which case any version is accepted.
	MinCargoVersion *version.Version
}

// BuildProfile is a named set of additional cargo arguments and environment
// variables selected with the `--profile` argument.
type BuildProfile struct {
	// Name is the name of the profile.  It is empty if no profile was selected.
	Name string

	// CargoArgs are passed to cargo ahead of the arguments given on the command
	// line.
	CargoArgs []string

	// Env is added to the environment cargo runs in.
	Env map[string]string
}

// Default executables used when the configuration does not specify them.
const (
	DefaultCargo    = "cargo"
	DefaultCBindgen = "cbindgen"
)

// IsValidCrateName returns whether or not a given string would be a valid
// cargo package name.
func IsValidCrateName(name string) bool {
	if name == "" {
		return false
	}

	if name[0] == '_' || ('a' <= name[0] && name[0] <= 'z') || ('A' <= name[0] && name[0] <= 'Z') {
		for _, c := range name[1:] {
			if c == '_' || c == '-' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
