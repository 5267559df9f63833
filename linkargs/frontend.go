package linkargs

import (
	"errors"
	"fmt"
	"strings"
)

// Enumeration of the linker front ends rustc is known to print link commands
// for on MSVC targets.
const (
	FrontEndLink    = "link.exe"
	FrontEndLLDLink = "lld-link.exe"
	FrontEndRustLLD = "rust-lld.exe"
)

// DefaultFrontEnds is the front end whitelist used when the project
// configuration does not specify one.
var DefaultFrontEnds = []string{FrontEndLink, FrontEndLLDLink, FrontEndRustLLD}

// ErrNoLinkerArgs is returned when the link command contains no arguments at
// all: not even the linker executable.
var ErrNoLinkerArgs = errors.New("no linker args found")

// FrontEndError is returned when the first argument of the link command is not
// a recognized linker front end.  The rest of the command cannot be trusted to
// follow the MSVC flag grammar in that case.
type FrontEndError struct {
	// The full first argument of the link command.
	Path string
}

func (fe *FrontEndError) Error() string {
	return fmt.Sprintf("unrecognized linker flavor %s", fe.Path)
}

// ValidateFrontEnd checks that the first token names one of the given front
// ends by file name.  The comparison is exact.
func ValidateFrontEnd(tokens []string, frontEnds []string) error {
	if len(tokens) == 0 {
		return ErrNoLinkerArgs
	}

	name := fileName(tokens[0])
	for _, fe := range frontEnds {
		if name == fe {
			return nil
		}
	}

	return &FrontEndError{Path: tokens[0]}
}

// fileName returns the final element of a path.  Both `/` and `\` are treated
// as separators regardless of the host OS.
func fileName(path string) string {
	if ndx := strings.LastIndexAny(path, `/\`); ndx != -1 {
		return path[ndx+1:]
	}

	return path
}
