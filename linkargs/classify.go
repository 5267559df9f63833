package linkargs

import (
	"errors"
	"fmt"
	"strings"
)

// Destination identifies the argument file(s) that an argument is written to.
type Destination int

// Enumeration of argument destinations.
const (
	Discard      Destination = iota // Not written anywhere.
	LinkerFile                      // Only the linker argument file.
	ArchiverFile                    // Only the archiver argument file.
	Both                            // Both argument files.
)

var destinationNames = map[Destination]string{
	Discard:      "discard",
	LinkerFile:   "linker",
	ArchiverFile: "archiver",
	Both:         "both",
}

// ErrInvalidDestination is returned when an argument is emitted to a
// destination outside of the enumeration.  It always indicates a bug.
var ErrInvalidDestination = errors.New("invalid argument destination")

func (d Destination) String() string {
	if name, ok := destinationNames[d]; ok {
		return name
	}

	return fmt.Sprintf("Destination(%d)", int(d))
}

// Option is the name of a linker flag: the text between the leading `/` or `-`
// and the first colon.
type Option string

// Enumeration of the linker options this package understands.  Every other
// option is dropped.
const (
	OptionLibPath Option = "LIBPATH"
	OptionImpLib  Option = "IMPLIB"
	OptionDef     Option = "DEF"
	OptionFlavor  Option = "flavor"
)

// optionAction is what the classifier does with a recognized option.
type optionAction int

const (
	actionDrop       optionAction = iota // option is not in the allowlist
	actionForward                        // forward to the linker only
	actionRelocate                       // relocate the module definition file
	actionSkipValue                      // drop the option and the token after it
)

// optionActions is the option allowlist.
var optionActions = map[Option]optionAction{
	OptionLibPath: actionForward,
	OptionImpLib:  actionForward,
	OptionDef:     actionRelocate,
	OptionFlavor:  actionSkipValue,
}

// archiveSuffixes are the suffixes of positional arguments that are members of
// the static library rather than inputs to the final link.
var archiveSuffixes = []string{".o", ".rlib"}

// Argument is a single classified argument.
type Argument struct {
	// The option name of a flag argument.  This is empty for positional
	// arguments.
	Option Option

	// The option value of a flag argument or the text of a positional argument.
	Value string
}

// String formats the argument as a line of an argument file.  Flags are always
// written as `/NAME:"value"` regardless of how they were originally quoted.
func (a Argument) String() string {
	if a.Option == "" {
		return `"` + a.Value + `"`
	}

	return fmt.Sprintf(`/%s:"%s"`, a.Option, a.Value)
}

// Emitter receives classified arguments in encounter order.
type Emitter interface {
	Emit(dest Destination, arg Argument) error
}

// Relocator moves a module definition file to its canonical location and
// returns the path it should be referenced by.
type Relocator interface {
	Relocate(source string) (string, error)
}

// Classify routes each token of a link command (with the front end already
// removed) to its destination.  Tokens naming executables are dropped, flags
// are filtered through the option allowlist and positional arguments are split
// between the archiver (object files and rlibs) and the linker (everything
// else).
func Classify(tokens []string, r Relocator, e Emitter) error {
	for ndx := 0; ndx < len(tokens); ndx++ {
		tok := tokens[ndx]

		// helper tools such as `cl.exe` are never link inputs
		if strings.HasSuffix(tok, ".exe") {
			continue
		}

		if !isFlag(tok) {
			if err := e.Emit(positionalDestination(tok), Argument{Value: tok}); err != nil {
				return err
			}

			continue
		}

		name, value := splitFlag(tok)
		switch optionActions[name] {
		case actionForward:
			if err := e.Emit(LinkerFile, Argument{Option: name, Value: value}); err != nil {
				return err
			}
		case actionRelocate:
			defPath, err := r.Relocate(value)
			if err != nil {
				return fmt.Errorf("failed to relocate module definition file %s: %w", value, err)
			}

			// both the linker and lib.exe need the module definition file
			if err := e.Emit(Both, Argument{Option: OptionDef, Value: defPath}); err != nil {
				return err
			}
		case actionSkipValue:
			// the value is a separate token
			ndx++
		}
	}

	return nil
}

// isFlag returns whether a token is shaped like a linker flag.
func isFlag(tok string) bool {
	return strings.HasPrefix(tok, "/") || strings.HasPrefix(tok, "-")
}

// splitFlag splits a flag token into its option name and value.  The value is
// empty if the token has no colon.
func splitFlag(tok string) (Option, string) {
	body := tok[1:]
	if ndx := strings.IndexByte(body, ':'); ndx != -1 {
		return Option(body[:ndx]), body[ndx+1:]
	}

	return Option(body), ""
}

// positionalDestination determines where a positional argument goes.
func positionalDestination(tok string) Destination {
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(tok, suffix) {
			return ArchiverFile
		}
	}

	return LinkerFile
}
