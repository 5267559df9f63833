package linkargs

import (
	"path/filepath"
	"strings"
)

// defMarker is the text that identifies the link command line in cargo's
// output: rustc only prints a module definition file for MSVC-style links.
const defMarker = ".def"

// Options configures a single run of Process.
type Options struct {
	// The path to write the linker argument file to.
	LinkerPath string

	// The path to write the archiver argument file to.  The module definition
	// file is copied into the same directory.
	ArchiverPath string

	// The accepted linker front ends.  DefaultFrontEnds is used if this is
	// empty.
	FrontEnds []string

	// The name of the relocated module definition file.  DefaultDefFileName is
	// used if this is empty.
	DefFileName string
}

// Result summarizes a run of Process.
type Result struct {
	// Whether a link command was found.  If not, no files were written.
	Found bool

	// The number of lines written to each argument file.
	LinkerLines, ArchiverLines int
}

// Process extracts the link command from the captured standard output of
// `cargo rustc --print link-args` and writes the linker and archiver argument
// files for it.  The link command is the last line of the output; if that line
// does not reference a module definition file, nothing is written and the
// returned result is not Found.
func Process(output string, opts Options) (Result, error) {
	line, ok := LastLine(output)
	if !ok || !strings.Contains(line, defMarker) {
		return Result{}, nil
	}

	frontEnds := opts.FrontEnds
	if len(frontEnds) == 0 {
		frontEnds = DefaultFrontEnds
	}

	// both files exist once a link command has been found, even if the command
	// turns out to be invalid or one of the files receives no arguments
	w, err := CreateWriter(opts.LinkerPath, opts.ArchiverPath)
	if err != nil {
		return Result{}, err
	}

	tokens := Tokenize(line)
	if err := ValidateFrontEnd(tokens, frontEnds); err != nil {
		w.Close()
		return Result{}, err
	}

	relocator := &DefRelocator{
		Dir:      filepath.Dir(opts.ArchiverPath),
		FileName: opts.DefFileName,
	}

	if err := Classify(tokens[1:], relocator, w); err != nil {
		w.Close()
		return Result{}, err
	}

	if err := w.Close(); err != nil {
		return Result{}, err
	}

	return Result{Found: true, LinkerLines: w.LinkerLines, ArchiverLines: w.ArchiverLines}, nil
}

// LastLine returns the last line of some process output.  A trailing line
// terminator does not start a new line and carriage returns are stripped.  The
// second value is false if the output is empty.
func LastLine(output string) (string, bool) {
	output = strings.TrimSuffix(output, "\n")
	if output == "" {
		return "", false
	}

	if ndx := strings.LastIndexByte(output, '\n'); ndx != -1 {
		output = output[ndx+1:]
	}

	return strings.TrimSuffix(output, "\r"), true
}
