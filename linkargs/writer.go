package linkargs

import (
	"fmt"
	"os"
)

// Writer streams classified arguments into the linker and archiver argument
// files, one argument per line.
type Writer struct {
	linker   *os.File
	archiver *os.File

	// The number of lines written to each file.
	LinkerLines, ArchiverLines int
}

// CreateWriter creates (or truncates) both argument files.
func CreateWriter(linkerPath, archiverPath string) (*Writer, error) {
	linker, err := os.Create(linkerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create linker argument file: %w", err)
	}

	archiver, err := os.Create(archiverPath)
	if err != nil {
		linker.Close()
		return nil, fmt.Errorf("failed to create archiver argument file: %w", err)
	}

	return &Writer{linker: linker, archiver: archiver}, nil
}

// Emit writes an argument to the file(s) selected by dest.  When dest is Both,
// the linker file is written first.
func (w *Writer) Emit(dest Destination, arg Argument) error {
	if _, ok := destinationNames[dest]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidDestination, dest)
	}

	line := arg.String()

	if dest == LinkerFile || dest == Both {
		if _, err := fmt.Fprintln(w.linker, line); err != nil {
			return fmt.Errorf("failed to write linker argument file: %w", err)
		}

		w.LinkerLines++
	}

	if dest == ArchiverFile || dest == Both {
		if _, err := fmt.Fprintln(w.archiver, line); err != nil {
			return fmt.Errorf("failed to write archiver argument file: %w", err)
		}

		w.ArchiverLines++
	}

	return nil
}

// Close closes both argument files and returns the first error encountered.
func (w *Writer) Close() error {
	lerr := w.linker.Close()
	aerr := w.archiver.Close()

	if lerr != nil {
		return fmt.Errorf("failed to close linker argument file: %w", lerr)
	}

	if aerr != nil {
		return fmt.Errorf("failed to close archiver argument file: %w", aerr)
	}

	return nil
}
