package linkargs

import (
	"io"
	"os"
	"path/filepath"
)

// DefaultDefFileName is the file name module definition files are copied to.
const DefaultDefFileName = "build_def.def"

// DefRelocator copies module definition files into a fixed location next to
// the archiver argument file.  rustc writes the file into a temporary
// directory that is gone by the time the host build system runs the linker.
type DefRelocator struct {
	// The directory the module definition file is copied into.
	Dir string

	// The name of the copied file.  DefaultDefFileName is used if this is
	// empty.
	FileName string
}

// Path returns the canonical module definition file path.
func (dr *DefRelocator) Path() string {
	name := dr.FileName
	if name == "" {
		name = DefaultDefFileName
	}

	return filepath.Join(dr.Dir, name)
}

// Relocate copies source to the canonical path if source exists and returns
// the canonical path.  Some toolchain versions print a DEF flag for a file
// they never wrote so a missing source is not an error.
func (dr *DefRelocator) Relocate(source string) (string, error) {
	dest := dr.Path()

	srcInfo, err := os.Stat(source)
	if err != nil {
		return dest, nil
	}

	// copying a file onto itself would truncate it
	if destInfo, err := os.Stat(dest); err == nil && os.SameFile(srcInfo, destInfo) {
		return dest, nil
	}

	if err := copyFile(source, dest); err != nil {
		return "", err
	}

	return dest, nil
}

// copyFile copies src over dst, creating or truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
