package cargo

import (
	"io/fs"
	"os"
	"path/filepath"
)

// SourceFiles returns the path of every file below each of the given
// directories.  Directories that do not exist are skipped.
func SourceFiles(dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		if finfo, err := os.Stat(dir); err != nil || !finfo.IsDir() {
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() {
				files = append(files, path)
			}

			return nil
		})

		if err != nil {
			return nil, err
		}
	}

	return files, nil
}
