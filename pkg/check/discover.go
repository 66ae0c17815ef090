package check

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover expands paths into the list of files to validate. Files named
// directly are always included. Directories are searched recursively for
// files whose extension matches one of extensions, case-insensitively.
// The result is sorted and free of duplicates.
func Discover(paths []string, extensions []string) ([]string, error) {
	var files []string

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to access %q: %w", root, err)
		}

		if !info.IsDir() {
			files = append(files, filepath.Clean(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !HasExtension(path, extensions) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search %q: %w", root, err)
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// HasExtension reports whether path ends in one of extensions.
func HasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
