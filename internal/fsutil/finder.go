// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files
// ending with the specified extension and returns their absolute paths in the
// deterministic lexical order produced by the walk. Directories listed in
// skipDirs (and everything below them) are not descended into; this keeps
// previously generated output out of the scan. Empty entries and the root
// path itself are ignored as skip targets. Any I/O error aborts the walk,
// because a partially read tree cannot be trusted.
func FindFilesByExtension(rootPath string, extension string, skipDirs ...string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	rootAbs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}

	// The walk root itself is never a skip target: the skip set keeps
	// generated output below the root out of the scan, it must not empty it.
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		if d == "" {
			continue
		}
		if abs, err := filepath.Abs(d); err == nil && abs != rootAbs {
			skip[abs] = true
		}
	}

	var files []string
	err = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skip[abs] {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), extension) {
			files = append(files, abs)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}
