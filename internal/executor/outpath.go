package executor

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/specialistvlad/grammargen/internal/grammar"
)

var (
	snakeBoundary1 = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	snakeBoundary2 = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// camelToSnakeCase converts a camel cased grammar name into the snake cased
// package identifier used for its output directory.
func camelToSnakeCase(s string) string {
	snake := snakeBoundary1.ReplaceAllString(s, "${1}_${2}")
	snake = snakeBoundary2.ReplaceAllString(snake, "${1}_${2}")
	snake = strings.ToLower(snake)
	return strings.ReplaceAll(snake, "__", "_")
}

// outputDir derives the output package directory for a root grammar: the
// configured base (or a per-grammar override) extended with the grammar's
// sub-path relative to the source root and a package directory named after
// the grammar. With ExactOutputDir the base is used unchanged.
func (e *Executor) outputDir(file *grammar.File) string {
	base := e.cfg.OutputDir
	if base == "" {
		base = "."
	}
	if override, ok := e.cfg.OutputOverrides[file.Name]; ok {
		base = override
	}

	if e.cfg.ExactOutputDir {
		return base
	}

	grammarDir := filepath.Dir(file.Path)
	rel, err := filepath.Rel(e.cfg.SourceRoot, grammarDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = ""
	}

	return filepath.Join(base, rel, camelToSnakeCase(file.Name))
}

// libraryDir determines the -lib directory for a root: the single directory
// holding all of its transitive dependencies. The generator can only search
// one library directory, so dependencies spread over several directories are
// rejected as a per-root failure.
func libraryDir(root *grammar.File, closure []*grammar.File) (string, error) {
	dirs := make(map[string]bool)
	for _, dep := range closure {
		if dep.Path == root.Path {
			continue
		}
		dirs[filepath.Dir(dep.Path)] = true
	}

	switch len(dirs) {
	case 0:
		return "", nil
	case 1:
		for dir := range dirs {
			return dir, nil
		}
	}
	return "", fmt.Errorf("imported grammars of %q are located in more than one directory; "+
		"this isn't supported by the generator, move all imported grammars into one directory", root.Name)
}
