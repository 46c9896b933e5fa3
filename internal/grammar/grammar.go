// Package grammar extracts the minimal metadata the dependency resolver
// needs out of ANTLR grammar files: the declared name, the grammar kind,
// imported grammar names, and an optional token vocabulary reference. It
// performs a lightweight lexical scan only; it never parses grammar rules.
package grammar

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is the closed set of grammar declaration forms.
type Kind int

const (
	// Lexer is a `lexer grammar Name;` declaration.
	Lexer Kind = iota
	// Parser is a `parser grammar Name;` declaration.
	Parser
	// Combined is a plain `grammar Name;` declaration.
	Combined
)

// String returns the declaration keyword form of the kind.
func (k Kind) String() string {
	switch k {
	case Lexer:
		return "lexer"
	case Parser:
		return "parser"
	default:
		return "combined"
	}
}

// File is the extracted metadata of a single grammar file. It is immutable
// after extraction; the dependency graph stores name references, not links
// between File values.
type File struct {
	// Path is the absolute path of the grammar file.
	Path string
	// Name is the grammar name declared in the file header.
	Name string
	// Kind records which declaration form the header used.
	Kind Kind
	// Imports lists imported grammar names in declaration order,
	// duplicates collapsed.
	Imports []string
	// TokenVocab is the token vocabulary referenced in the options block,
	// or empty if the grammar declares none.
	TokenVocab string
}

// Stem returns the file name without directory or extension. By ANTLR
// convention it matches the declared grammar name; callers warn when it
// does not.
func (f *File) Stem() string {
	base := filepath.Base(f.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseError reports a grammar file whose header could not be extracted.
// The file is excluded from the dependency graph; the rest of the run
// proceeds.
type ParseError struct {
	// Path is the offending file.
	Path string
	// Reason describes what was missing or malformed.
	Reason string
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("can't extract grammar metadata from %q: %s", e.Path, e.Reason)
}
