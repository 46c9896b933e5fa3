package dag

import (
	"fmt"
	"strings"
)

// AmbiguityError reports two or more grammar files declaring the same name.
// The name is excluded from the graph; the run continues for unaffected
// grammars.
type AmbiguityError struct {
	// Name is the duplicated grammar name.
	Name string
	// Paths are the files that declared it, in sorted order.
	Paths []string
}

// Error implements the error interface for AmbiguityError.
func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("grammar name %q is declared by more than one file: %s",
		e.Name, strings.Join(e.Paths, ", "))
}

// UnresolvedReferenceError reports an import or token vocabulary target that
// does not resolve to any grammar in the scanned tree. The dependent grammar
// (and anything relying on it) is excluded from the root set.
type UnresolvedReferenceError struct {
	// From is the grammar holding the dangling reference.
	From string
	// Target is the name that could not be resolved.
	Target string
	// TokenVocab is true when the reference came from a tokenVocab option
	// rather than an import statement.
	TokenVocab bool
}

// Error implements the error interface for UnresolvedReferenceError.
func (e *UnresolvedReferenceError) Error() string {
	kind := "imported grammar"
	if e.TokenVocab {
		kind = "token vocabulary"
	}
	return fmt.Sprintf("%s %q referenced by %q isn't present in the source tree", kind, e.Target, e.From)
}

// CycleError reports a circular import chain. Path holds the ordered cycle
// with the first grammar repeated at the end, e.g. [A B A]. Every grammar on
// the cycle is excluded from the buildable set.
type CycleError struct {
	Path []string
}

// Error implements the error interface for CycleError.
func (e *CycleError) Error() string {
	return fmt.Sprintf("circular grammar dependency: %s", strings.Join(e.Path, " -> "))
}
