// Package dag builds and validates the grammar dependency graph. It takes
// the metadata extracted from every grammar file, links import and token
// vocabulary references by name, detects duplicate names, unresolved
// references and circular imports, and derives the set of independently
// buildable root grammars together with their dependency closures.
package dag
