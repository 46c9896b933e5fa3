// Package antlr wraps the external ANTLR code generator: locating a usable
// Java runtime and the generator jar, translating orchestration options into
// the tool's argument vector, and running one generation per root grammar.
// The tool itself is opaque to the rest of the system; only its exit status
// and diagnostic output are interpreted.
package antlr
