// Package executor orchestrates generator invocations: one per root grammar,
// in deterministic lexical order, sequentially by default or on a bounded
// worker pool. Failures are scoped to the root they occur on and collected
// into the build report; a failed root never prevents the remaining roots
// from being attempted.
package executor
