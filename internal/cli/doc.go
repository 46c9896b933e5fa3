// Package cli parses command-line arguments for the grammar generation tool,
// validates user input, and handles process-level concerns like exit codes.
// It translates flags (source tree, output layout, generator switches) into
// the application's internal configuration; precedence against project file
// values is resolved later by the app layer.
package cli
