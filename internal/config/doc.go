// Package config loads the optional HCL project file. The file carries the
// same settings as the command line (output locations, generator toggles,
// grammar-level option overrides) so a project can pin its build
// configuration in the repository. Command-line flags take precedence over
// file values.
package config
