package antlr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// Options carries the generator settings the orchestrator forwards opaquely.
// Only the output directory handling and the warnings-as-errors toggle ever
// influence orchestration logic; everything else is passed straight through.
type Options struct {
	// Listener toggles parse tree listener generation (on by default).
	Listener bool
	// Visitor toggles parse tree visitor generation.
	Visitor bool
	// Encoding is the grammar file encoding, e.g. "euc-jp".
	Encoding string
	// MessageFormat selects the diagnostic style: antlr, gnu or vs2005.
	MessageFormat string
	// LongMessages shows exception details for errors and warnings.
	LongMessages bool
	// ATN generates rule augmented transition network diagrams.
	ATN bool
	// Depend emits file dependencies instead of generating code.
	Depend bool
	// WarnAsError makes the generator (and the orchestrator) treat
	// warnings as errors.
	WarnAsError bool
	// ExactOutputDir writes output into the output directory as-is,
	// without deriving a package sub-path.
	ExactOutputDir bool
	// Log dumps generator logging info to a timestamped file, which is
	// relocated next to the generated package.
	Log bool
	// GrammarOptions are grammar-level option overrides (-D flags).
	GrammarOptions map[string]string
}

// DefaultOptions returns the option set used when neither the CLI nor the
// project file overrides anything.
func DefaultOptions() Options {
	return Options{Listener: true}
}

// Invocation describes a single generation run for one root grammar.
type Invocation struct {
	// Root is the declared name of the root grammar, used in diagnostics.
	Root string
	// GrammarFile is the root grammar's file name, relative to GrammarDir.
	// The generator resolves relative token file references against its
	// working directory, so the invocation always runs from the grammar's
	// own directory.
	GrammarFile string
	// GrammarDir is the directory holding the root grammar file.
	GrammarDir string
	// LibraryDir is the single directory holding all imported grammars and
	// token vocabularies, or empty when the root has no dependencies.
	LibraryDir string
	// OutputDir is the derived package directory generated code goes to.
	OutputDir string
}

// Tool is a located generator installation bound to an option set.
type Tool struct {
	Java    string
	Jar     string
	Options Options
}

// Generate runs the external generator once for the given invocation and
// returns its combined diagnostic output. A non-zero exit is returned as an
// error with the tool's output preserved verbatim for the build report.
func (t *Tool) Generate(ctx context.Context, inv Invocation) (string, error) {
	if err := os.MkdirAll(inv.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("can't create output directory for %s: %w", inv.Root, err)
	}

	cmd := exec.CommandContext(ctx, t.Java, t.args(inv)...)
	cmd.Dir = inv.GrammarDir
	out, err := cmd.CombinedOutput()
	diagnostics := string(out)

	if t.Options.Depend {
		// Dependency listings go to stdout; persist them next to the
		// package instead of interpreting the exit status.
		depFile := filepath.Join(inv.OutputDir, "dependencies.txt")
		if werr := os.WriteFile(depFile, out, 0o644); werr != nil {
			return diagnostics, fmt.Errorf("can't write dependency file for %s: %w", inv.Root, werr)
		}
		if ctx.Err() != nil {
			return diagnostics, ctx.Err()
		}
		return diagnostics, nil
	}

	if err != nil {
		return diagnostics, fmt.Errorf("%s parser couldn't be generated: %w", inv.Root, err)
	}

	if t.Options.Log {
		t.relocateLog(inv)
	}

	return diagnostics, nil
}

// relocateLog moves the newest generator log file out of the grammar source
// directory into the generated package directory.
func (t *Tool) relocateLog(inv Invocation) {
	logFile := findLog(inv.GrammarDir)
	if logFile == "" {
		return
	}
	target := filepath.Join(inv.OutputDir, filepath.Base(logFile))
	_ = os.Rename(logFile, target)
}

// args builds the generator's argument vector for one invocation. Grammar
// option overrides are emitted in sorted order so the command line is
// reproducible.
func (t *Tool) args(inv Invocation) []string {
	opts := t.Options
	args := []string{"-jar", t.Jar}

	if opts.ATN {
		args = append(args, "-atn")
	}
	if opts.Encoding != "" {
		args = append(args, "-encoding", opts.Encoding)
	}
	if opts.MessageFormat != "" {
		args = append(args, "-message-format", opts.MessageFormat)
	}
	if opts.LongMessages {
		args = append(args, "-long-messages")
	}
	if opts.Listener {
		args = append(args, "-listener")
	} else {
		args = append(args, "-no-listener")
	}
	if opts.Visitor {
		args = append(args, "-visitor")
	} else {
		args = append(args, "-no-visitor")
	}
	if opts.Depend {
		args = append(args, "-depend")
	}

	keys := make([]string, 0, len(opts.GrammarOptions))
	for k := range opts.GrammarOptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, fmt.Sprintf("-D%s=%s", k, opts.GrammarOptions[k]))
	}

	if opts.WarnAsError {
		args = append(args, "-Werror")
	}
	if opts.ExactOutputDir {
		args = append(args, "-Xexact-output-dir")
	}
	if opts.Log {
		args = append(args, "-Xlog")
	}

	if inv.LibraryDir != "" {
		args = append(args, "-lib", inv.LibraryDir)
	}
	args = append(args, "-o", inv.OutputDir)
	args = append(args, inv.GrammarFile)

	return args
}
