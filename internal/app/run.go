package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/grammargen/internal/antlr"
	"github.com/specialistvlad/grammargen/internal/ctxlog"
	"github.com/specialistvlad/grammargen/internal/dag"
	"github.com/specialistvlad/grammargen/internal/executor"
	"github.com/specialistvlad/grammargen/internal/fsutil"
	"github.com/specialistvlad/grammargen/internal/grammar"
	"github.com/specialistvlad/grammargen/internal/report"
)

// GrammarFileExt is the file extension of ANTLR grammars.
const GrammarFileExt = ".g4"

// Run executes the main application logic: scan the source tree, extract
// grammar metadata, build and validate the dependency graph, and orchestrate
// one generator invocation per root grammar. It returns a non-nil error when
// the run could not proceed or when any root failed to generate.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	cfg := a.config
	a.logger.Debug("App.Run method started.")

	if cfg.SourcePath == "" {
		return fmt.Errorf("no source path configured, pass one on the command line or set it in %s", cfg.ConfigPath)
	}

	paths, err := fsutil.FindFilesByExtension(cfg.SourcePath, GrammarFileExt, cfg.OutputDir)
	if err != nil {
		// The tree cannot be trusted if the walk failed; nothing below
		// this point is recoverable.
		return fmt.Errorf("failed to scan source tree: %w", err)
	}
	a.logger.Debug("Source tree scanned.", "grammar_files", len(paths))

	files, err := a.extract(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		a.logger.Warn("No grammar files found, nothing to generate.", "source", cfg.SourcePath)
		return nil
	}

	graph := dag.Build(ctx, files)
	if err := a.reportIssues(graph); err != nil {
		return err
	}

	roots := graph.Roots()
	if len(roots) == 0 {
		a.logger.Warn("No root grammars found, nothing to generate.")
		return nil
	}
	a.logger.Info("Dependency resolution complete.",
		"grammars", graph.Len(), "roots", len(roots))

	gen, err := a.generator(ctx)
	if err != nil {
		return err
	}

	exec := executor.New(graph, gen, executor.Config{
		SourceRoot:      cfg.SourcePath,
		OutputDir:       cfg.OutputDir,
		OutputOverrides: cfg.OutputOverrides,
		ExactOutputDir:  cfg.Generator.ExactOutputDir,
		Only:            cfg.Grammars,
	}, cfg.WorkerCount)

	rep := exec.Run(ctx)
	a.logReport(rep)

	a.logger.Debug("App.Run method finished.")
	return rep.Err()
}

// extract reads every discovered file and parses its metadata. A file whose
// header cannot be extracted is excluded with a warning; the run continues.
// I/O failures reading a file abort the run, like any other scan failure.
func (a *App) extract(paths []string) ([]*grammar.File, error) {
	var files []*grammar.File
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("can't read grammar %q: %w", path, err)
		}

		file, err := grammar.Parse(path, src)
		if err != nil {
			var parseErr *grammar.ParseError
			if errors.As(err, &parseErr) {
				a.logger.Warn("Grammar file excluded.", "path", path, "reason", parseErr.Reason)
				continue
			}
			return nil, err
		}

		if file.Name != file.Stem() {
			// ANTLR requires the two to match; the declared name stays
			// authoritative for dependency resolution.
			a.logger.Warn("Declared grammar name differs from file name.",
				"path", path, "declared", file.Name, "file", file.Stem())
		}
		files = append(files, file)
	}
	return files, nil
}

// reportIssues surfaces graph validation problems. They are warnings by
// default; with warnings-as-errors configured the run aborts on them.
func (a *App) reportIssues(graph *dag.Graph) error {
	issues := graph.Issues()
	if len(issues) == 0 {
		return nil
	}

	if a.config.Generator.WarnAsError {
		return fmt.Errorf("grammar validation failed: %w", errors.Join(issues...))
	}

	for _, issue := range issues {
		a.logger.Warn("Grammar validation issue.", "issue", issue.Error())
	}
	for name, reason := range graph.Excluded() {
		a.logger.Warn("Grammar excluded from generation.", "grammar", name, "reason", reason)
	}
	return nil
}

// generator returns the injected Generator or locates the real external tool.
func (a *App) generator(ctx context.Context) (executor.Generator, error) {
	if a.gen != nil {
		return a.gen, nil
	}

	cfg := a.config
	java := cfg.JavaPath
	if java == "" {
		var err error
		if java, err = antlr.FindJava(ctx); err != nil {
			return nil, err
		}
	}
	jar := cfg.JarPath
	if jar == "" {
		var err error
		if jar, err = antlr.FindJar(cfg.JarLibDir); err != nil {
			return nil, err
		}
	}
	a.logger.Debug("Generator located.", "java", java, "jar", jar)

	return &antlr.Tool{Java: java, Jar: jar, Options: cfg.Generator}, nil
}

// logReport prints the per-root outcomes in their deterministic order.
func (a *App) logReport(rep *report.Report) {
	for _, o := range rep.Outcomes() {
		if o.Status == report.Succeeded {
			a.logger.Info("Grammar generated.", "grammar", o.Root)
		} else {
			a.logger.Error("Grammar generation failed.", "grammar", o.Root, "detail", o.Detail)
		}
	}
}
