package executor

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/specialistvlad/grammargen/internal/antlr"
	"github.com/specialistvlad/grammargen/internal/ctxlog"
	"github.com/specialistvlad/grammargen/internal/dag"
	"github.com/specialistvlad/grammargen/internal/report"
)

// Generator runs one external generation and returns the tool's combined
// diagnostic output. antlr.Tool is the production implementation; tests
// substitute fakes.
type Generator interface {
	Generate(ctx context.Context, inv antlr.Invocation) (string, error)
}

// Config carries the orchestration settings that shape output locations and
// root selection.
type Config struct {
	// SourceRoot is the scanned source directory; output package paths are
	// derived from grammar positions relative to it.
	SourceRoot string
	// OutputDir is the default output base directory.
	OutputDir string
	// OutputOverrides maps grammar names to explicit output base
	// directories, overriding OutputDir for those roots.
	OutputOverrides map[string]string
	// ExactOutputDir disables package path derivation; output goes into
	// the base directory as-is.
	ExactOutputDir bool
	// Only restricts generation to the named roots when non-empty.
	Only []string
}

// Executor drives one orchestration run over a validated graph.
type Executor struct {
	graph   *dag.Graph
	gen     Generator
	cfg     Config
	workers int
}

// New creates an executor. A worker count below two selects sequential
// processing, which is the safe default: deterministic diagnostics matter
// more here than throughput.
func New(graph *dag.Graph, gen Generator, cfg Config, workers int) *Executor {
	return &Executor{graph: graph, gen: gen, cfg: cfg, workers: workers}
}

// Run processes every root grammar and returns the build report. Roots are
// dispatched in lexical name order; with parallel workers the report is
// still deterministic because it is keyed and sorted by root name, not by
// completion order. Cancelling the context stops launching new roots while
// preserving already-recorded outcomes.
func (e *Executor) Run(ctx context.Context) *report.Report {
	logger := ctxlog.FromContext(ctx)
	rep := report.New()

	roots := e.selectRoots()
	logger.Debug("Executor starting.", "roots", len(roots), "workers", e.workers)

	if e.workers <= 1 {
		for _, root := range roots {
			if ctx.Err() != nil {
				logger.Warn("Run cancelled, remaining grammars skipped.", "next", root)
				break
			}
			e.buildRoot(ctx, root, rep)
		}
		return rep
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for root := range jobs {
				if ctx.Err() != nil {
					continue
				}
				e.buildRoot(ctx, root, rep)
			}
		}(i)
	}

dispatch:
	for _, root := range roots {
		select {
		case <-ctx.Done():
			logger.Warn("Run cancelled, remaining grammars skipped.")
			break dispatch
		case jobs <- root:
		}
	}
	close(jobs)
	wg.Wait()

	return rep
}

// selectRoots returns the roots to build, applying the name filter when one
// is configured. Filtering applies to roots only; closures always carry
// their dependencies.
func (e *Executor) selectRoots() []string {
	roots := e.graph.Roots()
	if len(e.cfg.Only) == 0 {
		return roots
	}
	wanted := make(map[string]bool, len(e.cfg.Only))
	for _, name := range e.cfg.Only {
		wanted[name] = true
	}
	var selected []string
	for _, root := range roots {
		if wanted[root] {
			selected = append(selected, root)
		}
	}
	return selected
}

// buildRoot computes the closure and output location for one root, invokes
// the generator once, and records the outcome.
func (e *Executor) buildRoot(ctx context.Context, root string, rep *report.Report) {
	logger := ctxlog.FromContext(ctx).With("grammar", root)

	file, ok := e.graph.File(root)
	if !ok {
		rep.Failure(root, "grammar disappeared from the graph")
		return
	}

	closure := e.graph.Closure(root)
	libDir, err := libraryDir(file, closure)
	if err != nil {
		logger.Error("Dependency layout rejected.", "error", err)
		rep.Failure(root, err.Error())
		return
	}

	outDir := e.outputDir(file)
	logger.Info("Generating parser.", "kind", file.Kind.String(), "output", outDir, "closure_size", len(closure))

	inv := antlr.Invocation{
		Root:        root,
		GrammarFile: filepath.Base(file.Path),
		GrammarDir:  filepath.Dir(file.Path),
		LibraryDir:  libDir,
		OutputDir:   outDir,
	}

	out, err := e.gen.Generate(ctx, inv)
	if err != nil {
		detail := err.Error()
		if trimmed := strings.TrimSpace(out); trimmed != "" {
			detail += "\n" + trimmed
		}
		logger.Error("Generation failed.", "error", err)
		rep.Failure(root, detail)
		return
	}

	logger.Debug("Generation succeeded.")
	rep.Success(root)
}
