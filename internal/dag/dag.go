package dag

import (
	"context"
	"sort"

	"github.com/specialistvlad/grammargen/internal/ctxlog"
	"github.com/specialistvlad/grammargen/internal/grammar"
)

// Graph is the validated grammar dependency graph. Nodes are keyed by
// declared grammar name; edges are stored as name references so validation
// runs as pure graph algorithms, independent of file system state.
type Graph struct {
	nodes    map[string]*node
	issues   []error
	excluded map[string]string
}

// node is a single grammar in the graph.
type node struct {
	file *grammar.File
	// importedBy counts incoming import edges from other grammars.
	importedBy int
	// vocabRefs counts incoming tokenVocab references.
	vocabRefs int
}

// Build constructs a complete, validated dependency graph from extracted
// grammar metadata. Validation problems never abort the build; they are
// accumulated as typed issues, and the affected grammars (plus everything
// relying on them) are excluded from the buildable set.
func Build(ctx context.Context, files []*grammar.File) *Graph {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "file_count", len(files))

	g := &Graph{
		nodes:    make(map[string]*node),
		excluded: make(map[string]string),
	}

	g.createNodes(files)
	logger.Debug("Build: node creation complete.", "node_count", len(g.nodes))

	g.resolveEdges()
	logger.Debug("Build: edge resolution complete.")

	g.detectCycles()
	logger.Debug("Build: cycle detection complete.")

	g.propagateExclusions()
	logger.Debug("Build: graph construction finished.",
		"excluded", len(g.excluded), "issues", len(g.issues))
	return g
}

// createNodes performs the first pass: one node per unique grammar name.
// A name declared by more than one file is a fatal ambiguity for that name;
// none of the claimants enter the graph.
func (g *Graph) createNodes(files []*grammar.File) {
	byName := make(map[string][]*grammar.File)
	for _, f := range files {
		byName[f.Name] = append(byName[f.Name], f)
	}

	for _, name := range sortedKeys(byName) {
		claims := byName[name]
		if len(claims) > 1 {
			paths := make([]string, len(claims))
			for i, f := range claims {
				paths[i] = f.Path
			}
			sort.Strings(paths)
			g.issues = append(g.issues, &AmbiguityError{Name: name, Paths: paths})
			continue
		}
		g.nodes[name] = &node{file: claims[0]}
	}
}

// resolveEdges performs the second pass: every import and tokenVocab entry
// must name a node present in the graph. Dangling references are recorded
// against the dependent, which is then excluded from the buildable set.
// Incoming edge counts for root computation are tallied here.
func (g *Graph) resolveEdges() {
	for _, name := range g.sortedNames() {
		n := g.nodes[name]
		for _, imp := range n.file.Imports {
			if target, ok := g.nodes[imp]; ok {
				target.importedBy++
				continue
			}
			g.issues = append(g.issues, &UnresolvedReferenceError{From: name, Target: imp})
			g.exclude(name, "unresolved import "+imp)
		}
		if v := n.file.TokenVocab; v != "" {
			if target, ok := g.nodes[v]; ok {
				target.vocabRefs++
			} else {
				g.issues = append(g.issues, &UnresolvedReferenceError{From: name, Target: v, TokenVocab: true})
				g.exclude(name, "unresolved token vocabulary "+v)
			}
		}
	}
}

// propagateExclusions removes from the buildable set every grammar that
// transitively relies on an excluded one. Runs to a fixpoint; the graph is
// small enough that the quadratic worst case is irrelevant.
func (g *Graph) propagateExclusions() {
	for changed := true; changed; {
		changed = false
		for _, name := range g.sortedNames() {
			if _, gone := g.excluded[name]; gone {
				continue
			}
			for _, dep := range g.dependencies(name) {
				if reason, gone := g.excluded[dep]; gone {
					g.exclude(name, "depends on excluded grammar "+dep+" ("+reason+")")
					changed = true
					break
				}
			}
		}
	}
}

// dependencies returns the resolved outgoing edges of a node (imports plus
// tokenVocab) in deterministic order. Dangling names are omitted; they were
// already reported during edge resolution.
func (g *Graph) dependencies(name string) []string {
	n, ok := g.nodes[name]
	if !ok {
		return nil
	}
	var deps []string
	for _, imp := range n.file.Imports {
		if _, ok := g.nodes[imp]; ok {
			deps = append(deps, imp)
		}
	}
	if v := n.file.TokenVocab; v != "" {
		if _, ok := g.nodes[v]; ok {
			deps = append(deps, v)
		}
	}
	return deps
}

// exclude removes a grammar from the buildable set, keeping the first
// recorded reason.
func (g *Graph) exclude(name, reason string) {
	if _, done := g.excluded[name]; !done {
		g.excluded[name] = reason
	}
}

// Len returns the number of grammars in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// File returns the extracted metadata for the named grammar.
func (g *Graph) File(name string) (*grammar.File, bool) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, false
	}
	return n.file, true
}

// Issues returns all validation problems found while building the graph, in
// the deterministic order they were discovered.
func (g *Graph) Issues() []error {
	return g.issues
}

// Excluded returns the grammars removed from the buildable set, mapped to a
// human readable reason.
func (g *Graph) Excluded() map[string]string {
	out := make(map[string]string, len(g.excluded))
	for name, reason := range g.excluded {
		out[name] = reason
	}
	return out
}

// Roots returns the root grammars in lexical order: every grammar that is
// not imported by any other grammar, is not referenced purely as a token
// vocabulary, and was not excluded by validation. Non-root grammars are
// generated only as part of a root's closure; this prevents standalone
// generation of shared content like common terminals.
func (g *Graph) Roots() []string {
	var roots []string
	for _, name := range g.sortedNames() {
		if _, gone := g.excluded[name]; gone {
			continue
		}
		n := g.nodes[name]
		if n.importedBy == 0 && n.vocabRefs == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}

// NonRoots returns the buildable grammars that are not roots, in lexical
// order. Together with Roots it partitions the non-excluded node set.
func (g *Graph) NonRoots() []string {
	rootSet := make(map[string]bool)
	for _, r := range g.Roots() {
		rootSet[r] = true
	}
	var rest []string
	for _, name := range g.sortedNames() {
		if _, gone := g.excluded[name]; gone {
			continue
		}
		if !rootSet[name] {
			rest = append(rest, name)
		}
	}
	return rest
}

// Closure returns the transitive dependency closure of the named grammar,
// dependencies before dependents, ending with the grammar itself. The
// traversal order is deterministic.
func (g *Graph) Closure(name string) []*grammar.File {
	var out []*grammar.File
	seen := make(map[string]bool)

	var visit func(n string)
	visit = func(n string) {
		if seen[n] {
			return
		}
		seen[n] = true
		for _, dep := range g.dependencies(n) {
			visit(dep)
		}
		out = append(out, g.nodes[n].file)
	}

	if _, ok := g.nodes[name]; ok {
		visit(name)
	}
	return out
}

// sortedNames returns all node names in lexical order.
func (g *Graph) sortedNames() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sortedKeys returns the keys of a map keyed by string, sorted.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
