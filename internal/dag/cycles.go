package dag

import "strings"

// Colors for the depth-first cycle search.
const (
	white = iota // unvisited
	gray         // in the current traversal stack
	black        // fully explored
)

// detectCycles runs a three-color depth-first search over import and
// tokenVocab edges. Reaching a gray node closes a cycle: the ordered path is
// reported as a CycleError and every grammar on it is excluded from the
// buildable set. The traversal continues afterwards so independent
// components are still validated.
func (g *Graph) detectCycles() {
	color := make(map[string]int, len(g.nodes))
	reported := make(map[string]bool)
	var stack []string

	var visit func(name string)
	visit = func(name string) {
		color[name] = gray
		stack = append(stack, name)

		for _, dep := range g.dependencies(name) {
			switch color[dep] {
			case white:
				visit(dep)
			case gray:
				g.recordCycle(cyclePath(stack, dep), reported)
			}
		}

		stack = stack[:len(stack)-1]
		color[name] = black
	}

	for _, name := range g.sortedNames() {
		if color[name] == white {
			visit(name)
		}
	}
}

// cyclePath slices the ordered cycle out of the traversal stack, repeating
// the entry grammar at the end: [A B A].
func cyclePath(stack []string, entry string) []string {
	start := 0
	for i, n := range stack {
		if n == entry {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	path = append(path, stack[start:]...)
	return append(path, entry)
}

// recordCycle files a CycleError once per distinct cycle (rotations of the
// same cycle dedupe to one report) and excludes its members.
func (g *Graph) recordCycle(path []string, reported map[string]bool) {
	key := canonicalCycleKey(path)
	if reported[key] {
		return
	}
	reported[key] = true

	g.issues = append(g.issues, &CycleError{Path: path})
	members := path[:len(path)-1]
	for _, m := range members {
		g.exclude(m, "member of circular import "+strings.Join(path, " -> "))
	}
}

// canonicalCycleKey normalizes a cycle path so every rotation of the same
// cycle maps to the same key.
func canonicalCycleKey(path []string) string {
	members := path[:len(path)-1]
	minIdx := 0
	for i, m := range members {
		if m < members[minIdx] {
			minIdx = i
		}
	}
	rotated := make([]string, 0, len(members))
	rotated = append(rotated, members[minIdx:]...)
	rotated = append(rotated, members[:minIdx]...)
	return strings.Join(rotated, "\x00")
}
