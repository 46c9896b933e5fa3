package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/grammargen/internal/antlr"
)

// FakeGenerator is a scriptable executor.Generator that records every
// invocation instead of spawning the external tool. Safe for concurrent use.
type FakeGenerator struct {
	mu          sync.Mutex
	invocations []antlr.Invocation

	// FailRoots maps a root grammar name to the diagnostic output the fake
	// emits while failing that root.
	FailRoots map[string]string
}

// Generate implements executor.Generator.
func (f *FakeGenerator) Generate(ctx context.Context, inv antlr.Invocation) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	f.invocations = append(f.invocations, inv)
	f.mu.Unlock()

	if diag, ok := f.FailRoots[inv.Root]; ok {
		return diag, fmt.Errorf("%s parser couldn't be generated: exit status 1", inv.Root)
	}
	return "", nil
}

// Invocations returns a copy of all recorded invocations in call order.
func (f *FakeGenerator) Invocations() []antlr.Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]antlr.Invocation, len(f.invocations))
	copy(out, f.invocations)
	return out
}

// Roots returns the root names of all recorded invocations in call order.
func (f *FakeGenerator) Roots() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	roots := make([]string, len(f.invocations))
	for i, inv := range f.invocations {
		roots[i] = inv.Root
	}
	return roots
}
