// Package report holds the per-run aggregate of per-grammar build outcomes.
// It is the sole output surface of the orchestration core; how the report is
// presented (log lines, process exit code) is up to the caller.
package report

import (
	"fmt"
	"sort"
	"sync"
)

// Status classifies the outcome of a single root grammar build.
type Status int

const (
	// Succeeded means the generator exited cleanly for this root.
	Succeeded Status = iota
	// Failed means the generator reported an error or could not be invoked.
	Failed
)

// String returns a human readable form of the status.
func (s Status) String() string {
	if s == Succeeded {
		return "succeeded"
	}
	return "failed"
}

// Outcome is the recorded result for one root grammar.
type Outcome struct {
	// Root is the declared name of the root grammar.
	Root string
	// Status is the success/failure classification.
	Status Status
	// Detail carries the external tool's diagnostics verbatim on failure.
	Detail string
}

// Report accumulates outcomes keyed by root grammar name. It is safe for
// concurrent use so parallel root builds can record results directly.
type Report struct {
	mu       sync.Mutex
	outcomes map[string]Outcome
}

// New creates an empty report.
func New() *Report {
	return &Report{outcomes: make(map[string]Outcome)}
}

// Success records a clean outcome for the named root.
func (r *Report) Success(root string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[root] = Outcome{Root: root, Status: Succeeded}
}

// Failure records a failed outcome for the named root, retaining the
// tool's diagnostic output verbatim.
func (r *Report) Failure(root string, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[root] = Outcome{Root: root, Status: Failed, Detail: detail}
}

// Len returns the number of recorded outcomes.
func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.outcomes)
}

// Outcomes returns all recorded outcomes ordered by root name, so two runs
// over an unchanged tree report in an identical order regardless of how the
// builds were scheduled.
func (r *Report) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Outcome, 0, len(r.outcomes))
	for _, o := range r.outcomes {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Root < out[j].Root })
	return out
}

// Failed returns only the failed outcomes, ordered by root name.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes() {
		if o.Status == Failed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err returns a summary error if any root failed, or nil when the whole run
// succeeded.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("generation failed for %d of %d grammars", len(failed), r.Len())
}
