package reconcile

import (
	"context"
	"errors"
)

// Outcome classifies how a single reconciliation task ended.
type Outcome string

const (
	// OutcomeUpdated means local state was changed to match the remote state.
	OutcomeUpdated Outcome = "updated"
	// OutcomeUnchanged means local and remote state already agreed.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeSkipped means the entity was not eligible and nothing was fetched.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeNotFound means the remote side has no record of the entity.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeFailed means the remote call or the task itself failed.
	OutcomeFailed Outcome = "failed"
	// OutcomeWouldUpdate is reported instead of OutcomeUpdated in dry-run mode.
	OutcomeWouldUpdate Outcome = "would_update"
	// OutcomeRegressionIgnored means the remote state ranks behind the local
	// state and forward-only mode kept the local value.
	OutcomeRegressionIgnored Outcome = "regression_ignored"
)

// ErrPoolClosed is returned by Enqueue after Close has been called.
var ErrPoolClosed = errors.New("reconcile pool is closed")

// Task is one unit of reconciliation work.
type Task struct {
	// Key identifies the entity in logs.
	Key string
	// Run performs the work. A returned error marks the task failed.
	Run func(ctx context.Context) (Outcome, error)
}

// Summary tallies task outcomes for one run.
type Summary struct {
	// Total is the number of tasks that finished.
	Total int `json:"total"`
	// Errors counts tasks that returned an error or panicked.
	Errors int `json:"errors"`
	// Outcomes counts finished tasks per outcome.
	Outcomes map[Outcome]int `json:"outcomes"`
}

// Count returns how many tasks ended with o.
func (s Summary) Count(o Outcome) int {
	return s.Outcomes[o]
}

func (s *Summary) record(o Outcome, failed bool) {
	if s.Outcomes == nil {
		s.Outcomes = make(map[Outcome]int)
	}
	s.Total++
	s.Outcomes[o]++
	if failed {
		s.Errors++
	}
}

func (s Summary) clone() Summary {
	out := Summary{Total: s.Total, Errors: s.Errors, Outcomes: make(map[Outcome]int, len(s.Outcomes))}
	for k, v := range s.Outcomes {
		out.Outcomes[k] = v
	}
	return out
}
