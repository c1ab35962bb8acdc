package application

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEntityFailures is returned by Run when at least one entity failed and the
// worker is configured to treat that as a failed run
var ErrEntityFailures = errors.New("interest run finished with entity failures")

// Phase names a step of the daily run
type Phase string

const (
	PhaseCurrent      Phase = "current"
	PhaseEarlyRelease Phase = "early_release"
	PhaseFixed        Phase = "fixed"
)

// EntityFailure records one company or deposit that could not be processed
type EntityFailure struct {
	Phase    Phase
	EntityID string
	Err      error
}

func (f EntityFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Phase, f.EntityID, f.Err)
}

func (f EntityFailure) Unwrap() error {
	return f.Err
}

// RunReport summarizes a finished run
type RunReport struct {
	AsOf      time.Time
	DailyRate decimal.Decimal

	CompaniesProcessed int
	CurrentPosted      int

	ReleasesDue                int
	EarlyReleaseSettled        int
	EarlyReleaseAlreadySettled int

	DepositsConsidered int
	FixedPosted        int
	FixedAlreadyPosted int
	FixedNotDue        int
	FixedIneligible    int

	Totals   RunTotals
	Failures []EntityFailure
	Duration time.Duration
}

func (r *RunReport) addFailure(phase Phase, entityID string, err error) {
	r.Failures = append(r.Failures, EntityFailure{Phase: phase, EntityID: entityID, Err: err})
}

// FailedIDs groups failed entity ids by phase, sorted
func (r *RunReport) FailedIDs() map[Phase][]string {
	out := make(map[Phase][]string)
	for _, f := range r.Failures {
		out[f.Phase] = append(out[f.Phase], f.EntityID)
	}
	for phase := range out {
		sort.Strings(out[phase])
	}
	return out
}

// HasFailures reports whether any entity failed
func (r *RunReport) HasFailures() bool {
	return len(r.Failures) > 0
}
