package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestRunStatus summarizes how a run finished
type InterestRunStatus string

const (
	InterestRunStatusCompleted           InterestRunStatus = "completed"
	InterestRunStatusCompletedWithErrors InterestRunStatus = "completed_with_errors"
)

// InterestRun represents a daily interest computation run
type InterestRun struct {
	ID                        int64                  `db:"id"`
	RunDate                   time.Time              `db:"run_date"`
	DailyRate                 decimal.Decimal        `db:"daily_rate"`
	Status                    InterestRunStatus      `db:"status"`
	CurrentPostings           int                    `db:"current_postings"`
	FixedPostings             int                    `db:"fixed_postings"`
	EarlyReleasePostings      int                    `db:"early_release_postings"`
	TotalCurrentInterest      decimal.Decimal        `db:"total_current_interest"`
	TotalFixedInterest        decimal.Decimal        `db:"total_fixed_interest"`
	TotalEarlyReleaseInterest decimal.Decimal        `db:"total_early_release_interest"`
	FailedEntities            int                    `db:"failed_entities"`
	ExecutionSummary          map[string]interface{} `db:"execution_summary"`
	CreatedAt                 time.Time              `db:"created_at"`
	UpdatedAt                 time.Time              `db:"updated_at"`
}

// TotalInterestDistributed sums interest across all three posting families
func (r *InterestRun) TotalInterestDistributed() decimal.Decimal {
	return r.TotalCurrentInterest.Add(r.TotalFixedInterest).Add(r.TotalEarlyReleaseInterest)
}
