package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"treasury/database"
	"treasury/models"

	"github.com/jackc/pgx/v5"
)

// InterestRunRepository implements the InterestRunRepository interface
type InterestRunRepository struct {
	q queryable
}

// NewInterestRunRepository creates a new interest run repository
func NewInterestRunRepository(db *database.DB) *InterestRunRepository {
	return &InterestRunRepository{q: db.Pool}
}

func newInterestRunRepositoryWithTx(tx queryable) *InterestRunRepository {
	return &InterestRunRepository{q: tx}
}

const interestRunColumns = `
	id, run_date, daily_rate, status, current_postings, fixed_postings,
	early_release_postings, total_current_interest, total_fixed_interest,
	total_early_release_interest, failed_entities, execution_summary,
	created_at, updated_at
`

func scanInterestRun(row pgx.Row) (*models.InterestRun, error) {
	var run models.InterestRun
	var summaryJSON []byte

	err := row.Scan(
		&run.ID,
		&run.RunDate,
		&run.DailyRate,
		&run.Status,
		&run.CurrentPostings,
		&run.FixedPostings,
		&run.EarlyReleasePostings,
		&run.TotalCurrentInterest,
		&run.TotalFixedInterest,
		&run.TotalEarlyReleaseInterest,
		&run.FailedEntities,
		&summaryJSON,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(summaryJSON) > 0 {
		if err := json.Unmarshal(summaryJSON, &run.ExecutionSummary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal execution summary: %w", err)
		}
	}

	return &run, nil
}

// GetByDate returns the run recorded for a date
func (r *InterestRunRepository) GetByDate(ctx context.Context, date time.Time) (*models.InterestRun, error) {
	dateOnly := models.DateOf(date)

	query := `SELECT ` + interestRunColumns + ` FROM interest_runs WHERE run_date = $1`

	run, err := scanInterestRun(r.q.QueryRow(ctx, query, dateOnly))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interest run for date %s: %w", dateOnly.Format(time.DateOnly), err)
	}

	return run, nil
}

// Upsert records a run. A rerun for the same date replaces the earlier summary.
func (r *InterestRunRepository) Upsert(ctx context.Context, run *models.InterestRun) error {
	run.RunDate = models.DateOf(run.RunDate)

	summaryJSON, err := json.Marshal(run.ExecutionSummary)
	if err != nil {
		return fmt.Errorf("failed to marshal execution summary: %w", err)
	}

	query := `
		INSERT INTO interest_runs
		(run_date, daily_rate, status, current_postings, fixed_postings, early_release_postings,
		 total_current_interest, total_fixed_interest, total_early_release_interest,
		 failed_entities, execution_summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (run_date) DO UPDATE
		SET daily_rate = EXCLUDED.daily_rate,
		    status = EXCLUDED.status,
		    current_postings = EXCLUDED.current_postings,
		    fixed_postings = EXCLUDED.fixed_postings,
		    early_release_postings = EXCLUDED.early_release_postings,
		    total_current_interest = EXCLUDED.total_current_interest,
		    total_fixed_interest = EXCLUDED.total_fixed_interest,
		    total_early_release_interest = EXCLUDED.total_early_release_interest,
		    failed_entities = EXCLUDED.failed_entities,
		    execution_summary = EXCLUDED.execution_summary,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = r.q.QueryRow(ctx, query,
		run.RunDate,
		run.DailyRate,
		run.Status,
		run.CurrentPostings,
		run.FixedPostings,
		run.EarlyReleasePostings,
		run.TotalCurrentInterest,
		run.TotalFixedInterest,
		run.TotalEarlyReleaseInterest,
		run.FailedEntities,
		summaryJSON,
	).Scan(&run.ID, &run.CreatedAt, &run.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to record interest run for date %s: %w",
			run.RunDate.Format(time.DateOnly), err)
	}

	return nil
}

// GetLatest returns the most recent interest run
func (r *InterestRunRepository) GetLatest(ctx context.Context) (*models.InterestRun, error) {
	query := `SELECT ` + interestRunColumns + ` FROM interest_runs ORDER BY run_date DESC LIMIT 1`

	run, err := scanInterestRun(r.q.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest interest run: %w", err)
	}

	return run, nil
}
