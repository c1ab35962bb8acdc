package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"treasury/database"
	"treasury/models"

	"github.com/jackc/pgx/v5"
)

// FixedDepositRepository implements the FixedDepositRepository interface
type FixedDepositRepository struct {
	q queryable
}

// NewFixedDepositRepository creates a new fixed deposit repository
func NewFixedDepositRepository(db *database.DB) *FixedDepositRepository {
	return &FixedDepositRepository{q: db.Pool}
}

func newFixedDepositRepositoryWithTx(tx queryable) *FixedDepositRepository {
	return &FixedDepositRepository{q: tx}
}

const fixedDepositColumns = `
	id, deposit_code, company_id, principal, start_date, end_date, term_months,
	status, early_release, release_date, release_amount, remaining_amount,
	last_interest_date, created_at, updated_at
`

func scanFixedDeposit(row pgx.Row) (*models.FixedDeposit, error) {
	var d models.FixedDeposit
	err := row.Scan(
		&d.ID,
		&d.DepositCode,
		&d.CompanyID,
		&d.Principal,
		&d.StartDate,
		&d.EndDate,
		&d.TermMonths,
		&d.Status,
		&d.EarlyRelease,
		&d.ReleaseDate,
		&d.ReleaseAmount,
		&d.RemainingAmount,
		&d.LastInterestDate,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *FixedDepositRepository) list(ctx context.Context, query string, args ...any) ([]*models.FixedDeposit, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []*models.FixedDeposit
	for rows.Next() {
		d, err := scanFixedDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixed deposit: %w", err)
		}
		deposits = append(deposits, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fixed deposits: %w", err)
	}
	return deposits, nil
}

// GetByCode retrieves a deposit by its business key
func (r *FixedDepositRepository) GetByCode(ctx context.Context, depositCode string) (*models.FixedDeposit, error) {
	query := `SELECT ` + fixedDepositColumns + ` FROM fixed_deposits WHERE deposit_code = $1`

	d, err := scanFixedDeposit(r.q.QueryRow(ctx, query, depositCode))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fixed deposit %s: %w", depositCode, err)
	}
	return d, nil
}

// ListAccrualCandidates returns active deposits that have not been released early
func (r *FixedDepositRepository) ListAccrualCandidates(ctx context.Context) ([]*models.FixedDeposit, error) {
	query := `
		SELECT ` + fixedDepositColumns + `
		FROM fixed_deposits
		WHERE status = $1 AND early_release = FALSE
		ORDER BY deposit_code
	`

	deposits, err := r.list(ctx, query, models.DepositStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list accrual candidates: %w", err)
	}
	return deposits, nil
}

// ListEarlyReleaseCandidates returns active deposits released early on or before asOf
func (r *FixedDepositRepository) ListEarlyReleaseCandidates(ctx context.Context, asOf time.Time) ([]*models.FixedDeposit, error) {
	query := `
		SELECT ` + fixedDepositColumns + `
		FROM fixed_deposits
		WHERE status = $1
		  AND early_release = TRUE
		  AND release_date IS NOT NULL
		  AND release_date <= $2
		ORDER BY deposit_code
	`

	deposits, err := r.list(ctx, query, models.DepositStatusActive, models.DateOf(asOf))
	if err != nil {
		return nil, fmt.Errorf("failed to list early release candidates: %w", err)
	}
	return deposits, nil
}

// UpdateLastInterestDate moves the deposit's schedule pointer
func (r *FixedDepositRepository) UpdateLastInterestDate(ctx context.Context, depositCode string, date time.Time) error {
	query := `
		UPDATE fixed_deposits
		SET last_interest_date = $2, updated_at = NOW()
		WHERE deposit_code = $1
	`

	tag, err := r.q.Exec(ctx, query, depositCode, models.DateOf(date))
	if err != nil {
		return fmt.Errorf("failed to update last interest date for %s: %w", depositCode, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("fixed deposit %s not found", depositCode)
	}
	return nil
}
