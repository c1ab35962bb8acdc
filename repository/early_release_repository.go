package repository

import (
	"context"
	"fmt"
	"time"

	"treasury/database"
	"treasury/models"
)

// EarlyReleaseRepository implements the EarlyReleaseRepository interface
type EarlyReleaseRepository struct {
	q queryable
}

// NewEarlyReleaseRepository creates a new early release repository
func NewEarlyReleaseRepository(db *database.DB) *EarlyReleaseRepository {
	return &EarlyReleaseRepository{q: db.Pool}
}

func newEarlyReleaseRepositoryWithTx(tx queryable) *EarlyReleaseRepository {
	return &EarlyReleaseRepository{q: tx}
}

// ExistsForDeposit reports whether (depositCode, startDate) has been settled
func (r *EarlyReleaseRepository) ExistsForDeposit(ctx context.Context, depositCode string, startDate time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM early_release_postings
			WHERE deposit_code = $1 AND start_date = $2
		)
	`

	var exists bool
	if err := r.q.QueryRow(ctx, query, depositCode, models.DateOf(startDate)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check settlement for %s: %w", depositCode, err)
	}
	return exists, nil
}

// Insert appends a settlement
func (r *EarlyReleaseRepository) Insert(ctx context.Context, posting *models.EarlyReleasePosting) error {
	query := `
		INSERT INTO early_release_postings
		(deposit_code, company_id, start_date, release_date, release_amount, rate, interest_days, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		posting.DepositCode,
		posting.CompanyID,
		models.DateOf(posting.StartDate),
		models.DateOf(posting.ReleaseDate),
		posting.ReleaseAmount,
		posting.Rate,
		posting.InterestDays,
		posting.Amount,
	).Scan(&posting.ID, &posting.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert settlement for %s: %w", posting.DepositCode, err)
	}
	return nil
}
