package repository

import (
	"context"
	"errors"
	"fmt"

	"treasury/database"
	"treasury/models"

	"github.com/jackc/pgx/v5"
)

// InterestRateRepository implements the InterestRateRepository interface
type InterestRateRepository struct {
	q queryable
}

// NewInterestRateRepository creates a new interest rate repository
func NewInterestRateRepository(db *database.DB) *InterestRateRepository {
	return &InterestRateRepository{q: db.Pool}
}

func newInterestRateRepositoryWithTx(tx queryable) *InterestRateRepository {
	return &InterestRateRepository{q: tx}
}

// GetLatestActive returns the most recently created active rate of the given type
func (r *InterestRateRepository) GetLatestActive(ctx context.Context, rateType models.RateType) (*models.InterestRate, error) {
	query := `
		SELECT id, rate_type, rate, status, created_at
		FROM interest_rates
		WHERE rate_type = $1 AND status = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var rate models.InterestRate
	err := r.q.QueryRow(ctx, query, rateType, models.RateStatusActive).Scan(
		&rate.ID,
		&rate.RateType,
		&rate.AnnualPercent,
		&rate.Status,
		&rate.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active %s rate: %w", rateType, err)
	}

	return &rate, nil
}
