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

// CurrentInterestRepository implements the CurrentInterestRepository interface
type CurrentInterestRepository struct {
	q queryable
}

// NewCurrentInterestRepository creates a new current interest repository
func NewCurrentInterestRepository(db *database.DB) *CurrentInterestRepository {
	return &CurrentInterestRepository{q: db.Pool}
}

func newCurrentInterestRepositoryWithTx(tx queryable) *CurrentInterestRepository {
	return &CurrentInterestRepository{q: tx}
}

// GetByCompanyAndDate returns the posting for a company on a date
func (r *CurrentInterestRepository) GetByCompanyAndDate(ctx context.Context, companyID int64, date time.Time) (*models.CurrentInterestPosting, error) {
	dateOnly := models.DateOf(date)

	query := `
		SELECT id, company_id, posting_date, balance, rate, amount, created_at, updated_at
		FROM current_interest_postings
		WHERE company_id = $1 AND posting_date = $2
	`

	var p models.CurrentInterestPosting
	err := r.q.QueryRow(ctx, query, companyID, dateOnly).Scan(
		&p.ID,
		&p.CompanyID,
		&p.PostingDate,
		&p.Balance,
		&p.Rate,
		&p.Amount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current interest for company %d on %s: %w",
			companyID, dateOnly.Format(time.DateOnly), err)
	}

	return &p, nil
}

// Upsert inserts a posting or overwrites balance, rate and amount of the
// existing (company_id, posting_date) row.
func (r *CurrentInterestRepository) Upsert(ctx context.Context, posting *models.CurrentInterestPosting) error {
	posting.PostingDate = models.DateOf(posting.PostingDate)

	query := `
		INSERT INTO current_interest_postings (company_id, posting_date, balance, rate, amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, posting_date) DO UPDATE
		SET balance = EXCLUDED.balance,
		    rate = EXCLUDED.rate,
		    amount = EXCLUDED.amount,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		posting.CompanyID,
		posting.PostingDate,
		posting.Balance,
		posting.Rate,
		posting.Amount,
	).Scan(&posting.ID, &posting.CreatedAt, &posting.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert current interest for company %d on %s: %w",
			posting.CompanyID, posting.PostingDate.Format(time.DateOnly), err)
	}

	return nil
}

// CountByDate returns the number of postings for a date
func (r *CurrentInterestRepository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM current_interest_postings WHERE posting_date = $1`

	var count int
	if err := r.q.QueryRow(ctx, query, models.DateOf(date)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count current interest postings: %w", err)
	}
	return count, nil
}
