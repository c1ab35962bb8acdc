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

// FixedInterestRepository implements the FixedInterestRepository interface
type FixedInterestRepository struct {
	q queryable
}

// NewFixedInterestRepository creates a new fixed interest repository
func NewFixedInterestRepository(db *database.DB) *FixedInterestRepository {
	return &FixedInterestRepository{q: db.Pool}
}

func newFixedInterestRepositoryWithTx(tx queryable) *FixedInterestRepository {
	return &FixedInterestRepository{q: tx}
}

const fixedInterestColumns = `
	id, deposit_code, company_id, posting_date, principal, rate, days, amount, is_estimate, created_at
`

func scanFixedInterest(row pgx.Row) (*models.FixedInterestPosting, error) {
	var p models.FixedInterestPosting
	err := row.Scan(
		&p.ID,
		&p.DepositCode,
		&p.CompanyID,
		&p.PostingDate,
		&p.Principal,
		&p.Rate,
		&p.Days,
		&p.Amount,
		&p.IsEstimate,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert appends a snapshot. It reports false without error when a snapshot
// for (deposit_code, posting_date) is already present.
func (r *FixedInterestRepository) Insert(ctx context.Context, posting *models.FixedInterestPosting) (bool, error) {
	posting.PostingDate = models.DateOf(posting.PostingDate)

	query := `
		INSERT INTO fixed_interest_postings
		(deposit_code, company_id, posting_date, principal, rate, days, amount, is_estimate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (deposit_code, posting_date) DO NOTHING
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		posting.DepositCode,
		posting.CompanyID,
		posting.PostingDate,
		posting.Principal,
		posting.Rate,
		posting.Days,
		posting.Amount,
		posting.IsEstimate,
	).Scan(&posting.ID, &posting.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert fixed interest for %s on %s: %w",
			posting.DepositCode, posting.PostingDate.Format(time.DateOnly), err)
	}

	return true, nil
}

// GetLatestByDeposit returns the most recent snapshot of a deposit
func (r *FixedInterestRepository) GetLatestByDeposit(ctx context.Context, depositCode string) (*models.FixedInterestPosting, error) {
	query := `
		SELECT ` + fixedInterestColumns + `
		FROM fixed_interest_postings
		WHERE deposit_code = $1
		ORDER BY posting_date DESC
		LIMIT 1
	`

	p, err := scanFixedInterest(r.q.QueryRow(ctx, query, depositCode))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest fixed interest for %s: %w", depositCode, err)
	}
	return p, nil
}

// ListByDeposit returns every snapshot of a deposit in posting order
func (r *FixedInterestRepository) ListByDeposit(ctx context.Context, depositCode string) ([]*models.FixedInterestPosting, error) {
	query := `
		SELECT ` + fixedInterestColumns + `
		FROM fixed_interest_postings
		WHERE deposit_code = $1
		ORDER BY posting_date
	`

	rows, err := r.q.Query(ctx, query, depositCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixed interest for %s: %w", depositCode, err)
	}
	defer rows.Close()

	var postings []*models.FixedInterestPosting
	for rows.Next() {
		p, err := scanFixedInterest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixed interest: %w", err)
		}
		postings = append(postings, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fixed interest: %w", err)
	}
	return postings, nil
}
