package repository

import (
	"context"
	"fmt"
	"time"

	"treasury/database"
	"treasury/models"
)

// CashMovementRepository reads fund transfers and payment receipts as one stream
type CashMovementRepository struct {
	q queryable
}

// NewCashMovementRepository creates a new cash movement repository
func NewCashMovementRepository(db *database.DB) *CashMovementRepository {
	return &CashMovementRepository{q: db.Pool}
}

func newCashMovementRepositoryWithTx(tx queryable) *CashMovementRepository {
	return &CashMovementRepository{q: tx}
}

// ListByCompanyUpTo returns every movement of a company dated on or before asOf,
// oldest first. Non-qualifying kinds are included; callers filter.
func (r *CashMovementRepository) ListByCompanyUpTo(ctx context.Context, companyID int64, asOf time.Time) ([]*models.CashMovement, error) {
	query := `
		SELECT id, company_id,
		       CASE direction WHEN 'up' THEN 'transfer_up' ELSE 'transfer_down' END AS kind,
		       amount, transfer_date AS movement_date
		FROM fund_transfers
		WHERE company_id = $1 AND transfer_date <= $2
		UNION ALL
		SELECT id, company_id,
		       CASE receipt_type WHEN 'bank' THEN 'receipt_bank' ELSE 'receipt_bill' END AS kind,
		       amount, receipt_date AS movement_date
		FROM payment_receipts
		WHERE company_id = $1 AND receipt_date <= $2
		ORDER BY movement_date, kind, id
	`

	rows, err := r.q.Query(ctx, query, companyID, models.DateOf(asOf))
	if err != nil {
		return nil, fmt.Errorf("failed to list cash movements for company %d: %w", companyID, err)
	}
	defer rows.Close()

	var movements []*models.CashMovement
	for rows.Next() {
		var m models.CashMovement
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.Kind, &m.Amount, &m.Date); err != nil {
			return nil, fmt.Errorf("failed to scan cash movement for company %d: %w", companyID, err)
		}
		movements = append(movements, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash movements: %w", err)
	}

	return movements, nil
}
