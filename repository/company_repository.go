package repository

import (
	"context"
	"fmt"

	"treasury/database"
	"treasury/models"
)

// CompanyRepository implements the CompanyRepository interface
type CompanyRepository struct {
	q queryable
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *database.DB) *CompanyRepository {
	return &CompanyRepository{q: db.Pool}
}

func newCompanyRepositoryWithTx(tx queryable) *CompanyRepository {
	return &CompanyRepository{q: tx}
}

// ListActive returns all active companies ordered by id
func (r *CompanyRepository) ListActive(ctx context.Context) ([]*models.Company, error) {
	query := `
		SELECT id, name, is_active, created_at
		FROM companies
		WHERE is_active = TRUE
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	return companies, nil
}
