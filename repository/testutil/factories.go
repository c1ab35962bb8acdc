package testutil

import (
	"context"
	"testing"
	"time"

	"treasury/database"
	"treasury/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Day builds a calendar date at midnight UTC
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// InsertCompany seeds a company and returns its id
func InsertCompany(t *testing.T, db *database.DB, name string, active bool) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO companies (name, is_active) VALUES ($1, $2) RETURNING id`,
		name, active,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertTransfer seeds a fund transfer. direction is "up" or "down".
func InsertTransfer(t *testing.T, db *database.DB, companyID int64, direction, amount string, date time.Time) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		`INSERT INTO fund_transfers (company_id, direction, amount, transfer_date) VALUES ($1, $2, $3, $4)`,
		companyID, direction, decimal.RequireFromString(amount), date,
	)
	require.NoError(t, err)
}

// InsertReceipt seeds a payment receipt. receiptType is "bank" or "bill".
func InsertReceipt(t *testing.T, db *database.DB, companyID int64, receiptType, amount string, date time.Time) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		`INSERT INTO payment_receipts (company_id, receipt_type, amount, receipt_date) VALUES ($1, $2, $3, $4)`,
		companyID, receiptType, decimal.RequireFromString(amount), date,
	)
	require.NoError(t, err)
}

// InsertRate seeds an interest rate with an explicit creation time
func InsertRate(t *testing.T, db *database.DB, rateType models.RateType, annualPercent string, status models.RateStatus, createdAt time.Time) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO interest_rates (rate_type, rate, status, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		string(rateType), decimal.RequireFromString(annualPercent), string(status), createdAt,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// NewTestDeposit returns an active twelve-month deposit of 1,000,000 starting on start,
// whose first posting is scheduled 90 days later
func NewTestDeposit(code string, companyID int64, start time.Time) *models.FixedDeposit {
	return &models.FixedDeposit{
		DepositCode:      code,
		CompanyID:        companyID,
		Principal:        decimal.NewFromInt(1000000),
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, 360),
		TermMonths:       12,
		Status:           models.DepositStatusActive,
		ReleaseAmount:    decimal.Zero,
		RemainingAmount:  decimal.NewFromInt(1000000),
		LastInterestDate: start.AddDate(0, 0, 90),
	}
}

// InsertDeposit seeds a fixed deposit and fills in its id
func InsertDeposit(t *testing.T, db *database.DB, d *models.FixedDeposit) {
	t.Helper()
	err := db.QueryRow(context.Background(), `
		INSERT INTO fixed_deposits
		(deposit_code, company_id, principal, start_date, end_date, term_months, status,
		 early_release, release_date, release_amount, remaining_amount, last_interest_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		d.DepositCode, d.CompanyID, d.Principal, d.StartDate, d.EndDate, d.TermMonths, string(d.Status),
		d.EarlyRelease, d.ReleaseDate, d.ReleaseAmount, d.RemainingAmount, d.LastInterestDate,
	).Scan(&d.ID)
	require.NoError(t, err)
}

// NewTestInterestRun creates a run summary with small non-zero totals
func NewTestInterestRun(runDate time.Time) *models.InterestRun {
	return &models.InterestRun{
		RunDate:                   runDate,
		DailyRate:                 decimal.RequireFromString("0.00005"),
		Status:                    models.InterestRunStatusCompleted,
		CurrentPostings:           3,
		FixedPostings:             1,
		TotalCurrentInterest:      decimal.RequireFromString("37.50"),
		TotalFixedInterest:        decimal.RequireFromString("4500.00"),
		TotalEarlyReleaseInterest: decimal.Zero,
		ExecutionSummary: map[string]interface{}{
			"duration_ms": 1200,
		},
	}
}
