package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrentInterestPosting is the demand interest for one company on one day.
// Recomputing the same day overwrites the row.
type CurrentInterestPosting struct {
	ID          int64           `db:"id"`
	CompanyID   int64           `db:"company_id"`
	PostingDate time.Time       `db:"posting_date"`
	Balance     decimal.Decimal `db:"balance"`
	Rate        decimal.Decimal `db:"rate"`
	Amount      decimal.Decimal `db:"amount"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// FixedInterestPosting is an append-only snapshot written each time a deposit
// reaches its scheduled posting date.
type FixedInterestPosting struct {
	ID          int64           `db:"id"`
	DepositCode string          `db:"deposit_code"`
	CompanyID   int64           `db:"company_id"`
	PostingDate time.Time       `db:"posting_date"`
	Principal   decimal.Decimal `db:"principal"`
	Rate        decimal.Decimal `db:"rate"`
	Days        int             `db:"days"`
	Amount      decimal.Decimal `db:"amount"`
	IsEstimate  bool            `db:"is_estimate"`
	CreatedAt   time.Time       `db:"created_at"`
}

// EarlyReleasePosting is the one-time settlement of an early-released deposit,
// unique per (DepositCode, StartDate).
type EarlyReleasePosting struct {
	ID            int64           `db:"id"`
	DepositCode   string          `db:"deposit_code"`
	CompanyID     int64           `db:"company_id"`
	StartDate     time.Time       `db:"start_date"`
	ReleaseDate   time.Time       `db:"release_date"`
	ReleaseAmount decimal.Decimal `db:"release_amount"`
	Rate          decimal.Decimal `db:"rate"`
	InterestDays  int             `db:"interest_days"`
	Amount        decimal.Decimal `db:"amount"`
	CreatedAt     time.Time       `db:"created_at"`
}
