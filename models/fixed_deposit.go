package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus represents the lifecycle state of a fixed deposit
type DepositStatus string

const (
	DepositStatusPendingConfirmation DepositStatus = "pending_confirmation"
	DepositStatusActive              DepositStatus = "active"
	DepositStatusDeleted             DepositStatus = "deleted"
)

// FixedDeposit is a term deposit. LastInterestDate holds the NEXT scheduled
// posting date, not the date of the previous posting.
type FixedDeposit struct {
	ID               int64           `db:"id"`
	DepositCode      string          `db:"deposit_code"`
	CompanyID        int64           `db:"company_id"`
	Principal        decimal.Decimal `db:"principal"`
	StartDate        time.Time       `db:"start_date"`
	EndDate          time.Time       `db:"end_date"`
	TermMonths       int             `db:"term_months"`
	Status           DepositStatus   `db:"status"`
	EarlyRelease     bool            `db:"early_release"`
	ReleaseDate      *time.Time      `db:"release_date"`
	ReleaseAmount    decimal.Decimal `db:"release_amount"`
	RemainingAmount  decimal.Decimal `db:"remaining_amount"`
	LastInterestDate time.Time       `db:"last_interest_date"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// IsAccrualCandidate reports whether the fixed scheduler may consider the deposit
func (d *FixedDeposit) IsAccrualCandidate() bool {
	return d.Status == DepositStatusActive && !d.EarlyRelease
}

// IsEarlyReleaseDue reports whether the deposit's early release settles on or before asOf
func (d *FixedDeposit) IsEarlyReleaseDue(asOf time.Time) bool {
	if d.Status != DepositStatusActive || !d.EarlyRelease || d.ReleaseDate == nil {
		return false
	}
	return !DateOf(*d.ReleaseDate).After(DateOf(asOf))
}
