package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind discriminates the two intake tables feeding a demand balance
type MovementKind string

const (
	MovementKindTransferUp   MovementKind = "transfer_up"
	MovementKindTransferDown MovementKind = "transfer_down"
	MovementKindReceiptBank  MovementKind = "receipt_bank"
	MovementKindReceiptBill  MovementKind = "receipt_bill"
)

// CashMovement is a fund transfer or payment receipt as seen by the accrual engine.
// Movements are immutable once written by the intake layer.
type CashMovement struct {
	ID        int64           `db:"id"`
	CompanyID int64           `db:"company_id"`
	Kind      MovementKind    `db:"kind"`
	Amount    decimal.Decimal `db:"amount"`
	Date      time.Time       `db:"movement_date"`
}

// Qualifies reports whether the movement counts toward the demand balance.
func (m *CashMovement) Qualifies() bool {
	return m.Kind == MovementKindTransferUp || m.Kind == MovementKindReceiptBank
}
