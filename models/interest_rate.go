package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateType identifies which product a rate applies to
type RateType string

const (
	RateTypeDemand RateType = "demand"
	RateTypeFixed  RateType = "fixed"
)

// RateStatus is managed by the rate administration flow
type RateStatus string

const (
	RateStatusActive   RateStatus = "active"
	RateStatusInactive RateStatus = "inactive"
)

// InterestRate stores an annual percentage (1.8 means 1.8% per year)
type InterestRate struct {
	ID            int64           `db:"id"`
	RateType      RateType        `db:"rate_type"`
	AnnualPercent decimal.Decimal `db:"rate"`
	Status        RateStatus      `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
}
