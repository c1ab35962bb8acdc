package service

import (
	"fmt"
	"strings"
	"time"

	"treasury/models"

	"github.com/shopspring/decimal"
)

const (
	// BankingYearDays is the day-count basis for converting annual rates
	BankingYearDays = 360

	// NominalMonthDays is the flat month length used by the nominal day count
	NominalMonthDays = 30

	// FixedPostingIntervalDays is the cadence of fixed-deposit postings
	FixedPostingIntervalDays = 90

	// MaturitySnapDays collapses a trailing stub of this many days or fewer into the maturity posting
	MaturitySnapDays = 15

	// AmountPlaces is the scale money amounts are rounded to when posted
	AmountPlaces = 2
)

var hundred = decimal.NewFromInt(100)

// DayCountConvention selects how many days a fixed posting covers
type DayCountConvention string

const (
	// DayCountNominal uses termMonths * 30 for every posting
	DayCountNominal DayCountConvention = "nominal"
	// DayCountElapsed uses the calendar days since the previous posting (or startDate)
	DayCountElapsed DayCountConvention = "elapsed"
)

// ParseDayCountConvention validates a configured convention name
func ParseDayCountConvention(s string) (DayCountConvention, error) {
	switch DayCountConvention(strings.ToLower(strings.TrimSpace(s))) {
	case DayCountNominal, "":
		return DayCountNominal, nil
	case DayCountElapsed:
		return DayCountElapsed, nil
	default:
		return "", fmt.Errorf("unknown day count convention %q (want %q or %q)", s, DayCountNominal, DayCountElapsed)
	}
}

// DailyRateFromAnnual converts an annual percentage into a daily fraction on a 360-day year
func DailyRateFromAnnual(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(hundred).Div(decimal.NewFromInt(BankingYearDays))
}

// AccumulateBalance sums every qualifying movement dated on or before asOf.
// It is a full recomputation and does not depend on earlier runs.
func AccumulateBalance(movements []*models.CashMovement, asOf time.Time) decimal.Decimal {
	cutoff := models.DateOf(asOf)
	balance := decimal.Zero
	for _, m := range movements {
		if !m.Qualifies() || models.DateOf(m.Date).After(cutoff) {
			continue
		}
		balance = balance.Add(m.Amount)
	}
	return balance
}

// CurrentInterest is one day of demand interest on balance
func CurrentInterest(balance, dailyRate decimal.Decimal) decimal.Decimal {
	return balance.Mul(dailyRate).Round(AmountPlaces)
}

// FixedAccrualDays returns the days a posting on asOf covers.
// previousPosting is the date of the deposit's last snapshot, nil if none.
func FixedAccrualDays(convention DayCountConvention, deposit *models.FixedDeposit, previousPosting *time.Time, asOf time.Time) int {
	if convention == DayCountElapsed {
		from := deposit.StartDate
		if previousPosting != nil {
			from = *previousPosting
		}
		return models.DaysBetween(from, asOf)
	}
	return deposit.TermMonths * NominalMonthDays
}

// FixedInterest is simple interest on principal for the given days
func FixedInterest(principal, dailyRate decimal.Decimal, days int) decimal.Decimal {
	return principal.Mul(dailyRate).Mul(decimal.NewFromInt(int64(days))).Round(AmountPlaces)
}

// NextPostingDate advances the schedule by one interval and snaps to maturity
// when the remaining stub would be MaturitySnapDays or shorter.
func NextPostingDate(last, maturity time.Time) time.Time {
	next := models.DateOf(last).AddDate(0, 0, FixedPostingIntervalDays)
	end := models.DateOf(maturity)
	if models.DaysBetween(next, end) <= MaturitySnapDays {
		return end
	}
	return next
}

// EarlyReleaseDays counts actual calendar days from start to release
func EarlyReleaseDays(startDate, releaseDate time.Time) int {
	return models.DaysBetween(startDate, releaseDate)
}

// EarlyReleaseInterest is the one-time settlement amount
func EarlyReleaseInterest(releaseAmount, dailyRate decimal.Decimal, days int) decimal.Decimal {
	return releaseAmount.Mul(dailyRate).Mul(decimal.NewFromInt(int64(days))).Round(AmountPlaces)
}
