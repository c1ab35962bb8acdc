package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 2024-01-02 01:30 in UTC+8 is still 2024-01-01 in UTC
	ts := time.Date(2024, 1, 2, 1, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), DateOf(ts))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), DateOf(ts.UTC()))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"ten days", date(2024, 1, 1), date(2024, 1, 11), 10},
		{"same day", date(2024, 3, 5), date(2024, 3, 5), 0},
		{"leap february", date(2024, 2, 1), date(2024, 3, 1), 29},
		{"reversed", date(2024, 1, 11), date(2024, 1, 1), -10},
		{"ignores time of day", time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), date(2024, 1, 2), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.from, tt.to))
		})
	}
}

func TestCashMovement_Qualifies(t *testing.T) {
	assert.True(t, (&CashMovement{Kind: MovementKindTransferUp}).Qualifies())
	assert.True(t, (&CashMovement{Kind: MovementKindReceiptBank}).Qualifies())
	assert.False(t, (&CashMovement{Kind: MovementKindTransferDown}).Qualifies())
	assert.False(t, (&CashMovement{Kind: MovementKindReceiptBill}).Qualifies())
}

func TestFixedDeposit_Eligibility(t *testing.T) {
	release := date(2024, 2, 1)

	t.Run("active without release is accrual candidate", func(t *testing.T) {
		d := &FixedDeposit{Status: DepositStatusActive}
		assert.True(t, d.IsAccrualCandidate())
		assert.False(t, d.IsEarlyReleaseDue(date(2024, 2, 1)))
	})

	t.Run("pending deposit is never a candidate", func(t *testing.T) {
		d := &FixedDeposit{Status: DepositStatusPendingConfirmation}
		assert.False(t, d.IsAccrualCandidate())
	})

	t.Run("early release switches path", func(t *testing.T) {
		d := &FixedDeposit{Status: DepositStatusActive, EarlyRelease: true, ReleaseDate: &release}
		assert.False(t, d.IsAccrualCandidate())
		assert.False(t, d.IsEarlyReleaseDue(date(2024, 1, 31)))
		assert.True(t, d.IsEarlyReleaseDue(date(2024, 2, 1)))
		assert.True(t, d.IsEarlyReleaseDue(date(2024, 2, 10)))
	})

	t.Run("deleted deposit never settles", func(t *testing.T) {
		d := &FixedDeposit{Status: DepositStatusDeleted, EarlyRelease: true, ReleaseDate: &release}
		assert.False(t, d.IsEarlyReleaseDue(date(2024, 2, 10)))
	})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
