package service

import (
	"context"
	"testing"

	"treasury/events"
	"treasury/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func releasedDeposit() *models.FixedDeposit {
	release := day(2024, 1, 11)
	return &models.FixedDeposit{
		DepositCode:      "FD-2024-001",
		CompanyID:        3,
		Principal:        dec("500000"),
		StartDate:        day(2024, 1, 1),
		EndDate:          day(2024, 7, 1),
		TermMonths:       6,
		Status:           models.DepositStatusActive,
		EarlyRelease:     true,
		ReleaseDate:      &release,
		ReleaseAmount:    dec("100000"),
		LastInterestDate: day(2024, 1, 1),
	}
}

func TestEarlyReleaseService_Settle(t *testing.T) {
	ctx := context.Background()
	factory, uow := newTransactionMocks()
	deposit := releasedDeposit()
	today := day(2024, 1, 12)

	uow.EarlyReleases.On("ExistsForDeposit", ctx, "FD-2024-001", day(2024, 1, 1)).Return(false, nil)
	uow.EarlyReleases.On("Insert", ctx, mock.MatchedBy(func(p *models.EarlyReleasePosting) bool {
		return p.DepositCode == "FD-2024-001" &&
			p.CompanyID == 3 &&
			p.InterestDays == 10 &&
			p.ReleaseAmount.Equal(dec("100000")) &&
			p.Amount.Equal(dec("50"))
	})).Return(nil)
	uow.Deposits.On("UpdateLastInterestDate", ctx, "FD-2024-001", today).Return(nil)
	uow.Events.On("Publish", mock.MatchedBy(func(e events.EarlyReleaseSettledEvent) bool {
		return e.DepositCode == "FD-2024-001" && e.InterestDays == 10
	})).Return()
	uow.On("Commit").Return(nil)

	result, err := NewEarlyReleaseService(factory).Settle(ctx, deposit, today, dailyRate18)

	require.NoError(t, err)
	assert.Equal(t, EarlyReleaseSettled, result.Outcome)
	require.NotNil(t, result.Posting)
	assert.Equal(t, 10, result.Posting.InterestDays)
	assert.Equal(t, today, deposit.LastInterestDate)
	uow.AssertAllExpectations(t)
}

func TestEarlyReleaseService_Settle_AlreadySettledIsNoop(t *testing.T) {
	ctx := context.Background()
	factory, uow := newTransactionMocks()
	deposit := releasedDeposit()

	uow.EarlyReleases.On("ExistsForDeposit", ctx, "FD-2024-001", day(2024, 1, 1)).Return(true, nil)

	result, err := NewEarlyReleaseService(factory).Settle(ctx, deposit, day(2024, 1, 12), dailyRate18)

	require.NoError(t, err)
	assert.Equal(t, EarlyReleaseAlreadySettled, result.Outcome)
	assert.Nil(t, result.Posting)
	uow.EarlyReleases.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	uow.Deposits.AssertNotCalled(t, "UpdateLastInterestDate", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit")
	assert.Equal(t, day(2024, 1, 1), deposit.LastInterestDate)
}

func TestEarlyReleaseService_Settle_ReleaseInFuture(t *testing.T) {
	factory := new(MockUnitOfWorkFactory)
	deposit := releasedDeposit()

	result, err := NewEarlyReleaseService(factory).Settle(context.Background(), deposit, day(2024, 1, 10), dailyRate18)

	require.NoError(t, err)
	assert.Equal(t, EarlyReleaseNotDue, result.Outcome)
	factory.AssertNotCalled(t, "Create")
}

func TestEarlyReleaseService_Settle_ReleaseBeforeStart(t *testing.T) {
	factory := new(MockUnitOfWorkFactory)
	deposit := releasedDeposit()
	bad := day(2023, 12, 25)
	deposit.ReleaseDate = &bad

	_, err := NewEarlyReleaseService(factory).Settle(context.Background(), deposit, day(2024, 1, 12), dailyRate18)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestEarlyReleaseService_ListDueReleases(t *testing.T) {
	ctx := context.Background()
	factory, uow := newTransactionMocks()
	deposits := []*models.FixedDeposit{releasedDeposit()}

	uow.Deposits.On("ListEarlyReleaseCandidates", ctx, day(2024, 1, 12)).Return(deposits, nil)

	got, err := NewEarlyReleaseService(factory).ListDueReleases(ctx, day(2024, 1, 12))

	require.NoError(t, err)
	assert.Equal(t, deposits, got)
	uow.AssertAllExpectations(t)
}
