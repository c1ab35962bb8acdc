package service

import (
	"context"
	"errors"
	"testing"

	"treasury/events"
	"treasury/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCurrentInterestService_PostCompany_EndToEndExample(t *testing.T) {
	ctx := context.Background()
	factory, uow := newTransactionMocks()
	asOf := day(2024, 1, 2)
	company := &models.Company{ID: 1, Name: "C", IsActive: true}

	uow.CashMovements.On("ListByCompanyUpTo", ctx, int64(1), asOf).Return([]*models.CashMovement{
		{CompanyID: 1, Kind: models.MovementKindTransferUp, Amount: dec("200000"), Date: day(2024, 1, 1)},
		{CompanyID: 1, Kind: models.MovementKindReceiptBank, Amount: dec("50000"), Date: day(2024, 1, 2)},
	}, nil)
	uow.CurrentInterest.On("GetByCompanyAndDate", ctx, int64(1), asOf).Return(nil, nil)
	uow.CurrentInterest.On("Upsert", ctx, mock.MatchedBy(func(p *models.CurrentInterestPosting) bool {
		return p.ID == 0 &&
			p.CompanyID == 1 &&
			p.PostingDate.Equal(asOf) &&
			p.Balance.Equal(dec("250000")) &&
			p.Amount.Equal(dec("12.5"))
	})).Return(nil)
	uow.Events.On("Publish", mock.MatchedBy(func(e events.CurrentInterestPostedEvent) bool {
		return e.CompanyID == 1 && e.Amount.Equal(dec("12.5"))
	})).Return()
	uow.On("Commit").Return(nil)

	posting, err := NewCurrentInterestService(factory).PostCompany(ctx, company, asOf, dailyRate18)

	require.NoError(t, err)
	assert.Equal(t, "250000.00", posting.Balance.StringFixed(2))
	assert.Equal(t, "12.50", posting.Amount.StringFixed(2))
	assert.True(t, posting.Rate.Equal(dailyRate18))
	uow.AssertAllExpectations(t)
}

func TestCurrentInterestService_PostCompany_OverwritesExistingPosting(t *testing.T) {
	ctx := context.Background()
	factory, uow := newTransactionMocks()
	asOf := day(2024, 1, 3)
	company := &models.Company{ID: 5, IsActive: true}

	uow.CashMovements.On("ListByCompanyUpTo", ctx, int64(5), asOf).Return([]*models.CashMovement{
		{Kind: models.MovementKindTransferUp, Amount: dec("1000"), Date: day(2024, 1, 1)},
		{Kind: models.MovementKindTransferUp, Amount: dec("500"), Date: day(2024, 1, 3)},
	}, nil)
	uow.CurrentInterest.On("GetByCompanyAndDate", ctx, int64(5), asOf).Return(&models.CurrentInterestPosting{
		ID:        99,
		CompanyID: 5,
		Balance:   dec("1000"),
	}, nil)
	uow.CurrentInterest.On("Upsert", ctx, mock.MatchedBy(func(p *models.CurrentInterestPosting) bool {
		return p.ID == 99 && p.Balance.Equal(dec("1500"))
	})).Return(nil)
	uow.Events.On("Publish", mock.Anything).Return()
	uow.On("Commit").Return(nil)

	posting, err := NewCurrentInterestService(factory).PostCompany(ctx, company, asOf, dailyRate18)

	require.NoError(t, err)
	assert.Equal(t, int64(99), posting.ID)
	assert.Equal(t, "1500.00", posting.Balance.StringFixed(2))
	uow.AssertAllExpectations(t)
}

func TestCurrentInterestService_PostCompany_MovementFailure(t *testing.T) {
	ctx := context.Background()
	factory, uow := newTransactionMocks()
	asOf := day(2024, 1, 3)

	uow.CashMovements.On("ListByCompanyUpTo", ctx, int64(8), asOf).Return(nil, errors.New("bad row"))

	_, err := NewCurrentInterestService(factory).PostCompany(ctx, &models.Company{ID: 8}, asOf, dailyRate18)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad row")
	uow.AssertNotCalled(t, "Commit")
	uow.CurrentInterest.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	uow.Events.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestCurrentInterestService_ListActiveCompanies(t *testing.T) {
	ctx := context.Background()
	factory, uow := newTransactionMocks()
	companies := []*models.Company{{ID: 1, IsActive: true}, {ID: 2, IsActive: true}}

	uow.Companies.On("ListActive", ctx).Return(companies, nil)

	got, err := NewCurrentInterestService(factory).ListActiveCompanies(ctx)

	require.NoError(t, err)
	assert.Equal(t, companies, got)
	uow.AssertAllExpectations(t)
}
