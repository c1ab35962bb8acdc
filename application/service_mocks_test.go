package application

import (
	"context"
	"time"

	"treasury/models"
	"treasury/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockRateResolver struct {
	mock.Mock
}

func (m *mockRateResolver) CurrentDailyRate(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockCurrentInterestService struct {
	mock.Mock
}

func (m *mockCurrentInterestService) ListActiveCompanies(ctx context.Context) ([]*models.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Company), args.Error(1)
}

func (m *mockCurrentInterestService) PostCompany(ctx context.Context, company *models.Company, asOf time.Time, dailyRate decimal.Decimal) (*models.CurrentInterestPosting, error) {
	args := m.Called(ctx, company, asOf, dailyRate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CurrentInterestPosting), args.Error(1)
}

type mockEarlyReleaseService struct {
	mock.Mock
}

func (m *mockEarlyReleaseService) ListDueReleases(ctx context.Context, asOf time.Time) ([]*models.FixedDeposit, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FixedDeposit), args.Error(1)
}

func (m *mockEarlyReleaseService) Settle(ctx context.Context, deposit *models.FixedDeposit, asOf time.Time, dailyRate decimal.Decimal) (*service.EarlyReleaseResult, error) {
	args := m.Called(ctx, deposit, asOf, dailyRate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EarlyReleaseResult), args.Error(1)
}

type mockFixedInterestService struct {
	mock.Mock
}

func (m *mockFixedInterestService) ListAccrualCandidates(ctx context.Context) ([]*models.FixedDeposit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FixedDeposit), args.Error(1)
}

func (m *mockFixedInterestService) Accrue(ctx context.Context, deposit *models.FixedDeposit, asOf time.Time, dailyRate decimal.Decimal) (*service.FixedAccrualResult, error) {
	args := m.Called(ctx, deposit, asOf, dailyRate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FixedAccrualResult), args.Error(1)
}

type mockInterestRunService struct {
	mock.Mock
}

func (m *mockInterestRunService) RecordRun(ctx context.Context, run *models.InterestRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}
