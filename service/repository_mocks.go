package service

import (
	"context"
	"time"

	"treasury/events"
	"treasury/models"

	"github.com/stretchr/testify/mock"
)

// MockCompanyRepository is a mock implementation of CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) ListActive(ctx context.Context) ([]*models.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Company), args.Error(1)
}

// MockCashMovementRepository is a mock implementation of CashMovementRepository
type MockCashMovementRepository struct {
	mock.Mock
}

func (m *MockCashMovementRepository) ListByCompanyUpTo(ctx context.Context, companyID int64, asOf time.Time) ([]*models.CashMovement, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CashMovement), args.Error(1)
}

// MockInterestRateRepository is a mock implementation of InterestRateRepository
type MockInterestRateRepository struct {
	mock.Mock
}

func (m *MockInterestRateRepository) GetLatestActive(ctx context.Context, rateType models.RateType) (*models.InterestRate, error) {
	args := m.Called(ctx, rateType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InterestRate), args.Error(1)
}

// MockFixedDepositRepository is a mock implementation of FixedDepositRepository
type MockFixedDepositRepository struct {
	mock.Mock
}

func (m *MockFixedDepositRepository) GetByCode(ctx context.Context, depositCode string) (*models.FixedDeposit, error) {
	args := m.Called(ctx, depositCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FixedDeposit), args.Error(1)
}

func (m *MockFixedDepositRepository) ListAccrualCandidates(ctx context.Context) ([]*models.FixedDeposit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FixedDeposit), args.Error(1)
}

func (m *MockFixedDepositRepository) ListEarlyReleaseCandidates(ctx context.Context, asOf time.Time) ([]*models.FixedDeposit, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FixedDeposit), args.Error(1)
}

func (m *MockFixedDepositRepository) UpdateLastInterestDate(ctx context.Context, depositCode string, date time.Time) error {
	args := m.Called(ctx, depositCode, date)
	return args.Error(0)
}

// MockCurrentInterestRepository is a mock implementation of CurrentInterestRepository
type MockCurrentInterestRepository struct {
	mock.Mock
}

func (m *MockCurrentInterestRepository) GetByCompanyAndDate(ctx context.Context, companyID int64, date time.Time) (*models.CurrentInterestPosting, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CurrentInterestPosting), args.Error(1)
}

func (m *MockCurrentInterestRepository) Upsert(ctx context.Context, posting *models.CurrentInterestPosting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

func (m *MockCurrentInterestRepository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

// MockFixedInterestRepository is a mock implementation of FixedInterestRepository
type MockFixedInterestRepository struct {
	mock.Mock
}

func (m *MockFixedInterestRepository) Insert(ctx context.Context, posting *models.FixedInterestPosting) (bool, error) {
	args := m.Called(ctx, posting)
	return args.Bool(0), args.Error(1)
}

func (m *MockFixedInterestRepository) GetLatestByDeposit(ctx context.Context, depositCode string) (*models.FixedInterestPosting, error) {
	args := m.Called(ctx, depositCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FixedInterestPosting), args.Error(1)
}

func (m *MockFixedInterestRepository) ListByDeposit(ctx context.Context, depositCode string) ([]*models.FixedInterestPosting, error) {
	args := m.Called(ctx, depositCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FixedInterestPosting), args.Error(1)
}

// MockEarlyReleaseRepository is a mock implementation of EarlyReleaseRepository
type MockEarlyReleaseRepository struct {
	mock.Mock
}

func (m *MockEarlyReleaseRepository) ExistsForDeposit(ctx context.Context, depositCode string, startDate time.Time) (bool, error) {
	args := m.Called(ctx, depositCode, startDate)
	return args.Bool(0), args.Error(1)
}

func (m *MockEarlyReleaseRepository) Insert(ctx context.Context, posting *models.EarlyReleasePosting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

// MockInterestRunRepository is a mock implementation of InterestRunRepository
type MockInterestRunRepository struct {
	mock.Mock
}

func (m *MockInterestRunRepository) GetByDate(ctx context.Context, date time.Time) (*models.InterestRun, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InterestRun), args.Error(1)
}

func (m *MockInterestRunRepository) Upsert(ctx context.Context, run *models.InterestRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockInterestRunRepository) GetLatest(ctx context.Context) (*models.InterestRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InterestRun), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Transaction control is
// mocked; repositories are plain fields set with SetRepositories.
type MockUnitOfWork struct {
	mock.Mock
	Companies       *MockCompanyRepository
	CashMovements   *MockCashMovementRepository
	Rates           *MockInterestRateRepository
	Deposits        *MockFixedDepositRepository
	CurrentInterest *MockCurrentInterestRepository
	FixedInterest   *MockFixedInterestRepository
	EarlyReleases   *MockEarlyReleaseRepository
	Runs            *MockInterestRunRepository
	Events          *MockEventPublisher
}

// NewMockUnitOfWork creates a unit of work with a fresh mock for every repository
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Companies:       new(MockCompanyRepository),
		CashMovements:   new(MockCashMovementRepository),
		Rates:           new(MockInterestRateRepository),
		Deposits:        new(MockFixedDepositRepository),
		CurrentInterest: new(MockCurrentInterestRepository),
		FixedInterest:   new(MockFixedInterestRepository),
		EarlyReleases:   new(MockEarlyReleaseRepository),
		Runs:            new(MockInterestRunRepository),
		Events:          new(MockEventPublisher),
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) CompanyRepository() CompanyRepository           { return m.Companies }
func (m *MockUnitOfWork) CashMovementRepository() CashMovementRepository { return m.CashMovements }
func (m *MockUnitOfWork) InterestRateRepository() InterestRateRepository { return m.Rates }
func (m *MockUnitOfWork) FixedDepositRepository() FixedDepositRepository { return m.Deposits }
func (m *MockUnitOfWork) CurrentInterestRepository() CurrentInterestRepository {
	return m.CurrentInterest
}
func (m *MockUnitOfWork) FixedInterestRepository() FixedInterestRepository { return m.FixedInterest }
func (m *MockUnitOfWork) EarlyReleaseRepository() EarlyReleaseRepository   { return m.EarlyReleases }
func (m *MockUnitOfWork) InterestRunRepository() InterestRunRepository     { return m.Runs }
func (m *MockUnitOfWork) EventBus() EventPublisher                         { return m.Events }

// AssertAllExpectations asserts the unit of work and every repository mock
func (m *MockUnitOfWork) AssertAllExpectations(t mock.TestingT) {
	m.AssertExpectations(t)
	m.Companies.AssertExpectations(t)
	m.CashMovements.AssertExpectations(t)
	m.Rates.AssertExpectations(t)
	m.Deposits.AssertExpectations(t)
	m.CurrentInterest.AssertExpectations(t)
	m.FixedInterest.AssertExpectations(t)
	m.EarlyReleases.AssertExpectations(t)
	m.Runs.AssertExpectations(t)
	m.Events.AssertExpectations(t)
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
