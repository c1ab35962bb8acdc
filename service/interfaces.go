package service

import (
	"context"
	"time"

	"treasury/events"
	"treasury/models"

	"github.com/shopspring/decimal"
)

// CompanyRepository defines read access to companies
type CompanyRepository interface {
	// ListActive returns all companies flagged active, ordered by id
	ListActive(ctx context.Context) ([]*models.Company, error)
}

// CashMovementRepository defines read access to fund transfers and payment receipts
type CashMovementRepository interface {
	// ListByCompanyUpTo returns every movement of a company dated on or before asOf
	ListByCompanyUpTo(ctx context.Context, companyID int64, asOf time.Time) ([]*models.CashMovement, error)
}

// InterestRateRepository defines read access to configured rates
type InterestRateRepository interface {
	// GetLatestActive returns the most recently created active rate of a type, or nil
	GetLatestActive(ctx context.Context, rateType models.RateType) (*models.InterestRate, error)
}

// FixedDepositRepository defines access to fixed deposits
type FixedDepositRepository interface {
	// GetByCode retrieves a deposit by its business key, or nil
	GetByCode(ctx context.Context, depositCode string) (*models.FixedDeposit, error)

	// ListAccrualCandidates returns active deposits not released early
	ListAccrualCandidates(ctx context.Context) ([]*models.FixedDeposit, error)

	// ListEarlyReleaseCandidates returns active, early-released deposits with releaseDate <= asOf
	ListEarlyReleaseCandidates(ctx context.Context, asOf time.Time) ([]*models.FixedDeposit, error)

	// UpdateLastInterestDate moves the deposit's schedule pointer
	UpdateLastInterestDate(ctx context.Context, depositCode string, date time.Time) error
}

// CurrentInterestRepository defines access to demand interest postings
type CurrentInterestRepository interface {
	// GetByCompanyAndDate returns the posting keyed by (companyID, date), or nil
	GetByCompanyAndDate(ctx context.Context, companyID int64, date time.Time) (*models.CurrentInterestPosting, error)

	// Upsert inserts the posting or overwrites balance, rate and amount of the existing one
	Upsert(ctx context.Context, posting *models.CurrentInterestPosting) error

	// CountByDate returns how many postings exist for a date
	CountByDate(ctx context.Context, date time.Time) (int, error)
}

// FixedInterestRepository defines access to fixed interest snapshots
type FixedInterestRepository interface {
	// Insert appends a snapshot. Returns false if a snapshot for
	// (depositCode, postingDate) already exists.
	Insert(ctx context.Context, posting *models.FixedInterestPosting) (bool, error)

	// GetLatestByDeposit returns the most recent snapshot for a deposit, or nil
	GetLatestByDeposit(ctx context.Context, depositCode string) (*models.FixedInterestPosting, error)

	// ListByDeposit returns all snapshots of a deposit in posting order
	ListByDeposit(ctx context.Context, depositCode string) ([]*models.FixedInterestPosting, error)
}

// EarlyReleaseRepository defines access to early-release settlements
type EarlyReleaseRepository interface {
	// ExistsForDeposit reports whether a settlement exists for (depositCode, startDate)
	ExistsForDeposit(ctx context.Context, depositCode string, startDate time.Time) (bool, error)

	// Insert appends a settlement
	Insert(ctx context.Context, posting *models.EarlyReleasePosting) error
}

// InterestRunRepository defines access to run summaries
type InterestRunRepository interface {
	// GetByDate returns the run recorded for a date, or nil
	GetByDate(ctx context.Context, date time.Time) (*models.InterestRun, error)

	// Upsert records the run, replacing an earlier run for the same date
	Upsert(ctx context.Context, run *models.InterestRun) error

	// GetLatest returns the most recent run, or nil
	GetLatest(ctx context.Context) (*models.InterestRun, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// RateResolver resolves the daily demand rate for a run
type RateResolver interface {
	// CurrentDailyRate returns the active demand rate converted to a daily rate
	CurrentDailyRate(ctx context.Context) (decimal.Decimal, error)
}

// CurrentInterestService posts demand interest per company
type CurrentInterestService interface {
	// ListActiveCompanies returns the companies to process
	ListActiveCompanies(ctx context.Context) ([]*models.Company, error)

	// PostCompany recomputes a company's balance as of asOf and upserts its posting
	PostCompany(ctx context.Context, company *models.Company, asOf time.Time, dailyRate decimal.Decimal) (*models.CurrentInterestPosting, error)
}

// EarlyReleaseService settles early-released fixed deposits
type EarlyReleaseService interface {
	// ListDueReleases returns deposits whose early release settles on or before asOf
	ListDueReleases(ctx context.Context, asOf time.Time) ([]*models.FixedDeposit, error)

	// Settle posts the one-time settlement for a deposit
	Settle(ctx context.Context, deposit *models.FixedDeposit, asOf time.Time, dailyRate decimal.Decimal) (*EarlyReleaseResult, error)
}

// FixedInterestService runs the fixed-deposit accrual schedule
type FixedInterestService interface {
	// ListAccrualCandidates returns deposits the scheduler may post for
	ListAccrualCandidates(ctx context.Context) ([]*models.FixedDeposit, error)

	// Accrue posts a snapshot when the deposit is due on asOf and advances its schedule
	Accrue(ctx context.Context, deposit *models.FixedDeposit, asOf time.Time, dailyRate decimal.Decimal) (*FixedAccrualResult, error)
}

// InterestRunService records run summaries
type InterestRunService interface {
	// RecordRun persists the summary of a finished run
	RecordRun(ctx context.Context, run *models.InterestRun) error
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	CompanyRepository() CompanyRepository
	CashMovementRepository() CashMovementRepository
	InterestRateRepository() InterestRateRepository
	FixedDepositRepository() FixedDepositRepository
	CurrentInterestRepository() CurrentInterestRepository
	FixedInterestRepository() FixedInterestRepository
	EarlyReleaseRepository() EarlyReleaseRepository
	InterestRunRepository() InterestRunRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
