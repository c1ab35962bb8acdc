package repository

import (
	"context"
	"errors"
	"fmt"

	"treasury/database"
	"treasury/events"
	"treasury/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	companyRepo      service.CompanyRepository
	movementRepo     service.CashMovementRepository
	rateRepo         service.InterestRateRepository
	depositRepo      service.FixedDepositRepository
	currentRepo      service.CurrentInterestRepository
	fixedRepo        service.FixedInterestRepository
	earlyReleaseRepo service.EarlyReleaseRepository
	runRepo          service.InterestRunRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.companyRepo = newCompanyRepositoryWithTx(tx)
	u.movementRepo = newCashMovementRepositoryWithTx(tx)
	u.rateRepo = newInterestRateRepositoryWithTx(tx)
	u.depositRepo = newFixedDepositRepositoryWithTx(tx)
	u.currentRepo = newCurrentInterestRepositoryWithTx(tx)
	u.fixedRepo = newFixedInterestRepositoryWithTx(tx)
	u.earlyReleaseRepo = newEarlyReleaseRepositoryWithTx(tx)
	u.runRepo = newInterestRunRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

func (u *unitOfWork) mustBegin(repo any) {
	if repo == nil {
		panic("unit of work not started - call Begin() first")
	}
}

// CompanyRepository returns the company repository for this unit of work
func (u *unitOfWork) CompanyRepository() service.CompanyRepository {
	u.mustBegin(u.companyRepo)
	return u.companyRepo
}

// CashMovementRepository returns the cash movement repository for this unit of work
func (u *unitOfWork) CashMovementRepository() service.CashMovementRepository {
	u.mustBegin(u.movementRepo)
	return u.movementRepo
}

// InterestRateRepository returns the interest rate repository for this unit of work
func (u *unitOfWork) InterestRateRepository() service.InterestRateRepository {
	u.mustBegin(u.rateRepo)
	return u.rateRepo
}

// FixedDepositRepository returns the fixed deposit repository for this unit of work
func (u *unitOfWork) FixedDepositRepository() service.FixedDepositRepository {
	u.mustBegin(u.depositRepo)
	return u.depositRepo
}

// CurrentInterestRepository returns the current interest repository for this unit of work
func (u *unitOfWork) CurrentInterestRepository() service.CurrentInterestRepository {
	u.mustBegin(u.currentRepo)
	return u.currentRepo
}

// FixedInterestRepository returns the fixed interest repository for this unit of work
func (u *unitOfWork) FixedInterestRepository() service.FixedInterestRepository {
	u.mustBegin(u.fixedRepo)
	return u.fixedRepo
}

// EarlyReleaseRepository returns the early release repository for this unit of work
func (u *unitOfWork) EarlyReleaseRepository() service.EarlyReleaseRepository {
	u.mustBegin(u.earlyReleaseRepo)
	return u.earlyReleaseRepo
}

// InterestRunRepository returns the interest run repository for this unit of work
func (u *unitOfWork) InterestRunRepository() service.InterestRunRepository {
	u.mustBegin(u.runRepo)
	return u.runRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
