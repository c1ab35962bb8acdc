package service

import (
	"context"
	"fmt"
	"time"

	"treasury/events"
	"treasury/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EarlyReleaseOutcome describes what Settle did with a deposit
type EarlyReleaseOutcome string

const (
	EarlyReleaseSettled        EarlyReleaseOutcome = "settled"
	EarlyReleaseAlreadySettled EarlyReleaseOutcome = "already_settled"
	EarlyReleaseNotDue         EarlyReleaseOutcome = "not_due"
)

// EarlyReleaseResult is the per-deposit result of the settlement phase
type EarlyReleaseResult struct {
	Outcome EarlyReleaseOutcome
	Posting *models.EarlyReleasePosting
}

type earlyReleaseService struct {
	uowFactory UnitOfWorkFactory
}

// NewEarlyReleaseService creates the early-release settlement poster
func NewEarlyReleaseService(uowFactory UnitOfWorkFactory) EarlyReleaseService {
	return &earlyReleaseService{
		uowFactory: uowFactory,
	}
}

func (s *earlyReleaseService) ListDueReleases(ctx context.Context, asOf time.Time) ([]*models.FixedDeposit, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	deposits, err := uow.FixedDepositRepository().ListEarlyReleaseCandidates(ctx, models.DateOf(asOf))
	if err != nil {
		return nil, fmt.Errorf("failed to list early release candidates: %w", err)
	}
	return deposits, nil
}

func (s *earlyReleaseService) Settle(ctx context.Context, deposit *models.FixedDeposit, asOf time.Time, dailyRate decimal.Decimal) (*EarlyReleaseResult, error) {
	today := models.DateOf(asOf)

	if !deposit.IsEarlyReleaseDue(today) {
		return &EarlyReleaseResult{Outcome: EarlyReleaseNotDue}, nil
	}

	releaseDate := models.DateOf(*deposit.ReleaseDate)
	startDate := models.DateOf(deposit.StartDate)
	days := EarlyReleaseDays(startDate, releaseDate)
	if days < 0 {
		return nil, fmt.Errorf("release date %s is before start date %s",
			releaseDate.Format(time.DateOnly), startDate.Format(time.DateOnly))
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	exists, err := uow.EarlyReleaseRepository().ExistsForDeposit(ctx, deposit.DepositCode, startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing settlement: %w", err)
	}
	if exists {
		log.WithField("deposit_code", deposit.DepositCode).Info("Early release already settled, skipping")
		return &EarlyReleaseResult{Outcome: EarlyReleaseAlreadySettled}, nil
	}

	posting := &models.EarlyReleasePosting{
		DepositCode:   deposit.DepositCode,
		CompanyID:     deposit.CompanyID,
		StartDate:     startDate,
		ReleaseDate:   releaseDate,
		ReleaseAmount: deposit.ReleaseAmount,
		Rate:          dailyRate,
		InterestDays:  days,
		Amount:        EarlyReleaseInterest(deposit.ReleaseAmount, dailyRate, days),
	}

	if err := uow.EarlyReleaseRepository().Insert(ctx, posting); err != nil {
		return nil, fmt.Errorf("failed to insert settlement: %w", err)
	}

	// Closes the accrual obligation together with the settlement row
	if err := uow.FixedDepositRepository().UpdateLastInterestDate(ctx, deposit.DepositCode, today); err != nil {
		return nil, fmt.Errorf("failed to close deposit schedule: %w", err)
	}

	uow.EventBus().Publish(events.EarlyReleaseSettledEvent{
		DepositCode:  deposit.DepositCode,
		CompanyID:    deposit.CompanyID,
		ReleaseDate:  releaseDate,
		InterestDays: days,
		Amount:       posting.Amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	deposit.LastInterestDate = today

	log.WithFields(log.Fields{
		"deposit_code":   deposit.DepositCode,
		"company_id":     deposit.CompanyID,
		"release_date":   releaseDate.Format(time.DateOnly),
		"interest_days":  days,
		"release_amount": deposit.ReleaseAmount.StringFixed(AmountPlaces),
		"amount":         posting.Amount.StringFixed(AmountPlaces),
	}).Info("Settled early release")

	return &EarlyReleaseResult{Outcome: EarlyReleaseSettled, Posting: posting}, nil
}
