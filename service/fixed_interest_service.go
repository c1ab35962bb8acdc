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

// FixedAccrualOutcome describes what Accrue did with a deposit
type FixedAccrualOutcome string

const (
	FixedAccrualPosted        FixedAccrualOutcome = "posted"
	FixedAccrualAlreadyPosted FixedAccrualOutcome = "already_posted"
	FixedAccrualNotDue        FixedAccrualOutcome = "not_due"
	FixedAccrualIneligible    FixedAccrualOutcome = "ineligible"
)

// FixedAccrualResult is the per-deposit result of the fixed scheduler.
// NextPostingDate is nil when the posting was the final one at maturity.
type FixedAccrualResult struct {
	Outcome         FixedAccrualOutcome
	Posting         *models.FixedInterestPosting
	NextPostingDate *time.Time
}

type fixedInterestService struct {
	uowFactory UnitOfWorkFactory
	convention DayCountConvention
}

// NewFixedInterestService creates the fixed-deposit accrual scheduler
func NewFixedInterestService(uowFactory UnitOfWorkFactory, convention DayCountConvention) FixedInterestService {
	if convention == "" {
		convention = DayCountNominal
	}
	return &fixedInterestService{
		uowFactory: uowFactory,
		convention: convention,
	}
}

func (s *fixedInterestService) ListAccrualCandidates(ctx context.Context) ([]*models.FixedDeposit, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	deposits, err := uow.FixedDepositRepository().ListAccrualCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixed deposits: %w", err)
	}
	return deposits, nil
}

func (s *fixedInterestService) Accrue(ctx context.Context, deposit *models.FixedDeposit, asOf time.Time, dailyRate decimal.Decimal) (*FixedAccrualResult, error) {
	today := models.DateOf(asOf)

	if !deposit.IsAccrualCandidate() {
		return &FixedAccrualResult{Outcome: FixedAccrualIneligible}, nil
	}

	// lastInterestDate is the next scheduled posting date
	if !models.DateOf(deposit.LastInterestDate).Equal(today) {
		log.WithFields(log.Fields{
			"deposit_code": deposit.DepositCode,
			"scheduled":    deposit.LastInterestDate.Format(time.DateOnly),
		}).Debug("Fixed deposit not due")
		return &FixedAccrualResult{Outcome: FixedAccrualNotDue}, nil
	}

	maturity := models.DateOf(deposit.EndDate)
	if today.After(maturity) {
		return nil, fmt.Errorf("scheduled posting %s is after maturity %s",
			today.Format(time.DateOnly), maturity.Format(time.DateOnly))
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	var previousPosting *time.Time
	if s.convention == DayCountElapsed {
		latest, err := uow.FixedInterestRepository().GetLatestByDeposit(ctx, deposit.DepositCode)
		if err != nil {
			return nil, fmt.Errorf("failed to get previous posting: %w", err)
		}
		if latest != nil {
			previousPosting = &latest.PostingDate
		}
	}

	days := FixedAccrualDays(s.convention, deposit, previousPosting, today)
	isEstimate := !maturity.Equal(today)

	posting := &models.FixedInterestPosting{
		DepositCode: deposit.DepositCode,
		CompanyID:   deposit.CompanyID,
		PostingDate: today,
		Principal:   deposit.Principal,
		Rate:        dailyRate,
		Days:        days,
		Amount:      FixedInterest(deposit.Principal, dailyRate, days),
		IsEstimate:  isEstimate,
	}

	inserted, err := uow.FixedInterestRepository().Insert(ctx, posting)
	if err != nil {
		return nil, fmt.Errorf("failed to insert fixed interest snapshot: %w", err)
	}

	result := &FixedAccrualResult{Outcome: FixedAccrualPosted, Posting: posting}
	if !inserted {
		// A snapshot for today exists but the schedule was never advanced.
		// Advance it without posting again.
		result = &FixedAccrualResult{Outcome: FixedAccrualAlreadyPosted}
	}

	if isEstimate {
		next := NextPostingDate(today, maturity)
		if err := uow.FixedDepositRepository().UpdateLastInterestDate(ctx, deposit.DepositCode, next); err != nil {
			return nil, fmt.Errorf("failed to advance schedule: %w", err)
		}
		result.NextPostingDate = &next
	}

	if inserted {
		event := events.FixedInterestPostedEvent{
			DepositCode: deposit.DepositCode,
			CompanyID:   deposit.CompanyID,
			PostingDate: today,
			Amount:      posting.Amount,
			IsEstimate:  isEstimate,
		}
		if result.NextPostingDate != nil {
			event.NextPostingDate = *result.NextPostingDate
		}
		uow.EventBus().Publish(event)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if result.NextPostingDate != nil {
		deposit.LastInterestDate = *result.NextPostingDate
	}

	fields := log.Fields{
		"deposit_code": deposit.DepositCode,
		"company_id":   deposit.CompanyID,
		"date":         today.Format(time.DateOnly),
		"outcome":      result.Outcome,
	}
	if inserted {
		fields["days"] = days
		fields["amount"] = posting.Amount.StringFixed(AmountPlaces)
		fields["estimate"] = isEstimate
	}
	if result.NextPostingDate != nil {
		fields["next"] = result.NextPostingDate.Format(time.DateOnly)
	}
	log.WithFields(fields).Info("Processed fixed deposit")

	return result, nil
}
