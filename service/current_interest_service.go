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

type currentInterestService struct {
	uowFactory UnitOfWorkFactory
}

// NewCurrentInterestService creates the demand balance accumulator and poster
func NewCurrentInterestService(uowFactory UnitOfWorkFactory) CurrentInterestService {
	return &currentInterestService{
		uowFactory: uowFactory,
	}
}

func (s *currentInterestService) ListActiveCompanies(ctx context.Context) ([]*models.Company, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	companies, err := uow.CompanyRepository().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active companies: %w", err)
	}
	return companies, nil
}

func (s *currentInterestService) PostCompany(ctx context.Context, company *models.Company, asOf time.Time, dailyRate decimal.Decimal) (*models.CurrentInterestPosting, error) {
	postingDate := models.DateOf(asOf)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	movements, err := uow.CashMovementRepository().ListByCompanyUpTo(ctx, company.ID, postingDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash movements: %w", err)
	}

	balance := AccumulateBalance(movements, postingDate)
	posting := &models.CurrentInterestPosting{
		CompanyID:   company.ID,
		PostingDate: postingDate,
		Balance:     balance,
		Rate:        dailyRate,
		Amount:      CurrentInterest(balance, dailyRate),
	}

	repo := uow.CurrentInterestRepository()
	existing, err := repo.GetByCompanyAndDate(ctx, company.ID, postingDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing posting: %w", err)
	}
	if existing != nil {
		posting.ID = existing.ID
	}

	if err := repo.Upsert(ctx, posting); err != nil {
		return nil, fmt.Errorf("failed to upsert current interest: %w", err)
	}

	uow.EventBus().Publish(events.CurrentInterestPostedEvent{
		CompanyID:   company.ID,
		PostingDate: postingDate,
		Balance:     balance,
		Amount:      posting.Amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"company_id":  company.ID,
		"date":        postingDate.Format(time.DateOnly),
		"movements":   len(movements),
		"balance":     balance.StringFixed(AmountPlaces),
		"amount":      posting.Amount.StringFixed(AmountPlaces),
		"overwritten": existing != nil,
	}).Info("Posted current interest")

	return posting, nil
}
