package service

import (
	"context"
	"fmt"

	"treasury/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type rateResolver struct {
	uowFactory UnitOfWorkFactory
}

// NewRateResolver creates a resolver for the active demand rate
func NewRateResolver(uowFactory UnitOfWorkFactory) RateResolver {
	return &rateResolver{
		uowFactory: uowFactory,
	}
}

func (r *rateResolver) CurrentDailyRate(ctx context.Context) (decimal.Decimal, error) {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rate, err := uow.InterestRateRepository().GetLatestActive(ctx, models.RateTypeDemand)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get active demand rate: %w", err)
	}
	if rate == nil {
		return decimal.Zero, ErrNoActiveRate
	}

	daily := DailyRateFromAnnual(rate.AnnualPercent)

	log.WithFields(log.Fields{
		"rate_id":        rate.ID,
		"annual_percent": rate.AnnualPercent.String(),
		"daily_rate":     daily.String(),
	}).Info("Resolved active demand rate")

	return daily, nil
}
