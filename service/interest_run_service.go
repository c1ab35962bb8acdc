package service

import (
	"context"
	"fmt"

	"treasury/models"
)

type interestRunService struct {
	uowFactory UnitOfWorkFactory
}

// NewInterestRunService creates a service recording run summaries
func NewInterestRunService(uowFactory UnitOfWorkFactory) InterestRunService {
	return &interestRunService{
		uowFactory: uowFactory,
	}
}

func (s *interestRunService) RecordRun(ctx context.Context, run *models.InterestRun) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.InterestRunRepository().Upsert(ctx, run); err != nil {
		return fmt.Errorf("failed to record interest run: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
