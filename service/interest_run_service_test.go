package service

import (
	"context"
	"errors"
	"testing"

	"treasury/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestRunService_RecordRun(t *testing.T) {
	ctx := context.Background()
	factory, uow := newTransactionMocks()
	run := &models.InterestRun{
		RunDate:   day(2024, 1, 2),
		DailyRate: dailyRate18,
		Status:    models.InterestRunStatusCompleted,
	}

	uow.Runs.On("Upsert", ctx, run).Return(nil)
	uow.On("Commit").Return(nil)

	require.NoError(t, NewInterestRunService(factory).RecordRun(ctx, run))
	uow.AssertAllExpectations(t)
}

func TestInterestRunService_RecordRun_Failure(t *testing.T) {
	ctx := context.Background()
	factory, uow := newTransactionMocks()
	run := &models.InterestRun{RunDate: day(2024, 1, 2)}

	uow.Runs.On("Upsert", ctx, run).Return(errors.New("disk full"))

	err := NewInterestRunService(factory).RecordRun(ctx, run)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	uow.AssertNotCalled(t, "Commit")
}
