package repository

import (
	"context"
	"testing"

	"treasury/events"
	"treasury/models"
	"treasury/repository/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	var delivered []events.Event
	bus.Subscribe(events.EventTypeCurrentInterestPosted, func(_ context.Context, e events.Event) {
		delivered = append(delivered, e)
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	companyID := testutil.InsertCompany(t, testDB.DB, "Acme", true)
	day := testutil.Day(2024, 1, 2)

	write := func(amount string) (func() error, func() error) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.CurrentInterestRepository().Upsert(ctx, &models.CurrentInterestPosting{
			CompanyID:   companyID,
			PostingDate: day,
			Balance:     decimal.NewFromInt(1000),
			Rate:        decimal.RequireFromString("0.00005"),
			Amount:      decimal.RequireFromString(amount),
		}))
		uow.EventBus().Publish(events.CurrentInterestPostedEvent{CompanyID: companyID, PostingDate: day})
		return uow.Commit, uow.Rollback
	}

	t.Run("rollback discards rows and events", func(t *testing.T) {
		_, rollback := write("0.05")
		require.NoError(t, rollback())

		count, err := NewCurrentInterestRepository(testDB.DB).CountByDate(ctx, day)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, delivered)
	})

	t.Run("commit persists rows and flushes events", func(t *testing.T) {
		commit, rollback := write("0.05")
		require.NoError(t, commit())
		require.NoError(t, rollback(), "rollback after commit is a no-op")

		count, err := NewCurrentInterestRepository(testDB.DB).CountByDate(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Len(t, delivered, 1)
	})

	t.Run("repositories require Begin", func(t *testing.T) {
		uow := factory.Create()
		assert.Panics(t, func() { uow.FixedDepositRepository() })
		assert.Error(t, uow.Commit())
	})
}
