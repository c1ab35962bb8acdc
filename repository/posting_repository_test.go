package repository

import (
	"context"
	"testing"

	"treasury/models"
	"treasury/repository/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedInterestRepository_Insert(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewFixedInterestRepository(testDB.DB)
	ctx := context.Background()

	companyID := testutil.InsertCompany(t, testDB.DB, "Acme", true)
	deposit := testutil.NewTestDeposit("FD-1", companyID, testutil.Day(2024, 1, 1))
	testutil.InsertDeposit(t, testDB.DB, deposit)

	snapshot := func(day int) *models.FixedInterestPosting {
		return &models.FixedInterestPosting{
			DepositCode: "FD-1",
			CompanyID:   companyID,
			PostingDate: testutil.Day(2024, 3, day),
			Principal:   deposit.Principal,
			Rate:        decimal.RequireFromString("0.00005"),
			Days:        360,
			Amount:      decimal.RequireFromString("18000.00"),
			IsEstimate:  true,
		}
	}

	inserted, err := repo.Insert(ctx, snapshot(31))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Insert(ctx, snapshot(31))
	require.NoError(t, err)
	assert.False(t, inserted, "second insert for the same day is ignored")

	inserted, err = repo.Insert(ctx, snapshot(1))
	require.NoError(t, err)
	assert.True(t, inserted)

	all, err := repo.ListByDeposit(ctx, "FD-1")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, testutil.Day(2024, 3, 1), all[0].PostingDate)

	latest, err := repo.GetLatestByDeposit(ctx, "FD-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, testutil.Day(2024, 3, 31), latest.PostingDate)
	assert.Equal(t, 360, latest.Days)
	assert.True(t, latest.IsEstimate)
	assert.True(t, latest.Amount.Equal(decimal.NewFromInt(18000)))

	none, err := repo.GetLatestByDeposit(ctx, "FD-2")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestEarlyReleaseRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewEarlyReleaseRepository(testDB.DB)
	ctx := context.Background()

	companyID := testutil.InsertCompany(t, testDB.DB, "Acme", true)
	start := testutil.Day(2024, 1, 1)

	exists, err := repo.ExistsForDeposit(ctx, "FD-1", start)
	require.NoError(t, err)
	assert.False(t, exists)

	settlement := &models.EarlyReleasePosting{
		DepositCode:   "FD-1",
		CompanyID:     companyID,
		StartDate:     start,
		ReleaseDate:   testutil.Day(2024, 3, 1),
		ReleaseAmount: decimal.NewFromInt(100000),
		Rate:          decimal.RequireFromString("0.00005"),
		InterestDays:  60,
		Amount:        decimal.RequireFromString("300.00"),
	}
	require.NoError(t, repo.Insert(ctx, settlement))
	assert.NotZero(t, settlement.ID)

	exists, err = repo.ExistsForDeposit(ctx, "FD-1", start)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForDeposit(ctx, "FD-1", testutil.Day(2024, 1, 2))
	require.NoError(t, err)
	assert.False(t, exists, "the guard is keyed on start date")

	duplicate := *settlement
	duplicate.ID = 0
	assert.Error(t, repo.Insert(ctx, &duplicate), "unique key rejects a second settlement")
}
