package events

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionalBus_FlushDeliversAfterCommit(t *testing.T) {
	mainBus := NewBus()
	txBus := NewTransactionalBus(mainBus)

	var received []CurrentInterestPostedEvent
	mainBus.Subscribe(EventTypeCurrentInterestPosted, func(ctx context.Context, event Event) {
		e, ok := event.(CurrentInterestPostedEvent)
		require.True(t, ok, "expected CurrentInterestPostedEvent, got %T", event)
		received = append(received, e)
	})

	txBus.Publish(CurrentInterestPostedEvent{
		CompanyID:   42,
		PostingDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Balance:     decimal.NewFromInt(250000),
		Amount:      decimal.RequireFromString("12.5"),
	})

	// Nothing is delivered before the flush
	assert.Empty(t, received)

	txBus.Flush(context.Background())

	require.Len(t, received, 1)
	assert.Equal(t, int64(42), received[0].CompanyID)
	assert.True(t, received[0].Amount.Equal(decimal.RequireFromString("12.5")))

	// A second flush has nothing left to deliver
	txBus.Flush(context.Background())
	assert.Len(t, received, 1)
}

func TestTransactionalBus_DiscardDropsPending(t *testing.T) {
	mainBus := NewBus()
	txBus := NewTransactionalBus(mainBus)

	calls := 0
	mainBus.Subscribe(EventTypeFixedInterestPosted, func(ctx context.Context, event Event) {
		calls++
	})

	txBus.Publish(FixedInterestPostedEvent{DepositCode: "FD-1"})
	txBus.Discard()
	txBus.Flush(context.Background())

	assert.Equal(t, 0, calls)
}

func TestBus_HandlerPanicDoesNotStopOtherHandlers(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(EventTypeEarlyReleaseSettled, func(ctx context.Context, event Event) {
		order = append(order, "first")
		panic("boom")
	})
	bus.Subscribe(EventTypeEarlyReleaseSettled, func(ctx context.Context, event Event) {
		order = append(order, "second")
	})

	assert.NotPanics(t, func() {
		bus.Emit(context.Background(), EarlyReleaseSettledEvent{DepositCode: "FD-9"})
	})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBus_OnlyMatchingTypeIsDelivered(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe(EventTypeCurrentInterestPosted, func(ctx context.Context, event Event) {
		calls++
	})

	bus.Emit(context.Background(), FixedInterestPostedEvent{DepositCode: "FD-1"})
	assert.Equal(t, 0, calls)
}
