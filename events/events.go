package events

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeCurrentInterestPosted EventType = "current_interest_posted"
	EventTypeFixedInterestPosted   EventType = "fixed_interest_posted"
	EventTypeEarlyReleaseSettled   EventType = "early_release_settled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// CurrentInterestPostedEvent is published when a company's demand interest is upserted
type CurrentInterestPostedEvent struct {
	CompanyID   int64
	PostingDate time.Time
	Balance     decimal.Decimal
	Amount      decimal.Decimal
}

func (e CurrentInterestPostedEvent) Type() EventType {
	return EventTypeCurrentInterestPosted
}

// FixedInterestPostedEvent is published when a deposit snapshot is appended
type FixedInterestPostedEvent struct {
	DepositCode     string
	CompanyID       int64
	PostingDate     time.Time
	Amount          decimal.Decimal
	IsEstimate      bool
	NextPostingDate time.Time
}

func (e FixedInterestPostedEvent) Type() EventType {
	return EventTypeFixedInterestPosted
}

// EarlyReleaseSettledEvent is published when an early-released deposit is settled
type EarlyReleaseSettledEvent struct {
	DepositCode  string
	CompanyID    int64
	ReleaseDate  time.Time
	InterestDays int
	Amount       decimal.Decimal
}

func (e EarlyReleaseSettledEvent) Type() EventType {
	return EventTypeEarlyReleaseSettled
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching.
// Handlers run synchronously on the emitting goroutine, in subscription order,
// so that a caller observes every handler's effect once Emit returns.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for i, handler := range handlers {
		b.dispatch(ctx, event, handler, i)
	}
}

func (b *Bus) dispatch(ctx context.Context, event Event, h Handler, handlerIndex int) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"eventType":    event.Type(),
				"handlerIndex": handlerIndex,
				"panic":        r,
			}).Error("Event handler panicked")
		}
	}()
	h(ctx, event)
}

// TransactionalBus holds events raised inside a unit of work until the
// transaction commits. Flushes to the underlying event bus.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) {
	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing committed events")

	for _, ev := range b.pending {
		b.real.Emit(ctx, ev)
	}
	b.pending = nil
}

// Discard drops pending events after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
