package application

import (
	"context"
	"sync"

	"treasury/events"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// RunTotals are the committed postings seen during one run
type RunTotals struct {
	CurrentPostings           int
	FixedPostings             int
	FinalFixedPostings        int
	EarlyReleasePostings      int
	TotalCurrentInterest      decimal.Decimal
	TotalFixedInterest        decimal.Decimal
	TotalEarlyReleaseInterest decimal.Decimal
}

// RunStats totals posting events flushed by committed units of work
type RunStats struct {
	mu     sync.Mutex
	totals RunTotals
}

// NewRunStats creates the collector and subscribes it to the bus
func NewRunStats(bus *events.Bus) *RunStats {
	s := &RunStats{}
	s.Reset()

	bus.Subscribe(events.EventTypeCurrentInterestPosted, s.handleCurrentInterestPosted)
	bus.Subscribe(events.EventTypeFixedInterestPosted, s.handleFixedInterestPosted)
	bus.Subscribe(events.EventTypeEarlyReleaseSettled, s.handleEarlyReleaseSettled)

	return s
}

// Reset clears the totals before a run
func (s *RunStats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals = RunTotals{
		TotalCurrentInterest:      decimal.Zero,
		TotalFixedInterest:        decimal.Zero,
		TotalEarlyReleaseInterest: decimal.Zero,
	}
}

// Snapshot returns a copy of the current totals
func (s *RunStats) Snapshot() RunTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

func (s *RunStats) handleCurrentInterestPosted(_ context.Context, event events.Event) {
	e, ok := event.(events.CurrentInterestPostedEvent)
	if !ok {
		log.Errorf("RunStats: unexpected event type %T", event)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals.CurrentPostings++
	s.totals.TotalCurrentInterest = s.totals.TotalCurrentInterest.Add(e.Amount)
}

func (s *RunStats) handleFixedInterestPosted(_ context.Context, event events.Event) {
	e, ok := event.(events.FixedInterestPostedEvent)
	if !ok {
		log.Errorf("RunStats: unexpected event type %T", event)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals.FixedPostings++
	if !e.IsEstimate {
		s.totals.FinalFixedPostings++
	}
	s.totals.TotalFixedInterest = s.totals.TotalFixedInterest.Add(e.Amount)
}

func (s *RunStats) handleEarlyReleaseSettled(_ context.Context, event events.Event) {
	e, ok := event.(events.EarlyReleaseSettledEvent)
	if !ok {
		log.Errorf("RunStats: unexpected event type %T", event)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals.EarlyReleasePostings++
	s.totals.TotalEarlyReleaseInterest = s.totals.TotalEarlyReleaseInterest.Add(e.Amount)
}
