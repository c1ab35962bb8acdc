package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"treasury/events"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const sourceService = "treasury-interest-accrual"

// EventEnvelope wraps a committed posting event on the wire
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventForwarder republishes committed posting events to NATS so that
// ledger and reporting consumers can follow a run
type NATSEventForwarder struct {
	nc     *nats.Conn
	prefix string
	now    func() time.Time
	failed int
}

// ConnectNATS opens a connection with the reconnect policy used for run-scoped clients
func ConnectNATS(servers string) (*nats.Conn, error) {
	nc, err := nats.Connect(servers,
		nats.Name(sourceService),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Error("NATS disconnected with error")
			} else {
				log.Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.WithField("servers", servers).Info("Connected to NATS")
	return nc, nil
}

// NewNATSEventForwarder creates a forwarder publishing under prefix
func NewNATSEventForwarder(nc *nats.Conn, prefix string) *NATSEventForwarder {
	return &NATSEventForwarder{
		nc:     nc,
		prefix: prefix,
		now:    time.Now,
	}
}

// Attach subscribes the forwarder to every posting event on the bus
func (f *NATSEventForwarder) Attach(bus *events.Bus) {
	for _, eventType := range []events.EventType{
		events.EventTypeCurrentInterestPosted,
		events.EventTypeFixedInterestPosted,
		events.EventTypeEarlyReleaseSettled,
	} {
		bus.Subscribe(eventType, f.handle)
	}
}

// SubjectFor maps an event to its NATS subject
func (f *NATSEventForwarder) SubjectFor(event events.Event) string {
	switch event.Type() {
	case events.EventTypeCurrentInterestPosted:
		return f.prefix + ".interest.current.posted"
	case events.EventTypeFixedInterestPosted:
		return f.prefix + ".interest.fixed.posted"
	case events.EventTypeEarlyReleaseSettled:
		return f.prefix + ".interest.early_release.settled"
	default:
		return fmt.Sprintf("%s.unknown.%s", f.prefix, event.Type())
	}
}

func (f *NATSEventForwarder) envelope(event events.Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	data, err := json.Marshal(EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     f.now().UTC(),
		SourceService: sourceService,
		Payload:       payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event envelope: %w", err)
	}
	return data, nil
}

// handle publishes one event. The posting is already committed, so failures
// are logged and counted, never propagated.
func (f *NATSEventForwarder) handle(_ context.Context, event events.Event) {
	subject := f.SubjectFor(event)

	data, err := f.envelope(event)
	if err == nil {
		err = f.nc.Publish(subject, data)
	}
	if err != nil {
		f.failed++
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"subject":   subject,
			"error":     err,
		}).Error("Failed to forward event to NATS")
		return
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"subject":   subject,
	}).Debug("Forwarded event to NATS")
}

// Failed returns how many events could not be forwarded
func (f *NATSEventForwarder) Failed() int {
	return f.failed
}

// Close flushes buffered messages and closes the connection
func (f *NATSEventForwarder) Close(timeout time.Duration) {
	if err := f.nc.FlushTimeout(timeout); err != nil {
		log.WithError(err).Warn("Failed to flush NATS before close")
	}
	f.nc.Close()
}
