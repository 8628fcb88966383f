package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Event types
const (
	ProductCreated = "store.product.created"
	ProductUpdated = "store.product.updated"
	ProductDeleted = "store.product.deleted"

	VariantCreated = "store.variant.created"
	VariantUpdated = "store.variant.updated"
	VariantDeleted = "store.variant.deleted"

	OrderCreated       = "store.order.created"
	OrderStatusChanged = "store.order.status_changed"
)

const streamName = "STORE_EVENTS"

// Event is the wire shape of every published store event
type Event struct {
	EventType string                 `json:"eventType"`
	SourceID  string                 `json:"sourceId"`
	Timestamp time.Time              `json:"timestamp"`
	Actor     string                 `json:"actor,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// Publisher publishes audit events to NATS JetStream. A nil Publisher is
// valid and publishes nothing, so the service runs without a broker.
type Publisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the event stream exists. An
// empty URL disables publishing.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	if natsURL == "" {
		return nil, nil
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("juellehair-store"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      streamName,
		Subjects:  []string{"store.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    30 * 24 * time.Hour,
	})
	if err != nil && err != nats.ErrStreamNameAlreadyInUse {
		logger.WithError(err).Warn("Failed to ensure STORE_EVENTS stream")
	}

	return &Publisher{
		conn:   conn,
		js:     js,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

// Publish sends an event asynchronously. Failures are logged, never
// surfaced: audit events must not fail the request that produced them.
func (p *Publisher) Publish(eventType, sourceID, actor string, payload map[string]interface{}) {
	if p == nil {
		return
	}

	event := Event{
		EventType: eventType,
		SourceID:  sourceID,
		Timestamp: time.Now().UTC(),
		Actor:     actor,
		Payload:   payload,
	}

	go func() {
		data, err := json.Marshal(event)
		if err != nil {
			p.logger.WithError(err).WithField("event", eventType).Error("Failed to marshal event")
			return
		}
		if _, err := p.js.Publish(eventType, data); err != nil {
			p.logger.WithError(err).WithField("event", eventType).Warn("Failed to publish event")
		}
	}()
}

// IsConnected reports whether the NATS connection is up
func (p *Publisher) IsConnected() bool {
	return p != nil && p.conn != nil && p.conn.IsConnected()
}

// Close drains the connection
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	_ = p.conn.Drain()
}
