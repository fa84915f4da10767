// Package events publishes domain events to a message broker. Publishing is
// synchronous and fire-and-forget: failures are logged, never surfaced, and
// this process runs no consumers.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// Channels, one per collection.
const (
	ChannelAccounts      = "copyforge.accounts"
	ChannelContent       = "copyforge.content"
	ChannelSubscriptions = "copyforge.subscriptions"
)

// Event types.
const (
	TypeAccountRegistered   = "account.registered"
	TypeContentCreated      = "content.created"
	TypeSubscriptionChanged = "subscription.changed"
)

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// Envelope is the wire format for every published event.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// Publisher emits domain events over a backend. A nil *Publisher is valid
// and publishes nothing, so callers never need to branch on configuration.
type Publisher struct {
	backend Backend
}

// NewPublisher constructs a Publisher for the provided backend.
func NewPublisher(backend Backend) *Publisher {
	return &Publisher{backend: backend}
}

// Emit publishes an event of the given type on the channel.
func (p *Publisher) Emit(ctx context.Context, channel, eventType string, payload any) {
	if p == nil || p.backend == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("events: marshal %s payload: %v", eventType, err)
		return
	}
	data, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    body,
	})
	if err != nil {
		log.Printf("events: marshal %s envelope: %v", eventType, err)
		return
	}

	attrs := map[string]string{"type": eventType}
	if _, err := p.backend.Publish(ctx, channel, data, attrs); err != nil {
		log.Printf("events: publish %s: %v", eventType, err)
	}
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	if p == nil || p.backend == nil {
		return nil
	}
	return p.backend.Close()
}
