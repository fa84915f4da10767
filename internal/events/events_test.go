package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

// recordingBackend captures published messages for assertions.
type recordingBackend struct {
	channels []string
	data     [][]byte
	attrs    []map[string]string
	err      error
	closed   bool
}

func (b *recordingBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	b.channels = append(b.channels, channel)
	b.data = append(b.data, data)
	b.attrs = append(b.attrs, attrs)
	return "msg-1", nil
}

func (b *recordingBackend) Subscribe(ctx context.Context, channel string, handler Handler) error {
	return nil
}

func (b *recordingBackend) Close() error {
	b.closed = true
	return nil
}

func TestEmitWrapsPayloadInEnvelope(t *testing.T) {
	backend := &recordingBackend{}
	pub := NewPublisher(backend)

	pub.Emit(context.Background(), ChannelAccounts, TypeAccountRegistered, map[string]string{"id": "acc-1"})

	if len(backend.data) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(backend.data))
	}
	if backend.channels[0] != ChannelAccounts {
		t.Fatalf("channel = %q", backend.channels[0])
	}
	if backend.attrs[0]["type"] != TypeAccountRegistered {
		t.Fatalf("attrs = %+v", backend.attrs[0])
	}

	var env Envelope
	if err := json.Unmarshal(backend.data[0], &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Type != TypeAccountRegistered {
		t.Fatalf("envelope type = %q", env.Type)
	}
	if env.OccurredAt.IsZero() {
		t.Fatalf("occurredAt not set")
	}
	var payload map[string]string
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["id"] != "acc-1" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestNilPublisherIsSafe(t *testing.T) {
	var pub *Publisher

	// Must not panic and must not error.
	pub.Emit(context.Background(), ChannelContent, TypeContentCreated, "payload")
	if err := pub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestEmitSwallowsBackendErrors(t *testing.T) {
	backend := &recordingBackend{err: errors.New("broker down")}
	pub := NewPublisher(backend)

	// Fire and forget: a failing backend never reaches the caller.
	pub.Emit(context.Background(), ChannelSubscriptions, TypeSubscriptionChanged, "payload")
}

func TestCloseClosesBackend(t *testing.T) {
	backend := &recordingBackend{}
	pub := NewPublisher(backend)
	if err := pub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !backend.closed {
		t.Fatalf("backend not closed")
	}
}
