package pubsub

import (
	"context"

	"github.com/charmbracelet/log"
)

type noop struct{}

// NewNoop returns a client that drops every event. It is used when no GCP project is configured.
func NewNoop() PubSubClient {
	return noop{}
}

func (noop) Publish(ctx context.Context, event EventType, _ any) error {
	log.FromContext(ctx).Debug("Pub/Sub disabled, dropping event", "event", event)
	return nil
}

func (noop) Close() error { return nil }
