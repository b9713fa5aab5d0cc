package pubsub

import "context"

type PubSubClient interface {
	Publish(ctx context.Context, event EventType, payload any) error
	Close() error
}
