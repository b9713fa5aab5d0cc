package pubsub

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Pub/Sub and publishes to the given topic.
func New(ctx context.Context, projectID, topic string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	t := pubSubC.Topic(topic)
	teardown := func() {
		t.Stop()
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		topic:    t,
		now:      time.Now,
		teardown: teardown,
	}, nil
}

func (c *client) Publish(ctx context.Context, event EventType, payload any) error {
	data, err := Encode(event, payload, c.now())
	if err != nil {
		log.Error("MessagePack marshal error", "error", err, "event", event)
		return err
	}
	message := &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"type": string(event)},
	}
	result := c.topic.Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", c.topic.ID())
		return err
	}
	log.FromContext(ctx).Debug("Published change event", "event", event, "serverID", serverID)
	return nil
}

func (c *client) Close() error {
	c.teardown()
	return nil
}

// Encode builds the MessagePack encoded ChangeEvent for payload.
func Encode(event EventType, payload any, at time.Time) ([]byte, error) {
	body, err := msgpack.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(ChangeEvent{Type: event, OccurredAt: at.UTC(), Payload: body})
}

// Decode unpacks a ChangeEvent and, when out is not nil, its payload.
func Decode(data []byte, out any) (*ChangeEvent, error) {
	var event ChangeEvent
	if err := msgpack.Unmarshal(data, &event); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return nil, err
	}
	if out != nil {
		if err := msgpack.Unmarshal(event.Payload, out); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", event.Type, err)
		}
	}
	return &event, nil
}
