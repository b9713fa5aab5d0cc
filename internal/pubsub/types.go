package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/vmihailenco/msgpack/v5"
)

type client struct {
	client   *pubsub.Client
	topic    *pubsub.Topic
	now      func() time.Time
	teardown func()
}

// EventType represents the type of change announced to game clients.
type EventType string

const (
	EventSettingsUpdated EventType = "settings-updated"
	EventMediaUploaded   EventType = "media-uploaded"
	EventMediaDeleted    EventType = "media-deleted"
)

// ChangeEvent is the message published for every change. Payload holds the
// MessagePack encoding of the event specific body.
type ChangeEvent struct {
	Type       EventType          `msgpack:"type"`
	OccurredAt time.Time          `msgpack:"occurredAt"`
	Payload    msgpack.RawMessage `msgpack:"payload"`
}
