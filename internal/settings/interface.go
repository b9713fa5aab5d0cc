package settings

import (
	"context"

	"github.com/mauv0809/dna-dashboard/internal/pubsub"
)

// Store reads and updates the game settings kept in the settings sheet.
type Store interface {
	Get(ctx context.Context) GameSettings
	Update(ctx context.Context, patch Patch) (GameSettings, error)
	Defaults() GameSettings
}

// Publisher announces settings changes to game clients.
type Publisher interface {
	Publish(ctx context.Context, event pubsub.EventType, payload any) error
}

// Notifier tells operators about settings changes.
type Notifier interface {
	SettingsUpdated(ctx context.Context, keys []string, current GameSettings) error
}
