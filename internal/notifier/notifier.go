package notifier

import (
	"context"

	"github.com/mauv0809/dna-dashboard/internal/media"
	"github.com/mauv0809/dna-dashboard/internal/settings"
)

// Notifier defines a high-level interface for telling operators about changes made through the dashboard.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SettingsUpdated(ctx context.Context, keys []string, current settings.GameSettings) error
	MediaUploaded(ctx context.Context, file media.UploadedFile) error
	MediaDeleted(ctx context.Context, key string) error
}

var (
	_ settings.Notifier = Notifier(nil)
	_ media.Notifier    = Notifier(nil)
)
