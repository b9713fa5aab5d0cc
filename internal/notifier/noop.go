package notifier

import (
	"context"

	"github.com/mauv0809/dna-dashboard/internal/media"
	"github.com/mauv0809/dna-dashboard/internal/settings"
)

// Noop drops every notification. It is used when Slack is not configured.
type Noop struct{}

func (Noop) SettingsUpdated(context.Context, []string, settings.GameSettings) error { return nil }
func (Noop) MediaUploaded(context.Context, media.UploadedFile) error                 { return nil }
func (Noop) MediaDeleted(context.Context, string) error                              { return nil }
