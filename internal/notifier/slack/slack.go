package slack

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/dna-dashboard/internal/media"
	"github.com/mauv0809/dna-dashboard/internal/metrics"
	"github.com/mauv0809/dna-dashboard/internal/notifier"
	"github.com/mauv0809/dna-dashboard/internal/settings"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts dashboard changes to an ops channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
	)
	if err != nil {
		s.metrics.IncNotificationsFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotificationsSent()
	log.FromContext(ctx).Debug("Sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

func (s *Notifier) SettingsUpdated(ctx context.Context, keys []string, current settings.GameSettings) error {
	return s.sendMessage(ctx, formatSettingsUpdated(keys, current))
}

func (s *Notifier) MediaUploaded(ctx context.Context, file media.UploadedFile) error {
	return s.sendMessage(ctx, formatMediaUploaded(file))
}

func (s *Notifier) MediaDeleted(ctx context.Context, key string) error {
	return s.sendMessage(ctx, formatMediaDeleted(key))
}

func formatSettingsUpdated(keys []string, current settings.GameSettings) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🧬 Game settings updated", true, false)),
	}

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("• `%s` = %s", key, settings.Value(current, key)))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(lines, "\n"), false, false), nil, nil))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("%d setting(s) changed from the dashboard", len(keys)), true, false),
	))
	return slack.NewBlockMessage(blocks...)
}

func formatMediaUploaded(file media.UploadedFile) slack.Message {
	details := fmt.Sprintf("*File:* %s\n*Type:* %s\n*Size:* %s\n*URL:* <%s>", file.Filename, file.MimeType, humanSize(file.Size), file.URL)
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "📤 Media uploaded", true, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", details, false, false), nil, nil),
		slack.NewContextBlock("", slack.NewTextBlockObject("mrkdwn", "`"+file.Key+"`", false, false)),
	)
}

func formatMediaDeleted(key string) slack.Message {
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🗑️ Media deleted", true, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "`"+key+"`", false, false), nil, nil),
	)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
