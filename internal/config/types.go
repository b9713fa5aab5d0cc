package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port           string
	MaxUploadBytes int64
	Location       *time.Location
	Sheets         SheetsConfig
	Storage        StorageConfig
	PubSub         PubSubConfig
	Slack          SlackConfig
}

type SheetsConfig struct {
	// Backend is either BackendGoogle or BackendSQL.
	Backend             string
	ServiceAccountEmail string
	PrivateKey          string
	SpreadsheetID       string
	LocalDBPath         string
	Turso               TursoConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type StorageConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
	// Endpoint overrides the account-derived R2 endpoint, e.g. for MinIO in development.
	Endpoint string
}

type PubSubConfig struct {
	ProjectID string
	Topic     string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

const (
	BackendGoogle = "google"
	BackendSQL    = "sql"
)

// R2Endpoint returns the S3 API endpoint for the configured bucket.
func (s StorageConfig) R2Endpoint() string {
	if s.Endpoint != "" {
		return s.Endpoint
	}
	return "https://" + s.AccountID + ".r2.cloudflarestorage.com"
}
