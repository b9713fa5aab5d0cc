package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const defaultMaxUploadMB = 50

// Load reads configuration from environment variables and .env file.
func Load() Config {
	loadDotEnv()
	cfg, err := load(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	return cfg
}

// LoadSheets reads only the spreadsheet backend settings. Tools that never touch the
// bucket use it so they do not need storage credentials.
func LoadSheets() SheetsConfig {
	loadDotEnv()
	e := &env{lookup: os.LookupEnv}
	sheets, err := e.sheets()
	if err == nil {
		err = e.err()
	}
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	return sheets
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
}

// env reads variables through lookup. Missing required keys are collected and reported together.
type env struct {
	lookup  func(string) (string, bool)
	missing []string
}

func (e *env) required(key string) string {
	if value, ok := e.lookup(key); ok && value != "" {
		return value
	}
	e.missing = append(e.missing, key)
	return ""
}

func (e *env) optional(key, fallback string) string {
	if value, ok := e.lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func (e *env) err() error {
	if len(e.missing) > 0 {
		return fmt.Errorf("required environment variables not set: %s", strings.Join(e.missing, ", "))
	}
	return nil
}

func (e *env) sheets() (SheetsConfig, error) {
	cfg := SheetsConfig{
		Backend: strings.ToLower(e.optional("SHEETS_BACKEND", BackendGoogle)),
	}
	switch cfg.Backend {
	case BackendGoogle:
		cfg.ServiceAccountEmail = e.required("GOOGLE_SERVICE_ACCOUNT_EMAIL")
		// Keys pasted into .env files usually carry escaped newlines.
		cfg.PrivateKey = strings.ReplaceAll(e.required("GOOGLE_PRIVATE_KEY"), `\n`, "\n")
		cfg.SpreadsheetID = e.required("GOOGLE_SHEET_ID")
	case BackendSQL:
		cfg.LocalDBPath = e.optional("LOCAL_DB_PATH", "dashboard.db")
		cfg.Turso = TursoConfig{
			PrimaryURL: e.optional("TURSO_PRIMARY_URL", ""),
			AuthToken:  e.optional("TURSO_AUTH_TOKEN", ""),
		}
	default:
		return SheetsConfig{}, fmt.Errorf("unknown SHEETS_BACKEND %q", cfg.Backend)
	}
	return cfg, nil
}

func load(lookup func(string) (string, bool)) (Config, error) {
	e := &env{lookup: lookup}

	cfg := Config{
		Port: e.optional("PORT", "8080"),
		PubSub: PubSubConfig{
			ProjectID: e.optional("GCP_PROJECT", ""),
			Topic:     e.optional("PUBSUB_TOPIC", "dna-game-changes"),
		},
		Slack: SlackConfig{
			Token:     e.optional("SLACK_BOT_TOKEN", ""),
			ChannelID: e.optional("SLACK_CHANNEL_ID", ""),
		},
	}

	maxMB, err := strconv.Atoi(e.optional("MAX_UPLOAD_MB", strconv.Itoa(defaultMaxUploadMB)))
	if err != nil || maxMB <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer")
	}
	cfg.MaxUploadBytes = int64(maxMB) * 1024 * 1024

	cfg.Location = time.Local
	if tz := e.optional("DISPLAY_TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	if cfg.Sheets, err = e.sheets(); err != nil {
		return Config{}, err
	}

	cfg.Storage = StorageConfig{
		AccountID:       e.optional("CLOUDFLARE_R2_ACCOUNT_ID", ""),
		AccessKeyID:     e.required("CLOUDFLARE_R2_ACCESS_KEY_ID"),
		SecretAccessKey: e.required("CLOUDFLARE_R2_SECRET_ACCESS_KEY"),
		Bucket:          e.required("CLOUDFLARE_R2_BUCKET_NAME"),
		PublicURL:       strings.TrimRight(e.required("R2_PUBLIC_URL"), "/"),
		Endpoint:        e.optional("R2_ENDPOINT", ""),
	}
	if cfg.Storage.AccountID == "" && cfg.Storage.Endpoint == "" {
		e.missing = append(e.missing, "CLOUDFLARE_R2_ACCOUNT_ID")
	}

	if err := e.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
