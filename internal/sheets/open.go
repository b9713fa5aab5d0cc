package sheets

import (
	"context"
	"fmt"

	"github.com/mauv0809/dna-dashboard/internal/config"
	"github.com/mauv0809/dna-dashboard/internal/database"
)

// Open returns the client for the configured backend and a function that releases it.
func Open(ctx context.Context, cfg config.SheetsConfig) (Client, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQL:
		db, err := database.InitDB(cfg.LocalDBPath, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLClient(db), db.Close, nil
	case config.BackendGoogle:
		client, err := NewGoogleClient(ctx, cfg.ServiceAccountEmail, cfg.PrivateKey, cfg.SpreadsheetID)
		if err != nil {
			return nil, nil, err
		}
		return client, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown sheets backend %q", cfg.Backend)
	}
}
