package history

import (
	"fmt"
	"strings"
)

// Default locations for the file-backed stores.
const (
	DefaultPath       = ".runbench/history.json"
	DefaultSQLitePath = ".runbench/history.db"
)

// StoreConfig selects a backend. Location is a file path for json and sqlite
// and a DSN for postgres.
type StoreConfig struct {
	Type     string
	Location string
}

// NewStore opens the configured backend.
func NewStore(cfg StoreConfig) (Store, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "json":
		return NewFileStore(orDefault(cfg.Location, DefaultPath))
	case "sqlite", "sqlite3":
		return NewSQLiteStore(orDefault(cfg.Location, DefaultSQLitePath))
	case "postgres", "postgresql":
		if cfg.Location == "" {
			return nil, fmt.Errorf("postgres history needs a connection string")
		}
		return NewPostgresStore(cfg.Location)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
