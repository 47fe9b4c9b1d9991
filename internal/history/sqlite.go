package history

import (
	_ "modernc.org/sqlite"
)

var sqliteDialect = dialect{
	driver: "sqlite",
	bind:   func(int) string { return "?" },
	schema: []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			times INTEGER NOT NULL,
			warmup INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			benchmark TEXT NOT NULL,
			runtime TEXT NOT NULL,
			millis REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id)`,
	},
}

// SQLiteStore keeps history in a local SQLite file.
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	s, err := openSQL(sqliteDialect, path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{s}, nil
}
