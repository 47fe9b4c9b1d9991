package history

import (
	"database/sql"
	"strconv"

	_ "github.com/lib/pq"
)

var postgresDialect = dialect{
	driver: "postgres",
	bind:   func(n int) string { return "$" + strconv.Itoa(n) },
	schema: []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			times INTEGER NOT NULL,
			warmup INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(id),
			benchmark TEXT NOT NULL,
			runtime TEXT NOT NULL,
			millis DOUBLE PRECISION NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id)`,
	},
}

// PostgresStore keeps history in a shared PostgreSQL database so several
// machines can compare against each other.
type PostgresStore struct {
	sqlStore
}

// NewPostgresStore connects to dsn.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	s, err := openSQL(postgresDialect, dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{s}, nil
}

// newPostgresStore wraps an open connection without migrating it.
func newPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{sqlStore{db: db, dialect: postgresDialect}}
}
