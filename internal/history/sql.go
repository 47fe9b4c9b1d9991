package history

import (
	"database/sql"
	"fmt"
	"time"
)

// dialect is what differs between the SQL backends: the driver name, the
// placeholder syntax and the schema.
type dialect struct {
	driver string
	bind   func(n int) string
	schema []string
}

// sqlStore holds the queries shared by the SQLite and Postgres stores.
type sqlStore struct {
	db *sql.DB
	dialect
}

// openSQL connects with d, checks the connection and applies the schema.
func openSQL(d dialect, dsn string) (sqlStore, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return sqlStore{}, fmt.Errorf("failed to open %s database: %w", d.driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return sqlStore{}, fmt.Errorf("failed to connect to %s database: %w", d.driver, err)
	}

	s := sqlStore{db: db, dialect: d}
	if err := s.migrate(); err != nil {
		db.Close()
		return sqlStore{}, fmt.Errorf("failed to migrate %s database: %w", d.driver, err)
	}
	return s, nil
}

func (s *sqlStore) migrate() error {
	for _, stmt := range s.schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

// Save writes the run and its results in one transaction.
func (s *sqlStore) Save(run Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runQuery := fmt.Sprintf(`INSERT INTO runs (id, created_at, times, warmup) VALUES (%s, %s, %s, %s)`,
		s.bind(1), s.bind(2), s.bind(3), s.bind(4))
	if _, err := tx.Exec(runQuery, run.ID, run.Timestamp.UTC(), run.Times, run.Warmup); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	resultQuery := fmt.Sprintf(`INSERT INTO results (run_id, benchmark, runtime, millis) VALUES (%s, %s, %s, %s)`,
		s.bind(1), s.bind(2), s.bind(3), s.bind(4))
	for _, r := range run.Results {
		if _, err := tx.Exec(resultQuery, run.ID, r.Benchmark, r.Runtime, r.Millis); err != nil {
			return fmt.Errorf("failed to insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// LoadAll returns every run, oldest first.
func (s *sqlStore) LoadAll() ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, created_at, times, warmup FROM runs ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}

	var runs []Run
	for rows.Next() {
		var run Run
		var ts time.Time
		if err := rows.Scan(&run.ID, &ts, &run.Times, &run.Warmup); err != nil {
			rows.Close()
			return nil, err
		}
		run.Timestamp = ts.UTC()
		runs = append(runs, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		results, err := s.loadResults(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Results = results
	}
	return runs, nil
}

// LoadLatest returns the newest run, or nil when history is empty.
func (s *sqlStore) LoadLatest() (*Run, error) {
	var run Run
	var ts time.Time
	err := s.db.QueryRow(`SELECT id, created_at, times, warmup FROM runs ORDER BY created_at DESC LIMIT 1`).
		Scan(&run.ID, &ts, &run.Times, &run.Warmup)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	run.Timestamp = ts.UTC()

	run.Results, err = s.loadResults(run.ID)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *sqlStore) loadResults(runID string) ([]Result, error) {
	query := fmt.Sprintf(`SELECT benchmark, runtime, millis FROM results WHERE run_id = %s ORDER BY id ASC`, s.bind(1))
	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Benchmark, &r.Runtime, &r.Millis); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
