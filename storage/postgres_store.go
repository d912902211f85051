package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"keyword-scraper/models"
)

// PostgresStore mirrors keyword records into PostgreSQL. The JSON files
// remain the source of truth; the mirror exists for querying across runs.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresStore.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS keyword_records (
			id                     SERIAL PRIMARY KEY,
			keyword                TEXT        UNIQUE NOT NULL,
			captured_at            TIMESTAMPTZ NOT NULL,
			autocomplete           JSONB       NOT NULL DEFAULT '[]',
			people_also_ask        JSONB       NOT NULL DEFAULT '[]',
			people_also_search_for JSONB       NOT NULL DEFAULT '[]'
		);

		CREATE INDEX IF NOT EXISTS idx_keyword_records_captured_at ON keyword_records(captured_at);
	`)
	return err
}

// Write upserts every record by keyword, so re-running a keyword replaces
// its previous capture.
func (ps *PostgresStore) Write(records []*models.KeywordRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, r := range records {
		EnsureLists(r)

		autocomplete, err := json.Marshal(r.Autocomplete)
		if err != nil {
			return fmt.Errorf("postgres: marshal autocomplete for %q: %w", r.Keyword, err)
		}
		paa, err := json.Marshal(r.PeopleAlsoAsk)
		if err != nil {
			return fmt.Errorf("postgres: marshal paa for %q: %w", r.Keyword, err)
		}
		pasf, err := json.Marshal(r.PeopleAlsoSearchFor)
		if err != nil {
			return fmt.Errorf("postgres: marshal pasf for %q: %w", r.Keyword, err)
		}

		capturedAt, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			capturedAt = time.Now()
		}

		_, err = ps.db.Exec(`
			INSERT INTO keyword_records (keyword, captured_at, autocomplete, people_also_ask, people_also_search_for)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (keyword) DO UPDATE SET
				captured_at            = EXCLUDED.captured_at,
				autocomplete           = EXCLUDED.autocomplete,
				people_also_ask        = EXCLUDED.people_also_ask,
				people_also_search_for = EXCLUDED.people_also_search_for
		`, r.Keyword, capturedAt, autocomplete, paa, pasf)
		if err != nil {
			return fmt.Errorf("postgres: upsert %q: %w", r.Keyword, err)
		}
	}

	return nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
