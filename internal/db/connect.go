package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:survey.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/survey?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS survey_rows (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  survey_id TEXT NOT NULL DEFAULT 'survey',
  recorded_at INTEGER NOT NULL,
  partial INTEGER NOT NULL DEFAULT 0,
  participant TEXT NOT NULL DEFAULT '',
  page INTEGER NOT NULL DEFAULT 0,
  answers_json TEXT NOT NULL              -- ["slot 1", "slot 2", ...]
);

CREATE INDEX IF NOT EXISTS survey_rows_participant ON survey_rows (survey_id, participant);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS survey_rows (
  id BIGSERIAL PRIMARY KEY,
  survey_id TEXT NOT NULL DEFAULT 'survey',
  recorded_at BIGINT NOT NULL,
  partial BOOLEAN NOT NULL DEFAULT FALSE,
  participant TEXT NOT NULL DEFAULT '',
  page INTEGER NOT NULL DEFAULT 0,
  answers_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS survey_rows_participant ON survey_rows (survey_id, participant);
`
