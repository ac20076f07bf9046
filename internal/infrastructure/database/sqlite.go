package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/config"
)

// NewSQLiteDB opens a file-backed prediction history and creates its schema
func NewSQLiteDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One writer at a time keeps SQLITE_BUSY away
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure sqlite database: %w", err)
	}

	if err := MigrateSQLite(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// MigrateSQLite creates the predictions table when missing
func MigrateSQLite(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS predictions (
  id               TEXT PRIMARY KEY,
  request_id       TEXT NOT NULL DEFAULT '',
  text_hash        TEXT NOT NULL,
  text_length      INTEGER NOT NULL,
  prediction       TEXT NOT NULL,
  is_spam          INTEGER NOT NULL,
  confidence       REAL NOT NULL,
  spam_probability REAL NOT NULL,
  model_version    TEXT NOT NULL DEFAULT '',
  cached           INTEGER NOT NULL DEFAULT 0,
  latency_ms       INTEGER NOT NULL DEFAULT 0,
  created_at       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_predictions_text_hash  ON predictions(text_hash);
CREATE INDEX IF NOT EXISTS idx_predictions_prediction ON predictions(prediction);
`)
	return err
}
