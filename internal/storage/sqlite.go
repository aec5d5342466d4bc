// Package storage implements the persistence collaborator on SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/finchwatch/finch/internal/service"
)

var _ service.Storage = (*SQLiteStorage)(nil)

// SQLiteStorage implements the service.Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Migrate creates the schema.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			hash TEXT UNIQUE NOT NULL,
			date DATETIME NOT NULL,
			name TEXT NOT NULL,
			merchant_name TEXT,
			amount REAL NOT NULL,
			direction TEXT NOT NULL DEFAULT 'debit',
			category TEXT,
			account_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_merchant ON transactions(merchant_name)`,

		`CREATE TABLE IF NOT EXISTS recurring_charges (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			payee TEXT NOT NULL,
			kind TEXT NOT NULL,
			category TEXT,
			amount REAL NOT NULL,
			frequency TEXT NOT NULL,
			confidence REAL NOT NULL,
			confidence_level TEXT NOT NULL,
			transaction_count INTEGER NOT NULL,
			first_date DATETIME NOT NULL,
			last_date DATETIME NOT NULL,
			predicted_next_date DATETIME NOT NULL,
			amount_variance_percent REAL NOT NULL,
			detected_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(payee, kind, frequency)
		)`,

		`CREATE TABLE IF NOT EXISTS anomaly_alerts (
			id TEXT PRIMARY KEY,
			transaction_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			severity TEXT NOT NULL,
			baseline_mean REAL,
			baseline_stddev REAL,
			threshold REAL,
			related_txn_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (transaction_id) REFERENCES transactions(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_anomaly_alerts_txn ON anomaly_alerts(transaction_id)`,
	}

	for _, q := range queries {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	slog.Debug("migrations complete", "db_path", s.dbPath)
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
