// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface. Ledger snapshots are stored as one JSON
// document per account, so a save is a single-row replacement and a
// load always yields one consistent snapshot.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/tabkeep/tabkeep/internal/models"
	"github.com/tabkeep/tabkeep/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetLedger loads the account's snapshot document. A missing row means
// the account simply has nothing yet, so an empty snapshot is returned.
func (s *SQLiteStore) GetLedger(ctx context.Context, accountID string) (*models.Ledger, error) {
	var document []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT document FROM ledgers WHERE account_id = ?",
		accountID,
	).Scan(&document)

	if err == sql.ErrNoRows {
		return &models.Ledger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	ledger := &models.Ledger{}
	if err := json.Unmarshal(document, ledger); err != nil {
		return nil, fmt.Errorf("failed to decode ledger document: %w", err)
	}

	return ledger, nil
}

// SaveLedger replaces the account's snapshot document in one statement.
func (s *SQLiteStore) SaveLedger(ctx context.Context, accountID string, ledger *models.Ledger) error {
	document, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to encode ledger document: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO ledgers (account_id, document, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(account_id) DO UPDATE SET
		   document = excluded.document,
		   updated_at = excluded.updated_at`,
		accountID, document, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	return nil
}
