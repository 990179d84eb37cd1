// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/tabkeep/tabkeep/internal/models"
)

// Store is the persistence boundary: a document store holding one
// ledger snapshot per account, plus the user records behind sign-in.
// This abstraction allows swapping storage backends without changing
// the service layer.
type Store interface {
	// GetLedger loads the account's snapshot. Accounts that have never
	// saved anything get an empty snapshot, not an error.
	GetLedger(ctx context.Context, accountID string) (*models.Ledger, error)

	// SaveLedger replaces the account's snapshot wholesale. There is no
	// partial update: a reader always observes one consistent snapshot.
	SaveLedger(ctx context.Context, accountID string, ledger *models.Ledger) error

	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns (nil, nil) when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) when no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
