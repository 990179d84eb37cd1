package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account owner. Each user owns exactly one ledger
// snapshot, keyed by the user's ID.
type User struct {
	// ID is the unique identifier for the user (UUID format). It doubles
	// as the account ID the ledger document is stored under.
	ID string `json:"id"`

	// Email is the user's email address (unique), used for sign-in.
	Email string `json:"email"`

	// DisplayName is the name shown in the UI.
	DisplayName string `json:"display_name"`

	// PasswordHash is the bcrypt hash of the user's password. Never
	// serialized in API responses.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last account change.
	UpdatedAt int64 `json:"updated_at"`
}

// NewUser builds a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
