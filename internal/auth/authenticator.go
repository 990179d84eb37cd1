package auth

import (
	"context"

	"github.com/tabkeep/tabkeep/internal/models"
)

// Authenticator verifies who owns an account. The credential format
// depends on the implementation: PasswordAuthenticator takes a
// password; a phone/SMS implementation would take a one-time code.
// The service layer only cares that a models.User comes back.
type Authenticator interface {
	// Register creates a new account for the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the
	// implementation's requirements before any account is touched.
	ValidateCredential(credential string) error
}
