// Package auth issues session tokens and verifies account credentials.
package auth

import (
	"context"

	"github.com/mmynk/pokerledger/internal/models"
)

// Authenticator creates and verifies accounts for AuthService.
type Authenticator interface {
	// Register stores a new account. Email is normalized before it is stored;
	// ErrEmailExists, ErrInvalidEmail and ErrWeakPassword report bad input.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account for email when credential matches.
	// Unknown emails and wrong credentials both yield ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}

var _ Authenticator = (*PasswordAuthenticator)(nil)
