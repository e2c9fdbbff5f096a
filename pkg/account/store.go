package account

import (
	"context"

	"github.com/google/uuid"
)

// Store persists accounts.
type Store interface {
	// Register inserts acc after checking username and email uniqueness
	Register(ctx context.Context, acc *Account) error

	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// Delete removes the account or returns ErrAccountNotFound
	Delete(ctx context.Context, id uuid.UUID) error

	// Verify clears the verification token
	Verify(ctx context.Context, id uuid.UUID) error

	// AuthenticationMethods returns the held tags in ascending order
	AuthenticationMethods(ctx context.Context, id uuid.UUID) ([]Tag, error)

	// UpdateAuthenticationMethod sets the credential for tag, adding it when absent
	UpdateAuthenticationMethod(ctx context.Context, id uuid.UUID, tag Tag, value string) error

	// RemoveAuthenticationMethod removes tag unless it is the last method held
	RemoveAuthenticationMethod(ctx context.Context, id uuid.UUID, tag Tag) error
}
