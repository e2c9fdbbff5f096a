package session

import "context"

// Store maps session tokens to the id of the owning account.
type Store interface {
	// Get returns the owner of token or ErrSessionNotFound
	Get(ctx context.Context, token string) (string, error)

	// Set stores token for ownerID, replacing any previous owner
	Set(ctx context.Context, token, ownerID string) error

	// Delete removes token; deleting an unknown token is not an error
	Delete(ctx context.Context, token string) error

	// DropAll removes every token owned by ownerID
	DropAll(ctx context.Context, ownerID string) error
}
