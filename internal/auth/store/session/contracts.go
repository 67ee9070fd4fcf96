package session

import (
	"context"

	"lycosidae/internal/auth/models"
)

// Storage keys for the durable entries. Values are JSON-serialized.
const (
	userKey  = "lycosidae_user"
	tokenKey = "lycosidae_token"
)

// Store persists the Session Record and the auth token for the current
// browsing context. At most one Session Record exists at a time; an
// absent entry means "logged out".
//
// Error Contract:
// - CurrentUser and Token return an error wrapping sentinel.ErrNotFound
//   when the entry does not exist
// - Clear succeeds when there is nothing to clear (idempotent)
// - Infrastructure failures are returned wrapped with context
type Store interface {
	SaveUser(ctx context.Context, user models.User) error
	SaveToken(ctx context.Context, token string) error
	CurrentUser(ctx context.Context) (models.User, error)
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
