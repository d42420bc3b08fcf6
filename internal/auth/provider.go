package auth

import (
	"context"

	"github.com/momo1113/babyTracker-sub000/internal"
)

// Provider resolves a bearer token to the owning user. Local validation
// is used in development; remote delegates to the identity provider.
type Provider interface {
	ValidateTokenLocal(token string) (*internal.User, error)
	ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error)
}
