package ports

import (
	"context"

	"github.com/mvs/product-catalog/internal/core/domain"
)

// CredentialStore resolves usernames to stored accounts. It is consulted both
// at login and on every authenticated request, so roles are always current
// rather than frozen at token issuance.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
