package ports

import (
	"context"

	"github.com/mvs/product-catalog/internal/core/domain"
)

type AuthService interface {
	// Login verifies the username/password pair and mints a token on success.
	Login(ctx context.Context, username, password string) (token string, expiresIn string, user *domain.User, err error)
}
