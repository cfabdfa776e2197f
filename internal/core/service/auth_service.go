package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mvs/product-catalog/internal/core/domain"
	"github.com/mvs/product-catalog/internal/core/ports"
)

// AuthService converts a username/password pair into a signed token.
type AuthService struct {
	store  ports.CredentialStore
	codec  ports.TokenCodec
	logger zerolog.Logger
}

func NewAuthService(store ports.CredentialStore, codec ports.TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{store: store, codec: codec, logger: logger}
}

// Login authenticates the pair against the credential store and mints a token
// on success. Failures from authentication surface verbatim; the HTTP boundary
// collapses them into a single 401 response so the failing check is never
// revealed to the client.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, string, *domain.User, error) {
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return "", "", nil, err
	}

	token, expiresIn, err := s.codec.Issue(user.Username)
	if err != nil {
		return "", "", nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("login succeeded")
	return token, expiresIn, user, nil
}

func (s *AuthService) authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn().Str("username", username).Msg("login failed: unknown account")
		return nil, domain.ErrAccountNotFound
	}
	if user.Disabled {
		s.logger.Warn().Str("username", username).Msg("login failed: account disabled")
		return nil, domain.ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("username", username).Msg("login failed: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
