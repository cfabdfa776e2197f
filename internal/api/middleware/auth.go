package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mvs/product-catalog/internal/api/metrics"
	"github.com/mvs/product-catalog/internal/core/domain"
	"github.com/mvs/product-catalog/internal/core/ports"
)

// Context keys under which the authenticated identity is attached.
const (
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

// Auth is the authentication gate. It runs once per request before the route
// guards, extracts the bearer token, resolves its subject, re-fetches the
// subject's current role from the credential store, and attaches the identity
// to the request context when the token verifies.
//
// The gate never rejects a request and never writes a response: on any
// failure the request simply proceeds unauthenticated and the route guard
// decides the outcome. If an identity is already attached, the first
// attachment wins.
func Auth(codec ports.TokenCodec, store ports.CredentialStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}
			token := parts[1]

			subject, err := codec.SubjectOf(token)
			if err != nil {
				// Expired and invalid are distinguished only in logs; both
				// leave the request unauthenticated.
				if errors.Is(err, domain.ErrTokenExpired) {
					log.Debug().Msg("bearer token expired")
					metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
				} else {
					log.Debug().Msg("bearer token rejected")
					metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				}
				return next(c)
			}

			if c.Get(ContextKeyUsername) != nil {
				return next(c)
			}

			user, err := store.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				// Fail closed: a subject with no current account is treated
				// as unauthenticated, never as an error.
				log.Warn().Str("subject", subject).Msg("token subject does not resolve to an account")
				metrics.TokenVerificationsTotal.WithLabelValues("unknown_subject").Inc()
				return next(c)
			}

			if !codec.Verify(token, user.Username) {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			c.Set(ContextKeyUsername, user.Username)
			c.Set(ContextKeyRole, user.Role)
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			return next(c)
		}
	}
}
