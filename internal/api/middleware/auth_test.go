package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mvs/product-catalog/internal/core/domain"
	"github.com/mvs/product-catalog/internal/core/service"
)

type stubStore struct {
	users map[string]*domain.User
}

func newStubStore(users ...*domain.User) *stubStore {
	s := &stubStore{users: make(map[string]*domain.User)}
	for _, u := range users {
		s.users[u.Username] = u
	}
	return s
}

func (s *stubStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return u, nil
}

func newGateContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidTokenAttachesIdentity(t *testing.T) {
	codec := service.NewTokenCodec("secret")
	token, _, err := codec.Issue("admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	store := newStubStore(&domain.User{Username: "admin", Role: domain.RoleAdmin})

	c, rec := newGateContext(t, "Bearer "+token)
	called := false
	handler := Auth(codec, store, zerolog.Nop())(func(c echo.Context) error {
		called = true
		if c.Get(ContextKeyUsername) != "admin" {
			t.Fatalf("username not attached")
		}
		if c.Get(ContextKeyRole) != domain.RoleAdmin {
			t.Fatalf("role not attached")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_NoHeaderPassesThroughUnauthenticated(t *testing.T) {
	codec := service.NewTokenCodec("secret")
	c, _ := newGateContext(t, "")

	called := false
	handler := Auth(codec, newStubStore(), zerolog.Nop())(func(c echo.Context) error {
		called = true
		if c.Get(ContextKeyUsername) != nil {
			t.Fatalf("identity attached without a token")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("gate must not short-circuit the request")
	}
}

func TestAuth_GarbageTokenPassesThroughUnauthenticated(t *testing.T) {
	codec := service.NewTokenCodec("secret")
	c, rec := newGateContext(t, "Bearer not-a-token")

	handler := Auth(codec, newStubStore(), zerolog.Nop())(func(c echo.Context) error {
		if c.Get(ContextKeyUsername) != nil {
			t.Fatalf("identity attached for garbage token")
		}
		return c.NoContent(http.StatusOK)
	})

	// A parse failure must never surface to the client.
	if err := handler(c); err != nil {
		t.Fatalf("parse failure escaped the gate: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_ExpiredTokenPassesThroughUnauthenticated(t *testing.T) {
	codec := service.NewTokenCodec("secret")
	store := newStubStore(&domain.User{Username: "admin", Role: domain.RoleAdmin})

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c, _ := newGateContext(t, "Bearer "+expired)
	handler := Auth(codec, store, zerolog.Nop())(func(c echo.Context) error {
		if c.Get(ContextKeyUsername) != nil {
			t.Fatalf("identity attached for expired token")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuth_UnknownSubjectFailsClosed(t *testing.T) {
	codec := service.NewTokenCodec("secret")
	token, _, err := codec.Issue("ghost")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, _ := newGateContext(t, "Bearer "+token)
	handler := Auth(codec, newStubStore(), zerolog.Nop())(func(c echo.Context) error {
		if c.Get(ContextKeyUsername) != nil {
			t.Fatalf("identity attached for unknown subject")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuth_FirstAttachmentWins(t *testing.T) {
	codec := service.NewTokenCodec("secret")
	token, _, err := codec.Issue("admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	store := newStubStore(&domain.User{Username: "admin", Role: domain.RoleAdmin})

	c, _ := newGateContext(t, "Bearer "+token)
	c.Set(ContextKeyUsername, "earlier")
	c.Set(ContextKeyRole, domain.RoleUser)

	handler := Auth(codec, store, zerolog.Nop())(func(c echo.Context) error {
		if c.Get(ContextKeyUsername) != "earlier" {
			t.Fatalf("existing identity overwritten")
		}
		if c.Get(ContextKeyRole) != domain.RoleUser {
			t.Fatalf("existing role overwritten")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
