package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mvs/product-catalog/internal/core/domain"
)

const (
	tokenIssuer   = "com.mvs"
	tokenValidity = 24 * time.Hour
)

// TokenCodec signs and parses the bearer tokens used for stateless
// authentication. It is stateless apart from the signing secret, so a single
// instance is shared across all requests. Every call re-derives its answer
// from the token itself; nothing is cached between requests.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec builds a codec around the process-wide signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), now: time.Now}
}

// Issue mints an HS512-signed token for subject with a fixed 24h validity
// window. It returns the compact signed string and the expiry in
// human-readable form.
func (tc *TokenCodec) Issue(subject string) (string, string, error) {
	now := tc.now().UTC()
	expiresAt := now.Add(tokenValidity)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		Issuer:    tokenIssuer,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(tc.secret)
	if err != nil {
		return "", "", err
	}
	return token, expiresAt.Format(time.RFC1123), nil
}

// SubjectOf parses and signature-verifies token, returning its sub claim.
// Malformed input, a bad signature, or a missing sub claim yield
// domain.ErrTokenInvalid; an otherwise valid but expired token yields
// domain.ErrTokenExpired.
func (tc *TokenCodec) SubjectOf(token string) (string, error) {
	claims, err := tc.parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}

// IsExpired reports whether the current time is strictly after the token's
// exp claim. Parse failures surface as domain.ErrTokenInvalid, the same
// failure mode as SubjectOf.
func (tc *TokenCodec) IsExpired(token string) (bool, error) {
	claims, err := tc.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return false, domain.ErrTokenInvalid
	}
	if claims.ExpiresAt == nil {
		return false, domain.ErrTokenInvalid
	}
	return tc.now().After(claims.ExpiresAt.Time), nil
}

// Verify reports whether token belongs to expectedSubject and is unexpired.
// Any parse failure anywhere in the chain yields false; verification never
// aborts the request pipeline.
func (tc *TokenCodec) Verify(token string, expectedSubject string) bool {
	subject, err := tc.SubjectOf(token)
	if err != nil {
		return false
	}
	expired, err := tc.IsExpired(token)
	if err != nil {
		return false
	}
	return subject == expectedSubject && !expired
}

func (tc *TokenCodec) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	opts = append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(tc.now),
	}, opts...)

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return tc.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
