package ports

// TokenCodec creates and parses the signed, time-bound bearer tokens used for
// stateless authentication. Implementations are safe for concurrent use; the
// only shared state is the process-wide signing secret.
type TokenCodec interface {
	// Issue mints a token for subject and returns the compact signed string
	// together with the human-readable expiry.
	Issue(subject string) (token string, expiresIn string, err error)
	// SubjectOf parses and signature-verifies token, returning its sub claim.
	SubjectOf(token string) (string, error)
	// IsExpired reports whether now is strictly after the token's exp claim.
	IsExpired(token string) (bool, error)
	// Verify reports whether token belongs to expectedSubject and is unexpired.
	// Parse failures of any kind yield false.
	Verify(token string, expectedSubject string) bool
}
