package ports

import (
	"time"

	"montarota/internal/core/domain/model/user"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns errs.ErrUnauthorized when password does not match hash.
	Compare(hash, password string) error
}

// TokenIssuer signs access tokens for authenticated principals.
type TokenIssuer interface {
	Issue(principal user.Principal) (token string, expiresAt time.Time, err error)
}

// TokenVerifier validates access tokens and returns the embedded principal.
type TokenVerifier interface {
	// Verify returns errs.ErrUnauthorized for malformed, tampered or expired tokens.
	Verify(token string) (user.Principal, error)
}
