package security

import (
	"errors"
	"fmt"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/user"
	"montarota/internal/pkg/errs"

	jwt "github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = 30 * 24 * time.Hour

const issuer = "montarota"

var ErrSecretIsRequired = errs.NewValueIsRequiredError("jwt_secret")

type claims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	StoreID   string `json:"store_id,omitempty"`
	CourierID string `json:"courier_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTTokens issues and verifies HS256 tokens. The subject is the user id.
type JWTTokens struct {
	secret  []byte
	ttl     time.Duration
	nowFunc func() time.Time
}

func NewJWTTokens(secret string, ttl time.Duration) (*JWTTokens, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTTokens{secret: []byte(secret), ttl: ttl, nowFunc: time.Now}, nil
}

func (t *JWTTokens) Issue(principal user.Principal) (string, time.Time, error) {
	now := t.nowFunc().UTC()
	expiresAt := now.Add(t.ttl)

	c := claims{
		Email: principal.Email,
		Role:  string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   principal.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if principal.StoreID != nil {
		c.StoreID = principal.StoreID.String()
	}
	if principal.CourierID != nil {
		c.CourierID = principal.CourierID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify rejects tokens that are expired, not signed with HS256 or carry
// malformed identifiers. Every failure is an errs.ErrUnauthorized.
func (t *JWTTokens) Verify(token string) (user.Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(tok *jwt.Token) (any, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", tok.Method.Alg())
		}
		return t.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(t.nowFunc), jwt.WithExpirationRequired())
	if err != nil {
		return user.Principal{}, errs.NewUnauthorizedErrorWithCause("invalid token", err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return user.Principal{}, errs.NewUnauthorizedError("invalid token")
	}

	principal, err := c.principal()
	if err != nil {
		return user.Principal{}, errs.NewUnauthorizedErrorWithCause("invalid token claims", err)
	}
	return principal, nil
}

func (c *claims) principal() (user.Principal, error) {
	userID, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return user.Principal{}, err
	}
	if c.Role == "" {
		return user.Principal{}, errors.New("role claim is missing")
	}
	role, err := user.ParseRole(c.Role)
	if err != nil {
		return user.Principal{}, err
	}
	storeID, err := optionalID(c.StoreID)
	if err != nil {
		return user.Principal{}, err
	}
	courierID, err := optionalID(c.CourierID)
	if err != nil {
		return user.Principal{}, err
	}

	return user.Principal{
		UserID:    userID,
		Email:     c.Email,
		Role:      role,
		StoreID:   storeID,
		CourierID: courierID,
	}, nil
}

func optionalID(raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil //nolint:nilnil // absent claim
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
