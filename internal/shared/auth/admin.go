package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const adminTokenTTL = 7 * 24 * time.Hour

// AdminTokens issues and verifies tokens for the single configuration-supplied
// admin identity. Kept behind its own type so additional admin accounts or roles
// can be introduced without touching the domain layers.
type AdminTokens struct {
	email    string
	password string
	secret   []byte
	now      func() time.Time
}

func NewAdminTokens(email, password, secret string) *AdminTokens {
	return &AdminTokens{email: email, password: password, secret: []byte(secret), now: time.Now}
}

// Login compares the supplied credentials against the configured admin identity
// and returns a signed 7-day token on success.
func (a *AdminTokens) Login(email, password string) (string, error) {
	if email == "" || password == "" || email != a.email || password != a.password {
		return "", ErrInvalidCredentials
	}
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
		},
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

// Verify checks that the token was signed with the admin secret and carries the
// fixed admin identity and role.
func (a *AdminTokens) Verify(tokenStr string) error {
	if tokenStr == "" {
		return ErrMissingToken
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithLeeway(5*time.Second))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return ErrInvalidToken
	}
	if claims.Subject != a.email || claims.Role != "admin" {
		return ErrInvalidToken
	}
	return nil
}
