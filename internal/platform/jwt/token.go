// Package jwtmw issues and verifies the signed session tokens and provides
// the Gin middleware that guards authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification errors. The HTTP boundary must not tell the client which
// one occurred; they exist so logs and tests can distinguish the cases.
var (
	// ErrTokenMalformed indicates the token is not a parsable JWT.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenSignatureInvalid indicates the signature does not match the
	// server secret or the signing algorithm is not HMAC.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")

	// ErrTokenExpired indicates the token was valid but is past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid covers every other verification failure.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Identity is the authenticated identity decoded from a session token.
type Identity struct {
	UserID string
	Email  string
}

// Service signs and verifies session tokens with a server-held HMAC secret.
// The secret and expiry are fixed at construction time.
type Service struct {
	secret     []byte
	expiration time.Duration
}

// NewService creates a token service with the provided secret and token lifetime.
func NewService(secret string, expiration time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// Issue creates a signed session token embedding the user ID and email.
func (s *Service) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a session token and returns the identity it
// encodes. Failures are mapped to the sentinel errors above.
func (s *Service) Verify(tokenStr string) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// 署名アルゴリズムを確認（HMACのみ許可）
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrTokenMalformed
	}
	email, _ := claims["email"].(string)

	return &Identity{UserID: sub, Email: email}, nil
}
