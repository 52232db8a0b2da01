package jwtmw

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestNewService は各種設定でServiceが正しく生成されることを検証します。
func TestNewService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
	}{
		{"standard config", "my-secret-key", time.Hour},
		{"one year expiration", "secret", 365 * 24 * time.Hour},
		{"short expiration", "s", time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService(tt.secret, tt.expiration)

			if svc == nil {
				t.Fatal("expected service to be non-nil")
			}
			if string(svc.secret) != tt.secret {
				t.Errorf("expected secret %q, got %q", tt.secret, string(svc.secret))
			}
			if svc.expiration != tt.expiration {
				t.Errorf("expected expiration %v, got %v", tt.expiration, svc.expiration)
			}
		})
	}
}

// TestService_Issue は発行されたトークンが有効で正しいクレームを含むことを検証します。
func TestService_Issue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID string
		email  string
	}{
		{"basic user", "3f1e9a52-6c55-4f21-9d10-1a2b3c4d5e6f", "user@example.com"},
		{"user with special email", "11111111-2222-3333-4444-555555555555", "user+tag@example.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService("test-secret", time.Hour)
			tokenStr, err := svc.Issue(tt.userID, tt.email)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tokenStr == "" {
				t.Fatal("expected non-empty token")
			}

			// Verify the token can be parsed with the same secret
			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
				return []byte("test-secret"), nil
			})
			if err != nil {
				t.Fatalf("failed to parse token: %v", err)
			}
			if !token.Valid {
				t.Error("expected token to be valid")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				t.Fatal("expected map claims")
			}
			if claims["sub"] != tt.userID {
				t.Errorf("expected sub %q, got %v", tt.userID, claims["sub"])
			}
			if claims["email"] != tt.email {
				t.Errorf("expected email %q, got %v", tt.email, claims["email"])
			}
		})
	}
}

// TestService_Verify_RoundTrip は発行したトークンの検証で同一の識別情報が返ることを検証します。
func TestService_Verify_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewService("round-trip-secret", time.Hour)
	tokenStr, err := svc.Issue("user-42", "ann@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	identity, err := svc.Verify(tokenStr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.UserID != "user-42" {
		t.Errorf("expected userID 'user-42', got %q", identity.UserID)
	}
	if identity.Email != "ann@x.com" {
		t.Errorf("expected email 'ann@x.com', got %q", identity.Email)
	}
}

// TestService_Verify_Failures は改ざん・期限切れ・不正形式のトークンが
// 対応するセンチネルエラーで拒否されることを検証します。
func TestService_Verify_Failures(t *testing.T) {
	t.Parallel()

	const secret = "verify-failure-secret"
	svc := NewService(secret, time.Hour)

	otherSvc := NewService("some-other-secret", time.Hour)
	wrongSecretToken, _ := otherSvc.Issue("user-1", "a@example.com")

	expiredSvc := NewService(secret, -time.Hour)
	expiredToken, _ := expiredSvc.Issue("user-1", "a@example.com")

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"malformed token", "not.a.valid.token", ErrTokenMalformed},
		{"random string", "randomstring", ErrTokenMalformed},
		{"wrong secret", wrongSecretToken, ErrTokenSignatureInvalid},
		{"expired token", expiredToken, ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := svc.Verify(tt.token)

			if identity != nil {
				t.Errorf("expected nil identity, got %+v", identity)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestService_Verify_MissingSubject はsubクレームを欠くトークンが拒否されることを検証します。
func TestService_Verify_MissingSubject(t *testing.T) {
	t.Parallel()

	const secret = "missing-sub-secret"
	claims := jwt.MapClaims{
		"email": "a@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}

	svc := NewService(secret, time.Hour)
	_, err = svc.Verify(tokenStr)

	if !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed, got %v", err)
	}
}
