package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestAuthRequired_MissingBearerToken はBearerトークンがない場合やプレフィックスが不正な場合に401が返されることを検証します。
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			handler := AuthRequired(svc)
			handler(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

// TestAuthRequired_InvalidToken は不正なトークン（改ざん・期限切れ等）で403が返されることを検証します。
func TestAuthRequired_InvalidToken(t *testing.T) {
	svc := NewService("test-secret-key-for-invalid", time.Hour)

	otherSvc := NewService("wrong-secret", time.Hour)
	wrongSecretToken, _ := otherSvc.Issue("user-1", "a@example.com")

	expiredSvc := NewService("test-secret-key-for-invalid", -time.Hour)
	expiredToken, _ := expiredSvc.Issue("user-1", "a@example.com")

	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", wrongSecretToken},
		{"expired token", expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", "Bearer "+tt.token)

			handler := AuthRequired(svc)
			handler(c)

			if w.Code != http.StatusForbidden {
				t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

// TestAuthRequired_ValidToken は有効なトークンで識別情報がコンテキストに設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	svc := NewService("valid-token-secret", time.Hour)
	token, err := svc.Issue("f47ac10b-58cc-4372-a567-0e02b2c3d479", "ann@x.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	handler := AuthRequired(svc)
	handler(c)

	if c.IsAborted() {
		t.Fatal("expected request not to be aborted")
	}

	userID, ok := IdentityFromContext(c)
	if !ok {
		t.Fatal("expected userID to be set on the context")
	}
	if userID != "f47ac10b-58cc-4372-a567-0e02b2c3d479" {
		t.Errorf("unexpected userID: %q", userID)
	}
	if email := c.GetString(ContextEmail); email != "ann@x.com" {
		t.Errorf("unexpected email: %q", email)
	}
}

// TestIdentityFromContext_Missing はミドルウェアを経由しないコンテキストでfalseが返ることを検証します。
func TestIdentityFromContext_Missing(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if _, ok := IdentityFromContext(c); ok {
		t.Error("expected ok to be false for a context without identity")
	}
}
