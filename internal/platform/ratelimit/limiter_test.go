package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestLimiter_Allow(t *testing.T) {
	t.Run("first call starts the window", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		l := NewLimiter(client, 10, time.Minute, "auth")

		mock.ExpectIncr("auth:203.0.113.7").SetVal(1)
		mock.ExpectExpire("auth:203.0.113.7", time.Minute).SetVal(true)

		allowed, err := l.Allow(context.Background(), "203.0.113.7")

		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("calls within the limit are allowed", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		l := NewLimiter(client, 10, time.Minute, "auth")

		// 2回目以降はExpireを打ち直さない
		mock.ExpectIncr("auth:203.0.113.7").SetVal(10)

		allowed, err := l.Allow(context.Background(), "203.0.113.7")

		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("calls over the limit are blocked", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		l := NewLimiter(client, 10, time.Minute, "auth")

		mock.ExpectIncr("auth:203.0.113.7").SetVal(11)

		allowed, err := l.Allow(context.Background(), "203.0.113.7")

		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("redis failure fails open", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		l := NewLimiter(client, 10, time.Minute, "auth")

		mock.ExpectIncr("auth:203.0.113.7").SetErr(errors.New("connection refused"))

		allowed, err := l.Allow(context.Background(), "203.0.113.7")

		assert.Error(t, err)
		assert.True(t, allowed, "throttling must not take the endpoint down with Redis")
	})

	t.Run("nil client always allows", func(t *testing.T) {
		l := NewLimiter(nil, 10, time.Minute, "auth")

		for i := 0; i < 100; i++ {
			allowed, err := l.Allow(context.Background(), "203.0.113.7")
			require.NoError(t, err)
			require.True(t, allowed)
		}
	})
}

func TestMiddleware(t *testing.T) {
	newRouter := func(l *Limiter) *gin.Engine {
		r := gin.New()
		r.POST("/login", Middleware(l), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})
		return r
	}

	t.Run("allowed request reaches the handler", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		l := NewLimiter(client, 10, time.Minute, "auth")

		mock.ExpectIncr("auth:192.0.2.1").SetVal(2)

		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:51000"
		w := httptest.NewRecorder()
		newRouter(l).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("blocked request gets 429", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		l := NewLimiter(client, 10, time.Minute, "auth")

		mock.ExpectIncr("auth:192.0.2.1").SetVal(11)

		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:51000"
		w := httptest.NewRecorder()
		newRouter(l).ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"message":"Too many requests"}`, w.Body.String())
	})

	t.Run("nil limiter passes everything through", func(t *testing.T) {
		var l *Limiter

		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:51000"
		w := httptest.NewRecorder()
		newRouter(l).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
