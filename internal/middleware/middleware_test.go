package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/justsurfingit/govconnect/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	tokens, err := auth.NewTokenManager("middleware-secret", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	return tokens
}

func protectedRouter(tokens *auth.TokenManager, p auth.Permission) (*gin.Engine, *bool) {
	reached := false
	r := gin.New()
	r.GET("/", Authenticate(tokens), RequirePermission(p), func(c *gin.Context) {
		reached = true
		claims, _ := ClaimsFrom(c)
		c.String(http.StatusOK, claims.UserID)
	})
	return r, &reached
}

func TestAuthenticate(t *testing.T) {
	tokens := newTokens(t)
	valid, _, err := tokens.Issue("u-1", "a@example.com", auth.RoleCompany)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	foreign, _ := auth.NewTokenManager("other-secret", time.Hour)
	forged, _, _ := foreign.Issue("u-1", "a@example.com", auth.RoleAdmin)

	tests := []struct {
		name    string
		headers map[string]string
		want    int
		message string
	}{
		{"missing header", nil, http.StatusUnauthorized, "No token provided"},
		{"wrong scheme", map[string]string{"Authorization": "Basic " + valid}, http.StatusUnauthorized, "Invalid authorization header"},
		{"forged signature", map[string]string{"Authorization": "Bearer " + forged}, http.StatusUnauthorized, "Invalid token"},
		{"identity headers ignored", map[string]string{"x-user-id": "u-1", "x-user-type": "admin"}, http.StatusUnauthorized, "No token provided"},
		{"valid token", map[string]string{"Authorization": "Bearer " + valid}, http.StatusOK, "u-1"},
		{"scheme is case-insensitive", map[string]string{"Authorization": "bearer " + valid}, http.StatusOK, "u-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, reached := protectedRouter(tokens, auth.JobCreate)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.message) {
				t.Fatalf("expected body to contain %q, got %s", tt.message, w.Body.String())
			}
			if *reached != (tt.want == http.StatusOK) {
				t.Fatalf("handler reached=%v for status %d", *reached, w.Code)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	tokens := newTokens(t)
	student, _, _ := tokens.Issue("s-1", "s@example.com", auth.RoleStudent)

	r, reached := protectedRouter(tokens, auth.JobCreate)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+student)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden || *reached {
		t.Fatalf("expected 403 before handler, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Access denied. Required permission: job:create") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestMemoryLimiterWindow(t *testing.T) {
	l := NewMemoryLimiter()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := range 3 {
		if !l.Allow(ctx, "k", 3, time.Minute) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow(ctx, "k", 3, time.Minute) {
		t.Fatalf("fourth request should be limited")
	}
	if !l.Allow(ctx, "other", 3, time.Minute) {
		t.Fatalf("keys must be independent")
	}

	now = now.Add(time.Minute + time.Second)
	if !l.Allow(ctx, "k", 3, time.Minute) {
		t.Fatalf("new window should reset the count")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(NewMemoryLimiter(), "auth", 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	l := NewRedisLimiter(client)
	ctx := context.Background()

	if !l.Allow(ctx, "ratelimit:apply:1.2.3.4", 2, time.Minute) || !l.Allow(ctx, "ratelimit:apply:1.2.3.4", 2, time.Minute) {
		t.Fatalf("first two requests should be allowed")
	}
	if l.Allow(ctx, "ratelimit:apply:1.2.3.4", 2, time.Minute) {
		t.Fatalf("third request should be limited")
	}
	if ttl := mr.TTL("ratelimit:apply:1.2.3.4"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected window ttl, got %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if !l.Allow(ctx, "ratelimit:apply:1.2.3.4", 2, time.Minute) {
		t.Fatalf("expired window should allow again")
	}
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	if !NewRedisLimiter(client).Allow(context.Background(), "k", 1, time.Minute) {
		t.Fatalf("limiter should allow when redis is down")
	}
}

func TestRequestIDAndTimeout(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Timeout(time.Second))
	var deadline bool
	r.GET("/", func(c *gin.Context) {
		_, deadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}
	if !deadline {
		t.Fatalf("expected request context to carry a deadline")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got == "not-a-uuid" {
		t.Fatalf("malformed incoming id should be replaced")
	}
}
