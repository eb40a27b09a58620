package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func TestBearerAuth(t *testing.T) {
	h := BearerAuth(map[string]string{"portal": "secret-token"})(okHandler())

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid bearer", "Bearer secret-token", http.StatusOK},
		{"valid bare", "secret-token", http.StatusOK},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"missing", "", http.StatusUnauthorized},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/reports/latest", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != c.want {
				t.Fatalf("status = %d, want %d", rec.Code, c.want)
			}
		})
	}
}

func TestBearerAuthSkipsHealth(t *testing.T) {
	h := BearerAuth(map[string]string{"portal": "secret-token"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health should bypass auth, got %d", rec.Code)
	}
}

func TestTokenBucketExhausts(t *testing.T) {
	tb := NewTokenBucket(3, 1)
	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d should pass", i)
		}
	}
	if tb.Allow() {
		t.Fatal("bucket should be empty")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimit(2, 1)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/report/generate", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	h := HealthHandler(map[string]HealthChecker{
		"database": CheckFunc(func(ctx context.Context) error { return nil }),
		"storage":  CheckFunc(func(ctx context.Context) error { return fmt.Errorf("bucket gone") }),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var got HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Checks["database"].Status != "healthy" || got.Checks["storage"].Status != "unhealthy" {
		t.Fatalf("checks = %+v", got.Checks)
	}
}

func TestHealthHandlerAllHealthy(t *testing.T) {
	h := HealthHandler(map[string]HealthChecker{
		"storage": CheckFunc(func(ctx context.Context) error { return nil }),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestValidateProfileURL(t *testing.T) {
	cases := []struct {
		url string
		ok  bool
	}{
		{"https://profiles.example.com/students/1", true},
		{"http://profiles.example.com/students/1", true},
		{"http://notlocalhost.example.com/x", true},
		{"http://172.15.0.1/x", true},
		{"", false},
		{"ftp://example.com/x", false},
		{"http://localhost:8080/x", false},
		{"http://sub.localhost/x", false},
		{"http://127.0.0.1/x", false},
		{"http://[::1]/x", false},
		{"http://0.0.0.0/x", false},
		{"http://10.1.2.3/x", false},
		{"http://192.168.1.5/x", false},
		{"http://172.16.0.1/x", false},
		{"http://172.20.9.9/x", false},
		{"http://172.31.255.1/x", false},
		{"http://169.254.1.1/x", false},
	}
	for _, c := range cases {
		err := ValidateProfileURL(c.url)
		if c.ok && err != nil {
			t.Errorf("%q: unexpected error: %v", c.url, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%q: expected error", c.url)
		}
	}
}

func TestValidateLimit(t *testing.T) {
	if ValidateLimit(0) != 20 {
		t.Fatal("default should be 20")
	}
	if ValidateLimit(500) != 100 {
		t.Fatal("cap should be 100")
	}
	if ValidateLimit(7) != 7 {
		t.Fatal("in-range value should pass through")
	}
}
