package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDefaultSecurityConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()

	if !cfg.EnableCORS {
		t.Error("CORS should be enabled by default")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.MaxInputLen != 1<<16 {
		t.Errorf("MaxInputLen = %d, want %d", cfg.MaxInputLen, 1<<16)
	}
	want := map[string]bool{"GET": true, "POST": true, "OPTIONS": true}
	for _, m := range cfg.AllowedMethods {
		if !want[m] {
			t.Errorf("unexpected allowed method %q", m)
		}
		delete(want, m)
	}
	if len(want) != 0 {
		t.Errorf("missing allowed methods: %v", want)
	}
}

func TestSecurityMiddleware_SecurityHeaders(t *testing.T) {
	handler := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/plan", http.NoBody))

	headers := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Content-Security-Policy": "default-src 'none'",
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if rec.Header().Get("Referrer-Policy") == "" {
		t.Error("Referrer-Policy header missing")
	}
}

func TestSecurityMiddleware_CORS(t *testing.T) {
	t.Run("headers set when enabled", func(t *testing.T) {
		handler := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
		}
	})

	t.Run("headers absent when disabled", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.EnableCORS = false
		handler := SecurityMiddleware(cfg, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		nextCalled := false
		handler := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/plan", http.NoBody))

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if nextCalled {
			t.Error("preflight request should not reach the handler")
		}
	})
}
