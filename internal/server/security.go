package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the hardening applied to every request.
type SecurityConfig struct {
	// EnableCORS toggles cross-origin response headers.
	EnableCORS bool
	// AllowedOrigins lists the origins permitted by CORS; "*" allows all.
	AllowedOrigins []string
	// AllowedMethods lists the HTTP methods permitted by CORS.
	AllowedMethods []string
	// MaxInputLen caps the input length a compile request may ask for,
	// bounding graph size and with it per-request work.
	MaxInputLen int
}

// DefaultSecurityConfig returns the hardening defaults: permissive CORS for
// read-style access and a generous but finite shape cap.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		MaxInputLen:    1 << 16,
	}
}

// SecurityMiddleware sets the standard security headers and handles CORS
// preflight before delegating to next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Content-Security-Policy", "default-src 'none'")
		h.Set("Referrer-Policy", "no-referrer")

		if config.EnableCORS {
			h.Set("Access-Control-Allow-Origin", strings.Join(config.AllowedOrigins, ", "))
			h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
			h.Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}
