package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/fudosan-media/invest-simulator/internal/apperrors"
)

// allowedMethods is the per-endpoint method allow-list. Paths not listed here
// fall through to the router's own 404/405 handling.
var allowedMethods = map[string][]string{
	"/health":             {http.MethodGet},
	"/api/simulation/run": {http.MethodPost, http.MethodOptions},
	"/api/system/status":  {http.MethodGet},
}

// blockedMethods are refused on every path regardless of the allow-list.
var blockedMethods = map[string]bool{
	"TRACE":   true,
	"TRACK":   true,
	"CONNECT": true,
}

// securityHeaders sets the standard hardening headers on every response.
// HSTS is added only when the request actually arrived over HTTPS, directly
// or behind a TLS-terminating proxy.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")

		if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		next.ServeHTTP(w, r)
	})
}

// methodGuard enforces the per-path allow-lists and unconditionally refuses
// TRACE-family methods. Refusals carry an accurate Allow header so clients
// can recover.
func methodGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, known := allowedMethods[r.URL.Path]

		if blockedMethods[r.Method] {
			if known {
				w.Header().Set("Allow", strings.Join(allowed, ", "))
			}
			apperrors.WriteCode(w, r, apperrors.CodeMethodNotAllowed)
			return
		}

		if known && !methodListed(allowed, r.Method) {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			apperrors.WriteCode(w, r, apperrors.CodeMethodNotAllowed)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func methodListed(allowed []string, method string) bool {
	for _, m := range allowed {
		if m == method {
			return true
		}
	}
	return false
}

// apiKeyAuth rejects API requests without the configured key. A blank
// configured key disables the check (local development). Comparison is
// constant-time.
func (s *Server) apiKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		provided := r.Header.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(s.cfg.APIKey)) != 1 {
			s.log.Warn().Str("path", r.URL.Path).Msg("Rejected request with invalid API key")
			apperrors.WriteCode(w, r, apperrors.CodeUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
