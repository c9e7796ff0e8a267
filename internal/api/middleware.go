package api

import (
	"net"
	"net/http"
	"strings"

	"github.com/shelfscanapp/shelfscan-server/internal/http/response"
)

// Upload and analysis both trigger upstream work (media storage, the vision
// model), so they get a tighter per-client budget than the rest of the API.
const (
	expensiveRPS   = 1
	expensiveBurst = 5
)

// expensivePaths are the endpoints covered by the per-IP budget.
var expensivePaths = map[string]bool{
	"/api/upload-image":      true,
	"/api/analyze-bookshelf": true,
}

// rateLimitExpensive rejects clients that exceed the per-IP budget for
// upstream-heavy endpoints. Everything else passes through untouched.
func (s *Server) rateLimitExpensive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && expensivePaths[r.URL.Path] {
			if !s.limiter.Allow(clientIP(r)) {
				response.Error(w, http.StatusTooManyRequests, "Too many requests, please slow down", s.logger)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address, without the port. RealIP middleware
// has already resolved X-Forwarded-For into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
