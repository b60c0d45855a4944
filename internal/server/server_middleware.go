package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/brk3/habit-tracker/internal/logger"
)

// authMiddleware requires "Authorization: Bearer <auth_token>".
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AuthToken)) != 1 {
			logger.WarnContext(r.Context(), "Rejected unauthenticated request", "method", r.Method, "path", r.URL.Path)
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
