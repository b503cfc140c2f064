package auth

import (
	"net/http"
	"strings"

	"confreg/internal/logger"
)

// Middleware gates /admin routes on a valid bearer token.
func Middleware(issuer *TokenIssuer, cache *RedisTokenCache, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}
			rawToken := parts[1]

			if cache.IsVerified(r.Context(), rawToken) {
				next.ServeHTTP(w, r)
				return
			}

			if err := issuer.Verify(rawToken); err != nil {
				log.Warn("AUTH", "Rejected admin request with invalid token")
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			cache.MarkVerified(r.Context(), rawToken)
			next.ServeHTTP(w, r)
		})
	}
}
