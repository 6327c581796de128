package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/stvowns/portfolio-tracker/internal/api/response"
)

// RequireAPIKey guards mutating operational endpoints (price sync, settings)
// with a shared key checked against the X-API-Key header. An empty configured
// key disables the endpoints entirely rather than leaving them open.
func RequireAPIKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "API key not configured")
				return
			}

			provided := r.Header.Get("X-API-Key")
			if provided == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
