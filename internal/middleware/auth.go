package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Lixing-Zhang/menu-builder/internal/config"
)

// APIKeyAuth guards menu mutations with the "api_key" header.
// It passes every request through when auth is disabled.
func APIKeyAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	keys := make(map[string]struct{}, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		keys[k] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api_key")

			if apiKey == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized: API key required")
				return
			}

			if _, ok := keys[apiKey]; !ok {
				writeError(w, http.StatusForbidden, "Forbidden: Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
