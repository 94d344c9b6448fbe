package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/TheShai81/music-dashboard/internal/transport/api"
)

const bearerPrefix = "Bearer "

// BearerAuthMiddleware guards every route under basePath with static API keys.
// Routes outside basePath (/health, /metrics) and CORS preflights are never
// guarded. With no non-empty key the middleware is a pass-through.
func BearerAuthMiddleware(basePath string, apiKeys []string) func(http.Handler) http.Handler {
	keys := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys = append(keys, []byte(k))
		}
	}
	prefix := strings.TrimSuffix(basePath, "/") + "/"

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, prefix) || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}
			if !knownKey(keys, token) {
				unauthorized(w, "invalid api key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token of a "Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// knownKey compares against every key so timing does not reveal a partial match.
func knownKey(keys [][]byte, token string) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, []byte(token))
	}
	return found == 1
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="dashboard"`)
	writeError(w, http.StatusUnauthorized, api.ErrorResponseCodeUnauthorized, msg)
}
