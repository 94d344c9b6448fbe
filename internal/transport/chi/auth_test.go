package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TheShai81/music-dashboard/internal/transport/api"
)

func reachedHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuth_Routes(t *testing.T) {
	mw := BearerAuthMiddleware("/api/v1", []string{"", "reader-key", "admin-key"})

	tests := []struct {
		name   string
		method string
		path   string
		header string
		want   int
	}{
		{"health is public", "GET", "/health", "", http.StatusOK},
		{"metrics is public", "GET", "/metrics", "", http.StatusOK},
		{"soulmate without token", "GET", "/api/v1/users/1/soulmate", "", http.StatusUnauthorized},
		{"similar tracks without token", "GET", "/api/v1/tracks/t1/similar", "", http.StatusUnauthorized},
		{"toggle with basic auth", "POST", "/api/v1/users/1/likes/t1/toggle", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"befriend with unknown key", "PUT", "/api/v1/users/1/friends/2", "Bearer nope", http.StatusUnauthorized},
		{"empty bearer token", "GET", "/api/v1/users/1/profile", "Bearer ", http.StatusUnauthorized},
		{"empty configured key is not a key", "GET", "/api/v1/users/1/profile", "Bearer", http.StatusUnauthorized},
		{"insights with first key", "GET", "/api/v1/users/1/insights", "Bearer reader-key", http.StatusOK},
		{"befriend with second key", "PUT", "/api/v1/users/1/friends/2", "Bearer admin-key", http.StatusOK},
		{"cors preflight", "OPTIONS", "/api/v1/users/1/discover", "", http.StatusOK},
		{"prefix lookalike outside api", "GET", "/api/v10/users/1", "", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var reached bool
			req := httptest.NewRequest(tc.method, tc.path, http.NoBody)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			mw(reachedHandler(&reached)).ServeHTTP(rr, req)

			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
			if reached != (tc.want == http.StatusOK) {
				t.Errorf("handler reached = %v", reached)
			}
			if tc.want == http.StatusUnauthorized {
				if rr.Header().Get("WWW-Authenticate") == "" {
					t.Error("missing WWW-Authenticate challenge")
				}
				if got := decode[api.ErrorResponse](t, rr); got.Code != api.ErrorResponseCodeUnauthorized {
					t.Errorf("code = %s, want %s", got.Code, api.ErrorResponseCodeUnauthorized)
				}
			}
		})
	}
}

func TestBearerAuth_NoKeysDisablesAuth(t *testing.T) {
	for _, keys := range [][]string{nil, {""}} {
		var reached bool
		mw := BearerAuthMiddleware("/api/v1", keys)
		rr := httptest.NewRecorder()
		mw(reachedHandler(&reached)).ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/users/1/soulmate", http.NoBody))

		if rr.Code != http.StatusOK || !reached {
			t.Errorf("keys %q: status = %d reached = %v, want pass-through", keys, rr.Code, reached)
		}
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer  abc ", "abc", true},
		{"Bearer ", "", false},
		{"bearer abc", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		token, ok := bearerToken(tc.header)
		if token != tc.token || ok != tc.ok {
			t.Errorf("bearerToken(%q) = %q,%v want %q,%v", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}
