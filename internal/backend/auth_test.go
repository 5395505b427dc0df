package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "ragflow/cli/internal/errors"
)

func newTestServer(t *testing.T, routes func(r chi.Router)) *HTTP {
	t.Helper()
	r := chi.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return newHTTP(srv.URL+"/api/", DefaultEndpoints(), 2*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginSuccess(t *testing.T) {
	var got Credentials
	var headers http.Header
	h := newTestServer(t, func(r chi.Router) {
		r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			headers = r.Header.Clone()
			_ = json.NewDecoder(r.Body).Decode(&got)
			writeJSON(w, http.StatusOK, map[string]string{"token": "abc123"})
		})
	})

	resp, err := h.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", resp.Token)
	assert.Equal(t, Credentials{Username: "alice", Password: "pw"}, got)
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, UserAgent, headers.Get("User-Agent"))
	_, err = uuid.Parse(headers.Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestLoginTokenAliases(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "access_token", body: map[string]any{"access_token": "abc123"}},
		{name: "accessToken", body: map[string]any{"accessToken": "abc123"}},
		{name: "jwt", body: map[string]any{"jwt": " abc123 "}},
		{name: "nested data", body: map[string]any{"data": map[string]any{"token": "abc123"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, func(r chi.Router) {
				r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, tt.body)
				})
			})

			resp, err := h.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
			require.NoError(t, err)
			assert.Equal(t, "abc123", resp.Token)
		})
	}
}

func TestLoginFallsBackToAuthorizationHeader(t *testing.T) {
	h := newTestServer(t, func(r chi.Router) {
		r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Authorization", "Bearer hdr-token")
			w.WriteHeader(http.StatusOK)
		})
	})

	resp, err := h.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "hdr-token", resp.Token)
}

func TestLoginErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    apperr.Kind
	}{
		{
			name: "bad credentials",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Incorrect username or password"})
			},
			want: apperr.Unauthorized,
		},
		{
			name: "forbidden",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			want: apperr.Unauthorized,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: apperr.RequestFailed,
		},
		{
			name: "no token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			},
			want: apperr.MalformedResponse,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte("<html>login</html>"))
			},
			want: apperr.MalformedResponse,
		},
		{
			name: "broken json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"token":`))
			},
			want: apperr.MalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, func(r chi.Router) {
				r.Post("/api/auth/login", tt.handler)
			})

			_, err := h.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
			require.Error(t, err)
			assert.Equal(t, tt.want, apperr.KindOf(err), err.Error())
		})
	}
}

func TestLoginUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	h := newHTTP(url, DefaultEndpoints(), time.Second)
	_, err := h.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	assert.True(t, apperr.Is(err, apperr.RequestFailed))
}

func TestLoginRejectsInvalidCredentialsWithoutRequest(t *testing.T) {
	called := false
	h := newTestServer(t, func(r chi.Router) {
		r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			called = true
		})
	})

	_, err := h.Login(context.Background(), Credentials{Username: " ", Password: "pw"})
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
	_, err = h.Login(context.Background(), Credentials{Username: "alice"})
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
	assert.False(t, called)
}

func TestRegister(t *testing.T) {
	var got map[string]any
	h := newTestServer(t, func(r chi.Router) {
		r.Post("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			if got["username"] == "taken" {
				http.Error(w, "exists", http.StatusConflict)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"id": 7, "username": got["username"]})
		})
	})

	err := h.Register(context.Background(), Registration{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"username": "bob", "password": "pw"}, got)

	err = h.Register(context.Background(), Registration{Username: "taken", Password: "pw"})
	assert.True(t, apperr.Is(err, apperr.RequestFailed))
	assert.Contains(t, err.Error(), "409")

	err = h.Register(context.Background(), Registration{Username: "bob", Password: "pw", Email: "nope"})
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
}

func TestParseBearerToken(t *testing.T) {
	assert.Equal(t, "abc", parseBearerToken("Bearer abc"))
	assert.Equal(t, "abc", parseBearerToken("  bearer   abc "))
	assert.Equal(t, "", parseBearerToken("Bearerabc"))
	assert.Equal(t, "", parseBearerToken("Basic dXNlcg=="))
	assert.Equal(t, "", parseBearerToken("Bearer"))
}
