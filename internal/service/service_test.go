package service

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/divvyhq/divvy/internal/auth"
	"github.com/divvyhq/divvy/internal/currency"
	"github.com/divvyhq/divvy/internal/storage/sqlite"
)

// setupTestServer starts a full HTTP server over a throwaway SQLite
// database, so tests exercise routing, auth middleware and handlers
// together.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	router := NewRouter(
		store,
		currency.NewConverter(currency.DefaultRates()),
		auth.NewPasswordAuthenticator(store),
		auth.NewJWTManager("test-secret", time.Hour),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		store.Close()
	})
	return srv
}

// doJSON sends a request and decodes the JSON response body, if any.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

// register creates a user through the API and returns their token and ID.
func register(t *testing.T, srv *httptest.Server, email, name, preferredCurrency string) (token, userID string) {
	t.Helper()

	status, out := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":             email,
		"displayName":       name,
		"password":          "correct-horse",
		"preferredCurrency": preferredCurrency,
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %v", email, out)

	token = out["token"].(string)
	userID = out["user"].(map[string]any)["id"].(string)
	return token, userID
}

// createGroup creates a group through the API and returns its ID and code.
func createGroup(t *testing.T, srv *httptest.Server, token, name string) (groupID, inviteCode string) {
	t.Helper()

	status, out := doJSON(t, srv, http.MethodPost, "/api/groups", token, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, status, "create group: %v", out)
	return out["id"].(string), out["inviteCode"].(string)
}
