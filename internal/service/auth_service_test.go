package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	srv := setupTestServer(t)

	status, out := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":       "alice@example.com",
		"displayName": "Alice",
		"password":    "supersecret",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, out["token"])
	user := out["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", user["email"])
	// Unset preferred currency defaults to USD.
	assert.Equal(t, "USD", user["preferredCurrency"])
	// The password hash never leaves the server.
	_, leaked := user["passwordHash"]
	assert.False(t, leaked)

	// Duplicate email is rejected.
	status, _ = doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":       "alice@example.com",
		"displayName": "Alice Again",
		"password":    "supersecret",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Short password is rejected.
	status, _ = doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":       "bob@example.com",
		"displayName": "Bob",
		"password":    "short",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Unsupported preferred currency is rejected.
	status, _ = doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":             "carol@example.com",
		"displayName":       "Carol",
		"password":          "supersecret",
		"preferredCurrency": "DOGE",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, out = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, out["token"])

	status, _ = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestMeRequiresAuth(t *testing.T) {
	srv := setupTestServer(t)
	token, userID := register(t, srv, "dave@example.com", "Dave", "EUR")

	status, out := doJSON(t, srv, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, userID, out["id"])
	assert.Equal(t, "EUR", out["preferredCurrency"])

	status, _ = doJSON(t, srv, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, srv, http.MethodGet, "/api/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUpdatePreferredCurrency(t *testing.T) {
	srv := setupTestServer(t)
	token, _ := register(t, srv, "erin@example.com", "Erin", "USD")

	status, _ := doJSON(t, srv, http.MethodPut, "/api/me/currency", token, map[string]any{
		"preferredCurrency": "INR",
	})
	require.Equal(t, http.StatusOK, status)

	status, out := doJSON(t, srv, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "INR", out["preferredCurrency"])

	status, _ = doJSON(t, srv, http.MethodPut, "/api/me/currency", token, map[string]any{
		"preferredCurrency": "DOGE",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}
