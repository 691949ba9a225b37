package service

import (
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupLifecycle(t *testing.T) {
	srv := setupTestServer(t)
	aliceToken, aliceID := register(t, srv, "alice@example.com", "Alice", "USD")
	bobToken, bobID := register(t, srv, "bob@example.com", "Bob", "USD")

	groupID, inviteCode := createGroup(t, srv, aliceToken, "Goa Trip")
	require.Len(t, inviteCode, 6)

	// Bob joins with the shared code.
	status, out := doJSON(t, srv, http.MethodPost, "/api/groups/join", bobToken, map[string]any{
		"code": inviteCode,
	})
	require.Equal(t, http.StatusOK, status, "join: %v", out)
	assert.Len(t, out["members"], 2)

	// Joining twice is rejected.
	status, _ = doJSON(t, srv, http.MethodPost, "/api/groups/join", bobToken, map[string]any{
		"code": inviteCode,
	})
	assert.Equal(t, http.StatusConflict, status)

	// A bad code is not found.
	status, _ = doJSON(t, srv, http.MethodPost, "/api/groups/join", bobToken, map[string]any{
		"code": "NOPE99",
	})
	assert.Equal(t, http.StatusNotFound, status)

	// Both members see the group with full member profiles.
	status, out = doJSON(t, srv, http.MethodGet, "/api/groups/"+groupID, bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	details := out["memberDetails"].([]any)
	require.Len(t, details, 2)
	names := map[string]bool{}
	for _, d := range details {
		names[d.(map[string]any)["displayName"].(string)] = true
	}
	assert.True(t, names["Alice"] && names["Bob"])

	status, out = doJSON(t, srv, http.MethodGet, "/api/groups", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, out["groups"], 1)

	// Outsiders cannot see the group.
	carolToken, _ := register(t, srv, "carol@example.com", "Carol", "USD")
	status, _ = doJSON(t, srv, http.MethodGet, "/api/groups/"+groupID, carolToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Bob leaves; Alice remains.
	status, _ = doJSON(t, srv, http.MethodPost, "/api/groups/"+groupID+"/leave", bobToken, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, out = doJSON(t, srv, http.MethodGet, "/api/groups/"+groupID, aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	group := out["group"].(map[string]any)
	assert.Equal(t, []any{aliceID}, group["members"])
	_ = bobID

	// The creator leaving as sole member deletes the group.
	status, _ = doJSON(t, srv, http.MethodPost, "/api/groups/"+groupID+"/leave", aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = doJSON(t, srv, http.MethodGet, "/api/groups/"+groupID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGroupBalances(t *testing.T) {
	srv := setupTestServer(t)
	aliceToken, aliceID := register(t, srv, "alice@example.com", "Alice", "USD")
	bobToken, bobID := register(t, srv, "bob@example.com", "Bob", "USD")

	groupID, inviteCode := createGroup(t, srv, aliceToken, "Flat")
	status, _ := doJSON(t, srv, http.MethodPost, "/api/groups/join", bobToken, map[string]any{"code": inviteCode})
	require.Equal(t, http.StatusOK, status)

	status, out := doJSON(t, srv, http.MethodPost, "/api/groups/"+groupID+"/expenses", aliceToken, map[string]any{
		"title":        "Groceries",
		"amount":       100,
		"currency":     "USD",
		"paidBy":       aliceID,
		"splitBetween": []string{aliceID, bobID},
		"splitMethod":  "equal",
	})
	require.Equal(t, http.StatusCreated, status, "create expense: %v", out)

	status, out = doJSON(t, srv, http.MethodGet, "/api/groups/"+groupID+"/balances", aliceToken, nil)
	require.Equal(t, http.StatusOK, status, "balances: %v", out)
	assert.Equal(t, "USD", out["baseCurrency"])

	balances := out["balances"].(map[string]any)
	aliceBalance := balances[aliceID].(map[string]any)["amount"].(float64)
	bobBalance := balances[bobID].(map[string]any)["amount"].(float64)
	assert.InDelta(t, 50, aliceBalance, 0.01)
	assert.InDelta(t, -50, bobBalance, 0.01)

	settlements := out["settlements"].([]any)
	require.Len(t, settlements, 1)
	settlement := settlements[0].(map[string]any)
	assert.Equal(t, bobID, settlement["from"])
	assert.Equal(t, aliceID, settlement["to"])
	assert.InDelta(t, 50, settlement["amount"].(float64), 0.01)
	assert.Equal(t, "USD", settlement["currency"])
	assert.Equal(t, false, settlement["settled"])

	// Non-members get no balances.
	carolToken, _ := register(t, srv, "carol@example.com", "Carol", "USD")
	status, _ = doJSON(t, srv, http.MethodGet, "/api/groups/"+groupID+"/balances", carolToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// An unsupported override currency is rejected.
	status, _ = doJSON(t, srv, http.MethodGet, "/api/groups/"+groupID+"/balances?currency=DOGE", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGroupBalancesCrossCurrency(t *testing.T) {
	srv := setupTestServer(t)
	// Alice prefers INR; the balances default to her preference.
	aliceToken, aliceID := register(t, srv, "alice@example.com", "Alice", "INR")
	bobToken, bobID := register(t, srv, "bob@example.com", "Bob", "USD")

	groupID, inviteCode := createGroup(t, srv, aliceToken, "Euro Trip")
	status, _ := doJSON(t, srv, http.MethodPost, "/api/groups/join", bobToken, map[string]any{"code": inviteCode})
	require.Equal(t, http.StatusOK, status)

	status, out := doJSON(t, srv, http.MethodPost, "/api/groups/"+groupID+"/expenses", aliceToken, map[string]any{
		"title":        "Hotel",
		"amount":       100,
		"currency":     "EUR",
		"paidBy":       aliceID,
		"splitBetween": []string{aliceID, bobID},
		"splitMethod":  "equal",
	})
	require.Equal(t, http.StatusCreated, status, "create expense: %v", out)

	// Explicit override: EUR -> USD at 1.09 means Bob owes 54.50.
	status, out = doJSON(t, srv, http.MethodGet, "/api/groups/"+groupID+"/balances?currency=USD", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	balances := out["balances"].(map[string]any)
	bobBalance := balances[bobID].(map[string]any)["amount"].(float64)
	assert.InDelta(t, -54.5, bobBalance, 0.01)

	// Default for Alice is INR (EUR -> INR at 90.5).
	status, out = doJSON(t, srv, http.MethodGet, "/api/groups/"+groupID+"/balances", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "INR", out["baseCurrency"])
	balances = out["balances"].(map[string]any)
	aliceBalance := balances[aliceID].(map[string]any)["amount"].(float64)
	assert.True(t, math.Abs(aliceBalance-4525) < 0.01, "alice INR balance = %v", aliceBalance)
}
