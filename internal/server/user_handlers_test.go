package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onboard(t *testing.T, app *fiber.App, token, name string) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/onboarding", map[string]string{
		"full_name":         name,
		"bio":               "hello",
		"native_language":   "english",
		"learning_language": "japanese",
		"location":          "Lisbon, Portugal",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func recommendedNames(t *testing.T, app *fiber.App, token string) []string {
	t.Helper()
	resp := doJSON(t, app, http.MethodGet, "/api/users", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var users []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u["full_name"].(string))
	}
	return names
}

func TestGetRecommendedUsers(t *testing.T) {
	s, app := newTestServer(t)

	meToken, _ := signupUser(t, app, "Me Person", "me@example.com")
	friendToken, friendID := signupUser(t, app, "Friend Person", "friend@example.com")
	pendingToken, pendingID := signupUser(t, app, "Pending Person", "pending@example.com")
	strangerToken, _ := signupUser(t, app, "Stranger Person", "stranger@example.com")
	_, _ = signupUser(t, app, "Raw Person", "raw@example.com")

	onboard(t, app, meToken, "Me Person")
	onboard(t, app, friendToken, "Friend Person")
	onboard(t, app, pendingToken, "Pending Person")
	onboard(t, app, strangerToken, "Stranger Person")
	// Raw Person never onboards.

	// Become friends with Friend Person.
	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/users/friend-request/%d", friendID), nil, meToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	reqID := uint(decodeBody(t, resp)["id"].(float64))
	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/users/friend-request/%d/accept", reqID), nil, friendToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Leave a pending request towards Pending Person.
	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/users/friend-request/%d", pendingID), nil, meToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("excludes self, friends and non-onboarded", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]string{"Pending Person", "Stranger Person"},
			recommendedNames(t, app, meToken))
	})

	t.Run("pending exclusion behind feature flag", func(t *testing.T) {
		s.config.FeatureFlags = "recommend_exclude_pending=on"
		defer func() { s.config.FeatureFlags = "" }()

		assert.ElementsMatch(t,
			[]string{"Stranger Person"},
			recommendedNames(t, app, meToken))
	})
}

func TestGetMyFriendsEmpty(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "Lonely Person", "lonely@example.com")

	resp := doJSON(t, app, http.MethodGet, "/api/users/friends", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var friends []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&friends))
	assert.Empty(t, friends)
}
