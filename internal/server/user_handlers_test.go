package server

import (
	"fmt"
	"net/http"
	"testing"

	"nabta/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	s, app := newTestServer(t)
	user, token := createTestUser(t, s, "profileuser", false)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/me", nil, token))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.User
	decodeBody(t, resp, &got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "profileuser", got.Username)
}

func TestUpdateMyProfile(t *testing.T) {
	s, app := newTestServer(t)
	_, token := createTestUser(t, s, "editme", false)

	t.Run("success", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", map[string]string{
			"bio":    "Powered by lentils",
			"avatar": "https://cdn.example.com/a.png",
		}, token))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.User
		decodeBody(t, resp, &got)
		assert.Equal(t, "Powered by lentils", got.Bio)
	})

	t.Run("invalid username", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", map[string]string{
			"username": "has spaces!",
		}, token))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPromoteDemoteAdmin(t *testing.T) {
	s, app := newTestServer(t)
	_, adminToken := createTestUser(t, s, "rootadmin", true)
	target, userToken := createTestUser(t, s, "promotee", false)

	t.Run("non-admin cannot promote", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/users/%d/promote-admin", target.ID), nil, userToken))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin promotes", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/users/%d/promote-admin", target.ID), nil, adminToken))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.User
		decodeBody(t, resp, &got)
		assert.True(t, got.IsAdmin)
	})

	t.Run("admin demotes", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/users/%d/demote-admin", target.ID), nil, adminToken))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.User
		decodeBody(t, resp, &got)
		assert.False(t, got.IsAdmin)
	})
}

func TestSearchUsersHandler(t *testing.T) {
	s, app := newTestServer(t)
	_, token := createTestUser(t, s, "findable", false)
	createTestUser(t, s, "hidden", false)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/search?q=find", nil, token))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.User
	decodeBody(t, resp, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "findable", users[0].Username)
}

func TestUploadsUnavailableWithoutStorage(t *testing.T) {
	s, app := newTestServer(t)
	_, token := createTestUser(t, s, "uploader", false)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/me/avatar", nil, token))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
