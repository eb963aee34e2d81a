package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"nabta/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationLifecycle(t *testing.T) {
	s, app := newTestServer(t)
	_, authorToken := createTestUser(t, s, "postauthor", false)
	_, fanToken := createTestUser(t, s, "superfan", false)

	post := createPost(t, app, authorToken, "Completed my first 10k", nil)

	// A like from another user lands in the author's inbox.
	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/posts/%d/like", post.ID), nil, fanToken))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var notifID uint
	t.Run("listed with bilingual message", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notifications/", nil, authorToken))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var notifs []models.Notification
		decodeBody(t, resp, &notifs)
		require.Len(t, notifs, 1)
		assert.Equal(t, models.NotificationLike, notifs[0].Type)
		assert.Contains(t, notifs[0].Message, "superfan")
		assert.NotEmpty(t, notifs[0].MessageAr)
		assert.False(t, notifs[0].Read)
		notifID = notifs[0].ID
	})

	t.Run("unread count", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notifications/unread-count", nil, authorToken))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Count int64 `json:"count"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, int64(1), body.Count)
	})

	t.Run("mark read", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/notifications/%d/read", notifID), nil, authorToken))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		count, err := s.notificationService.CountUnread(context.Background(), post.UserID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("not visible to the liker", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/notifications/", nil, fanToken))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var notifs []models.Notification
		decodeBody(t, resp, &notifs)
		assert.Empty(t, notifs)
	})
}

func TestMarkAllNotificationsRead(t *testing.T) {
	s, app := newTestServer(t)
	author, authorToken := createTestUser(t, s, "busyauthor", false)
	_, fanToken := createTestUser(t, s, "activefan", false)

	post := createPost(t, app, authorToken, "Sharing my meal plan", nil)

	// Generate a like and a comment notification.
	like, err := app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/posts/%d/like", post.ID), nil, fanToken))
	require.NoError(t, err)
	like.Body.Close()
	createComment(t, app, fanToken, post.ID, "This looks great", nil)

	count, err := s.notificationService.CountUnread(context.Background(), author.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/notifications/read-all", nil, authorToken))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	count, err = s.notificationService.CountUnread(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
