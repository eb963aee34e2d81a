package server

import (
	"net/http"
	"testing"

	"nabta/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	_, app := newTestServer(t)

	cases := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name: "success",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "Password123!",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			body: map[string]string{
				"username": "someoneelse",
				"email":    "test@example.com",
				"password": "Password123!",
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "duplicate username",
			body: map[string]string{
				"username": "testuser",
				"email":    "other@example.com",
				"password": "Password123!",
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "missing fields",
			body: map[string]string{
				"username": "nopassword",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "weak password",
			body: map[string]string{
				"username": "weakling",
				"email":    "weak@example.com",
				"password": "abc",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "bad email",
			body: map[string]string{
				"username": "bademail",
				"email":    "not-an-email",
				"password": "Password123!",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", tc.body, ""))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			if tc.wantStatus == http.StatusCreated {
				var body struct {
					Token string      `json:"token"`
					User  models.User `json:"user"`
				}
				decodeBody(t, resp, &body)
				assert.NotEmpty(t, body.Token)
				assert.Equal(t, "testuser", body.User.Username)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	s, app := newTestServer(t)
	user, _ := createTestUser(t, s, "layla", false)

	t.Run("success", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    user.Email,
			"password": "Password123!",
		}, ""))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)

		// The issued token must be accepted by protected routes.
		resp2, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/me", nil, body.Token))
		require.NoError(t, err)
		defer resp2.Body.Close()
		assert.Equal(t, http.StatusOK, resp2.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    user.Email,
			"password": "WrongPassword1!",
		}, ""))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "ghost@example.com",
			"password": "Password123!",
		}, ""))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRefresh(t *testing.T) {
	s, app := newTestServer(t)
	_, token := createTestUser(t, s, "refresher", false)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/refresh", nil, token))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
}

func TestAuthRequiredRejections(t *testing.T) {
	_, app := newTestServer(t)

	t.Run("no token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/me", nil, ""))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/me", nil, "not.a.jwt"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	s, _ := newTestServer(t)

	// A token signed with a different secret must always fail validation.
	forged := *s.config
	forged.JWTSecret = "another_secret"
	other := &Server{config: &forged}

	token, err := other.generateToken(1, "forger")
	require.NoError(t, err)

	_, ok := s.parseToken(token)
	assert.False(t, ok)
}

func TestWSTicketUnavailableWithoutRedis(t *testing.T) {
	s, app := newTestServer(t)
	_, token := createTestUser(t, s, "socketeer", false)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/ws/ticket", nil, token))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
