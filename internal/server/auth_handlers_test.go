package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	_, app := setupTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "newuser",
				"email":    "newuser@example.com",
				"password": "Password123",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate email",
			body: map[string]string{
				"username": "otheruser",
				"email":    "newuser@example.com",
				"password": "Password123",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Weak password",
			body: map[string]string{
				"username": "weakuser",
				"email":    "weak@example.com",
				"password": "short",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Mismatched confirmation",
			body: map[string]string{
				"username":         "confuser",
				"email":            "conf@example.com",
				"password":         "Password123",
				"password_confirm": "Password124",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing fields",
			body: map[string]string{
				"username": "nobody",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var body map[string]any
				decodeBody(t, resp, &body)
				assert.NotEmpty(t, body["token"])
			}
		})
	}
}

func TestLogin(t *testing.T) {
	s, app := setupTestServer(t)
	user := createTestUser(t, s, "alice", false)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body["token"])

	// Login stamps last_login_at for the activity stats.
	reloaded, err := s.userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	s, app := setupTestServer(t)
	user := createTestUser(t, s, "alice", false)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": "WrongPassword1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, app := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	s, app := setupTestServer(t)
	user := createTestUser(t, s, "alice", false)
	auth := bearerToken(t, s, user)

	resp := doJSON(t, app, http.MethodGet, "/api/users/me", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/logout", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The blacklisted jti must no longer authenticate.
	resp = doJSON(t, app, http.MethodGet, "/api/users/me", auth, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshIssuesNewTokenAndRevokesOld(t *testing.T) {
	s, app := setupTestServer(t)
	user := createTestUser(t, s, "alice", false)
	auth := bearerToken(t, s, user)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/refresh", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	fresh, _ := body["token"].(string)
	require.NotEmpty(t, fresh)

	resp = doJSON(t, app, http.MethodGet, "/api/users/me", "Bearer "+fresh, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/users/me", auth, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
