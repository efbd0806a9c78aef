package server

import (
	"net/http"
	"testing"

	"daygrid/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)

	resp := doJSON(t, app, http.MethodGet, "/api/users/me", bearerToken(t, s, alice), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, alice.ID, user.ID)
}

func TestGetAllUsers(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	createTestUser(t, s, "bob", false)
	createTestUser(t, s, "carol", false)

	resp := doJSON(t, app, http.MethodGet, "/api/users/?limit=2", bearerToken(t, s, alice), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.User
	decodeBody(t, resp, &users)
	assert.Len(t, users, 2)
}
