package server

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"daygrid/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarCRUDFlow(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	auth := bearerToken(t, s, alice)

	// Create
	resp := doJSON(t, app, http.MethodPost, "/api/calendars/", auth, map[string]string{
		"name":        "Team Calendar",
		"description": "sprint planning",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var calendar models.Calendar
	decodeBody(t, resp, &calendar)
	require.NotZero(t, calendar.ID)
	assert.Equal(t, alice.ID, calendar.OwnerID)

	// List
	resp = doJSON(t, app, http.MethodGet, "/api/calendars/", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.Calendar
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)

	// Update
	resp = doJSON(t, app, http.MethodPut, "/api/calendars/1", auth, map[string]string{
		"name": "Renamed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Calendar
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Renamed", updated.Name)

	// Delete
	resp = doJSON(t, app, http.MethodDelete, "/api/calendars/1", auth, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/calendars/1", auth, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateCalendarRequiresName(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	auth := bearerToken(t, s, alice)

	resp := doJSON(t, app, http.MethodPost, "/api/calendars/", auth, map[string]string{
		"description": "nameless",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetCalendarDeniedWithoutShare(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	calendar := &models.Calendar{OwnerID: alice.ID, Name: "private"}
	require.NoError(t, s.db.Create(calendar).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/calendars/1", bearerToken(t, s, bob), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestShareFlow(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)
	aliceAuth := bearerToken(t, s, alice)
	bobAuth := bearerToken(t, s, bob)

	calendar := &models.Calendar{OwnerID: alice.ID, Name: "team"}
	require.NoError(t, s.db.Create(calendar).Error)

	// First share creates.
	resp := doJSON(t, app, http.MethodPost, "/api/calendars/1/share", aliceAuth, map[string]any{
		"user_id":    bob.ID,
		"permission": "view_only",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Bob can now read it.
	resp = doJSON(t, app, http.MethodGet, "/api/calendars/1", bobAuth, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Re-share overwrites and reports 200.
	resp = doJSON(t, app, http.MethodPost, "/api/calendars/1/share", aliceAuth, map[string]any{
		"user_id":    bob.ID,
		"permission": "edit",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var share models.CalendarShare
	decodeBody(t, resp, &share)
	assert.Equal(t, models.ShareEdit, share.Permission)

	// Grantees cannot share onward.
	eve := createTestUser(t, s, "eve", false)
	resp = doJSON(t, app, http.MethodPost, "/api/calendars/1/share", bobAuth, map[string]any{
		"user_id": eve.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Shared-with listing is visible to readers.
	resp = doJSON(t, app, http.MethodGet, "/api/calendars/1/shared-with", bobAuth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var shares []models.CalendarShare
	decodeBody(t, resp, &shares)
	assert.Len(t, shares, 1)

	// Unshare revokes.
	resp = doJSON(t, app, http.MethodDelete, "/api/calendars/1/share/2", aliceAuth, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/calendars/1", bobAuth, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestShareInvalidPermission(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	calendar := &models.Calendar{OwnerID: alice.ID, Name: "team"}
	require.NoError(t, s.db.Create(calendar).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/calendars/1/share", bearerToken(t, s, alice), map[string]any{
		"user_id":    bob.ID,
		"permission": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateSharedCalendar(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	resp := doJSON(t, app, http.MethodPost, "/api/calendars/shared", bearerToken(t, s, alice), map[string]any{
		"user_id": bob.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var calendar models.Calendar
	decodeBody(t, resp, &calendar)
	assert.Equal(t, "alice & bob", calendar.Name)

	// Bob sees it view-only.
	resp = doJSON(t, app, http.MethodGet, "/api/calendars/", bearerToken(t, s, bob), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.Calendar
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, calendar.ID, list[0].ID)
}

func TestExportCalendarICS(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	auth := bearerToken(t, s, alice)

	calendar := &models.Calendar{OwnerID: alice.ID, Name: "team"}
	require.NoError(t, s.db.Create(calendar).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/calendars/1/events", auth, map[string]any{
		"title":      "Kickoff",
		"start_time": "2026-09-10T09:00:00Z",
		"end_time":   "2026-09-10T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := doJSON(t, app, http.MethodGet, "/api/calendars/1/export.ics", auth, nil)
	require.Equal(t, http.StatusOK, req.StatusCode)
	assert.Contains(t, req.Header.Get("Content-Type"), "text/calendar")

	raw, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	_ = req.Body.Close()

	body := string(raw)
	assert.True(t, strings.Contains(body, "BEGIN:VCALENDAR"))
	assert.True(t, strings.Contains(body, "SUMMARY:Kickoff"))
}
