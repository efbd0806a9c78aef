package server

import (
	"net/http"
	"testing"

	"daygrid/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAvailabilityReplacesSameDay(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	auth := bearerToken(t, s, alice)

	calendar := &models.Calendar{OwnerID: alice.ID, Name: "team"}
	require.NoError(t, s.db.Create(calendar).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/calendars/1/availability", auth, map[string]any{
		"start_time": "2026-09-10T09:00:00Z",
		"is_busy":    true,
		"title":      "first",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/calendars/1/availability", auth, map[string]any{
		"start_time": "2026-09-10T14:00:00Z",
		"is_busy":    false,
		"title":      "second",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var records []models.Availability
	require.NoError(t, s.db.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Title)
	assert.False(t, records[0].IsBusy)
}

func TestSubmitAvailabilityDeniedWithoutShare(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	calendar := &models.Calendar{OwnerID: alice.ID, Name: "team"}
	require.NoError(t, s.db.Create(calendar).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/calendars/1/availability", bearerToken(t, s, bob), map[string]any{
		"start_time": "2026-09-10T09:00:00Z",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAggregatedAvailability(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	bob := createTestUser(t, s, "bob", false)

	calendar := &models.Calendar{OwnerID: alice.ID, Name: "team"}
	require.NoError(t, s.db.Create(calendar).Error)
	require.NoError(t, s.db.Create(&models.CalendarShare{
		CalendarID: calendar.ID, UserID: bob.ID, Permission: models.ShareViewOnly,
	}).Error)

	for _, auth := range []string{bearerToken(t, s, alice), bearerToken(t, s, bob)} {
		resp := doJSON(t, app, http.MethodPost, "/api/calendars/1/availability", auth, map[string]any{
			"start_time": "2026-09-10T09:00:00Z",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/calendars/1/availability", bearerToken(t, s, bob), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records []models.Availability
	decodeBody(t, resp, &records)
	assert.Len(t, records, 2)
}

func TestDeleteAvailability(t *testing.T) {
	s, app := setupTestServer(t)
	alice := createTestUser(t, s, "alice", false)
	auth := bearerToken(t, s, alice)

	calendar := &models.Calendar{OwnerID: alice.ID, Name: "team"}
	require.NoError(t, s.db.Create(calendar).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/calendars/1/availability", auth, map[string]any{
		"start_time": "2026-09-10T09:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var record models.Availability
	decodeBody(t, resp, &record)

	resp = doJSON(t, app, http.MethodDelete, "/api/availability/1", auth, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	require.NoError(t, s.db.Model(&models.Availability{}).Count(&count).Error)
	assert.Zero(t, count)
}
