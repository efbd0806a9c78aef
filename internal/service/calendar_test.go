package service

import (
	"context"
	"testing"

	"daygrid/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleCalendarsUnionWithoutDuplicates(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	owned1 := f.calendar(t, alice, "personal")
	owned2 := f.calendar(t, alice, "work")
	shared := f.calendar(t, bob, "bob-team")
	f.calendar(t, bob, "bob-private")
	f.share(t, shared, alice, models.ShareViewOnly)
	ctx := context.Background()

	visible, err := f.calendars.VisibleCalendars(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, visible, 3)

	ids := map[uint]int{}
	for _, cal := range visible {
		ids[cal.ID]++
	}
	assert.Equal(t, 1, ids[owned1.ID])
	assert.Equal(t, 1, ids[owned2.ID])
	assert.Equal(t, 1, ids[shared.ID])
}

func TestGetDeniedWithoutShare(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	calendar := f.calendar(t, bob, "bob-team")
	ctx := context.Background()

	_, err := f.calendars.Get(ctx, alice.ID, calendar.ID)
	requireCode(t, err, "FORBIDDEN")
}

func TestShareIsOwnerOnly(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	admin := f.user(t, "grantee")
	target := f.user(t, "target")
	calendar := f.calendar(t, owner, "team")
	f.share(t, calendar, admin, models.ShareAdmin)
	ctx := context.Background()

	_, _, err := f.calendars.Share(ctx, admin.ID, calendar.ID, target.ID, models.ShareEdit)
	requireCode(t, err, "FORBIDDEN")
}

func TestShareUpsertOverwritesPermission(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	target := f.user(t, "target")
	calendar := f.calendar(t, owner, "team")
	ctx := context.Background()

	first, created, err := f.calendars.Share(ctx, owner.ID, calendar.ID, target.ID, models.ShareViewOnly)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := f.calendars.Share(ctx, owner.ID, calendar.ID, target.ID, models.ShareEdit)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.ShareEdit, second.Permission)

	var count int64
	require.NoError(t, f.db.Model(&models.CalendarShare{}).
		Where("calendar_id = ? AND user_id = ?", calendar.ID, target.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestShareWithOwnerRejected(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	calendar := f.calendar(t, owner, "team")
	ctx := context.Background()

	_, _, err := f.calendars.Share(ctx, owner.ID, calendar.ID, owner.ID, models.ShareEdit)
	requireCode(t, err, "VALIDATION_ERROR")
}

func TestShareInvalidPermissionRejected(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	target := f.user(t, "target")
	calendar := f.calendar(t, owner, "team")
	ctx := context.Background()

	_, _, err := f.calendars.Share(ctx, owner.ID, calendar.ID, target.ID, "superuser")
	requireCode(t, err, "VALIDATION_ERROR")
}

func TestUnshareRevokesAccess(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	target := f.user(t, "target")
	calendar := f.calendar(t, owner, "team")
	f.share(t, calendar, target, models.ShareEdit)
	ctx := context.Background()

	require.NoError(t, f.calendars.Unshare(ctx, owner.ID, calendar.ID, target.ID))

	_, err := f.calendars.Get(ctx, target.ID, calendar.ID)
	requireCode(t, err, "FORBIDDEN")
}

func TestDeleteIsOwnerOnlyAndCascades(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	admin := f.user(t, "grantee")
	calendar := f.calendar(t, owner, "team")
	f.share(t, calendar, admin, models.ShareAdmin)
	f.event(t, calendar, "kickoff")
	ctx := context.Background()

	_, err := f.availability.Submit(ctx, owner.ID, calendar.ID, AvailabilitySubmission{
		StartTime: at(6, 9),
	})
	require.NoError(t, err)

	requireCode(t, f.calendars.Delete(ctx, admin.ID, calendar.ID), "FORBIDDEN")
	require.NoError(t, f.calendars.Delete(ctx, owner.ID, calendar.ID))

	for _, model := range []any{&models.Event{}, &models.Availability{}, &models.CalendarShare{}} {
		var count int64
		require.NoError(t, f.db.Model(model).Where("calendar_id = ?", calendar.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestCreateSharedCalendarGrantsViewOnly(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	ctx := context.Background()

	calendar, err := f.calendars.CreateShared(ctx, alice.ID, bob.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "alice & bob", calendar.Name)
	assert.Equal(t, alice.ID, calendar.OwnerID)

	share, err := f.shareRepo.GetByCalendarAndUser(ctx, calendar.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, share)
	assert.Equal(t, models.ShareViewOnly, share.Permission)

	visible, err := f.calendars.VisibleCalendars(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, calendar.ID, visible[0].ID)
}

func TestCreateSharedCalendarRejectsSelf(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	ctx := context.Background()

	_, err := f.calendars.CreateShared(ctx, alice.ID, alice.ID, "")
	requireCode(t, err, "VALIDATION_ERROR")
}

func TestCreateSharedCalendarMissingTarget(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	ctx := context.Background()

	_, err := f.calendars.CreateShared(ctx, alice.ID, 9999, "")
	requireCode(t, err, "NOT_FOUND")

	// Nothing persisted.
	var count int64
	require.NoError(t, f.db.Model(&models.Calendar{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSharedWithVisibleToReaders(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	viewer := f.user(t, "viewer")
	stranger := f.user(t, "stranger")
	calendar := f.calendar(t, owner, "team")
	f.share(t, calendar, viewer, models.ShareViewOnly)
	ctx := context.Background()

	shares, err := f.calendars.SharedWith(ctx, viewer.ID, calendar.ID)
	require.NoError(t, err)
	assert.Len(t, shares, 1)

	_, err = f.calendars.SharedWith(ctx, stranger.ID, calendar.ID)
	requireCode(t, err, "FORBIDDEN")
}
