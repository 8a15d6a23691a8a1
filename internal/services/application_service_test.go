package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
	"github.com/justsurfingit/job-assistant/internal/models"
)

func TestApplicationCreateAppendsCreationEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)
	user := seedUser(t, db)
	job := seedJob(t, db, "adzuna", "1001")

	app, err := svc.Create(context.Background(), user.ID, job.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSaved, app.Status)
	assert.Nil(t, app.AppliedAt)

	var events []models.ApplicationEvent
	require.NoError(t, db.Where("application_id = ?", app.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventStatusChange, events[0].EventType)
	assert.Nil(t, events[0].OldValue)
	assert.Equal(t, "saved", events[0].NewValue)
}

func TestApplicationCreateRequiresIDs(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)

	_, err := svc.Create(context.Background(), "", "job", nil)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(context.Background(), "user", "", nil)
	assert.True(t, apperrors.IsValidation(err))
}

func TestTransitionUpdatesStatusAndAppendsEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)
	user := seedUser(t, db)
	job := seedJob(t, db, "adzuna", "1002")
	app := seedApplication(t, db, svc, user.ID, job.ID)

	updated, err := svc.Transition(context.Background(), app.ID, models.StatusApplied, strPtr("sent via portal"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, updated.Status)
	require.NotNil(t, updated.AppliedAt)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "sent via portal", *updated.Notes)

	detail, err := svc.Detail(context.Background(), app.ID)
	require.NoError(t, err)
	require.Len(t, detail.Events, 2)
	// Newest first.
	newest := detail.Events[0]
	require.NotNil(t, newest.OldValue)
	assert.Equal(t, "saved", *newest.OldValue)
	assert.Equal(t, "applied", newest.NewValue)
}

func TestTransitionKeepsNotesWhenOmitted(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)
	user := seedUser(t, db)
	job := seedJob(t, db, "adzuna", "1003")
	app := seedApplication(t, db, svc, user.ID, job.ID)

	_, err := svc.Transition(context.Background(), app.ID, models.StatusApplied, strPtr("first note"))
	require.NoError(t, err)

	updated, err := svc.Transition(context.Background(), app.ID, models.StatusInterview, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "first note", *updated.Notes)
}

func TestTransitionRestampsAppliedAt(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)
	user := seedUser(t, db)
	job := seedJob(t, db, "adzuna", "1004")
	app := seedApplication(t, db, svc, user.ID, job.ID)

	first, err := svc.Transition(context.Background(), app.ID, models.StatusApplied, nil)
	require.NoError(t, err)
	require.NotNil(t, first.AppliedAt)

	_, err = svc.Transition(context.Background(), app.ID, models.StatusRejected, nil)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	second, err := svc.Transition(context.Background(), app.ID, models.StatusApplied, nil)
	require.NoError(t, err)
	require.NotNil(t, second.AppliedAt)
	assert.True(t, second.AppliedAt.After(*first.AppliedAt))
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)
	user := seedUser(t, db)
	job := seedJob(t, db, "adzuna", "1005")
	app := seedApplication(t, db, svc, user.ID, job.ID)

	_, err := svc.Transition(context.Background(), app.ID, models.Status("ghosted"), nil)
	assert.True(t, apperrors.IsValidation(err))

	// Rejected transition leaves no trace.
	detail, err := svc.Detail(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSaved, detail.Status)
	assert.Len(t, detail.Events, 1)
}

func TestTransitionMissingApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)

	_, err := svc.Transition(context.Background(), "no-such-id", models.StatusApplied, nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTransitionOutOfTerminalStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)
	user := seedUser(t, db)
	job := seedJob(t, db, "adzuna", "1006")
	app := seedApplication(t, db, svc, user.ID, job.ID)

	_, err := svc.Transition(context.Background(), app.ID, models.StatusRejected, nil)
	require.NoError(t, err)

	updated, err := svc.Transition(context.Background(), app.ID, models.StatusInterview, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, updated.Status)
}

func TestApplicationLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)
	user := seedUser(t, db)
	job := seedJob(t, db, "remoteok", "2001")

	app := seedApplication(t, db, svc, user.ID, job.ID)
	_, err := svc.Transition(context.Background(), app.ID, models.StatusApplied, nil)
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), app.ID, models.StatusInterview, strPtr("tech screen passed"))
	require.NoError(t, err)

	detail, err := svc.Detail(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, detail.Status)
	require.NotNil(t, detail.Notes)
	assert.Equal(t, "tech screen passed", *detail.Notes)
	assert.NotNil(t, detail.AppliedAt)
	require.Len(t, detail.Events, 3)

	// Newest-first: interview, applied, creation.
	assert.Equal(t, "interview", detail.Events[0].NewValue)
	assert.Equal(t, "applied", detail.Events[1].NewValue)
	assert.Equal(t, "saved", detail.Events[2].NewValue)
	assert.Nil(t, detail.Events[2].OldValue)
}

func TestListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)
	user := seedUser(t, db)

	appA := seedApplication(t, db, svc, user.ID, seedJob(t, db, "adzuna", "3001").ID)
	seedApplication(t, db, svc, user.ID, seedJob(t, db, "adzuna", "3002").ID)

	_, err := svc.Transition(context.Background(), appA.ID, models.StatusApplied, nil)
	require.NoError(t, err)

	applied := models.StatusApplied
	apps, err := svc.List(context.Background(), user.ID, &applied, 0)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, appA.ID, apps[0].ID)

	all, err := svc.List(context.Background(), user.ID, nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSummarizeCountsSumToTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)
	user := seedUser(t, db)

	statuses := []models.Status{
		models.StatusApplied, models.StatusApplied,
		models.StatusInterview, models.StatusRejected,
	}
	for i, status := range statuses {
		job := seedJob(t, db, "adzuna", "40"+string(rune('0'+i)))
		app := seedApplication(t, db, svc, user.ID, job.ID)
		_, err := svc.Transition(context.Background(), app.ID, status, nil)
		require.NoError(t, err)
	}
	// One left in saved.
	seedApplication(t, db, svc, user.ID, seedJob(t, db, "adzuna", "4099").ID)

	summary, err := svc.Summarize(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.ByStatus[models.StatusApplied])
	assert.Equal(t, 1, summary.ByStatus[models.StatusInterview])
	assert.Equal(t, 1, summary.ByStatus[models.StatusRejected])
	assert.Equal(t, 1, summary.ByStatus[models.StatusSaved])

	sum := 0
	for _, n := range summary.ByStatus {
		sum += n
	}
	assert.Equal(t, summary.Total, sum)
}

func TestDetailMissingApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, nopLog)

	_, err := svc.Detail(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}
