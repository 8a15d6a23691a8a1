package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
	"github.com/justsurfingit/job-assistant/internal/models"
)

func TestJobSaveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db, nopLog)

	first, err := svc.Save(context.Background(), jobInput("9001"))
	require.NoError(t, err)

	input := jobInput("9001")
	input.Title = "Senior Go Developer" // changed fields are ignored on dedup
	second, err := svc.Save(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Go Developer", second.Title)

	var count int64
	require.NoError(t, db.Model(&models.Job{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestJobSaveDistinguishesSources(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db, nopLog)

	a, err := svc.Save(context.Background(), jobInput("9002"))
	require.NoError(t, err)

	input := jobInput("9002")
	input.Source = "remoteok"
	b, err := svc.Save(context.Background(), input)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestJobGetMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db, nopLog)

	_, err := svc.Get(context.Background(), "nope")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestJobListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db, nopLog)

	_, err := svc.Save(context.Background(), jobInput("9003"))
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), jobInput("9004"))
	require.NoError(t, err)

	jobs, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "9004", jobs[0].SourceID)
}
