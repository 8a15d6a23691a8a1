package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
	"github.com/justsurfingit/job-assistant/internal/models"
)

const sampleResume = `Jane Doe
jane@example.com

Summary
Backend engineer with five years of Go.

Experience
Acme Corp, 2021-2024
Built the billing pipeline.

Skills
Go, PostgreSQL, Docker
`

func TestResumeSavePromotesNewPrimary(t *testing.T) {
	db := newTestDB(t)
	svc := NewResumeService(db, nopLog)
	user := seedUser(t, db)

	first, err := svc.Save(context.Background(), user.ID, "v1.txt", sampleResume)
	require.NoError(t, err)
	assert.True(t, first.IsPrimary)

	second, err := svc.Save(context.Background(), user.ID, "v2.txt", sampleResume)
	require.NoError(t, err)
	assert.True(t, second.IsPrimary)

	// The old primary got demoted inside the same transaction.
	var reloaded models.Resume
	require.NoError(t, db.First(&reloaded, "id = ?", first.ID).Error)
	assert.False(t, reloaded.IsPrimary)

	primary, err := svc.Primary(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, primary.ID)
}

func TestResumePrimaryMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewResumeService(db, nopLog)
	user := seedUser(t, db)

	_, err := svc.Primary(context.Background(), user.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestResumeSaveParsesSections(t *testing.T) {
	db := newTestDB(t)
	svc := NewResumeService(db, nopLog)
	user := seedUser(t, db)

	resume, err := svc.Save(context.Background(), user.ID, "v1.txt", sampleResume)
	require.NoError(t, err)

	sections := resume.Sections.Data()
	assert.Contains(t, sections, "experience")
	assert.Contains(t, sections, "skills")
	assert.Contains(t, sections["skills"], "Go, PostgreSQL, Docker")
}

func TestParseResumeSections(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string][]string
	}{
		{
			name: "empty text",
			text: "",
			want: map[string][]string{"header": {}},
		},
		{
			name: "no headings lands in header",
			text: "Jane Doe\njane@example.com",
			want: map[string][]string{"header": {"Jane Doe", "jane@example.com"}},
		},
		{
			name: "heading by suffix",
			text: "Jane\nWork Experience\nAcme Corp",
			want: map[string][]string{
				"header":     {"Jane"},
				"experience": {"Acme Corp"},
			},
		},
		{
			name: "blank lines are dropped",
			text: "Skills\n\nGo\n\nSQL",
			want: map[string][]string{
				"header": {},
				"skills": {"Go", "SQL"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseResumeSections(tt.text))
		})
	}
}
