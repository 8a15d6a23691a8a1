package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/justsurfingit/job-assistant/internal/boards"
	"github.com/justsurfingit/job-assistant/internal/database"
	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/models"
	"github.com/justsurfingit/job-assistant/internal/services"
)

type fixture struct {
	db           *gorm.DB
	orchestrator *Orchestrator
	user         *models.User
	applications *services.ApplicationService
	resumes      *services.ResumeService
	documents    *services.DocumentService
}

// newFixture wires a full orchestrator against an in-memory store, a
// client-less LLM service and the given board endpoints.
func newFixture(t *testing.T, adzunaBase, remoteOKBase string) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	log := logger.NewNop()
	user := &models.User{Email: "tester@example.com"}
	require.NoError(t, db.Create(user).Error)

	applications := services.NewApplicationService(db, log)
	documents := services.NewDocumentService(db, log)
	resumes := services.NewResumeService(db, log)
	boardClient := &boards.Client{
		HTTP:          &http.Client{Timeout: 5 * time.Second},
		AdzunaBase:    adzunaBase,
		RemoteOKBase:  remoteOKBase,
		AdzunaCountry: "us",
	}

	orchestrator := NewOrchestrator(
		services.NewJobService(db, log),
		applications,
		documents,
		services.NewMatchService(db, log),
		resumes,
		&services.LLMService{Log: log},
		boardClient,
		user,
		log,
	)

	return &fixture{
		db:           db,
		orchestrator: orchestrator,
		user:         user,
		applications: applications,
		resumes:      resumes,
		documents:    documents,
	}
}

func (f *fixture) seedApplication(t *testing.T) *models.Application {
	t.Helper()
	job := models.Job{Source: "adzuna", SourceID: "a1", Title: "Go Developer", Company: "Initech"}
	require.NoError(t, f.db.Create(&job).Error)
	app, err := f.applications.Create(context.Background(), f.user.ID, job.ID, nil)
	require.NoError(t, err)
	return app
}

func TestRunUnknownAction(t *testing.T) {
	f := newFixture(t, "", "")
	result := f.orchestrator.Run(context.Background(), "make_coffee", nil)
	assert.Equal(t, "unknown action: make_coffee", result.Error)
}

func TestTrackerUpdateTransitionsApplication(t *testing.T) {
	f := newFixture(t, "", "")
	app := f.seedApplication(t)

	result := f.orchestrator.Run(context.Background(), ActionUpdateStatus, map[string]interface{}{
		"application_id": app.ID,
		"status":         "applied",
		"notes":          "sent today",
	})
	require.Empty(t, result.Error)

	updated, ok := result.ApplicationUpdate.(*models.Application)
	require.True(t, ok)
	assert.Equal(t, models.StatusApplied, updated.Status)
}

func TestTrackerUpdateValidatesBeforeMutating(t *testing.T) {
	f := newFixture(t, "", "")
	app := f.seedApplication(t)

	result := f.orchestrator.Run(context.Background(), ActionUpdateStatus, map[string]interface{}{
		"application_id": app.ID,
	})
	assert.Equal(t, "application_id and status required", result.Error)

	// Nothing moved.
	detail, err := f.applications.Detail(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSaved, detail.Status)
	assert.Len(t, detail.Events, 1)
}

func TestTrackerUpdateMissingApplication(t *testing.T) {
	f := newFixture(t, "", "")
	result := f.orchestrator.Run(context.Background(), ActionUpdateStatus, map[string]interface{}{
		"application_id": "missing",
		"status":         "applied",
	})
	assert.Equal(t, "Application not found", result.Error)
}

func TestTrackerSummary(t *testing.T) {
	f := newFixture(t, "", "")
	f.seedApplication(t)

	result := f.orchestrator.Run(context.Background(), ActionUpdateStatus, map[string]interface{}{
		"sub_action": "summary",
	})
	require.Empty(t, result.Error)

	summary, ok := result.ApplicationUpdate.(*services.Summary)
	require.True(t, ok)
	assert.Equal(t, 1, summary.Total)
}

func TestTailorRequiresResume(t *testing.T) {
	f := newFixture(t, "", "")
	app := f.seedApplication(t)

	result := f.orchestrator.Run(context.Background(), ActionTailorApplication, map[string]interface{}{
		"application_id": app.ID,
	})
	assert.Equal(t, "No resume found", result.Error)
}

func TestTailorSavesCoverLetterDocument(t *testing.T) {
	f := newFixture(t, "", "")
	app := f.seedApplication(t)
	_, err := f.resumes.Save(context.Background(), f.user.ID, "resume.txt", "Experience\nFive years of Go.")
	require.NoError(t, err)

	result := f.orchestrator.Run(context.Background(), ActionTailorApplication, map[string]interface{}{
		"application_id": app.ID,
	})
	require.Empty(t, result.Error)
	assert.Contains(t, result.CoverLetter, "Go Developer")

	history, err := f.documents.History(context.Background(), app.ID, models.DocTypeCoverLetter)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, result.CoverLetter, history[0].Content)

	// The letter is also denormalized onto the application row.
	detail, err := f.applications.Detail(context.Background(), app.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.CoverLetter)
}

func TestMatcherSavesJobsFromBoards(t *testing.T) {
	adzuna := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"id": 1, "title": "Go Developer", "company": {"display_name": "Initech"}}
		]}`))
	}))
	defer adzuna.Close()
	remoteok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"legal": "meta"},
			{"id": "2", "position": "Backend Engineer", "company": "RemoteCo"}
		]`))
	}))
	defer remoteok.Close()

	f := newFixture(t, adzuna.URL, remoteok.URL)
	result := f.orchestrator.Run(context.Background(), ActionSearchJobs, map[string]interface{}{
		"keywords": "golang",
	})
	require.Empty(t, result.Error)
	assert.Len(t, result.JobsFound, 2)

	var count int64
	require.NoError(t, f.db.Model(&models.Job{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// Running the same search again dedups against (source, source_id).
	result = f.orchestrator.Run(context.Background(), ActionSearchJobs, map[string]interface{}{
		"keywords": "golang",
	})
	require.Empty(t, result.Error)
	require.NoError(t, f.db.Model(&models.Job{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestMatcherDegradesWhenBoardsFail(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	f := newFixture(t, down.URL, down.URL)
	result := f.orchestrator.Run(context.Background(), ActionSearchJobs, nil)
	assert.Equal(t, "No jobs found", result.Error)
	assert.NotEmpty(t, result.Warnings)
}

func TestMatcherRemoteOnlySkipsAdzuna(t *testing.T) {
	var adzunaCalled bool
	adzuna := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adzunaCalled = true
		w.Write([]byte(`{"results": []}`))
	}))
	defer adzuna.Close()
	remoteok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"legal": "meta"},
			{"id": "3", "position": "SRE", "company": "RemoteCo"}
		]`))
	}))
	defer remoteok.Close()

	f := newFixture(t, adzuna.URL, remoteok.URL)
	result := f.orchestrator.Run(context.Background(), ActionSearchJobs, map[string]interface{}{
		"keywords":    "golang",
		"remote_only": true,
	})
	require.Empty(t, result.Error)
	assert.False(t, adzunaCalled)
	assert.Len(t, result.JobsFound, 1)
}
