package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/justsurfingit/job-assistant/internal/database"
	"github.com/justsurfingit/job-assistant/internal/dtos"
	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/models"
)

// newTestDB opens an in-memory sqlite database and runs migrations. The pool
// is pinned to a single connection so every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{Email: "tester@example.com"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedJob(t *testing.T, db *gorm.DB, source, sourceID string) *models.Job {
	t.Helper()
	job := models.Job{
		Source:   source,
		SourceID: sourceID,
		Title:    "Backend Engineer",
		Company:  "Acme",
	}
	require.NoError(t, db.Create(&job).Error)
	return &job
}

func seedApplication(t *testing.T, db *gorm.DB, svc *ApplicationService, userID, jobID string) *models.Application {
	t.Helper()
	app, err := svc.Create(context.Background(), userID, jobID, nil)
	require.NoError(t, err)
	return app
}

func strPtr(s string) *string { return &s }

func jobInput(sourceID string) *dtos.JobInput {
	return &dtos.JobInput{
		Source:   "adzuna",
		SourceID: sourceID,
		Title:    "Go Developer",
		Company:  "Initech",
		URL:      "https://example.com/jobs/" + sourceID,
	}
}

var nopLog = logger.NewNop()
