package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/models"
)

// ApplicationService owns the application status state machine and its audit
// log. Transitions are permissive: any of the seven statuses can be set from
// any other, and rejected/withdrawn stay mutable. Every transition appends
// exactly one ApplicationEvent in the same transaction as the status write.
type ApplicationService struct {
	DB  *gorm.DB
	Log *logger.Logger
}

func NewApplicationService(db *gorm.DB, log *logger.Logger) *ApplicationService {
	return &ApplicationService{DB: db, Log: log.With("service", "application")}
}

// Summary is the aggregation returned by Summarize. It is computed, never
// stored.
type Summary struct {
	Total        int                   `json:"total"`
	ByStatus     map[models.Status]int `json:"by_status"`
	Applications []models.Application  `json:"applications"`
}

// Detail is an application joined with its event history, newest-first.
type Detail struct {
	models.Application
	Events []models.ApplicationEvent `json:"events"`
}

// Create inserts an application in status "saved" and appends the creation
// event (old_value null -> "saved") atomically.
func (s *ApplicationService) Create(ctx context.Context, userID, jobID string, resumeID *string) (*models.Application, error) {
	if userID == "" || jobID == "" {
		return nil, apperrors.Validation("user_id and job_id required")
	}

	app := models.Application{
		UserID:   userID,
		JobID:    jobID,
		ResumeID: resumeID,
		Status:   models.StatusSaved,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&app).Error; err != nil {
			return err
		}
		event := models.ApplicationEvent{
			ApplicationID: app.ID,
			EventType:     models.EventStatusChange,
			OldValue:      nil,
			NewValue:      string(models.StatusSaved),
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("application created", "application_id", app.ID, "job_id", jobID)
	return &app, nil
}

// Transition sets the application's status and appends the audit event in one
// transaction. Notes are only touched when provided. Moving to "applied"
// re-stamps applied_at to now every time, even when the application was
// already applied once.
func (s *ApplicationService) Transition(ctx context.Context, applicationID string, newStatus models.Status, notes *string) (*models.Application, error) {
	if applicationID == "" {
		return nil, apperrors.Validation("application_id required")
	}
	if !models.ValidStatus(newStatus) {
		return nil, apperrors.Validation("unknown status %q", newStatus)
	}

	var app models.Application
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&app, "id = ?", applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("application %s not found", applicationID)
			}
			return err
		}

		oldStatus := string(app.Status)
		now := time.Now().UTC()

		updates := map[string]interface{}{
			"status":     newStatus,
			"updated_at": now,
		}
		if notes != nil {
			updates["notes"] = *notes
		}
		if newStatus == models.StatusApplied {
			updates["applied_at"] = now
		}
		if err := tx.Model(&models.Application{}).
			Where("id = ?", applicationID).
			Updates(updates).Error; err != nil {
			return err
		}

		event := models.ApplicationEvent{
			ApplicationID: applicationID,
			EventType:     models.EventStatusChange,
			OldValue:      &oldStatus,
			NewValue:      string(newStatus),
			Notes:         notes,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return tx.First(&app, "id = ?", applicationID).Error
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("application transitioned",
		"application_id", app.ID, "status", newStatus)
	return &app, nil
}

// List returns a user's applications newest-first by updated_at, optionally
// filtered by status.
func (s *ApplicationService) List(ctx context.Context, userID string, status *models.Status, limit int) ([]models.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	query := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var apps []models.Application
	err := query.Order("updated_at DESC").Limit(limit).Find(&apps).Error
	return apps, err
}

// Summarize aggregates a user's pipeline: total count, per-status counts and
// the application list itself.
func (s *ApplicationService) Summarize(ctx context.Context, userID string) (*Summary, error) {
	var apps []models.Application
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	summary := &Summary{
		Total:        len(apps),
		ByStatus:     make(map[models.Status]int),
		Applications: apps,
	}
	for _, app := range apps {
		summary.ByStatus[app.Status]++
	}
	return summary, nil
}

// Detail returns the application with its event history ordered newest-first.
func (s *ApplicationService) Detail(ctx context.Context, applicationID string) (*Detail, error) {
	var app models.Application
	if err := s.DB.WithContext(ctx).First(&app, "id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application %s not found", applicationID)
		}
		return nil, err
	}

	var events []models.ApplicationEvent
	if err := s.DB.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}

	return &Detail{Application: app, Events: events}, nil
}
