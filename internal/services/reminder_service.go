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

// ReminderService stores follow-up reminders and runs the background sweep
// that surfaces the due ones.
type ReminderService struct {
	DB  *gorm.DB
	Log *logger.Logger
}

func NewReminderService(db *gorm.DB, log *logger.Logger) *ReminderService {
	return &ReminderService{DB: db, Log: log.With("service", "reminder")}
}

func (s *ReminderService) Create(ctx context.Context, applicationID string, remindAt time.Time, message *string) (*models.Reminder, error) {
	var app models.Application
	if err := s.DB.WithContext(ctx).First(&app, "id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application %s not found", applicationID)
		}
		return nil, err
	}

	reminder := models.Reminder{
		ApplicationID: applicationID,
		RemindAt:      remindAt.UTC(),
		Message:       message,
	}
	if err := s.DB.WithContext(ctx).Create(&reminder).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

// ListDue returns uncompleted reminders whose remind_at is in the past,
// oldest first.
func (s *ReminderService) ListDue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	var due []models.Reminder
	err := s.DB.WithContext(ctx).
		Where("is_completed = ? AND remind_at <= ?", false, now.UTC()).
		Order("remind_at ASC").
		Find(&due).Error
	return due, err
}

func (s *ReminderService) Complete(ctx context.Context, id string) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := s.DB.WithContext(ctx).First(&reminder, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reminder %s not found", id)
		}
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&reminder).Update("is_completed", true).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

// StartWatcher starts the background polling that sweeps due reminders. It
// runs once immediately and then on every tick.
func (s *ReminderService) StartWatcher(interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)

	go s.Sweep()

	go func() {
		for range ticker.C {
			s.Sweep()
		}
	}()
}

// Sweep surfaces due reminders and marks them completed. Each cycle carries
// a bounded timeout so a slow store never wedges the watcher.
func (s *ReminderService) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	due, err := s.ListDue(ctx, time.Now())
	if err != nil {
		s.Log.Error("reminder sweep failed", "error", err)
		return
	}
	if len(due) == 0 {
		return
	}

	for _, reminder := range due {
		message := ""
		if reminder.Message != nil {
			message = *reminder.Message
		}
		s.Log.Info("reminder due",
			"reminder_id", reminder.ID,
			"application_id", reminder.ApplicationID,
			"message", message)

		if err := s.DB.WithContext(ctx).
			Model(&models.Reminder{}).
			Where("id = ?", reminder.ID).
			Update("is_completed", true).Error; err != nil {
			s.Log.Error("failed to complete reminder", "reminder_id", reminder.ID, "error", err)
		}
	}
}
