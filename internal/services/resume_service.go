package services

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/models"
)

type ResumeService struct {
	DB  *gorm.DB
	Log *logger.Logger
}

func NewResumeService(db *gorm.DB, log *logger.Logger) *ResumeService {
	return &ResumeService{DB: db, Log: log.With("service", "resume")}
}

// Save parses and stores a resume as the user's new primary. The insert and
// the demotion of every other resume happen in one transaction, so at most
// one resume per user is ever primary.
func (s *ResumeService) Save(ctx context.Context, userID, filename, rawText string) (*models.Resume, error) {
	if userID == "" || filename == "" {
		return nil, apperrors.Validation("user_id and filename required")
	}

	resume := models.Resume{
		UserID:    userID,
		Filename:  filename,
		Sections:  datatypes.NewJSONType(ParseResumeSections(rawText)),
		RawText:   rawText,
		IsPrimary: true,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&resume).Error; err != nil {
			return err
		}
		return tx.Model(&models.Resume{}).
			Where("user_id = ? AND id != ?", userID, resume.ID).
			Update("is_primary", false).Error
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("resume saved", "resume_id", resume.ID, "filename", filename)
	return &resume, nil
}

// Primary returns the user's primary resume, or NotFound when none exists.
func (s *ResumeService) Primary(ctx context.Context, userID string) (*models.Resume, error) {
	var resume models.Resume
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND is_primary = ?", userID, true).
		Order("created_at DESC").
		First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no primary resume for user %s", userID)
		}
		return nil, err
	}
	return &resume, nil
}

func (s *ResumeService) List(ctx context.Context, userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes).Error
	return resumes, err
}
