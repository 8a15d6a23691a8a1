package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/models"
)

// DocumentService versions generated artifacts per (application, doc_type).
// Saves never overwrite: each call inserts a new row with version = max + 1,
// so the full history is retained. The cover_letter doc_type is additionally
// denormalized onto the application row.
type DocumentService struct {
	DB  *gorm.DB
	Log *logger.Logger

	// locks serializes the read-max-then-insert sequence per
	// (application_id, doc_type) so concurrent saves never produce
	// duplicate version numbers.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDocumentService(db *gorm.DB, log *logger.Logger) *DocumentService {
	return &DocumentService{
		DB:    db,
		Log:   log.With("service", "document"),
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *DocumentService) lockFor(applicationID, docType string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := applicationID + "\x00" + docType
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// Save inserts the next version of a document for the application.
func (s *DocumentService) Save(ctx context.Context, applicationID, docType, content string) (*models.Document, error) {
	if applicationID == "" || docType == "" {
		return nil, apperrors.Validation("application_id and doc_type required")
	}

	lock := s.lockFor(applicationID, docType)
	lock.Lock()
	defer lock.Unlock()

	var doc models.Document
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.First(&app, "id = ?", applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("application %s not found", applicationID)
			}
			return err
		}

		var maxVersion int
		if err := tx.Model(&models.Document{}).
			Where("application_id = ? AND doc_type = ?", applicationID, docType).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}

		doc = models.Document{
			ApplicationID: applicationID,
			DocType:       docType,
			Content:       content,
			Version:       maxVersion + 1,
		}
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}

		if docType == models.DocTypeCoverLetter {
			if err := tx.Model(&models.Application{}).
				Where("id = ?", applicationID).
				Updates(map[string]interface{}{
					"cover_letter": content,
					"updated_at":   time.Now().UTC(),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("document saved",
		"application_id", applicationID, "doc_type", docType, "version", doc.Version)
	return &doc, nil
}

// History returns all versions for (application, doc_type), newest-first.
func (s *DocumentService) History(ctx context.Context, applicationID, docType string) ([]models.Document, error) {
	var docs []models.Document
	err := s.DB.WithContext(ctx).
		Where("application_id = ? AND doc_type = ?", applicationID, docType).
		Order("version DESC").
		Find(&docs).Error
	return docs, err
}
