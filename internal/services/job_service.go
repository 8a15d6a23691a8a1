package services

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
	"github.com/justsurfingit/job-assistant/internal/dtos"
	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/models"
)

type JobService struct {
	DB  *gorm.DB
	Log *logger.Logger
}

func NewJobService(db *gorm.DB, log *logger.Logger) *JobService {
	return &JobService{DB: db, Log: log.With("service", "job")}
}

// Save ingests a posting idempotently: if a job with the same
// (source, source_id) already exists, the existing record is returned and
// nothing is written.
func (s *JobService) Save(ctx context.Context, input *dtos.JobInput) (*models.Job, error) {
	var existing models.Job
	err := s.DB.WithContext(ctx).
		Where("source = ? AND source_id = ?", input.Source, input.SourceID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	job := models.Job{
		Source:       input.Source,
		SourceID:     input.SourceID,
		Title:        input.Title,
		Company:      input.Company,
		CompanyURL:   input.CompanyURL,
		Location:     input.Location,
		IsRemote:     input.IsRemote,
		SalaryMin:    input.SalaryMin,
		SalaryMax:    input.SalaryMax,
		Description:  input.Description,
		Requirements: datatypes.NewJSONSlice(input.Requirements),
		URL:          input.URL,
		PostedAt:     input.PostedAt,
	}
	if len(input.Raw) > 0 {
		job.RawData = datatypes.JSON(input.Raw)
	}

	if err := s.DB.WithContext(ctx).Create(&job).Error; err != nil {
		// A concurrent save of the same posting won the race; resolve the
		// conflict by returning the row it created.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var winner models.Job
			if ferr := s.DB.WithContext(ctx).
				Where("source = ? AND source_id = ?", input.Source, input.SourceID).
				First(&winner).Error; ferr == nil {
				return &winner, nil
			}
			return nil, apperrors.Conflict("job %s/%s already exists", input.Source, input.SourceID)
		}
		return nil, err
	}
	return &job, nil
}

// List returns jobs newest-first.
func (s *JobService) List(ctx context.Context, limit int) ([]models.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := s.DB.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("job %s not found", id)
		}
		return nil, err
	}
	return &job, nil
}
