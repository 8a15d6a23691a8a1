package services

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/models"
)

// MatchService persists job-match scores as a side output of LLM scoring.
// The upsert is keyed by (user_id, job_id): re-scoring a job replaces the
// prior record instead of accumulating rows. Scores are stored as received;
// range clamping is the producer's job.
type MatchService struct {
	DB  *gorm.DB
	Log *logger.Logger
}

func NewMatchService(db *gorm.DB, log *logger.Logger) *MatchService {
	return &MatchService{DB: db, Log: log.With("service", "match")}
}

func (s *MatchService) Save(ctx context.Context, userID, jobID string, score float64, reasons, matched, missing []string) (*models.JobMatch, error) {
	match := models.JobMatch{
		UserID:        userID,
		JobID:         jobID,
		MatchScore:    score,
		MatchReasons:  datatypes.NewJSONSlice(reasons),
		SkillsMatched: datatypes.NewJSONSlice(matched),
		SkillsMissing: datatypes.NewJSONSlice(missing),
		CreatedAt:     time.Now().UTC(),
	}

	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"match_score", "match_reasons", "skills_matched", "skills_missing", "created_at",
		}),
	}).Create(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// ListForUser returns a user's matches, best score first.
func (s *MatchService) ListForUser(ctx context.Context, userID string, limit int) ([]models.JobMatch, error) {
	if limit <= 0 {
		limit = 50
	}
	var matches []models.JobMatch
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("match_score DESC").
		Limit(limit).
		Find(&matches).Error
	return matches, err
}
