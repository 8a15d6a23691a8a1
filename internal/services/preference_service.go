package services

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/justsurfingit/job-assistant/internal/dtos"
	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/models"
)

type PreferenceService struct {
	DB  *gorm.DB
	Log *logger.Logger
}

func NewPreferenceService(db *gorm.DB, log *logger.Logger) *PreferenceService {
	return &PreferenceService{DB: db, Log: log.With("service", "preference")}
}

// Get returns the user's search preferences, creating a default row on first
// access.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*models.Preference, error) {
	var pref models.Preference
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err == nil {
		return &pref, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pref = models.Preference{UserID: userID, RemotePreference: "any"}
	if err := s.DB.WithContext(ctx).Create(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

// Update merges the provided fields into the user's preferences. Nil or
// empty fields are left unchanged (last-write-wins per field).
func (s *PreferenceService) Update(ctx context.Context, userID string, req *dtos.PreferenceUpdateRequest) (*models.Preference, error) {
	pref, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.TargetRoles != nil {
		updates["target_roles"] = datatypes.NewJSONSlice(req.TargetRoles)
	}
	if req.TargetLocations != nil {
		updates["target_locations"] = datatypes.NewJSONSlice(req.TargetLocations)
	}
	if req.SalaryMin != nil {
		updates["salary_min"] = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		updates["salary_max"] = *req.SalaryMax
	}
	if req.RemotePreference != nil {
		updates["remote_preference"] = *req.RemotePreference
	}
	if req.Industries != nil {
		updates["industries"] = datatypes.NewJSONSlice(req.Industries)
	}
	if req.ExcludedCompanies != nil {
		updates["excluded_companies"] = datatypes.NewJSONSlice(req.ExcludedCompanies)
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(pref).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := s.DB.WithContext(ctx).First(pref, "id = ?", pref.ID).Error; err != nil {
			return nil, err
		}
	}
	return pref, nil
}
