package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/models"
)

const (
	defaultUserEmail = "default@example.com"
	defaultUserName  = "Default User"
)

type UserService struct {
	DB  *gorm.DB
	Log *logger.Logger
}

func NewUserService(db *gorm.DB, log *logger.Logger) *UserService {
	return &UserService{DB: db, Log: log.With("service", "user")}
}

// Bootstrap returns the first user, creating the default one on first run.
// It is called exactly once at startup; the returned handle is passed to
// everything that needs a user, so no request path re-queries for it.
func (s *UserService) Bootstrap(ctx context.Context) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Order("created_at ASC").First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	name := defaultUserName
	user = models.User{Email: defaultUserEmail, Name: &name}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	s.Log.Info("created default user", "user_id", user.ID)
	return &user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
