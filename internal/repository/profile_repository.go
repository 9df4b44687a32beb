// internal/repository/profile_repository.go
package repository

import (
	"context"
	"errors"

	"study_keep/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	Find(ctx context.Context, db *gorm.DB, userID string) (*model.UserProfile, error)
	Save(ctx context.Context, tx *gorm.DB, profile *model.UserProfile) error
}

type gormProfileRepository struct{}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

func (r *gormProfileRepository) Find(ctx context.Context, db *gorm.DB, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &profile, nil
}

func (r *gormProfileRepository) Save(ctx context.Context, tx *gorm.DB, profile *model.UserProfile) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(profile).Error
}
