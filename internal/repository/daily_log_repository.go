// internal/repository/daily_log_repository.go
package repository

import (
	"context"
	"errors"

	"study_keep/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyLogRepository interface {
	Save(ctx context.Context, tx *gorm.DB, log *model.DailyLog) error // 同じ日付は全体上書き
	FindByDate(ctx context.Context, db *gorm.DB, userID, date string) (*model.DailyLog, error)
	ListRange(ctx context.Context, db *gorm.DB, userID, from, to string) ([]*model.DailyLog, error)
}

type gormDailyLogRepository struct{}

func NewGormDailyLogRepository() DailyLogRepository {
	return &gormDailyLogRepository{}
}

func (r *gormDailyLogRepository) Save(ctx context.Context, tx *gorm.DB, log *model.DailyLog) error {
	return tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"health", "sessions", "goal_minutes", "actual_minutes",
				"wins", "challenges", "tomorrow_plan", "reflection", "updated_at",
			}),
		}).
		Create(log).Error
}

func (r *gormDailyLogRepository) FindByDate(ctx context.Context, db *gorm.DB, userID, date string) (*model.DailyLog, error) {
	var log model.DailyLog
	result := db.WithContext(ctx).Where("user_id = ? AND log_date = ?", userID, date).First(&log)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &log, nil
}

// ListRange は from <= 日付 <= to のログを日付順に返します (YYYY-MM-DD の文字列比較)。
func (r *gormDailyLogRepository) ListRange(ctx context.Context, db *gorm.DB, userID, from, to string) ([]*model.DailyLog, error) {
	var logs []*model.DailyLog
	result := db.WithContext(ctx).
		Where("user_id = ? AND log_date >= ? AND log_date <= ?", userID, from, to).
		Order("log_date ASC").
		Find(&logs)
	if result.Error != nil {
		return nil, result.Error
	}
	return logs, nil
}
