// internal/repository/stats_repository.go
package repository

import (
	"context"
	"errors"

	"study_keep/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepository interface {
	Find(ctx context.Context, db *gorm.DB, userID string) (*model.UnifiedProgress, error)
	EnsureRow(ctx context.Context, tx *gorm.DB, userID string) error
	FindForUpdate(ctx context.Context, tx *gorm.DB, userID string) (*model.UnifiedProgress, error)
	Save(ctx context.Context, tx *gorm.DB, stats *model.UnifiedProgress) error
}

type gormStatsRepository struct{}

func NewGormStatsRepository() StatsRepository {
	return &gormStatsRepository{}
}

func (r *gormStatsRepository) Find(ctx context.Context, db *gorm.DB, userID string) (*model.UnifiedProgress, error) {
	return r.find(db.WithContext(ctx), userID)
}

// EnsureRow は集計行がなければ空の行を作成します。既存の行は変更しない。
// 初回保存同士が並行しても FindForUpdate で同じ行をロックできるようにするため、集計前に呼ぶこと。
func (r *gormStatsRepository) EnsureRow(ctx context.Context, tx *gorm.DB, userID string) error {
	row := &model.UnifiedProgress{UserID: userID}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

// FindForUpdate は行ロック (SELECT ... FOR UPDATE) 付きで取得します。SQLiteではロック句は無視される。
func (r *gormStatsRepository) FindForUpdate(ctx context.Context, tx *gorm.DB, userID string) (*model.UnifiedProgress, error) {
	q := tx.WithContext(ctx)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.find(q, userID)
}

func (r *gormStatsRepository) find(db *gorm.DB, userID string) (*model.UnifiedProgress, error) {
	var stats model.UnifiedProgress
	result := db.Where("user_id = ?", userID).First(&stats)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &stats, nil
}

func (r *gormStatsRepository) Save(ctx context.Context, tx *gorm.DB, stats *model.UnifiedProgress) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(stats).Error
}
