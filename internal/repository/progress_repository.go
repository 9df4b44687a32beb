// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"study_keep/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	Find(ctx context.Context, db *gorm.DB, loc model.Location, topicID string) (*model.TopicProgress, error)
	Upsert(ctx context.Context, tx *gorm.DB, progress *model.TopicProgress) error // トランザクション対応
	ListAll(ctx context.Context, db *gorm.DB, loc model.Location) ([]*model.TopicProgress, error)
	FindDue(ctx context.Context, db *gorm.DB, loc model.Location, now time.Time, since *time.Time, limit int) ([]*model.TopicProgress, error)
}

type gormProgressRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Find(ctx context.Context, db *gorm.DB, loc model.Location, topicID string) (*model.TopicProgress, error) {
	var progress model.TopicProgress
	result := db.WithContext(ctx).
		Where("user_id = ? AND scope = ? AND topic_id = ?", loc.UserID, loc.Scope, topicID).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &progress, nil
}

// Upsert は主キー (user_id, scope, topic_id) で作成または全カラム更新します。
func (r *gormProgressRepository) Upsert(ctx context.Context, tx *gorm.DB, progress *model.TopicProgress) error {
	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(progress)
	return result.Error
}

// ListAll は順序を保証しません。
func (r *gormProgressRepository) ListAll(ctx context.Context, db *gorm.DB, loc model.Location) ([]*model.TopicProgress, error) {
	var progresses []*model.TopicProgress
	result := db.WithContext(ctx).
		Where("user_id = ? AND scope = ?", loc.UserID, loc.Scope).
		Find(&progresses)
	if result.Error != nil {
		return nil, result.Error
	}
	return progresses, nil
}

// FindDue は next_revision <= now のレコードを next_revision の昇順で最大 limit 件返します。
// since を指定すると、それより前に復習したレコードは除外します。
func (r *gormProgressRepository) FindDue(ctx context.Context, db *gorm.DB, loc model.Location, now time.Time, since *time.Time, limit int) ([]*model.TopicProgress, error) {
	var progresses []*model.TopicProgress
	q := db.WithContext(ctx).
		Where("user_id = ? AND scope = ?", loc.UserID, loc.Scope).
		Where("next_revision IS NOT NULL AND next_revision <= ?", now)
	if since != nil {
		q = q.Where("last_revised IS NULL OR last_revised >= ?", *since)
	}
	result := q.
		Order("next_revision ASC").
		Limit(limit).
		Find(&progresses)
	if result.Error != nil {
		return nil, result.Error
	}
	return progresses, nil
}
