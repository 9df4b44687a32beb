// internal/repository/note_repository.go
package repository

import (
	"context"
	"errors"

	"study_keep/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation は PostgreSQL の一意制約違反コード
const pgUniqueViolation = "23505"

type NoteRepository interface {
	Create(ctx context.Context, db *gorm.DB, note *model.Note) error
	ListByLocation(ctx context.Context, db *gorm.DB, loc model.Location) ([]*model.Note, error)
	Delete(ctx context.Context, db *gorm.DB, userID string, noteID uuid.UUID) error
}

type gormNoteRepository struct{}

func NewGormNoteRepository() NoteRepository {
	return &gormNoteRepository{}
}

// Create は同じ note_id が既にあれば ErrConflict を返します (PostgreSQL)。
func (r *gormNoteRepository) Create(ctx context.Context, db *gorm.DB, note *model.Note) error {
	result := db.WithContext(ctx).Create(note)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.ErrConflict
		}
		return result.Error
	}
	return nil
}

// ListByLocation は新しい順に返します。
func (r *gormNoteRepository) ListByLocation(ctx context.Context, db *gorm.DB, loc model.Location) ([]*model.Note, error) {
	var notes []*model.Note
	result := db.WithContext(ctx).
		Where("user_id = ? AND scope = ?", loc.UserID, loc.Scope).
		Order("created_at DESC").
		Find(&notes)
	if result.Error != nil {
		return nil, result.Error
	}
	return notes, nil
}

func (r *gormNoteRepository) Delete(ctx context.Context, db *gorm.DB, userID string, noteID uuid.UUID) error {
	result := db.WithContext(ctx).Where("user_id = ? AND note_id = ?", userID, noteID).Delete(&model.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
