package service

import (
	"context"
	"errors"
	"time"

	"study_keep/internal/cache"
	"study_keep/internal/config"
	"study_keep/internal/middleware"
	"study_keep/internal/model"
	"study_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteService interface {
	ListNotes(ctx context.Context, userID, courseID string) ([]*model.Note, error)
	AddNote(ctx context.Context, userID, courseID string, req *model.CreateNoteRequest) (*model.Note, error)
	DeleteNote(ctx context.Context, userID string, noteID uuid.UUID) error
}

type noteService struct {
	db       *gorm.DB
	noteRepo repository.NoteRepository
	cache    *cache.Cache
	profiles *profileLoader
	now      func() time.Time
}

func NewNoteService(db *gorm.DB, noteRepo repository.NoteRepository, profileRepo repository.ProfileRepository, c *cache.Cache, cfg *config.Config) NoteService {
	return &noteService{
		db:       db,
		noteRepo: noteRepo,
		cache:    c,
		profiles: &profileLoader{db: db, repo: profileRepo, cache: c, cfg: cfg},
		now:      time.Now,
	}
}

func notesKey(loc model.Location) cache.Key {
	return cache.Key{Kind: cache.KindNotes, UserID: loc.UserID, Scope: loc.Scope}
}

func (s *noteService) ListNotes(ctx context.Context, userID, courseID string) ([]*model.Note, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	loc, err := s.profiles.resolve(ctx, userID, courseID)
	if err != nil {
		logger.Error("Failed to resolve storage location", "error", err)
		return nil, model.NewInternalError("保存先の解決に失敗しました。", err)
	}
	notes, err := cache.Load(s.cache, notesKey(loc), func() ([]*model.Note, error) {
		return s.noteRepo.ListByLocation(ctx, s.db, loc)
	})
	if err != nil {
		logger.Error("Failed to list notes", "scope", loc.Scope, "error", err)
		return nil, model.NewInternalError("ノートの取得に失敗しました。", err)
	}
	return notes, nil
}

// AddNote はノートのメタデータを登録します。ファイル本体のアップロードは呼び出し側の責務。
func (s *noteService) AddNote(ctx context.Context, userID, courseID string, req *model.CreateNoteRequest) (*model.Note, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	loc, err := s.profiles.resolve(ctx, userID, courseID)
	if err != nil {
		logger.Error("Failed to resolve storage location", "error", err)
		return nil, model.NewInternalError("保存先の解決に失敗しました。", err)
	}

	note := &model.Note{
		NoteID:    uuid.New(),
		UserID:    userID,
		Scope:     loc.Scope,
		Title:     req.Title,
		FileURL:   req.FileURL,
		SizeBytes: req.SizeBytes,
		SubjectID: req.SubjectID,
		TopicID:   req.TopicID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.noteRepo.Create(ctx, s.db, note); err != nil {
		if errors.Is(err, model.ErrConflict) {
			logger.Warn("Duplicate note id on create", "note_id", note.NoteID)
			return nil, model.NewAppError("CONFLICT", "同じIDのノートが既に存在します。", "note_id", model.ErrConflict)
		}
		logger.Error("Failed to create note", "error", err)
		return nil, model.NewInternalError("ノートの登録に失敗しました。", err)
	}
	s.cache.InvalidateUser(userID)

	logger.Info("Note added", "note_id", note.NoteID, "scope", loc.Scope)
	return note, nil
}

func (s *noteService) DeleteNote(ctx context.Context, userID string, noteID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "note_id", noteID)

	if err := s.noteRepo.Delete(ctx, s.db, userID, noteID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Note not found for deletion")
			return model.NewNotFoundError("ノートが見つかりません。")
		}
		logger.Error("Failed to delete note", "error", err)
		return model.NewInternalError("ノートの削除に失敗しました。", err)
	}
	s.cache.InvalidateUser(userID)

	logger.Info("Note deleted")
	return nil
}
