package service

import (
	"context"
	"errors"
	"time"

	"study_keep/internal/cache"
	"study_keep/internal/middleware"
	"study_keep/internal/model"
	"study_keep/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// progressStore はトピック進捗の読み書きをまとめたものです。
// ProgressService と RevisionService で共有します。
type progressStore struct {
	db    *gorm.DB
	repo  repository.ProgressRepository
	cache *cache.Cache
	now   func() time.Time
}

func progressKey(loc model.Location) cache.Key {
	return cache.Key{Kind: cache.KindProgress, UserID: loc.UserID, Scope: loc.Scope}
}

func (s *progressStore) clock() time.Time {
	return s.now().UTC()
}

// listAll はキャッシュ経由で全進捗を返します。戻り値は書き換えないこと。
func (s *progressStore) listAll(ctx context.Context, loc model.Location) ([]*model.TopicProgress, error) {
	return cache.Load(s.cache, progressKey(loc), func() ([]*model.TopicProgress, error) {
		return s.repo.ListAll(ctx, s.db, loc)
	})
}

// mutate は1件の進捗を read-modify-write します。
// 存在しなければデフォルト値から作成し、不変条件を検証してから保存、最後にキャッシュを無効化する。
func (s *progressStore) mutate(ctx context.Context, loc model.Location, topicID string, fn func(p *model.TopicProgress) error) (*model.TopicProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", loc.UserID, "scope", loc.Scope, "topic_id", topicID)

	var saved *model.TopicProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := s.repo.Find(ctx, tx, loc, topicID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding progress in transaction", "error", err)
			return model.NewInternalError("学習進捗の確認中にエラーが発生しました。", err)
		}
		prevCount := 0
		if progress == nil {
			logger.Debug("Progress not found, starting from defaults")
			progress = model.NewTopicProgress(loc, topicID)
		} else {
			prevCount = progress.RevisionCount
		}

		if err := fn(progress); err != nil {
			return err
		}
		normalizeProgress(progress)
		if err := validateProgress(progress, prevCount); err != nil {
			logger.Warn("Rejected progress update", "error", err)
			return err
		}

		if err := s.repo.Upsert(ctx, tx, progress); err != nil {
			logger.Error("Error saving progress", "error", err)
			return model.NewInternalError("学習進捗の保存に失敗しました。", err)
		}
		saved = progress
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(progressKey(loc))
	return saved, nil
}

// normalizeProgress は時刻をUTCに揃え、JSONカラムが NULL にならないようにします。
func normalizeProgress(p *model.TopicProgress) {
	for _, t := range []**time.Time{&p.LastRevised, &p.NextRevision, &p.ReviewRequestedAt} {
		if *t != nil {
			u := (*t).UTC()
			*t = &u
		}
	}
	if p.SolvedQuestions == nil {
		p.SolvedQuestions = datatypes.JSONSlice[string]{}
	}
	if p.Status == "" {
		p.Status = model.StatusNotStarted
	}
}

func validateProgress(p *model.TopicProgress, prevRevisionCount int) error {
	if p.MasteryScore < model.MinMasteryScore || p.MasteryScore > model.MaxMasteryScore {
		return model.NewInvalidInputError("習熟度は0から100の範囲で指定してください。", "mastery_score")
	}
	if p.RevisionCount < prevRevisionCount {
		return model.NewInvalidInputError("復習回数を減らすことはできません。", "revision_count")
	}
	if p.LastRevised != nil && p.NextRevision != nil && p.NextRevision.Before(*p.LastRevised) {
		return model.NewInvalidInputError("次回復習日は最終復習日より後にしてください。", "next_revision")
	}
	switch p.Status {
	case model.StatusNotStarted, model.StatusInProgress, model.StatusCompleted:
	default:
		return model.NewInvalidInputError("不正なステータスです。", "status")
	}
	return nil
}
