package service

import (
	"context"
	"errors"
	"math"
	"time"

	"study_keep/internal/cache"
	"study_keep/internal/config"
	"study_keep/internal/middleware"
	"study_keep/internal/model"
	"study_keep/internal/repository"

	"gorm.io/gorm"
)

// mockScoreWeight は模試スコアを習熟度に反映するときの重み
const mockScoreWeight = 0.3

type ProgressService interface {
	GetTopicProgress(ctx context.Context, userID, topicID, courseID string) (*model.TopicProgress, error)
	UpdateTopicProgress(ctx context.Context, userID, topicID string, patch *model.ProgressPatch, courseID string) (*model.TopicProgress, error)
	GetAllProgress(ctx context.Context, userID, courseID string) ([]*model.TopicProgress, error)
	RecordPractice(ctx context.Context, userID, topicID string, req *model.PracticeRequest, courseID string) (*model.TopicProgress, error)
	ApplyMockTestScore(ctx context.Context, userID, topicID string, score int, courseID string) (*model.TopicProgress, error)
	RequestReview(ctx context.Context, userID, topicID, courseID string) (*model.TopicProgress, error)
}

type progressService struct {
	store    *progressStore
	profiles *profileLoader
}

func NewProgressService(db *gorm.DB, progRepo repository.ProgressRepository, profileRepo repository.ProfileRepository, c *cache.Cache, cfg *config.Config) ProgressService {
	return &progressService{
		store:    &progressStore{db: db, repo: progRepo, cache: c, now: time.Now},
		profiles: &profileLoader{db: db, repo: profileRepo, cache: c, cfg: cfg},
	}
}

func (s *progressService) location(ctx context.Context, userID, courseID string) (model.Location, error) {
	loc, err := s.profiles.resolve(ctx, userID, courseID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to resolve storage location", "user_id", userID, "error", err)
		return model.Location{}, model.NewInternalError("保存先の解決に失敗しました。", err)
	}
	return loc, nil
}

// GetTopicProgress は未作成のトピックに対して (nil, nil) を返します。
func (s *progressService) GetTopicProgress(ctx context.Context, userID, topicID, courseID string) (*model.TopicProgress, error) {
	loc, err := s.location(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	progress, err := s.store.repo.Find(ctx, s.store.db, loc, topicID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		middleware.GetLogger(ctx).Error("Failed to find progress", "user_id", userID, "topic_id", topicID, "error", err)
		return nil, model.NewInternalError("学習進捗の取得に失敗しました。", err)
	}
	return progress, nil
}

func (s *progressService) UpdateTopicProgress(ctx context.Context, userID, topicID string, patch *model.ProgressPatch, courseID string) (*model.TopicProgress, error) {
	loc, err := s.location(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	progress, err := s.store.mutate(ctx, loc, topicID, func(p *model.TopicProgress) error {
		patch.Apply(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	middleware.GetLogger(ctx).Info("Topic progress updated", "user_id", userID, "scope", loc.Scope, "topic_id", topicID)
	return progress, nil
}

func (s *progressService) GetAllProgress(ctx context.Context, userID, courseID string) ([]*model.TopicProgress, error) {
	loc, err := s.location(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	progresses, err := s.store.listAll(ctx, loc)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list progress", "user_id", userID, "scope", loc.Scope, "error", err)
		return nil, model.NewInternalError("学習進捗の取得に失敗しました。", err)
	}
	return progresses, nil
}

// RecordPractice は演習結果を積み上げます。解いた問題は重複なしで追加。
func (s *progressService) RecordPractice(ctx context.Context, userID, topicID string, req *model.PracticeRequest, courseID string) (*model.TopicProgress, error) {
	loc, err := s.location(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return s.store.mutate(ctx, loc, topicID, func(p *model.TopicProgress) error {
		seen := make(map[string]struct{}, len(p.SolvedQuestions))
		for _, q := range p.SolvedQuestions {
			seen[q] = struct{}{}
		}
		for _, q := range req.QuestionIDs {
			if _, ok := seen[q]; ok {
				continue
			}
			seen[q] = struct{}{}
			p.SolvedQuestions = append(p.SolvedQuestions, q)
		}
		p.PracticeCount++
		p.TotalStudyTime += req.Minutes
		if p.Status == model.StatusNotStarted {
			p.Status = model.StatusInProgress
		}
		return nil
	})
}

func (s *progressService) ApplyMockTestScore(ctx context.Context, userID, topicID string, score int, courseID string) (*model.TopicProgress, error) {
	if score < model.MinMasteryScore || score > model.MaxMasteryScore {
		return nil, model.NewInvalidInputError("スコアは0から100の範囲で指定してください。", "score")
	}
	loc, err := s.location(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return s.store.mutate(ctx, loc, topicID, func(p *model.TopicProgress) error {
		p.MasteryScore = blendMastery(p.MasteryScore, score)
		return nil
	})
}

// blendMastery = round(0.7 × old + 0.3 × score)、0〜100に丸める
func blendMastery(old, score int) int {
	v := int(math.Round((1-mockScoreWeight)*float64(old) + mockScoreWeight*float64(score)))
	if v < model.MinMasteryScore {
		return model.MinMasteryScore
	}
	if v > model.MaxMasteryScore {
		return model.MaxMasteryScore
	}
	return v
}

func (s *progressService) RequestReview(ctx context.Context, userID, topicID, courseID string) (*model.TopicProgress, error) {
	loc, err := s.location(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return s.store.mutate(ctx, loc, topicID, func(p *model.TopicProgress) error {
		now := s.store.clock()
		p.NeedsReview = true
		p.ReviewRequestedAt = &now
		return nil
	})
}
