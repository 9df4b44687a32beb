package service

import (
	"context"
	"sort"
	"time"

	"study_keep/internal/cache"
	"study_keep/internal/config"
	"study_keep/internal/middleware"
	"study_keep/internal/model"
	"study_keep/internal/repository"
	"study_keep/internal/srs"

	"gorm.io/gorm"
)

type RevisionService interface {
	GetRevisionQueue(ctx context.Context, userID, courseID string) ([]*model.RevisionItem, error)
	GetRevisionView(ctx context.Context, userID, courseID string) ([]*model.RevisionItem, error)
	MarkReviewed(ctx context.Context, userID, topicID, courseID string) (*model.TopicProgress, error)
}

type revisionService struct {
	store    *progressStore
	syllabi  *syllabusLoader
	profiles *profileLoader
	cfg      *config.Config
}

func NewRevisionService(
	db *gorm.DB,
	progRepo repository.ProgressRepository,
	syllabusRepo repository.SyllabusRepository,
	profileRepo repository.ProfileRepository,
	c *cache.Cache,
	cfg *config.Config,
) RevisionService {
	return &revisionService{
		store:    &progressStore{db: db, repo: progRepo, cache: c, now: time.Now},
		syllabi:  &syllabusLoader{db: db, repo: syllabusRepo, cache: c},
		profiles: &profileLoader{db: db, repo: profileRepo, cache: c, cfg: cfg},
		cfg:      cfg,
	}
}

func (s *revisionService) reviewLimit() int {
	if s.cfg == nil || s.cfg.App.ReviewLimit <= 0 {
		return config.DefaultAppReviewLimit
	}
	return s.cfg.App.ReviewLimit
}

// topicIndex はシラバスの索引を返します。シラバスが読めなくてもキューは返す (トピック名なしで表示)。
func (s *revisionService) topicIndex(ctx context.Context, loc model.Location) map[string]model.TopicMeta {
	syllabus, err := s.syllabi.load(ctx, loc)
	if err != nil {
		middleware.GetLogger(ctx).Warn("Failed to load syllabus for revision items, continuing without topic names",
			"user_id", loc.UserID, "scope", loc.Scope, "error", err)
		return map[string]model.TopicMeta{}
	}
	return syllabus.TopicIndex()
}

// GetRevisionQueue は復習期限が来たトピックを次回復習日の古い順に返します。
// 準備開始日より前に復習した記録は対象外。
func (s *revisionService) GetRevisionQueue(ctx context.Context, userID, courseID string) ([]*model.RevisionItem, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	profile, err := s.profiles.load(ctx, userID)
	if err != nil {
		logger.Error("Failed to load profile", "error", err)
		return nil, model.NewInternalError("プロフィールの取得に失敗しました。", err)
	}
	loc, err := s.profiles.resolve(ctx, userID, courseID)
	if err != nil {
		logger.Error("Failed to resolve storage location", "error", err)
		return nil, model.NewInternalError("保存先の解決に失敗しました。", err)
	}

	now := s.store.clock()
	due, err := s.store.repo.FindDue(ctx, s.store.db, loc, now, profile.PreparationStartDate, s.reviewLimit())
	if err != nil {
		logger.Error("Failed to find due topics from repository", "scope", loc.Scope, "error", err)
		return nil, model.NewInternalError("復習対象の取得に失敗しました。", err)
	}

	index := s.topicIndex(ctx, loc)
	items := make([]*model.RevisionItem, 0, len(due))
	for _, p := range due {
		view := srs.ApplyPreparationCutoff(p, profile.PreparationStartDate)
		meta, found := index[view.TopicID]
		if !found {
			logger.Debug("Due topic is not in the syllabus", "topic_id", view.TopicID)
		}
		items = append(items, srs.BuildItem(view, meta, found, srs.Classify(view.LastRevised, now), now))
	}

	logger.Info("Successfully retrieved revision queue", "scope", loc.Scope, "count", len(items))
	return items, nil
}

// GetRevisionView は準備開始日より前の記録を除外した上で全トピックを分類して返します。
// 次回復習日の昇順、未設定は最後。
func (s *revisionService) GetRevisionView(ctx context.Context, userID, courseID string) ([]*model.RevisionItem, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	profile, err := s.profiles.load(ctx, userID)
	if err != nil {
		logger.Error("Failed to load profile", "error", err)
		return nil, model.NewInternalError("プロフィールの取得に失敗しました。", err)
	}
	loc, err := s.profiles.resolve(ctx, userID, courseID)
	if err != nil {
		logger.Error("Failed to resolve storage location", "error", err)
		return nil, model.NewInternalError("保存先の解決に失敗しました。", err)
	}

	progresses, err := s.store.listAll(ctx, loc)
	if err != nil {
		logger.Error("Failed to list progress", "scope", loc.Scope, "error", err)
		return nil, model.NewInternalError("学習進捗の取得に失敗しました。", err)
	}

	now := s.store.clock()
	index := s.topicIndex(ctx, loc)
	items := make([]*model.RevisionItem, 0, len(progresses))
	for _, p := range progresses {
		view := srs.ApplyPreparationCutoff(p, profile.PreparationStartDate)
		meta, found := index[view.TopicID]
		items = append(items, srs.BuildItem(view, meta, found, srs.ClassifyView(view, now), now))
	}
	sortByNextRevision(items)
	return items, nil
}

func sortByNextRevision(items []*model.RevisionItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].NextRevision, items[j].NextRevision
		switch {
		case a == nil && b == nil:
			return items[i].TopicID < items[j].TopicID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return items[i].TopicID < items[j].TopicID
		default:
			return a.Before(*b)
		}
	})
}

// MarkReviewed はトピックを復習済みにし、プロフィールの復習間隔で次回復習日を決めます。
func (s *revisionService) MarkReviewed(ctx context.Context, userID, topicID, courseID string) (*model.TopicProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "topic_id", topicID)

	profile, err := s.profiles.load(ctx, userID)
	if err != nil {
		logger.Error("Failed to load profile", "error", err)
		return nil, model.NewInternalError("プロフィールの取得に失敗しました。", err)
	}
	loc, err := s.profiles.resolve(ctx, userID, courseID)
	if err != nil {
		logger.Error("Failed to resolve storage location", "error", err)
		return nil, model.NewInternalError("保存先の解決に失敗しました。", err)
	}
	intervals := s.profiles.intervals(profile)

	progress, err := s.store.mutate(ctx, loc, topicID, func(p *model.TopicProgress) error {
		srs.MarkReviewed(p, intervals, s.store.clock())
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Topic marked as reviewed", "scope", loc.Scope, "revision_count", progress.RevisionCount, "next_revision", progress.NextRevision)
	return progress, nil
}
