package service

import (
	"context"
	"errors"

	"study_keep/internal/cache"
	"study_keep/internal/config"
	"study_keep/internal/middleware"
	"study_keep/internal/model"
	"study_keep/internal/repository"
	"study_keep/internal/srs"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.UserProfile, error)
}

// profileLoader はプロフィールをキャッシュ経由で読みます。
// 復習間隔、準備開始日、現在のコースを参照するサービスで共有する。
type profileLoader struct {
	db    *gorm.DB
	repo  repository.ProfileRepository
	cache *cache.Cache
	cfg   *config.Config
}

func profileKey(userID string) cache.Key {
	return cache.Key{Kind: cache.KindProfile, UserID: userID}
}

// defaultProfile は未保存ユーザー用のプロフィール (保存はしない)
func (l *profileLoader) defaultProfile(userID string) *model.UserProfile {
	intervals := srs.DefaultIntervals
	if l.cfg != nil && len(l.cfg.App.RevisionIntervals) > 0 {
		intervals = l.cfg.App.RevisionIntervals
	}
	return &model.UserProfile{
		UserID:            userID,
		RevisionIntervals: append(datatypes.JSONSlice[int]{}, intervals...),
	}
}

// load はキャッシュ済みのプロフィールを返します。戻り値は書き換えないこと。
func (l *profileLoader) load(ctx context.Context, userID string) (*model.UserProfile, error) {
	return cache.Load(l.cache, profileKey(userID), func() (*model.UserProfile, error) {
		profile, err := l.repo.Find(ctx, l.db, userID)
		if errors.Is(err, model.ErrNotFound) {
			return l.defaultProfile(userID), nil
		}
		return profile, err
	})
}

// resolve はリクエストのコースIDから保存場所を決めます。
// 空ならプロフィールの現在のコース、それもなければ legacy。
func (l *profileLoader) resolve(ctx context.Context, userID, courseID string) (model.Location, error) {
	if courseID != "" {
		return model.ResolveLocation(userID, courseID), nil
	}
	profile, err := l.load(ctx, userID)
	if err != nil {
		return model.Location{}, err
	}
	return model.ResolveLocation(userID, profile.CurrentCourseID), nil
}

// intervals はプロフィールの復習間隔 (不正ならデフォルト) を返します。
func (l *profileLoader) intervals(profile *model.UserProfile) []int {
	if profile != nil && len(profile.RevisionIntervals) > 0 {
		return srs.NormalizeIntervals(profile.RevisionIntervals)
	}
	if l.cfg != nil {
		return srs.NormalizeIntervals(l.cfg.App.RevisionIntervals)
	}
	return srs.DefaultIntervals
}

type profileService struct {
	profiles *profileLoader
}

func NewProfileService(db *gorm.DB, profileRepo repository.ProfileRepository, c *cache.Cache, cfg *config.Config) ProfileService {
	return &profileService{
		profiles: &profileLoader{db: db, repo: profileRepo, cache: c, cfg: cfg},
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	profile, err := s.profiles.load(ctx, userID)
	if err != nil {
		logger.Error("Failed to load profile", "error", err)
		return nil, model.NewInternalError("プロフィールの取得に失敗しました。", err)
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	var updated *model.UserProfile
	var courseChanged bool
	err := s.profiles.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.profiles.repo.Find(ctx, tx, userID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding profile in transaction", "error", err)
			return model.NewInternalError("プロフィールの確認中にエラーが発生しました。", err)
		}
		if profile == nil {
			profile = s.profiles.defaultProfile(userID)
		}

		prevCourse := profile.CurrentCourseID
		req.Apply(profile)
		if profile.PreparationStartDate != nil {
			t := profile.PreparationStartDate.UTC()
			profile.PreparationStartDate = &t
		}
		if profile.ExamDate != nil {
			t := profile.ExamDate.UTC()
			profile.ExamDate = &t
		}
		if profile.RevisionIntervals == nil {
			profile.RevisionIntervals = datatypes.JSONSlice[int]{}
		}
		courseChanged = prevCourse != profile.CurrentCourseID

		if err := s.profiles.repo.Save(ctx, tx, profile); err != nil {
			logger.Error("Error saving profile", "error", err)
			return model.NewInternalError("プロフィールの保存に失敗しました。", err)
		}
		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	if courseChanged {
		// コースが変わると legacy/コースの解決結果が変わるので全て捨てる
		n := s.profiles.cache.InvalidateUser(userID)
		logger.Info("Current course changed, invalidated user cache", "course_id", updated.CurrentCourseID, "entries", n)
	} else {
		s.profiles.cache.Invalidate(profileKey(userID))
	}

	logger.Info("Profile updated")
	return updated, nil
}
