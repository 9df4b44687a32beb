package service

import (
	"context"
	"errors"
	"time"

	"study_keep/internal/config"
	"study_keep/internal/middleware"
	"study_keep/internal/model"
	"study_keep/internal/repository"
	"study_keep/internal/stats"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DailyLogService interface {
	SaveDailyLog(ctx context.Context, userID string, req *model.SaveDailyLogRequest) (*model.DailyLog, error)
	GetDailyLog(ctx context.Context, userID, date string) (*model.DailyLog, error)
	ListDailyLogs(ctx context.Context, userID, from, to string) ([]*model.DailyLog, error)
	GetUnifiedProgress(ctx context.Context, userID string) (*model.UnifiedProgress, error)
}

type dailyLogService struct {
	db        *gorm.DB
	logRepo   repository.DailyLogRepository
	statsRepo repository.StatsRepository
	loc       *time.Location
	now       func() time.Time
}

func NewDailyLogService(db *gorm.DB, logRepo repository.DailyLogRepository, statsRepo repository.StatsRepository, cfg *config.Config) DailyLogService {
	loc := time.UTC
	if cfg != nil {
		loc = cfg.App.Location()
	}
	return &dailyLogService{
		db:        db,
		logRepo:   logRepo,
		statsRepo: statsRepo,
		loc:       loc,
		now:       time.Now,
	}
}

// SaveDailyLog は日付単位で上書き保存し、その後に統計を積み上げます。
// 統計の更新に失敗してもログの保存は成功として返す。
func (s *dailyLogService) SaveDailyLog(ctx context.Context, userID string, req *model.SaveDailyLogRequest) (*model.DailyLog, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "date", req.Date)

	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		return nil, model.NewInvalidInputError("日付は YYYY-MM-DD 形式で指定してください。", "date")
	}

	dailyLog := req.ToDailyLog(userID)
	if dailyLog.Sessions == nil {
		dailyLog.Sessions = datatypes.JSONSlice[model.StudySession]{}
	}
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.logRepo.Save(ctx, tx, dailyLog)
	}); err != nil {
		logger.Error("Failed to save daily log", "error", err)
		return nil, model.NewInternalError("日次ログの保存に失敗しました。", err)
	}
	logger.Info("Daily log saved", "sessions", len(dailyLog.Sessions))

	if err := s.aggregate(ctx, userID, dailyLog.StudyMinutes()); err != nil {
		logger.Error("Failed to update unified progress, ignoring", "error", err)
	}
	return dailyLog, nil
}

func (s *dailyLogService) aggregate(ctx context.Context, userID string, studyMinutes int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.statsRepo.EnsureRow(ctx, tx, userID); err != nil {
			return err
		}
		cur, err := s.statsRepo.FindForUpdate(ctx, tx, userID)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				return err
			}
			cur = &model.UnifiedProgress{UserID: userID}
		}
		next := stats.Fold(*cur, studyMinutes, s.now(), s.loc)
		if next.LastUpdated != nil {
			t := next.LastUpdated.UTC()
			next.LastUpdated = &t
		}
		return s.statsRepo.Save(ctx, tx, &next)
	})
}

func (s *dailyLogService) GetDailyLog(ctx context.Context, userID, date string) (*model.DailyLog, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "date", date)

	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, model.NewInvalidInputError("日付は YYYY-MM-DD 形式で指定してください。", "date")
	}
	dailyLog, err := s.logRepo.FindByDate(ctx, s.db, userID, date)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewNotFoundError("指定した日付の日次ログが見つかりません。")
		}
		logger.Error("Failed to find daily log", "error", err)
		return nil, model.NewInternalError("日次ログの取得に失敗しました。", err)
	}
	return dailyLog, nil
}

func (s *dailyLogService) ListDailyLogs(ctx context.Context, userID, from, to string) ([]*model.DailyLog, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	fromDate, err := time.Parse(model.DateLayout, from)
	if err != nil {
		return nil, model.NewInvalidInputError("from は YYYY-MM-DD 形式で指定してください。", "from")
	}
	toDate, err := time.Parse(model.DateLayout, to)
	if err != nil {
		return nil, model.NewInvalidInputError("to は YYYY-MM-DD 形式で指定してください。", "to")
	}
	if toDate.Before(fromDate) {
		return nil, model.NewInvalidInputError("to は from 以降の日付を指定してください。", "to")
	}

	logs, err := s.logRepo.ListRange(ctx, s.db, userID, from, to)
	if err != nil {
		logger.Error("Failed to list daily logs", "from", from, "to", to, "error", err)
		return nil, model.NewInternalError("日次ログの取得に失敗しました。", err)
	}
	return logs, nil
}

// GetUnifiedProgress は未集計のユーザーにはゼロ値の統計を返します。
func (s *dailyLogService) GetUnifiedProgress(ctx context.Context, userID string) (*model.UnifiedProgress, error) {
	progress, err := s.statsRepo.Find(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return &model.UnifiedProgress{UserID: userID}, nil
		}
		middleware.GetLogger(ctx).Error("Failed to find unified progress", "user_id", userID, "error", err)
		return nil, model.NewInternalError("統計の取得に失敗しました。", err)
	}
	return progress, nil
}
