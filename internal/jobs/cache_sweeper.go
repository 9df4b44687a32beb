package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper は期限切れエントリを削除して件数を返すもの (*cache.Cache が満たす)
type Sweeper interface {
	Sweep() int
	Len() int
}

// CacheSweeper は一定間隔でキャッシュの期限切れエントリを削除します。
type CacheSweeper struct {
	scheduler *gocron.Scheduler
	target    Sweeper
	interval  time.Duration
	logger    *slog.Logger
}

func NewCacheSweeper(target Sweeper, interval time.Duration, logger *slog.Logger) *CacheSweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheSweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		target:    target,
		interval:  interval,
		logger:    logger.With(slog.String("job", "cache_sweeper")),
	}
}

// Start はジョブを登録して非同期で開始します。初回はすぐに実行される。
func (s *CacheSweeper) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("cache sweep interval must be positive: %s", s.interval)
	}
	if _, err := s.scheduler.Every(s.interval).Do(func() { s.RunOnce() }); err != nil {
		return fmt.Errorf("schedule cache sweep: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("Cache sweeper started", slog.Duration("interval", s.interval))
	return nil
}

func (s *CacheSweeper) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Cache sweeper stopped")
}

// RunOnce は1回だけ掃除します。
func (s *CacheSweeper) RunOnce() int {
	n := s.target.Sweep()
	if n > 0 {
		s.logger.Debug("Swept expired cache entries", slog.Int("removed", n), slog.Int("remaining", s.target.Len()))
	}
	return n
}
