package service

import (
	"sync"
	"testing"
	"time"

	"study_keep/internal/cache"
	"study_keep/internal/config"
	"study_keep/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testClock はテストで進められる時計
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{now: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// testEnv は実リポジトリ + インメモリSQLite + 共有キャッシュの組み合わせ
type testEnv struct {
	db    *gorm.DB
	cache *cache.Cache
	clock *testClock
	cfg   *config.Config

	progRepo     repository.ProgressRepository
	syllabusRepo repository.SyllabusRepository
	profileRepo  repository.ProfileRepository
	logRepo      repository.DailyLogRepository
	statsRepo    repository.StatsRepository
	noteRepo     repository.NoteRepository
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newTestEnv(t *testing.T, start time.Time) *testEnv {
	t.Helper()
	clock := newTestClock(start)
	cfg := &config.Config{
		App: config.AppConfig{
			ReviewLimit:       20,
			Timezone:          "UTC",
			RevisionIntervals: []int{1, 3, 7, 14, 30},
		},
	}
	return &testEnv{
		db:           setupTestDB(t),
		cache:        cache.New(cache.DefaultTTLs(), cache.WithClock(clock.Now)),
		clock:        clock,
		cfg:          cfg,
		progRepo:     repository.NewGormProgressRepository(),
		syllabusRepo: repository.NewGormSyllabusRepository(),
		profileRepo:  repository.NewGormProfileRepository(),
		logRepo:      repository.NewGormDailyLogRepository(),
		statsRepo:    repository.NewGormStatsRepository(),
		noteRepo:     repository.NewGormNoteRepository(),
	}
}

func (e *testEnv) progressService() *progressService {
	svc := NewProgressService(e.db, e.progRepo, e.profileRepo, e.cache, e.cfg).(*progressService)
	svc.store.now = e.clock.Now
	return svc
}

func (e *testEnv) revisionService() *revisionService {
	svc := NewRevisionService(e.db, e.progRepo, e.syllabusRepo, e.profileRepo, e.cache, e.cfg).(*revisionService)
	svc.store.now = e.clock.Now
	return svc
}

func (e *testEnv) syllabusService() SyllabusService {
	return NewSyllabusService(e.db, e.syllabusRepo, e.profileRepo, e.cache, e.cfg)
}

func (e *testEnv) profileService() ProfileService {
	return NewProfileService(e.db, e.profileRepo, e.cache, e.cfg)
}

func (e *testEnv) dailyLogService() *dailyLogService {
	svc := NewDailyLogService(e.db, e.logRepo, e.statsRepo, e.cfg).(*dailyLogService)
	svc.now = e.clock.Now
	return svc
}

func (e *testEnv) noteService() *noteService {
	svc := NewNoteService(e.db, e.noteRepo, e.profileRepo, e.cache, e.cfg).(*noteService)
	svc.now = e.clock.Now
	return svc
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func timePtr(t time.Time) *time.Time { return &t }
