// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"study_keep/internal/cache"
	"study_keep/internal/config"
	"study_keep/internal/handlers"
	"study_keep/internal/jobs"
	"study_keep/internal/middleware"
	"study_keep/internal/repository"
	"study_keep/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	// .env はあれば読む (本番では環境変数を直接渡す)
	if err := godotenv.Load(); err != nil {
		tempLogger.Info("No .env file loaded", slog.String("reason", err.Error()))
	}

	configDir := os.Getenv("CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(tempLogger)
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// 1. DB
	db, err := repository.NewDB(config.Cfg.Database, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if config.Cfg.Database.Migrate {
		if err := repository.Migrate(db); err != nil {
			slog.Error("Error running migrations", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("Database migrations applied")
	}

	// 2. キャッシュ
	appCache := cache.New(map[cache.Kind]time.Duration{
		cache.KindProfile:  config.Cfg.Cache.ProfileTTL,
		cache.KindSyllabus: config.Cfg.Cache.SyllabusTTL,
		cache.KindProgress: config.Cfg.Cache.ProgressTTL,
		cache.KindNotes:    config.Cfg.Cache.NotesTTL,
	})
	sweeper := jobs.NewCacheSweeper(appCache, config.Cfg.Cache.SweepInterval, logger)
	if err := sweeper.Start(); err != nil {
		slog.Error("Error starting cache sweeper", slog.Any("error", err))
		os.Exit(1)
	}
	defer sweeper.Stop()

	// 3. Dependency Injection
	cfg := &config.Cfg
	progressRepo := repository.NewGormProgressRepository()
	syllabusRepo := repository.NewGormSyllabusRepository()
	dailyLogRepo := repository.NewGormDailyLogRepository()
	statsRepo := repository.NewGormStatsRepository()
	profileRepo := repository.NewGormProfileRepository()
	noteRepo := repository.NewGormNoteRepository()

	progressService := service.NewProgressService(db, progressRepo, profileRepo, appCache, cfg)
	revisionService := service.NewRevisionService(db, progressRepo, syllabusRepo, profileRepo, appCache, cfg)
	syllabusService := service.NewSyllabusService(db, syllabusRepo, profileRepo, appCache, cfg)
	dailyLogService := service.NewDailyLogService(db, dailyLogRepo, statsRepo, cfg)
	profileService := service.NewProfileService(db, profileRepo, appCache, cfg)
	noteService := service.NewNoteService(db, noteRepo, profileRepo, appCache, cfg)

	h := &handlers.Handlers{
		Progress: handlers.NewProgressHandler(progressService),
		Revision: handlers.NewRevisionHandler(revisionService),
		Syllabus: handlers.NewSyllabusHandler(syllabusService),
		DailyLog: handlers.NewDailyLogHandler(dailyLogService),
		Profile:  handlers.NewProfileHandler(profileService),
		Note:     handlers.NewNoteHandler(noteService),
		Health:   handlers.NewHealthHandler(sqlDB),
	}

	// 4. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	handlers.RegisterRoutes(r, h)

	// 5. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// newLogger は設定のログレベルと APP_ENV に応じたロガーを作ります (dev は tint、それ以外は JSON)。
func newLogger(tempLogger *slog.Logger) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		tempLogger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	return slog.New(handler)
}
