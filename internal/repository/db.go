package repository

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"study_keep/internal/config"
	"study_keep/internal/model"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB はGORMでPostgreSQLに接続します。GORMのログは slog に流します。
func NewDB(dbCfg config.DatabaseConfig, appLogger *slog.Logger) (*gorm.DB, error) {
	// APP_ENV=dev のときはSQLもすべて出す
	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	db, err := gorm.Open(postgres.Open(dbCfg.URL), &gorm.Config{
		Logger: slogGormLogger.LogMode(gormLogLevel),
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	// コネクションプール
	sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("Database connection established with GORM")
	return db, nil
}

// AllModels はマイグレーション対象のモデル一覧 (テストの AutoMigrate 用)
func AllModels() []interface{} {
	return []interface{}{
		&model.TopicProgress{},
		&model.SyllabusSubject{},
		&model.SyllabusTopic{},
		&model.SyllabusSubtopic{},
		&model.DailyLog{},
		&model.UnifiedProgress{},
		&model.UserProfile{},
		&model.Note{},
	}
}

// AutoMigrate はモデル定義からテーブルを作ります。本番は goose の Migrate を使う。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
