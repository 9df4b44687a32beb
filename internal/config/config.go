// internal/config/config.go
package config

import (
	"log"
	"time"
	_ "time/tzdata" // コンテナにtzdataがない場合でもタイムゾーンを読めるように

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	Migrate      bool   `mapstructure:"migrate"` // 起動時に goose でマイグレーションを実行
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AppConfig struct {
	ReviewLimit       int    `mapstructure:"review_limit"`
	Timezone          string `mapstructure:"timezone"`
	RevisionIntervals []int  `mapstructure:"revision_intervals"`
}

// Location は暦日の判定に使うタイムゾーンを返します。読み込めなければUTC。
func (a AppConfig) Location() *time.Location {
	if a.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		log.Printf("Warning: invalid timezone %q, using UTC: %v", a.Timezone, err)
		return time.UTC
	}
	return loc
}

type CacheConfig struct {
	ProfileTTL    time.Duration `mapstructure:"profile_ttl"`
	SyllabusTTL   time.Duration `mapstructure:"syllabus_ttl"`
	ProgressTTL   time.Duration `mapstructure:"progress_ttl"`
	NotesTTL      time.Duration `mapstructure:"notes_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	App      AppConfig      `mapstructure:"app"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

var Cfg Config

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 環境変数 (例: APP_DATABASE_URL) で上書き可能
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.BindEnv("database.url", "DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}
	cfg.ApplyDefaults()
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Review Limit: %d", Cfg.App.ReviewLimit)
	log.Printf("Timezone: %s", Cfg.App.Location())
	return nil
}

// ApplyDefaults は未設定の値にデフォルトを入れます。
func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		c.Server.Port = DefaultServerPort
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.App.ReviewLimit <= 0 {
		log.Printf("App review limit not set or invalid, using default '%d'", DefaultAppReviewLimit)
		c.App.ReviewLimit = DefaultAppReviewLimit
	}
	if len(c.App.RevisionIntervals) == 0 {
		c.App.RevisionIntervals = append([]int{}, DefaultRevisionIntervals...)
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = 10
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 100
	}
	if c.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if c.Cache.ProfileTTL <= 0 {
		c.Cache.ProfileTTL = DefaultProfileTTL
	}
	if c.Cache.SyllabusTTL <= 0 {
		c.Cache.SyllabusTTL = DefaultSyllabusTTL
	}
	if c.Cache.ProgressTTL <= 0 {
		c.Cache.ProgressTTL = DefaultProgressTTL
	}
	if c.Cache.NotesTTL <= 0 {
		c.Cache.NotesTTL = DefaultNotesTTL
	}
	if c.Cache.SweepInterval <= 0 {
		c.Cache.SweepInterval = DefaultCacheSweepInterval
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Content-Type", "X-User-ID", "X-Request-ID"}
	}
}
