// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "study_keep"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultAppReviewLimit = 20

	DefaultProfileTTL         = 5 * time.Minute
	DefaultSyllabusTTL        = 10 * time.Minute
	DefaultProgressTTL        = 2 * time.Minute
	DefaultNotesTTL           = 5 * time.Minute
	DefaultCacheSweepInterval = time.Minute
)

var DefaultRevisionIntervals = []int{1, 3, 7, 14, 30}
