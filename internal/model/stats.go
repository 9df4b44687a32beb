// internal/model/stats.go
package model

import "time"

// UnifiedProgress は日次ログから積み上げるユーザー全体の統計
type UnifiedProgress struct {
	UserID                 string     `gorm:"type:varchar(128);primaryKey" json:"-"`
	TotalTimeInvested      int        `gorm:"not null" json:"total_time_invested"` // 分
	TotalMissionsCompleted int        `gorm:"not null" json:"total_missions_completed"`
	CurrentStreak          int        `gorm:"not null" json:"current_streak"`
	LongestStreak          int        `gorm:"not null" json:"longest_streak"`
	ConsistencyRating      int        `gorm:"not null" json:"consistency_rating"`
	LastUpdated            *time.Time `json:"last_updated"`
}

func (UnifiedProgress) TableName() string {
	return "unified_progress"
}
