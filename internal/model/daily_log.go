// internal/model/daily_log.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout は日次ログのキーに使う日付形式
const DateLayout = "2006-01-02"

type HealthMetrics struct {
	SleepHours      float64 `json:"sleep_hours" validate:"min=0,max=24"`
	WaterGlasses    int     `json:"water_glasses" validate:"min=0"`
	ExerciseMinutes int     `json:"exercise_minutes" validate:"min=0"`
	EnergyLevel     int     `json:"energy_level" validate:"omitempty,min=1,max=10"`
	StressLevel     int     `json:"stress_level" validate:"omitempty,min=1,max=10"`
	Mood            string  `json:"mood,omitempty" validate:"max=50"`
}

type StudySession struct {
	TopicID       string `json:"topic_id,omitempty"`
	TopicName     string `json:"topic_name" validate:"required"`
	Minutes       int    `json:"minutes" validate:"min=0,max=1440"`
	Method        string `json:"method,omitempty"`
	Effectiveness int    `json:"effectiveness,omitempty" validate:"omitempty,min=1,max=5"`
	Distractions  int    `json:"distractions" validate:"min=0"`
}

// DailyLog は1ユーザー1日1件の学習・体調ログ。同じ日付での保存は全体上書き。
type DailyLog struct {
	UserID        string                            `gorm:"type:varchar(128);primaryKey" json:"-"`
	LogDate       string                            `gorm:"type:varchar(10);primaryKey" json:"date"`
	Health        datatypes.JSONType[HealthMetrics] `json:"health"`
	Sessions      datatypes.JSONSlice[StudySession] `json:"sessions"`
	GoalMinutes   int                               `gorm:"not null" json:"goal_minutes"`
	ActualMinutes int                               `gorm:"not null" json:"actual_minutes"`
	Wins          string                            `json:"wins"`
	Challenges    string                            `json:"challenges"`
	TomorrowPlan  string                            `json:"tomorrow_plan"`
	Reflection    string                            `json:"reflection"`
	CreatedAt     time.Time                         `json:"created_at"`
	UpdatedAt     time.Time                         `json:"updated_at"`
}

func (DailyLog) TableName() string {
	return "daily_logs"
}

// StudyMinutes はセッションの合計学習時間 (分)
func (l *DailyLog) StudyMinutes() int {
	total := 0
	for _, s := range l.Sessions {
		total += s.Minutes
	}
	return total
}

// SaveDailyLogRequest は日次ログ保存のリクエストDTO
type SaveDailyLogRequest struct {
	Date          string         `json:"date" validate:"required,datetime=2006-01-02"`
	Health        HealthMetrics  `json:"health"`
	Sessions      []StudySession `json:"sessions" validate:"dive"`
	GoalMinutes   int            `json:"goal_minutes" validate:"min=0"`
	ActualMinutes int            `json:"actual_minutes" validate:"min=0"`
	Wins          string         `json:"wins,omitempty"`
	Challenges    string         `json:"challenges,omitempty"`
	TomorrowPlan  string         `json:"tomorrow_plan,omitempty"`
	Reflection    string         `json:"reflection,omitempty"`
}

func (r *SaveDailyLogRequest) ToDailyLog(userID string) *DailyLog {
	sessions := make(datatypes.JSONSlice[StudySession], 0, len(r.Sessions))
	sessions = append(sessions, r.Sessions...)
	return &DailyLog{
		UserID:        userID,
		LogDate:       r.Date,
		Health:        datatypes.NewJSONType(r.Health),
		Sessions:      sessions,
		GoalMinutes:   r.GoalMinutes,
		ActualMinutes: r.ActualMinutes,
		Wins:          r.Wins,
		Challenges:    r.Challenges,
		TomorrowPlan:  r.TomorrowPlan,
		Reflection:    r.Reflection,
	}
}
