// internal/model/profile.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserProfile は学習者の設定 (現在のコース、復習間隔、準備開始日など)
type UserProfile struct {
	UserID               string                   `gorm:"type:varchar(128);primaryKey" json:"user_id"`
	DisplayName          string                   `json:"display_name"`
	CurrentCourseID      string                   `gorm:"type:varchar(128)" json:"current_course_id"`
	RevisionIntervals    datatypes.JSONSlice[int] `json:"revision_intervals"`
	PreparationStartDate *time.Time               `json:"preparation_start_date"`
	ExamDate             *time.Time               `json:"exam_date"`
	DailyGoalMinutes     int                      `gorm:"not null" json:"daily_goal_minutes"`
	CreatedAt            time.Time                `json:"created_at"`
	UpdatedAt            time.Time                `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// UpdateProfileRequest はプロフィール更新リクエストDTO (nil は変更なし)
type UpdateProfileRequest struct {
	DisplayName          *string    `json:"display_name,omitempty" validate:"omitempty,max=100"`
	CurrentCourseID      *string    `json:"current_course_id,omitempty" validate:"omitempty,max=128"`
	RevisionIntervals    []int      `json:"revision_intervals,omitempty" validate:"omitempty,min=1,max=20,dive,min=1,max=365"`
	PreparationStartDate *time.Time `json:"preparation_start_date,omitempty"`
	ExamDate             *time.Time `json:"exam_date,omitempty"`
	DailyGoalMinutes     *int       `json:"daily_goal_minutes,omitempty" validate:"omitempty,min=0,max=1440"`
}

func (r *UpdateProfileRequest) Apply(p *UserProfile) {
	if r.DisplayName != nil {
		p.DisplayName = *r.DisplayName
	}
	if r.CurrentCourseID != nil {
		p.CurrentCourseID = *r.CurrentCourseID
	}
	if r.RevisionIntervals != nil {
		p.RevisionIntervals = append(datatypes.JSONSlice[int]{}, r.RevisionIntervals...)
	}
	if r.PreparationStartDate != nil {
		t := *r.PreparationStartDate
		p.PreparationStartDate = &t
	}
	if r.ExamDate != nil {
		t := *r.ExamDate
		p.ExamDate = &t
	}
	if r.DailyGoalMinutes != nil {
		p.DailyGoalMinutes = *r.DailyGoalMinutes
	}
}
