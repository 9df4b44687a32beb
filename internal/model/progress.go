// internal/model/progress.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

const (
	MinMasteryScore = 0
	MaxMasteryScore = 100
)

// TopicProgress はトピックごとの学習進捗を表します (ユーザー × スコープ × トピック)
type TopicProgress struct {
	UserID            string                      `gorm:"type:varchar(128);primaryKey" json:"-"`
	Scope             string                      `gorm:"type:varchar(160);primaryKey" json:"-"`
	TopicID           string                      `gorm:"type:varchar(128);primaryKey" json:"topic_id"`
	MasteryScore      int                         `gorm:"not null" json:"mastery_score"`
	LastRevised       *time.Time                  `json:"last_revised"`
	NextRevision      *time.Time                  `gorm:"index" json:"next_revision"`
	RevisionCount     int                         `gorm:"not null" json:"revision_count"`
	TotalStudyTime    int                         `gorm:"not null" json:"total_study_time"` // 分
	SolvedQuestions   datatypes.JSONSlice[string] `json:"solved_questions"`
	PracticeCount     int                         `gorm:"not null" json:"practice_count"`
	NeedsReview       bool                        `gorm:"not null" json:"needs_review"`
	ReviewRequestedAt *time.Time                  `json:"review_requested_at,omitempty"`
	Status            ProgressStatus              `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

func (TopicProgress) TableName() string {
	return "topic_progress"
}

// NewTopicProgress は初回更新時に作られるデフォルトの進捗を返します。
func NewTopicProgress(loc Location, topicID string) *TopicProgress {
	return &TopicProgress{
		UserID:          loc.UserID,
		Scope:           loc.Scope,
		TopicID:         topicID,
		MasteryScore:    0,
		RevisionCount:   0,
		SolvedQuestions: datatypes.JSONSlice[string]{},
		Status:          StatusNotStarted,
	}
}

// Clone はスライスも含めてコピーします。キャッシュ済みの値を書き換えないために使う。
func (p *TopicProgress) Clone() *TopicProgress {
	if p == nil {
		return nil
	}
	c := *p
	if p.SolvedQuestions != nil {
		c.SolvedQuestions = append(datatypes.JSONSlice[string]{}, p.SolvedQuestions...)
	}
	return &c
}

// ProgressPatch は部分更新の内容です。nil のフィールドは変更しません (浅いマージ)。
type ProgressPatch struct {
	MasteryScore      *int
	LastRevised       *time.Time
	NextRevision      *time.Time
	RevisionCount     *int
	TotalStudyTime    *int
	SolvedQuestions   []string
	PracticeCount     *int
	NeedsReview       *bool
	ReviewRequestedAt *time.Time
	Status            *ProgressStatus
}

// Apply はパッチをレコードに浅くマージします。
func (pp *ProgressPatch) Apply(p *TopicProgress) {
	if pp == nil {
		return
	}
	if pp.MasteryScore != nil {
		p.MasteryScore = *pp.MasteryScore
	}
	if pp.LastRevised != nil {
		t := *pp.LastRevised
		p.LastRevised = &t
	}
	if pp.NextRevision != nil {
		t := *pp.NextRevision
		p.NextRevision = &t
	}
	if pp.RevisionCount != nil {
		p.RevisionCount = *pp.RevisionCount
	}
	if pp.TotalStudyTime != nil {
		p.TotalStudyTime = *pp.TotalStudyTime
	}
	if pp.SolvedQuestions != nil {
		p.SolvedQuestions = append(datatypes.JSONSlice[string]{}, pp.SolvedQuestions...)
	}
	if pp.PracticeCount != nil {
		p.PracticeCount = *pp.PracticeCount
	}
	if pp.NeedsReview != nil {
		p.NeedsReview = *pp.NeedsReview
	}
	if pp.ReviewRequestedAt != nil {
		t := *pp.ReviewRequestedAt
		p.ReviewRequestedAt = &t
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
}

// UpdateProgressRequest は進捗の部分更新リクエストDTO
type UpdateProgressRequest struct {
	MasteryScore      *int       `json:"mastery_score,omitempty" validate:"omitempty,min=0,max=100"`
	LastRevised       *time.Time `json:"last_revised,omitempty"`
	NextRevision      *time.Time `json:"next_revision,omitempty"`
	RevisionCount     *int       `json:"revision_count,omitempty" validate:"omitempty,min=0"`
	TotalStudyTime    *int       `json:"total_study_time,omitempty" validate:"omitempty,min=0"`
	SolvedQuestions   []string   `json:"solved_questions,omitempty" validate:"omitempty,dive,required"`
	PracticeCount     *int       `json:"practice_count,omitempty" validate:"omitempty,min=0"`
	NeedsReview       *bool      `json:"needs_review,omitempty"`
	ReviewRequestedAt *time.Time `json:"review_requested_at,omitempty"`
	Status            *string    `json:"status,omitempty" validate:"omitempty,oneof=not_started in_progress completed"`
}

func (r *UpdateProgressRequest) ToPatch() *ProgressPatch {
	patch := &ProgressPatch{
		MasteryScore:      r.MasteryScore,
		LastRevised:       r.LastRevised,
		NextRevision:      r.NextRevision,
		RevisionCount:     r.RevisionCount,
		TotalStudyTime:    r.TotalStudyTime,
		SolvedQuestions:   r.SolvedQuestions,
		PracticeCount:     r.PracticeCount,
		NeedsReview:       r.NeedsReview,
		ReviewRequestedAt: r.ReviewRequestedAt,
	}
	if r.Status != nil {
		s := ProgressStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

// PracticeRequest は演習結果の記録リクエストDTO
type PracticeRequest struct {
	QuestionIDs []string `json:"question_ids" validate:"omitempty,dive,required"`
	Minutes     int      `json:"minutes" validate:"min=0,max=1440"`
}

// MockScoreRequest は模試スコアの反映リクエストDTO
type MockScoreRequest struct {
	Score *int `json:"score" validate:"required,min=0,max=100"`
}
