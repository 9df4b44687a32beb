// internal/model/revision.go
package model

import "time"

type Priority string

const (
	PriorityOverdue   Priority = "overdue"
	PriorityDueToday  Priority = "due_today"
	PriorityDueSoon   Priority = "due_soon"
	PriorityScheduled Priority = "scheduled"
)

// RevisionItem は復習キュー/復習ビューの1件 (保存されない派生データ)
type RevisionItem struct {
	TopicID               string         `json:"topic_id"`
	TopicName             string         `json:"topic_name"`
	SubjectName           string         `json:"subject_name"`
	Tier                  int            `json:"tier"`
	MasteryScore          int            `json:"mastery_score"`
	LastRevised           *time.Time     `json:"last_revised"`
	NextRevision          *time.Time     `json:"next_revision"`
	RevisionCount         int            `json:"revision_count"`
	NeedsReview           bool           `json:"needs_review"`
	Status                ProgressStatus `json:"status"`
	DaysSinceLastRevision int            `json:"days_since_last_revision"`
	EstimatedMinutes      int            `json:"estimated_minutes"`
	Priority              Priority       `json:"priority"`
}
