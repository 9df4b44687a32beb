// internal/model/syllabus.go
package model

import "time"

const (
	Tier1 = 1 // 高優先
	Tier2 = 2
	Tier3 = 3 // 低優先
)

// SyllabusSubject は科目 (ティア付き)
type SyllabusSubject struct {
	UserID    string    `gorm:"type:varchar(128);primaryKey" json:"-"`
	Scope     string    `gorm:"type:varchar(160);primaryKey" json:"-"`
	SubjectID string    `gorm:"type:varchar(128);primaryKey" json:"subject_id"`
	Name      string    `gorm:"not null" json:"name"`
	Tier      int       `gorm:"not null" json:"tier"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"-"`

	Topics []*SyllabusTopic `gorm:"-" json:"topics"`
}

func (SyllabusSubject) TableName() string {
	return "syllabus_subjects"
}

// SyllabusTopic はトピック。TopicID は topic_progress.topic_id と対応します。
type SyllabusTopic struct {
	UserID         string    `gorm:"type:varchar(128);primaryKey" json:"-"`
	Scope          string    `gorm:"type:varchar(160);primaryKey" json:"-"`
	TopicID        string    `gorm:"type:varchar(128);primaryKey" json:"topic_id"`
	SubjectID      string    `gorm:"type:varchar(128);not null;index" json:"subject_id"`
	Name           string    `gorm:"not null" json:"name"`
	EstimatedHours float64   `gorm:"not null" json:"estimated_hours"`
	Position       int       `gorm:"not null" json:"position"`
	CreatedAt      time.Time `json:"-"`

	Subtopics []*SyllabusSubtopic `gorm:"-" json:"subtopics"`
}

func (SyllabusTopic) TableName() string {
	return "syllabus_topics"
}

// SyllabusSubtopic はサブトピックと簡易的な進捗
type SyllabusSubtopic struct {
	UserID        string         `gorm:"type:varchar(128);primaryKey" json:"-"`
	Scope         string         `gorm:"type:varchar(160);primaryKey" json:"-"`
	SubtopicID    string         `gorm:"type:varchar(128);primaryKey" json:"subtopic_id"`
	TopicID       string         `gorm:"type:varchar(128);not null;index" json:"topic_id"`
	Name          string         `gorm:"not null" json:"name"`
	Position      int            `gorm:"not null" json:"position"`
	Status        ProgressStatus `gorm:"type:varchar(20);not null" json:"status"`
	NeedsReview   bool           `gorm:"not null" json:"needs_review"`
	LastRevised   *time.Time     `json:"last_revised"`
	PracticeCount int            `gorm:"not null" json:"practice_count"`
	RevisionCount int            `gorm:"not null" json:"revision_count"`
	CreatedAt     time.Time      `json:"-"`
	UpdatedAt     time.Time      `json:"-"`
}

func (SyllabusSubtopic) TableName() string {
	return "syllabus_subtopics"
}

// Syllabus はコースごとのシラバス全体
type Syllabus struct {
	CourseID string             `json:"course_id"`
	Subjects []*SyllabusSubject `json:"subjects"`
}

// TopicMeta は復習キューの表示用に引くトピック情報
type TopicMeta struct {
	TopicName      string
	SubjectName    string
	Tier           int
	EstimatedHours float64
}

// TopicIndex はトピックIDからメタ情報への索引を作ります。
func (s *Syllabus) TopicIndex() map[string]TopicMeta {
	index := make(map[string]TopicMeta)
	if s == nil {
		return index
	}
	for _, subject := range s.Subjects {
		for _, topic := range subject.Topics {
			index[topic.TopicID] = TopicMeta{
				TopicName:      topic.Name,
				SubjectName:    subject.Name,
				Tier:           subject.Tier,
				EstimatedHours: topic.EstimatedHours,
			}
		}
	}
	return index
}

// --- リクエストDTO ---

type SaveSyllabusRequest struct {
	Subjects []SubjectInput `json:"subjects" validate:"dive"`
}

type SubjectInput struct {
	SubjectID string       `json:"subject_id,omitempty"`
	Name      string       `json:"name" validate:"required,max=200"`
	Tier      int          `json:"tier" validate:"required,oneof=1 2 3"`
	Topics    []TopicInput `json:"topics" validate:"dive"`
}

type TopicInput struct {
	TopicID        string          `json:"topic_id,omitempty"`
	Name           string          `json:"name" validate:"required,max=200"`
	EstimatedHours float64         `json:"estimated_hours" validate:"min=0"`
	Subtopics      []SubtopicInput `json:"subtopics" validate:"dive"`
}

type SubtopicInput struct {
	SubtopicID string `json:"subtopic_id,omitempty"`
	Name       string `json:"name" validate:"required,max=200"`
}

// SubtopicPatch はサブトピックの対象フィールドのみを更新するリクエストDTO
type SubtopicPatch struct {
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=not_started in_progress completed"`
	NeedsReview   *bool      `json:"needs_review,omitempty"`
	LastRevised   *time.Time `json:"last_revised,omitempty"`
	PracticeCount *int       `json:"practice_count,omitempty" validate:"omitempty,min=0"`
	RevisionCount *int       `json:"revision_count,omitempty" validate:"omitempty,min=0"`
}

// Updates は gorm の Updates 用のカラムマップを返します。
func (p *SubtopicPatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.NeedsReview != nil {
		updates["needs_review"] = *p.NeedsReview
	}
	if p.LastRevised != nil {
		updates["last_revised"] = p.LastRevised.UTC()
	}
	if p.PracticeCount != nil {
		updates["practice_count"] = *p.PracticeCount
	}
	if p.RevisionCount != nil {
		updates["revision_count"] = *p.RevisionCount
	}
	return updates
}
