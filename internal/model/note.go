// internal/model/note.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Note はアップロード済みノートの一覧用メタデータ (ファイル本体は扱わない)
type Note struct {
	NoteID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"note_id"`
	UserID    string    `gorm:"type:varchar(128);not null;index:idx_notes_user_scope" json:"-"`
	Scope     string    `gorm:"type:varchar(160);not null;index:idx_notes_user_scope" json:"-"`
	Title     string    `gorm:"not null" json:"title"`
	FileURL   string    `gorm:"not null" json:"file_url"`
	SizeBytes int64     `gorm:"not null" json:"size_bytes"`
	SubjectID string    `gorm:"type:varchar(128)" json:"subject_id,omitempty"`
	TopicID   string    `gorm:"type:varchar(128)" json:"topic_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Note) TableName() string {
	return "notes"
}

type CreateNoteRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	FileURL   string `json:"file_url" validate:"required,url"`
	SizeBytes int64  `json:"size_bytes" validate:"min=0"`
	SubjectID string `json:"subject_id,omitempty"`
	TopicID   string `json:"topic_id,omitempty"`
}
