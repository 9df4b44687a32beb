// internal/repository/syllabus_repository.go
package repository

import (
	"context"
	"sort"

	"study_keep/internal/model"

	"gorm.io/gorm"
)

type SyllabusRepository interface {
	Load(ctx context.Context, db *gorm.DB, loc model.Location) ([]*model.SyllabusSubject, error)
	ReplaceAll(ctx context.Context, tx *gorm.DB, loc model.Location, subjects []*model.SyllabusSubject) error // トランザクション内で呼ぶこと
	UpdateSubtopic(ctx context.Context, db *gorm.DB, loc model.Location, subtopicID string, updates map[string]interface{}) error
}

type gormSyllabusRepository struct{}

func NewGormSyllabusRepository() SyllabusRepository {
	return &gormSyllabusRepository{}
}

// Load は科目 → トピック → サブトピックの木を組み立てて返します。
func (r *gormSyllabusRepository) Load(ctx context.Context, db *gorm.DB, loc model.Location) ([]*model.SyllabusSubject, error) {
	var subjects []*model.SyllabusSubject
	if err := db.WithContext(ctx).
		Where("user_id = ? AND scope = ?", loc.UserID, loc.Scope).
		Order("position ASC").
		Find(&subjects).Error; err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return subjects, nil
	}

	var topics []*model.SyllabusTopic
	if err := db.WithContext(ctx).
		Where("user_id = ? AND scope = ?", loc.UserID, loc.Scope).
		Order("position ASC").
		Find(&topics).Error; err != nil {
		return nil, err
	}

	var subtopics []*model.SyllabusSubtopic
	if err := db.WithContext(ctx).
		Where("user_id = ? AND scope = ?", loc.UserID, loc.Scope).
		Order("position ASC").
		Find(&subtopics).Error; err != nil {
		return nil, err
	}

	topicByID := make(map[string]*model.SyllabusTopic, len(topics))
	for _, t := range topics {
		t.Subtopics = []*model.SyllabusSubtopic{}
		topicByID[t.TopicID] = t
	}
	for _, st := range subtopics {
		if t, ok := topicByID[st.TopicID]; ok {
			t.Subtopics = append(t.Subtopics, st)
		}
	}

	subjectByID := make(map[string]*model.SyllabusSubject, len(subjects))
	for _, s := range subjects {
		s.Topics = []*model.SyllabusTopic{}
		subjectByID[s.SubjectID] = s
	}
	for _, t := range topics {
		if s, ok := subjectByID[t.SubjectID]; ok {
			s.Topics = append(s.Topics, t)
		}
	}

	// DBの順序に頼らず position で安定させる
	sort.SliceStable(subjects, func(i, j int) bool { return subjects[i].Position < subjects[j].Position })
	return subjects, nil
}

// ReplaceAll は既存のシラバスを全削除してから作り直します (差分は取らない)。
func (r *gormSyllabusRepository) ReplaceAll(ctx context.Context, tx *gorm.DB, loc model.Location, subjects []*model.SyllabusSubject) error {
	tx = tx.WithContext(ctx)
	where := "user_id = ? AND scope = ?"
	if err := tx.Where(where, loc.UserID, loc.Scope).Delete(&model.SyllabusSubtopic{}).Error; err != nil {
		return err
	}
	if err := tx.Where(where, loc.UserID, loc.Scope).Delete(&model.SyllabusTopic{}).Error; err != nil {
		return err
	}
	if err := tx.Where(where, loc.UserID, loc.Scope).Delete(&model.SyllabusSubject{}).Error; err != nil {
		return err
	}

	var topics []*model.SyllabusTopic
	var subtopics []*model.SyllabusSubtopic
	for _, s := range subjects {
		topics = append(topics, s.Topics...)
		for _, t := range s.Topics {
			subtopics = append(subtopics, t.Subtopics...)
		}
	}

	if len(subjects) > 0 {
		if err := tx.Create(subjects).Error; err != nil {
			return err
		}
	}
	if len(topics) > 0 {
		if err := tx.Create(topics).Error; err != nil {
			return err
		}
	}
	if len(subtopics) > 0 {
		if err := tx.Create(subtopics).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *gormSyllabusRepository) UpdateSubtopic(ctx context.Context, db *gorm.DB, loc model.Location, subtopicID string, updates map[string]interface{}) error {
	result := db.WithContext(ctx).
		Model(&model.SyllabusSubtopic{}).
		Where("user_id = ? AND scope = ? AND subtopic_id = ?", loc.UserID, loc.Scope, subtopicID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
