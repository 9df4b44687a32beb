package repository

import (
	"context"
	"testing"

	"study_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSubjects(loc model.Location) []*model.SyllabusSubject {
	sub := func(id, topicID string, pos int) *model.SyllabusSubtopic {
		return &model.SyllabusSubtopic{UserID: loc.UserID, Scope: loc.Scope, SubtopicID: id, TopicID: topicID, Name: id, Position: pos, Status: model.StatusNotStarted}
	}
	return []*model.SyllabusSubject{
		{
			UserID: loc.UserID, Scope: loc.Scope, SubjectID: "phy", Name: "Physics", Tier: model.Tier1, Position: 0,
			Topics: []*model.SyllabusTopic{
				{
					UserID: loc.UserID, Scope: loc.Scope, TopicID: "kin", SubjectID: "phy", Name: "Kinematics", EstimatedHours: 2, Position: 0,
					Subtopics: []*model.SyllabusSubtopic{sub("kin-1", "kin", 0), sub("kin-2", "kin", 1)},
				},
				{
					UserID: loc.UserID, Scope: loc.Scope, TopicID: "opt", SubjectID: "phy", Name: "Optics", Position: 1,
					Subtopics: []*model.SyllabusSubtopic{},
				},
			},
		},
		{
			UserID: loc.UserID, Scope: loc.Scope, SubjectID: "chem", Name: "Chemistry", Tier: model.Tier2, Position: 1,
			Topics: []*model.SyllabusTopic{},
		},
	}
}

func TestGormSyllabusRepository_ReplaceAllAndLoad(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormSyllabusRepository()
	loc := model.ResolveLocation("user-1", "jee")

	empty, err := repo.Load(ctx, db, loc)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.ReplaceAll(ctx, db, loc, sampleSubjects(loc)))

	subjects, err := repo.Load(ctx, db, loc)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Physics", subjects[0].Name)
	assert.Equal(t, "Chemistry", subjects[1].Name)
	require.Len(t, subjects[0].Topics, 2)
	assert.Equal(t, "Kinematics", subjects[0].Topics[0].Name)
	assert.Len(t, subjects[0].Topics[0].Subtopics, 2)
	assert.Empty(t, subjects[1].Topics)

	// 置き換えで古いデータは残らない
	replacement := []*model.SyllabusSubject{
		{UserID: loc.UserID, Scope: loc.Scope, SubjectID: "math", Name: "Maths", Tier: model.Tier1, Topics: []*model.SyllabusTopic{}},
	}
	require.NoError(t, repo.ReplaceAll(ctx, db, loc, replacement))
	subjects, err = repo.Load(ctx, db, loc)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Maths", subjects[0].Name)

	var subtopicCount int64
	require.NoError(t, db.Model(&model.SyllabusSubtopic{}).Where("user_id = ? AND scope = ?", loc.UserID, loc.Scope).Count(&subtopicCount).Error)
	assert.Zero(t, subtopicCount)
}

func TestGormSyllabusRepository_UpdateSubtopic(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormSyllabusRepository()
	loc := model.ResolveLocation("user-1", "jee")
	require.NoError(t, repo.ReplaceAll(ctx, db, loc, sampleSubjects(loc)))

	err := repo.UpdateSubtopic(ctx, db, loc, "kin-2", map[string]interface{}{
		"status":         string(model.StatusCompleted),
		"practice_count": 3,
	})
	require.NoError(t, err)

	subjects, err := repo.Load(ctx, db, loc)
	require.NoError(t, err)
	st := subjects[0].Topics[0].Subtopics[1]
	assert.Equal(t, "kin-2", st.SubtopicID)
	assert.Equal(t, model.StatusCompleted, st.Status)
	assert.Equal(t, 3, st.PracticeCount)

	err = repo.UpdateSubtopic(ctx, db, loc, "missing", map[string]interface{}{"needs_review": true})
	assert.ErrorIs(t, err, model.ErrNotFound)

	// 他のスコープのサブトピックは更新できない
	err = repo.UpdateSubtopic(ctx, db, legacyLoc("user-1"), "kin-1", map[string]interface{}{"needs_review": true})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
