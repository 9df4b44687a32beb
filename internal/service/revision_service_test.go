package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"study_keep/internal/model"
	"study_keep/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_revisionService_MarkReviewed_ProfileIntervals(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	env := newTestEnv(t, start)
	_, err := env.profileService().UpdateProfile(ctx, "user-1", &model.UpdateProfileRequest{RevisionIntervals: []int{1, 3, 7, 16, 35}})
	require.NoError(t, err)
	svc := env.revisionService()

	first, err := svc.MarkReviewed(ctx, "user-1", "kin", "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.RevisionCount)
	assert.Equal(t, model.StatusInProgress, first.Status)
	assert.False(t, first.NeedsReview)
	require.NotNil(t, first.NextRevision)
	assert.True(t, start.AddDate(0, 0, 1).Equal(*first.NextRevision))

	env.clock.Set(start.AddDate(0, 0, 1))
	second, err := svc.MarkReviewed(ctx, "user-1", "kin", "")
	require.NoError(t, err)
	assert.Equal(t, 2, second.RevisionCount)
	assert.True(t, start.AddDate(0, 0, 4).Equal(*second.NextRevision))
	assert.True(t, start.AddDate(0, 0, 1).Equal(*second.LastRevised))
}

func Test_revisionService_MarkReviewed_IntervalClamp(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	_, err := env.profileService().UpdateProfile(ctx, "user-1", &model.UpdateProfileRequest{RevisionIntervals: []int{1, 3, 7}})
	require.NoError(t, err)
	_, err = env.progressService().UpdateTopicProgress(ctx, "user-1", "kin", &model.ProgressPatch{RevisionCount: intPtr(5)}, "")
	require.NoError(t, err)

	got, err := env.revisionService().MarkReviewed(ctx, "user-1", "kin", "")
	require.NoError(t, err)
	assert.Equal(t, 6, got.RevisionCount)
	assert.True(t, now.AddDate(0, 0, 7).Equal(*got.NextRevision))
}

func Test_revisionService_MarkReviewed_DefaultIntervals(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	got, err := env.revisionService().MarkReviewed(context.Background(), "user-1", "kin", "")
	require.NoError(t, err)
	assert.True(t, now.AddDate(0, 0, 1).Equal(*got.NextRevision))
}

func Test_revisionService_GetRevisionQueue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	progSvc := env.progressService()

	_, err := env.syllabusService().SaveSyllabus(ctx, "user-1", "jee", &model.SaveSyllabusRequest{
		Subjects: []model.SubjectInput{{
			SubjectID: "phy", Name: "Physics", Tier: model.Tier1,
			Topics: []model.TopicInput{
				{TopicID: "t25", Name: "Kinematics", EstimatedHours: 1.5},
				{TopicID: "t24", Name: "Optics"},
			},
		}},
	})
	require.NoError(t, err)

	seed := []struct {
		topicID string
		elapsed time.Duration
		next    time.Duration
	}{
		{"t25", 25 * time.Hour, -3 * time.Hour},
		{"t24", 24 * time.Hour, -2 * time.Hour},
		{"t23", 23 * time.Hour, -1 * time.Hour},
		{"future", 2 * time.Hour, 5 * time.Hour},
	}
	for _, s := range seed {
		_, err := progSvc.UpdateTopicProgress(ctx, "user-1", s.topicID, &model.ProgressPatch{
			LastRevised:  timePtr(now.Add(-s.elapsed)),
			NextRevision: timePtr(now.Add(s.next)),
		}, "jee")
		require.NoError(t, err)
	}

	items, err := env.revisionService().GetRevisionQueue(ctx, "user-1", "jee")
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "t25", items[0].TopicID)
	assert.Equal(t, model.PriorityOverdue, items[0].Priority)
	assert.Equal(t, "Kinematics", items[0].TopicName)
	assert.Equal(t, "Physics", items[0].SubjectName)
	assert.Equal(t, model.Tier1, items[0].Tier)
	assert.Equal(t, 90, items[0].EstimatedMinutes)
	assert.Equal(t, 1, items[0].DaysSinceLastRevision)

	assert.Equal(t, "t24", items[1].TopicID)
	assert.Equal(t, model.PriorityDueToday, items[1].Priority)
	assert.Equal(t, 30, items[1].EstimatedMinutes)

	// シラバスにないトピックはティア3
	assert.Equal(t, "t23", items[2].TopicID)
	assert.Equal(t, model.PriorityDueSoon, items[2].Priority)
	assert.Equal(t, model.Tier3, items[2].Tier)
	assert.Equal(t, 0, items[2].DaysSinceLastRevision)
}

func Test_revisionService_GetRevisionQueue_EmptyForNewUser(t *testing.T) {
	env := newTestEnv(t, time.Now())
	items, err := env.revisionService().GetRevisionQueue(context.Background(), "nobody", "")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func Test_revisionService_GetRevisionQueue_RepositoryError(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, time.Now())
	mockProgRepo := new(mocks.ProgressRepository)
	svc := NewRevisionService(env.db, mockProgRepo, env.syllabusRepo, env.profileRepo, env.cache, env.cfg)

	loc := model.ResolveLocation("user-1", "jee")
	mockProgRepo.On("FindDue", ctx, mock.Anything, loc, mock.AnythingOfType("time.Time"), (*time.Time)(nil), 20).
		Return(nil, errors.New("db error")).Once()

	items, err := svc.GetRevisionQueue(ctx, "user-1", "jee")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInternalServer)
	assert.Nil(t, items)
	mockProgRepo.AssertExpectations(t)
}

func Test_revisionService_GetRevisionQueue_PreparationCutoff(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	progSvc := env.progressService()

	_, err := env.profileService().UpdateProfile(ctx, "user-1", &model.UpdateProfileRequest{
		PreparationStartDate: timePtr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	_, err = progSvc.UpdateTopicProgress(ctx, "user-1", "stale", &model.ProgressPatch{
		LastRevised:  timePtr(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		NextRevision: timePtr(time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)),
	}, "")
	require.NoError(t, err)
	_, err = progSvc.UpdateTopicProgress(ctx, "user-1", "fresh", &model.ProgressPatch{
		LastRevised:  timePtr(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)),
		NextRevision: timePtr(time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)),
	}, "")
	require.NoError(t, err)

	queue, err := env.revisionService().GetRevisionQueue(ctx, "user-1", "")
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, "fresh", queue[0].TopicID)
	assert.Equal(t, model.PriorityOverdue, queue[0].Priority)
	assert.Equal(t, 5, queue[0].DaysSinceLastRevision)
}

func Test_revisionService_GetRevisionView_PreparationCutoff(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	progSvc := env.progressService()

	_, err := env.profileService().UpdateProfile(ctx, "user-1", &model.UpdateProfileRequest{
		PreparationStartDate: timePtr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	status := model.StatusInProgress
	_, err = progSvc.UpdateTopicProgress(ctx, "user-1", "stale", &model.ProgressPatch{
		LastRevised:       timePtr(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		NextRevision:      timePtr(time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)),
		RevisionCount:     intPtr(2),
		Status:            &status,
		NeedsReview:       boolPtr(true),
		ReviewRequestedAt: timePtr(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)),
	}, "")
	require.NoError(t, err)
	_, err = progSvc.UpdateTopicProgress(ctx, "user-1", "fresh", &model.ProgressPatch{
		LastRevised:   timePtr(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)),
		NextRevision:  timePtr(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)),
		RevisionCount: intPtr(1),
	}, "")
	require.NoError(t, err)

	items, err := env.revisionService().GetRevisionView(ctx, "user-1", "")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "fresh", items[0].TopicID)
	assert.Equal(t, model.PriorityScheduled, items[0].Priority)

	stale := items[1]
	assert.Equal(t, "stale", stale.TopicID)
	assert.Nil(t, stale.LastRevised)
	assert.Nil(t, stale.NextRevision)
	assert.Equal(t, 0, stale.RevisionCount)
	assert.Equal(t, model.StatusNotStarted, stale.Status)
	assert.False(t, stale.NeedsReview)

	// 保存されているレコードはそのまま
	stored, err := progSvc.GetTopicProgress(ctx, "user-1", "stale", "")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.RevisionCount)
	assert.True(t, stored.NeedsReview)
}

func boolPtr(v bool) *bool { return &v }
