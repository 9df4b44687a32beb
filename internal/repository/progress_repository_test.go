package repository

import (
	"context"
	"testing"
	"time"

	"study_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProgressRepository_FindAndUpsert(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormProgressRepository()
	loc := model.ResolveLocation("user-1", "jee")

	_, err := repo.Find(ctx, db, loc, "topic-1")
	assert.ErrorIs(t, err, model.ErrNotFound)

	p := model.NewTopicProgress(loc, "topic-1")
	p.MasteryScore = 40
	p.SolvedQuestions = append(p.SolvedQuestions, "q1", "q2")
	require.NoError(t, repo.Upsert(ctx, db, p))

	got, err := repo.Find(ctx, db, loc, "topic-1")
	require.NoError(t, err)
	assert.Equal(t, 40, got.MasteryScore)
	assert.Equal(t, []string{"q1", "q2"}, []string(got.SolvedQuestions))
	assert.Equal(t, model.StatusNotStarted, got.Status)

	// 2回目は更新
	got.MasteryScore = 55
	got.RevisionCount = 2
	require.NoError(t, repo.Upsert(ctx, db, got))

	again, err := repo.Find(ctx, db, loc, "topic-1")
	require.NoError(t, err)
	assert.Equal(t, 55, again.MasteryScore)
	assert.Equal(t, 2, again.RevisionCount)

	// 別スコープからは見えない
	_, err = repo.Find(ctx, db, legacyLoc("user-1"), "topic-1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGormProgressRepository_ListAll(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormProgressRepository()
	loc := legacyLoc("user-1")

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Upsert(ctx, db, model.NewTopicProgress(loc, id)))
	}
	require.NoError(t, repo.Upsert(ctx, db, model.NewTopicProgress(legacyLoc("user-2"), "a")))

	list, err := repo.ListAll(ctx, db, loc)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	empty, err := repo.ListAll(ctx, db, model.ResolveLocation("user-1", "neet"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormProgressRepository_FindDue(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormProgressRepository()
	loc := legacyLoc("user-1")
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}
	seed := []struct {
		id   string
		next *time.Time
	}{
		{"late", at(-1 * time.Hour)},
		{"oldest", at(-72 * time.Hour)},
		{"middle", at(-24 * time.Hour)},
		{"future", at(2 * time.Hour)},
		{"unscheduled", nil},
	}
	for _, s := range seed {
		p := model.NewTopicProgress(loc, s.id)
		p.NextRevision = s.next
		require.NoError(t, repo.Upsert(ctx, db, p))
	}

	due, err := repo.FindDue(ctx, db, loc, now, nil, 20)
	require.NoError(t, err)
	ids := make([]string, 0, len(due))
	for _, p := range due {
		ids = append(ids, p.TopicID)
	}
	assert.Equal(t, []string{"oldest", "middle", "late"}, ids)

	limited, err := repo.FindDue(ctx, db, loc, now, nil, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "oldest", limited[0].TopicID)
}

func TestGormProgressRepository_FindDue_Since(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormProgressRepository()
	loc := legacyLoc("user-1")
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}
	seed := []struct {
		id          string
		lastRevised *time.Time
		next        *time.Time
	}{
		{"stale", at(-40 * 24 * time.Hour), at(-30 * 24 * time.Hour)},
		{"fresh", at(-48 * time.Hour), at(-24 * time.Hour)},
		{"never", nil, at(-2 * time.Hour)},
	}
	for _, s := range seed {
		p := model.NewTopicProgress(loc, s.id)
		p.LastRevised = s.lastRevised
		p.NextRevision = s.next
		require.NoError(t, repo.Upsert(ctx, db, p))
	}

	// 準備開始前の記録は上限の対象にも含まれない
	due, err := repo.FindDue(ctx, db, loc, now, &since, 2)
	require.NoError(t, err)
	ids := make([]string, 0, len(due))
	for _, p := range due {
		ids = append(ids, p.TopicID)
	}
	assert.Equal(t, []string{"fresh", "never"}, ids)
}
