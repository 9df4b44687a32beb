// internal/stats/streak.go
package stats

import (
	"math"
	"time"

	"study_keep/internal/model"
)

const (
	streakTarget   = 30  // 連続日数の満点
	missionsTarget = 100 // 完了ミッション数の満点
)

// StartOfDay は loc における日付の0時を返します。
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDate は2つの時刻が loc で同じ暦日かどうかを返します。
func SameDate(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// ConsistencyRating = round(100 × (0.6 × min(streak/30, 1) + 0.4 × min(missions/100, 1)))
func ConsistencyRating(currentStreak, totalMissions int) int {
	streakPart := math.Min(float64(currentStreak)/streakTarget, 1)
	missionPart := math.Min(float64(totalMissions)/missionsTarget, 1)
	return int(math.Round(100 * (0.6*streakPart + 0.4*missionPart)))
}

// Fold は日次ログ1件分を統計に積み上げた結果を返します。
// 前回更新が昨日なら連続日数+1、今日なら据え置き、それ以外は1にリセット。
// 日付の判定にはログの日付ではなく保存時刻 now を loc で使う。
func Fold(cur model.UnifiedProgress, studyMinutes int, now time.Time, loc *time.Location) model.UnifiedProgress {
	next := cur
	next.TotalTimeInvested += studyMinutes
	next.TotalMissionsCompleted++

	today := StartOfDay(now, loc)
	yesterday := today.AddDate(0, 0, -1)
	switch {
	case cur.LastUpdated == nil:
		next.CurrentStreak = 1
	case StartOfDay(*cur.LastUpdated, loc).Equal(today):
		if next.CurrentStreak < 1 {
			next.CurrentStreak = 1
		}
	case StartOfDay(*cur.LastUpdated, loc).Equal(yesterday):
		next.CurrentStreak++
	default:
		next.CurrentStreak = 1
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.ConsistencyRating = ConsistencyRating(next.CurrentStreak, next.TotalMissionsCompleted)
	updated := now
	next.LastUpdated = &updated
	return next
}
