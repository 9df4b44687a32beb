// internal/srs/revision.go
package srs

import (
	"math"
	"time"

	"study_keep/internal/model"
)

// DefaultIntervals は復習間隔 (日) のデフォルト
var DefaultIntervals = []int{1, 3, 7, 14, 30}

const (
	// DefaultEstimatedMinutes はトピックに見積もり時間がない場合の所要時間 (分)
	DefaultEstimatedMinutes = 30
	// OrphanTier はシラバスに見つからないトピックのティア
	OrphanTier = model.Tier3
)

const day = 24 * time.Hour

// NormalizeIntervals は空、または0以下を含む間隔リストをデフォルトに置き換えます。
func NormalizeIntervals(intervals []int) []int {
	if len(intervals) == 0 {
		return DefaultIntervals
	}
	for _, d := range intervals {
		if d <= 0 {
			return DefaultIntervals
		}
	}
	return intervals
}

// IntervalIndex は min(revisionCount, n-1) を返します。間隔を使い切った後は最後 (最長) の間隔に固定。
func IntervalIndex(revisionCount, n int) int {
	if revisionCount < 0 {
		return 0
	}
	if revisionCount > n-1 {
		return n - 1
	}
	return revisionCount
}

// NextRevision は復習済みにした時点から次の復習日時を計算します。
func NextRevision(now time.Time, intervals []int, revisionCount int) time.Time {
	intervals = NormalizeIntervals(intervals)
	days := intervals[IntervalIndex(revisionCount, len(intervals))]
	return now.AddDate(0, 0, days)
}

// MarkReviewed は復習済みへの状態遷移をレコードに適用します。取り消し操作はありません。
func MarkReviewed(p *model.TopicProgress, intervals []int, now time.Time) {
	next := NextRevision(now, intervals, p.RevisionCount)
	reviewedAt := now
	p.NeedsReview = false
	p.LastRevised = &reviewedAt
	p.NextRevision = &next
	p.RevisionCount++
	if p.Status == "" || p.Status == model.StatusNotStarted {
		p.Status = model.StatusInProgress
	}
}

// DaysSince は floor((now - last) / 1日) を返します。
func DaysSince(last, now time.Time) int {
	return int(math.Floor(float64(now.Sub(last)) / float64(day)))
}

// Classify は期限到来済みのレコードの優先度を決めます。
// 経過時間が1日を超えれば overdue、ちょうど1日なら due_today、それ未満は due_soon。
// 最終復習日がないものは overdue。
func Classify(lastRevised *time.Time, now time.Time) model.Priority {
	if lastRevised == nil {
		return model.PriorityOverdue
	}
	elapsed := now.Sub(*lastRevised)
	switch {
	case elapsed > day:
		return model.PriorityOverdue
	case elapsed == day:
		return model.PriorityDueToday
	default:
		return model.PriorityDueSoon
	}
}

// ClassifyView は復習ビュー用の分類。次回復習日が未来なら scheduled。
func ClassifyView(p *model.TopicProgress, now time.Time) model.Priority {
	if p.NextRevision != nil && p.NextRevision.After(now) {
		return model.PriorityScheduled
	}
	return Classify(p.LastRevised, now)
}

// EstimatedMinutes は見積もり時間 (時間) を分に変換します。見積もりがなければ30分。
func EstimatedMinutes(estimatedHours float64) int {
	if estimatedHours <= 0 {
		return DefaultEstimatedMinutes
	}
	return int(math.Round(estimatedHours * 60))
}

// ApplyPreparationCutoff は準備開始日より前のデータを未着手として見せるための変換です。
// 戻り値はコピーで、引数のレコードは変更しません。
func ApplyPreparationCutoff(p *model.TopicProgress, start *time.Time) *model.TopicProgress {
	view := p.Clone()
	if start == nil || view == nil {
		return view
	}
	if view.LastRevised != nil && view.LastRevised.Before(*start) {
		view.LastRevised = nil
		view.NextRevision = nil
		view.RevisionCount = 0
		view.Status = model.StatusNotStarted
	}
	if view.NeedsReview && view.ReviewRequestedAt != nil && view.ReviewRequestedAt.Before(*start) {
		view.NeedsReview = false
	}
	return view
}

// BuildItem は進捗とシラバス情報から RevisionItem を組み立てます。
func BuildItem(p *model.TopicProgress, meta model.TopicMeta, found bool, priority model.Priority, now time.Time) *model.RevisionItem {
	item := &model.RevisionItem{
		TopicID:          p.TopicID,
		TopicName:        p.TopicID,
		Tier:             OrphanTier,
		MasteryScore:     p.MasteryScore,
		LastRevised:      p.LastRevised,
		NextRevision:     p.NextRevision,
		RevisionCount:    p.RevisionCount,
		NeedsReview:      p.NeedsReview,
		Status:           p.Status,
		EstimatedMinutes: DefaultEstimatedMinutes,
		Priority:         priority,
	}
	if found {
		item.TopicName = meta.TopicName
		item.SubjectName = meta.SubjectName
		if meta.Tier != 0 {
			item.Tier = meta.Tier
		}
		item.EstimatedMinutes = EstimatedMinutes(meta.EstimatedHours)
	}
	if p.LastRevised != nil {
		item.DaysSinceLastRevision = DaysSince(*p.LastRevised, now)
	}
	return item
}
