package handlers

import (
	"net/http"

	"study_keep/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Handlers はルーティングに必要なハンドラ一式
type Handlers struct {
	Progress *ProgressHandler
	Revision *RevisionHandler
	Syllabus *SyllabusHandler
	DailyLog *DailyLogHandler
	Profile  *ProfileHandler
	Note     *NoteHandler
	Health   *HealthHandler
}

// RegisterRoutes は /api/v1 配下と /health を登録します。共通ミドルウェアは呼び出し側で設定する。
func RegisterRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.UserContextMiddleware)

		r.Route("/progress", func(r chi.Router) {
			r.Get("/", h.Progress.GetAllProgress)
			r.Get("/{topic_id}", h.Progress.GetTopicProgress)
			r.Patch("/{topic_id}", h.Progress.UpdateTopicProgress)
			r.Post("/{topic_id}/practice", h.Progress.RecordPractice)
			r.Post("/{topic_id}/mock-score", h.Progress.ApplyMockTestScore)
			r.Post("/{topic_id}/request-review", h.Progress.RequestReview)
		})

		r.Route("/revisions", func(r chi.Router) {
			r.Get("/", h.Revision.GetRevisionView)
			r.Get("/queue", h.Revision.GetRevisionQueue)
			r.Post("/{topic_id}/reviewed", h.Revision.MarkReviewed)
		})

		r.Route("/syllabus", func(r chi.Router) {
			r.Get("/", h.Syllabus.GetSyllabus)
			r.Put("/", h.Syllabus.SaveSyllabus)
			r.Patch("/subtopics/{subtopic_id}", h.Syllabus.UpdateSubtopic)
		})

		r.Route("/daily-logs", func(r chi.Router) {
			r.Get("/", h.DailyLog.ListDailyLogs)
			r.Get("/{date}", h.DailyLog.GetDailyLog)
			r.Put("/{date}", h.DailyLog.SaveDailyLog)
		})
		r.Get("/stats", h.DailyLog.GetUnifiedProgress)

		r.Get("/profile", h.Profile.GetProfile)
		r.Put("/profile", h.Profile.UpdateProfile)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", h.Note.ListNotes)
			r.Post("/", h.Note.AddNote)
			r.Delete("/{note_id}", h.Note.DeleteNote)
		})
	})

	r.Get("/health", h.Health.Health)
}

// NewRouter は RegisterRoutes 済みの chi ルーターを返します (テスト用にも使う)。
func NewRouter(h *Handlers, middlewares ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middlewares...)
	RegisterRoutes(r, h)
	return r
}
