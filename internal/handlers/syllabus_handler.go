package handlers

import (
	"log/slog"
	"net/http"

	"study_keep/internal/model"
	"study_keep/internal/service"
	"study_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type SyllabusHandler struct {
	service service.SyllabusService
}

func NewSyllabusHandler(s service.SyllabusService) *SyllabusHandler {
	return &SyllabusHandler{service: s}
}

func (h *SyllabusHandler) GetSyllabus(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetSyllabus")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	syllabus, err := h.service.GetSyllabus(r.Context(), userID, courseID(r))
	if err != nil {
		logger.Error("Error getting syllabus in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, syllabus, logger)
}

// SaveSyllabus はシラバス全体を置き換えます。
func (h *SyllabusHandler) SaveSyllabus(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "SaveSyllabus")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	var req model.SaveSyllabusRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	syllabus, err := h.service.SaveSyllabus(r.Context(), userID, courseID(r), &req)
	if err != nil {
		logger.Warn("Error saving syllabus in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Syllabus saved", slog.String("course_id", syllabus.CourseID), slog.Int("subjects", len(syllabus.Subjects)))
	webutil.RespondWithJSON(w, http.StatusOK, syllabus, logger)
}

func (h *SyllabusHandler) UpdateSubtopic(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "UpdateSubtopic")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}
	subtopicID := chi.URLParam(r, "subtopic_id")

	var req model.SubtopicPatch
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	if err := h.service.UpdateSubtopic(r.Context(), userID, courseID(r), subtopicID, &req); err != nil {
		logger.Warn("Error updating subtopic in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
