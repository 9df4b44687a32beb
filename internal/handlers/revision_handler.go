package handlers

import (
	"log/slog"
	"net/http"

	"study_keep/internal/model"
	"study_keep/internal/service"
	"study_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type RevisionHandler struct {
	service service.RevisionService
}

func NewRevisionHandler(s service.RevisionService) *RevisionHandler {
	return &RevisionHandler{service: s}
}

// GetRevisionQueue は今日復習すべきトピックを返します。
func (h *RevisionHandler) GetRevisionQueue(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetRevisionQueue")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	items, err := h.service.GetRevisionQueue(r.Context(), userID, courseID(r))
	if err != nil {
		logger.Error("Error getting revision queue in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if items == nil {
		items = []*model.RevisionItem{}
	}
	logger.Info("Revision queue retrieved", slog.Int("count", len(items)))
	webutil.RespondWithJSON(w, http.StatusOK, items, logger)
}

func (h *RevisionHandler) GetRevisionView(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetRevisionView")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	items, err := h.service.GetRevisionView(r.Context(), userID, courseID(r))
	if err != nil {
		logger.Error("Error getting revision view in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if items == nil {
		items = []*model.RevisionItem{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, items, logger)
}

func (h *RevisionHandler) MarkReviewed(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "MarkReviewed")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}
	topicID := chi.URLParam(r, "topic_id")

	progress, err := h.service.MarkReviewed(r.Context(), userID, topicID, courseID(r))
	if err != nil {
		logger.Error("Error marking topic reviewed in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}
