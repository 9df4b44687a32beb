package handlers

import (
	"log/slog"
	"net/http"

	"study_keep/internal/model"
	"study_keep/internal/service"
	"study_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ProgressHandler struct {
	service service.ProgressService
}

func NewProgressHandler(s service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: s}
}

// GetAllProgress は現在のコースの全トピック進捗を返します。
func (h *ProgressHandler) GetAllProgress(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetAllProgress")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	progresses, err := h.service.GetAllProgress(r.Context(), userID, courseID(r))
	if err != nil {
		logger.Error("Error listing progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if progresses == nil {
		progresses = []*model.TopicProgress{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, progresses, logger)
}

func (h *ProgressHandler) GetTopicProgress(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetTopicProgress")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}
	topicID := chi.URLParam(r, "topic_id")

	progress, err := h.service.GetTopicProgress(r.Context(), userID, topicID, courseID(r))
	if err != nil {
		logger.Error("Error getting progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if progress == nil {
		webutil.HandleError(w, logger, model.NewNotFoundError("このトピックの進捗はまだありません。"))
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

// UpdateTopicProgress は指定したフィールドだけを更新します (未作成なら作成)。
func (h *ProgressHandler) UpdateTopicProgress(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "UpdateTopicProgress")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}
	topicID := chi.URLParam(r, "topic_id")

	var req model.UpdateProgressRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	progress, err := h.service.UpdateTopicProgress(r.Context(), userID, topicID, req.ToPatch(), courseID(r))
	if err != nil {
		logger.Error("Error updating progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Topic progress updated", slog.String("topic_id", topicID))
	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

func (h *ProgressHandler) RecordPractice(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "RecordPractice")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}
	topicID := chi.URLParam(r, "topic_id")

	var req model.PracticeRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	progress, err := h.service.RecordPractice(r.Context(), userID, topicID, &req, courseID(r))
	if err != nil {
		logger.Error("Error recording practice in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

func (h *ProgressHandler) ApplyMockTestScore(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ApplyMockTestScore")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}
	topicID := chi.URLParam(r, "topic_id")

	var req model.MockScoreRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	progress, err := h.service.ApplyMockTestScore(r.Context(), userID, topicID, *req.Score, courseID(r))
	if err != nil {
		logger.Error("Error applying mock score in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

func (h *ProgressHandler) RequestReview(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "RequestReview")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}
	topicID := chi.URLParam(r, "topic_id")

	progress, err := h.service.RequestReview(r.Context(), userID, topicID, courseID(r))
	if err != nil {
		logger.Error("Error requesting review in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}
