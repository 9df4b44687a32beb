package handlers

import (
	"log/slog"
	"net/http"

	"study_keep/internal/model"
	"study_keep/internal/service"
	"study_keep/internal/webutil"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(s service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: s}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetProfile")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting profile in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, profile, logger)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "UpdateProfile")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error updating profile in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, profile, logger)
}
