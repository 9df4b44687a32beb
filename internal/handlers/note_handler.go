package handlers

import (
	"log/slog"
	"net/http"

	"study_keep/internal/model"
	"study_keep/internal/service"
	"study_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type NoteHandler struct {
	service service.NoteService
}

func NewNoteHandler(s service.NoteService) *NoteHandler {
	return &NoteHandler{service: s}
}

func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ListNotes")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	notes, err := h.service.ListNotes(r.Context(), userID, courseID(r))
	if err != nil {
		logger.Error("Error listing notes in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if notes == nil {
		notes = []*model.Note{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, notes, logger)
}

func (h *NoteHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "AddNote")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	var req model.CreateNoteRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	note, err := h.service.AddNote(r.Context(), userID, courseID(r), &req)
	if err != nil {
		logger.Error("Error adding note in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Note added", slog.String("note_id", note.NoteID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, note, logger)
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "DeleteNote")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	noteIDStr := chi.URLParam(r, "note_id")
	noteID, err := uuid.Parse(noteIDStr)
	if err != nil {
		logger.Warn("Invalid note ID format in URL", slog.String("note_id_str", noteIDStr), slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_URL_PARAM", "note_idの形式が正しくありません。", "note_id", model.ErrInvalidInput))
		return
	}

	if err := h.service.DeleteNote(r.Context(), userID, noteID); err != nil {
		logger.Warn("Error deleting note in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
