package handlers

import (
	"log/slog"
	"net/http"

	"study_keep/internal/model"
	"study_keep/internal/service"
	"study_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type DailyLogHandler struct {
	service service.DailyLogService
}

func NewDailyLogHandler(s service.DailyLogService) *DailyLogHandler {
	return &DailyLogHandler{service: s}
}

func (h *DailyLogHandler) GetDailyLog(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetDailyLog")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	dailyLog, err := h.service.GetDailyLog(r.Context(), userID, chi.URLParam(r, "date"))
	if err != nil {
		logger.Warn("Error getting daily log in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, dailyLog, logger)
}

// SaveDailyLog は URL の日付で日次ログを上書き保存します。ボディの date は省略可、指定するなら一致が必要。
func (h *DailyLogHandler) SaveDailyLog(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "SaveDailyLog")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}
	date := chi.URLParam(r, "date")

	var req model.SaveDailyLogRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if req.Date == "" {
		req.Date = date
	}
	if req.Date != date {
		webutil.HandleError(w, logger, model.NewInvalidInputError("URLとボディの日付が一致しません。", "date"))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	dailyLog, err := h.service.SaveDailyLog(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error saving daily log in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Daily log saved", slog.String("date", dailyLog.LogDate))
	webutil.RespondWithJSON(w, http.StatusOK, dailyLog, logger)
}

// ListDailyLogs は ?from=YYYY-MM-DD&to=YYYY-MM-DD の範囲を返します。
func (h *DailyLogHandler) ListDailyLogs(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "ListDailyLogs")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}
	q := r.URL.Query()

	logs, err := h.service.ListDailyLogs(r.Context(), userID, q.Get("from"), q.Get("to"))
	if err != nil {
		logger.Warn("Error listing daily logs in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if logs == nil {
		logs = []*model.DailyLog{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, logs, logger)
}

func (h *DailyLogHandler) GetUnifiedProgress(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "GetUnifiedProgress")
	userID, ok := requireUser(w, r, logger)
	if !ok {
		return
	}

	stats, err := h.service.GetUnifiedProgress(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting unified progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}
