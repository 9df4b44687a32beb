package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"study_keep/internal/config"
	"study_keep/internal/webutil"
)

// Pinger は DB 接続確認用 (*sql.DB が満たす)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger(r, "Health")
	if err := h.db.PingContext(r.Context()); err != nil {
		logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
		webutil.RespondWithJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Version: config.AppVersion}, logger)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: config.AppVersion}, logger)
}
