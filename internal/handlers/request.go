package handlers

import (
	"log/slog"
	"net/http"

	"study_keep/internal/middleware"
	"study_keep/internal/model"
	"study_keep/internal/webutil"
)

// courseIDParam はコースを指定するクエリパラメータ。省略時はプロフィールの現在のコース。
const courseIDParam = "course_id"

func handlerLogger(r *http.Request, name string) *slog.Logger {
	return middleware.GetLogger(r.Context()).With(slog.String("handler", name))
}

// requireUser はコンテキストのユーザーIDを返します。なければ401を書いて false。
func requireUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return "", false
	}
	return userID, true
}

// decodeAndValidate はボディをデコードして検証します。失敗時は400を書いて false。
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	if err := webutil.DecodeJSONBody(r, dst); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return false
	}
	if err := webutil.ValidateStruct(dst); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return false
	}
	return true
}

func courseID(r *http.Request) string {
	return r.URL.Query().Get(courseIDParam)
}
