package middleware

import (
	"context"
	"net/http"
	"strings"

	"study_keep/internal/model"
	"study_keep/internal/webutil"
)

// UserIDHeader は呼び出し元ユーザーを示すヘッダー。認証は前段 (ゲートウェイ) の責務。
const UserIDHeader = "X-User-ID"

const maxUserIDLength = 128

// UserContextMiddleware は X-User-ID ヘッダーのユーザーIDをコンテキストに設定します。
// 値の存在と形式のみ確認し、ユーザーの存在チェックは行いません。
func UserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			logger.Warn("Missing user id header", "header", UserIDHeader)
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "X-User-ID ヘッダーが必要です。", "", model.ErrUnauthorized))
			return
		}
		if len(userID) > maxUserIDLength || strings.ContainsAny(userID, " \t\r\n") {
			logger.Warn("Invalid user id header", "length", len(userID))
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "X-User-ID ヘッダーの形式が正しくありません。", "", model.ErrUnauthorized))
			return
		}

		ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
		ctx = WithLogger(ctx, logger.With("user_id", userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext はコンテキストからユーザーIDを取得します。
func GetUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(model.UserIDKey).(string)
	if !ok || userID == "" {
		return "", model.ErrUnauthorized
	}
	return userID, nil
}
