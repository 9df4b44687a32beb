package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContextMiddleware(t *testing.T) {
	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		gotUserID = id
		w.WriteHeader(http.StatusNoContent)
	})
	h := UserContextMiddleware(next)

	testCases := []struct {
		name     string
		header   string
		wantCode int
		wantUser string
	}{
		{"ok", "user-1", http.StatusNoContent, "user-1"},
		{"前後の空白は除く", "  user-2 ", http.StatusNoContent, "user-2"},
		{"ヘッダーなし", "", http.StatusUnauthorized, ""},
		{"空白を含む", "user 3", http.StatusUnauthorized, ""},
		{"長すぎる", strings.Repeat("a", 129), http.StatusUnauthorized, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(UserIDHeader, tc.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantUser, gotUserID)
		})
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	_, err := GetUserIDFromContext(context.Background())
	assert.Error(t, err)
}

func TestGetLogger(t *testing.T) {
	assert.Equal(t, slog.Default(), GetLogger(context.Background()))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		GetLogger(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"ok":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, `{"ok":true}`, rec.Body.String())

	out := buf.String()
	assert.Contains(t, out, "inside handler")
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"path":"/api/v1/notes"`)
	assert.Contains(t, out, `{\"title\":\"x\"}`)
	assert.NotContains(t, out, "Bearer secret")
}
