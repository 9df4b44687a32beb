package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"study_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProgressHandler_RequiresUserHeader(t *testing.T) {
	ts := newTestServer(t)

	code, body := sendRequest(t, ts, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress", NoUser: true})

	assert.Equal(t, http.StatusUnauthorized, code)
	verifyErrorCode(t, body, "UNAUTHORIZED")
}

func TestProgressHandler_GetAllProgress(t *testing.T) {
	t.Run("空のときは空配列", func(t *testing.T) {
		ts := newTestServer(t)
		ts.progress.On("GetAllProgress", mock.Anything, testUserID, "").Return(nil, nil).Once()

		code, body := sendRequest(t, ts, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress"})

		assert.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("course_id をサービスに渡す", func(t *testing.T) {
		ts := newTestServer(t)
		ts.progress.On("GetAllProgress", mock.Anything, testUserID, "c1").
			Return([]*model.TopicProgress{{TopicID: "t1", MasteryScore: 40, Status: model.StatusInProgress}}, nil).Once()

		code, body := sendRequest(t, ts, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress?course_id=c1"})

		assert.Equal(t, http.StatusOK, code)
		var got []model.TopicProgress
		require.NoError(t, json.Unmarshal(body, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "t1", got[0].TopicID)
		assert.Equal(t, 40, got[0].MasteryScore)
	})
}

func TestProgressHandler_GetTopicProgress(t *testing.T) {
	t.Run("未作成なら404", func(t *testing.T) {
		ts := newTestServer(t)
		ts.progress.On("GetTopicProgress", mock.Anything, testUserID, "t1", "").Return(nil, nil).Once()

		code, body := sendRequest(t, ts, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/t1"})

		assert.Equal(t, http.StatusNotFound, code)
		verifyErrorCode(t, body, "NOT_FOUND")
	})

	t.Run("内部エラーは500", func(t *testing.T) {
		ts := newTestServer(t)
		ts.progress.On("GetTopicProgress", mock.Anything, testUserID, "t1", "").
			Return(nil, model.NewInternalError("進捗の取得に失敗しました。", assert.AnError)).Once()

		code, body := sendRequest(t, ts, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/t1"})

		assert.Equal(t, http.StatusInternalServerError, code)
		verifyErrorCode(t, body, "INTERNAL_SERVER_ERROR")
	})
}

func TestProgressHandler_UpdateTopicProgress(t *testing.T) {
	t.Run("範囲外の習熟度は400でサービスを呼ばない", func(t *testing.T) {
		ts := newTestServer(t)

		code, body := sendRequest(t, ts, httpRequestDetails{
			Method: http.MethodPatch, Path: "/api/v1/progress/t1",
			Body: map[string]interface{}{"mastery_score": 150},
		})

		assert.Equal(t, http.StatusBadRequest, code)
		verifyErrorCode(t, body, "VALIDATION_ERROR")
	})

	t.Run("未知のフィールドは400", func(t *testing.T) {
		ts := newTestServer(t)

		code, body := sendRequest(t, ts, httpRequestDetails{
			Method: http.MethodPatch, Path: "/api/v1/progress/t1",
			Body: `{"unknown": 1}`,
		})

		assert.Equal(t, http.StatusBadRequest, code)
		verifyErrorCode(t, body, "INVALID_REQUEST_BODY")
	})

	t.Run("指定フィールドだけをパッチにする", func(t *testing.T) {
		ts := newTestServer(t)
		ts.progress.On("UpdateTopicProgress", mock.Anything, testUserID, "t1",
			mock.MatchedBy(func(p *model.ProgressPatch) bool {
				return p.MasteryScore != nil && *p.MasteryScore == 60 && p.Status == nil && p.RevisionCount == nil
			}), "").
			Return(&model.TopicProgress{TopicID: "t1", MasteryScore: 60}, nil).Once()

		code, _ := sendRequest(t, ts, httpRequestDetails{
			Method: http.MethodPatch, Path: "/api/v1/progress/t1",
			Body: map[string]interface{}{"mastery_score": 60},
		})

		assert.Equal(t, http.StatusOK, code)
	})
}

func TestProgressHandler_ApplyMockTestScore(t *testing.T) {
	t.Run("score がなければ400", func(t *testing.T) {
		ts := newTestServer(t)

		code, _ := sendRequest(t, ts, httpRequestDetails{
			Method: http.MethodPost, Path: "/api/v1/progress/t1/mock-score",
			Body: map[string]interface{}{},
		})

		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("スコアを渡す", func(t *testing.T) {
		ts := newTestServer(t)
		ts.progress.On("ApplyMockTestScore", mock.Anything, testUserID, "t1", 80, "").
			Return(&model.TopicProgress{TopicID: "t1", MasteryScore: 59}, nil).Once()

		code, body := sendRequest(t, ts, httpRequestDetails{
			Method: http.MethodPost, Path: "/api/v1/progress/t1/mock-score",
			Body: map[string]interface{}{"score": 80},
		})

		assert.Equal(t, http.StatusOK, code)
		var got model.TopicProgress
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, 59, got.MasteryScore)
	})
}

func TestProgressHandler_RecordPractice(t *testing.T) {
	ts := newTestServer(t)
	ts.progress.On("RecordPractice", mock.Anything, testUserID, "t1",
		mock.MatchedBy(func(req *model.PracticeRequest) bool {
			return len(req.QuestionIDs) == 2 && req.Minutes == 30
		}), "").
		Return(&model.TopicProgress{TopicID: "t1", PracticeCount: 1}, nil).Once()

	code, _ := sendRequest(t, ts, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/progress/t1/practice",
		Body: map[string]interface{}{"question_ids": []string{"q1", "q2"}, "minutes": 30},
	})

	assert.Equal(t, http.StatusOK, code)
}

func TestProgressHandler_RequestReview(t *testing.T) {
	ts := newTestServer(t)
	ts.progress.On("RequestReview", mock.Anything, testUserID, "t1", "").
		Return(&model.TopicProgress{TopicID: "t1", NeedsReview: true}, nil).Once()

	code, body := sendRequest(t, ts, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/t1/request-review"})

	assert.Equal(t, http.StatusOK, code)
	var got model.TopicProgress
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.NeedsReview)
}
