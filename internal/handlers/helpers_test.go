// helpers_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"study_keep/internal/handlers"
	"study_keep/internal/model"
	"study_keep/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-1"

// fakePinger は /health 用のDB代替
type fakePinger struct {
	err error
}

func (p *fakePinger) PingContext(ctx context.Context) error {
	return p.err
}

// testServer はサービスのモックを差し込んだサーバー
type testServer struct {
	server   *httptest.Server
	progress *mocks.ProgressService
	revision *mocks.RevisionService
	syllabus *mocks.SyllabusService
	dailyLog *mocks.DailyLogService
	profile  *mocks.ProfileService
	note     *mocks.NoteService
	pinger   *fakePinger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		progress: new(mocks.ProgressService),
		revision: new(mocks.RevisionService),
		syllabus: new(mocks.SyllabusService),
		dailyLog: new(mocks.DailyLogService),
		profile:  new(mocks.ProfileService),
		note:     new(mocks.NoteService),
		pinger:   &fakePinger{},
	}
	router := handlers.NewRouter(&handlers.Handlers{
		Progress: handlers.NewProgressHandler(ts.progress),
		Revision: handlers.NewRevisionHandler(ts.revision),
		Syllabus: handlers.NewSyllabusHandler(ts.syllabus),
		DailyLog: handlers.NewDailyLogHandler(ts.dailyLog),
		Profile:  handlers.NewProfileHandler(ts.profile),
		Note:     handlers.NewNoteHandler(ts.note),
		Health:   handlers.NewHealthHandler(ts.pinger),
	})
	ts.server = httptest.NewServer(router)
	t.Cleanup(func() {
		ts.server.Close()
		ts.progress.AssertExpectations(t)
		ts.revision.AssertExpectations(t)
		ts.syllabus.AssertExpectations(t)
		ts.dailyLog.AssertExpectations(t)
		ts.profile.AssertExpectations(t)
		ts.note.AssertExpectations(t)
	})
	return ts
}

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
	NoUser  bool // X-User-ID を付けない
}

// sendRequest はリクエストを送信し、ステータスコードとボディを返します。
func sendRequest(t *testing.T, ts *testServer, details httpRequestDetails) (int, []byte) {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, ts.server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !details.NoUser {
		req.Header.Set("X-User-ID", testUserID)
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := ts.server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	return resp.StatusCode, body
}

// verifyErrorCode はエラーレスポンスのコードを検証します。
func verifyErrorCode(t *testing.T, body []byte, expectedCode string) {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp), "body: %s", string(body))
	assert.Equal(t, expectedCode, errResp.Error.Code)
}
