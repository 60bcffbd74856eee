package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orwa-kh/syria-post-watch/internal/classifier"
	mock_classifier "github.com/orwa-kh/syria-post-watch/internal/classifier/mocks"
	"github.com/orwa-kh/syria-post-watch/internal/domain"
	mock_extractor "github.com/orwa-kh/syria-post-watch/internal/extractor/mocks"
	"github.com/orwa-kh/syria-post-watch/internal/sheets"
	mock_sheets "github.com/orwa-kh/syria-post-watch/internal/sheets/mocks"
	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeTelegram struct {
	messages []string
}

func (f *fakeTelegram) SendMessageToUser(msg string) {
	f.messages = append(f.messages, msg)
}

type testServer struct {
	srv        *Server
	extractor  *mock_extractor.MockClient
	classifier *mock_classifier.MockClient
	sheets     *mock_sheets.MockClient
	telegram   *fakeTelegram
}

func newTestServer(t *testing.T) *testServer {
	ctrl := gomock.NewController(t)

	ts := &testServer{
		extractor:  mock_extractor.NewMockClient(ctrl),
		classifier: mock_classifier.NewMockClient(ctrl),
		sheets:     mock_sheets.NewMockClient(ctrl),
		telegram:   &fakeTelegram{},
	}
	ts.srv = New(Opts{
		Extractor:  ts.extractor,
		Classifier: ts.classifier,
		Sheets:     ts.sheets,
		Telegram:   ts.telegram,
		Logger:     logger.New(logger.Opts{}),
		Config:     &config.Config{},
	})
	return ts
}

func (ts *testServer) classify(t *testing.T, req domain.ClassifyRequest) *httptest.ResponseRecorder {
	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/classify", bytes.NewReader(body))
	w := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(w, r)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) domain.ClassifyResponse {
	var resp domain.ClassifyResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestClassifyPlainTextSkipsExtraction(t *testing.T) {
	ts := newTestServer(t)

	input := "We must remove them before they poison more minds."
	ts.classifier.EXPECT().
		Classify(gomock.Any(), input).
		Return(classifier.Result{Label: "Incitement to Violence", Reason: "explicit call"}, nil)

	var persisted domain.LogRow
	ts.sheets.EXPECT().
		Append(gomock.Any(), "popup", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, row domain.LogRow) (sheets.Outcome, error) {
			persisted = row
			return sheets.OutcomeAppended, nil
		})

	w := ts.classify(t, domain.ClassifyRequest{Text: input, Source: domain.SourcePopup})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.Equal(t, "Incitement to Violence", resp.Label)
	require.Equal(t, "explicit call", resp.Reason)

	require.Equal(t, input, persisted.Text)
	require.Empty(t, persisted.URL)
	require.Equal(t, domain.SourcePopup, persisted.SourceTag)
}

func TestClassifyURLExtractsFirst(t *testing.T) {
	ts := newTestServer(t)

	url := "https://x.com/someuser/status/1234567890"
	ts.extractor.EXPECT().
		Extract(gomock.Any(), url).
		Return(domain.ExtractedContent{
			Text:      "line one\nline two",
			Author:    "Some User",
			Timestamp: "Jun 1, 2025",
			SourceURL: url,
		})
	ts.classifier.EXPECT().
		Classify(gomock.Any(), "line one\nline two").
		Return(classifier.Result{Label: "Neutral"}, nil)

	var persisted domain.LogRow
	ts.sheets.EXPECT().
		Append(gomock.Any(), "extension", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, row domain.LogRow) (sheets.Outcome, error) {
			persisted = row
			return sheets.OutcomeAppended, nil
		})

	w := ts.classify(t, domain.ClassifyRequest{Text: url, Source: "extension"})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Neutral", decodeResponse(t, w).Label)

	// Newlines are flattened before the row is written.
	require.Equal(t, "line one line two", persisted.Text)
	require.Equal(t, url, persisted.URL)
	require.Equal(t, "Some User", persisted.Author)
	require.Equal(t, "Jun 1, 2025", persisted.PostTime)
}

func TestClassifyExtractionFailure(t *testing.T) {
	ts := newTestServer(t)

	url := "https://x.com/someuser/status/404404404"
	ts.extractor.EXPECT().
		Extract(gomock.Any(), url).
		Return(domain.ExtractedContent{SourceURL: url, Error: "empty or private tweet"})

	w := ts.classify(t, domain.ClassifyRequest{Text: url, Source: "extension"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Could not extract text from the input")
}

func TestClassifyEmptyInput(t *testing.T) {
	ts := newTestServer(t)

	w := ts.classify(t, domain.ClassifyRequest{Text: "   ", Source: "extension"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Empty input")
}

func TestClassifyClassifierFailure(t *testing.T) {
	ts := newTestServer(t)

	ts.classifier.EXPECT().
		Classify(gomock.Any(), gomock.Any()).
		Return(classifier.Result{}, errors.New("upstream timeout"))

	w := ts.classify(t, domain.ClassifyRequest{Text: "some ordinary text", Source: "extension"})

	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestClassifyPersistFailureStillSucceeds(t *testing.T) {
	ts := newTestServer(t)

	ts.classifier.EXPECT().
		Classify(gomock.Any(), gomock.Any()).
		Return(classifier.Result{Label: "Neutral"}, nil)
	ts.sheets.EXPECT().
		Append(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(sheets.OutcomeAppended, errors.New("quota exceeded"))

	w := ts.classify(t, domain.ClassifyRequest{Text: "some ordinary text", Source: "extension"})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Neutral", decodeResponse(t, w).Label)
	// The operator hears about it even though the caller does not.
	require.Len(t, ts.telegram.messages, 1)
}

func TestClassifyMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/classify", nil)
	w := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(w, r)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestClassifyRateLimit(t *testing.T) {
	ts := newTestServer(t)

	ts.classifier.EXPECT().
		Classify(gomock.Any(), gomock.Any()).
		Return(classifier.Result{Label: "Neutral"}, nil).
		AnyTimes()
	ts.sheets.EXPECT().
		Append(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(sheets.OutcomeAppended, nil).
		AnyTimes()

	var limited bool
	for i := 0; i < 10; i++ {
		w := ts.classify(t, domain.ClassifyRequest{Text: "some ordinary text", Source: "extension"})
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	require.True(t, limited)
}

type failingWriter struct {
	header      http.Header
	writeCalls  int
	headerCalls int
}

func (f *failingWriter) Header() http.Header {
	if f.header == nil {
		f.header = http.Header{}
	}
	return f.header
}

func (f *failingWriter) Write([]byte) (int, error) {
	f.writeCalls++
	return 0, errors.New("client went away")
}

func (f *failingWriter) WriteHeader(int) {
	f.headerCalls++
}

func TestHealthzWriteFailureWritesNothingFurther(t *testing.T) {
	ts := newTestServer(t)

	w := &failingWriter{}
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	ts.srv.Handler().ServeHTTP(w, r)

	// The failed write already committed the response; no second status
	// line or body may follow it.
	require.Equal(t, 1, w.writeCalls)
	require.Equal(t, 0, w.headerCalls)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}
