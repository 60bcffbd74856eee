package extractorimpl

import (
	"context"
	"testing"
	"time"

	"github.com/orwa-kh/syria-post-watch/internal/domain"
	mock_failedpost "github.com/orwa-kh/syria-post-watch/internal/repositories/failedpost/mocks"
	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"github.com/orwa-kh/syria-post-watch/pkg/formatter"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"
)

type fakeMirror struct {
	calls   int
	results map[string]domain.ExtractedContent
}

func (f *fakeMirror) TryMirrors(_ context.Context, ref domain.PostReference) domain.ExtractedContent {
	f.calls++
	if content, ok := f.results[ref.URL]; ok {
		content.SourceURL = ref.URL
		return content
	}
	return domain.ExtractedContent{SourceURL: ref.URL}
}

type fakeBrowser struct {
	calls   int
	results map[string]domain.ExtractedContent
}

func (f *fakeBrowser) Extract(_ context.Context, url string) domain.ExtractedContent {
	f.calls++
	if content, ok := f.results[url]; ok {
		content.SourceURL = url
		return content
	}
	return domain.ExtractedContent{SourceURL: url, Error: "empty or private tweet"}
}

type fakeTelegram struct {
	messages []string
}

func (f *fakeTelegram) SendMessageToUser(msg string) {
	f.messages = append(f.messages, msg)
}

func newTestExtractor(t *testing.T, mirror *fakeMirror, browser *fakeBrowser) (*ExtractorImpl, *mock_failedpost.MockRepository, *fakeTelegram) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_failedpost.NewMockRepository(ctrl)
	tg := &fakeTelegram{}

	e := &ExtractorImpl{
		FailedRepo: repo,
		Telegram:   tg,
		Logger:     logger.New(logger.Opts{}),
		Config:     &config.Config{},
		mirror:     mirror,
		browser:    browser,
	}
	return e, repo, tg
}

const testURL = "https://x.com/someuser/status/123456"

func TestExtractMirrorSuccessSkipsBrowser(t *testing.T) {
	mirror := &fakeMirror{results: map[string]domain.ExtractedContent{
		testURL: {Text: "Sample post", Author: "Some User", Timestamp: "2025-06-01"},
	}}
	browser := &fakeBrowser{}
	e, _, _ := newTestExtractor(t, mirror, browser)

	content := e.Extract(context.Background(), testURL)

	require.Equal(t, "Sample post", content.Text)
	require.Equal(t, "Some User", content.Author)
	require.Equal(t, testURL, content.SourceURL)
	require.Empty(t, content.Error)
	require.Equal(t, 1, mirror.calls)
	require.Equal(t, 0, browser.calls)
}

func TestExtractFallsBackToBrowserOnce(t *testing.T) {
	mirror := &fakeMirror{}
	browser := &fakeBrowser{results: map[string]domain.ExtractedContent{
		testURL: {Text: "Rendered post", Author: "Some User"},
	}}
	e, _, _ := newTestExtractor(t, mirror, browser)

	content := e.Extract(context.Background(), testURL)

	require.Equal(t, "Rendered post", content.Text)
	require.Equal(t, 1, mirror.calls)
	require.Equal(t, 1, browser.calls)
}

func TestExtractTerminalFailureRecorded(t *testing.T) {
	mirror := &fakeMirror{}
	browser := &fakeBrowser{}
	e, repo, tg := newTestExtractor(t, mirror, browser)

	repo.EXPECT().Add(gomock.Any(), testURL, "empty or private tweet").Return(nil)

	content := e.Extract(context.Background(), testURL)

	require.True(t, content.Failed())
	require.Equal(t, "empty or private tweet", content.Error)
	require.Equal(t, 1, browser.calls)
	require.Len(t, tg.messages, 1)
	// The notification is MarkdownV2; interpolated values arrive escaped.
	require.Contains(t, tg.messages[0], formatter.EscapeMarkdownV2(testURL))
	require.Contains(t, tg.messages[0], "empty or private tweet")
}

func TestExtractInvalidURLShortCircuits(t *testing.T) {
	mirror := &fakeMirror{}
	browser := &fakeBrowser{}
	e, repo, _ := newTestExtractor(t, mirror, browser)

	badURL := "https://x.com/someuser"
	repo.EXPECT().Add(gomock.Any(), badURL, "Invalid URL format").Return(nil)

	content := e.Extract(context.Background(), badURL)

	require.True(t, content.Failed())
	require.Equal(t, "Invalid URL format", content.Error)
	require.Equal(t, 0, mirror.calls)
	require.Equal(t, 0, browser.calls)
}

func TestExtractRepeatedFailureReAddsIdempotently(t *testing.T) {
	mirror := &fakeMirror{}
	browser := &fakeBrowser{}
	e, repo, _ := newTestExtractor(t, mirror, browser)

	// The store's unique index makes the second Add a no-op; the
	// orchestrator just calls it again.
	repo.EXPECT().Add(gomock.Any(), testURL, gomock.Any()).Return(nil).Times(2)

	e.Extract(context.Background(), testURL)
	e.Extract(context.Background(), testURL)
}

func TestRetryFailedRemovesRecovered(t *testing.T) {
	prev := sweepPace
	sweepPace = rate.Every(time.Millisecond)
	defer func() { sweepPace = prev }()

	recoveredURL := "https://x.com/firstuser/status/111"
	stuckURL := "https://x.com/seconduser/status/222"

	mirror := &fakeMirror{results: map[string]domain.ExtractedContent{
		recoveredURL: {Text: "now it loads"},
	}}
	browser := &fakeBrowser{}
	e, repo, _ := newTestExtractor(t, mirror, browser)

	repo.EXPECT().GetAll(gomock.Any()).Return([]*domain.FailedPost{
		{ID: 1, URL: recoveredURL},
		{ID: 2, URL: stuckURL},
	}, nil)
	repo.EXPECT().Remove(gomock.Any(), recoveredURL).Return(nil)

	recovered, err := e.RetryFailed(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, recovered)
	require.Equal(t, 1, browser.calls) // only the still-failing URL reached the browser
}

func TestScheduleRetrySweepZeroIntervalFallsBack(t *testing.T) {
	// SweepMinutes is zero in the bare config; scheduling must still
	// succeed on the default interval instead of erroring out.
	e, _, _ := newTestExtractor(t, &fakeMirror{}, &fakeBrowser{})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, e.ScheduleRetrySweep(ctx))
	cancel()
}

func TestRetryFailedEmptyStore(t *testing.T) {
	e, repo, _ := newTestExtractor(t, &fakeMirror{}, &fakeBrowser{})
	repo.EXPECT().GetAll(gomock.Any()).Return(nil, nil)

	recovered, err := e.RetryFailed(context.Background())
	require.NoError(t, err)
	require.Zero(t, recovered)
}
