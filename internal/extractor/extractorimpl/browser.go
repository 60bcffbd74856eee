package extractorimpl

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/orwa-kh/syria-post-watch/internal/domain"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
)

const (
	navigateTimeout   = 15 * time.Second
	markerTimeout     = 10 * time.Second
	bestEffortTimeout = 3 * time.Second
)

// X.com renders client side; these elements only exist once the post has
// fully hydrated.
const (
	selPostText   = `div[data-testid="tweetText"]`
	selAuthorName = `div[data-testid="User-Names"] span`
	selPostTime   = `time`
)

// BrowserScraper drives a headless browser against the canonical site. Every
// call launches a fresh isolated instance and tears it down on all exit
// paths; nothing is pooled or reused between calls.
type BrowserScraper struct {
	headless bool
	execPath string
	logger   logger.Logger

	run func(ctx context.Context, actions ...chromedp.Action) error
}

func NewBrowserScraper(headless bool, execPath string, log logger.Logger) *BrowserScraper {
	return &BrowserScraper{
		headless: headless,
		execPath: execPath,
		logger:   log.WithComponent("BrowserScraper"),
		run:      chromedp.Run,
	}
}

func (b *BrowserScraper) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.NoSandbox,
		chromedp.IgnoreCertErrors,
		chromedp.UserAgent(browserUserAgent),
		chromedp.WindowSize(1920, 1080),

		// navigator.webdriver is the first thing x.com checks
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}
	return opts
}

// Extract navigates to the canonical post URL, waits for the post text to
// materialize and reads text, author and timestamp. Author and timestamp are
// best effort with short timeouts; only missing post text counts as failure.
func (b *BrowserScraper) Extract(ctx context.Context, url string) domain.ExtractedContent {
	out := domain.ExtractedContent{SourceURL: url}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	// The first Run binds the browser process to the context it is given.
	// Start it on the session context; the per-step deadlines below must
	// only cancel their own step, not the whole browser.
	if err := b.run(browserCtx); err != nil {
		b.logger.Warn("Browser failed to start", "url", url, "error", err)
		out.Error = "browser start failed: " + err.Error()
		return out
	}

	navCtx, navCancel := context.WithTimeout(browserCtx, navigateTimeout)
	defer navCancel()
	if err := b.run(navCtx, chromedp.Navigate(url)); err != nil {
		b.logger.Warn("Browser navigation failed", "url", url, "error", err)
		out.Error = "navigation failed: " + err.Error()
		return out
	}

	waitCtx, waitCancel := context.WithTimeout(browserCtx, markerTimeout)
	defer waitCancel()
	var text string
	err := b.run(waitCtx,
		chromedp.WaitVisible(selPostText, chromedp.ByQuery),
		chromedp.Text(selPostText, &text, chromedp.ByQuery),
	)
	if err != nil {
		b.logger.Warn("Post text never appeared", "url", url, "error", err)
		out.Error = "empty or private tweet"
		return out
	}
	out.Text = strings.TrimSpace(text)

	authorCtx, authorCancel := context.WithTimeout(browserCtx, bestEffortTimeout)
	defer authorCancel()
	var author string
	if err := b.run(authorCtx, chromedp.Text(selAuthorName, &author, chromedp.ByQuery)); err == nil {
		out.Author = strings.TrimSpace(author)
	}

	timeCtx, timeCancel := context.WithTimeout(browserCtx, bestEffortTimeout)
	defer timeCancel()
	var datetime string
	var ok bool
	if err := b.run(timeCtx, chromedp.AttributeValue(selPostTime, "datetime", &datetime, &ok, chromedp.ByQuery)); err == nil && ok {
		out.Timestamp = datetime
	}

	if out.Text == "" {
		out.Error = "empty or private tweet"
	}
	return out
}
