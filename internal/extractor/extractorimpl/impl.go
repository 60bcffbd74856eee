package extractorimpl

import (
	"context"
	"fmt"

	"github.com/orwa-kh/syria-post-watch/internal/domain"
	"github.com/orwa-kh/syria-post-watch/internal/extractor"
	"github.com/orwa-kh/syria-post-watch/internal/posturl"
	"github.com/orwa-kh/syria-post-watch/internal/repositories/failedpost"
	"github.com/orwa-kh/syria-post-watch/internal/telegram"
	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"github.com/orwa-kh/syria-post-watch/pkg/formatter"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
	"go.uber.org/fx"
)

// The two extraction tiers behind the orchestrator. Narrow interfaces so
// tests can count invocations.
type mirrorScraper interface {
	TryMirrors(ctx context.Context, ref domain.PostReference) domain.ExtractedContent
}

type browserScraper interface {
	Extract(ctx context.Context, url string) domain.ExtractedContent
}

type Opts struct {
	fx.In

	FailedRepo failedpost.Repository
	Telegram   telegram.Client
	Logger     logger.Logger
	Config     *config.Config
}

type ExtractorImpl struct {
	FailedRepo failedpost.Repository
	Telegram   telegram.Client
	Logger     logger.Logger
	Config     *config.Config

	mirror  mirrorScraper
	browser browserScraper
}

func New(opts Opts) *ExtractorImpl {
	return &ExtractorImpl{
		FailedRepo: opts.FailedRepo,
		Telegram:   opts.Telegram,
		Logger:     opts.Logger.WithComponent("Extractor"),
		Config:     opts.Config,
		mirror:     NewMirrorScraper(opts.Config.MirrorList(), opts.Logger),
		browser:    NewBrowserScraper(!opts.Config.Extractor.BrowserHeaded, opts.Config.Extractor.ChromeExecPath, opts.Logger),
	}
}

var _ extractor.Client = (*ExtractorImpl)(nil)

// Extract runs the two-tier pipeline and records terminal failures.
func (e *ExtractorImpl) Extract(ctx context.Context, url string) domain.ExtractedContent {
	content := e.extractOnce(ctx, url)
	if content.Failed() {
		e.recordFailure(ctx, url, content.Error)
	}
	return content
}

// extractOnce is the pipeline without failure bookkeeping: parse the URL, try
// every mirror in order, then fall back to the browser exactly once. The
// offline retry sweep uses this directly so repeated failures do not spam
// notifications.
func (e *ExtractorImpl) extractOnce(ctx context.Context, url string) domain.ExtractedContent {
	ref, err := posturl.Parse(url)
	if err != nil {
		return domain.ExtractedContent{
			SourceURL: url,
			Error:     err.Error(),
		}
	}

	content := e.mirror.TryMirrors(ctx, ref)
	if !content.Failed() {
		return content
	}

	e.Logger.Warn("All mirrors failed, falling back to browser automation", "url", url)
	return e.browser.Extract(ctx, url)
}

func (e *ExtractorImpl) recordFailure(ctx context.Context, url string, reason string) {
	if reason == "" {
		reason = "extraction failed"
	}
	if err := e.FailedRepo.Add(ctx, url, reason); err != nil {
		e.Logger.Error("Failed to record failed post", "url", url, "error", err)
		return
	}
	e.Logger.Warn("Recorded failed extraction", "url", url, "reason", reason)
	e.Telegram.SendMessageToUser(fmt.Sprintf("*Extraction failed*\n%s\n%s",
		formatter.EscapeMarkdownV2(url), formatter.EscapeMarkdownV2(reason)))
}
