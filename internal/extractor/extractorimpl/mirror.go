package extractorimpl

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/orwa-kh/syria-post-watch/internal/domain"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
)

// browserUserAgent is sent on mirror requests; some instances reject the
// default Go user agent outright.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const mirrorTimeout = 10 * time.Second

// Nitter markup selectors. These are stable across instances because every
// mirror serves the same upstream frontend.
const (
	selTweetText = "div.tweet-content.media-body"
	selFullname  = "a.fullname"
	selTweetDate = "span.tweet-date a"
)

// MirrorScraper fetches a post's rendered HTML from alternative frontends of
// the source platform, in configured order.
type MirrorScraper struct {
	client  *resty.Client
	mirrors []string
	logger  logger.Logger
}

func NewMirrorScraper(mirrors []string, log logger.Logger) *MirrorScraper {
	client := resty.New().
		SetTimeout(mirrorTimeout).
		SetHeader("User-Agent", browserUserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &MirrorScraper{
		client:  client,
		mirrors: mirrors,
		logger:  log.WithComponent("MirrorScraper"),
	}
}

// TryMirrors walks the mirror list in order and returns as soon as one yields
// non-empty post text. Per-mirror failures (network errors, non-200, missing
// text) only advance the loop; an empty result means every mirror was
// exhausted and the caller should fall back to browser automation.
func (m *MirrorScraper) TryMirrors(ctx context.Context, ref domain.PostReference) domain.ExtractedContent {
	for _, base := range m.mirrors {
		mirrorURL := fmt.Sprintf("%s/%s/status/%s", base, ref.AuthorHandle, ref.PostID)

		res, err := m.client.R().SetContext(ctx).Get(mirrorURL)
		if err != nil {
			m.logger.Debug("Mirror request failed", "mirror", base, "error", err)
			continue
		}
		if res.StatusCode() != http.StatusOK {
			m.logger.Debug("Mirror returned non-200", "mirror", base, "status", res.StatusCode())
			continue
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
		if err != nil {
			m.logger.Debug("Mirror returned unparseable HTML", "mirror", base, "error", err)
			continue
		}

		text := strings.TrimSpace(doc.Find(selTweetText).First().Text())
		if text == "" {
			continue
		}

		author := strings.TrimSpace(doc.Find(selFullname).First().Text())
		if author == "" {
			author = ref.AuthorHandle
		}

		timestamp, _ := doc.Find(selTweetDate).First().Attr("title")

		m.logger.Info("Extracted post from mirror", "mirror", base, "post_id", ref.PostID)
		return domain.ExtractedContent{
			Text:      text,
			Author:    author,
			Timestamp: timestamp,
			SourceURL: ref.URL,
		}
	}

	return domain.ExtractedContent{SourceURL: ref.URL}
}
