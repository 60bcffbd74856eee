// Backfill walks the URL column of a worksheet, extracts every post and
// writes text, author, timestamp and final URL back into the adjacent
// columns. Used to repair sheets populated before extraction existed.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/orwa-kh/syria-post-watch/internal/domain"
	"github.com/orwa-kh/syria-post-watch/internal/extractor/extractorimpl"
	"github.com/orwa-kh/syria-post-watch/internal/posturl"
	"github.com/orwa-kh/syria-post-watch/internal/sheets/sheetsimpl"
	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
)

const requestPause = 3 * time.Second

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: backfill <worksheet name>")
	}
	worksheet := os.Args[1]

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logg := logger.New(logger.Opts{Env: cfg.App.Env})

	sheetClient, err := sheetsimpl.New(sheetsimpl.Opts{Config: cfg, Logger: logg})
	if err != nil {
		log.Fatalf("Failed to create sheets client: %v", err)
	}

	mirror := extractorimpl.NewMirrorScraper(cfg.MirrorList(), logg)
	browser := extractorimpl.NewBrowserScraper(!cfg.Extractor.BrowserHeaded, cfg.Extractor.ChromeExecPath, logg)

	ctx := context.Background()

	urls, err := sheetClient.ColumnValues(ctx, worksheet, "A")
	if err != nil {
		log.Fatalf("Failed to read URL column: %v", err)
	}
	if len(urls) > 0 {
		urls = urls[1:] // skip header
	}
	if len(urls) > cfg.Extractor.DailyLimit {
		urls = urls[:cfg.Extractor.DailyLimit]
	}

	logg.Info("Backfilling worksheet", "worksheet", worksheet, "urls", len(urls))

	for i, url := range urls {
		rowIndex := int64(i + 2) // 1-based, after the header
		if url == "" {
			continue
		}

		content := extractPost(ctx, mirror, browser, url)
		if content.Failed() {
			logg.Warn("Extraction failed", "row", rowIndex, "url", url, "reason", content.Error)
			err = sheetClient.UpdateRow(ctx, worksheet, rowIndex, "B",
				[]interface{}{"Error", "Error", "Error", url})
		} else {
			err = sheetClient.UpdateRow(ctx, worksheet, rowIndex, "B",
				[]interface{}{content.Text, content.Author, content.Timestamp, content.SourceURL})
		}
		if err != nil {
			logg.Error("Failed to update row", "row", rowIndex, "error", err)
		}

		time.Sleep(requestPause)
	}

	logg.Info("Backfill finished", "worksheet", worksheet)
}

// extractPost runs the two-tier pipeline without the failed-post
// bookkeeping; a backfill pass has nowhere sensible to record failures.
func extractPost(ctx context.Context, mirror *extractorimpl.MirrorScraper, browser *extractorimpl.BrowserScraper, url string) domain.ExtractedContent {
	ref, err := posturl.Parse(url)
	if err != nil {
		return domain.ExtractedContent{SourceURL: url, Error: err.Error()}
	}

	content := mirror.TryMirrors(ctx, ref)
	if !content.Failed() {
		return content
	}
	return browser.Extract(ctx, url)
}
