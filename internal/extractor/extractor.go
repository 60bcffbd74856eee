package extractor

import (
	"context"

	"github.com/orwa-kh/syria-post-watch/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/mock.go
type Client interface {
	// Extract resolves a post URL into its text, author and timestamp by
	// trying the configured mirrors in order and falling back to headless
	// browser automation once all mirrors are exhausted. A terminal failure
	// is recorded in the failed-post store and returned with an empty Text
	// and a populated Error field.
	Extract(ctx context.Context, url string) domain.ExtractedContent

	// RetryFailed re-runs the full extraction pipeline over every stored
	// failed post, removing entries that now succeed. Returns how many
	// entries were recovered.
	RetryFailed(ctx context.Context) (int, error)

	// ScheduleRetrySweep registers the periodic offline retry job.
	ScheduleRetrySweep(ctx context.Context) error
}
