package sheets

import (
	"context"

	"github.com/orwa-kh/syria-post-watch/internal/domain"
)

// Outcome describes what happened to an append call.
type Outcome int

const (
	OutcomeAppended Outcome = iota
	OutcomeDeduped
)

//go:generate go run go.uber.org/mock/mockgen -source=sheets.go -destination=mocks/mock.go
type Client interface {
	// Append routes the row to the worksheet selected by the source tag,
	// skips it when the URL already appears in the recent-history window,
	// and otherwise appends it with retry on transient failure.
	Append(ctx context.Context, source string, row domain.LogRow) (Outcome, error)
}
