package failedpost

import (
	"context"
	"errors"

	"github.com/orwa-kh/syria-post-watch/internal/domain"
)

var ErrNotFound = errors.New("failed post not found")

//go:generate go run go.uber.org/mock/mockgen -source=failedpost.go -destination=mocks/mock.go
type Repository interface {
	// Add records a URL whose extraction failed through every tier.
	// Re-adding an existing URL is a no-op.
	Add(ctx context.Context, url string, reason string) error

	// GetAll returns every recorded failed post, oldest first.
	GetAll(ctx context.Context) ([]*domain.FailedPost, error)

	// Remove deletes a URL after a successful offline retry.
	Remove(ctx context.Context, url string) error
}
