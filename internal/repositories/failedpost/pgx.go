package failedpost

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orwa-kh/syria-post-watch/internal/domain"
	"github.com/orwa-kh/syria-post-watch/internal/repositories"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("FailedPostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Add records a URL whose extraction failed through every tier. The unique
// index on url makes re-adding a no-op.
func (p *Pgx) Add(ctx context.Context, url string, reason string) error {
	query, args, err := repositories.SqBuilder.
		Insert("failed_posts").
		Columns("url", "reason", "created_at").
		Values(url, reason, time.Now()).
		Suffix("ON CONFLICT (url) DO NOTHING").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}

// GetAll returns every recorded failed post, oldest first.
func (p *Pgx) GetAll(ctx context.Context) ([]*domain.FailedPost, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "url", "reason", "created_at").
		From("failed_posts").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.FailedPost
	for rows.Next() {
		var post domain.FailedPost
		if err := rows.Scan(&post.ID, &post.URL, &post.Reason, &post.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// Remove deletes a URL after a successful offline retry.
func (p *Pgx) Remove(ctx context.Context, url string) error {
	query, args, err := repositories.SqBuilder.
		Delete("failed_posts").
		Where(sq.Eq{"url": url}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
