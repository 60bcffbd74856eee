package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/orwa-kh/syria-post-watch/internal/classifier"
	"github.com/orwa-kh/syria-post-watch/internal/classifier/classifierimpl"
	"github.com/orwa-kh/syria-post-watch/internal/extractor"
	"github.com/orwa-kh/syria-post-watch/internal/extractor/extractorimpl"
	_ "github.com/orwa-kh/syria-post-watch/internal/migrations"
	"github.com/orwa-kh/syria-post-watch/internal/pgx"
	repositories "github.com/orwa-kh/syria-post-watch/internal/repositories/fx"
	"github.com/orwa-kh/syria-post-watch/internal/server"
	"github.com/orwa-kh/syria-post-watch/internal/sheets"
	"github.com/orwa-kh/syria-post-watch/internal/sheets/sheetsimpl"
	"github.com/orwa-kh/syria-post-watch/internal/telegram"
	"github.com/orwa-kh/syria-post-watch/internal/telegram/telegramimpl"
	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"github.com/orwa-kh/syria-post-watch/pkg/formatter"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var App = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			extractorimpl.New,
			fx.As(new(extractor.Client)),
		),
		fx.Annotate(
			classifierimpl.New,
			fx.As(new(classifier.Client)),
		),
		fx.Annotate(
			sheetsimpl.New,
			fx.As(new(sheets.Client)),
		),
		server.New,
	),
	repositories.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func migrate(c *config.Config) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres",
		fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s ",
			c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
		),
	)
	if err != nil {
		return err
	}
	defer db.Close()

	// Migrations are registered via the blank import above.
	return goose.Up(db, ".")
}

func run(lc fx.Lifecycle, log logger.Logger, srv *server.Server, exClient extractor.Client, tgClient telegram.Client) {
	appCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go srv.Start(appCtx)

			if err := exClient.ScheduleRetrySweep(appCtx); err != nil {
				log.Error("Failed to schedule retry sweep", "Error", err)
				tgClient.SendMessageToUser("*Failed to schedule retry sweep*\n" +
					formatter.EscapeMarkdownV2(err.Error()))
			}

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
