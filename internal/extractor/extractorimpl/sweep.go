package extractorimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"golang.org/x/time/rate"
)

// sweepPace bounds how fast the offline sweep hammers mirrors and the
// canonical site.
var sweepPace = rate.Every(3 * time.Second)

const defaultSweepMinutes = 60

// RetryFailed re-runs the full extraction pipeline over every stored failed
// post, removing those that now succeed. Entries that fail again stay put.
func (e *ExtractorImpl) RetryFailed(ctx context.Context) (int, error) {
	failed, err := e.FailedRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load failed posts: %w", err)
	}
	if len(failed) == 0 {
		e.Logger.Info("No failed posts to retry")
		return 0, nil
	}

	e.Logger.Info("Retrying failed posts", "count", len(failed))
	limiter := rate.NewLimiter(sweepPace, 1)

	recovered := 0
	for _, post := range failed {
		if err := limiter.Wait(ctx); err != nil {
			return recovered, err
		}

		content := e.extractOnce(ctx, post.URL)
		if content.Failed() {
			e.Logger.Warn("Post still failing", "url", post.URL, "reason", content.Error)
			continue
		}

		if err := e.FailedRepo.Remove(ctx, post.URL); err != nil {
			e.Logger.Error("Failed to remove recovered post", "url", post.URL, "error", err)
			continue
		}
		recovered++
		e.Logger.Info("Recovered failed post", "url", post.URL)
	}

	e.Logger.Info("Retry sweep finished", "recovered", recovered, "remaining", len(failed)-recovered)
	return recovered, nil
}

// ScheduleRetrySweep registers the periodic offline retry job.
func (e *ExtractorImpl) ScheduleRetrySweep(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create sweep scheduler: %w", err)
	}

	minutes := e.Config.Extractor.SweepMinutes
	if minutes <= 0 {
		e.Logger.Warn("Invalid retry sweep interval, using default",
			"configured_minutes", minutes, "default_minutes", defaultSweepMinutes)
		minutes = defaultSweepMinutes
	}
	interval := time.Duration(minutes) * time.Minute

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				e.Logger.Info("Context cancelled, stopping retry sweep")
				return
			}

			sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
			defer cancel()

			if _, err := e.RetryFailed(sweepCtx); err != nil {
				e.Logger.Error("Retry sweep failed", "error", err)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule retry sweep: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		e.Logger.Info("Stopping retry sweep scheduler")
		if err := scheduler.Shutdown(); err != nil {
			e.Logger.Error("Failed to shut down sweep scheduler", "error", err)
		}
	}()

	return nil
}
