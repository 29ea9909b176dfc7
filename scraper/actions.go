package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/use-agent/groundtruth/models"
)

// retryable lists the interaction failures worth another attempt.
var retryable = []models.ErrorKind{
	models.KindIndexOutOfRange,
	models.KindNotInteractable,
	models.KindClickIntercepted,
	models.KindStaleElement,
	models.KindInteractionTimeout,
}

func isRetryable(err error) bool {
	for _, k := range retryable {
		if models.IsKind(err, k) {
			return true
		}
	}
	return false
}

// runStep clicks the step's target, retrying transient failures up to
// InteractionAttempts times. Before each retry the backup locator's matches
// are clicked and InteractionBackoff is slept. The step's own Wait is slept
// once the step succeeds or runs out of attempts.
func (f *PageFetcher) runStep(ctx context.Context, b Browser, n int, step models.InteractionStep) error {
	var lastErr error
	for attempt := 1; attempt <= f.cfg.InteractionAttempts; attempt++ {
		if attempt > 1 {
			if step.Backup != nil {
				f.withAttemptTimeout(ctx, func(actx context.Context) error {
					clickAll(actx, b, *step.Backup)
					return nil
				})
			}
			if err := sleep(ctx, f.cfg.InteractionBackoff); err != nil {
				return err
			}
		}

		lastErr = f.withAttemptTimeout(ctx, func(actx context.Context) error {
			return clickNth(actx, b, step.Locator, step.Index)
		})
		if lastErr == nil {
			break
		}
		if ctx.Err() != nil {
			return models.NewError(models.KindNavigation, "request canceled", ctx.Err())
		}
		slog.Warn("fetcher: interaction failed",
			"step", n,
			"locator", step.Locator.String(),
			"index", step.Index,
			"attempt", attempt,
			"error", lastErr,
		)
		if !isRetryable(lastErr) {
			return lastErr
		}
	}

	if err := sleep(ctx, step.Wait); err != nil {
		return err
	}
	if lastErr != nil {
		return models.NewError(models.KindInteractionExhausted,
			fmt.Sprintf("step %d (%s) failed after %d attempts", n, step.Locator, f.cfg.InteractionAttempts),
			lastErr,
		)
	}
	return nil
}

// withAttemptTimeout runs fn under InteractionTimeout. Running out of that
// budget, while the caller's context is still live, is KindInteractionTimeout.
func (f *PageFetcher) withAttemptTimeout(ctx context.Context, fn func(context.Context) error) error {
	if f.cfg.InteractionTimeout <= 0 {
		return fn(ctx)
	}
	actx, cancel := context.WithTimeout(ctx, f.cfg.InteractionTimeout)
	defer cancel()

	err := fn(actx)
	if err != nil && ctx.Err() == nil && errors.Is(actx.Err(), context.DeadlineExceeded) {
		return models.NewError(models.KindInteractionTimeout,
			fmt.Sprintf("attempt exceeded %s", f.cfg.InteractionTimeout), err)
	}
	return err
}

// clickNth scrolls the index-th match of loc into view and clicks it.
func clickNth(ctx context.Context, b Browser, loc models.Locator, index int) error {
	els, err := b.Elements(ctx, loc)
	if err != nil {
		return err
	}
	if index >= len(els) {
		return models.NewError(models.KindIndexOutOfRange,
			fmt.Sprintf("%s matched %d elements, wanted index %d", loc, len(els), index), nil)
	}
	el := els[index]
	if err := el.ScrollIntoView(ctx); err != nil {
		return err
	}
	return el.Click(ctx)
}

// clickAll clicks every match of loc. Failures are logged and ignored.
func clickAll(ctx context.Context, b Browser, loc models.Locator) {
	els, err := b.Elements(ctx, loc)
	if err != nil {
		slog.Debug("fetcher: backup locator lookup failed", "locator", loc.String(), "error", err)
		return
	}
	for i, el := range els {
		if err := el.Click(ctx); err != nil {
			slog.Debug("fetcher: backup click failed", "locator", loc.String(), "index", i, "error", err)
		}
	}
}
