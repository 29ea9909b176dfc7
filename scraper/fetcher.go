package scraper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/use-agent/groundtruth/config"
	"github.com/use-agent/groundtruth/models"
)

// scrollToBottomJS triggers lazy-loaded content below the fold.
const scrollToBottomJS = `() => window.scrollTo(0, document.body.scrollHeight)`

// PageFetcher loads pages through a Session. A fetcher is safe for concurrent
// use, but fetches are serialized: each one holds the session from
// navigation until the markup has been read.
type PageFetcher struct {
	session *Session
	cfg     config.FetcherConfig

	mu    sync.Mutex
	hooks []Hook

	fetches atomic.Int64
}

// NewPageFetcher creates a PageFetcher over session. Hooks run, in order,
// after every page load.
func NewPageFetcher(session *Session, cfg config.FetcherConfig, hooks ...Hook) *PageFetcher {
	if cfg.InteractionAttempts < 1 {
		cfg.InteractionAttempts = 1
	}
	f := &PageFetcher{session: session, cfg: cfg, hooks: hooks}
	if cfg.RemoveOverlays {
		f.hooks = append(f.hooks, RemoveOverlays)
	}
	return f
}

// AddHook registers a post-load hook for subsequent fetches.
func (f *PageFetcher) AddHook(h Hook) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks = append(f.hooks, h)
}

// Fetch navigates to url, lets the page settle, runs hooks and
// interaction steps, and returns the resulting document markup.
//
// Lifecycle:
//
//  1. Acquire          – launch the browser on first use
//  2. Navigate         – on timeout, reset the session and retry once
//  3. Settle + scroll  – wait SettleWait, scroll to the bottom
//  4. Hooks            – post-load side effects
//  5. Steps            – click with retry, wait per step
//  6. Settle + read    – wait SettleWait, return page markup
func (f *PageFetcher) Fetch(ctx context.Context, url string, steps ...models.InteractionStep) (string, error) {
	for _, step := range steps {
		if err := step.Validate(); err != nil {
			return "", models.NewError(models.KindInvalidInput, "invalid interaction step", err)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches.Add(1)

	// ── 1. Acquire ──────────────────────────────────────────────────
	b, err := f.session.Acquire(ctx)
	if err != nil {
		return "", err
	}

	// ── 2. Navigate (one reset + retry on timeout) ─────────────────
	if err := f.navigate(ctx, b, url); err != nil {
		if !models.IsKind(err, models.KindNavigationTimeout) {
			return "", err
		}
		slog.Warn("fetcher: navigation timed out, resetting session and retrying",
			"url", url, "error", err,
		)
		if b, err = f.reset(ctx); err != nil {
			return "", err
		}
		if err := f.navigate(ctx, b, url); err != nil {
			return "", err
		}
	}

	// ── 3. Settle + scroll ──────────────────────────────────────────
	if err := sleep(ctx, f.cfg.SettleWait); err != nil {
		return "", err
	}
	if err := b.Eval(ctx, scrollToBottomJS); err != nil {
		slog.Debug("fetcher: scroll to bottom failed", "url", url, "error", err)
	}

	// ── 4. Hooks ────────────────────────────────────────────────────
	for _, h := range f.hooks {
		h(ctx, b)
	}

	// ── 5. Interaction steps ────────────────────────────────────────
	for i, step := range steps {
		if err := f.runStep(ctx, b, i, step); err != nil {
			return "", err
		}
	}

	// ── 6. Settle + read markup ─────────────────────────────────────
	if err := sleep(ctx, f.cfg.SettleWait); err != nil {
		return "", err
	}
	html, err := b.HTML(ctx)
	if err != nil {
		return "", categorizeError(ctx, err, "failed to read page markup")
	}
	return html, nil
}

// Stats returns the session and fetch counters.
func (f *PageFetcher) Stats() models.SessionStats {
	return models.SessionStats{
		Live:    f.session.Live(),
		Opened:  f.session.Opened(),
		Resets:  f.session.Resets(),
		Fetches: f.fetches.Load(),
	}
}

// Close shuts the underlying session down.
func (f *PageFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.Close()
}

// reset relaunches the session with the landing-page load bounded by
// NavigationTimeout.
func (f *PageFetcher) reset(ctx context.Context) (Browser, error) {
	if f.cfg.NavigationTimeout <= 0 {
		return f.session.Reset(ctx)
	}
	resetCtx, cancel := context.WithTimeout(ctx, f.cfg.NavigationTimeout)
	defer cancel()
	return f.session.Reset(resetCtx)
}

func (f *PageFetcher) navigate(ctx context.Context, b Browser, url string) error {
	navCtx := ctx
	if f.cfg.NavigationTimeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(ctx, f.cfg.NavigationTimeout)
		defer cancel()
	}
	if err := b.Navigate(navCtx, url); err != nil {
		return categorizeError(ctx, err, "navigation to "+url+" failed")
	}
	return nil
}

// categorizeError maps raw driver errors to typed errors. A deadline hit by
// the navigation timeout becomes KindNavigationTimeout; cancellation of the
// caller's own context does not.
func categorizeError(parent context.Context, err error, msg string) error {
	var typed *models.Error
	if errors.As(err, &typed) {
		return err
	}
	switch {
	case parent.Err() != nil:
		return models.NewError(models.KindNavigation, "request canceled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewError(models.KindNavigationTimeout, msg, err)
	default:
		return models.NewError(models.KindNavigation, msg, err)
	}
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
