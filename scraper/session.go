package scraper

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/use-agent/groundtruth/models"
)

// Session owns the single browser window used for every page fetch.
// The browser is launched lazily by Acquire, reused until Reset or Close,
// and relaunched on the next Acquire after either.
type Session struct {
	launch     Launcher
	landingURL string

	mu      sync.Mutex
	current Browser

	opened atomic.Int64
	resets atomic.Int64
}

// NewSession creates a Session that opens browsers with launch. landingURL is
// the known-good page loaded after a reset; empty skips that navigation.
func NewSession(launch Launcher, landingURL string) *Session {
	return &Session{launch: launch, landingURL: landingURL}
}

// Acquire returns the live browser, launching one if none is open.
func (s *Session) Acquire(ctx context.Context) (Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquireLocked(ctx)
}

func (s *Session) acquireLocked(ctx context.Context) (Browser, error) {
	if s.current != nil {
		return s.current, nil
	}
	b, err := s.launch(ctx)
	if err != nil {
		if models.IsKind(err, models.KindBrowserCrash) {
			return nil, err
		}
		return nil, models.NewError(models.KindBrowserCrash, "failed to open browser session", err)
	}
	s.current = b
	n := s.opened.Add(1)
	slog.Info("session: browser opened", "opened", n)
	return b, nil
}

// Reset closes and discards the live browser, opens a new one and points it
// at the landing page.
func (s *Session) Reset(ctx context.Context) (Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeLocked()
	s.resets.Add(1)

	b, err := s.acquireLocked(ctx)
	if err != nil {
		return nil, err
	}
	if s.landingURL != "" {
		if err := b.Navigate(ctx, s.landingURL); err != nil {
			return nil, models.NewError(models.KindNavigation, "failed to load landing page after reset", err)
		}
	}
	slog.Info("session: reset complete", "resets", s.resets.Load())
	return b, nil
}

// Close shuts the live browser down, if any. The next Acquire relaunches.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Session) closeLocked() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	if err != nil {
		slog.Warn("session: browser close failed", "error", err)
	}
	return err
}

// Live reports whether a browser is currently open.
func (s *Session) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Opened returns how many browsers this session has launched.
func (s *Session) Opened() int64 { return s.opened.Load() }

// Resets returns how many times the session has been reset.
func (s *Session) Resets() int64 { return s.resets.Load() }
