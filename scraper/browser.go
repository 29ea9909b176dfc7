package scraper

import (
	"context"

	"github.com/use-agent/groundtruth/models"
)

// Browser is one live browser window. Implementations report failures as
// *models.Error so the fetcher can tell recoverable conditions
// (navigation timeout, stale or covered elements) from fatal ones.
type Browser interface {
	// Navigate loads url and waits for the load event.
	Navigate(ctx context.Context, url string) error

	// HTML returns the current document markup.
	HTML(ctx context.Context) (string, error)

	// Eval runs a JavaScript function expression in the page.
	Eval(ctx context.Context, js string) error

	// Elements returns every element matching loc, in document order.
	Elements(ctx context.Context, loc models.Locator) ([]Element, error)

	// Close tears the window and its browser process down.
	Close() error
}

// Element is a handle to one element in the current document.
type Element interface {
	ScrollIntoView(ctx context.Context) error
	Click(ctx context.Context) error
}

// Launcher opens a fresh Browser. The Session calls it on first use and
// after every reset.
type Launcher func(ctx context.Context) (Browser, error)

// Hook runs after a page has loaded and been scrolled, before any
// interaction steps. Hooks may mutate the page but cannot fail the fetch.
type Hook func(ctx context.Context, b Browser)
