package scraper

import (
	"context"
	"fmt"
	"sync"

	"github.com/use-agent/groundtruth/models"
)

// fakeBrowser is a scripted Browser. Navigate pops navErrs in order and
// succeeds once they run out. Navigating to a URL in stall blocks until the
// context ends.
type fakeBrowser struct {
	mu        sync.Mutex
	navErrs   []error
	stall     map[string]bool
	navigated []string
	evals     []string
	html      string
	elements  map[string][]*fakeElement
	lookups   map[string]int
	closed    bool
}

func newFakeBrowser(html string) *fakeBrowser {
	return &fakeBrowser{
		html:     html,
		elements: map[string][]*fakeElement{},
		lookups:  map[string]int{},
	}
}

func (b *fakeBrowser) Navigate(ctx context.Context, url string) error {
	b.mu.Lock()
	b.navigated = append(b.navigated, url)
	stalled := b.stall[url]
	b.mu.Unlock()
	if stalled {
		<-ctx.Done()
		return ctx.Err()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.navErrs) == 0 {
		return nil
	}
	err := b.navErrs[0]
	b.navErrs = b.navErrs[1:]
	return err
}

func (b *fakeBrowser) HTML(context.Context) (string, error) { return b.html, nil }

func (b *fakeBrowser) Eval(_ context.Context, js string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.evals = append(b.evals, js)
	return nil
}

func (b *fakeBrowser) Elements(_ context.Context, loc models.Locator) ([]Element, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lookups[loc.Value]++
	els := b.elements[loc.Value]
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out, nil
}

func (b *fakeBrowser) Close() error {
	b.closed = true
	return nil
}

// fakeElement pops clickErrs on each Click and succeeds once they run out.
// The first hangs clicks block until the context ends, the way Rod waits on
// an element that never becomes interactable.
type fakeElement struct {
	clickErrs []error
	hangs     int
	clicks    int
	scrolls   int
}

func (e *fakeElement) ScrollIntoView(context.Context) error {
	e.scrolls++
	return nil
}

func (e *fakeElement) Click(ctx context.Context) error {
	e.clicks++
	if e.hangs > 0 {
		e.hangs--
		<-ctx.Done()
		return ctx.Err()
	}
	if len(e.clickErrs) == 0 {
		return nil
	}
	err := e.clickErrs[0]
	e.clickErrs = e.clickErrs[1:]
	return err
}

// fakeLauncher hands out the given browsers in order.
type fakeLauncher struct {
	browsers []*fakeBrowser
	calls    int
}

func (l *fakeLauncher) launch(context.Context) (Browser, error) {
	if l.calls >= len(l.browsers) {
		return nil, fmt.Errorf("launcher exhausted after %d browsers", l.calls)
	}
	b := l.browsers[l.calls]
	l.calls++
	return b, nil
}
