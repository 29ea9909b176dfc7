package extract

import (
	"context"
	"log/slog"

	"github.com/use-agent/groundtruth/cache"
	"github.com/use-agent/groundtruth/models"
)

// PageFetcher loads a page through the shared browser session.
// *scraper.PageFetcher satisfies it.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, steps ...models.InteractionStep) (string, error)
}

// Service resolves a URL to an extracted Document: registry lookup, fetch
// (the extractor's own source or the browser), and extraction.
type Service struct {
	registry *Registry
	pages    PageFetcher
	cache    *cache.Cache
}

// NewService creates a Service. docs may be nil to disable caching.
func NewService(registry *Registry, pages PageFetcher, docs *cache.Cache) *Service {
	return &Service{registry: registry, pages: pages, cache: docs}
}

// Registry returns the extractor registry in use.
func (s *Service) Registry() *Registry { return s.registry }

// Document fetches and extracts url. Interaction steps force the browser
// path and bypass the cache, since their result depends on the steps.
func (s *Service) Document(ctx context.Context, url string, steps ...models.InteractionStep) (*models.Document, error) {
	ex, err := s.registry.Lookup(url)
	if err != nil {
		return nil, err
	}
	// Fail before fetching anything for sites nobody can extract.
	if u, ok := ex.(Unimplemented); ok {
		_, err := u.Extract("")
		return nil, err
	}

	key := cache.Key(url, ex.Name())
	if len(steps) == 0 {
		if doc, ok := s.cache.Get(key); ok {
			slog.Debug("extract: cache hit", "url", url)
			return doc, nil
		}
	}

	markup, err := s.fetch(ctx, ex, url, steps)
	if err != nil {
		return nil, err
	}
	text, err := ex.Extract(markup)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{URL: url, Extractor: ex.Name(), Text: text}
	if len(steps) == 0 {
		s.cache.Set(key, doc)
	}
	slog.Info("extract: document extracted",
		"url", url, "extractor", ex.Name(), "chars", len(text),
	)
	return doc, nil
}

func (s *Service) fetch(ctx context.Context, ex Extractor, url string, steps []models.InteractionStep) (string, error) {
	if so, ok := ex.(SourceOverride); ok && len(steps) == 0 {
		doc, used, err := so.FetchSource(ctx, url)
		if used {
			return doc, err
		}
	}
	return s.pages.Fetch(ctx, url, steps...)
}
