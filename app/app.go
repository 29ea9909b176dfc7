// Package app assembles the retrieval pipeline from configuration.
package app

import (
	"log/slog"
	"net/http"

	"github.com/use-agent/groundtruth/api"
	"github.com/use-agent/groundtruth/cache"
	"github.com/use-agent/groundtruth/config"
	"github.com/use-agent/groundtruth/extract"
	"github.com/use-agent/groundtruth/llm"
	"github.com/use-agent/groundtruth/reward"
	"github.com/use-agent/groundtruth/scraper"
	"github.com/use-agent/groundtruth/search"
)

// App owns the long-lived pipeline components. The browser is launched
// lazily on the first fetch.
type App struct {
	Fetcher   *scraper.PageFetcher
	Querier   *search.Querier
	Documents *extract.Service
	Scorer    *reward.Scorer
	LLM       *llm.Client

	docs *cache.Cache
}

// New wires every component from cfg.
func New(cfg *config.Config) *App {
	session := scraper.NewSession(scraper.NewRodLauncher(cfg.Browser), cfg.Browser.LandingURL)
	fetcher := scraper.NewPageFetcher(session, cfg.Fetcher)
	if cfg.Fetcher.PageScript != "" {
		fetcher.AddHook(scraper.EvalHook("page_script", cfg.Fetcher.PageScript))
	}

	querier := search.NewQuerier(fetcher, nil, cfg.Search)

	plain := scraper.NewHTTPFetcher(cfg.Browser.Proxy, cfg.Fetcher.HTTPTimeout)
	registry := extract.DefaultRegistry(plain, cfg.Reward.FallbackExtractor)
	docs := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	documents := extract.NewService(registry, fetcher, docs)

	client := llm.NewClient(&http.Client{Timeout: cfg.LLM.Timeout}, llm.Params{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
	})
	if cfg.LLM.APIKey == "" {
		slog.Warn("app: no LLM API key configured, scoring requests may be rejected")
	}

	slog.Debug("app: pipeline ready",
		"search_host", cfg.Search.Host,
		"sites", cfg.Search.Sites,
		"ensemble", cfg.Search.Ensemble,
		"extractors", documents.Registry().Domains(),
		"fallback", cfg.Reward.FallbackExtractor,
		"model", client.Model(),
	)

	return &App{
		Fetcher:   fetcher,
		Querier:   querier,
		Documents: documents,
		Scorer:    reward.NewScorer(querier, documents, client, cfg.Reward),
		LLM:       client,
		docs:      docs,
	}
}

// Services exposes the components the HTTP routes drive.
func (a *App) Services() api.Services {
	return api.Services{
		Stats:     a.Fetcher,
		Querier:   a.Querier,
		Documents: a.Documents,
		Scorer:    a.Scorer,
	}
}

// Close stops the cache janitor and closes the browser.
func (a *App) Close() error {
	a.docs.Close()
	return a.Fetcher.Close()
}
