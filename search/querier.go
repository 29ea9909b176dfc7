package search

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/use-agent/groundtruth/config"
	"github.com/use-agent/groundtruth/models"
)

// Fetcher loads a page and returns its markup. *scraper.PageFetcher
// satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string, steps ...models.InteractionStep) (string, error)
}

// Querier turns a free-text query into ranked result URLs.
type Querier struct {
	fetcher Fetcher
	parser  *Parser
	cfg     config.SearchConfig
}

// NewQuerier creates a Querier. A nil parser uses the DuckDuckGo selectors.
func NewQuerier(fetcher Fetcher, parser *Parser, cfg config.SearchConfig) *Querier {
	if parser == nil {
		parser = MustParser(DuckDuckGoSelectors)
	}
	if cfg.Host == "" {
		cfg.Host = "duckduckgo.com"
	}
	return &Querier{fetcher: fetcher, parser: parser, cfg: cfg}
}

// Query runs every sub-query for text and concatenates their results in
// sub-query order. Duplicates across sub-queries are kept.
func (q *Querier) Query(ctx context.Context, text string) ([]string, error) {
	var urls []string
	for _, sub := range q.SubQueries(text) {
		target := q.SearchURL(sub)
		slog.Debug("querier: searching", "url", target)

		doc, err := q.fetcher.Fetch(ctx, target)
		if err != nil {
			return nil, err
		}
		found, err := q.parser.Parse(doc, q.cfg.TopK)
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
	}
	slog.Info("querier: query complete", "results", len(urls))
	return urls, nil
}

// SubQueries returns the encoded query strings for text: one OR-joined query
// when ensembling, otherwise one per site filter in order. With no site
// filters the bare query is used.
func (q *Querier) SubQueries(text string) []string {
	base := Encode(strings.TrimSpace(text))
	if len(q.cfg.Sites) == 0 {
		return []string{base}
	}

	if q.cfg.Ensemble {
		filters := make([]string, len(q.cfg.Sites))
		for i, site := range q.cfg.Sites {
			filters[i] = siteFilter(site)
		}
		return []string{base + "+" + strings.Join(filters, "+OR+")}
	}

	subs := make([]string, len(q.cfg.Sites))
	for i, site := range q.cfg.Sites {
		subs[i] = base + "+" + siteFilter(site)
	}
	return subs
}

// SearchURL builds the results-page URL for an encoded query.
func (q *Querier) SearchURL(encoded string) string {
	return "https://" + q.cfg.Host + "/?t=h_&q=" + encoded + "&ia=web"
}

// Encode percent-encodes s with no safe characters; spaces become %20.
func Encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func siteFilter(site string) string {
	return "site" + Encode(":"+site)
}
