// Package extract turns raw page markup from known site templates into
// clean plain text.
package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/groundtruth/models"
)

// Extractor converts one site template's markup to plain text.
type Extractor interface {
	// Name identifies the extractor in logs and responses.
	Name() string
	Extract(doc string) (string, error)
}

// SourceOverride is implemented by extractors that obtain markup themselves
// instead of through the shared browser session. ok=false means the shared
// session should be used after all.
type SourceOverride interface {
	FetchSource(ctx context.Context, url string) (doc string, ok bool, err error)
}

// Fetcher is a plain, non-interactive page fetcher such as
// *scraper.HTTPFetcher.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Unimplemented stands in for sites without a dedicated extractor.
type Unimplemented struct {
	Site string
}

func (u Unimplemented) Name() string { return "unimplemented" }

func (u Unimplemented) Extract(string) (string, error) {
	return "", models.NewError(models.KindExtractorNotImplemented,
		"no extractor registered for "+u.Site, nil)
}

func parseDoc(doc string) (*goquery.Document, error) {
	root, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, models.NewError(models.KindExtraction, "failed to parse page markup", err)
	}
	return root, nil
}
