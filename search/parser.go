// Package search queries a web search engine through the browser session
// and turns its result page into a ranked list of URLs.
package search

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/use-agent/groundtruth/models"
)

// Selectors locate the organic results on a search results page.
type Selectors struct {
	Container string // results list; default "ol.react-results--main"
	Item      string // one result inside the container; default "li"
	Ad        string // matches sponsored items; default `[data-layout="ad"]`
	Title     string // title anchor carrying the href; default `a[data-testid="result-title-a"]`
}

// DuckDuckGoSelectors match DuckDuckGo's React results page.
var DuckDuckGoSelectors = Selectors{
	Container: "ol.react-results--main",
	Item:      "li",
	Ad:        `[data-layout="ad"]`,
	Title:     `a[data-testid="result-title-a"]`,
}

// Parser extracts result URLs from a search results page.
type Parser struct {
	container cascadia.Selector
	item      cascadia.Selector
	ad        cascadia.Selector
	title     cascadia.Selector
}

// NewParser compiles sel. Empty fields take the DuckDuckGo defaults.
func NewParser(sel Selectors) (*Parser, error) {
	def := DuckDuckGoSelectors
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}

	var p Parser
	for _, c := range []struct {
		dst *cascadia.Selector
		src string
	}{
		{&p.container, pick(sel.Container, def.Container)},
		{&p.item, pick(sel.Item, def.Item)},
		{&p.ad, pick(sel.Ad, def.Ad)},
		{&p.title, pick(sel.Title, def.Title)},
	} {
		compiled, err := cascadia.Compile(c.src)
		if err != nil {
			return nil, models.NewError(models.KindInvalidInput, fmt.Sprintf("invalid selector %q", c.src), err)
		}
		*c.dst = compiled
	}
	return &p, nil
}

// MustParser is NewParser that panics on bad selectors.
func MustParser(sel Selectors) *Parser {
	p, err := NewParser(sel)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse returns up to topK result URLs from doc in document order. Ads and
// items without a usable title link are skipped.
func (p *Parser) Parse(doc string, topK int) ([]string, error) {
	if topK < 1 {
		return nil, models.NewError(models.KindInvalidInput, fmt.Sprintf("topK must be positive, got %d", topK), nil)
	}

	root, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, models.NewError(models.KindInternal, "failed to parse results page", err)
	}

	containers := root.FindMatcher(p.container)
	if containers.Length() == 0 {
		return nil, models.NewError(models.KindResultsContainerMissing, "search results container not found", nil)
	}

	urls := make([]string, 0, topK)
	containers.FindMatcher(p.item).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if p.isAd(item, containers) {
			return true
		}
		href, ok := item.FindMatcher(p.title).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		urls = append(urls, strings.TrimSpace(href))
		return len(urls) < topK
	})

	if len(urls) == 0 {
		return nil, models.NewError(models.KindResultsListEmpty, "search results list is empty", nil)
	}
	return urls, nil
}

// isAd reports whether item, or any ancestor of it below the containers, is
// flagged as sponsored.
func (p *Parser) isAd(item, containers *goquery.Selection) bool {
	if p.ad.Match(item.Get(0)) {
		return true
	}
	return item.ParentsUntilSelection(containers).FilterMatcher(p.ad).Length() > 0
}
