package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/groundtruth/models"
)

// contentRegions are tried in order; the first match is the article body.
var contentRegions = []string{
	"#mw-content-text .mw-parser-output",
	"#mw-content-text",
	"#bodyContent",
}

// wikipediaNoise is removed from the article body in this order. A missing
// block is not an error.
var wikipediaNoise = []string{
	".reflist, ol.references", // reference lists
	"sup.reference",           // footnote markers
	"img",
	"table",
	"figure, .thumb",
	".hatnote",
	// page chrome left inside the body
	".mw-editsection, .navbox, #toc, .toc, .mw-jump-link",
}

// Wikipedia extracts article prose from Wikipedia pages.
type Wikipedia struct {
	// Source, when set, fetches articles over plain HTTP instead of the
	// browser session. Wikipedia renders fully server-side.
	Source Fetcher
}

func (w *Wikipedia) Name() string { return "wikipedia" }

// FetchSource uses Source when one is configured.
func (w *Wikipedia) FetchSource(ctx context.Context, url string) (string, bool, error) {
	if w.Source == nil {
		return "", false, nil
	}
	doc, err := w.Source.Fetch(ctx, url)
	if err != nil {
		return "", true, err
	}
	return doc, true, nil
}

// Extract returns the article body without references, media, tables,
// hatnotes, or anything from "See also" onward.
func (w *Wikipedia) Extract(doc string) (string, error) {
	root, err := parseDoc(doc)
	if err != nil {
		return "", err
	}

	var region *goquery.Selection
	for _, sel := range contentRegions {
		if found := root.Find(sel).First(); found.Length() > 0 {
			region = found
			break
		}
	}
	if region == nil {
		return "", models.NewError(models.KindExtraction, "wikipedia article body not found", nil)
	}

	for _, sel := range wikipediaNoise {
		region.Find(sel).Remove()
	}
	truncateAtSeeAlso(region)

	return collapseBlankLines(renderText(region)), nil
}

// truncateAtSeeAlso removes the region child holding the "See also" heading
// together with every sibling after it. Both the current heading markup
// (<div class="mw-heading"><h2 id="See_also">) and the older
// (<h2><span id="See_also">) are handled.
func truncateAtSeeAlso(region *goquery.Selection) {
	anchor := region.Find("#See_also").First()
	if anchor.Length() == 0 {
		return
	}
	top := anchor
	if parents := anchor.ParentsUntilSelection(region); parents.Length() > 0 {
		top = parents.Last()
	}
	top.NextAll().Remove()
	top.Remove()
}
