package extract

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	readability "github.com/go-shiori/go-readability"

	"github.com/use-agent/groundtruth/models"
)

// minContentLength is the shortest main-content text accepted from
// readability; anything shorter means it missed the article.
const minContentLength = 50

// markdown is shared; converters are safe for concurrent use.
var markdown = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(
			table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
		),
	),
)

// Readability extracts the main content of an arbitrary page with the
// Mozilla Readability algorithm and renders it as Markdown. It needs the
// page URL to resolve relative links, so one instance serves one URL.
type Readability struct {
	pageURL *url.URL
}

// NewReadability creates a Readability extractor for the page at u.
func NewReadability(u *url.URL) *Readability {
	return &Readability{pageURL: u}
}

func (r *Readability) Name() string { return "readability" }

func (r *Readability) Extract(doc string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(doc), r.pageURL)
	if err != nil {
		return "", models.NewError(models.KindExtraction, "readability failed", err)
	}
	if len(strings.TrimSpace(article.TextContent)) < minContentLength {
		slog.Warn("readability: extracted content too short",
			"url", r.pageURL.String(), "length", len(article.TextContent),
		)
		return "", models.NewError(models.KindExtraction, "readability found no main content", nil)
	}

	md, err := markdown.ConvertString(article.Content, converter.WithDomain(r.pageURL.Scheme+"://"+r.pageURL.Host))
	if err != nil {
		return "", models.NewError(models.KindExtraction, "markdown conversion failed", err)
	}

	text := strings.TrimSpace(md)
	if title := strings.TrimSpace(article.Title); title != "" && !strings.HasPrefix(text, "# ") {
		text = "# " + title + "\n\n" + text
	}
	return text, nil
}
