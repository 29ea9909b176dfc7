package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockTags end a line when rendered as text.
var blockTags = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "br": {},
	"dd": {}, "div": {}, "dl": {}, "dt": {}, "figcaption": {}, "footer": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {}, "header": {},
	"hr": {}, "li": {}, "main": {}, "nav": {}, "ol": {}, "p": {}, "pre": {},
	"section": {}, "table": {}, "tr": {}, "ul": {},
}

// skipTags never contribute text.
var skipTags = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "template": {},
}

var reBlankRun = regexp.MustCompile(`\n(?:[ \t\r\f\v]*\n)+`)

// renderText flattens sel to plain text, breaking lines at block elements.
func renderText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		writeNode(&sb, n)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if _, skip := skipTags[n.Data]; skip {
			return
		}
	}

	_, block := blockTags[n.Data]
	if block && n.Type == html.ElementNode {
		sb.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(sb, c)
	}
	if block && n.Type == html.ElementNode {
		sb.WriteByte('\n')
	}
}

// collapseBlankLines squeezes every run of blank lines down to one newline
// and trims the result.
func collapseBlankLines(s string) string {
	return strings.TrimSpace(reBlankRun.ReplaceAllString(s, "\n"))
}
