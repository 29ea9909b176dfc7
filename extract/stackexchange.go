package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/groundtruth/models"
)

const fence = "```"

// StackExchange extracts the question title and every post body (question
// first, then answers) from Stack Exchange network pages.
type StackExchange struct{}

func (StackExchange) Name() string { return "stackexchange" }

func (StackExchange) Extract(doc string) (string, error) {
	root, err := parseDoc(doc)
	if err != nil {
		return "", err
	}

	var sections []string
	if title := strings.TrimSpace(root.Find("#question-header h1").First().Text()); title != "" {
		sections = append(sections, title)
	}

	posts := root.Find(".js-post-body")
	if posts.Length() == 0 {
		posts = root.Find(".post-text")
	}
	posts.Each(func(_ int, post *goquery.Selection) {
		post.Find("pre").Each(func(_ int, pre *goquery.Selection) {
			pre.SetText(fence + strings.TrimRight(pre.Text(), "\n") + fence)
		})
		if text := collapseBlankLines(renderText(post)); text != "" {
			sections = append(sections, text)
		}
	})

	if len(sections) == 0 {
		return "", models.NewError(models.KindExtraction, "no question or posts found", nil)
	}
	return strings.Join(sections, "\n\n"), nil
}
