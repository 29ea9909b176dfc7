package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/groundtruth/models"
)

const wikiArticle = `<html><body>
<div id="mw-navigation"><a href="/wiki/Main_Page">Main page</a></div>
<div id="bodyContent">
<div id="mw-content-text"><div class="mw-parser-output">
<div role="note" class="hatnote">For other uses, see Go (disambiguation).</div>
<table class="infobox"><tr><td>Paradigm</td><td>Concurrent</td></tr></table>
<p><b>Go</b> is a statically typed language.<sup class="reference"><a href="#cite_note-1">[1]</a></sup></p>


<figure><img src="gopher.png"><figcaption>The gopher mascot</figcaption></figure>
<div class="mw-heading mw-heading2"><h2 id="History">History</h2><span class="mw-editsection">[edit]</span></div>
<p>Go was designed at Google.</p>



<p>It was announced in 2009.</p>
<div class="mw-heading mw-heading2"><h2 id="See_also">See also</h2></div>
<ul>
<li><a href="/wiki/Limbo">Limbo (programming language)</a></li>
<li><a href="/wiki/Oberon">Oberon (programming language)</a></li>
</ul>
<div class="mw-heading mw-heading2"><h2 id="References">References</h2></div>
<div class="reflist"><ol class="references"><li id="cite_note-1">Pike, Rob.</li></ol></div>
</div></div></div></body></html>`

func TestWikipedia_Extract(t *testing.T) {
	text, err := (&Wikipedia{}).Extract(wikiArticle)
	require.NoError(t, err)

	assert.Contains(t, text, "Go is a statically typed language.")
	assert.Contains(t, text, "Go was designed at Google.\nIt was announced in 2009.")
	assert.Contains(t, text, "History")

	for _, gone := range []string{
		"See also", "Limbo", "Oberon", "References", "Pike, Rob",
		"[1]", "For other uses", "Paradigm", "gopher mascot", "[edit]", "Main page",
	} {
		assert.NotContains(t, text, gone)
	}
	assert.NotContains(t, text, "\n\n")
	assert.Equal(t, text, collapseBlankLines(text))
}

func TestWikipedia_LegacySeeAlsoMarkup(t *testing.T) {
	doc := `<div id="mw-content-text"><div class="mw-parser-output">
		<p>Intro.</p>
		<h2><span class="mw-headline" id="See_also">See also</span></h2>
		<ul><li>Related</li></ul>
		<p>Trailing paragraph.</p>
	</div></div>`

	text, err := (&Wikipedia{}).Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "Intro.", text)
}

func TestWikipedia_NoSeeAlsoKeepsEverything(t *testing.T) {
	doc := `<div id="mw-content-text"><p>One.</p><p>Two.</p></div>`

	text, err := (&Wikipedia{}).Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "One.\nTwo.", text)
}

func TestWikipedia_MissingRegion(t *testing.T) {
	_, err := (&Wikipedia{}).Extract(`<html><body><p>not a wiki</p></body></html>`)
	require.Error(t, err)
	assert.Equal(t, models.KindExtraction, models.KindOf(err))
}

type stubFetcher struct {
	doc  string
	err  error
	urls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.doc, f.err
}

func TestWikipedia_FetchSource(t *testing.T) {
	_, used, err := (&Wikipedia{}).FetchSource(context.Background(), "https://en.wikipedia.org/wiki/Go")
	require.NoError(t, err)
	assert.False(t, used)

	src := &stubFetcher{doc: "<html></html>"}
	doc, used, err := (&Wikipedia{Source: src}).FetchSource(context.Background(), "https://en.wikipedia.org/wiki/Go")
	require.NoError(t, err)
	assert.True(t, used)
	assert.Equal(t, "<html></html>", doc)
	assert.Equal(t, []string{"https://en.wikipedia.org/wiki/Go"}, src.urls)

	boom := errors.New("connection reset")
	_, used, err = (&Wikipedia{Source: &stubFetcher{err: boom}}).FetchSource(context.Background(), "https://en.wikipedia.org/")
	assert.True(t, used)
	assert.ErrorIs(t, err, boom)
}
