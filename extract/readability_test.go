package extract

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/groundtruth/models"
)

func TestReadability_Extract(t *testing.T) {
	para := strings.Repeat("Goroutines are lightweight threads managed by the Go runtime. ", 8)
	doc := `<html><head><title>Concurrency in Go</title></head><body>
		<nav><a href="/">Home</a> <a href="/about">About</a></nav>
		<article><h1>Concurrency in Go</h1>
			<p>` + para + `</p>
			<p>` + para + `</p>
			<p>Channels connect goroutines. <a href="/channels">Read more</a></p>
		</article>
		<footer>Copyright</footer>
	</body></html>`

	u, err := url.Parse("https://go.example/concurrency")
	require.NoError(t, err)

	text, err := NewReadability(u).Extract(doc)
	require.NoError(t, err)

	assert.Contains(t, text, "Goroutines are lightweight threads managed by the Go runtime.")
	assert.Contains(t, text, "https://go.example/channels")
}

func TestReadability_NoContent(t *testing.T) {
	u, err := url.Parse("https://go.example/empty")
	require.NoError(t, err)

	_, err = NewReadability(u).Extract(`<html><body><p>hi</p></body></html>`)
	require.Error(t, err)
	assert.Equal(t, models.KindExtraction, models.KindOf(err))
}
