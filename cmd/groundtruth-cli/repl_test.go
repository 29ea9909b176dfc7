package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/groundtruth/models"
)

func TestRunREPL(t *testing.T) {
	var got []string
	query := func(_ context.Context, text string) ([]string, error) {
		got = append(got, text)
		if text == "broken" {
			return nil, models.NewError(models.KindResultsListEmpty, "no results", nil)
		}
		return []string{"https://en.wikipedia.org/wiki/" + text}, nil
	}

	in := strings.NewReader("Go\n\n   \nbroken\nRust\n")
	var out bytes.Buffer
	require.NoError(t, runREPL(context.Background(), in, &out, query))

	assert.Equal(t, []string{"Go", "broken", "Rust"}, got)
	assert.Contains(t, out.String(), "  1. https://en.wikipedia.org/wiki/Go\n")
	assert.Contains(t, out.String(), "error: RESULTS_LIST_EMPTY: no results")
	assert.Contains(t, out.String(), "  1. https://en.wikipedia.org/wiki/Rust\n")
}

func TestRunREPL_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	query := func(context.Context, string) ([]string, error) {
		calls++
		return nil, nil
	}
	require.NoError(t, runREPL(ctx, strings.NewReader("Go\n"), &bytes.Buffer{}, query))
	assert.Zero(t, calls)
}
