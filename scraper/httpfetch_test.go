package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/groundtruth/models"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>hello</p></body></html>"))
	}))
	defer srv.Close()

	body, err := NewHTTPFetcher("", 5*time.Second).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, body, "<p>hello</p>")
	assert.Equal(t, chromeUA, gotUA)
}

func TestHTTPFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher("", 5*time.Second).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, models.KindHTTPFetch, models.KindOf(err))
}

func TestHTTPFetcher_RejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher("", 5*time.Second).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, models.KindHTTPFetch, models.KindOf(err))
}

func TestIsHTML_SniffsWithoutContentType(t *testing.T) {
	assert.True(t, isHTML("", []byte("<!DOCTYPE html>\n<html><head></head></html>")))
	assert.True(t, isHTML("", []byte("  <!-- banner -->\n<body>x</body>")))
	assert.False(t, isHTML("", []byte("plain text")))
	assert.False(t, isHTML("", []byte("<svg></svg>")))
	assert.False(t, isHTML("text/plain", []byte("<html></html>")))
}
