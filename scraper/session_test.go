package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/groundtruth/models"
)

func TestSession_AcquireIsLazyAndReused(t *testing.T) {
	fl := &fakeLauncher{browsers: []*fakeBrowser{newFakeBrowser("")}}
	s := NewSession(fl.launch, "")

	assert.False(t, s.Live())
	assert.Equal(t, 0, fl.calls)

	b1, err := s.Acquire(context.Background())
	require.NoError(t, err)
	b2, err := s.Acquire(context.Background())
	require.NoError(t, err)

	assert.Same(t, b1, b2)
	assert.Equal(t, 1, fl.calls)
	assert.True(t, s.Live())
	assert.EqualValues(t, 1, s.Opened())
}

func TestSession_ResetNavigatesToLandingPage(t *testing.T) {
	first, second := newFakeBrowser(""), newFakeBrowser("")
	fl := &fakeLauncher{browsers: []*fakeBrowser{first, second}}
	s := NewSession(fl.launch, "https://en.wikipedia.org/")

	_, err := s.Acquire(context.Background())
	require.NoError(t, err)

	b, err := s.Reset(context.Background())
	require.NoError(t, err)

	assert.Same(t, second, b)
	assert.True(t, first.closed)
	assert.Equal(t, []string{"https://en.wikipedia.org/"}, second.navigated)
	assert.EqualValues(t, 2, s.Opened())
	assert.EqualValues(t, 1, s.Resets())
}

func TestSession_CloseThenAcquireRelaunches(t *testing.T) {
	first, second := newFakeBrowser(""), newFakeBrowser("")
	fl := &fakeLauncher{browsers: []*fakeBrowser{first, second}}
	s := NewSession(fl.launch, "")

	_, err := s.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.False(t, s.Live())
	assert.True(t, first.closed)

	b, err := s.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, second, b)
}

func TestSession_CloseWithoutBrowserIsNoop(t *testing.T) {
	s := NewSession((&fakeLauncher{}).launch, "")
	assert.NoError(t, s.Close())
}

func TestSession_LaunchFailureIsBrowserCrash(t *testing.T) {
	s := NewSession(func(context.Context) (Browser, error) {
		return nil, errors.New("chromium not found")
	}, "")

	_, err := s.Acquire(context.Background())
	require.Error(t, err)
	assert.Equal(t, models.KindBrowserCrash, models.KindOf(err))
	assert.False(t, s.Live())
}
