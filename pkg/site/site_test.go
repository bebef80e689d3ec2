package site

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playkaro/uiprobe/pkg/browser"
	"github.com/playkaro/uiprobe/pkg/browser/mocks"
	"github.com/playkaro/uiprobe/pkg/config"
)

var testSelectors = config.Selectors{
	config.GroupHeading:     {browser.CSS("h1")},
	config.GroupLogo:        {browser.XPath("//header//a"), browser.CSS("header a")},
	config.GroupSignIn:      {browser.CSS("a[href*='/auth'] button")},
	config.GroupVideoCards:  {browser.CSS(".video-card"), browser.CSS(".card")},
	config.GroupSearchInput: {browser.CSS("input[type='search']")},
	config.GroupNoResults:   {browser.XPath("//*[contains(text(), 'No videos found')]")},
	config.GroupPlayer:      {browser.CSS("video")},
	config.GroupBackLink:    {browser.CSS("a[href='/']")},
}

var fastTimings = Timings{Element: 100 * time.Millisecond, Cards: 100 * time.Millisecond, Poll: 10 * time.Millisecond}

// pageWithElements answers WaitFor and FindAll from a selector expression map.
func pageWithElements(found map[string][]browser.Element) *mocks.PageMock {
	return &mocks.PageMock{
		WaitForFunc: func(_ context.Context, sel browser.Selector, _ time.Duration) (browser.Element, error) {
			if els := found[sel.Expr]; len(els) > 0 {
				return els[0], nil
			}
			return nil, fmt.Errorf("%s: %w", sel, browser.ErrNotFound)
		},
		FindAllFunc: func(_ context.Context, sel browser.Selector) ([]browser.Element, error) {
			return found[sel.Expr], nil
		},
		GotoFunc: func(context.Context, string) error { return nil },
	}
}

func TestHomePage_Open(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		path    string
		want    string
	}{
		{name: "trailing slash trimmed", baseURL: "https://playkaroproject.netlify.app/", path: "/", want: "https://playkaroproject.netlify.app/"},
		{name: "sub path", baseURL: "http://localhost:5173", path: "/auth", want: "http://localhost:5173/auth"},
		{name: "default base", baseURL: "", path: "/watch/1", want: "https://playkaroproject.netlify.app/watch/1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page := pageWithElements(nil)
			home := NewHomePage(page, tc.baseURL, testSelectors, fastTimings, nil)
			require.NoError(t, home.Open(context.Background(), tc.path))
			require.Len(t, page.GotoCalls(), 1)
			assert.Equal(t, tc.want, page.GotoCalls()[0].URL)
		})
	}
}

func TestHomePage_Open_Error(t *testing.T) {
	page := &mocks.PageMock{GotoFunc: func(context.Context, string) error { return errors.New("net::ERR_NAME_NOT_RESOLVED") }}
	err := NewHomePage(page, "http://nowhere.invalid", testSelectors, fastTimings, nil).Open(context.Background(), "/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open http://nowhere.invalid/")
}

func TestHomePage_Lookups(t *testing.T) {
	logo := &mocks.ElementMock{}
	signIn := &mocks.ElementMock{}
	page := pageWithElements(map[string][]browser.Element{
		"header a":                {logo},
		"a[href*='/auth'] button": {signIn},
	})
	home := NewHomePage(page, "", testSelectors, fastTimings, nil)
	ctx := context.Background()

	el, ok := home.Logo(ctx, 3*time.Second)
	require.True(t, ok)
	assert.Same(t, logo, el)

	el, ok = home.SignInButton(ctx, 3*time.Second)
	require.True(t, ok)
	assert.Same(t, signIn, el)

	_, ok = home.Heading(ctx, 0)
	assert.False(t, ok)

	// explicit timeout passed through, zero timeout uses the default
	calls := page.WaitForCalls()
	assert.Equal(t, 3*time.Second, calls[0].Timeout)
	assert.Equal(t, fastTimings.Element, calls[len(calls)-1].Timeout)
}

func TestHomePage_VideoCards(t *testing.T) {
	card := &mocks.ElementMock{}
	page := pageWithElements(map[string][]browser.Element{".card": {card, card, card}})
	home := NewHomePage(page, "", testSelectors, fastTimings, nil)

	assert.Len(t, home.VideoCards(context.Background(), 0), 3)

	empty := NewHomePage(pageWithElements(nil), "", testSelectors, fastTimings, nil)
	assert.Empty(t, empty.VideoCards(context.Background(), 30*time.Millisecond))
}

func TestHomePage_ClickFirstVideoCard(t *testing.T) {
	t.Run("no cards", func(t *testing.T) {
		home := NewHomePage(pageWithElements(nil), "", testSelectors, fastTimings, nil)
		assert.False(t, home.ClickFirstVideoCard(context.Background()))
	})

	t.Run("clicks only the first card", func(t *testing.T) {
		first := &mocks.ElementMock{ClickFunc: func(context.Context) error { return nil }}
		second := &mocks.ElementMock{}
		home := NewHomePage(pageWithElements(map[string][]browser.Element{".video-card": {first, second}}), "", testSelectors, fastTimings, nil)
		assert.True(t, home.ClickFirstVideoCard(context.Background()))
		assert.Len(t, first.ClickCalls(), 1)
		assert.Empty(t, second.ClickCalls())
	})

	t.Run("falls back to script click", func(t *testing.T) {
		card := &mocks.ElementMock{
			ClickFunc:       func(context.Context) error { return errors.New("element click intercepted") },
			ScriptClickFunc: func(context.Context) error { return nil },
		}
		home := NewHomePage(pageWithElements(map[string][]browser.Element{".video-card": {card}}), "", testSelectors, fastTimings, nil)
		assert.True(t, home.ClickFirstVideoCard(context.Background()))
	})

	t.Run("both click strategies fail", func(t *testing.T) {
		card := &mocks.ElementMock{
			ClickFunc:       func(context.Context) error { return errors.New("intercepted") },
			ScriptClickFunc: func(context.Context) error { return errors.New("stale element") },
		}
		home := NewHomePage(pageWithElements(map[string][]browser.Element{".video-card": {card}}), "", testSelectors, fastTimings, nil)
		assert.False(t, home.ClickFirstVideoCard(context.Background()))
	})
}

func TestHomePage_Search(t *testing.T) {
	t.Run("fills the input", func(t *testing.T) {
		var typed string
		input := &mocks.ElementMock{FillFunc: func(_ context.Context, text string) error { typed = text; return nil }}
		home := NewHomePage(pageWithElements(map[string][]browser.Element{"input[type='search']": {input}}), "", testSelectors, fastTimings, nil)
		require.NoError(t, home.Search(context.Background(), "zzz"))
		assert.Equal(t, "zzz", typed)
	})

	t.Run("missing input", func(t *testing.T) {
		home := NewHomePage(pageWithElements(nil), "", testSelectors, fastTimings, nil)
		err := home.Search(context.Background(), "zzz")
		require.Error(t, err)
		assert.ErrorIs(t, err, browser.ErrNotFound)
	})

	t.Run("fill error", func(t *testing.T) {
		input := &mocks.ElementMock{FillFunc: func(context.Context, string) error { return errors.New("not editable") }}
		home := NewHomePage(pageWithElements(map[string][]browser.Element{"input[type='search']": {input}}), "", testSelectors, fastTimings, nil)
		err := home.Search(context.Background(), "zzz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not editable")
	})
}

func TestWatchPage(t *testing.T) {
	video := &mocks.ElementMock{}
	page := pageWithElements(map[string][]browser.Element{"video": {video}})
	page.URLFunc = func(context.Context) (string, error) { return "https://playkaroproject.netlify.app/watch/abc", nil }
	watch := NewWatchPage(page, "", testSelectors, fastTimings, nil)

	el, ok := watch.Player(context.Background(), 0)
	require.True(t, ok)
	assert.Same(t, video, el)

	_, ok = watch.BackLink(context.Background(), 0)
	assert.False(t, ok)

	url, err := watch.URL(context.Background())
	require.NoError(t, err)
	assert.True(t, IsWatchURL(url))
	assert.False(t, IsWatchURL("https://playkaroproject.netlify.app/"))
}

func TestTimings_WithDefaults(t *testing.T) {
	assert.Equal(t, DefaultTimings, Timings{}.WithDefaults())
	custom := Timings{Element: time.Second, Cards: 2 * time.Second, Poll: time.Millisecond}
	assert.Equal(t, custom, custom.WithDefaults())
}
