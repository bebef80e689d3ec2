package suite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playkaro/uiprobe/pkg/browser"
	"github.com/playkaro/uiprobe/pkg/browser/mocks"
	"github.com/playkaro/uiprobe/pkg/site"
)

func TestMain(m *testing.M) {
	cardsTimeout = 50 * time.Millisecond
	os.Exit(m.Run())
}

// fakeSite answers element lookups from a mutable selector expression map.
type fakeSite struct {
	found map[string][]browser.Element
	url   string
}

func (f *fakeSite) page() *mocks.PageMock {
	return &mocks.PageMock{
		GotoFunc: func(_ context.Context, url string) error { f.url = url; return nil },
		WaitForFunc: func(_ context.Context, sel browser.Selector, _ time.Duration) (browser.Element, error) {
			if els := f.found[sel.Expr]; len(els) > 0 {
				return els[0], nil
			}
			return nil, fmt.Errorf("%s: %w", sel, browser.ErrNotFound)
		},
		FindAllFunc: func(_ context.Context, sel browser.Selector) ([]browser.Element, error) {
			return f.found[sel.Expr], nil
		},
		URLFunc: func(context.Context) (string, error) { return f.url, nil },
	}
}

func testEnv(page browser.Page, log *recLog) *Env {
	return &Env{
		Page:             page,
		Home:             site.NewHomePage(page, "http://localhost:5173", testSelectors, fastTimings, log),
		Watch:            site.NewWatchPage(page, "http://localhost:5173", testSelectors, fastTimings, log),
		Timings:          fastTimings,
		NavigationSettle: time.Millisecond,
		Log:              log,
	}
}

func textElement(text string) *mocks.ElementMock {
	return &mocks.ElementMock{TextFunc: func(context.Context) (string, error) { return text, nil }}
}

func assertSkip(t *testing.T, err error, reason string) {
	t.Helper()
	var skip *SkipError
	require.ErrorAs(t, err, &skip)
	assert.Equal(t, reason, skip.Reason)
}

func TestCheckHeading(t *testing.T) {
	t.Run("non-empty heading", func(t *testing.T) {
		fs := &fakeSite{found: map[string][]browser.Element{"h1": {textElement("Discover videos")}}}
		require.NoError(t, checkHeading(context.Background(), testEnv(fs.page(), &recLog{})))
		assert.Equal(t, "http://localhost:5173/", fs.url)
	})

	t.Run("blank heading skips", func(t *testing.T) {
		fs := &fakeSite{found: map[string][]browser.Element{"h1": {textElement("  \n")}}}
		log := &recLog{}
		assertSkip(t, checkHeading(context.Background(), testEnv(fs.page(), log)), "No H1 found - skipping heading assertion")
		assert.Contains(t, log.lines, "DEBUG: heading text is empty")
	})

	t.Run("unreadable heading skips", func(t *testing.T) {
		h1 := &mocks.ElementMock{TextFunc: func(context.Context) (string, error) { return "", errors.New("stale element") }}
		fs := &fakeSite{found: map[string][]browser.Element{"h1": {h1}}}
		log := &recLog{}
		assertSkip(t, checkHeading(context.Background(), testEnv(fs.page(), log)), "No H1 found - skipping heading assertion")
		assert.Contains(t, log.lines, "DEBUG: read heading text: stale element")
	})

	t.Run("no heading skips", func(t *testing.T) {
		fs := &fakeSite{}
		assertSkip(t, checkHeading(context.Background(), testEnv(fs.page(), &recLog{})), "No H1 found - skipping heading assertion")
	})

	t.Run("navigation error fails", func(t *testing.T) {
		page := &mocks.PageMock{GotoFunc: func(context.Context, string) error { return errors.New("net::ERR_CONNECTION_REFUSED") }}
		err := checkHeading(context.Background(), testEnv(page, &recLog{}))
		require.Error(t, err)
		var skip *SkipError
		assert.False(t, errors.As(err, &skip))
	})
}

func TestCheckBranding(t *testing.T) {
	visible := func(v bool) *mocks.ElementMock {
		return &mocks.ElementMock{VisibleFunc: func(context.Context) (bool, error) { return v, nil }}
	}

	t.Run("both present", func(t *testing.T) {
		fs := &fakeSite{found: map[string][]browser.Element{
			"header a":                {visible(false)},
			"a[href*='/auth'] button": {visible(true)},
		}}
		log := &recLog{}
		require.NoError(t, checkBranding(context.Background(), testEnv(fs.page(), log)))
		assert.Contains(t, log.joined(), "logo visible: false, sign-in visible: true")
	})

	t.Run("no logo", func(t *testing.T) {
		fs := &fakeSite{found: map[string][]browser.Element{"a[href*='/auth'] button": {visible(true)}}}
		assertSkip(t, checkBranding(context.Background(), testEnv(fs.page(), &recLog{})), "Logo not found - skipping logo/sign in assertions")
	})

	t.Run("no sign in", func(t *testing.T) {
		fs := &fakeSite{found: map[string][]browser.Element{"header a": {visible(true)}}}
		assertSkip(t, checkBranding(context.Background(), testEnv(fs.page(), &recLog{})), "Sign in button not found - skipping sign in assertion")
	})
}

func TestCheckCardNavigation(t *testing.T) {
	t.Run("no cards skips", func(t *testing.T) {
		fs := &fakeSite{}
		assertSkip(t, checkCardNavigation(context.Background(), testEnv(fs.page(), &recLog{})),
			"No video cards found on the home page - skipping navigation test")
	})

	t.Run("click navigates", func(t *testing.T) {
		fs := &fakeSite{}
		card := &mocks.ElementMock{ClickFunc: func(context.Context) error { fs.url = "http://localhost:5173/watch/abc"; return nil }}
		fs.found = map[string][]browser.Element{".video-card": {card}}
		log := &recLog{}
		require.NoError(t, checkCardNavigation(context.Background(), testEnv(fs.page(), log)))
		assert.Contains(t, log.joined(), "url after click: http://localhost:5173/watch/abc")
	})

	t.Run("both click strategies fail", func(t *testing.T) {
		card := &mocks.ElementMock{
			ClickFunc:       func(context.Context) error { return errors.New("intercepted") },
			ScriptClickFunc: func(context.Context) error { return errors.New("detached") },
		}
		fs := &fakeSite{found: map[string][]browser.Element{".video-card": {card}}}
		err := checkCardNavigation(context.Background(), testEnv(fs.page(), &recLog{}))
		require.Error(t, err)
		assert.Equal(t, "failed to click the first video card", err.Error())
	})

	t.Run("empty url fails", func(t *testing.T) {
		card := &mocks.ElementMock{ClickFunc: func(context.Context) error { return nil }}
		fs := &fakeSite{found: map[string][]browser.Element{".video-card": {card}}}
		page := fs.page()
		page.URLFunc = func(context.Context) (string, error) { return "", nil }
		err := checkCardNavigation(context.Background(), testEnv(page, &recLog{}))
		require.Error(t, err)
		assert.Equal(t, "URL empty after navigation attempt", err.Error())
	})
}

func TestCheckSearch(t *testing.T) {
	t.Run("cards disappear", func(t *testing.T) {
		fs := &fakeSite{}
		input := &mocks.ElementMock{FillFunc: func(_ context.Context, text string) error {
			assert.Equal(t, noMatchQuery, text)
			delete(fs.found, ".video-card")
			return nil
		}}
		fs.found = map[string][]browser.Element{
			"input[type='search']": {input},
			".video-card":          {&mocks.ElementMock{}},
		}
		require.NoError(t, checkSearch(context.Background(), testEnv(fs.page(), &recLog{})))
		assert.Len(t, input.FillCalls(), 1)
	})

	t.Run("no results message", func(t *testing.T) {
		fs := &fakeSite{}
		input := &mocks.ElementMock{FillFunc: func(context.Context, string) error {
			fs.found["//*[contains(text(), 'No videos found')]"] = []browser.Element{&mocks.ElementMock{}}
			return nil
		}}
		fs.found = map[string][]browser.Element{
			"input[type='search']": {input},
			".video-card":          {&mocks.ElementMock{}},
		}
		require.NoError(t, checkSearch(context.Background(), testEnv(fs.page(), &recLog{})))
	})

	t.Run("cards stay", func(t *testing.T) {
		input := &mocks.ElementMock{FillFunc: func(context.Context, string) error { return nil }}
		fs := &fakeSite{found: map[string][]browser.Element{
			"input[type='search']": {input},
			".video-card":          {&mocks.ElementMock{}},
		}}
		err := checkSearch(context.Background(), testEnv(fs.page(), &recLog{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "video cards still shown")
	})

	t.Run("no input skips", func(t *testing.T) {
		fs := &fakeSite{found: map[string][]browser.Element{".video-card": {&mocks.ElementMock{}}}}
		assertSkip(t, checkSearch(context.Background(), testEnv(fs.page(), &recLog{})), "No search input found - skipping search assertion")
	})

	t.Run("no cards skips", func(t *testing.T) {
		fs := &fakeSite{found: map[string][]browser.Element{"input[type='search']": {&mocks.ElementMock{}}}}
		assertSkip(t, checkSearch(context.Background(), testEnv(fs.page(), &recLog{})), "No video cards to filter - skipping search assertion")
	})
}

func TestCheckWatchPage(t *testing.T) {
	t.Run("player shown", func(t *testing.T) {
		fs := &fakeSite{}
		card := &mocks.ElementMock{ClickFunc: func(context.Context) error {
			fs.url = "http://localhost:5173/watch/42"
			fs.found["video"] = []browser.Element{&mocks.ElementMock{}}
			fs.found["a[href='/']"] = []browser.Element{&mocks.ElementMock{}}
			return nil
		}}
		fs.found = map[string][]browser.Element{".video-card": {card}}
		require.NoError(t, checkWatchPage(context.Background(), testEnv(fs.page(), &recLog{})))
	})

	t.Run("not a watch url", func(t *testing.T) {
		card := &mocks.ElementMock{ClickFunc: func(context.Context) error { return nil }}
		fs := &fakeSite{found: map[string][]browser.Element{".video-card": {card}}}
		err := checkWatchPage(context.Background(), testEnv(fs.page(), &recLog{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `expected a watch page url, got "http://localhost:5173/"`)
	})

	t.Run("no player", func(t *testing.T) {
		fs := &fakeSite{}
		card := &mocks.ElementMock{ClickFunc: func(context.Context) error { fs.url = "http://localhost:5173/watch/42"; return nil }}
		fs.found = map[string][]browser.Element{".video-card": {card}}
		err := checkWatchPage(context.Background(), testEnv(fs.page(), &recLog{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "neither a player")
	})

	t.Run("no cards skips", func(t *testing.T) {
		fs := &fakeSite{}
		assertSkip(t, checkWatchPage(context.Background(), testEnv(fs.page(), &recLog{})),
			"No video cards found on the home page - skipping watch page test")
	})
}
