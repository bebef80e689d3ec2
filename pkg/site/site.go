// Package site holds page objects for the PlayKaro video site.
// page objects never fail on a missing element, they report absence to the caller.
package site

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playkaro/uiprobe/pkg/browser"
	"github.com/playkaro/uiprobe/pkg/config"
	"github.com/playkaro/uiprobe/pkg/locate"
)

// DefaultBaseURL is the deployed site under test.
const DefaultBaseURL = "https://playkaroproject.netlify.app/"

// Timings are the lookup timeouts used when a call passes a zero timeout.
type Timings struct {
	Element time.Duration // per candidate, single element lookups
	Cards   time.Duration // whole card polling window
	Poll    time.Duration // pause between card polling rounds
}

// DefaultTimings are used for zero Timings fields.
var DefaultTimings = Timings{Element: 5 * time.Second, Cards: 8 * time.Second, Poll: locate.DefaultPollInterval}

// WithDefaults fills zero fields from DefaultTimings.
func (t Timings) WithDefaults() Timings {
	if t.Element <= 0 {
		t.Element = DefaultTimings.Element
	}
	if t.Cards <= 0 {
		t.Cards = DefaultTimings.Cards
	}
	if t.Poll <= 0 {
		t.Poll = DefaultTimings.Poll
	}
	return t
}

type logger interface {
	Debug(format string, args ...any)
}

// base is shared by all page objects.
type base struct {
	page    browser.Page
	loc     *locate.Locator
	baseURL string
	sels    config.Selectors
	timings Timings
}

func newBase(page browser.Page, baseURL string, sels config.Selectors, timings Timings, log logger) base {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return base{
		page:    page,
		loc:     locate.New(page, log),
		baseURL: baseURL,
		sels:    sels,
		timings: timings.WithDefaults(),
	}
}

// Open navigates to path relative to the base url.
func (b *base) Open(ctx context.Context, path string) error {
	url := strings.TrimRight(b.baseURL, "/") + path
	if err := b.page.Goto(ctx, url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// URL returns the current page url.
func (b *base) URL(ctx context.Context) (string, error) {
	return b.page.URL(ctx)
}

func (b *base) first(ctx context.Context, group string, timeout time.Duration) (browser.Element, bool) {
	if timeout <= 0 {
		timeout = b.timings.Element
	}
	el, _, ok := b.loc.First(ctx, b.sels.Get(group), timeout)
	return el, ok
}

// HomePage is the landing page with the video grid.
type HomePage struct {
	base
}

// NewHomePage makes a HomePage. empty baseURL means DefaultBaseURL, log may be nil.
func NewHomePage(page browser.Page, baseURL string, sels config.Selectors, timings Timings, log logger) *HomePage {
	return &HomePage{base: newBase(page, baseURL, sels, timings, log)}
}

// Heading returns the main heading.
func (h *HomePage) Heading(ctx context.Context, timeout time.Duration) (browser.Element, bool) {
	return h.first(ctx, config.GroupHeading, timeout)
}

// Logo returns the first logo candidate found, whether or not it is displayed.
func (h *HomePage) Logo(ctx context.Context, timeout time.Duration) (browser.Element, bool) {
	return h.first(ctx, config.GroupLogo, timeout)
}

// SignInButton returns the sign-in control.
func (h *HomePage) SignInButton(ctx context.Context, timeout time.Duration) (browser.Element, bool) {
	return h.first(ctx, config.GroupSignIn, timeout)
}

// VideoCards polls for the first non-empty card set, empty when none appear within timeout.
func (h *HomePage) VideoCards(ctx context.Context, timeout time.Duration) []browser.Element {
	if timeout <= 0 {
		timeout = h.timings.Cards
	}
	return h.loc.Poll(ctx, h.sels.Get(config.GroupVideoCards), timeout, h.timings.Poll)
}

// ClickFirstVideoCard clicks the first card, false when there are no cards or the click failed.
func (h *HomePage) ClickFirstVideoCard(ctx context.Context) bool {
	cards := h.VideoCards(ctx, 0)
	if len(cards) == 0 {
		return false
	}
	return h.loc.Click(ctx, cards[0])
}

// SearchInput returns the video search box.
func (h *HomePage) SearchInput(ctx context.Context, timeout time.Duration) (browser.Element, bool) {
	return h.first(ctx, config.GroupSearchInput, timeout)
}

// Search types query into the search box.
func (h *HomePage) Search(ctx context.Context, query string) error {
	input, ok := h.SearchInput(ctx, 0)
	if !ok {
		return fmt.Errorf("search input: %w", browser.ErrNotFound)
	}
	if err := input.Fill(ctx, query); err != nil {
		return fmt.Errorf("type search query: %w", err)
	}
	return nil
}

// NoResultsMessage returns the empty search result notice.
func (h *HomePage) NoResultsMessage(ctx context.Context, timeout time.Duration) (browser.Element, bool) {
	return h.first(ctx, config.GroupNoResults, timeout)
}

// WatchPage shows a single video.
type WatchPage struct {
	base
}

// NewWatchPage makes a WatchPage for the current page.
func NewWatchPage(page browser.Page, baseURL string, sels config.Selectors, timings Timings, log logger) *WatchPage {
	return &WatchPage{base: newBase(page, baseURL, sels, timings, log)}
}

// Player returns the video element, or the "video not found" notice for unknown ids.
func (w *WatchPage) Player(ctx context.Context, timeout time.Duration) (browser.Element, bool) {
	return w.first(ctx, config.GroupPlayer, timeout)
}

// BackLink returns the link back to the video list.
func (w *WatchPage) BackLink(ctx context.Context, timeout time.Duration) (browser.Element, bool) {
	return w.first(ctx, config.GroupBackLink, timeout)
}

// IsWatchURL reports whether url points at a watch page.
func IsWatchURL(url string) bool {
	return strings.Contains(url, "/watch/")
}
