// Package replay holds the offline diagnostics that work on saved failure artifacts:
// the replay of a saved page with injected video cards, the inspection of a saved page
// and the watch loop that reruns a diagnostic when a new artifact lands.
package replay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playkaro/uiprobe/pkg/artifact"
	"github.com/playkaro/uiprobe/pkg/browser"
	"github.com/playkaro/uiprobe/pkg/inject"
	"github.com/playkaro/uiprobe/pkg/locate"
)

// replay defaults
const (
	DefaultWaitCards  = 10 * time.Second
	DefaultHashSettle = 250 * time.Millisecond
	TimeoutArtifact   = "simulated_cards_timeout"
	linkTimeout       = 3 * time.Second
)

type logger interface {
	Print(format string, args ...any)
	Warn(format string, args ...any)
	Debug(format string, args ...any)
}

// NamedCapturer saves a page under a fixed name. *artifact.Capturer implements it.
type NamedCapturer interface {
	CaptureNamed(ctx context.Context, snap artifact.Snapshot, base string) (artifact.Paths, error)
}

// Config holds replay settings.
type Config struct {
	Dir        string   // artifact directory
	Patterns   []string // tried in order, the first pattern with a match wins
	Inject     bool     // evaluate the synthetic card script after load
	Script     inject.Options
	Links      []browser.Selector // card link candidates, defaults to inject.LinkSelector
	WaitCards  time.Duration
	HashSettle time.Duration
}

// Outcome describes a successful replay.
type Outcome struct {
	File  string
	URL   string // page url after the click
	Cards int
}

// Replayer opens the latest saved page, injects delayed cards and verifies a card click navigates.
type Replayer struct {
	cfg      Config
	page     browser.Page
	capturer NamedCapturer
	log      logger
}

// NewReplayer makes a Replayer driving page.
func NewReplayer(cfg Config, page browser.Page, capturer NamedCapturer, log logger) *Replayer {
	if cfg.WaitCards <= 0 {
		cfg.WaitCards = DefaultWaitCards
	}
	if cfg.HashSettle <= 0 {
		cfg.HashSettle = DefaultHashSettle
	}
	if len(cfg.Links) == 0 {
		cfg.Links = []browser.Selector{browser.CSS(inject.LinkSelector)}
	}
	return &Replayer{cfg: cfg, page: page, capturer: capturer, log: log}
}

// Run performs one replay. any returned error means the replay failed.
func (r *Replayer) Run(ctx context.Context) (Outcome, error) {
	file, err := artifact.FindLatest(r.cfg.Dir, r.cfg.Patterns...)
	if err != nil {
		return Outcome{}, err
	}
	url, err := browser.FileURL(file)
	if err != nil {
		return Outcome{}, err
	}
	r.log.Print("using html file: %s", file)
	r.log.Print("file url: %s", url)

	if err = r.page.Goto(ctx, url); err != nil {
		return Outcome{}, fmt.Errorf("open %s: %w", url, err)
	}

	if r.cfg.Inject {
		script, sErr := inject.Script(r.cfg.Script)
		if sErr != nil {
			return Outcome{}, sErr
		}
		if err = r.page.Evaluate(ctx, script); err != nil {
			return Outcome{}, fmt.Errorf("inject simulated cards: %w", err)
		}
	}

	r.log.Print("waiting up to %s for video cards to appear", r.cfg.WaitCards)
	if _, err = r.page.WaitFor(ctx, browser.CSS(inject.CardSelector), r.cfg.WaitCards); err != nil {
		if !errors.Is(err, browser.ErrNotFound) {
			return Outcome{}, fmt.Errorf("wait for video cards: %w", err)
		}
		return Outcome{}, r.timeoutError(ctx)
	}

	cards, err := r.page.FindAll(ctx, browser.CSS(inject.CardSelector))
	if err != nil {
		return Outcome{}, fmt.Errorf("find video cards: %w", err)
	}
	r.log.Print("found %d card(s)", len(cards))
	if len(cards) == 0 {
		return Outcome{}, errors.New("no video cards found after injection")
	}

	loc := locate.New(r.page, r.log)
	link, sel, ok := loc.First(ctx, r.cfg.Links, linkTimeout)
	if !ok {
		return Outcome{}, errors.New("no clickable link found inside first video card")
	}
	r.log.Debug("clicking %s", sel)
	if !loc.Click(ctx, link) {
		return Outcome{}, errors.New("failed to click the first video card link")
	}

	if err = sleep(ctx, r.cfg.HashSettle); err != nil {
		return Outcome{}, err
	}
	current, err := r.page.URL(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("read url: %w", err)
	}
	r.log.Print("after click, page url: %s", current)
	if !strings.Contains(current, inject.ExpectedHash) {
		return Outcome{}, fmt.Errorf("click did not navigate to expected %s hash, url is %s", inject.ExpectedHash, current)
	}
	return Outcome{File: file, URL: current, Cards: len(cards)}, nil
}

// timeoutError saves the page for debugging and builds the error naming the saved files.
func (r *Replayer) timeoutError(ctx context.Context) error {
	paths, err := r.capturer.CaptureNamed(ctx, r.page, TimeoutArtifact)
	if err != nil {
		r.log.Warn("could not save screenshot/page source: %v", err)
		return fmt.Errorf("timed out after %s waiting for simulated video cards to appear", r.cfg.WaitCards)
	}
	return fmt.Errorf("timed out after %s waiting for simulated video cards to appear, saved %s and %s",
		r.cfg.WaitCards, paths.PNG, paths.HTML)
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
