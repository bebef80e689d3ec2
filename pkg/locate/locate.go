// Package locate implements the element-location fallback strategy used by all page objects.
// candidates are tried in order, a miss on one candidate is never an error.
package locate

import (
	"context"
	"errors"
	"time"

	"github.com/playkaro/uiprobe/pkg/browser"
)

// DefaultPollInterval is the pause between scan rounds in Poll.
const DefaultPollInterval = 500 * time.Millisecond

// logger is the subset of progress.Logger used here.
type logger interface {
	Debug(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Locator finds elements on one page.
type Locator struct {
	page browser.Page
	log  logger
}

// New makes a Locator for page. log may be nil.
func New(page browser.Page, log logger) *Locator {
	if log == nil {
		log = nopLogger{}
	}
	return &Locator{page: page, log: log}
}

// First waits up to timeout on each candidate in order and returns the first match.
// returns false when all candidates are exhausted. errors other than browser.ErrNotFound
// (invalid selector, detached frame) are logged and count as a miss.
func (l *Locator) First(ctx context.Context, candidates []browser.Selector, timeout time.Duration) (browser.Element, browser.Selector, bool) {
	for _, sel := range candidates {
		if ctx.Err() != nil {
			return nil, browser.Selector{}, false
		}
		el, err := l.page.WaitFor(ctx, sel, timeout)
		if err != nil {
			if !errors.Is(err, browser.ErrNotFound) {
				l.log.Debug("selector %s failed: %v", sel, err)
			}
			continue
		}
		l.log.Debug("located %s", sel)
		return el, sel, true
	}
	return nil, browser.Selector{}, false
}

// Poll scans all candidates without waiting, repeating every interval until timeout.
// returns the first non-empty match set, or nil when the deadline passes or ctx is done.
// at least one scan round always runs.
func (l *Locator) Poll(ctx context.Context, candidates []browser.Selector, timeout, interval time.Duration) []browser.Element {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	deadline := time.Now().Add(timeout)

	for {
		for _, sel := range candidates {
			els, err := l.page.FindAll(ctx, sel)
			if err != nil {
				l.log.Debug("selector %s failed: %v", sel, err)
				continue
			}
			if len(els) > 0 {
				l.log.Debug("located %d element(s) with %s", len(els), sel)
				return els
			}
		}

		if !time.Now().Before(deadline) {
			return nil
		}
		// allow js-driven loading before the next round
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// Click clicks el natively and falls back to a script click. returns false only when both fail.
func (l *Locator) Click(ctx context.Context, el browser.Element) bool {
	err := el.Click(ctx)
	if err == nil {
		return true
	}
	l.log.Debug("native click failed, trying script click: %v", err)
	if err := el.ScriptClick(ctx); err != nil {
		l.log.Debug("script click failed: %v", err)
		return false
	}
	return true
}
