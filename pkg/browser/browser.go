// Package browser provides a single abstraction over the browser automation backends used by uiprobe.
// each backend (playwright, rod, chromedp, selenium) implements Driver, Page and Element.
package browser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when a wait for an element times out.
var ErrNotFound = errors.New("element not found")

// Kind is the selector language.
type Kind string

// selector kinds
const (
	KindCSS   Kind = "css"
	KindXPath Kind = "xpath"
)

// Selector is one element-location candidate.
type Selector struct {
	Kind Kind
	Expr string
}

// CSS makes a css selector.
func CSS(expr string) Selector { return Selector{Kind: KindCSS, Expr: expr} }

// XPath makes an xpath selector.
func XPath(expr string) Selector { return Selector{Kind: KindXPath, Expr: expr} }

// String returns kind-prefixed selector, e.g. "css:.video-card".
func (s Selector) String() string { return string(s.Kind) + ":" + s.Expr }

// backend names
const (
	Playwright = "playwright"
	Rod        = "rod"
	Chromedp   = "chromedp"
	Selenium   = "selenium"
)

// Backends lists supported backend names in preference order.
var Backends = []string{Playwright, Rod, Chromedp, Selenium}

//go:generate moq -out mocks/driver.go -pkg mocks -skip-ensure -fmt goimports . Driver
//go:generate moq -out mocks/page.go -pkg mocks -skip-ensure -fmt goimports . Page
//go:generate moq -out mocks/element.go -pkg mocks -skip-ensure -fmt goimports . Element

// Driver owns a running browser and hands out isolated pages.
type Driver interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is one isolated browser session (own context, cookies and storage).
type Page interface {
	Goto(ctx context.Context, url string) error
	// WaitFor waits up to timeout for an element to be present in the DOM, returns ErrNotFound on timeout.
	WaitFor(ctx context.Context, sel Selector, timeout time.Duration) (Element, error)
	// FindAll returns all currently matching elements without waiting.
	FindAll(ctx context.Context, sel Selector) ([]Element, error)
	Evaluate(ctx context.Context, script string) error
	URL(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// Element is a located DOM node.
type Element interface {
	Click(ctx context.Context) error
	// ScriptClick clicks through script evaluation, bypassing overlays and actionability checks.
	ScriptClick(ctx context.Context) error
	Text(ctx context.Context) (string, error)
	Visible(ctx context.Context) (bool, error)
	Fill(ctx context.Context, text string) error
}

// Options configures browser launch.
type Options struct {
	Headless         bool
	Width            int
	Height           int
	ChromeBin        string // custom chrome/chromium binary, empty for backend default
	SeleniumURL      string // remote webdriver url, empty to start a local chromedriver
	ChromeDriverPath string
	ChromeDriverPort int
	Stealth          bool // rod only
}

// default window size
const (
	DefaultWidth  = 1400
	DefaultHeight = 900
)

// chromeArgs are passed to every chromium launch.
var chromeArgs = []string{"--no-sandbox", "--disable-dev-shm-usage"}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.ChromeDriverPath == "" {
		o.ChromeDriverPath = "chromedriver"
	}
	if o.ChromeDriverPort <= 0 {
		o.ChromeDriverPort = 4444
	}
	return o
}

// Open starts the named backend.
func Open(ctx context.Context, name string, opts Options) (Driver, error) {
	opts = opts.withDefaults()
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Playwright, "":
		return newPlaywrightDriver(opts)
	case Rod:
		return newRodDriver(ctx, opts)
	case Chromedp:
		return newChromedpDriver(ctx, opts)
	case Selenium:
		return newSeleniumDriver(opts)
	default:
		return nil, fmt.Errorf("unknown browser driver %q, expected one of %s", name, strings.Join(Backends, ", "))
	}
}

// FileURL converts a local file path to a file:/// url with forward slashes.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	abs = filepath.ToSlash(abs)
	return "file:///" + strings.TrimLeft(abs, "/"), nil
}
