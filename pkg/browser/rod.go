package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// rodDriver drives chromium over CDP with go-rod.
type rodDriver struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	opts     Options
}

func newRodDriver(ctx context.Context, opts Options) (*rodDriver, error) {
	l := launcher.New().
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Headless(opts.Headless).
		Leakless(false)
	if opts.ChromeBin != "" {
		l = l.Bin(opts.ChromeBin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	return &rodDriver{launcher: l, browser: b, opts: opts}, nil
}

// NewPage opens a page in a fresh incognito context.
func (d *rodDriver) NewPage(_ context.Context) (Page, error) {
	incognito, err := d.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("create incognito context: %w", err)
	}

	var page *rod.Page
	if d.opts.Stealth {
		page, err = stealth.Page(incognito)
	} else {
		page, err = incognito.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		_ = incognito.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width: d.opts.Width, Height: d.opts.Height, DeviceScaleFactor: 1,
	}); err != nil {
		_ = page.Close()
		_ = incognito.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	return &rodPage{page: page, incognito: incognito}, nil
}

// Close disconnects from chrome and kills the launched process.
func (d *rodDriver) Close() error {
	err := d.browser.Close()
	d.launcher.Kill()
	if err != nil {
		return fmt.Errorf("close chrome: %w", err)
	}
	return nil
}

type rodPage struct {
	page      *rod.Page
	incognito *rod.Browser
}

func (p *rodPage) Goto(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	return nil
}

func (p *rodPage) WaitFor(ctx context.Context, sel Selector, timeout time.Duration) (Element, error) {
	page := p.page.Context(ctx).Timeout(timeout)
	var (
		el  *rod.Element
		err error
	)
	if sel.Kind == KindXPath {
		el, err = page.ElementX(sel.Expr)
	} else {
		el, err = page.Element(sel.Expr)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", sel, ErrNotFound)
		}
		return nil, fmt.Errorf("wait for %s: %w", sel, err)
	}
	// detach the element from the timeout context so later actions are not cut short
	return &rodElement{el: el.CancelTimeout().Context(ctx)}, nil
}

func (p *rodPage) FindAll(ctx context.Context, sel Selector) ([]Element, error) {
	page := p.page.Context(ctx)
	var (
		els rod.Elements
		err error
	)
	if sel.Kind == KindXPath {
		els, err = page.ElementsX(sel.Expr)
	} else {
		els, err = page.Elements(sel.Expr)
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", sel, err)
	}
	res := make([]Element, 0, len(els))
	for _, el := range els {
		res = append(res, &rodElement{el: el})
	}
	return res, nil
}

func (p *rodPage) Evaluate(ctx context.Context, script string) error {
	if _, err := p.page.Context(ctx).Eval("() => {\n" + script + "\n}"); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

func (p *rodPage) URL(ctx context.Context) (string, error) {
	info, err := p.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.URL, nil
}

func (p *rodPage) HTML(ctx context.Context) (string, error) {
	html, err := p.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("page html: %w", err)
	}
	return html, nil
}

func (p *rodPage) Screenshot(ctx context.Context) ([]byte, error) {
	data, err := p.page.Context(ctx).Screenshot(true, nil)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

func (p *rodPage) Close() error {
	_ = p.page.Close()
	if err := p.incognito.Close(); err != nil {
		return fmt.Errorf("close incognito context: %w", err)
	}
	return nil
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) ScriptClick(ctx context.Context) error {
	_, err := e.el.Context(ctx).Eval(`() => this.click()`)
	return err
}

func (e *rodElement) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e *rodElement) Visible(ctx context.Context) (bool, error) {
	return e.el.Context(ctx).Visible()
}

func (e *rodElement) Fill(ctx context.Context, text string) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select text: %w", err)
	}
	return el.Input(text)
}
