package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// playwrightDriver runs chromium through playwright.
type playwrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    Options
}

func newPlaywrightDriver(opts Options) (*playwrightDriver, error) {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return nil, fmt.Errorf("install playwright: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("run playwright: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     chromeArgs,
	}
	if opts.ChromeBin != "" {
		launch.ExecutablePath = playwright.String(opts.ChromeBin)
	}
	// slow motion when headed, for visual observation
	if !opts.Headless {
		launch.SlowMo = playwright.Float(50)
	}

	b, err := pw.Chromium.Launch(launch)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	return &playwrightDriver{pw: pw, browser: b, opts: opts}, nil
}

// NewPage creates an isolated browser context and a page in it.
func (d *playwrightDriver) NewPage(_ context.Context) (Page, error) {
	bctx, err := d.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: d.opts.Width, Height: d.opts.Height},
	})
	if err != nil {
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &playwrightPage{ctx: bctx, page: page}, nil
}

// Close closes the browser and stops the playwright driver process.
func (d *playwrightDriver) Close() error {
	var errs []error
	if d.browser != nil {
		if err := d.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}

type playwrightPage struct {
	ctx  playwright.BrowserContext
	page playwright.Page
}

// playwrightSelector maps a Selector to playwright selector syntax.
func playwrightSelector(sel Selector) string {
	if sel.Kind == KindXPath {
		return "xpath=" + sel.Expr
	}
	return sel.Expr
}

func (p *playwrightPage) Goto(_ context.Context, url string) error {
	if _, err := p.page.Goto(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (p *playwrightPage) WaitFor(_ context.Context, sel Selector, timeout time.Duration) (Element, error) {
	loc := p.page.Locator(playwrightSelector(sel)).First()
	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout / time.Millisecond)),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return nil, fmt.Errorf("%s: %w", sel, ErrNotFound)
		}
		return nil, fmt.Errorf("wait for %s: %w", sel, err)
	}
	return &playwrightElement{loc: loc}, nil
}

func (p *playwrightPage) FindAll(_ context.Context, sel Selector) ([]Element, error) {
	locs, err := p.page.Locator(playwrightSelector(sel)).All()
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", sel, err)
	}
	res := make([]Element, 0, len(locs))
	for _, l := range locs {
		res = append(res, &playwrightElement{loc: l})
	}
	return res, nil
}

func (p *playwrightPage) Evaluate(_ context.Context, script string) error {
	if _, err := p.page.Evaluate(script); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

func (p *playwrightPage) URL(_ context.Context) (string, error) {
	return p.page.URL(), nil
}

func (p *playwrightPage) HTML(_ context.Context) (string, error) {
	html, err := p.page.Content()
	if err != nil {
		return "", fmt.Errorf("page content: %w", err)
	}
	return html, nil
}

func (p *playwrightPage) Screenshot(_ context.Context) ([]byte, error) {
	data, err := p.page.Screenshot(playwright.PageScreenshotOptions{FullPage: playwright.Bool(true)})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

// Close closes the page and its isolated context.
func (p *playwrightPage) Close() error {
	_ = p.page.Close()
	if err := p.ctx.Close(); err != nil {
		return fmt.Errorf("close browser context: %w", err)
	}
	return nil
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) Click(_ context.Context) error {
	return e.loc.Click()
}

func (e *playwrightElement) ScriptClick(_ context.Context) error {
	_, err := e.loc.Evaluate("el => el.click()", nil)
	return err
}

func (e *playwrightElement) Text(_ context.Context) (string, error) {
	return e.loc.InnerText()
}

func (e *playwrightElement) Visible(_ context.Context) (bool, error) {
	return e.loc.IsVisible()
}

func (e *playwrightElement) Fill(_ context.Context, text string) error {
	return e.loc.Fill(text)
}
