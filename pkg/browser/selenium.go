package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// seleniumPollInterval is how often WaitFor re-queries the remote end.
const seleniumPollInterval = 250 * time.Millisecond

// seleniumDriver talks W3C WebDriver to a remote end or to a locally started chromedriver.
// every page is a separate webdriver session.
type seleniumDriver struct {
	service *selenium.Service // nil when a remote url is configured
	url     string
	caps    selenium.Capabilities
	opts    Options
}

func newSeleniumDriver(opts Options) (*seleniumDriver, error) {
	args := append([]string{}, chromeArgs...)
	if opts.Headless {
		args = append(args, "--headless=new")
	}
	chromeCaps := chrome.Capabilities{Args: args, Path: opts.ChromeBin}

	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chromeCaps)

	d := &seleniumDriver{url: opts.SeleniumURL, caps: caps, opts: opts}
	if d.url == "" {
		svc, err := selenium.NewChromeDriverService(opts.ChromeDriverPath, opts.ChromeDriverPort)
		if err != nil {
			return nil, fmt.Errorf("start chromedriver %s: %w", opts.ChromeDriverPath, err)
		}
		d.service = svc
		d.url = fmt.Sprintf("http://localhost:%d/wd/hub", opts.ChromeDriverPort)
	}
	return d, nil
}

// NewPage starts a new webdriver session.
func (d *seleniumDriver) NewPage(_ context.Context) (Page, error) {
	wd, err := selenium.NewRemote(d.caps, d.url)
	if err != nil {
		return nil, fmt.Errorf("create webdriver session: %w", err)
	}
	if err := wd.ResizeWindow("", d.opts.Width, d.opts.Height); err != nil {
		_ = wd.Quit()
		return nil, fmt.Errorf("resize window: %w", err)
	}
	return &seleniumPage{wd: wd}, nil
}

// Close stops the local chromedriver if one was started.
func (d *seleniumDriver) Close() error {
	if d.service == nil {
		return nil
	}
	if err := d.service.Stop(); err != nil {
		return fmt.Errorf("stop chromedriver: %w", err)
	}
	return nil
}

type seleniumPage struct {
	wd selenium.WebDriver
}

func seleniumBy(sel Selector) string {
	if sel.Kind == KindXPath {
		return selenium.ByXPATH
	}
	return selenium.ByCSSSelector
}

func (p *seleniumPage) Goto(_ context.Context, url string) error {
	if err := p.wd.Get(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (p *seleniumPage) WaitFor(ctx context.Context, sel Selector, timeout time.Duration) (Element, error) {
	var found selenium.WebElement
	err := p.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		el, err := wd.FindElement(seleniumBy(sel), sel.Expr)
		if err != nil {
			return false, nil //nolint:nilerr // not present yet, keep polling
		}
		found = el
		return true, nil
	}, timeout, seleniumPollInterval)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("wait for %s: %w", sel, ctx.Err())
		}
		return nil, fmt.Errorf("%s: %w", sel, ErrNotFound)
	}
	return &seleniumElement{wd: p.wd, el: found}, nil
}

func (p *seleniumPage) FindAll(_ context.Context, sel Selector) ([]Element, error) {
	els, err := p.wd.FindElements(seleniumBy(sel), sel.Expr)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", sel, err)
	}
	res := make([]Element, 0, len(els))
	for _, el := range els {
		res = append(res, &seleniumElement{wd: p.wd, el: el})
	}
	return res, nil
}

func (p *seleniumPage) Evaluate(_ context.Context, script string) error {
	if _, err := p.wd.ExecuteScript(script, nil); err != nil {
		return fmt.Errorf("execute script: %w", err)
	}
	return nil
}

func (p *seleniumPage) URL(_ context.Context) (string, error) {
	return p.wd.CurrentURL()
}

func (p *seleniumPage) HTML(_ context.Context) (string, error) {
	return p.wd.PageSource()
}

func (p *seleniumPage) Screenshot(_ context.Context) ([]byte, error) {
	return p.wd.Screenshot()
}

// Close ends the webdriver session.
func (p *seleniumPage) Close() error {
	return p.wd.Quit()
}

type seleniumElement struct {
	wd selenium.WebDriver
	el selenium.WebElement
}

func (e *seleniumElement) Click(_ context.Context) error {
	return e.el.Click()
}

func (e *seleniumElement) ScriptClick(_ context.Context) error {
	_, err := e.wd.ExecuteScript("arguments[0].click();", []any{e.el})
	return err
}

func (e *seleniumElement) Text(_ context.Context) (string, error) {
	return e.el.Text()
}

func (e *seleniumElement) Visible(_ context.Context) (bool, error) {
	return e.el.IsDisplayed()
}

func (e *seleniumElement) Fill(_ context.Context, text string) error {
	if err := e.el.Clear(); err != nil {
		return fmt.Errorf("clear input: %w", err)
	}
	return e.el.SendKeys(text)
}
