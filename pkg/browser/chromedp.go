package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// chromedpDriver drives chromium over CDP with chromedp.
type chromedpDriver struct {
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

func newChromedpDriver(ctx context.Context, opts Options) (*chromedpDriver, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], //nolint:gocritic // copy of the default array
		chromedp.Flag("headless", opts.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(opts.Width, opts.Height),
	)
	if opts.ChromeBin != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// first Run starts the browser
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	return &chromedpDriver{browserCtx: browserCtx, cancelBrowser: cancelBrowser, cancelAlloc: cancelAlloc}, nil
}

// NewPage opens a new tab in its own browser context.
func (d *chromedpDriver) NewPage(_ context.Context) (Page, error) {
	tabCtx, cancel := chromedp.NewContext(d.browserCtx, chromedp.WithNewBrowserContext())
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("create tab: %w", err)
	}
	return &chromedpPage{ctx: tabCtx, cancel: cancel}, nil
}

func (d *chromedpDriver) Close() error {
	d.cancelBrowser()
	d.cancelAlloc()
	return nil
}

// chromedpPage runs actions in the tab context. the caller context bounds each call.
type chromedpPage struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// run executes actions in the tab, cancelled when either the tab or the caller context is done.
func (p *chromedpPage) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (p *chromedpPage) Goto(ctx context.Context, url string) error {
	if err := p.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func queryOption(sel Selector) chromedp.QueryOption {
	if sel.Kind == KindXPath {
		return chromedp.BySearch
	}
	return chromedp.ByQueryAll
}

func (p *chromedpPage) WaitFor(ctx context.Context, sel Selector, timeout time.Duration) (Element, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var nodes []*cdp.Node
	err := p.run(waitCtx, chromedp.Nodes(sel.Expr, &nodes, queryOption(sel)))
	if err != nil {
		if errors.Is(waitCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%s: %w", sel, ErrNotFound)
		}
		return nil, fmt.Errorf("wait for %s: %w", sel, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%s: %w", sel, ErrNotFound)
	}
	return &chromedpElement{page: p, node: nodes[0]}, nil
}

func (p *chromedpPage) FindAll(ctx context.Context, sel Selector) ([]Element, error) {
	var nodes []*cdp.Node
	if err := p.run(ctx, chromedp.Nodes(sel.Expr, &nodes, queryOption(sel), chromedp.AtLeast(0))); err != nil {
		return nil, fmt.Errorf("find %s: %w", sel, err)
	}
	res := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, &chromedpElement{page: p, node: n})
	}
	return res, nil
}

func (p *chromedpPage) Evaluate(ctx context.Context, script string) error {
	if err := p.run(ctx, chromedp.Evaluate(script, nil)); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

func (p *chromedpPage) URL(ctx context.Context) (string, error) {
	var url string
	if err := p.run(ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("location: %w", err)
	}
	return url, nil
}

func (p *chromedpPage) HTML(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("outer html: %w", err)
	}
	return html, nil
}

func (p *chromedpPage) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	// quality 100 produces png
	if err := p.run(ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return buf, nil
}

func (p *chromedpPage) Close() error {
	p.cancel()
	return nil
}

type chromedpElement struct {
	page *chromedpPage
	node *cdp.Node
}

func (e *chromedpElement) Click(ctx context.Context) error {
	return e.page.run(ctx, chromedp.MouseClickNode(e.node))
}

func (e *chromedpElement) ScriptClick(ctx context.Context) error {
	return e.page.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := e.callOn(ctx, "function() { this.click(); }")
		return err
	}))
}

// callOn calls fn with the node as this and returns the result by value.
// it runs against the node directly, without the visibility waits of chromedp query actions.
func (e *chromedpElement) callOn(ctx context.Context, fn string) (*runtime.RemoteObject, error) {
	obj, err := dom.ResolveNode().WithBackendNodeID(e.node.BackendNodeID).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve node: %w", err)
	}
	res, exc, err := runtime.CallFunctionOn(fn).WithObjectID(obj.ObjectID).WithReturnByValue(true).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("call function: %w", err)
	}
	if exc != nil {
		return nil, fmt.Errorf("call function: %s", exc.Text)
	}
	return res, nil
}

func (e *chromedpElement) Text(ctx context.Context) (string, error) {
	var text string
	err := e.page.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		res, err := e.callOn(ctx, "function() { return this.innerText || ''; }")
		if err != nil {
			return err
		}
		if len(res.Value) == 0 {
			return nil
		}
		if uerr := json.Unmarshal([]byte(res.Value), &text); uerr != nil {
			return fmt.Errorf("decode text: %w", uerr)
		}
		return nil
	}))
	return text, err
}

// Visible reports whether the node has a layout box.
func (e *chromedpElement) Visible(ctx context.Context) (bool, error) {
	visible := false
	err := e.page.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		if _, boxErr := dom.GetBoxModel().WithNodeID(e.node.NodeID).Do(ctx); boxErr == nil {
			visible = true
		}
		return nil
	}))
	return visible, err
}

// Fill focuses the node, clears it and inserts text as if typed, firing input events.
func (e *chromedpElement) Fill(ctx context.Context, text string) error {
	return e.page.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		if _, err := e.callOn(ctx, "function() { this.focus(); this.value = ''; }"); err != nil {
			return err
		}
		if err := input.InsertText(text).Do(ctx); err != nil {
			return fmt.Errorf("insert text: %w", err)
		}
		return nil
	}))
}
