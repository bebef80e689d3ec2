package replay

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/playkaro/uiprobe/pkg/artifact"
	"github.com/playkaro/uiprobe/pkg/browser"
)

// DefaultInspectSettle is the pause after load before counting.
const DefaultInspectSettle = time.Second

// InspectConfig holds inspect settings.
type InspectConfig struct {
	Dir      string
	Patterns []string
	Settle   time.Duration
	Spinners []browser.Selector
	Cards    []browser.Selector
}

// Inspection is what was found in a saved page.
type Inspection struct {
	File     string
	Spinners int
	Cards    int
}

// Inspector counts loading spinners and video cards in the latest saved page.
// with a nil page the file is parsed offline, only css candidates are counted then.
type Inspector struct {
	cfg  InspectConfig
	page browser.Page
	log  logger
}

// NewInspector makes an Inspector. page may be nil for offline inspection.
func NewInspector(cfg InspectConfig, page browser.Page, log logger) *Inspector {
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultInspectSettle
	}
	return &Inspector{cfg: cfg, page: page, log: log}
}

// Run inspects the latest artifact and reports the counts.
func (i *Inspector) Run(ctx context.Context) (Inspection, error) {
	file, err := artifact.FindLatest(i.cfg.Dir, i.cfg.Patterns...)
	if err != nil {
		return Inspection{}, err
	}

	var res Inspection
	if i.page == nil {
		res, err = i.inspectOffline(file)
	} else {
		res, err = i.inspectBrowser(ctx, file)
	}
	if err != nil {
		return Inspection{}, err
	}

	if res.Spinners > 0 {
		i.log.Print("spinner found, content likely loading")
	}
	i.log.Print("found %d video card(s)", res.Cards)
	return res, nil
}

func (i *Inspector) inspectBrowser(ctx context.Context, file string) (Inspection, error) {
	url, err := browser.FileURL(file)
	if err != nil {
		return Inspection{}, err
	}
	i.log.Print("opening local file: %s", url)
	if err = i.page.Goto(ctx, url); err != nil {
		return Inspection{}, fmt.Errorf("open %s: %w", url, err)
	}
	if err = sleep(ctx, i.cfg.Settle); err != nil {
		return Inspection{}, err
	}
	return Inspection{
		File:     file,
		Spinners: i.countLive(ctx, i.cfg.Spinners),
		Cards:    i.countLive(ctx, i.cfg.Cards),
	}, nil
}

func (i *Inspector) countLive(ctx context.Context, sels []browser.Selector) int {
	total := 0
	for _, sel := range sels {
		els, err := i.page.FindAll(ctx, sel)
		if err != nil {
			i.log.Debug("count %s: %v", sel, err)
			continue
		}
		total += len(els)
	}
	return total
}

func (i *Inspector) inspectOffline(file string) (Inspection, error) {
	f, err := os.Open(file) //nolint:gosec // artifact path found under the output dir
	if err != nil {
		return Inspection{}, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return Inspection{}, fmt.Errorf("parse %s: %w", file, err)
	}
	i.log.Print("parsing local file: %s", file)
	return Inspection{
		File:     file,
		Spinners: i.countStatic(doc, i.cfg.Spinners),
		Cards:    i.countStatic(doc, i.cfg.Cards),
	}, nil
}

// countStatic counts distinct nodes matching any css candidate.
func (i *Inspector) countStatic(doc *goquery.Document, sels []browser.Selector) int {
	var css []string
	for _, sel := range sels {
		if sel.Kind != browser.KindCSS {
			i.log.Debug("offline inspection skips %s", sel)
			continue
		}
		css = append(css, sel.Expr)
	}
	if len(css) == 0 {
		return 0
	}
	return doc.Find(strings.Join(css, ", ")).Length()
}
