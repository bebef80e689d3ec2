// Package suite runs the site checks, one isolated browser session per check.
package suite

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/playkaro/uiprobe/pkg/artifact"
	"github.com/playkaro/uiprobe/pkg/browser"
	"github.com/playkaro/uiprobe/pkg/config"
	"github.com/playkaro/uiprobe/pkg/site"
)

// Status is the outcome of one check.
type Status string

// check outcomes
const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip" // inconclusive, the element the check needs is absent
)

// DefaultNavigationSettle is the pause after a click before the url is read.
const DefaultNavigationSettle = time.Second

// Check is one linear locate, wait and assert sequence.
type Check struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

// Env is what a check gets to work with. it is built fresh for every check.
type Env struct {
	Page             browser.Page
	Home             *site.HomePage
	Watch            *site.WatchPage
	Timings          site.Timings
	NavigationSettle time.Duration
	Log              Logger
}

// SkipError marks a check as inconclusive.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string { return "skipped: " + e.Reason }

// Skipf returns a SkipError with a formatted reason.
func Skipf(format string, args ...any) error {
	return &SkipError{Reason: fmt.Sprintf(format, args...)}
}

// Result is the outcome of one check.
type Result struct {
	Name      string
	Status    Status
	Duration  time.Duration
	Message   string
	Artifacts *artifact.Paths // set when failure artifacts were saved
}

// Logger is the runner output.
type Logger interface {
	Print(format string, args ...any)
	Pass(format string, args ...any)
	Fail(format string, args ...any)
	Skip(format string, args ...any)
	Warn(format string, args ...any)
	Debug(format string, args ...any)
}

// Capturer saves failure artifacts. *artifact.Capturer implements it.
type Capturer interface {
	CaptureBestEffort(ctx context.Context, snap artifact.Snapshot, name string) (artifact.Paths, bool)
}

// Config holds runner configuration.
type Config struct {
	BaseURL          string
	Selectors        config.Selectors
	Timings          site.Timings
	NavigationSettle time.Duration // zero means DefaultNavigationSettle
}

// Runner executes checks sequentially.
type Runner struct {
	cfg      Config
	driver   browser.Driver
	capturer Capturer
	log      Logger
}

// NewRunner makes a Runner. pages come from driver, failures are captured by capturer.
func NewRunner(cfg Config, driver browser.Driver, capturer Capturer, log Logger) *Runner {
	if cfg.NavigationSettle <= 0 {
		cfg.NavigationSettle = DefaultNavigationSettle
	}
	cfg.Timings = cfg.Timings.WithDefaults()
	return &Runner{cfg: cfg, driver: driver, capturer: capturer, log: log}
}

// Run executes checks in order. checks left when ctx is cancelled are reported as skipped.
func (r *Runner) Run(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		if ctx.Err() != nil {
			results = append(results, Result{Name: c.Name, Status: StatusSkip, Message: "interrupted"})
			r.log.Skip("%s: interrupted", c.Name)
			continue
		}
		res := r.runOne(ctx, c)
		results = append(results, res)
		switch res.Status {
		case StatusPass:
			r.log.Pass("%s (%s)", res.Name, res.Duration.Round(time.Millisecond))
		case StatusSkip:
			r.log.Skip("%s: %s", res.Name, res.Message)
		case StatusFail:
			r.log.Fail("%s: %s", res.Name, res.Message)
		}
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, c Check) (res Result) {
	start := time.Now()
	res.Name = c.Name
	defer func() { res.Duration = time.Since(start) }()

	r.log.Debug("starting check %s", c.Name)
	page, err := r.driver.NewPage(ctx)
	if err != nil {
		res.Status, res.Message = StatusFail, fmt.Sprintf("open browser session: %v", err)
		return res
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			r.log.Warn("close browser session for %s: %v", c.Name, cerr)
		}
	}()

	err = c.Run(ctx, r.newEnv(page))
	var skip *SkipError
	switch {
	case err == nil:
		res.Status = StatusPass
	case errors.As(err, &skip):
		res.Status, res.Message = StatusSkip, skip.Reason
	default:
		res.Status, res.Message = StatusFail, err.Error()
		// capture before the deferred close tears the session down
		if paths, ok := r.capturer.CaptureBestEffort(ctx, page, c.Name); ok {
			res.Artifacts = &paths
		}
	}
	return res
}

func (r *Runner) newEnv(page browser.Page) *Env {
	return &Env{
		Page:             page,
		Home:             site.NewHomePage(page, r.cfg.BaseURL, r.cfg.Selectors, r.cfg.Timings, r.log),
		Watch:            site.NewWatchPage(page, r.cfg.BaseURL, r.cfg.Selectors, r.cfg.Timings, r.log),
		Timings:          r.cfg.Timings,
		NavigationSettle: r.cfg.NavigationSettle,
		Log:              r.log,
	}
}

// Failed reports whether any result is a failure. skips do not count.
func Failed(results []Result) bool {
	return slices.ContainsFunc(results, func(r Result) bool { return r.Status == StatusFail })
}

// Select returns the named checks in the order given, or all checks when names is empty.
func Select(checks []Check, names []string) ([]Check, error) {
	if len(names) == 0 {
		return checks, nil
	}
	byName := make(map[string]Check, len(checks))
	for _, c := range checks {
		byName[c.Name] = c
	}

	var selected []Check
	var unknown []string
	for _, n := range names {
		c, ok := byName[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		selected = append(selected, c)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown check(s): %s", strings.Join(unknown, ", "))
	}
	return selected, nil
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
