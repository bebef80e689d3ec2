// Package main provides uiprobe - end-to-end browser checks for the PlayKaro site.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/playkaro/uiprobe/pkg/artifact"
	"github.com/playkaro/uiprobe/pkg/browser"
	"github.com/playkaro/uiprobe/pkg/config"
	"github.com/playkaro/uiprobe/pkg/git"
	"github.com/playkaro/uiprobe/pkg/inject"
	"github.com/playkaro/uiprobe/pkg/notify"
	"github.com/playkaro/uiprobe/pkg/progress"
	"github.com/playkaro/uiprobe/pkg/replay"
	"github.com/playkaro/uiprobe/pkg/report"
	"github.com/playkaro/uiprobe/pkg/site"
	"github.com/playkaro/uiprobe/pkg/suite"
)

// opts holds all command-line options.
type opts struct {
	URL      string `short:"u" long:"url" description:"base url of the site under test"`
	Output   string `short:"o" long:"output" description:"artifact directory"`
	Driver   string `short:"D" long:"driver" choice:"playwright" choice:"rod" choice:"chromedp" choice:"selenium" description:"browser backend"`
	Headed   bool   `long:"headed" description:"show the browser window"`
	List     bool   `long:"list" description:"list registered checks and exit"`
	Replay   bool   `long:"replay" description:"replay the latest failure artifact with simulated cards"`
	NoInject bool   `long:"no-inject" description:"replay without injecting simulated cards"`
	Watch    bool   `long:"watch" description:"replay every new failure artifact as it lands"`
	Inspect  bool   `long:"inspect" description:"count spinners and video cards in the latest artifact"`
	Offline  bool   `long:"offline" description:"inspect the saved html without a browser"`
	Report   bool   `long:"report" description:"render the run report in the terminal"`

	ConfigDir string `long:"config-dir" description:"global config directory"`
	Debug     bool   `short:"d" long:"debug" description:"enable debug logging"`
	NoColor   bool   `long:"no-color" description:"disable color output"`
	Version   bool   `short:"v" long:"version" description:"print version and exit"`

	Checks []string `positional-arg-name:"check" description:"check names to run (all when omitted)"`
}

// run modes, also used as the progress file suffix
const (
	modeChecks  = "checks"
	modeReplay  = "replay"
	modeInspect = "inspect"
	modeWatch   = "watch"
)

var revision = "unknown"

func main() {
	fmt.Printf("uiprobe %s\n", revision)

	var o opts
	parser := flags.NewParser(&o, flags.Default)
	parser.Usage = "[OPTIONS] [check...]"

	args, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if o.Version {
		os.Exit(0)
	}
	o.Checks = args

	restore := disableCtrlCEcho()
	defer restore()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, o); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		restore()
		os.Exit(1) //nolint:gocritic // terminal state restored above
	}
}

func run(ctx context.Context, o opts) error {
	if err := validateOpts(o); err != nil {
		return err
	}
	if o.List {
		printChecks(os.Stdout, suite.Checks())
		return nil
	}

	cfg, err := config.Load(o.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(cfg, o)

	colors := progress.NewColors(cfg.Colors)
	mode := determineMode(o)
	rev := git.Revision(".")

	log, err := progress.NewLogger(progress.Config{
		Dir:      cfg.OutputDir,
		Mode:     mode,
		BaseURL:  cfg.BaseURL,
		Driver:   cfg.Driver,
		Revision: rev,
		Debug:    o.Debug,
		NoColor:  o.NoColor,
		Colors:   colors,
	})
	if err != nil {
		return fmt.Errorf("create progress logger: %w", err)
	}
	defer log.Close()

	notifier, err := notify.New(cfg.NotifyParams(), log)
	if err != nil {
		return fmt.Errorf("create notifier: %w", err)
	}

	colors.Info().Printf("starting %s against %s with %s\n", mode, cfg.BaseURL, cfg.Driver)
	colors.Info().Printf("revision: %s\n", rev)
	colors.Info().Printf("progress log: %s\n\n", log.Path())

	switch mode {
	case modeReplay:
		err = runReplay(ctx, cfg, o, log, notifier, rev)
	case modeInspect:
		err = runInspect(ctx, cfg, o, log)
	case modeWatch:
		err = runWatch(ctx, cfg, o, log)
	default:
		err = runChecks(ctx, cfg, o, log, notifier, rev)
	}
	if err != nil {
		return err
	}

	colors.Info().Printf("\ncompleted in %s\n", log.Elapsed())
	return nil
}

// validateOpts rejects flag combinations that select more than one mode.
func validateOpts(o opts) error {
	replaying := o.Replay || o.Watch
	if o.Inspect && replaying {
		return errors.New("--inspect cannot be combined with --replay or --watch")
	}
	if o.Offline && !o.Inspect {
		return errors.New("--offline requires --inspect")
	}
	if o.NoInject && !replaying {
		return errors.New("--no-inject requires --replay or --watch")
	}
	if len(o.Checks) > 0 && (replaying || o.Inspect) {
		return errors.New("check names are only accepted when running checks")
	}
	return nil
}

func determineMode(o opts) string {
	switch {
	case o.Watch:
		return modeWatch
	case o.Replay:
		return modeReplay
	case o.Inspect:
		return modeInspect
	default:
		return modeChecks
	}
}

// applyOverrides puts command-line values on top of the loaded config.
func applyOverrides(cfg *config.Config, o opts) {
	if o.URL != "" {
		cfg.BaseURL = o.URL
	}
	if o.Output != "" {
		cfg.OutputDir = o.Output
	}
	if o.Driver != "" {
		cfg.Driver = o.Driver
	}
	if o.Headed {
		cfg.Headless = false
	}
	if cfg.Driver == "" {
		cfg.Driver = browser.Playwright
	}
}

func printChecks(w io.Writer, checks []suite.Check) {
	for _, c := range checks {
		fmt.Fprintf(w, "%-36s %s\n", c.Name, c.Description)
	}
}

func runChecks(ctx context.Context, cfg *config.Config, o opts, log *progress.Logger, notifier *notify.Service, rev string) error {
	checks, err := suite.Select(suite.Checks(), o.Checks)
	if err != nil {
		return err
	}

	driver, err := browser.Open(ctx, cfg.Driver, cfg.BrowserOptions())
	if err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	defer closeDriver(driver, log)

	runner := suite.NewRunner(suite.Config{
		BaseURL:   cfg.BaseURL,
		Selectors: cfg.Selectors,
		Timings: site.Timings{
			Element: config.Ms(cfg.ElementTimeoutMs),
			Cards:   config.Ms(cfg.CardsTimeoutMs),
			Poll:    config.Ms(cfg.PollIntervalMs),
		},
		NavigationSettle: config.Ms(cfg.NavigationSettleMs),
	}, driver, artifact.NewCapturer(cfg.OutputDir, log), log)

	started := time.Now()
	results := runner.Run(ctx, checks)
	sum := report.Summary{
		Results:  results,
		BaseURL:  cfg.BaseURL,
		Driver:   cfg.Driver,
		Revision: rev,
		Started:  started,
		Duration: time.Since(started),
	}

	if path, werr := sum.Write(cfg.OutputDir); werr != nil {
		log.Warn("write report: %v", werr)
	} else {
		log.Print("report saved to %s", path)
	}
	if o.Report {
		rendered, rerr := report.Render(sum.Markdown(), o.NoColor)
		if rerr != nil {
			log.Warn("render report: %v", rerr)
		} else {
			fmt.Print(rendered)
		}
	}

	res := checksResult(sum)
	notifier.Send(context.WithoutCancel(ctx), res)

	log.Print("checks: %d passed, %d failed, %d skipped", res.Passed, res.Failed, res.Skipped)
	if res.Failed > 0 {
		return fmt.Errorf("%d of %d check(s) failed", res.Failed, len(results))
	}
	return nil
}

// checksResult maps a finished run to a notification.
func checksResult(sum report.Summary) notify.Result {
	passed, failed, skipped := sum.Counts()
	status := notify.StatusSuccess
	if failed > 0 {
		status = notify.StatusFailure
	}
	return notify.Result{
		Status:   status,
		Mode:     modeChecks,
		BaseURL:  sum.BaseURL,
		Driver:   sum.Driver,
		Revision: sum.Revision,
		Passed:   passed,
		Failed:   failed,
		Skipped:  skipped,
		Failures: sum.Failures(),
		Duration: sum.Elapsed(),
	}
}

func runReplay(ctx context.Context, cfg *config.Config, o opts, log *progress.Logger, notifier *notify.Service, rev string) error {
	driver, err := browser.Open(ctx, cfg.Driver, cfg.BrowserOptions())
	if err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	defer closeDriver(driver, log)

	started := time.Now()
	out, replayErr := replayOnce(ctx, driver, replayConfig(cfg, o, replayPatterns(cfg)), log)

	res := notify.Result{
		Status:   notify.StatusSuccess,
		Mode:     modeReplay,
		BaseURL:  cfg.BaseURL,
		Driver:   cfg.Driver,
		Revision: rev,
		Passed:   1,
		Duration: time.Since(started).Round(time.Millisecond).String(),
	}
	if replayErr != nil {
		res.Status, res.Passed, res.Failed = notify.StatusFailure, 0, 1
		res.Error = replayErr.Error()
	}
	notifier.Send(context.WithoutCancel(ctx), res)

	if replayErr != nil {
		log.Fail("replay: %v", replayErr)
		return fmt.Errorf("replay: %w", replayErr)
	}
	log.Pass("replay of %s: %d card(s), click reached %s", filepath.Base(out.File), out.Cards, out.URL)
	return nil
}

// replayOnce runs one replay in a fresh browser session.
func replayOnce(ctx context.Context, driver browser.Driver, rc replay.Config, log *progress.Logger) (replay.Outcome, error) {
	page, err := driver.NewPage(ctx)
	if err != nil {
		return replay.Outcome{}, fmt.Errorf("open browser session: %w", err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			log.Warn("close browser session: %v", cerr)
		}
	}()
	return replay.NewReplayer(rc, page, artifact.NewCapturer(rc.Dir, log), log).Run(ctx)
}

func replayConfig(cfg *config.Config, o opts, patterns []string) replay.Config {
	return replay.Config{
		Dir:        cfg.OutputDir,
		Patterns:   patterns,
		Inject:     !o.NoInject,
		Script:     inject.Options{DelayMs: cfg.SimulatedLoadMs, Count: cfg.SimulatedCardCount},
		Links:      cfg.Selectors.Get(config.GroupCardLinks),
		WaitCards:  config.Ms(cfg.WaitCardsTimeoutMs),
		HashSettle: config.Ms(cfg.HashSettleMs),
	}
}

// replayPatterns returns the configured artifact patterns, skipping empty ones.
func replayPatterns(cfg *config.Config) []string {
	var res []string
	for _, p := range []string{cfg.ReplayPattern, cfg.ReplayFallbackPattern} {
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

func runInspect(ctx context.Context, cfg *config.Config, o opts, log *progress.Logger) error {
	ic := replay.InspectConfig{
		Dir:      cfg.OutputDir,
		Patterns: replayPatterns(cfg),
		Settle:   config.Ms(cfg.ReplaySettleMs),
		Spinners: cfg.Selectors.Get(config.GroupSpinners),
		Cards:    cfg.Selectors.Get(config.GroupInspectCards),
	}

	if o.Offline {
		if _, err := replay.NewInspector(ic, nil, log).Run(ctx); err != nil {
			return fmt.Errorf("inspect: %w", err)
		}
		return nil
	}

	driver, err := browser.Open(ctx, cfg.Driver, cfg.BrowserOptions())
	if err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	defer closeDriver(driver, log)

	page, err := driver.NewPage(ctx)
	if err != nil {
		return fmt.Errorf("open browser session: %w", err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			log.Warn("close browser session: %v", cerr)
		}
	}()

	if _, err := replay.NewInspector(ic, page, log).Run(ctx); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}

// runWatch replays each failure artifact as it lands, until interrupted.
func runWatch(ctx context.Context, cfg *config.Config, o opts, log *progress.Logger) error {
	driver, err := browser.Open(ctx, cfg.Driver, cfg.BrowserOptions())
	if err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	defer closeDriver(driver, log)

	onArtifact := func(ctx context.Context, path string) error {
		log.Print("new artifact: %s", filepath.Base(path))
		out, rerr := replayOnce(ctx, driver, replayConfig(cfg, o, []string{filepath.Base(path)}), log)
		if rerr != nil {
			return rerr
		}
		log.Pass("replay of %s: %d card(s), click reached %s", filepath.Base(out.File), out.Cards, out.URL)
		return nil
	}

	err = replay.Watch(ctx, replay.WatchConfig{Dir: cfg.OutputDir, Patterns: replayPatterns(cfg)}, onArtifact, log)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

func closeDriver(d browser.Driver, log *progress.Logger) {
	if err := d.Close(); err != nil {
		log.Warn("close browser: %v", err)
	}
}
