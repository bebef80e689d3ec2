package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playkaro/uiprobe/pkg/browser"
	"github.com/playkaro/uiprobe/pkg/config"
	"github.com/playkaro/uiprobe/pkg/notify"
	"github.com/playkaro/uiprobe/pkg/report"
	"github.com/playkaro/uiprobe/pkg/suite"
)

func TestValidateOpts(t *testing.T) {
	tests := []struct {
		name    string
		o       opts
		wantErr string
	}{
		{name: "default checks", o: opts{}},
		{name: "named checks", o: opts{Checks: []string{"home_page_loads_and_has_heading"}}},
		{name: "replay", o: opts{Replay: true, NoInject: true}},
		{name: "watch with replay", o: opts{Replay: true, Watch: true}},
		{name: "offline inspect", o: opts{Inspect: true, Offline: true}},
		{name: "inspect and replay", o: opts{Inspect: true, Replay: true}, wantErr: "--inspect cannot be combined"},
		{name: "inspect and watch", o: opts{Inspect: true, Watch: true}, wantErr: "--inspect cannot be combined"},
		{name: "offline alone", o: opts{Offline: true}, wantErr: "--offline requires --inspect"},
		{name: "no-inject alone", o: opts{NoInject: true}, wantErr: "--no-inject requires"},
		{name: "checks with replay", o: opts{Replay: true, Checks: []string{"x"}}, wantErr: "only accepted when running checks"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateOpts(tc.o)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDetermineMode(t *testing.T) {
	assert.Equal(t, modeChecks, determineMode(opts{}))
	assert.Equal(t, modeReplay, determineMode(opts{Replay: true}))
	assert.Equal(t, modeWatch, determineMode(opts{Replay: true, Watch: true}))
	assert.Equal(t, modeInspect, determineMode(opts{Inspect: true, Offline: true}))
}

func TestApplyOverrides(t *testing.T) {
	t.Run("flags win", func(t *testing.T) {
		cfg := &config.Config{Values: config.Values{BaseURL: "https://playkaro.example", OutputDir: "test_output",
			Driver: browser.Rod, Headless: true}}
		applyOverrides(cfg, opts{URL: "http://localhost:8080", Output: "/tmp/out", Driver: browser.Selenium, Headed: true})
		assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
		assert.Equal(t, "/tmp/out", cfg.OutputDir)
		assert.Equal(t, browser.Selenium, cfg.Driver)
		assert.False(t, cfg.Headless)
	})

	t.Run("config kept", func(t *testing.T) {
		cfg := &config.Config{Values: config.Values{BaseURL: "https://playkaro.example", Driver: browser.Chromedp, Headless: true}}
		applyOverrides(cfg, opts{})
		assert.Equal(t, "https://playkaro.example", cfg.BaseURL)
		assert.Equal(t, browser.Chromedp, cfg.Driver)
		assert.True(t, cfg.Headless)
	})

	t.Run("driver defaults to playwright", func(t *testing.T) {
		cfg := &config.Config{}
		applyOverrides(cfg, opts{})
		assert.Equal(t, browser.Playwright, cfg.Driver)
	})
}

func TestPrintChecks(t *testing.T) {
	var buf bytes.Buffer
	printChecks(&buf, suite.Checks())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(suite.Checks()))
	assert.True(t, strings.HasPrefix(lines[0], "home_page_loads_and_has_heading "))
	assert.Contains(t, lines[0], "home page renders a non-empty h1")
}

func TestReplayPatterns(t *testing.T) {
	cfg := &config.Config{Values: config.Values{ReplayPattern: "*a-*.html", ReplayFallbackPattern: "*-[0-9]*.html"}}
	assert.Equal(t, []string{"*a-*.html", "*-[0-9]*.html"}, replayPatterns(cfg))

	cfg.ReplayFallbackPattern = ""
	assert.Equal(t, []string{"*a-*.html"}, replayPatterns(cfg))
}

func TestReplayConfig(t *testing.T) {
	links := []browser.Selector{browser.CSS(".video-card a")}
	cfg := &config.Config{
		Values: config.Values{OutputDir: "out", SimulatedLoadMs: 1500, SimulatedCardCount: 4,
			WaitCardsTimeoutMs: 7000, HashSettleMs: 300},
		Selectors: config.Selectors{config.GroupCardLinks: links},
	}

	rc := replayConfig(cfg, opts{Replay: true}, []string{"x-1.html"})
	assert.Equal(t, "out", rc.Dir)
	assert.Equal(t, []string{"x-1.html"}, rc.Patterns)
	assert.True(t, rc.Inject)
	assert.Equal(t, 1500, rc.Script.DelayMs)
	assert.Equal(t, 4, rc.Script.Count)
	assert.Equal(t, links, rc.Links)
	assert.Equal(t, 7*time.Second, rc.WaitCards)
	assert.Equal(t, 300*time.Millisecond, rc.HashSettle)

	assert.False(t, replayConfig(cfg, opts{Replay: true, NoInject: true}, nil).Inject)
}

func TestChecksResult(t *testing.T) {
	sum := report.Summary{
		Results: []suite.Result{
			{Name: "a", Status: suite.StatusPass},
			{Name: "b", Status: suite.StatusFail, Message: "heading text is empty"},
			{Name: "c", Status: suite.StatusSkip, Message: "no cards"},
		},
		BaseURL:  "https://playkaro.example",
		Driver:   browser.Playwright,
		Revision: "abc1234 (main)",
		Started:  time.Now(),
		Duration: 42 * time.Second,
	}

	res := checksResult(sum)
	assert.Equal(t, notify.StatusFailure, res.Status)
	assert.Equal(t, modeChecks, res.Mode)
	assert.Equal(t, 1, res.Passed)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"b: heading text is empty"}, res.Failures)
	assert.Equal(t, "abc1234 (main)", res.Revision)
	assert.NotEmpty(t, res.Duration)

	sum.Results = sum.Results[:1]
	assert.Equal(t, notify.StatusSuccess, checksResult(sum).Status)
}

func TestDisableCtrlCEcho_NotATerminal(t *testing.T) {
	// go test does not attach stdin to a tty, so the restore func is a no-op
	restore := disableCtrlCEcho()
	require.NotNil(t, restore)
	assert.NotPanics(t, restore)
}
