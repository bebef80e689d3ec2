// Package artifact saves failure screenshots and page sources, and finds the latest saved one.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Snapshot is the page state needed for a capture. browser.Page satisfies it.
type Snapshot interface {
	Screenshot(ctx context.Context) ([]byte, error)
	HTML(ctx context.Context) (string, error)
}

type logger interface {
	Print(format string, args ...any)
	Warn(format string, args ...any)
}

// Paths holds the files written by one capture.
type Paths struct {
	PNG  string
	HTML string
}

var nameReplacer = strings.NewReplacer("/", "_", ":", "_", `\`, "_", " ", "_")

// SafeName makes a check name usable as a file name.
func SafeName(name string) string {
	return nameReplacer.Replace(name)
}

// Capturer writes artifacts into one output directory.
type Capturer struct {
	dir string
	now func() time.Time
	log logger
}

// NewCapturer makes a Capturer writing to dir. The directory is created on first capture.
func NewCapturer(dir string, log logger) *Capturer {
	return &Capturer{dir: dir, now: time.Now, log: log}
}

// Dir returns the output directory.
func (c *Capturer) Dir() string {
	return c.dir
}

// Capture writes <safe-name>-<unix-ts>.png and .html for the page.
func (c *Capturer) Capture(ctx context.Context, snap Snapshot, name string) (Paths, error) {
	base := fmt.Sprintf("%s-%d", SafeName(name), c.now().Unix())
	return c.CaptureNamed(ctx, snap, base)
}

// CaptureNamed writes <base>.png and <base>.html. both files are attempted even if one fails.
func (c *Capturer) CaptureNamed(ctx context.Context, snap Snapshot, base string) (Paths, error) {
	if err := os.MkdirAll(c.dir, 0o750); err != nil {
		return Paths{}, fmt.Errorf("create output dir %s: %w", c.dir, err)
	}

	paths := Paths{
		PNG:  filepath.Join(c.dir, base+".png"),
		HTML: filepath.Join(c.dir, base+".html"),
	}

	var errs []error
	if png, err := snap.Screenshot(ctx); err != nil {
		errs = append(errs, fmt.Errorf("screenshot: %w", err))
	} else if err := os.WriteFile(paths.PNG, png, 0o600); err != nil {
		errs = append(errs, fmt.Errorf("write screenshot: %w", err))
	}

	if html, err := snap.HTML(ctx); err != nil {
		errs = append(errs, fmt.Errorf("page source: %w", err))
	} else if err := os.WriteFile(paths.HTML, []byte(html), 0o600); err != nil {
		errs = append(errs, fmt.Errorf("write page source: %w", err))
	}

	return paths, errors.Join(errs...)
}

// CaptureBestEffort captures and logs the result. errors are logged, never returned.
// returns false if any part of the capture failed.
func (c *Capturer) CaptureBestEffort(ctx context.Context, snap Snapshot, name string) (Paths, bool) {
	paths, err := c.Capture(ctx, snap, name)
	if err != nil {
		c.log.Warn("could not save screenshot/page source: %v", err)
		return paths, false
	}
	c.log.Print("saved failure artifacts:\n  %s\n  %s", paths.PNG, paths.HTML)
	return paths, true
}

// FindLatest returns the most recently modified file in dir matching the first pattern
// that has any match. patterns are filepath.Match globs on the base name.
func FindLatest(dir string, patterns ...string) (string, error) {
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		abs, _ := filepath.Abs(dir)
		return "", fmt.Errorf("test output directory not found at %s", abs)
	}

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return "", fmt.Errorf("bad pattern %q: %w", pattern, err)
		}

		var latest string
		var latestMod time.Time
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if latest == "" || info.ModTime().After(latestMod) {
				latest, latestMod = m, info.ModTime()
			}
		}
		if latest != "" {
			return filepath.Abs(latest)
		}
	}

	abs, _ := filepath.Abs(dir)
	return "", fmt.Errorf("no files matching %s found under %s", strings.Join(patterns, " or "), abs)
}
