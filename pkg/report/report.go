// Package report builds the markdown summary of a check run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"github.com/playkaro/uiprobe/pkg/suite"
)

// Summary is one finished run.
type Summary struct {
	Results  []suite.Result
	BaseURL  string
	Driver   string
	Revision string
	Started  time.Time
	Duration time.Duration
}

// Counts returns passed, failed and skipped totals.
func (s Summary) Counts() (passed, failed, skipped int) {
	for _, r := range s.Results {
		switch r.Status {
		case suite.StatusPass:
			passed++
		case suite.StatusFail:
			failed++
		case suite.StatusSkip:
			skipped++
		}
	}
	return passed, failed, skipped
}

// Failures returns "name: message" for every failed check.
func (s Summary) Failures() []string {
	var res []string
	for _, r := range s.Results {
		if r.Status == suite.StatusFail {
			res = append(res, r.Name+": "+r.Message)
		}
	}
	return res
}

// Markdown renders the summary as a markdown document.
func (s Summary) Markdown() string {
	var b strings.Builder
	passed, failed, skipped := s.Counts()

	b.WriteString("# uiprobe report\n\n")
	fmt.Fprintf(&b, "- **site:** %s\n", s.BaseURL)
	fmt.Fprintf(&b, "- **driver:** %s\n", s.Driver)
	if s.Revision != "" {
		fmt.Fprintf(&b, "- **revision:** %s\n", s.Revision)
	}
	if !s.Started.IsZero() {
		fmt.Fprintf(&b, "- **started:** %s\n", s.Started.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "- **duration:** %s\n", s.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "- **result:** %d passed, %d failed, %d skipped\n\n", passed, failed, skipped)

	b.WriteString("| check | status | duration | details |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, r := range s.Results {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.Name, strings.ToUpper(string(r.Status)),
			r.Duration.Round(time.Millisecond), escapeCell(r.Message))
	}

	var withArtifacts []suite.Result
	for _, r := range s.Results {
		if r.Artifacts != nil {
			withArtifacts = append(withArtifacts, r)
		}
	}
	if len(withArtifacts) > 0 {
		b.WriteString("\n## failure artifacts\n\n")
		for _, r := range withArtifacts {
			fmt.Fprintf(&b, "- `%s`\n  - `%s`\n  - `%s`\n", r.Name, r.Artifacts.PNG, r.Artifacts.HTML)
		}
	}
	return b.String()
}

// Write saves the markdown to <dir>/report-<unix>.md and returns the path.
func (s Summary) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	stamp := s.Started
	if stamp.IsZero() {
		stamp = time.Now()
	}
	path := filepath.Join(dir, fmt.Sprintf("report-%d.md", stamp.Unix()))
	if err := os.WriteFile(path, []byte(s.Markdown()), 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Elapsed returns the duration in words, e.g. "42 seconds".
func (s Summary) Elapsed() string {
	return strings.TrimSpace(humanize.RelTime(s.Started, s.Started.Add(s.Duration), "", ""))
}

// Render formats markdown for the terminal. with noColor the content is returned unchanged.
func Render(content string, noColor bool) (string, error) {
	if noColor {
		return content, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	result, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return result, nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
