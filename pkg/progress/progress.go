// Package progress provides timestamped logging to file and stdout with color support.
package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/playkaro/uiprobe/pkg/config"
)

// Colors holds the console colors per message kind.
type Colors struct {
	pass      *color.Color
	fail      *color.Color
	skip      *color.Color
	warn      *color.Color
	err       *color.Color
	timestamp *color.Color
	info      *color.Color
}

// NewColors builds Colors from "r,g,b" config values. unset or malformed values fall back to basic colors.
func NewColors(cc config.ColorConfig) *Colors {
	return &Colors{
		pass:      parseColor(cc.Pass, color.FgGreen),
		fail:      parseColor(cc.Fail, color.FgRed),
		skip:      parseColor(cc.Skip, color.FgYellow),
		warn:      parseColor(cc.Warn, color.FgYellow),
		err:       parseColor(cc.Error, color.FgRed),
		timestamp: parseColor(cc.Timestamp, color.FgWhite),
		info:      parseColor(cc.Info, color.FgWhite),
	}
}

// Info returns the color for informational console output.
func (c *Colors) Info() *color.Color { return c.info }

func parseColor(rgb string, fallback color.Attribute) *color.Color {
	parts := strings.Split(rgb, ",")
	if len(parts) != 3 {
		return color.New(fallback)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return color.New(fallback)
		}
		vals[i] = v
	}
	return color.RGB(vals[0], vals[1], vals[2])
}

// Logger writes timestamped output to both file and stdout.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	stdout    io.Writer
	colors    *Colors
	debug     bool
	startTime time.Time
}

// Config holds logger configuration.
type Config struct {
	Dir      string // output directory, the progress file goes here
	Mode     string // run mode: checks, replay, inspect, watch
	BaseURL  string
	Driver   string
	Revision string
	Debug    bool // echo debug messages to stdout
	NoColor  bool // disable color output (sets color.NoColor globally)
	Colors   *Colors
}

// NewLogger creates a logger writing to both a progress file and stdout.
func NewLogger(cfg Config) (*Logger, error) {
	if cfg.NoColor {
		color.NoColor = true
	}
	colors := cfg.Colors
	if colors == nil {
		colors = NewColors(config.ColorConfig{})
	}

	progressPath := filepath.Join(cfg.Dir, progressFilename(cfg.Mode))
	if dir := filepath.Dir(progressPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create progress dir: %w", err)
		}
	}

	f, err := os.Create(progressPath) //nolint:gosec // path derived from output dir and mode
	if err != nil {
		return nil, fmt.Errorf("create progress file: %w", err)
	}

	l := &Logger{
		file:      f,
		stdout:    os.Stdout,
		colors:    colors,
		debug:     cfg.Debug,
		startTime: time.Now(),
	}

	l.writeFile("# uiprobe progress log\n")
	l.writeFile("Mode: %s\n", cfg.Mode)
	l.writeFile("Base URL: %s\n", cfg.BaseURL)
	l.writeFile("Driver: %s\n", cfg.Driver)
	l.writeFile("Revision: %s\n", cfg.Revision)
	l.writeFile("Started: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	l.writeFile("%s\n\n", strings.Repeat("-", 60))

	return l, nil
}

// Path returns the progress file path.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// timestampFormat is the format for timestamps: YY-MM-DD HH:MM:SS
const timestampFormat = "06-01-02 15:04:05"

// Print writes a timestamped message to both file and stdout. multi-line messages are aligned.
func (l *Logger) Print(format string, args ...any) {
	l.printAligned(fmt.Sprintf(format, args...), "", l.colors.info)
}

// Pass reports a passed check.
func (l *Logger) Pass(format string, args ...any) {
	l.printAligned(fmt.Sprintf(format, args...), "PASS: ", l.colors.pass)
}

// Fail reports a failed check.
func (l *Logger) Fail(format string, args ...any) {
	l.printAligned(fmt.Sprintf(format, args...), "FAIL: ", l.colors.fail)
}

// Skip reports a skipped check.
func (l *Logger) Skip(format string, args ...any) {
	l.printAligned(fmt.Sprintf(format, args...), "SKIP: ", l.colors.skip)
}

// Error writes an error message.
func (l *Logger) Error(format string, args ...any) {
	l.printAligned(fmt.Sprintf(format, args...), "ERROR: ", l.colors.err)
}

// Warn writes a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.printAligned(fmt.Sprintf(format, args...), "WARN: ", l.colors.warn)
}

// Debug always goes to the progress file, and to stdout only in debug mode.
func (l *Logger) Debug(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format(timestampFormat)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeFile("[%s] DEBUG: %s\n", timestamp, msg)
	if l.debug {
		l.writeStdout("%s %s\n", l.colors.timestamp.Sprintf("[%s]", timestamp), l.colors.info.Sprintf("DEBUG: %s", msg))
	}
}

// printAligned timestamps the first line and indents continuation lines.
func (l *Logger) printAligned(text, prefix string, c *color.Color) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}

	timestamp := time.Now().Format(timestampFormat)
	tsPrefix := l.colors.timestamp.Sprintf("[%s]", timestamp)
	indent := "                    " // 20 chars to align with "[YY-MM-DD HH:MM:SS] "

	width := getTerminalWidth()
	var lines []string
	for _, line := range strings.Split(prefix+text, "\n") {
		if len(line) > width {
			lines = append(lines, strings.Split(wrapText(line, width), "\n")...)
			continue
		}
		lines = append(lines, line)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i, line := range lines {
		switch {
		case line == "":
			l.writeFile("\n")
			l.writeStdout("\n")
		case i == 0:
			l.writeFile("[%s] %s\n", timestamp, line)
			l.writeStdout("%s %s\n", tsPrefix, c.Sprint(line))
		default:
			l.writeFile("%s%s\n", indent, line)
			l.writeStdout("%s%s\n", indent, c.Sprint(line))
		}
	}
}

// getTerminalWidth returns terminal width, using COLUMNS env var or syscall.
// Defaults to 80 if detection fails. Returns content width (total - 20 for timestamp).
func getTerminalWidth() int {
	const minWidth = 40

	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return max(w-20, minWidth)
		}
	}

	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return max(w-20, minWidth)
	}

	return 80 - 20 // default 80 columns minus timestamp
}

// wrapText wraps text to specified width, breaking on word boundaries.
func wrapText(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		wordLen := len(word)
		if i == 0 {
			result.WriteString(word)
			lineLen = wordLen
			continue
		}
		if lineLen+1+wordLen <= width {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wordLen
			continue
		}
		result.WriteString("\n")
		result.WriteString(word)
		lineLen = wordLen
	}
	return result.String()
}

// Elapsed returns formatted elapsed time since start.
func (l *Logger) Elapsed() string {
	return humanize.RelTime(l.startTime, time.Now(), "", "")
}

// Close writes footer and closes the progress file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}

	l.writeFile("\n%s\n", strings.Repeat("-", 60))
	l.writeFile("Completed: %s (%s)\n", time.Now().Format("2006-01-02 15:04:05"), l.Elapsed())

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close progress file: %w", err)
	}
	return nil
}

func (l *Logger) writeFile(format string, args ...any) {
	if l.file != nil {
		fmt.Fprintf(l.file, format, args...)
	}
}

func (l *Logger) writeStdout(format string, args ...any) {
	fmt.Fprintf(l.stdout, format, args...)
}

// progressFilename returns the progress file name for a run mode.
func progressFilename(mode string) string {
	if mode == "" {
		return "progress.txt"
	}
	return fmt.Sprintf("progress-%s.txt", mode)
}
