// Package inject builds the script that simulates delayed loading of video cards
// inside a saved page, so card detection and navigation can be checked offline.
package inject

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"text/template"
)

//go:embed simulate_cards.js.tmpl
var scriptFS embed.FS

const (
	// CardSelector matches the injected cards.
	CardSelector = ".video-card"
	// LinkSelector matches the clickable link inside an injected card.
	LinkSelector = ".video-card .video-link"
	// ExpectedHash is the url fragment set by clicking the first injected card.
	ExpectedHash = "#video-1"
	// WrapperID is the id of the element holding the injected cards.
	WrapperID = "simulated-video-cards"

	DefaultDelayMs = 2000
	DefaultCount   = 6
)

// spinnerSelectors are removed from the page before cards are inserted.
var spinnerSelectors = []string{".animate-spin", ".sonner-loading-wrapper", ".loader", ".loading"}

var scriptTmpl = template.Must(template.New("simulate_cards.js.tmpl").Funcs(template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
}).ParseFS(scriptFS, "simulate_cards.js.tmpl"))

// Options controls the injected content. a zero Count means DefaultCount.
type Options struct {
	DelayMs int
	Count   int
}

// Script renders the injection script. it is an expression statement, safe to pass to
// any backend's evaluate call, and a no-op when run twice on the same page.
func Script(opts Options) (string, error) {
	if opts.DelayMs < 0 {
		return "", fmt.Errorf("invalid delay %dms", opts.DelayMs)
	}
	if opts.Count < 0 {
		return "", fmt.Errorf("invalid card count %d", opts.Count)
	}
	if opts.Count == 0 {
		opts.Count = DefaultCount
	}

	data := struct {
		DelayMs          int
		Count            int
		WrapperID        string
		SpinnerSelectors []string
	}{opts.DelayMs, opts.Count, WrapperID, spinnerSelectors}

	var buf bytes.Buffer
	if err := scriptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render injection script: %w", err)
	}
	return buf.String(), nil
}
