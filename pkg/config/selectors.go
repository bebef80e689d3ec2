package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/playkaro/uiprobe/pkg/browser"
)

// selector group names used by page objects and diagnostics.
const (
	GroupHeading      = "heading"
	GroupLogo         = "logo"
	GroupSignIn       = "sign_in"
	GroupVideoCards   = "video_cards"
	GroupCardLinks    = "card_links"
	GroupSpinners     = "spinners"
	GroupInspectCards = "inspect_cards"
	GroupSearchInput  = "search_input"
	GroupNoResults    = "no_results"
	GroupPlayer       = "player"
	GroupBackLink     = "back_link"
)

// Selectors maps a group name to its ordered candidate list.
type Selectors map[string][]browser.Selector

// Get returns the candidates of group, nil for an unknown group.
func (s Selectors) Get(group string) []browser.Selector {
	return s[group]
}

// selectorEntry is one yaml list item, exactly one of css or xpath is set.
type selectorEntry struct {
	CSS   string `yaml:"css"`
	XPath string `yaml:"xpath"`
}

func (e selectorEntry) toSelector() (browser.Selector, error) {
	css, xp := strings.TrimSpace(e.CSS), strings.TrimSpace(e.XPath)
	switch {
	case css != "" && xp != "":
		return browser.Selector{}, errors.New("entry has both css and xpath")
	case css != "":
		return browser.CSS(css), nil
	case xp != "":
		return browser.XPath(xp), nil
	default:
		return browser.Selector{}, errors.New("entry has neither css nor xpath")
	}
}

// selectorLoader loads the selector catalog with embedded filesystem fallback.
type selectorLoader struct {
	embedFS embed.FS
}

func newSelectorLoader(embedFS embed.FS) *selectorLoader {
	return &selectorLoader{embedFS: embedFS}
}

// Load loads selectors with fallback chain: local → global → embedded.
// groups are replaced whole, a local group never appends to the embedded one.
func (sl *selectorLoader) Load(localPath, globalPath string) (Selectors, error) {
	data, err := sl.embedFS.ReadFile("defaults/selectors.yml")
	if err != nil {
		return nil, fmt.Errorf("read embedded selectors: %w", err)
	}
	result, err := parseSelectors(data)
	if err != nil {
		return nil, fmt.Errorf("parse embedded selectors: %w", err)
	}

	for _, path := range []string{globalPath, localPath} {
		override, err := sl.parseFile(path)
		if err != nil {
			return nil, err
		}
		for group, sels := range override {
			result[group] = sels
		}
	}
	return result, nil
}

// parseFile returns nil (not error) if path is empty or the file doesn't exist.
func (sl *selectorLoader) parseFile(path string) (Selectors, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is constructed internally
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read selectors %s: %w", path, err)
	}
	sels, err := parseSelectors(data)
	if err != nil {
		return nil, fmt.Errorf("parse selectors %s: %w", path, err)
	}
	return sels, nil
}

func parseSelectors(data []byte) (Selectors, error) {
	var raw map[string][]selectorEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	res := make(Selectors, len(raw))
	for group, entries := range raw {
		if len(entries) == 0 {
			return nil, fmt.Errorf("group %q has no selectors", group)
		}
		sels := make([]browser.Selector, 0, len(entries))
		for i, e := range entries {
			sel, err := e.toSelector()
			if err != nil {
				return nil, fmt.Errorf("group %q entry %d: %w", group, i, err)
			}
			sels = append(sels, sel)
		}
		res[group] = sels
	}
	return res, nil
}
