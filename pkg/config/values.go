package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Values holds scalar configuration values.
// Fields ending in *Set (e.g., HeadlessSet) track whether that field was explicitly
// set in config. This allows distinguishing explicit false/0 from "not set", enabling
// proper merge behavior where local config can override global config with zero values.
type Values struct {
	BaseURL   string
	OutputDir string

	// browser settings
	Driver                string
	Headless              bool
	HeadlessSet           bool
	WindowWidth           int
	WindowHeight          int
	ChromeBin             string
	SeleniumURL           string
	ChromeDriverPath      string
	ChromeDriverPort      int
	Stealth               bool
	StealthSet            bool
	ElementTimeoutMs      int
	CardsTimeoutMs        int
	PollIntervalMs        int
	NavigationSettleMs    int
	NavigationSettleMsSet bool

	// replay diagnostic settings
	ReplayPattern         string
	ReplayFallbackPattern string
	ReplaySettleMs        int
	ReplaySettleMsSet     bool
	SimulatedLoadMs       int
	SimulatedLoadMsSet    bool
	WaitCardsTimeoutMs    int
	HashSettleMs          int
	HashSettleMsSet       bool
	SimulatedCardCount    int

	// notification settings
	NotifyChannels        []string
	NotifyChannelsSet     bool // tracks if notify_channels was explicitly set, even when empty
	NotifyOnError         bool
	NotifyOnErrorSet      bool
	NotifyOnComplete      bool
	NotifyOnCompleteSet   bool
	NotifyTimeoutMs       int
	NotifyTimeoutMsSet    bool
	NotifyTelegramToken   string
	NotifyTelegramChat    string
	NotifySlackToken      string
	NotifySlackChannel    string
	NotifySMTPHost        string
	NotifySMTPPort        int
	NotifySMTPPortSet     bool
	NotifySMTPUsername    string
	NotifySMTPPassword    string
	NotifySMTPStartTLS    bool
	NotifySMTPStartTLSSet bool
	NotifyEmailFrom       string
	NotifyEmailTo         []string
	NotifyEmailToSet      bool
	NotifyWebhookURLs     []string
	NotifyWebhookURLsSet  bool
	NotifyCustomScript    string
}

// valuesLoader implements ValuesLoader with embedded filesystem fallback.
type valuesLoader struct {
	embedFS embed.FS
}

// newValuesLoader creates a new valuesLoader with the given embedded filesystem.
func newValuesLoader(embedFS embed.FS) *valuesLoader {
	return &valuesLoader{embedFS: embedFS}
}

// Load loads values from config files with fallback chain: local → global → embedded.
// localConfigPath and globalConfigPath are full paths to config files (not directories).
//
//nolint:dupl // intentional structural similarity with colorLoader.Load
func (vl *valuesLoader) Load(localConfigPath, globalConfigPath string) (Values, error) {
	embedded, err := vl.parseValuesFromEmbedded()
	if err != nil {
		return Values{}, fmt.Errorf("parse embedded defaults: %w", err)
	}

	global, err := vl.parseValuesFromFile(globalConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse global config: %w", err)
	}

	local, err := vl.parseValuesFromFile(localConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse local config: %w", err)
	}

	// merge: embedded → global → local (local wins)
	result := embedded
	result.mergeFrom(&global)
	result.mergeFrom(&local)

	return result, nil
}

// parseValuesFromFile reads a config file and parses it into Values.
// returns empty Values (not error) if file doesn't exist or contains only comments/whitespace.
// this enables fallback to embedded defaults for files that are commented templates.
func (vl *valuesLoader) parseValuesFromFile(path string) (Values, error) {
	if path == "" {
		return Values{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is constructed internally
	if err != nil {
		if os.IsNotExist(err) {
			return Values{}, nil
		}
		return Values{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if strings.TrimSpace(stripComments(string(data))) == "" {
		return Values{}, nil
	}

	return vl.parseValuesFromBytes(data)
}

// parseValuesFromEmbedded parses values from the embedded defaults/config file.
func (vl *valuesLoader) parseValuesFromEmbedded() (Values, error) {
	data, err := vl.embedFS.ReadFile("defaults/config")
	if err != nil {
		return Values{}, fmt.Errorf("read embedded defaults: %w", err)
	}
	return vl.parseValuesFromBytes(data)
}

// parseValuesFromBytes parses configuration from a byte slice into Values.
func (vl *valuesLoader) parseValuesFromBytes(data []byte) (Values, error) {
	// ignoreInlineComment: true prevents # from being treated as inline comment marker
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return Values{}, fmt.Errorf("parse config: %w", err)
	}

	var values Values
	section := cfg.Section("") // default section (no section header)

	stringKeys := []struct {
		key   string
		field *string
	}{
		{"base_url", &values.BaseURL},
		{"output_dir", &values.OutputDir},
		{"driver", &values.Driver},
		{"chrome_bin", &values.ChromeBin},
		{"selenium_url", &values.SeleniumURL},
		{"chromedriver_path", &values.ChromeDriverPath},
		{"replay_pattern", &values.ReplayPattern},
		{"replay_fallback_pattern", &values.ReplayFallbackPattern},
		{"notify_telegram_token", &values.NotifyTelegramToken},
		{"notify_telegram_chat", &values.NotifyTelegramChat},
		{"notify_slack_token", &values.NotifySlackToken},
		{"notify_slack_channel", &values.NotifySlackChannel},
		{"notify_smtp_host", &values.NotifySMTPHost},
		{"notify_smtp_username", &values.NotifySMTPUsername},
		{"notify_smtp_password", &values.NotifySMTPPassword},
		{"notify_email_from", &values.NotifyEmailFrom},
		{"notify_custom_script", &values.NotifyCustomScript},
	}
	for _, sk := range stringKeys {
		if key, err := section.GetKey(sk.key); err == nil {
			*sk.field = strings.TrimSpace(key.String())
		}
	}
	values.OutputDir = expandTilde(values.OutputDir)
	values.ChromeBin = expandTilde(values.ChromeBin)
	values.NotifyCustomScript = expandTilde(values.NotifyCustomScript)

	// non-negative integers. set may be nil for keys where zero means "use default"
	intKeys := []struct {
		key   string
		field *int
		set   *bool
	}{
		{"window_width", &values.WindowWidth, nil},
		{"window_height", &values.WindowHeight, nil},
		{"chromedriver_port", &values.ChromeDriverPort, nil},
		{"element_timeout_ms", &values.ElementTimeoutMs, nil},
		{"cards_timeout_ms", &values.CardsTimeoutMs, nil},
		{"poll_interval_ms", &values.PollIntervalMs, nil},
		{"navigation_settle_ms", &values.NavigationSettleMs, &values.NavigationSettleMsSet},
		{"replay_settle_ms", &values.ReplaySettleMs, &values.ReplaySettleMsSet},
		{"simulated_load_ms", &values.SimulatedLoadMs, &values.SimulatedLoadMsSet},
		{"wait_cards_timeout_ms", &values.WaitCardsTimeoutMs, nil},
		{"hash_settle_ms", &values.HashSettleMs, &values.HashSettleMsSet},
		{"simulated_card_count", &values.SimulatedCardCount, nil},
		{"notify_timeout_ms", &values.NotifyTimeoutMs, &values.NotifyTimeoutMsSet},
		{"notify_smtp_port", &values.NotifySMTPPort, &values.NotifySMTPPortSet},
	}
	for _, ik := range intKeys {
		key, err := section.GetKey(ik.key)
		if err != nil {
			continue
		}
		val, intErr := key.Int()
		if intErr != nil {
			return Values{}, fmt.Errorf("invalid %s: %w", ik.key, intErr)
		}
		if val < 0 {
			return Values{}, fmt.Errorf("invalid %s: must be non-negative, got %d", ik.key, val)
		}
		*ik.field = val
		if ik.set != nil {
			*ik.set = true
		}
	}

	boolKeys := []struct {
		key   string
		field *bool
		set   *bool
	}{
		{"headless", &values.Headless, &values.HeadlessSet},
		{"stealth", &values.Stealth, &values.StealthSet},
		{"notify_on_error", &values.NotifyOnError, &values.NotifyOnErrorSet},
		{"notify_on_complete", &values.NotifyOnComplete, &values.NotifyOnCompleteSet},
		{"notify_smtp_starttls", &values.NotifySMTPStartTLS, &values.NotifySMTPStartTLSSet},
	}
	for _, bk := range boolKeys {
		key, err := section.GetKey(bk.key)
		if err != nil {
			continue
		}
		val, boolErr := key.Bool()
		if boolErr != nil {
			return Values{}, fmt.Errorf("invalid %s: %w", bk.key, boolErr)
		}
		*bk.field = val
		*bk.set = true
	}

	// comma-separated lists, an empty value still counts as set
	if key, err := section.GetKey("notify_channels"); err == nil {
		values.NotifyChannels = splitList(key.String())
		values.NotifyChannelsSet = true
	}
	if key, err := section.GetKey("notify_email_to"); err == nil {
		values.NotifyEmailTo = splitList(key.String())
		values.NotifyEmailToSet = true
	}
	if key, err := section.GetKey("notify_webhook_urls"); err == nil {
		values.NotifyWebhookURLs = splitList(key.String())
		values.NotifyWebhookURLsSet = true
	}

	if values.Driver != "" {
		values.Driver = strings.ToLower(values.Driver)
	}

	return values, nil
}

// mergeFrom merges non-empty values from src into dst.
//
//nolint:gocyclo // flat list of per-field merges
func (dst *Values) mergeFrom(src *Values) {
	mergeString := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	mergeInt := func(d *int, s int) {
		if s > 0 {
			*d = s
		}
	}

	mergeString(&dst.BaseURL, src.BaseURL)
	mergeString(&dst.OutputDir, src.OutputDir)
	mergeString(&dst.Driver, src.Driver)
	mergeString(&dst.ChromeBin, src.ChromeBin)
	mergeString(&dst.SeleniumURL, src.SeleniumURL)
	mergeString(&dst.ChromeDriverPath, src.ChromeDriverPath)
	mergeString(&dst.ReplayPattern, src.ReplayPattern)
	mergeString(&dst.ReplayFallbackPattern, src.ReplayFallbackPattern)
	mergeString(&dst.NotifyTelegramToken, src.NotifyTelegramToken)
	mergeString(&dst.NotifyTelegramChat, src.NotifyTelegramChat)
	mergeString(&dst.NotifySlackToken, src.NotifySlackToken)
	mergeString(&dst.NotifySlackChannel, src.NotifySlackChannel)
	mergeString(&dst.NotifySMTPHost, src.NotifySMTPHost)
	mergeString(&dst.NotifySMTPUsername, src.NotifySMTPUsername)
	mergeString(&dst.NotifySMTPPassword, src.NotifySMTPPassword)
	mergeString(&dst.NotifyEmailFrom, src.NotifyEmailFrom)
	mergeString(&dst.NotifyCustomScript, src.NotifyCustomScript)

	mergeInt(&dst.WindowWidth, src.WindowWidth)
	mergeInt(&dst.WindowHeight, src.WindowHeight)
	mergeInt(&dst.ChromeDriverPort, src.ChromeDriverPort)
	mergeInt(&dst.ElementTimeoutMs, src.ElementTimeoutMs)
	mergeInt(&dst.CardsTimeoutMs, src.CardsTimeoutMs)
	mergeInt(&dst.PollIntervalMs, src.PollIntervalMs)
	mergeInt(&dst.WaitCardsTimeoutMs, src.WaitCardsTimeoutMs)
	mergeInt(&dst.SimulatedCardCount, src.SimulatedCardCount)

	if src.HeadlessSet {
		dst.Headless = src.Headless
		dst.HeadlessSet = true
	}
	if src.StealthSet {
		dst.Stealth = src.Stealth
		dst.StealthSet = true
	}
	if src.NavigationSettleMsSet {
		dst.NavigationSettleMs = src.NavigationSettleMs
		dst.NavigationSettleMsSet = true
	}
	if src.ReplaySettleMsSet {
		dst.ReplaySettleMs = src.ReplaySettleMs
		dst.ReplaySettleMsSet = true
	}
	if src.SimulatedLoadMsSet {
		dst.SimulatedLoadMs = src.SimulatedLoadMs
		dst.SimulatedLoadMsSet = true
	}
	if src.HashSettleMsSet {
		dst.HashSettleMs = src.HashSettleMs
		dst.HashSettleMsSet = true
	}

	if src.NotifyChannelsSet {
		dst.NotifyChannels = src.NotifyChannels
		dst.NotifyChannelsSet = true
	}
	if src.NotifyOnErrorSet {
		dst.NotifyOnError = src.NotifyOnError
		dst.NotifyOnErrorSet = true
	}
	if src.NotifyOnCompleteSet {
		dst.NotifyOnComplete = src.NotifyOnComplete
		dst.NotifyOnCompleteSet = true
	}
	if src.NotifyTimeoutMsSet {
		dst.NotifyTimeoutMs = src.NotifyTimeoutMs
		dst.NotifyTimeoutMsSet = true
	}
	if src.NotifySMTPPortSet {
		dst.NotifySMTPPort = src.NotifySMTPPort
		dst.NotifySMTPPortSet = true
	}
	if src.NotifySMTPStartTLSSet {
		dst.NotifySMTPStartTLS = src.NotifySMTPStartTLS
		dst.NotifySMTPStartTLSSet = true
	}
	if src.NotifyEmailToSet {
		dst.NotifyEmailTo = src.NotifyEmailTo
		dst.NotifyEmailToSet = true
	}
	if src.NotifyWebhookURLsSet {
		dst.NotifyWebhookURLs = src.NotifyWebhookURLs
		dst.NotifyWebhookURLsSet = true
	}
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(val string) []string {
	var res []string
	for _, p := range strings.Split(val, ",") {
		if t := strings.TrimSpace(p); t != "" {
			res = append(res, t)
		}
	}
	return res
}

// stripComments removes lines starting with # (comment lines) from content.
func stripComments(content string) string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// expandTilde expands a leading ~/ to the user's home directory.
// ~user forms are left untouched.
func expandTilde(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
