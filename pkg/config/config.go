// Package config loads uiprobe settings from ini files and the selector catalog from yaml.
// lookup order is local (./.uiprobe) → global (~/.config/uiprobe) → embedded defaults.
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/playkaro/uiprobe/pkg/browser"
	"github.com/playkaro/uiprobe/pkg/notify"
)

//go:embed defaults/config defaults/selectors.yml
var defaultsFS embed.FS

const (
	configFileName    = "config"
	selectorsFileName = "selectors.yml"
	localDirName      = ".uiprobe"
)

// DefaultsFS returns the embedded defaults filesystem.
func DefaultsFS() embed.FS {
	return defaultsFS
}

// Config is the merged configuration.
type Config struct {
	Values
	Colors    ColorConfig
	Selectors Selectors

	configDir string // global config directory in use
	localDir  string // project-local config directory, empty if missing
}

// Load reads configuration from configDir (empty means the default location),
// installing defaults there on first run. the local ./.uiprobe directory overrides it.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	localDir := ""
	if st, err := os.Stat(localDirName); err == nil && st.IsDir() {
		localDir = localDirName
	}
	return loadWithLocal(configDir, localDir)
}

// loadWithLocal installs defaults into globalDir and loads all config parts,
// with localDir (may be empty) taking precedence.
func loadWithLocal(globalDir, localDir string) (*Config, error) {
	if err := newDefaultsInstaller(defaultsFS).Install(globalDir); err != nil {
		return nil, fmt.Errorf("install defaults: %w", err)
	}

	localConfig, localSelectors := "", ""
	if localDir != "" {
		localConfig = filepath.Join(localDir, configFileName)
		localSelectors = filepath.Join(localDir, selectorsFileName)
	}
	globalConfig := filepath.Join(globalDir, configFileName)
	globalSelectors := filepath.Join(globalDir, selectorsFileName)

	values, err := newValuesLoader(defaultsFS).Load(localConfig, globalConfig)
	if err != nil {
		return nil, fmt.Errorf("load values: %w", err)
	}
	if values.Driver != "" && !slices.Contains(browser.Backends, values.Driver) {
		return nil, fmt.Errorf("invalid driver %q, expected one of %v", values.Driver, browser.Backends)
	}

	colors, err := newColorLoader(defaultsFS).Load(localConfig, globalConfig)
	if err != nil {
		return nil, fmt.Errorf("load colors: %w", err)
	}

	selectors, err := newSelectorLoader(defaultsFS).Load(localSelectors, globalSelectors)
	if err != nil {
		return nil, fmt.Errorf("load selectors: %w", err)
	}

	return &Config{
		Values:    values,
		Colors:    colors,
		Selectors: selectors,
		configDir: globalDir,
		localDir:  localDir,
	}, nil
}

// DefaultConfigDir returns ~/.config/uiprobe, or a relative .config/uiprobe if home is unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "uiprobe")
	}
	return filepath.Join(home, ".config", "uiprobe")
}

// ConfigDir returns the global config directory in use.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// LocalDir returns the project-local config directory, empty when there is none.
func (c *Config) LocalDir() string {
	return c.localDir
}

// NotifyParams maps notification values to notify.Params.
func (c *Config) NotifyParams() notify.Params {
	return notify.Params{
		Channels:      c.NotifyChannels,
		OnError:       c.NotifyOnError,
		OnComplete:    c.NotifyOnComplete,
		TimeoutMs:     c.NotifyTimeoutMs,
		TelegramToken: c.NotifyTelegramToken,
		TelegramChat:  c.NotifyTelegramChat,
		SlackToken:    c.NotifySlackToken,
		SlackChannel:  c.NotifySlackChannel,
		SMTPHost:      c.NotifySMTPHost,
		SMTPPort:      c.NotifySMTPPort,
		SMTPUsername:  c.NotifySMTPUsername,
		SMTPPassword:  c.NotifySMTPPassword,
		SMTPStartTLS:  c.NotifySMTPStartTLS,
		EmailFrom:     c.NotifyEmailFrom,
		EmailTo:       c.NotifyEmailTo,
		WebhookURLs:   c.NotifyWebhookURLs,
		CustomScript:  c.NotifyCustomScript,
	}
}

// BrowserOptions maps browser values to browser.Options.
func (c *Config) BrowserOptions() browser.Options {
	return browser.Options{
		Headless:         c.Headless,
		Width:            c.WindowWidth,
		Height:           c.WindowHeight,
		ChromeBin:        c.ChromeBin,
		SeleniumURL:      c.SeleniumURL,
		ChromeDriverPath: c.ChromeDriverPath,
		ChromeDriverPort: c.ChromeDriverPort,
		Stealth:          c.Stealth,
	}
}

// Ms converts a millisecond config value to a duration.
func Ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
