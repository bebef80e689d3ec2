package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playkaro/uiprobe/pkg/browser"
)

// --- embedded filesystem tests ---

func Test_defaultsFS(t *testing.T) {
	data, err := defaultsFS.ReadFile("defaults/config")
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url = https://playkaroproject.netlify.app/")
	assert.Contains(t, string(data), "output_dir = test_output")
	assert.Contains(t, string(data), "replay_pattern")
}

func Test_defaultsFS_AllFilesPresent(t *testing.T) {
	for _, file := range []string{"defaults/config", "defaults/selectors.yml"} {
		t.Run(file, func(t *testing.T) {
			data, err := defaultsFS.ReadFile(file)
			require.NoError(t, err, "embedded file %s should exist", file)
			assert.NotEmpty(t, data)
		})
	}
}

// --- Load tests ---

func TestLoad_WithCustomDir(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "custom-config")

	cfg, err := Load(configDir)
	require.NoError(t, err)

	assert.Equal(t, configDir, cfg.ConfigDir())
	// defaults installed in custom dir
	assert.FileExists(t, filepath.Join(configDir, "config"))
	assert.FileExists(t, filepath.Join(configDir, "selectors.yml"))

	info, err := os.Stat(configDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	info, err = os.Stat(filepath.Join(configDir, "config"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_PopulatesAllFields(t *testing.T) {
	cfg, err := loadWithLocal(filepath.Join(t.TempDir(), "global"), "")
	require.NoError(t, err)

	assert.Equal(t, "https://playkaroproject.netlify.app/", cfg.BaseURL)
	assert.Equal(t, "test_output", cfg.OutputDir)
	assert.Equal(t, browser.Playwright, cfg.Driver)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 1400, cfg.WindowWidth)
	assert.Equal(t, 900, cfg.WindowHeight)
	assert.Equal(t, 3000, cfg.ElementTimeoutMs)
	assert.Equal(t, 8000, cfg.CardsTimeoutMs)
	assert.Equal(t, 500, cfg.PollIntervalMs)
	assert.Equal(t, 1000, cfg.NavigationSettleMs)
	assert.Equal(t, "*click_first_video_card_navigates-*.html", cfg.ReplayPattern)
	assert.Equal(t, "*-[0-9]*.html", cfg.ReplayFallbackPattern)
	assert.Equal(t, 2000, cfg.SimulatedLoadMs)
	assert.Equal(t, 10000, cfg.WaitCardsTimeoutMs)
	assert.Equal(t, 250, cfg.HashSettleMs)
	assert.Equal(t, 6, cfg.SimulatedCardCount)

	assert.Equal(t, "0,255,0", cfg.Colors.Pass)
	assert.Equal(t, "255,0,0", cfg.Colors.Fail)

	assert.Empty(t, cfg.NotifyChannels)
	assert.True(t, cfg.NotifyOnError)

	require.NotEmpty(t, cfg.Selectors.Get(GroupLogo))
	assert.Equal(t, browser.XPath("//header//a[.//text()[contains(., 'PlayKaro')]]"), cfg.Selectors.Get(GroupLogo)[0])
}

func TestLoad_ExistingConfigNotOverwritten(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "global")
	require.NoError(t, os.MkdirAll(globalDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config"), []byte("base_url = http://localhost:5173\n"), 0o600))

	cfg, err := loadWithLocal(globalDir, "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173", cfg.BaseURL)

	data, err := os.ReadFile(filepath.Join(globalDir, "config"))
	require.NoError(t, err)
	assert.Equal(t, "base_url = http://localhost:5173\n", string(data))
}

func TestLoad_InvalidDriver(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "global")
	require.NoError(t, os.MkdirAll(globalDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config"), []byte("driver = lynx\n"), 0o600))

	_, err := loadWithLocal(globalDir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid driver "lynx"`)
}

func TestLoad_InvalidConfig(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "global")
	require.NoError(t, os.MkdirAll(globalDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config"), []byte("cards_timeout_ms = soon\n"), 0o600))

	_, err := loadWithLocal(globalDir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cards_timeout_ms")
}

func TestDefaultConfigDir(t *testing.T) {
	dir := DefaultConfigDir()
	assert.True(t, filepath.IsAbs(dir) || dir == filepath.Join(".config", "uiprobe"))
	assert.Equal(t, "uiprobe", filepath.Base(dir))
}

// --- local config tests ---

func TestLocalConfig_NoLocalDir(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "global")

	cfg, err := loadWithLocal(globalDir, "")
	require.NoError(t, err)

	assert.Equal(t, globalDir, cfg.ConfigDir())
	assert.Empty(t, cfg.LocalDir())
}

func TestLocalConfig_LocalOverridesGlobal(t *testing.T) {
	tmpDir := t.TempDir()
	globalDir := filepath.Join(tmpDir, "global")
	localDir := filepath.Join(tmpDir, ".uiprobe")
	require.NoError(t, os.MkdirAll(globalDir, 0o700))
	require.NoError(t, os.MkdirAll(localDir, 0o700))

	globalConfig := `
base_url = https://staging.example.com/
driver = rod
headless = true
navigation_settle_ms = 1500
color_fail = #aa0000
`
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config"), []byte(globalConfig), 0o600))

	localConfig := `
driver = chromedp
headless = false
navigation_settle_ms = 0
`
	require.NoError(t, os.WriteFile(filepath.Join(localDir, "config"), []byte(localConfig), 0o600))

	cfg, err := loadWithLocal(globalDir, localDir)
	require.NoError(t, err)

	assert.Equal(t, localDir, cfg.LocalDir())
	// local values override global, including explicit false and zero
	assert.Equal(t, browser.Chromedp, cfg.Driver)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 0, cfg.NavigationSettleMs)
	// global values preserved when not overridden in local
	assert.Equal(t, "https://staging.example.com/", cfg.BaseURL)
	assert.Equal(t, "170,0,0", cfg.Colors.Fail)
	// embedded defaults for the rest
	assert.Equal(t, 8000, cfg.CardsTimeoutMs)
}

func TestLocalConfig_LocalSelectorsReplaceGroup(t *testing.T) {
	tmpDir := t.TempDir()
	globalDir := filepath.Join(tmpDir, "global")
	localDir := filepath.Join(tmpDir, ".uiprobe")
	require.NoError(t, os.MkdirAll(localDir, 0o700))

	local := `
video_cards:
  - css: "[data-testid='video-card']"
`
	require.NoError(t, os.WriteFile(filepath.Join(localDir, "selectors.yml"), []byte(local), 0o600))

	cfg, err := loadWithLocal(globalDir, localDir)
	require.NoError(t, err)

	assert.Equal(t, []browser.Selector{browser.CSS("[data-testid='video-card']")}, cfg.Selectors.Get(GroupVideoCards))
	// other groups untouched
	assert.Len(t, cfg.Selectors.Get(GroupSignIn), 3)
}

// --- mapping helpers ---

func TestConfig_NotifyParams(t *testing.T) {
	cfg := &Config{Values: Values{
		NotifyChannels:      []string{"telegram", "webhook"},
		NotifyOnError:       true,
		NotifyTimeoutMs:     5000,
		NotifyTelegramToken: "bot:1",
		NotifyTelegramChat:  "42",
		NotifyWebhookURLs:   []string{"https://hook.example.com"},
		NotifyCustomScript:  "/bin/notify.sh",
	}}
	p := cfg.NotifyParams()
	assert.Equal(t, []string{"telegram", "webhook"}, p.Channels)
	assert.True(t, p.OnError)
	assert.False(t, p.OnComplete)
	assert.Equal(t, 5000, p.TimeoutMs)
	assert.Equal(t, "bot:1", p.TelegramToken)
	assert.Equal(t, "42", p.TelegramChat)
	assert.Equal(t, []string{"https://hook.example.com"}, p.WebhookURLs)
	assert.Equal(t, "/bin/notify.sh", p.CustomScript)
}

func TestConfig_BrowserOptions(t *testing.T) {
	cfg := &Config{Values: Values{
		Headless: true, WindowWidth: 1280, WindowHeight: 720, ChromeBin: "/usr/bin/chromium",
		SeleniumURL: "http://grid:4444/wd/hub", ChromeDriverPath: "cd", ChromeDriverPort: 9515, Stealth: true,
	}}
	assert.Equal(t, browser.Options{
		Headless: true, Width: 1280, Height: 720, ChromeBin: "/usr/bin/chromium",
		SeleniumURL: "http://grid:4444/wd/hub", ChromeDriverPath: "cd", ChromeDriverPort: 9515, Stealth: true,
	}, cfg.BrowserOptions())
}

func TestMs(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, Ms(250))
	assert.Equal(t, time.Duration(0), Ms(0))
}
