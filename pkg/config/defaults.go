package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

// defaultsInstaller implements DefaultsInstaller with embedded filesystem.
type defaultsInstaller struct {
	embedFS embed.FS
}

// newDefaultsInstaller creates a new defaultsInstaller with the given embedded filesystem.
func newDefaultsInstaller(embedFS embed.FS) *defaultsInstaller {
	return &defaultsInstaller{embedFS: embedFS}
}

// Install creates the config directory and installs default files if they don't exist.
// this is called on first run to set up the configuration. existing files are never overwritten.
func (d *defaultsInstaller) Install(configDir string) error {
	// create config directory (0700 - user only)
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	files := []struct{ embedPath, name string }{
		{"defaults/config", configFileName},
		{"defaults/selectors.yml", selectorsFileName},
	}
	for _, f := range files {
		if err := d.installFile(f.embedPath, filepath.Join(configDir, f.name)); err != nil {
			return fmt.Errorf("install %s: %w", f.name, err)
		}
	}
	return nil
}

func (d *defaultsInstaller) installFile(embedPath, dest string) error {
	_, statErr := os.Stat(dest)
	if statErr == nil {
		return nil
	}
	if !os.IsNotExist(statErr) {
		return fmt.Errorf("check %s: %w", dest, statErr)
	}

	data, err := d.embedFS.ReadFile(embedPath)
	if err != nil {
		return fmt.Errorf("read embedded %s: %w", embedPath, err)
	}
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
