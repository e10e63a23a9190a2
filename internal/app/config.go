// Package app provides application-level configuration loading and
// hot reload.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lazyvibe/failbell/internal/settings"
	"github.com/spf13/viper"
)

// ConfigFileName is the default config file name inside the config dir.
const ConfigFileName = "config.json"

// supported config file extensions, as understood by viper.
var configExts = []string{".json", ".yaml", ".yml", ".toml"}

// ConfigDir returns the failbell configuration directory.
func ConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if available, otherwise default to ~/.config
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "failbell"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// LoadSettings reads path and builds a snapshot from it. A missing file
// yields the defaults; an unreadable or unparsable file is an error.
func LoadSettings(path string) (*settings.Snapshot, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return settings.Defaults(), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !isSupportedExt(ext) {
		return nil, fmt.Errorf("unsupported config format %q (use %s)", ext, strings.Join(configExts, ", "))
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return settings.Build(v), nil
}

// DefaultFile is the content written by SaveDefault.
type DefaultFile struct {
	Enabled               bool     `json:"enabled"`
	CustomSoundPath       string   `json:"customSoundPath"`
	ErrorPatterns         []string `json:"errorPatterns"`
	OutputScanningEnabled bool     `json:"outputScanningEnabled"`
	IgnoreExitCodes       []int    `json:"ignoreExitCodes"`
	DebounceMs            int      `json:"debounceMs"`
	DesktopNotification   bool     `json:"desktopNotification"`
	WebhookURL            string   `json:"webhookUrl"`
}

// NewDefaultFile returns the default configuration file content.
func NewDefaultFile() DefaultFile {
	return DefaultFile{
		Enabled:               true,
		ErrorPatterns:         append([]string(nil), settings.DefaultErrorPatterns...),
		OutputScanningEnabled: true,
		IgnoreExitCodes:       append([]int(nil), settings.DefaultIgnoreExitCodes...),
		DebounceMs:            settings.DefaultDebounceMs,
	}
}

// SaveDefault writes the default configuration to path. It refuses to
// overwrite an existing file unless force is set.
func SaveDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(NewDefaultFile(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func isSupportedExt(ext string) bool {
	for _, e := range configExts {
		if e == ext {
			return true
		}
	}
	return false
}
