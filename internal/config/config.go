package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// FileName is the project-local config file name
const FileName = ".popstack.json"

// Config represents the full popstack configuration
type Config struct {
	Popup PopupConfig `json:"popup"`
	Theme ThemeConfig `json:"theme"`
	Log   LogConfig   `json:"log"`
	Mouse bool        `json:"mouse"`
}

// PopupConfig contains the popup manager settings
type PopupConfig struct {
	BaseStackOrder int      `json:"baseStackOrder"`
	TransitionMs   int      `json:"transitionMs"`
	Fade           bool     `json:"fade"`
	DismissKeys    []string `json:"dismissKeys"`
}

// ThemeConfig maps backdrop class tokens to hex colors
type ThemeConfig struct {
	DimColors map[string]string `json:"dimColors"`
}

// LogConfig contains logging settings
type LogConfig struct {
	File  string `json:"file"`
	Level string `json:"level"`
}

// Transition returns the configured transition as a duration
func (p PopupConfig) Transition() time.Duration {
	return time.Duration(p.TransitionMs) * time.Millisecond
}

// SlogLevel parses the configured level name
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Popup: PopupConfig{
			BaseStackOrder: 2000,
			TransitionMs:   200,
			Fade:           true,
			DismissKeys:    []string{"esc"},
		},
		Theme: ThemeConfig{
			DimColors: map[string]string{},
		},
		Log: LogConfig{
			File:  defaultLogFile(),
			Level: "info",
		},
		Mouse: true,
	}
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "popstack", "popstack.log")
}

// UserConfigPath returns the per-user config file location
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, "popstack", "config.json"), nil
}

// LoadConfig loads configuration with priority:
// 1. .popstack.json in projectPath
// 2. the per-user config file
// 3. Defaults
func LoadConfig(projectPath string) (*Config, error) {
	candidates := []string{filepath.Join(projectPath, FileName)}
	if userPath, err := UserConfigPath(); err == nil {
		candidates = append(candidates, userPath)
	}

	for _, path := range candidates {
		cfg, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return cfg, err
	}

	return DefaultConfig(), nil
}

// LoadFile loads a single config file. A missing file yields an error
// wrapping os.ErrNotExist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := ParseVersionedConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	cfg = MergeWithDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Popup.BaseStackOrder <= 0 {
		cfg.Popup.BaseStackOrder = defaults.Popup.BaseStackOrder
	}
	if cfg.Popup.TransitionMs <= 0 {
		cfg.Popup.TransitionMs = defaults.Popup.TransitionMs
	}
	if len(cfg.Popup.DismissKeys) == 0 {
		cfg.Popup.DismissKeys = defaults.Popup.DismissKeys
	}

	if cfg.Theme.DimColors == nil {
		cfg.Theme.DimColors = defaults.Theme.DimColors
	}

	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return cfg
}

// Validate reports settings that cannot be applied
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	for _, k := range c.Popup.DismissKeys {
		if k == "" {
			errs = append(errs, errors.New("empty dismiss key"))
		}
	}
	for token := range c.Theme.DimColors {
		if token == "" {
			errs = append(errs, errors.New("empty dim class token"))
		}
	}
	return errors.Join(errs...)
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
