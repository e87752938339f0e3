package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/riordanpawley/popstack/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popstack.json")

	out, err := run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Popup.BaseStackOrder)

	_, err = run(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popstack.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 2, "popup": {"transitionMs": 75}}`), 0o644))

	out, err := run(t, "config", "show", "--config", path, "--log-level", "debug")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 75, cfg.Popup.TransitionMs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Popup.Fade)
}

func TestConfigShowYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popstack.json")
	require.NoError(t, config.SaveConfig(config.DefaultConfig(), path))

	out, err := run(t, "config", "show", "--config", path, "-o", "yaml")
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &tree))
	popup, ok := tree["popup"].(map[string]any)
	require.True(t, ok, "popup section missing from %q", out)
	assert.Equal(t, 2000, popup["baseStackOrder"])

	_, err = run(t, "config", "show", "--config", path, "--format", "toml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestConfigShowRejectsBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popstack.json")
	require.NoError(t, config.SaveConfig(config.DefaultConfig(), path))

	_, err := run(t, "config", "show", "--config", path, "--log-level", "chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popstack.json")
	require.NoError(t, config.SaveConfig(config.DefaultConfig(), path))

	cfg, resolved, err := loadConfig(&rootFlags{
		configPath: path,
		logFile:    "/tmp/x.log",
		noFade:     true,
		noMouse:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, path, resolved)
	assert.Equal(t, "/tmp/x.log", cfg.Log.File)
	assert.False(t, cfg.Popup.Fade)
	assert.False(t, cfg.Mouse)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, _, err := loadConfig(&rootFlags{configPath: filepath.Join(t.TempDir(), "missing.json")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRootRequiresTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popstack.json")
	require.NoError(t, config.SaveConfig(config.DefaultConfig(), path))

	_, err := run(t, "--config", path)
	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "popstack.log")

	logger, closer, err := newFileLogger(path, slog.LevelInfo)
	require.NoError(t, err)
	logger.Info("hello", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"session":"`)
}
