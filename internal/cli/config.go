package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/riordanpawley/popstack/internal/config"
)

func newConfigCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the popstack configuration",
	}
	cmd.AddCommand(newConfigInitCommand(flags), newConfigShowCommand(flags))
	return cmd
}

func newConfigInitCommand(flags *rootFlags) *cobra.Command {
	var (
		force bool
		user  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.configPath
			switch {
			case user:
				p, err := config.UserConfigPath()
				if err != nil {
					return err
				}
				path = p
			case path == "":
				path = config.FileName
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}

			if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
				return err
			}

			logger := newStderrLogger(cmd.ErrOrStderr(), slogLevel(flags))
			logger.Info("config written", "path", path)
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", abs)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&user, "user", false, "write the per-user config instead of ./"+config.FileName)
	return cmd
}

func newConfigShowCommand(flags *rootFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(flags)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			case "yaml":
				return writeYAML(cmd.OutOrStdout(), cfg)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "json", "output format: json or yaml")
	return cmd
}

// writeYAML renders cfg as YAML using the JSON field names
func writeYAML(w io.Writer, cfg *config.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to convert config: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	return enc.Close()
}

// slogLevel is the --log-level flag for console output, info when unset
// or invalid
func slogLevel(flags *rootFlags) slog.Level {
	level, err := config.LogConfig{Level: flags.logLevel}.SlogLevel()
	if err != nil || flags.logLevel == "" {
		return slog.LevelInfo
	}
	return level
}
