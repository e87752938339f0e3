package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/riordanpawley/popstack/internal/app"
	"github.com/riordanpawley/popstack/internal/config"
)

// ErrNotTerminal is returned when the TUI is started without a terminal
var ErrNotTerminal = errors.New("popstack needs an interactive terminal")

// version is set by SetVersion
var version = "dev"

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

type rootFlags struct {
	configPath string
	logFile    string
	logLevel   string
	noFade     bool
	noMouse    bool
	noColor    bool
}

// NewRootCommand builds the popstack command tree
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "popstack",
		Short: "Stacked popups and modal backdrops in the terminal",
		Long: `popstack - a terminal workspace for stacking dialogs, drawers and popovers.

Every overlay shares a single dimming backdrop that always sits directly
beneath the topmost overlay. Escape and clicks outside dismiss only the top.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default: ./"+config.FileName+" then the user config)")
	pf.StringVar(&flags.logFile, "log-file", "", "log file path (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	cmd.Flags().BoolVar(&flags.noFade, "no-fade", false, "disable backdrop fade transitions")
	cmd.Flags().BoolVar(&flags.noMouse, "no-mouse", false, "disable mouse input")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "render without colors (also set by NO_COLOR)")

	cmd.AddCommand(newConfigCommand(flags))
	return cmd
}

// Execute runs the root command
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config file and applies flag overrides
func loadConfig(flags *rootFlags) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path = flags.configPath
		err  error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		path = config.FileName
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}

	if flags.logFile != "" {
		cfg.Log.File = flags.logFile
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.noFade {
		cfg.Popup.Fade = false
	}
	if flags.noMouse {
		cfg.Mouse = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// applyColorProfile drops to plain text when asked to, otherwise it follows
// the terminal's capabilities
func applyColorProfile(noColor bool) {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	cfg, path, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNotTerminal
	}

	level, _ := cfg.Log.SlogLevel()
	logger, closer, err := newFileLogger(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer closer.Close()

	applyColorProfile(flags.noColor)
	logger.Info("starting", "version", version, "config", path, "fade", cfg.Popup.Fade, "mouse", cfg.Mouse)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(cmd.Context())}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	model := app.New(cfg, app.WithLogger(logger), app.WithConfigPath(path))
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		logger.Error("program exited", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
