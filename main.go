package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aivibe/vibe-tui/app"
	"github.com/aivibe/vibe-tui/client"
	"github.com/aivibe/vibe-tui/config"
	"github.com/aivibe/vibe-tui/logging"
	"github.com/aivibe/vibe-tui/style"
)

var version = "dev"

// env is what every command needs once flags and config are resolved.
type env struct {
	profileDir string
	cfg        config.Config
	log        zerolog.Logger
	logCloser  io.Closer
	client     *client.Client
}

type rootFlags struct {
	url     string
	profile string
	theme   string
	noColor bool
	debug   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		e     env
	)
	root := &cobra.Command{
		Use:          "vibechat",
		Short:        "Terminal client for the AI Vibe Chat backend",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := setup(flags)
			if err != nil {
				return err
			}
			e = resolved
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.logCloser != nil {
				return e.logCloser.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(e, flags)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.url, "url", "", "Backend API base URL (default from config, then "+client.DefaultBaseURL+")")
	pf.StringVar(&flags.profile, "profile", "", "Named profile (~/.vibechat/profiles/<name>)")
	pf.StringVar(&flags.theme, "theme", "", "Color theme: auto, dark, light or catppuccin")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable ANSI colors")
	pf.BoolVar(&flags.debug, "debug", false, "Write debug logs to <profile>/"+logging.DefaultFile)

	root.AddCommand(
		newSettingsCmd(&e),
		newSetCmd(&e),
		newSayCmd(&e),
		newConfigCmd(&e, &flags),
	)
	return root
}

func profileDir(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	if name == "" {
		return filepath.Join(home, ".vibechat"), nil
	}
	return filepath.Join(home, ".vibechat", "profiles", name), nil
}

// setup resolves configuration with flags taking precedence over the
// environment and config file, then builds the logger and client.
func setup(flags rootFlags) (env, error) {
	dir, err := profileDir(flags.profile)
	if err != nil {
		return env{}, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return env{}, fmt.Errorf("config: %w", err)
	}
	if flags.url != "" {
		cfg.BackendURL = flags.url
	}
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	if err := cfg.Validate(); err != nil {
		return env{}, err
	}

	logPath, level := cfg.LogFile, cfg.LogLevel
	if flags.debug {
		logPath, level = filepath.Join(dir, logging.DefaultFile), "debug"
	}
	log, closer, err := logging.New(logPath, level)
	if err != nil {
		return env{}, err
	}

	if flags.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	c := client.New(cfg.BackendURL,
		client.WithTimeout(cfg.RequestTimeout.Duration),
		client.WithLogger(log),
	)
	log.Info().Str("profile_dir", dir).Str("backend_url", cfg.BackendURL).Msg("starting")
	return env{profileDir: dir, cfg: cfg, log: log, logCloser: closer, client: c}, nil
}

func runTUI(e env, flags rootFlags) error {
	auto := "light"
	if lipgloss.HasDarkBackground() {
		auto = "dark"
	}
	theme := e.cfg.Theme
	if theme == config.ThemeAuto {
		theme = auto
	}
	style.SetTheme(theme)

	opts := app.Options{Logger: &e.log, AutoTheme: auto, NoColor: flags.noColor}
	if w, err := config.Watch(e.profileDir); err != nil {
		e.log.Debug().Err(err).Msg("config watch disabled")
	} else {
		defer w.Close()
		opts.Watcher = w
	}

	p := tea.NewProgram(app.New(e.client, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("vibechat: %w", err)
	}
	return nil
}
