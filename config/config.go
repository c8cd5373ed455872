// Package config loads the vibechat client settings from
// <profileDir>/config.toml, a .env file and VIBECHAT_* environment variables.
//
// Precedence, lowest to highest: built-in defaults, config file, environment.
// Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const filename = "config.toml"

// Environment variable names.
const (
	EnvURL      = "VIBECHAT_URL"
	EnvTheme    = "VIBECHAT_THEME"
	EnvLogLevel = "VIBECHAT_LOG_LEVEL"
	EnvLogFile  = "VIBECHAT_LOG_FILE"
)

// ThemeAuto picks dark or light from the terminal background.
const ThemeAuto = "auto"

var knownThemes = map[string]bool{"auto": true, "dark": true, "light": true, "catppuccin": true}

// Config holds the client settings.
type Config struct {
	BackendURL     string   `toml:"backend_url"`
	Theme          string   `toml:"theme"`
	RequestTimeout Duration `toml:"request_timeout"`
	LogLevel       string   `toml:"log_level"`
	LogFile        string   `toml:"log_file,omitempty"`
}

// Duration is a time.Duration that round-trips through TOML as a string
// such as "30s". Zero disables the timeout.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BackendURL: "http://127.0.0.1:5000/api",
		Theme:      ThemeAuto,
		LogLevel:   "info",
	}
}

// Path returns the config file location inside profileDir.
func Path(profileDir string) string {
	return filepath.Join(profileDir, filename)
}

// Load reads <profileDir>/config.toml, then applies .env and environment
// overrides. A missing file is not an error.
func Load(profileDir string) (Config, error) {
	cfg := Defaults()
	if _, err := toml.DecodeFile(Path(profileDir), &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("read %s: %w", Path(profileDir), err)
	}
	if err := LoadDotEnv(".env"); err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadDotEnv loads KEY=value pairs from path without overriding variables
// that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvURL)); v != "" {
		c.BackendURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		c.LogFile = v
	}
}

// Validate checks field values.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.BackendURL) == "" {
		errs = append(errs, errors.New("backend_url must not be empty"))
	}
	if !knownThemes[c.Theme] {
		errs = append(errs, fmt.Errorf("unknown theme %q", c.Theme))
	}
	if c.RequestTimeout.Duration < 0 {
		errs = append(errs, errors.New("request_timeout must not be negative"))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Save writes cfg to <profileDir>/config.toml, creating the directory if
// needed. The file is replaced atomically so watchers never see a partial write.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(profileDir, ".config-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), Path(profileDir))
}
