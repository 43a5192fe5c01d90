package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment overrides. A double underscore
// separates nested keys: TOOLHUB_AUTO_EMBED__MIN_WIDTH -> auto_embed.min_width.
const EnvPrefix = "TOOLHUB_"

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Config is the top-level toolhub configuration, corresponding to config.yaml.
type Config struct {
	Catalog    string          `yaml:"catalog" koanf:"catalog"`
	Theme      Theme           `yaml:"theme" koanf:"theme"`
	VulnAPIURL string          `yaml:"vuln_api_url" koanf:"vuln_api_url"`
	LogFile    string          `yaml:"log_file" koanf:"log_file"`
	AutoEmbed  AutoEmbedConfig `yaml:"auto_embed" koanf:"auto_embed"`
	Server     ServerConfig    `yaml:"server" koanf:"server"`
	NVD        NVDConfig       `yaml:"nvd" koanf:"nvd"`
	GitHub     GitHubConfig    `yaml:"github" koanf:"github"`
}

// AutoEmbedConfig controls the side widget. Widths are logical pixels; a
// terminal column counts as CellWidth pixels.
type AutoEmbedConfig struct {
	MinWidth  int `yaml:"min_width" koanf:"min_width"`
	CellWidth int `yaml:"cell_width" koanf:"cell_width"`
}

type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

type NVDConfig struct {
	BaseURL        string `yaml:"base_url" koanf:"base_url"`
	APIKey         string `yaml:"api_key" koanf:"api_key"`
	Days           int    `yaml:"days" koanf:"days"`
	ResultsPerPage int    `yaml:"results_per_page" koanf:"results_per_page"`
}

type GitHubConfig struct {
	Token string `yaml:"token" koanf:"token"`
}

var (
	ErrInvalidTheme     = errors.New("theme must be dark or light")
	ErrInvalidMinWidth  = errors.New("auto_embed.min_width must be positive")
	ErrInvalidCellWidth = errors.New("auto_embed.cell_width must be positive")
	ErrInvalidPort      = errors.New("server.port must be between 1 and 65535")
	ErrInvalidDays      = errors.New("nvd.days must be between 1 and 120")
)

// DefaultPath returns ~/.config/toolhub/config.yaml, or config.yaml in the
// working directory when the user config dir is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "toolhub", "config.yaml")
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TOOLHUB_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return ErrInvalidTheme
	}
	if c.AutoEmbed.MinWidth <= 0 {
		return ErrInvalidMinWidth
	}
	if c.AutoEmbed.CellWidth <= 0 {
		return ErrInvalidCellWidth
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	if c.NVD.Days <= 0 || c.NVD.Days > 120 {
		return ErrInvalidDays
	}
	return nil
}
