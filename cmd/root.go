package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ryan-rushton/toolhub/internal/app"
	"github.com/ryan-rushton/toolhub/internal/catalog"
	"github.com/ryan-rushton/toolhub/internal/config"
	"github.com/ryan-rushton/toolhub/internal/hub"
	"github.com/ryan-rushton/toolhub/internal/nvdnews"
)

var (
	configPath    string
	catalogSource string
)

var rootCmd = &cobra.Command{
	Use:          "toolhub",
	Short:        "A terminal hub for everyday tools",
	Long:         "toolhub - a searchable dashboard of tools with a live vulnerability feed",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		closeLog, err := setupLogging(cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()

		nvdnews.Register(cfg.VulnAPIURL)

		loader := catalog.NewLoader()
		source := cfg.Catalog
		load := func() (catalog.Catalog, error) { return loader.Load(source) }

		m := app.New(load, hub.Options{
			Version:   cmd.Root().Version,
			Theme:     string(cfg.Theme),
			MinWidth:  cfg.AutoEmbed.MinWidth,
			CellWidth: cfg.AutoEmbed.CellWidth,
		})
		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to config file")
	rootCmd.PersistentFlags().StringVar(&catalogSource, "catalog", "", "catalog file or http(s) URL (defaults to the built-in catalog)")
}

// loadConfig applies --catalog over the file and environment settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if catalogSource != "" {
		cfg.Catalog = catalogSource
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogging sends log output to path, or discards it so nothing draws
// over the TUI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "toolhub")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

// SetVersion sets the version string shown by --version.
func SetVersion(v string) {
	rootCmd.Version = v
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
