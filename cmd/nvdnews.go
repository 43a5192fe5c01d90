package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ryan-rushton/toolhub/internal/messages"
	"github.com/ryan-rushton/toolhub/internal/nvdnews"
	"github.com/ryan-rushton/toolhub/internal/registry"
)

func init() {
	var resultsOnly bool

	c := &cobra.Command{
		Use:     "nvd-news",
		Aliases: []string{"nn"},
		Short:   "Browse recent vulnerabilities",
		Long:    "Interactive TUI listing recent NVD and GitHub advisories, filtered by severity and source",
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

			m := nvdnews.New(nvdnews.NewClient(cfg.VulnAPIURL), registry.Options{
				ResultsOnly: resultsOnly,
				Theme:       string(cfg.Theme),
			})
			p := tea.NewProgram(messages.Standalone(m), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	c.Flags().BoolVar(&resultsOnly, "results-only", false, "hide the filter bar")
	rootCmd.AddCommand(c)
}
