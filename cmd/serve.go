package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ryan-rushton/toolhub/internal/catalog"
	"github.com/ryan-rushton/toolhub/internal/feed"
	"github.com/ryan-rushton/toolhub/internal/server"
)

func init() {
	var port int

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and vulnerability API",
		Long:  "Runs the HTTP service the NVD News tool reads from, plus browser pages under /NVD_News/",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			hubCatalog, err := catalog.NewLoader().Load(cfg.Catalog)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			agg := feed.NewAggregator(
				feed.NewNVD(
					feed.WithNVDBaseURL(cfg.NVD.BaseURL),
					feed.WithNVDAPIKey(cfg.NVD.APIKey),
					feed.WithNVDDays(cfg.NVD.Days),
					feed.WithNVDResultsPerPage(cfg.NVD.ResultsPerPage),
				),
				feed.NewGHSAFromToken(ctx, cfg.GitHub.Token),
			)

			srv := server.New(server.Config{
				Port:     cfg.Server.Port,
				AllowAll: cfg.Server.AllowAllOrigins,
			}, hubCatalog, agg)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Print("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	c.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	rootCmd.AddCommand(c)
}
