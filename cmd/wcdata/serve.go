package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wc26sim/wcdata/internal/api"
	"github.com/wc26sim/wcdata/internal/cache"
	"github.com/wc26sim/wcdata/internal/config"
)

// --------------------------------------------------------------------------
// serve command
// --------------------------------------------------------------------------

func serveCmd() *cobra.Command {
	var (
		dataPath string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a merged teams.json over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			setVerbose(verbose)
			cfg := config.Load()

			path := dataPath
			if path == "" {
				path = filepath.Join(cfg.OutputDir, config.TeamsFile)
			}

			// A document that fails any check is never served.
			store := api.NewStore(path)
			if err := store.Load(); err != nil {
				return err
			}
			logger.Info("Tournament data loaded", "path", path)

			appCache := cache.New(cfg.CacheEnabled)
			logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

			router := api.NewRouter(store, appCache, cfg)

			addr := fmt.Sprintf("%s:%d", cfg.ServeHost, cfg.ServePort)
			srv := &http.Server{
				Addr:         addr,
				Handler:      router,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			errc := make(chan error, 1)
			go func() {
				logger.Info("Starting World Cup data API", "addr", addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errc <- err
				}
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			logger.Info("Shutting down...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Shutdown error", "error", err)
			}
			logger.Info("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Path to merged teams.json")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	return cmd
}
