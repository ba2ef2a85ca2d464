package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvandessel/kdindex/internal/index"
	"github.com/nvandessel/kdindex/internal/server"
	"github.com/nvandessel/kdindex/internal/store"
	"github.com/nvandessel/kdindex/pkg/metrics"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the index over HTTP",
		Long: `Serve loads the index and exposes it over HTTP:

  POST /v1/search   nearest-neighbor query
  POST /v1/points   insert a point
  POST /v1/save     persist the current snapshot
  GET  /v1/stats    index statistics
  GET  /healthz     liveness probe
  GET  /metrics     Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
			}
			if err := cfg.EnsureDataDir(); err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			tree, err := index.LoadFile(cfg.IndexPath, cfg.Dims)
			if err != nil {
				return err
			}
			metrics.IndexedPoints.Set(float64(tree.Len()))

			catalog, err := store.NewSQLitePointStore(cfg.CatalogPath)
			if err != nil {
				return err
			}
			defer catalog.Close()

			srv := server.New(server.Options{
				Tree:      tree,
				Catalog:   catalog,
				IndexPath: cfg.IndexPath,
				Addr:      cfg.Server.Addr,
				Log:       logger,
			})

			// Shut down cleanly on SIGINT/SIGTERM, saving a final
			// snapshot so restarts pick up ad-hoc insertions.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Run() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown", "error", err)
			}
			if err := index.SaveFile(shutdownCtx, tree, cfg.IndexPath); err != nil {
				logger.Error("saving index on shutdown", "error", err)
			}
			if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides the config file)")
	return cmd
}
