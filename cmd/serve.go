package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/orostudio/spareparts/internal/config"
	"github.com/orostudio/spareparts/internal/handlers"
	"github.com/orostudio/spareparts/internal/ordering"
	"github.com/orostudio/spareparts/internal/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the ordering interface",
		Long: `Starts the spare parts ordering web interface on the specified port.

Every browser session gets its own order cart. Carts live in memory only,
are dropped after SESSION_IDLE_TIMEOUT without use and are lost when the
server stops.`,
		Example: `  # Start server on default port 8888
  spareparts serve

  # Start server on custom port with a catalog file
  spareparts serve --port 3000 --catalog catalog.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port == "" {
				port = cfg.Port
			}

			c, err := loadCatalog(cmd, cfg)
			if err != nil {
				return err
			}

			orders := ordering.NewService(c,
				ordering.WithPDFOptions(cfg.PDFOptions()),
				ordering.WithDefaultFilename(cfg.PDFFilename),
			)
			sessions := storage.New()
			handler := handlers.New(orders, sessions)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, ctx := errgroup.WithContext(cmd.Context())

			g.Go(func() error {
				slog.Info("Spare parts interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})

			g.Go(func() error {
				return sessions.Sweep(ctx, cfg.SessionIdleTimeout, cfg.SessionSweepInterval)
			})

			// Wait for context cancellation (Ctrl+C) or server error
			g.Go(func() error {
				<-ctx.Done()
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default $PORT or 8888)")

	return cmd
}
