package cmd

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/orostudio/spareparts/internal/catalog"
	"github.com/orostudio/spareparts/internal/config"
	"github.com/orostudio/spareparts/internal/logging"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spareparts",
		Short: "Spare parts ordering with PDF order export",
		Long: `Spareparts lets you pick a machine, choose spare parts and quantities from
the parts catalog, collect them into an order and export the order as a PDF.

Run the web interface with "serve", or export an order prepared in a file
with "export".`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			cfg := config.Load()
			logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
		},
	}

	cmd.PersistentFlags().String("catalog", "", "Catalog file (.yaml, .jsonl, .parquet); defaults to $CATALOG_PATH or the built-in catalog")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newCatalogCmd())

	return cmd
}

// loadCatalog resolves the catalog from the --catalog flag, then the
// environment, then the built-in table
func loadCatalog(cmd *cobra.Command, cfg config.Config) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = cfg.CatalogPath
	}

	if path == "" {
		slog.Debug("Using built-in catalog")
		return catalog.Default(), nil
	}

	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	slog.Info("Catalog loaded", "path", path, "machines", len(c.Machines()), "parts", c.PartCount())
	return c, nil
}
