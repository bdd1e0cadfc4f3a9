package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/orostudio/spareparts/internal/cart"
	"github.com/orostudio/spareparts/internal/config"
	"github.com/orostudio/spareparts/internal/ordering"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var orderPath string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an order file as a PDF",
		Long: `Reads an order file (YAML or JSON), merges its lines into a cart the same
way the web interface does and writes the order PDF.

Order file format:

  filename: spare_parts_order.pdf   # optional
  lines:
    - machine: Drone 20-20
      code: VTR01VT005
      quantity: 2`,
		Example: `  # Export an order using the built-in catalog
  spareparts export --order order.yaml

  # Export to a specific file
  spareparts export --order order.yaml --output weekly_order`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			c, err := loadCatalog(cmd, cfg)
			if err != nil {
				return err
			}

			orders := ordering.NewService(c,
				ordering.WithPDFOptions(cfg.PDFOptions()),
				ordering.WithDefaultFilename(cfg.PDFFilename),
			)

			order, err := ordering.LoadOrderFile(orderPath)
			if err != nil {
				return err
			}

			basket := cart.New()
			if _, err := orders.ApplyOrder(basket, order); err != nil {
				return err
			}

			filename := output
			if filename == "" {
				filename = order.Filename
			}

			doc, err := orders.Export(basket.Lines(), filename)
			if errors.Is(err, ordering.ErrEmptyCart) {
				color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "No items selected!")
				return err
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(doc.Filename, doc.Data, 0644); err != nil {
				return fmt.Errorf("failed to write PDF: %w", err)
			}

			lines, qty := basket.Totals()
			absPath, _ := filepath.Abs(doc.Filename)
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✅ Order exported to: %s\n", absPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Total lines: %d, total qty: %d\n", lines, qty)
			return nil
		},
	}

	cmd.Flags().StringVar(&orderPath, "order", "", "Path to the order file (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PDF filename (\".pdf\" is appended if missing)")

	_ = cmd.MarkFlagRequired("order")
	return cmd
}
