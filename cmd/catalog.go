package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/orostudio/spareparts/internal/catalog"
	"github.com/orostudio/spareparts/internal/config"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and convert the parts catalog",
	}

	cmd.AddCommand(newCatalogListCmd())
	cmd.AddCommand(newCatalogConvertCmd())

	return cmd
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [machine]",
		Short: "List machines and their parts",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # List the built-in catalog
  spareparts catalog list

  # List one machine from a catalog file
  spareparts catalog list "MM 30-50" --catalog catalog.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd, config.Load())
			if err != nil {
				return err
			}

			machines := c.Machines()
			if len(args) == 1 {
				if !c.HasMachine(args[0]) {
					return fmt.Errorf("unknown machine: %s", args[0])
				}
				machines = args[0:1]
			}

			heading := color.New(color.Bold, color.FgRed)
			code := color.New(color.Bold)
			out := cmd.OutOrStdout()

			for _, m := range machines {
				heading.Fprintln(out, m)
				parts, _ := c.Parts(m)
				for _, p := range parts {
					fmt.Fprintf(out, "  %s  %s\n", code.Sprint(p.Code), p.Description)
				}
			}
			return nil
		},
	}
}

func newCatalogConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <output>",
		Short: "Write the catalog to a file",
		Long: `Writes the current catalog (built-in or --catalog) to the given file. The
format follows the output extension: .yaml/.yml, .jsonl or .parquet.`,
		Args: cobra.ExactArgs(1),
		Example: `  # Dump the built-in catalog to YAML for editing
  spareparts catalog convert catalog.yaml

  # Convert a YAML catalog to Parquet
  spareparts catalog convert catalog.parquet --catalog catalog.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd, config.Load())
			if err != nil {
				return err
			}

			if err := catalog.Save(args[0], c); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✅ Catalog written to: %s (%d machines, %d parts)\n", args[0], len(c.Machines()), c.PartCount())
			return nil
		},
	}
}
