package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dwsmith1983/startmaja/internal/catalog"
	"github.com/dwsmith1983/startmaja/internal/report"
	"github.com/dwsmith1983/startmaja/pkg/types"
)

// NewProductsCmd creates the products command.
func NewProductsCmd() *cobra.Command {
	sel := newSelection()
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the L1 and L2 products found for a tile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}
			var diags types.Diagnostics
			_, inv, err := sel.inventory(logger, &diags)
			if err != nil {
				return err
			}
			if err := dispatch(cmd.Context(), logger, cmd.ErrOrStderr(), "", "", sel.opts.Tile, diags); err != nil {
				return err
			}
			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), inv)
			}
			printInventory(cmd.OutOrStdout(), inv)
			return nil
		},
	}
	sel.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the inventory as JSON")
	return cmd
}

func printInventory(w io.Writer, inv *catalog.Inventory) {
	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(w, "Platform: %s (%s)\n", inv.Platform, inv.Type)

	for _, group := range []struct {
		title    string
		products []types.Product
	}{
		{"L1 products", inv.L1},
		{"L2 products", inv.L2},
	} {
		_, _ = fmt.Fprintln(w)
		_, _ = bold.Fprintf(w, "%s (%d):\n", group.title, len(group.products))
		for _, p := range group.products {
			_, _ = fmt.Fprintf(w, "  %s  %-20s %s\n", p.Date.Format(time.DateTime), p.Variant, p.Name)
		}
	}
}
