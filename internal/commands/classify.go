package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dwsmith1983/startmaja/internal/naming"
)

// NewClassifyCmd creates the classify command.
func NewClassifyCmd() *cobra.Command {
	var tile string

	cmd := &cobra.Command{
		Use:   "classify [name...]",
		Short: "Print the canonical identity of product names",
		Long: `Classify matches each name against the naming grammars and prints the
platform, format, level, tile and acquisition date it encodes. Paths are
reduced to their last element. Nothing is read from disk.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := naming.NewMatcher(tile)
			w := cmd.OutOrStdout()
			for _, arg := range args {
				name := filepath.Base(arg)
				match, ok, err := m.Classify(name)
				if err != nil {
					return fmt.Errorf("classifying %s: %w", name, err)
				}
				if !ok {
					_, _ = fmt.Fprintf(w, "%s  %s\n", name, color.YellowString("no match"))
					continue
				}
				_, _ = fmt.Fprintf(w, "%s  platform=%s type=%s level=%s tile=%s date=%s grammar=%s\n",
					name, match.Variant.Platform(), match.Variant.Type(), match.Level,
					match.Tile, match.Date.Format(time.RFC3339), match.Grammar)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&tile, "tile", "t", "", "only recognise names of this tile")
	return cmd
}
