package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dwsmith1983/startmaja/internal/commands"
	"github.com/dwsmith1983/startmaja/internal/telemetry"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, "startmaja", version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			fmt.Fprintln(os.Stderr, "telemetry shutdown:", err)
		}
	}()

	root := &cobra.Command{
		Use:   "startmaja",
		Short: "Schedule L1 to L2 atmospheric correction workplans",
		Long: `Startmaja catalogs the Level-1 and Level-2 products of a tile and decides,
date by date, whether each pending Level-1 product is processed in INIT,
BACKWARD or NOMINAL mode. The resulting workplans are printed for review.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP(commands.FlagVerbose, "v", false, "enable debug logging")
	root.PersistentFlags().String(commands.FlagLogFormat, "text", "log format: text or json")

	root.AddCommand(
		commands.NewPlanCmd(),
		commands.NewProductsCmd(),
		commands.NewClassifyCmd(),
		commands.NewVersionCmd(version),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
