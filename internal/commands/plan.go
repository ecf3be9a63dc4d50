package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dwsmith1983/startmaja/internal/alert"
	"github.com/dwsmith1983/startmaja/internal/catalog"
	"github.com/dwsmith1983/startmaja/internal/metrics"
	"github.com/dwsmith1983/startmaja/internal/report"
	"github.com/dwsmith1983/startmaja/internal/schedule"
	"github.com/dwsmith1983/startmaja/pkg/types"
)

type planFlags struct {
	*selection
	asJSON          bool
	diagnosticsFile string
}

// NewPlanCmd creates the plan command.
func NewPlanCmd() *cobra.Command {
	pf := &planFlags{selection: newSelection()}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Schedule the L2 workplans of a tile",
		Long: `Plan catalogs the L1 and L2 products of a tile, checks the auxiliary
inputs and prints one workplan per L1 product that still needs processing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}
			return runPlan(cmd.Context(), pf, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		},
	}

	pf.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&pf.opts.Start, "start", "d", pf.opts.Start, "first date to process, YYYY-MM-DD")
	f.StringVarP(&pf.opts.End, "end", "e", pf.opts.End, "last date to process, YYYY-MM-DD")
	f.IntVar(&pf.opts.NBackward, "nbackward", pf.opts.NBackward, "number of products used in backward mode")
	f.BoolVar(&pf.opts.Overwrite, "overwrite", false, "reprocess products whose L2 already exists")
	f.StringVarP(&pf.opts.GIPP, "gipp", "g", "", "GIPP directory, defaults to the folders definition")
	f.StringVarP(&pf.opts.DTM, "dtm", "m", "", "DTM directory, defaults to the folders definition")
	f.BoolVar(&pf.asJSON, "json", false, "print the plan as JSON")
	f.StringVar(&pf.diagnosticsFile, "diagnostics-file", "", "append diagnostics as JSON lines to this file")
	return cmd
}

func runPlan(ctx context.Context, pf *planFlags, stdout, stderr io.Writer, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runID := ulid.Make().String()
	logger = logger.With("run_id", runID)

	ctx, span := tracer().Start(ctx, "plan")
	var err error
	defer func() { endSpan(span, err) }()

	var diags types.Diagnostics
	cfg, inv, err := pf.inventory(logger, &diags)
	if err != nil {
		return err
	}
	opts := pf.opts
	span.SetAttributes(
		attribute.String("tile", opts.Tile),
		attribute.String("platform", string(inv.Platform)),
	)

	in := schedule.Input{L1: inv.L1, L2: inv.L2}
	if in.Window, err = schedule.NewWindow(opts.Start, opts.End); err != nil {
		return err
	}
	if in.CAMS, in.DTM, err = auxiliaries(cfg.Paths.CAMS, opts.GIPP, opts.DTM, opts.Tile, &diags); err != nil {
		return err
	}

	policy := schedule.DefaultPolicy()
	policy.NBackward = opts.NBackward
	policy.Overwrite = opts.Overwrite

	_, schedSpan := tracer().Start(ctx, "schedule")
	plan, err := schedule.Schedule(in, policy)
	endSpan(schedSpan, err)
	if err != nil {
		// Catalog warnings explain most infeasible runs.
		_ = dispatch(ctx, logger, stderr, pf.diagnosticsFile, runID, opts.Tile, diags)
		return fmt.Errorf("scheduling %s: %w", opts.Tile, err)
	}
	diags = append(diags, plan.Diagnostics...)
	plan.Diagnostics = diags

	if err = record(ctx, inv, plan); err != nil {
		return err
	}
	if err = dispatch(ctx, logger, stderr, pf.diagnosticsFile, runID, opts.Tile, diags); err != nil {
		return err
	}

	counts := plan.Counts()
	logger.Info("plan ready",
		"workplans", len(plan.Workplans),
		"init", counts[types.ModeInit],
		"backward", counts[types.ModeBackward],
		"nominal", counts[types.ModeNominal],
		"skipped", len(plan.Skipped))

	if pf.asJSON {
		err = report.WriteJSON(stdout, document(runID, opts.Tile, inv, plan))
		return err
	}
	err = report.WriteTable(stdout, plan.Workplans, !color.NoColor)
	return err
}

// auxiliaries checks the parameter files and collects the CAMS and terrain
// inputs. Missing optional directories are reported as warnings.
func auxiliaries(camsDir, gippDir, dtmDir, tile string, diags *types.Diagnostics) ([]types.AuxFile, *types.AuxFile, error) {
	if gippDir == "" {
		diags.Warnf("no GIPP directory configured")
	} else if err := catalog.CheckGIPP(gippDir); err != nil {
		return nil, nil, err
	}

	cams, err := catalog.CAMS(camsDir, diags)
	if err != nil {
		return nil, nil, err
	}

	if dtmDir == "" {
		diags.Warnf("no DTM directory configured")
		return cams, nil, nil
	}
	dtm, err := catalog.DTM(dtmDir, tile)
	if err != nil {
		return nil, nil, err
	}
	return cams, dtm, nil
}

func record(ctx context.Context, inv *catalog.Inventory, plan *schedule.Plan) error {
	rec, err := metrics.NewRecorder(otel.Meter(metrics.MeterName))
	if err != nil {
		return err
	}
	rec.RecordInventory(ctx, inv)
	rec.RecordPlan(ctx, plan)
	return nil
}

// dispatch sends diags to the console and, when path is set, to a
// diagnostics file.
func dispatch(ctx context.Context, logger *slog.Logger, w io.Writer, path, runID, tile string, diags types.Diagnostics) error {
	sinks := []alert.Sink{alert.NewConsoleSink(w)}
	if path != "" {
		fs, err := alert.NewFileSink(path, runID, tile)
		if err != nil {
			return err
		}
		sinks = append(sinks, fs)
	}
	if failed := alert.NewDispatcher(logger, sinks...).DispatchAll(ctx, diags); failed > 0 {
		logger.Warn("some diagnostics were not delivered", "failed", failed)
	}
	return nil
}

func document(runID, tile string, inv *catalog.Inventory, plan *schedule.Plan) report.Document {
	doc := report.Document{
		RunID:       runID,
		Tile:        tile,
		Platform:    inv.Platform,
		Type:        inv.Type,
		Workplans:   make([]report.Entry, 0, len(plan.Workplans)),
		Diagnostics: plan.Diagnostics,
	}
	for _, wp := range plan.Workplans {
		doc.Workplans = append(doc.Workplans, report.NewEntry(wp))
	}
	for _, p := range plan.Skipped {
		doc.Skipped = append(doc.Skipped, p.Name)
	}
	return doc
}
