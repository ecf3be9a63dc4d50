// Package commands implements the CLI subcommands for the startmaja binary.
package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dwsmith1983/startmaja/internal/catalog"
	"github.com/dwsmith1983/startmaja/internal/config"
	"github.com/dwsmith1983/startmaja/internal/metrics"
	"github.com/dwsmith1983/startmaja/pkg/types"
)

// Persistent flag names registered on the root command.
const (
	FlagVerbose   = "verbose"
	FlagLogFormat = "log-format"
)

func tracer() trace.Tracer {
	return otel.Tracer(metrics.MeterName)
}

// endSpan records err on span before ending it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// newLogger builds the run logger. format is "text" or "json".
func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	switch format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}

// loggerFor reads the persistent logging flags of cmd. Commands run without
// a root fall back to the defaults.
func loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	verbose, _ := cmd.Flags().GetBool(FlagVerbose)
	format, _ := cmd.Flags().GetString(FlagLogFormat)
	return newLogger(cmd.ErrOrStderr(), format, verbose)
}

// selection holds the flags shared by the commands that read a tile's
// product directories.
type selection struct {
	configPath string
	opts       config.Options
}

func newSelection() *selection {
	return &selection{opts: config.DefaultOptions("")}
}

func (s *selection) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&s.opts.Tile, "tile", "t", "", "tile number, e.g. 31TCH")
	f.StringVarP(&s.opts.Site, "site", "s", "", "site name grouping the products instead of the tile")
	f.StringSliceVarP(&s.opts.Inputs, "input", "i", nil, "product directories overriding L1, then L2")
	f.StringVarP(&s.configPath, "config", "f", ".", "folders definition file or the directory holding it")
	_ = cmd.MarkFlagRequired("tile")
}

// inventory validates the options, loads the folders definition and
// catalogs the products of the selected tile.
func (s *selection) inventory(logger *slog.Logger, diags *types.Diagnostics) (*types.ProjectConfig, *catalog.Inventory, error) {
	s.opts = s.opts.Normalize()
	if err := s.opts.Validate(); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	s.opts = s.opts.Resolve(cfg.Paths)

	scanner := catalog.NewScanner(s.opts.Tile, logger)
	l1Dir, l2Dir, err := catalog.Dirs(cfg.Paths.L1, cfg.Paths.L2, s.opts.Site, s.opts.Tile, s.opts.Inputs)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("product directories", "l1", l1Dir, "l2", l2Dir)

	inv, err := scanner.Inventory(l1Dir, l2Dir, diags)
	if err != nil {
		return nil, nil, err
	}
	return cfg, inv, nil
}
