// Package alert delivers run diagnostics to the operator through one or
// more sinks.
package alert

import (
	"context"
	"log/slog"

	"github.com/dwsmith1983/startmaja/pkg/types"
)

// Sink is a diagnostics destination.
type Sink interface {
	Send(ctx context.Context, d types.Diagnostic) error
	Name() string
}

// Dispatcher routes diagnostics to configured sinks.
type Dispatcher struct {
	sinks  []Sink
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher over sinks. Sink failures are logged.
func NewDispatcher(logger *slog.Logger, sinks ...Sink) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sinks: sinks, logger: logger}
}

// Dispatch sends one diagnostic to all sinks. A failing sink does not stop
// delivery to the others. It returns the number of failed deliveries.
func (d *Dispatcher) Dispatch(ctx context.Context, diag types.Diagnostic) int {
	failed := 0
	for _, sink := range d.sinks {
		if err := sink.Send(ctx, diag); err != nil {
			failed++
			d.logger.Error("diagnostic delivery failed", "sink", sink.Name(), "error", err)
		}
	}
	return failed
}

// DispatchAll sends every diagnostic in emission order.
func (d *Dispatcher) DispatchAll(ctx context.Context, diags types.Diagnostics) int {
	failed := 0
	for _, diag := range diags {
		failed += d.Dispatch(ctx, diag)
	}
	return failed
}
