// Package metrics records scheduling run counters through OpenTelemetry.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dwsmith1983/startmaja/internal/catalog"
	"github.com/dwsmith1983/startmaja/internal/schedule"
)

// Meter name used by the command layer.
const MeterName = "github.com/dwsmith1983/startmaja"

// Recorder holds the run counters.
type Recorder struct {
	products    metric.Int64Counter
	workplans   metric.Int64Counter
	skipped     metric.Int64Counter
	diagnostics metric.Int64Counter
}

// NewRecorder creates the counters on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	var (
		r   Recorder
		err error
	)
	if r.products, err = meter.Int64Counter("startmaja.products",
		metric.WithDescription("Products found in the catalog"),
		metric.WithUnit("{product}")); err != nil {
		return nil, fmt.Errorf("creating products counter: %w", err)
	}
	if r.workplans, err = meter.Int64Counter("startmaja.workplans",
		metric.WithDescription("Workplans scheduled"),
		metric.WithUnit("{workplan}")); err != nil {
		return nil, fmt.Errorf("creating workplans counter: %w", err)
	}
	if r.skipped, err = meter.Int64Counter("startmaja.skipped",
		metric.WithDescription("Products skipped because their L2 exists"),
		metric.WithUnit("{product}")); err != nil {
		return nil, fmt.Errorf("creating skipped counter: %w", err)
	}
	if r.diagnostics, err = meter.Int64Counter("startmaja.diagnostics",
		metric.WithDescription("Diagnostics raised during a run"),
		metric.WithUnit("{diagnostic}")); err != nil {
		return nil, fmt.Errorf("creating diagnostics counter: %w", err)
	}
	return &r, nil
}

// RecordInventory counts the products of inv per level.
func (r *Recorder) RecordInventory(ctx context.Context, inv *catalog.Inventory) {
	platform := attribute.String("platform", string(inv.Platform))
	r.products.Add(ctx, int64(len(inv.L1)), metric.WithAttributes(platform, attribute.String("level", "l1")))
	r.products.Add(ctx, int64(len(inv.L2)), metric.WithAttributes(platform, attribute.String("level", "l2")))
}

// RecordPlan counts the workplans per mode, the skipped products and the
// diagnostics per level.
func (r *Recorder) RecordPlan(ctx context.Context, plan *schedule.Plan) {
	for mode, n := range plan.Counts() {
		r.workplans.Add(ctx, int64(n), metric.WithAttributes(attribute.String("mode", string(mode))))
	}
	r.skipped.Add(ctx, int64(len(plan.Skipped)))
	for _, d := range plan.Diagnostics {
		r.diagnostics.Add(ctx, 1, metric.WithAttributes(attribute.String("level", string(d.Level))))
	}
}
