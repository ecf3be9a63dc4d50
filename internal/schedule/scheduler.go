package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/dwsmith1983/startmaja/pkg/types"
)

// Input is the catalog snapshot a scheduling run works on. Slices need not
// be sorted and are never modified.
type Input struct {
	// L1 is the full Level-1 timeline, including products outside Window.
	L1   []types.Product
	L2   []types.Product
	CAMS []types.AuxFile
	DTM  *types.AuxFile

	Window Window
}

// Plan is the result of a scheduling run.
type Plan struct {
	Workplans []types.Workplan
	// Skipped lists the products whose Level-2 already exists.
	Skipped     []types.Product
	Diagnostics types.Diagnostics
}

// Counts returns the number of workplans per mode.
func (p *Plan) Counts() map[types.Mode]int {
	out := make(map[types.Mode]int, 3)
	for _, wp := range p.Workplans {
		out[wp.Mode()]++
	}
	return out
}

// run carries the state of one linear scan over the timeline.
type run struct {
	policy Policy
	full   []types.Product
	l2     []types.Product
	cams   []types.AuxFile
	dtm    *types.AuxFile

	claimed []bool
	prev    time.Time
	plan    *Plan
}

// Schedule walks the Level-1 products of the window in date order and emits
// one workplan per product that has not been processed yet.
//
// The first product, and every product following a gap larger than the
// applicable threshold, restarts the series: Backward when enough products
// remain in the full timeline, Init otherwise. All other products continue
// the series in Nominal mode.
func Schedule(in Input, p Policy) (*Plan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r := &run{
		policy:  p,
		full:    sortedProducts(in.L1),
		l2:      sortedProducts(in.L2),
		cams:    sortedAux(in.CAMS),
		dtm:     in.DTM,
		claimed: make([]bool, len(in.CAMS)),
		plan:    &Plan{},
	}

	lo, hi, err := r.bounds(in.Window)
	if err != nil {
		return nil, err
	}
	if lo > 0 {
		r.plan.Diagnostics.Infof("discarding %d products older than the start date %s", lo, in.Window.Start.Format(time.DateOnly))
	}

	for i := lo; i < hi; i++ {
		r.step(i)
	}

	if len(r.plan.Workplans) == 0 {
		return nil, fmt.Errorf("%w: %d products skipped between %s and %s",
			ErrNoWorkplans, len(r.plan.Skipped), r.full[lo].Date.Format(time.DateOnly), r.full[hi-1].Date.Format(time.DateOnly))
	}
	return r.plan, nil
}

// bounds returns the index range of the full timeline inside the window.
func (r *run) bounds(w Window) (int, int, error) {
	lo := 0
	if !w.Start.IsZero() {
		start := w.lower()
		lo = sort.Search(len(r.full), func(i int) bool { return !r.full[i].Date.Before(start) })
	}
	if lo == len(r.full) {
		return 0, 0, fmt.Errorf("%w: start %s", ErrNoProductsInWindow, w.Start.Format(time.DateOnly))
	}

	hi := len(r.full)
	if end := w.upper(); !end.IsZero() {
		hi = sort.Search(len(r.full), func(i int) bool { return !r.full[i].Date.Before(end) })
	}
	if hi <= lo {
		return 0, 0, fmt.Errorf("%w: first product %s, period %s to %s", ErrWindowAfterEnd,
			r.full[lo].Date.Format(time.DateOnly), w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
	}
	return lo, hi, nil
}

func (r *run) step(i int) {
	cur := r.full[i]
	tol := r.policy.ProductTolerance(cur.Platform())

	if own := r.ownL2(cur, tol); own != nil && !r.policy.Overwrite {
		r.plan.Skipped = append(r.plan.Skipped, cur)
		r.plan.Diagnostics.InfoAt(cur.Date, "skipping %s: L2 %s already exists", cur.Name, own.Name)
		return
	}

	maxDiff := r.policy.MaxL2Diff(cur.Date)
	anchor, anchorL2 := r.anchor(cur, tol, maxDiff)

	var wp types.Workplan
	switch {
	case !anchor.IsZero() && cur.Date.Sub(anchor) <= maxDiff:
		wp = r.nominal(i, anchor, anchorL2)
	default:
		if !r.prev.IsZero() {
			r.plan.Diagnostics.WarnAt(cur.Date, "time series broken: %s since the previous product exceeds %s",
				cur.Date.Sub(r.prev), maxDiff)
		} else {
			r.plan.Diagnostics.WarnAt(cur.Date, "no previous L2 product found for %s", cur.Date.Format(time.DateOnly))
		}
		wp = r.restart(i)
	}

	r.plan.Workplans = append(r.plan.Workplans, wp)
	r.prev = cur.Date
}

// ownL2 returns the Level-2 of the same acquisition, if one exists.
func (r *run) ownL2(cur types.Product, tol time.Duration) *types.Product {
	for j := range r.l2 {
		if absDuration(r.l2[j].Date.Sub(cur.Date)) <= tol {
			return &r.l2[j]
		}
	}
	return nil
}

// anchor returns the reference date of a Nominal continuation: the later of
// the previous processed product and the latest Level-2 inside the gap
// threshold. The product is returned when the anchor exists on disk.
func (r *run) anchor(cur types.Product, tol, maxDiff time.Duration) (time.Time, *types.Product) {
	var (
		best   time.Time
		bestL2 *types.Product
	)
	earliest := cur.Date.Add(-maxDiff)
	for j := range r.l2 {
		d := r.l2[j].Date
		if d.Before(earliest) || !d.Before(cur.Date) || cur.Date.Sub(d) <= tol {
			continue
		}
		if bestL2 == nil || d.After(best) {
			best, bestL2 = d, &r.l2[j]
		}
	}
	if r.prev.After(best) {
		return r.prev, nil
	}
	return best, bestL2
}

func (r *run) nominal(i int, anchor time.Time, l2 *types.Product) types.Workplan {
	cur := r.full[i]
	remaining := r.unclaimedFrom(cur.Date)
	wp := types.Nominal{
		L1:      cur,
		L2Date:  anchor,
		CAMS:    r.claim([]types.Product{cur}),
		Terrain: r.dtm,
		Fallback: types.NominalFallback{
			RemainingL1:  append([]types.Product(nil), r.full[i:]...),
			NBackward:    r.policy.NBackward,
			RemainingAux: remaining,
		},
	}
	if l2 != nil {
		copied := *l2
		wp.L2 = &copied
	}
	return wp
}

// restart decides between Backward and Init using the full timeline from
// product i onwards.
func (r *run) restart(i int) types.Workplan {
	cur := r.full[i]
	rest := r.full[i:]
	if len(rest) < r.policy.NBackward {
		r.plan.Diagnostics.WarnAt(cur.Date, "less than %d L1 products found, beginning in INIT mode", r.policy.NBackward)
		return types.Init{L1: cur, CAMS: r.claim([]types.Product{cur}), Terrain: r.dtm}
	}
	n := min(r.policy.NBackward+1, len(rest))
	window := append([]types.Product(nil), rest[:n]...)
	return types.Backward{L1: cur, Window: window, CAMS: r.claim(window), Terrain: r.dtm}
}

// claim attaches every unclaimed CAMS file that covers one of the products:
// its start day is the acquisition day, or the acquisition lies between its
// start and end. A CAMS file is attached to at most one workplan.
func (r *run) claim(products []types.Product) []types.AuxFile {
	var out []types.AuxFile
	for j, c := range r.cams {
		if r.claimed[j] {
			continue
		}
		for _, p := range products {
			if covers(c, p.Date) {
				r.claimed[j] = true
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func covers(c types.AuxFile, t time.Time) bool {
	if sameDay(c.Date, t) {
		return true
	}
	return !c.End.IsZero() && !t.Before(c.Date) && !t.After(c.End)
}

func (r *run) unclaimedFrom(t time.Time) []types.AuxFile {
	from := truncateDay(t)
	var out []types.AuxFile
	for j, c := range r.cams {
		if !r.claimed[j] && (!c.Date.Before(from) || (!c.End.IsZero() && !c.End.Before(t))) {
			out = append(out, c)
		}
	}
	return out
}

func sortedProducts(in []types.Product) []types.Product {
	out := append([]types.Product(nil), in...)
	types.SortProducts(out)
	return out
}

func sortedAux(in []types.AuxFile) []types.AuxFile {
	out := append([]types.AuxFile(nil), in...)
	types.SortAux(out)
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
