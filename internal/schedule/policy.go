// Package schedule decides, for each pending Level-1 product, which
// correction mode applies and emits the ordered workplan sequence.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/dwsmith1983/startmaja/pkg/types"
)

const day = 24 * time.Hour

var (
	// ErrInvalidPolicy is returned by Policy.Validate.
	ErrInvalidPolicy = errors.New("invalid scheduling policy")

	// ErrInfeasible is the parent of every error that means no valid plan
	// exists for the requested period.
	ErrInfeasible = errors.New("scheduling infeasible")
	// ErrNoProductsInWindow is returned when no Level-1 product is dated on or after the start day.
	ErrNoProductsInWindow = fmt.Errorf("%w: no products found after start date", ErrInfeasible)
	// ErrWindowAfterEnd is returned when the first candidate lies after the end day.
	ErrWindowAfterEnd = fmt.Errorf("%w: first product lies after end date", ErrInfeasible)
	// ErrNoWorkplans is returned when every candidate was skipped.
	ErrNoWorkplans = fmt.Errorf("%w: no workplans created", ErrInfeasible)
)

// Policy holds the constants of the mode decision.
type Policy struct {
	// EpochSwitch separates the two gap thresholds. Products dated before it
	// use MaxL2DiffBefore, the others MaxL2DiffAfter.
	EpochSwitch     time.Time
	MaxL2DiffBefore time.Duration
	MaxL2DiffAfter  time.Duration

	// NBackward is the minimum number of products a backward window needs.
	NBackward int
	// Overwrite schedules products whose Level-2 already exists.
	Overwrite bool

	// Tolerance is the maximum distance between a Level-1 and its own
	// Level-2, per platform. DefaultTolerance applies to unlisted platforms.
	Tolerance        map[types.Platform]time.Duration
	DefaultTolerance time.Duration
}

// DefaultPolicy returns the production constants.
func DefaultPolicy() Policy {
	return Policy{
		EpochSwitch:     time.Date(2017, 7, 6, 0, 0, 0, 0, time.UTC),
		MaxL2DiffBefore: 28 * day,
		MaxL2DiffAfter:  14 * day,
		NBackward:       8,
		Tolerance: map[types.Platform]time.Duration{
			types.PlatformSentinel2: 3 * time.Hour,
			types.PlatformLandsat8:  3 * time.Hour,
			types.PlatformVenus:     12 * time.Hour,
		},
		DefaultTolerance: 3 * time.Hour,
	}
}

// MaxL2Diff returns the gap threshold applicable at date.
func (p Policy) MaxL2Diff(date time.Time) time.Duration {
	if date.Before(p.EpochSwitch) {
		return p.MaxL2DiffBefore
	}
	return p.MaxL2DiffAfter
}

// ProductTolerance returns the skip tolerance of a platform.
func (p Policy) ProductTolerance(platform types.Platform) time.Duration {
	if d, ok := p.Tolerance[platform]; ok {
		return d
	}
	return p.DefaultTolerance
}

// Validate checks the policy for values the scheduler cannot work with.
func (p Policy) Validate() error {
	switch {
	case p.NBackward < 1:
		return fmt.Errorf("%w: nbackward must be at least 1, got %d", ErrInvalidPolicy, p.NBackward)
	case p.MaxL2DiffBefore <= 0 || p.MaxL2DiffAfter <= 0:
		return fmt.Errorf("%w: gap thresholds must be positive", ErrInvalidPolicy)
	case p.DefaultTolerance < 0:
		return fmt.Errorf("%w: negative product tolerance", ErrInvalidPolicy)
	}
	for platform, d := range p.Tolerance {
		if d < 0 {
			return fmt.Errorf("%w: negative product tolerance for %s", ErrInvalidPolicy, platform)
		}
	}
	return nil
}
