package config

import (
	"fmt"

	"github.com/dwsmith1983/startmaja/internal/naming"
	"github.com/dwsmith1983/startmaja/pkg/types"
)

// Default run option values.
const (
	DefaultStart     = "2000-01-01"
	DefaultEnd       = "3000-01-01"
	DefaultNBackward = 8
)

// Options are the per-run settings given on the command line.
type Options struct {
	Tile      string   `validate:"required"`
	Site      string   `validate:"omitempty"`
	Start     string   `validate:"required,datetime=2006-01-02"`
	End       string   `validate:"required,datetime=2006-01-02"`
	NBackward int      `validate:"min=1"`
	Overwrite bool     `validate:"-"`
	Inputs    []string `validate:"max=2,dive,required"`
	GIPP      string   `validate:"omitempty"`
	DTM       string   `validate:"omitempty"`
}

// DefaultOptions returns the option defaults for tile.
func DefaultOptions(tile string) Options {
	return Options{
		Tile:      tile,
		Start:     DefaultStart,
		End:       DefaultEnd,
		NBackward: DefaultNBackward,
	}
}

// Normalize returns a copy with the tile in canonical form.
func (o Options) Normalize() Options {
	o.Tile = naming.NormalizeTile(o.Tile)
	return o
}

// Validate checks the options and the order of the start and end dates.
func (o Options) Validate() error {
	if err := validateStruct(o); err != nil {
		return err
	}
	// YYYY-MM-DD compares chronologically as a string.
	if o.Start > o.End {
		return fmt.Errorf("%w: start date %s has to be before the end date %s", ErrInvalidConfig, o.Start, o.End)
	}
	return nil
}

// Resolve fills the GIPP and DTM directories from the folders definition
// when they were not given on the command line.
func (o Options) Resolve(paths types.PathsConfig) Options {
	if o.GIPP == "" {
		o.GIPP = paths.GIPP
	}
	if o.DTM == "" {
		o.DTM = paths.DTM
	}
	return o
}
