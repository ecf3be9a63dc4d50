// Package report renders scheduled workplans for the operator.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dwsmith1983/startmaja/pkg/types"
)

var modeColor = map[types.Mode]*color.Color{
	types.ModeInit:     color.New(color.FgYellow),
	types.ModeBackward: color.New(color.FgCyan),
	types.ModeNominal:  color.New(color.FgGreen),
}

// WriteTable writes the confirmation table: a header line followed by one
// row per workplan. Rows are colored by mode when colorize is set.
func WriteTable(w io.Writer, workplans []types.Workplan, colorize bool) error {
	if _, err := fmt.Fprintln(w, types.TableHeader); err != nil {
		return err
	}
	for _, wp := range workplans {
		row := wp.String()
		if c, ok := modeColor[wp.Mode()]; ok && colorize {
			row = c.Sprint(row)
		}
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}
