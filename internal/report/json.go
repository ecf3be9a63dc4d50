package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dwsmith1983/startmaja/pkg/types"
)

// Document is the machine-readable form of a plan.
type Document struct {
	RunID       string               `json:"runId"`
	Tile        string               `json:"tile"`
	Platform    types.Platform       `json:"platform"`
	Type        types.ProcessingType `json:"type"`
	Workplans   []Entry              `json:"workplans"`
	Skipped     []string             `json:"skipped,omitempty"`
	Diagnostics types.Diagnostics    `json:"diagnostics,omitempty"`
}

// Entry is one workplan of a Document.
type Entry struct {
	Mode   types.Mode `json:"mode"`
	Date   time.Time  `json:"date"`
	L1     string     `json:"l1"`
	Inputs []string   `json:"inputs"`
	Info   string     `json:"info"`
	CAMS   []string   `json:"cams,omitempty"`
	DTM    string     `json:"dtm,omitempty"`

	// Set for Nominal workplans only.
	L2       string                 `json:"l2,omitempty"`
	L2Date   time.Time              `json:"l2Date,omitzero"`
	Fallback *types.NominalFallback `json:"fallback,omitempty"`
}

// NewEntry flattens a workplan into its document form.
func NewEntry(wp types.Workplan) Entry {
	p := wp.Primary()
	e := Entry{
		Mode: wp.Mode(),
		Date: p.Date,
		L1:   p.Root,
		Info: wp.Info(),
	}
	for _, in := range wp.Inputs() {
		e.Inputs = append(e.Inputs, in.Root)
	}
	for _, c := range wp.Aux() {
		e.CAMS = append(e.CAMS, c.Name)
	}

	var terrain *types.AuxFile
	switch v := wp.(type) {
	case types.Init:
		terrain = v.Terrain
	case types.Backward:
		terrain = v.Terrain
	case types.Nominal:
		terrain = v.Terrain
		e.L2Date = v.L2Date
		if v.L2 != nil {
			e.L2 = v.L2.Root
		}
		fb := v.Fallback
		e.Fallback = &fb
	}
	if terrain != nil {
		e.DTM = terrain.HDR
	}
	return e
}

// WriteJSON writes v as indented JSON. v is a Document or a catalog
// inventory.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
