package types

import (
	"fmt"
	"time"
)

// TableHeader is the header line of the operator confirmation table. Each
// workplan's String method renders one row in the same column layout.
var TableHeader = fmt.Sprintf(rowFormat, "DATE", "TILE", "MODE", "L1-PRODUCT", "INFO/L2-PRODUCT")

const (
	rowFormat  = "%8s | %5s | %8s | %70s | %15s"
	dateFormat = "20060102"
)

// Workplan is one scheduled unit of correction work. The set of
// implementations is closed: Init, Backward and Nominal.
type Workplan interface {
	// Mode returns the processing mode tag.
	Mode() Mode
	// Primary returns the Level-1 product the workplan produces a Level-2 for.
	Primary() Product
	// Inputs returns every Level-1 product the workplan reads.
	Inputs() []Product
	// Aux returns the CAMS files attached to the workplan.
	Aux() []AuxFile
	// Info returns the secondary column of the confirmation table.
	Info() string
	String() string

	workplan()
}

// Init is a cold start with no prior state.
type Init struct {
	L1      Product   `json:"l1"`
	CAMS    []AuxFile `json:"cams,omitempty"`
	Terrain *AuxFile  `json:"dtm,omitempty"`
}

// Backward bootstraps the time series from a window of Level-1 products
// starting at L1.
type Backward struct {
	L1      Product   `json:"l1"`
	Window  []Product `json:"window"`
	CAMS    []AuxFile `json:"cams,omitempty"`
	Terrain *AuxFile  `json:"dtm,omitempty"`
}

// Nominal is an incremental update anchored on a Level-2 product dated
// L2Date. L2 is set when the anchor already exists on disk; otherwise the
// anchor is the output of the previously scheduled workplan.
type Nominal struct {
	L1       Product         `json:"l1"`
	L2Date   time.Time       `json:"l2Date"`
	L2       *Product        `json:"l2,omitempty"`
	CAMS     []AuxFile       `json:"cams,omitempty"`
	Terrain  *AuxFile        `json:"dtm,omitempty"`
	Fallback NominalFallback `json:"fallback"`
}

// NominalFallback carries what an executor needs to restart the series
// itself when the anchor Level-2 turns out to be unusable at run time.
type NominalFallback struct {
	RemainingL1  []Product `json:"remainingL1"`
	NBackward    int       `json:"nbackward"`
	RemainingAux []AuxFile `json:"remainingAux,omitempty"`
}

func (Init) workplan()     {}
func (Backward) workplan() {}
func (Nominal) workplan()  {}

// Mode returns ModeInit.
func (w Init) Mode() Mode { return ModeInit }

// Mode returns ModeBackward.
func (w Backward) Mode() Mode { return ModeBackward }

// Mode returns ModeNominal.
func (w Nominal) Mode() Mode { return ModeNominal }

// Primary returns L1.
func (w Init) Primary() Product { return w.L1 }

// Primary returns L1, the first product of the window.
func (w Backward) Primary() Product { return w.L1 }

// Primary returns L1.
func (w Nominal) Primary() Product { return w.L1 }

// Inputs returns L1 alone.
func (w Init) Inputs() []Product { return []Product{w.L1} }

// Inputs returns the backward window.
func (w Backward) Inputs() []Product { return w.Window }

// Inputs returns L1 alone. The anchor Level-2 is not an input product.
func (w Nominal) Inputs() []Product { return []Product{w.L1} }

// Aux returns the CAMS files claimed for L1.
func (w Init) Aux() []AuxFile { return w.CAMS }

// Aux returns the CAMS files claimed for the whole window.
func (w Backward) Aux() []AuxFile { return w.CAMS }

// Aux returns the CAMS files claimed for L1.
func (w Nominal) Aux() []AuxFile { return w.CAMS }

// Info reports the number of attached CAMS files.
func (w Init) Info() string { return fmt.Sprintf("CAMS=%d", len(w.CAMS)) }

// Info reports the size of the backward window.
func (w Backward) Info() string { return fmt.Sprintf("NBACKWARD=%d", len(w.Window)) }

// Info names the existing anchor product, or the date of the assumed one.
func (w Nominal) Info() string {
	if w.L2 != nil {
		return w.L2.Name
	}
	return "PREV=" + w.L2Date.Format(dateFormat)
}

// String renders the workplan as a confirmation table row.
func (w Init) String() string { return row(w) }

// String renders the workplan as a confirmation table row.
func (w Backward) String() string { return row(w) }

// String renders the workplan as a confirmation table row.
func (w Nominal) String() string { return row(w) }

func row(w Workplan) string {
	p := w.Primary()
	return fmt.Sprintf(rowFormat, p.Date.Format(dateFormat), p.Tile, w.Mode(), p.Name, w.Info())
}
