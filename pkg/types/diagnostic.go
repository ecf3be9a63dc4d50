package types

import (
	"fmt"
	"time"
)

// Diagnostic is a non-fatal observation made while cataloging or
// scheduling. Diagnostics are collected and handed to the operator summary;
// they never stop a run.
type Diagnostic struct {
	Level   DiagnosticLevel `json:"level"`
	Message string          `json:"message"`
	// Date is the acquisition date the diagnostic refers to, if any.
	Date time.Time `json:"date,omitzero"`
}

// Diagnostics accumulates diagnostics in emission order.
type Diagnostics []Diagnostic

// Warnf appends a warning.
func (d *Diagnostics) Warnf(format string, args ...any) {
	*d = append(*d, Diagnostic{Level: DiagnosticWarning, Message: fmt.Sprintf(format, args...)})
}

// Infof appends an informational entry.
func (d *Diagnostics) Infof(format string, args ...any) {
	*d = append(*d, Diagnostic{Level: DiagnosticInfo, Message: fmt.Sprintf(format, args...)})
}

// WarnAt appends a warning tied to an acquisition date.
func (d *Diagnostics) WarnAt(date time.Time, format string, args ...any) {
	*d = append(*d, Diagnostic{Level: DiagnosticWarning, Message: fmt.Sprintf(format, args...), Date: date})
}

// InfoAt appends an informational entry tied to an acquisition date.
func (d *Diagnostics) InfoAt(date time.Time, format string, args ...any) {
	*d = append(*d, Diagnostic{Level: DiagnosticInfo, Message: fmt.Sprintf(format, args...), Date: date})
}

// Warnings returns the warning entries only.
func (d Diagnostics) Warnings() Diagnostics {
	var out Diagnostics
	for _, e := range d {
		if e.Level == DiagnosticWarning {
			out = append(out, e)
		}
	}
	return out
}
