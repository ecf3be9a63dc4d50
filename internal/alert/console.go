package alert

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dwsmith1983/startmaja/pkg/types"
)

// ConsoleSink writes diagnostics to a terminal with color.
type ConsoleSink struct {
	w io.Writer
}

// NewConsoleSink creates a console sink writing to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Name returns the sink identifier.
func (s *ConsoleSink) Name() string { return "console" }

// Send writes a diagnostic with color-coded severity.
func (s *ConsoleSink) Send(_ context.Context, d types.Diagnostic) error {
	var prefix string
	switch d.Level {
	case types.DiagnosticError:
		prefix = color.RedString("[ERROR]")
	case types.DiagnosticWarning:
		prefix = color.YellowString("[WARN]")
	default:
		prefix = color.CyanString("[INFO]")
	}

	var err error
	if !d.Date.IsZero() {
		_, err = fmt.Fprintf(s.w, "%s [%s] %s\n", prefix, d.Date.Format("2006-01-02"), d.Message)
	} else {
		_, err = fmt.Fprintf(s.w, "%s %s\n", prefix, d.Message)
	}
	return err
}
