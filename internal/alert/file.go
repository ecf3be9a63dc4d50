package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/dwsmith1983/startmaja/pkg/types"
)

// Record is one line of a diagnostics file.
type Record struct {
	RunID string `json:"runId"`
	Tile  string `json:"tile"`
	types.Diagnostic
}

// FileSink appends diagnostics as JSON lines to a file.
type FileSink struct {
	path  string
	runID string
	tile  string
	mu    sync.Mutex
}

// NewFileSink creates a file sink. Records carry the run ID and tile so that
// several runs can share one file.
func NewFileSink(path, runID, tile string) (*FileSink, error) {
	// Ensure the file is writable
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening diagnostics file: %w", err)
	}
	_ = f.Close()

	return &FileSink{path: path, runID: runID, tile: tile}, nil
}

// Name returns the sink identifier.
func (s *FileSink) Name() string { return "file" }

// Send appends the diagnostic as a JSON line.
func (s *FileSink) Send(_ context.Context, d types.Diagnostic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	data, err := json.Marshal(Record{RunID: s.runID, Tile: s.tile, Diagnostic: d})
	if err != nil {
		return err
	}

	_, err = f.Write(append(data, '\n'))
	return err
}
