package report

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Event represents a single NDJSON record for worker-friendly logs.
type Event struct {
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Message   string                 `json:"message,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Emitter writes NDJSON events to an io.Writer safely across goroutines.
type Emitter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewEmitter returns a new NDJSON emitter.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{writer: w}
}

// Emit serializes the event to JSON and appends a newline.
func (e *Emitter) Emit(evt Event) error {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.writer.Write(append(payload, '\n')); err != nil {
		return err
	}

	return nil
}

// ScanStarted reports the beginning of a scan run.
func (e *Emitter) ScanStarted(runID, projectDir string, scanners []string) error {
	return e.Emit(Event{
		Type:    "scan_started",
		Message: "scan started",
		Fields: map[string]interface{}{
			"run_id":   runID,
			"project":  projectDir,
			"scanners": scanners,
		},
	})
}

// ScannerFinished reports one scanner's completion.
func (e *Emitter) ScannerFinished(name string, detections int, duration time.Duration) error {
	return e.Emit(Event{
		Type: "scanner_finished",
		Fields: map[string]interface{}{
			"scanner":     name,
			"detections":  detections,
			"duration_ms": duration.Milliseconds(),
		},
	})
}

// ScanFinished reports the end of a scan run with the computed level.
func (e *Emitter) ScanFinished(runID string, detections, level int) error {
	return e.Emit(Event{
		Type:    "scan_finished",
		Message: "scan finished",
		Fields: map[string]interface{}{
			"run_id":     runID,
			"detections": detections,
			"level":      level,
		},
	})
}
