package report

import (
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/example/vibescan/internal/scanner"
	"github.com/example/vibescan/internal/scoring"
	"github.com/example/vibescan/internal/taxonomy"
)

// Artifact is the full scan output envelope, suitable for writing to disk or
// feeding into a later merge.
type Artifact struct {
	Version     string               `json:"version"`
	RunID       string               `json:"runId"`
	Timestamp   string               `json:"timestamp"`
	Platform    string               `json:"platform"`
	ScanResults []scanner.Result     `json:"scanResults"`
	Detections  []taxonomy.Detection `json:"detections"`
	Score       scoring.Result       `json:"score"`
}

// NewArtifact assembles the envelope for one completed run.
func NewArtifact(version string, results []scanner.Result, detections []taxonomy.Detection, score scoring.Result) Artifact {
	return Artifact{
		Version:     version,
		RunID:       uuid.NewString(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Platform:    runtime.GOOS,
		ScanResults: results,
		Detections:  detections,
		Score:       score,
	}
}
