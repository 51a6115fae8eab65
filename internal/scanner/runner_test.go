package scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vibescan/internal/taxonomy"
)

type stubScanner struct {
	name       string
	detections []taxonomy.Detection
	err        error
	panics     bool
}

func (s *stubScanner) Name() string { return s.name }

func (s *stubScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	if s.panics {
		panic("boom")
	}
	return s.detections, s.err
}

func TestRunAllPreservesInputOrder(t *testing.T) {
	scanners := []Scanner{
		&stubScanner{name: "one", detections: []taxonomy.Detection{namedDetection("d1")}},
		&stubScanner{name: "two", detections: []taxonomy.Detection{namedDetection("d2")}},
		&stubScanner{name: "three"},
	}

	results := RunAll(context.Background(), scanners)

	require.Len(t, results, 3)
	assert.Equal(t, "one", results[0].Scanner)
	assert.Equal(t, "two", results[1].Scanner)
	assert.Equal(t, "three", results[2].Scanner)
}

func TestRunAllIsolatesFailures(t *testing.T) {
	scanners := []Scanner{
		&stubScanner{name: "healthy", detections: []taxonomy.Detection{namedDetection("ok")}},
		&stubScanner{name: "failing", err: errors.New("disk on fire")},
		&stubScanner{name: "panicking", panics: true},
	}

	results := RunAll(context.Background(), scanners)

	require.Len(t, results, 3)
	assert.Len(t, results[0].Detections, 1)
	assert.Empty(t, results[1].Detections)
	assert.NotNil(t, results[1].Detections, "failed scanner yields empty list, not nil")
	assert.Empty(t, results[2].Detections)
	assert.NotNil(t, results[2].Detections)
}

func TestRunAllRecordsDurations(t *testing.T) {
	results := RunAll(context.Background(), []Scanner{&stubScanner{name: "quick"}})
	require.Len(t, results, 1)
	assert.GreaterOrEqual(t, results[0].Duration.Nanoseconds(), int64(0))
}
