package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitWritesNDJSONLine(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)

	require.NoError(t, e.Emit(Event{Type: "scan_started", Message: "go"}))

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "\n"))

	var decoded Event
	require.NoError(t, json.Unmarshal([]byte(line), &decoded))
	assert.Equal(t, "scan_started", decoded.Type)
	assert.Equal(t, "go", decoded.Message)
	assert.False(t, decoded.Timestamp.IsZero(), "timestamp is filled when absent")
}

func TestEmitKeepsExplicitTimestamp(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)
	ts := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, e.Emit(Event{Type: "x", Timestamp: ts}))

	var decoded Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.True(t, decoded.Timestamp.Equal(ts))
}

func TestEmitterConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.ScannerFinished("memory", 2, 5*time.Millisecond)
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		var decoded Event
		require.NoError(t, json.Unmarshal([]byte(line), &decoded))
		assert.Equal(t, "scanner_finished", decoded.Type)
	}
}

func TestScanLifecycleEvents(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)

	require.NoError(t, e.ScanStarted("run-1", "/tmp/project", []string{"memory", "mcp"}))
	require.NoError(t, e.ScanFinished("run-1", 7, 42))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var started Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &started))
	assert.Equal(t, "scan_started", started.Type)
	assert.Equal(t, "run-1", started.Fields["run_id"])

	var finished Event
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &finished))
	assert.Equal(t, "scan_finished", finished.Type)
	assert.EqualValues(t, 42, finished.Fields["level"])
}
