package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vibescan/internal/report"
	"github.com/example/vibescan/internal/scoring"
	"github.com/example/vibescan/internal/taxonomy"
)

func TestEnsureOutputDir(t *testing.T) {
	require.NoError(t, ensureOutputDir(""))
	require.NoError(t, ensureOutputDir("."))
	assert.Error(t, ensureOutputDir("/"))

	target := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, ensureOutputDir(target))
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestArtifactRoundTrip(t *testing.T) {
	match := "claude-md"
	points := 3
	artifact := report.NewArtifact("0.1.0", nil, []taxonomy.Detection{{
		ID:            "claude-md",
		Category:      taxonomy.Continuity,
		Name:          "Project memory file",
		Source:        "CLAUDE.md",
		Confidence:    taxonomy.ConfidenceHigh,
		Tier:          taxonomy.TierBasic,
		TaxonomyMatch: &match,
		Points:        &points,
	}}, scoring.ComputeScore(nil))

	path := filepath.Join(t.TempDir(), "out", "artifact.json")
	require.NoError(t, writeArtifact(path, artifact))

	loaded, err := readArtifact(path)
	require.NoError(t, err)

	assert.Equal(t, artifact.RunID, loaded.RunID)
	assert.Equal(t, artifact.Version, loaded.Version)
	require.Len(t, loaded.Detections, 1)
	assert.Equal(t, "claude-md", loaded.Detections[0].ID)
	require.NotNil(t, loaded.Detections[0].Points)
	assert.Equal(t, 3, *loaded.Detections[0].Points)
	require.NotNil(t, loaded.Detections[0].TaxonomyMatch)
	assert.Equal(t, "claude-md", *loaded.Detections[0].TaxonomyMatch)
}

func TestReadArtifactErrors(t *testing.T) {
	_, err := readArtifact(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
	_, err = readArtifact(bad)
	assert.Error(t, err)
}

func TestWriteSummaryShape(t *testing.T) {
	artifact := report.NewArtifact("0.1.0", nil, nil, scoring.ComputeScore(nil))
	path := filepath.Join(t.TempDir(), "summary.json")

	require.NoError(t, writeSummary(path, artifact))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, key := range []string{"runId", "level", "tier", "typeCode", "detections", "pioneer"} {
		assert.Contains(t, string(data), key)
	}
}
