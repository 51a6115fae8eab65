package scanner

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vibescan/internal/taxonomy"
)

func namedDetection(id string) taxonomy.Detection {
	match := id
	return taxonomy.Detection{
		ID:            id,
		Category:      taxonomy.Tooling,
		Name:          id,
		Confidence:    taxonomy.ConfidenceHigh,
		Tier:          taxonomy.TierBasic,
		TaxonomyMatch: &match,
	}
}

func TestMergeDetectionsDeduplicatesByID(t *testing.T) {
	results := []Result{
		{Scanner: "first", Detections: []taxonomy.Detection{namedDetection("dup"), namedDetection("a")}},
		{Scanner: "second", Detections: []taxonomy.Detection{namedDetection("dup"), namedDetection("b")}},
	}

	merged := MergeDetections(results, nil)

	require.Len(t, merged, 3)
	assert.Equal(t, "dup", merged[0].ID)
	assert.Equal(t, "a", merged[1].ID)
	assert.Equal(t, "b", merged[2].ID)
}

func TestMergeDetectionsSuppressesSupersededLegacy(t *testing.T) {
	results := []Result{
		{Scanner: "memory", Detections: []taxonomy.Detection{namedDetection("claude-md")}},
		{Scanner: "universal-file", Detections: []taxonomy.Detection{namedDetection("ufs:claude-md:rich")}},
	}
	superseded := map[string][]string{
		"claude-md": {"ufs:claude-md:deep", "ufs:claude-md:rich", "ufs:claude-md:exists"},
	}

	merged := MergeDetections(results, superseded)

	require.Len(t, merged, 1)
	assert.Equal(t, "ufs:claude-md:rich", merged[0].ID)
}

func TestMergeDetectionsKeepsLegacyWhenReplacementDidNotFire(t *testing.T) {
	results := []Result{
		{Scanner: "memory", Detections: []taxonomy.Detection{namedDetection("claude-md")}},
		{Scanner: "universal-file", Detections: []taxonomy.Detection{namedDetection("ufs:mcp-config:exists")}},
	}
	superseded := map[string][]string{
		"claude-md": {"ufs:claude-md:deep", "ufs:claude-md:rich", "ufs:claude-md:exists"},
	}

	merged := MergeDetections(results, superseded)

	require.Len(t, merged, 2)
	assert.Equal(t, "claude-md", merged[0].ID)
}

func TestUnionByIDFirstSeenWins(t *testing.T) {
	local := namedDetection("shared")
	local.Source = "local"
	remote := namedDetection("shared")
	remote.Source = "remote"

	out := UnionByID(
		[]taxonomy.Detection{local, namedDetection("only-local")},
		[]taxonomy.Detection{remote, namedDetection("only-remote")},
	)

	require.Len(t, out, 3)
	assert.Equal(t, "local", out[0].Source)
}

func TestResultDurationEncodesAsMilliseconds(t *testing.T) {
	r := Result{Scanner: "memory", Duration: 1500 * time.Millisecond}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"durationMs":1500`)
	assert.NotContains(t, string(data), "1500000000")

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r.Scanner, decoded.Scanner)
	assert.Equal(t, r.Duration, decoded.Duration)
}

func TestRegistryBuildRejectsUnknownScanner(t *testing.T) {
	_, err := DefaultRegistry.Build([]string{"nonexistent"}, Options{Registry: taxonomy.NewRegistry()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestRegistryBuildPreservesDefaultOrder(t *testing.T) {
	opts := Options{Registry: taxonomy.NewRegistry()}

	scanners, err := DefaultRegistry.Build([]string{"universal-file", "memory"}, opts)
	require.NoError(t, err)
	require.Len(t, scanners, 2)
	assert.Equal(t, "memory", scanners[0].Name())
	assert.Equal(t, "universal-file", scanners[1].Name(), "universal scanner always runs last")
}

func TestRegistryBuildDefaultsToAll(t *testing.T) {
	opts := Options{Registry: taxonomy.NewRegistry()}

	scanners, err := DefaultRegistry.Build(nil, opts)
	require.NoError(t, err)
	assert.Len(t, scanners, len(DefaultOrder))
}
