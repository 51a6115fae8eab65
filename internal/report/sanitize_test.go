package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vibescan/internal/scanner"
	"github.com/example/vibescan/internal/taxonomy"
)

func TestStripDetailsKeepsOnlyAllowedKeys(t *testing.T) {
	clean := stripDetails(map[string]any{
		"count":     3,
		"ratio":     75,
		"pattern":   "9_to_5",
		"path":      "/Users/someone/project",
		"aliases":   []string{"cc", "claude"},
		"count2":    9,
		"lineCount": 120,
	})

	assert.Equal(t, map[string]any{
		"count":   3,
		"ratio":   75,
		"pattern": "9_to_5",
	}, clean)
}

func TestStripDetailsRejectsTypeMismatches(t *testing.T) {
	clean := stripDetails(map[string]any{
		"count":   "three",
		"pattern": 42,
	})
	assert.Nil(t, clean)

	assert.Nil(t, stripDetails(nil))
	assert.Nil(t, stripDetails(map[string]any{"secret": "x"}))
}

func TestNormalizeSource(t *testing.T) {
	cases := map[string]string{
		"~/.zshrc":                  "shell-config",
		"~/.bash_profile":           "shell-config",
		"crontab":                   "crontab",
		".claude/agents/planner.md": "agents-dir",
		".claude/skills/review":     "skills-dir",
		"~/Library/LaunchAgents/x":  "launch-agents",
		"CLAUDE.md":                 "CLAUDE.md",
		"package.json":              "package.json",
	}

	for in, want := range cases {
		assert.Equal(t, want, normalizeSource(in), "source %q", in)
	}
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	original := Artifact{
		Version:  "0.1.0",
		Platform: "darwin",
		ScanResults: []scanner.Result{{
			Scanner:    "memory",
			Duration:   12 * time.Millisecond,
			Detections: []taxonomy.Detection{{ID: "claude-md"}},
		}},
		Detections: []taxonomy.Detection{{
			ID:     "env-keys",
			Source: "~/.zshrc",
			Details: map[string]any{
				"count": 2,
				"vars":  []string{"ANTHROPIC_API_KEY"},
			},
		}},
	}

	clean := Sanitize(original)

	assert.Equal(t, "redacted", clean.Platform)
	require.Len(t, clean.ScanResults, 1)
	assert.Nil(t, clean.ScanResults[0].Detections, "per-scanner detections are dropped")
	assert.Equal(t, "memory", clean.ScanResults[0].Scanner)
	assert.Equal(t, 12*time.Millisecond, clean.ScanResults[0].Duration)

	require.Len(t, clean.Detections, 1)
	assert.Equal(t, "shell-config", clean.Detections[0].Source)
	assert.Equal(t, map[string]any{"count": 2}, clean.Detections[0].Details)

	// The input keeps its raw values.
	assert.Equal(t, "darwin", original.Platform)
	assert.Equal(t, "~/.zshrc", original.Detections[0].Source)
	assert.Contains(t, original.Detections[0].Details, "vars")
	assert.Len(t, original.ScanResults[0].Detections, 1)
}
