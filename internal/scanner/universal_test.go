package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vibescan/internal/taxonomy"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func universalFor(t *testing.T, projectDir string) *UniversalScanner {
	t.Helper()
	return NewUniversalScanner(Options{
		ProjectDir: projectDir,
		HomeDir:    t.TempDir(),
		Registry:   taxonomy.NewRegistry(),
	})
}

func findDetection(detections []taxonomy.Detection, id string) *taxonomy.Detection {
	for i := range detections {
		if detections[i].ID == id {
			return &detections[i]
		}
	}
	return nil
}

func TestUniversalScanEmptyProject(t *testing.T) {
	s := universalFor(t, t.TempDir())

	detections, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, detections)
}

func TestUniversalConditionalChainAwardsDeepestMatch(t *testing.T) {
	dir := t.TempDir()
	lines := make([]string, 120)
	for i := range lines {
		lines[i] = "guidance line"
	}
	lines[0] = "# Architecture and security conventions"
	writeFile(t, dir, "CLAUDE.md", strings.Join(lines, "\n"))

	s := universalFor(t, dir)
	detections, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, findDetection(detections, "ufs:claude-md:deep"))
	assert.Nil(t, findDetection(detections, "ufs:claude-md:rich"), "only the deepest rule per (artifact, category) fires")
	assert.Nil(t, findDetection(detections, "ufs:claude-md:exists"))
}

func TestUniversalShallowFileFallsThroughToExists(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "CLAUDE.md", "short file\n")

	s := universalFor(t, dir)
	detections, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Nil(t, findDetection(detections, "ufs:claude-md:deep"))
	assert.Nil(t, findDetection(detections, "ufs:claude-md:rich"))
	d := findDetection(detections, "ufs:claude-md:exists")
	require.NotNil(t, d)
	assert.Equal(t, taxonomy.ScopeProject, d.ScanScope)
	require.NotNil(t, d.Points)
	assert.Equal(t, 3, *d.Points)
}

func TestUniversalGlobalScopeRequiresDeep(t *testing.T) {
	project := t.TempDir()
	s := NewUniversalScanner(Options{
		ProjectDir: project,
		HomeDir:    t.TempDir(),
		Deep:       false,
		Registry:   taxonomy.NewRegistry(),
	})

	detections, err := s.Scan(context.Background())
	require.NoError(t, err)
	for _, d := range detections {
		assert.NotEqual(t, taxonomy.ScopeGlobal, d.ScanScope)
	}
}

func TestUniversalTestRatioPenalty(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 7; i++ {
		writeFile(t, dir, filepath.Join("src", "file"+string(rune('a'+i))+".go"), "package x\n")
	}

	s := universalFor(t, dir)
	detections, err := s.Scan(context.Background())
	require.NoError(t, err)

	d := findDetection(detections, "ufs:test-ratio:zero")
	require.NotNil(t, d, "projects with >5 source files and zero tests are penalized")
	require.NotNil(t, d.Points)
	assert.Negative(t, *d.Points)
}

func TestUniversalReadmeChain(t *testing.T) {
	dir := t.TempDir()
	lines := make([]string, 120)
	for i := range lines {
		lines[i] = "usage notes"
	}
	writeFile(t, dir, "README.md", strings.Join(lines, "\n"))

	s := universalFor(t, dir)
	detections, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Nil(t, findDetection(detections, "ufs:readme:badges"))
	d := findDetection(detections, "ufs:readme:rich")
	require.NotNil(t, d)
	assert.Nil(t, findDetection(detections, "ufs:readme:exists"))
}

func TestUniversalHandoffGlobMatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "HANDOFF-2026-01.md", "state\n")

	s := universalFor(t, dir)
	detections, err := s.Scan(context.Background())
	require.NoError(t, err)

	d := findDetection(detections, "ufs:handoff:exists")
	require.NotNil(t, d)
	assert.Equal(t, "handoff*", d.Source)
}

func TestMonorepoBonuses(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pnpm-workspace.yaml", "packages:\n  - 'packages/*'\n")
	for i := 0; i < 6; i++ {
		ws := filepath.Join("packages", "pkg"+string(rune('a'+i)))
		writeFile(t, root, filepath.Join(ws, "package.json"), "{}")
		writeFile(t, root, filepath.Join(ws, "CLAUDE.md"), "conventions\n")
	}

	s := universalFor(t, root)
	detections, err := s.Scan(context.Background())
	require.NoError(t, err)

	large := findDetection(detections, "ufs:monorepo:large")
	require.NotNil(t, large)

	consistent := findDetection(detections, "ufs:monorepo:ai-consistent")
	require.NotNil(t, consistent)
	assert.Contains(t, consistent.Source, "6/6")
}
