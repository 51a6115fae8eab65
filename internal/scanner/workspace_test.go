package scanner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMonorepoDetectsMarkerFile(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, isMonorepo(dir))

	writeFile(t, dir, "turbo.json", "{}")
	assert.True(t, isMonorepo(dir))
}

func TestIsMonorepoDetectsWorkspacesField(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":"root","workspaces":["packages/*"]}`)
	assert.True(t, isMonorepo(dir))
}

func TestIsMonorepoIgnoresPlainManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":"solo"}`)
	assert.False(t, isMonorepo(dir))
}

func TestDiscoverWorkspacesTwoLevels(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pnpm-workspace.yaml", "packages:\n  - 'packages/*'\n")
	writeFile(t, root, filepath.Join("apps", "package.json"), "{}")
	writeFile(t, root, filepath.Join("packages", "core", "package.json"), "{}")
	writeFile(t, root, filepath.Join("packages", "cli", "package.json"), "{}")
	writeFile(t, root, filepath.Join("node_modules", "dep", "package.json"), "{}")
	writeFile(t, root, filepath.Join(".hidden", "package.json"), "{}")

	dirs := discoverWorkspaces(root, workspaceCap)

	require.Len(t, dirs, 3)
	for _, d := range dirs {
		assert.NotContains(t, d, "node_modules")
		assert.NotContains(t, d, ".hidden")
	}
}

func TestDiscoverWorkspacesHonorsCap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lerna.json", "{}")
	for i := 0; i < 5; i++ {
		ws := "pkg" + string(rune('a'+i))
		writeFile(t, root, filepath.Join(ws, "package.json"), "{}")
	}

	dirs := discoverWorkspaces(root, 2)
	assert.Len(t, dirs, 2)
}

func TestDiscoverWorkspacesNilWithoutMonorepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, filepath.Join("packages", "core", "package.json"), "{}")

	assert.Nil(t, discoverWorkspaces(root, workspaceCap))
}
