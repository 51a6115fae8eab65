package scanner

import (
	"path/filepath"
	"strings"

	"github.com/example/vibescan/internal/probe"
)

// workspaceCap bounds monorepo discovery.
const workspaceCap = 20

var monorepoMarkers = []string{
	"pnpm-workspace.yaml",
	"turbo.json",
	"nx.json",
	"lerna.json",
	"rush.json",
}

var skipWorkspaceDirs = map[string]struct{}{
	"node_modules": {}, ".git": {}, "dist": {}, "build": {}, ".next": {}, ".turbo": {}, ".cache": {},
}

// isMonorepo reports whether root carries a workspace-tool marker file or a
// workspaces field in its manifest.
func isMonorepo(root string) bool {
	for _, marker := range monorepoMarkers {
		if probe.FileExists(filepath.Join(root, marker)) {
			return true
		}
	}
	var pkg map[string]any
	if probe.ReadJSON(filepath.Join(root, "package.json"), &pkg) {
		if _, ok := pkg["workspaces"]; ok {
			return true
		}
	}
	return false
}

// discoverWorkspaces walks two directory levels under a monorepo root and
// collects every directory that carries its own project manifest, capped.
func discoverWorkspaces(root string, limit int) []string {
	if !isMonorepo(root) {
		return nil
	}

	var dirs []string
	level1, ok := probe.DirEntries(root)
	if !ok {
		return nil
	}

	for _, d := range level1 {
		if !d.IsDir() || skipDir(d.Name()) {
			continue
		}
		l1 := filepath.Join(root, d.Name())
		if probe.FileExists(filepath.Join(l1, "package.json")) {
			dirs = append(dirs, l1)
			if len(dirs) >= limit {
				return dirs
			}
		}
		level2, ok := probe.DirEntries(l1)
		if !ok {
			continue
		}
		for _, d2 := range level2 {
			if !d2.IsDir() || skipDir(d2.Name()) {
				continue
			}
			l2 := filepath.Join(l1, d2.Name())
			if probe.FileExists(filepath.Join(l2, "package.json")) {
				dirs = append(dirs, l2)
				if len(dirs) >= limit {
					return dirs
				}
			}
		}
	}

	return dirs
}

func skipDir(name string) bool {
	if _, skip := skipWorkspaceDirs[name]; skip {
		return true
	}
	return strings.HasPrefix(name, ".")
}
