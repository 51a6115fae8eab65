package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/example/vibescan/internal/probe"
	"github.com/example/vibescan/internal/taxonomy"
)

// artifactHandoff marks the glob-like rule matching handoff*, handover*, and
// session-state* entries in the project root.
const artifactHandoff = "handoff"

// shellEvidence is the fixed keyword list a shell check's output is matched
// against.
var shellEvidence = []string{"claude", "codex", "cursor", "gemini", "ollama", "openai", "anthropic", "aider"}

// UniversalScanner interprets the declarative rule table across project,
// workspace, and global scopes. Global scope is only evaluated in deep mode.
type UniversalScanner struct {
	projectDir string
	homeDir    string
	deep       bool
	rules      []rule
}

// NewUniversalScanner builds the scanner over the built-in rule table.
// The table is validated on construction; an invalid built-in table is a
// programmer error and panics.
func NewUniversalScanner(opts Options) *UniversalScanner {
	reg := opts.Registry
	if reg == nil {
		reg = taxonomy.NewRegistry()
	}
	if err := validateRules(defaultRules, reg); err != nil {
		panic(fmt.Sprintf("invalid rule table: %v", err))
	}
	return &UniversalScanner{
		projectDir: opts.ProjectDir,
		homeDir:    opts.HomeDir,
		deep:       opts.Deep,
		rules:      defaultRules,
	}
}

// Name implements Scanner.
func (s *UniversalScanner) Name() string { return "universal-file" }

// Scan implements Scanner. Each rule is individually fault-tolerant: a
// missing file, unreadable directory, or failed shell command fails that rule
// closed without aborting the scan.
func (s *UniversalScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	workspaces := discoverWorkspaces(s.projectDir, workspaceCap)

	scopeRoots := map[taxonomy.Scope][]string{
		taxonomy.ScopeProject:   {s.projectDir},
		taxonomy.ScopeWorkspace: workspaces,
		taxonomy.ScopeGlobal:    {s.homeDir},
	}

	detections := []taxonomy.Detection{}
	// Conditional-chain dedup: first passing rule per (artifact, category)
	// wins; the table is ordered highest-threshold-first.
	emitted := map[string]struct{}{}

	for _, r := range s.rules {
		for _, scope := range r.Scopes {
			if scope == taxonomy.ScopeGlobal && !s.deep {
				continue
			}

			for _, base := range scopeRoots[scope] {
				if r.DependsOn != "" && !probe.FileExists(filepath.Join(base, r.DependsOn)) {
					continue
				}

				if !s.evaluate(ctx, r, base) {
					continue
				}

				for _, em := range r.Emissions {
					key := r.Artifact + "\x00" + string(em.Category)
					if _, dup := emitted[key]; dup {
						continue
					}
					emitted[key] = struct{}{}
					detections = append(detections, buildDetection(r, em, scope))
				}

				// Project scope has one root; stopping after the first match
				// documents the first-match-wins contract for wider scopes.
				if scope == taxonomy.ScopeProject {
					break
				}
			}
		}
	}

	detections = append(detections, s.monorepoBonuses(workspaces)...)

	// The MCP SDK detection feeds the pioneer subsystem directly rather than
	// through a nil taxonomy match.
	for i := range detections {
		if detections[i].ID == "ufs:mcp-sdk:pioneer" {
			if detections[i].Details == nil {
				detections[i].Details = map[string]any{}
			}
			detections[i].Details["pioneer"] = true
		}
	}

	return detections, nil
}

func buildDetection(r rule, em emission, scope taxonomy.Scope) taxonomy.Detection {
	source := r.Artifact
	if r.Artifact == artifactHandoff {
		source = "handoff*"
	}
	if scope != taxonomy.ScopeProject {
		source = fmt.Sprintf("%s [%s]", source, scope)
	}

	match := em.ID
	points := em.Points
	return taxonomy.Detection{
		ID:            em.ID,
		Category:      em.Category,
		Name:          em.Signal,
		Source:        source,
		Confidence:    taxonomy.ConfidenceHigh,
		Tier:          em.Tier,
		TaxonomyMatch: &match,
		Points:        &points,
		ScanScope:     scope,
	}
}

// monorepoBonuses awards flat detections for large, consistently configured
// workspaces.
func (s *UniversalScanner) monorepoBonuses(workspaces []string) []taxonomy.Detection {
	if len(workspaces) <= 5 {
		return nil
	}

	var out []taxonomy.Detection

	id := "ufs:monorepo:large"
	points := 3
	out = append(out, taxonomy.Detection{
		ID:            id,
		Category:      taxonomy.Ops,
		Name:          "Monorepo >5 workspaces",
		Source:        fmt.Sprintf("%d workspaces", len(workspaces)),
		Confidence:    taxonomy.ConfidenceHigh,
		Tier:          taxonomy.TierBasic,
		TaxonomyMatch: &id,
		Points:        &points,
		ScanScope:     taxonomy.ScopeProject,
	})

	withContext := 0
	for _, ws := range workspaces {
		if probe.FileExists(filepath.Join(ws, "CLAUDE.md")) {
			withContext++
		}
	}
	if float64(withContext) >= float64(len(workspaces))*0.5 {
		cid := "ufs:monorepo:ai-consistent"
		cpoints := 5
		out = append(out, taxonomy.Detection{
			ID:            cid,
			Category:      taxonomy.Tooling,
			Name:          "Consistent AI config across workspaces",
			Source:        fmt.Sprintf("%d/%d workspaces with CLAUDE.md", withContext, len(workspaces)),
			Confidence:    taxonomy.ConfidenceHigh,
			Tier:          taxonomy.TierBasic,
			TaxonomyMatch: &cid,
			Points:        &cpoints,
			ScanScope:     taxonomy.ScopeProject,
		})
	}

	return out
}

// ---------------------------------------------------------------------------
// Check evaluators
// ---------------------------------------------------------------------------

func (s *UniversalScanner) evaluate(ctx context.Context, r rule, base string) bool {
	if r.Artifact == artifactHandoff {
		return hasHandoffFiles(base)
	}

	switch r.Check {
	case checkExists:
		return probe.FileExists(filepath.Join(base, r.Artifact))
	case checkLineCount:
		return lineCountExceeds(filepath.Join(base, r.Artifact), int(r.Threshold))
	case checkDirChildren:
		entries, ok := probe.DirEntries(filepath.Join(base, r.Artifact))
		return ok && len(entries) > int(r.Threshold)
	case checkGrepKeywords:
		return grepKeywords(base, r.Artifact, r.Keywords, r.Threshold)
	case checkJSONField:
		return jsonFieldExceeds(filepath.Join(base, r.Artifact), r.JSONPath, int(r.Threshold))
	case checkShell:
		return shellHasEvidence(ctx, base, r.Artifact)
	case checkTestRatio:
		pass, _, _, _ := testRatio(base, r.Threshold)
		return pass
	case checkFilePermission:
		mode, ok := probe.FileMode(filepath.Join(base, r.Artifact))
		return ok && mode <= 0o600
	default:
		return false
	}
}

func lineCountExceeds(path string, threshold int) bool {
	count, ok := probe.LineCount(path)
	return ok && count > threshold
}

// grepKeywords matches case-insensitive substrings in file contents. For
// directory artifacts the match runs against entry names instead. A non-zero
// threshold additionally enforces the line-count condition on files.
func grepKeywords(base, artifact string, keywords []string, threshold float64) bool {
	if strings.HasSuffix(artifact, "/") {
		entries, ok := probe.DirEntries(filepath.Join(base, artifact))
		if !ok {
			return false
		}
		for _, e := range entries {
			name := strings.ToLower(e.Name())
			for _, k := range keywords {
				if strings.Contains(name, strings.ToLower(k)) {
					return true
				}
			}
		}
		return false
	}

	content, ok := probe.ReadFile(filepath.Join(base, artifact))
	if !ok {
		return false
	}
	if threshold > 0 && strings.Count(content, "\n")+1 <= int(threshold) {
		return false
	}

	lower := strings.ToLower(content)
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// jsonFieldExceeds passes when data[jsonPath] is a non-empty object with more
// than threshold keys.
func jsonFieldExceeds(path, jsonPath string, threshold int) bool {
	var data map[string]any
	if !probe.ReadJSON(path, &data) {
		return false
	}
	field, ok := data[jsonPath].(map[string]any)
	if !ok {
		return false
	}
	return len(field) > threshold
}

func shellHasEvidence(ctx context.Context, dir, cmd string) bool {
	out, ok := probe.ShellOutput(ctx, dir, cmd, probe.DefaultShellTimeout)
	if !ok || out == "" {
		return false
	}
	lower := strings.ToLower(out)
	for _, k := range shellEvidence {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

var testFilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.test\.`),
	regexp.MustCompile(`\.spec\.`),
	regexp.MustCompile(`__tests__`),
	regexp.MustCompile(`test_`),
	regexp.MustCompile(`_test\.`),
}

var sourceExtensions = []string{".ts", ".js", ".py", ".go", ".rs"}

var skipWalkDirs = map[string]struct{}{
	"node_modules": {}, ".git": {}, "dist": {}, "build": {},
}

// testRatio counts test vs. non-test source files under the conventional
// source directories, depth-bounded. The testRatioPenalty sentinel passes
// when a project has more than 5 source files and no tests at all.
func testRatio(base string, threshold float64) (pass bool, ratio float64, srcCount, testCount int) {
	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		if depth > 4 {
			return
		}
		entries, ok := probe.DirEntries(dir)
		if !ok {
			return
		}
		for _, e := range entries {
			if _, skip := skipWalkDirs[e.Name()]; skip {
				continue
			}
			full := filepath.Join(dir, e.Name())
			if e.IsDir() {
				walk(full, depth+1)
				continue
			}
			isSource := false
			for _, ext := range sourceExtensions {
				if strings.HasSuffix(e.Name(), ext) {
					isSource = true
					break
				}
			}
			if !isSource {
				continue
			}
			isTest := false
			for _, p := range testFilePatterns {
				if p.MatchString(e.Name()) {
					isTest = true
					break
				}
			}
			if isTest {
				testCount++
			} else {
				srcCount++
			}
		}
	}

	for _, d := range []string{"src", "app", "lib"} {
		walk(filepath.Join(base, d), 0)
	}

	if threshold == testRatioPenalty {
		return srcCount > 5 && testCount == 0, 0, srcCount, testCount
	}
	if srcCount == 0 {
		return false, 0, srcCount, testCount
	}
	ratio = float64(testCount) / float64(srcCount)
	return ratio > threshold, ratio, srcCount, testCount
}

func hasHandoffFiles(base string) bool {
	entries, ok := probe.DirEntries(base)
	if !ok {
		return false
	}
	for _, e := range entries {
		name := strings.ToLower(e.Name())
		if strings.HasPrefix(name, "handoff") ||
			strings.HasPrefix(name, "handover") ||
			strings.HasPrefix(name, "session-state") {
			return true
		}
	}
	return false
}
