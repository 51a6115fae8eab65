package scanner

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/example/vibescan/internal/probe"
	"github.com/example/vibescan/internal/taxonomy"
)

var dailyLogRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.md$`)
var headerRe = regexp.MustCompile(`(?m)^##?\s+`)

func complexityForLines(lines int) taxonomy.Tier {
	switch {
	case lines >= 100:
		return taxonomy.TierElite
	case lines >= 50:
		return taxonomy.TierAdvanced
	case lines >= 20:
		return taxonomy.TierIntermediate
	default:
		return taxonomy.TierBasic
	}
}

// MemoryScanner finds persistent-context artifacts: instruction files, memory
// directories, split rules, and dated work logs.
type MemoryScanner struct {
	opts Options
}

func NewMemoryScanner(opts Options) *MemoryScanner {
	return &MemoryScanner{opts: opts}
}

func (s *MemoryScanner) Name() string { return "memory" }

func (s *MemoryScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	var findings []taxonomy.RawFinding
	project := s.opts.ProjectDir

	projectClaudeMD, hasProject := probe.ReadFile(filepath.Join(project, "CLAUDE.md"))
	if hasProject {
		lines := strings.Count(projectClaudeMD, "\n") + 1
		sections := len(headerRe.FindAllString(projectClaudeMD, -1))
		findings = append(findings, taxonomy.RawFinding{
			ID:         "claude-md",
			Source:     "CLAUDE.md",
			Confidence: taxonomy.ConfidenceHigh,
			Details: map[string]any{
				"lineCount":  lines,
				"sections":   sections,
				"complexity": string(complexityForLines(lines)),
			},
		})
	} else if globalClaudeMD, ok := probe.ReadFile("~/.claude/CLAUDE.md"); ok {
		lines := strings.Count(globalClaudeMD, "\n") + 1
		findings = append(findings, taxonomy.RawFinding{
			ID:         "claude-md",
			Source:     "~/.claude/CLAUDE.md",
			Confidence: taxonomy.ConfidenceHigh,
			Details: map[string]any{
				"lineCount":  lines,
				"complexity": string(complexityForLines(lines)),
			},
		})
	}

	if memories, ok := probe.DirEntries("~/.claude/memories"); ok && len(memories) > 0 {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "claude-memories",
			Source:     "~/.claude/memories/",
			Confidence: taxonomy.ConfidenceHigh,
			Details:    map[string]any{"fileCount": len(memories)},
		})
	}

	if rules, ok := probe.DirEntries(filepath.Join(project, ".claude/rules")); ok && len(rules) > 0 {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "split-rules",
			Source:     ".claude/rules/",
			Confidence: taxonomy.ConfidenceHigh,
			Details:    map[string]any{"ruleCount": len(rules)},
		})
	}

	if probe.FileExists(filepath.Join(project, "MEMORY.md")) {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "memory-md",
			Source:     "MEMORY.md",
			Confidence: taxonomy.ConfidenceHigh,
		})
	}

	for _, dir := range []string{"logs", "daily", ".logs", ".daily"} {
		entries, ok := probe.DirEntries(filepath.Join(project, dir))
		if !ok {
			continue
		}
		logCount := 0
		for _, e := range entries {
			if dailyLogRe.MatchString(e.Name()) {
				logCount++
			}
		}
		if logCount > 0 {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "daily-logs",
				Source:     dir + "/",
				Confidence: taxonomy.ConfidenceHigh,
				Details:    map[string]any{"logCount": logCount},
			})
			break
		}
	}

	ruleFiles := []struct {
		file string
		id   string
	}{
		{".cursorrules", "cursorrules"},
		{".windsurfrules", "windsurfrules"},
		{".github/copilot-instructions.md", "copilot-instructions"},
	}
	for _, f := range ruleFiles {
		if probe.FileExists(filepath.Join(project, f.file)) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         f.id,
				Source:     f.file,
				Confidence: taxonomy.ConfidenceHigh,
			})
		}
	}

	return s.opts.Registry.Classify(findings), nil
}
