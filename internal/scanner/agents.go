package scanner

import (
	"context"
	"path/filepath"

	"github.com/example/vibescan/internal/probe"
	"github.com/example/vibescan/internal/taxonomy"
)

// AgentsScanner looks for agent scaffolding in the project: subagent and
// skill directories, behavioral spec files, and hook configuration.
type AgentsScanner struct {
	opts Options
}

func NewAgentsScanner(opts Options) *AgentsScanner {
	return &AgentsScanner{opts: opts}
}

func (s *AgentsScanner) Name() string { return "agents" }

func (s *AgentsScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	var findings []taxonomy.RawFinding
	project := s.opts.ProjectDir

	if agents, ok := probe.DirEntries(filepath.Join(project, ".claude/agents")); ok && len(agents) > 0 {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "subagents",
			Source:     ".claude/agents/",
			Confidence: taxonomy.ConfidenceHigh,
			Details:    map[string]any{"count": len(agents)},
		})
	}

	specialFiles := []struct {
		file string
		id   string
	}{
		{"AGENTS.md", "agents-md"},
		{"SOUL.md", "soul-md"},
	}
	for _, f := range specialFiles {
		if probe.FileExists(filepath.Join(project, f.file)) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         f.id,
				Source:     f.file,
				Confidence: taxonomy.ConfidenceHigh,
			})
		}
	}

	var settings struct {
		Hooks map[string]any `json:"hooks"`
	}
	if probe.ReadJSON(filepath.Join(project, ".claude/settings.json"), &settings) && len(settings.Hooks) > 0 {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "hooks",
			Source:     ".claude/settings.json",
			Confidence: taxonomy.ConfidenceHigh,
			Details:    map[string]any{"hookCount": len(settings.Hooks)},
		})
	}

	if skills, ok := probe.DirEntries(filepath.Join(project, ".claude/skills")); ok && len(skills) > 0 {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "claude-skills",
			Source:     ".claude/skills/",
			Confidence: taxonomy.ConfidenceHigh,
			Details:    map[string]any{"count": len(skills)},
		})
	}

	return s.opts.Registry.Classify(findings), nil
}
