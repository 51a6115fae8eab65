package scanner

import (
	"context"
	"regexp"
	"strings"

	"github.com/example/vibescan/internal/probe"
	"github.com/example/vibescan/internal/taxonomy"
)

var cronAgentRe = regexp.MustCompile(`(?i)claude|agent|heartbeat|sweep|cron.*ai|openclaw|clawdbot`)
var agentPlistRe = regexp.MustCompile(`(?i)claude|claude-?flow|openclaw|devswarm|heartbeat|ai-?agent`)

// OrchestrationScanner probes for multi-agent workflow tooling: tmux, git
// worktrees, orchestrator CLIs, and scheduled agent jobs.
type OrchestrationScanner struct {
	opts Options
}

func NewOrchestrationScanner(opts Options) *OrchestrationScanner {
	return &OrchestrationScanner{opts: opts}
}

func (s *OrchestrationScanner) Name() string { return "orchestration" }

func (s *OrchestrationScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	var findings []taxonomy.RawFinding
	project := s.opts.ProjectDir

	if out, ok := probe.ShellOutput(ctx, s.opts.HomeDir, "which tmux", 0); ok && out != "" {
		hasConf := probe.FileExists("~/.tmux.conf")
		f := taxonomy.RawFinding{ID: "tmux", Source: "which tmux", Confidence: taxonomy.ConfidenceMedium}
		if hasConf {
			f.Source = "~/.tmux.conf"
			f.Confidence = taxonomy.ConfidenceHigh
		}
		findings = append(findings, f)
	}

	if out, ok := probe.ShellOutput(ctx, project, "git worktree list", 0); ok && out != "" {
		count := len(strings.Split(strings.TrimSpace(out), "\n"))
		if count > 1 {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "git-worktrees",
				Source:     "git worktree list",
				Confidence: taxonomy.ConfidenceHigh,
				Details:    map[string]any{"worktreeCount": count},
			})
		}
	}

	orchestrators := []struct {
		cmd string
		id  string
	}{
		{"which gt", "orchestrator-gastown"},
		{"which claude-flow", "orchestrator-claudeflow"},
		{"which openclaw", "orchestrator-openclaw"},
		{"which devswarm", "orchestrator-devswarm"},
	}
	for _, o := range orchestrators {
		if out, ok := probe.ShellOutput(ctx, s.opts.HomeDir, o.cmd, 0); ok && out != "" {
			findings = append(findings, taxonomy.RawFinding{
				ID:         o.id,
				Source:     o.cmd,
				Confidence: taxonomy.ConfidenceHigh,
			})
		}
	}

	for _, path := range []string{"HEARTBEAT.md", "~/HEARTBEAT.md"} {
		candidate := path
		if !strings.HasPrefix(path, "~") {
			candidate = project + "/" + path
		}
		if probe.FileExists(candidate) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "heartbeat",
				Source:     path,
				Confidence: taxonomy.ConfidenceHigh,
			})
			break
		}
	}

	if crontab, ok := probe.ShellOutput(ctx, s.opts.HomeDir, "crontab -l", 0); ok && crontab != "" {
		matches := cronAgentRe.FindAllString(crontab, -1)
		if len(matches) > 0 {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "parallel-scripts",
				Source:     "crontab",
				Confidence: taxonomy.ConfidenceMedium,
				Details:    map[string]any{"type": "crontab", "count": len(matches)},
			})
			if len(matches) >= 5 {
				findings = append(findings, taxonomy.RawFinding{
					ID:         "cron-scheduler:heavy",
					Source:     "crontab",
					Confidence: taxonomy.ConfidenceHigh,
					Details:    map[string]any{"count": len(matches)},
				})
			}
		}
	}

	if plists, ok := probe.DirEntries("~/Library/LaunchAgents"); ok {
		var agentPlists []string
		for _, p := range plists {
			name := p.Name()
			if strings.HasSuffix(name, ".plist") && agentPlistRe.MatchString(name) {
				agentPlists = append(agentPlists, name)
			}
		}
		if len(agentPlists) > 0 {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "parallel-scripts",
				Source:     "~/Library/LaunchAgents/",
				Confidence: taxonomy.ConfidenceMedium,
				Details:    map[string]any{"plists": agentPlists},
			})
		}
	}

	return s.opts.Registry.Classify(findings), nil
}
