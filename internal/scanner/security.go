package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/example/vibescan/internal/probe"
	"github.com/example/vibescan/internal/taxonomy"
)

var gitignoreEnvRe = regexp.MustCompile(`(?m)^\.env`)
var secretExportRe = regexp.MustCompile(`(?m)export\s+\w*(KEY|SECRET|TOKEN|PASSWORD)\w*\s*=`)
var canaryRe = regexp.MustCompile(`(?i)canary|honeypot|tripwire`)
var injectionDefenseRe = regexp.MustCompile(`(?i)prompt.?injection|safety.?boundar|injection.?defense|do not execute`)

// SecurityScanner checks secret hygiene and agent permission scoping. It
// records only the presence of secrets, never their values.
type SecurityScanner struct {
	opts Options
}

func NewSecurityScanner(opts Options) *SecurityScanner {
	return &SecurityScanner{opts: opts}
}

func (s *SecurityScanner) Name() string { return "security" }

func (s *SecurityScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	var findings []taxonomy.RawFinding
	project := s.opts.ProjectDir

	if gitignore, ok := probe.ReadFile(filepath.Join(project, ".gitignore")); ok {
		if gitignoreEnvRe.MatchString(gitignore) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "gitignore-env",
				Source:     ".gitignore",
				Confidence: taxonomy.ConfidenceHigh,
			})
		}
	}

	for _, file := range shellConfigFiles {
		content, ok := probe.ReadFile(file)
		if !ok {
			continue
		}
		if secretExportRe.MatchString(content) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "env-vars",
				Source:     "shell config",
				Confidence: taxonomy.ConfidenceHigh,
			})
			break
		}
	}

	var settings struct {
		AllowedTools    []string       `json:"allowedTools"`
		BlockedCommands []string       `json:"blockedCommands"`
		Permissions     map[string]any `json:"permissions"`
	}
	if probe.ReadJSON(filepath.Join(project, ".claude/settings.json"), &settings) {
		if len(settings.AllowedTools) > 0 || len(settings.BlockedCommands) > 0 || len(settings.Permissions) > 0 {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "agent-permissions",
				Source:     ".claude/settings.json",
				Confidence: taxonomy.ConfidenceMedium,
			})
		}
	}

	sensitiveFiles := []string{"~/.ssh/id_rsa", "~/.ssh/id_ed25519", "~/.env", filepath.Join(project, ".env")}
	sensitiveNames := []string{"~/.ssh/id_rsa", "~/.ssh/id_ed25519", "~/.env", ".env"}
	for i, file := range sensitiveFiles {
		mode, ok := probe.FileMode(file)
		if !ok {
			continue
		}
		perms := mode.Perm()
		if perms <= 0o600 {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "file-permissions",
				Source:     sensitiveNames[i],
				Confidence: taxonomy.ConfidenceHigh,
				Details:    map[string]any{"permissions": fmt.Sprintf("0o%o", perms)},
			})
			break
		}
	}

	for _, file := range []string{"CLAUDE.md", "AGENTS.md", ".claude/settings.json"} {
		content, ok := probe.ReadFile(filepath.Join(project, file))
		if ok && canaryRe.MatchString(content) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "canary-tokens",
				Source:     file,
				Confidence: taxonomy.ConfidenceMedium,
			})
			break
		}
	}

	for _, file := range []string{"CLAUDE.md", "AGENTS.md"} {
		content, ok := probe.ReadFile(filepath.Join(project, file))
		if ok && injectionDefenseRe.MatchString(content) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "prompt-injection-defense",
				Source:     file,
				Confidence: taxonomy.ConfidenceMedium,
			})
			break
		}
	}

	return s.opts.Registry.Classify(findings), nil
}
