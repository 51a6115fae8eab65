package scanner

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/example/vibescan/internal/probe"
	"github.com/example/vibescan/internal/taxonomy"
)

// knownMCPServers maps normalized server names to taxonomy ids. Servers not
// listed here classify as custom (innovation candidates).
var knownMCPServers = map[string]string{
	"filesystem":   "mcp-filesystem",
	"github":       "mcp-github",
	"obsidian":     "mcp-obsidian",
	"supabase":     "mcp-supabase",
	"google-drive": "mcp-google-drive",
	"brave-search": "mcp-brave-search",
	"slack":        "mcp-slack",
	"puppeteer":    "mcp-puppeteer",
	"playwright":   "mcp-playwright",
	"postgres":     "mcp-postgres",
	"sqlite":       "mcp-sqlite",
	"sentry":       "mcp-sentry",
	"notion":       "mcp-notion",
	"linear":       "mcp-linear",
	"vercel":       "mcp-vercel",
}

var mcpSettingsPaths = []string{
	"~/.claude/settings.json",
	"~/.claude/settings.local.json",
	"~/Library/Application Support/Claude/claude_desktop_config.json",
	"~/.config/Claude/claude_desktop_config.json",
}

type claudeSettings struct {
	MCPServers map[string]any `json:"mcpServers"`
	Projects   map[string]struct {
		MCPServers map[string]any `json:"mcpServers"`
	} `json:"projects"`
}

// MCPScanner enumerates MCP server configs across the tool-specific config
// file locations plus the project-level .mcp.json, and probes for assistant
// CLIs on PATH.
type MCPScanner struct {
	opts Options
}

func NewMCPScanner(opts Options) *MCPScanner {
	return &MCPScanner{opts: opts}
}

func (s *MCPScanner) Name() string { return "mcp" }

func (s *MCPScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	var findings []taxonomy.RawFinding
	seen := map[string]struct{}{}

	record := func(serverName, source string) {
		normalized := strings.ToLower(serverName)
		id, known := knownMCPServers[normalized]
		if !known {
			id = "mcp-" + normalized
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		f := taxonomy.RawFinding{ID: id, Source: source, Confidence: taxonomy.ConfidenceHigh}
		if !known {
			f.Details = map[string]any{"type": "custom"}
		}
		findings = append(findings, f)
	}

	for _, path := range mcpSettingsPaths {
		var settings claudeSettings
		if !probe.ReadJSON(path, &settings) {
			continue
		}
		for name := range settings.MCPServers {
			record(name, path)
		}
		for _, proj := range settings.Projects {
			for name := range proj.MCPServers {
				record(name, path+" (project)")
			}
		}
	}

	// Project-level .mcp.json: servers live under mcpServers, or at the top
	// level in the older layout.
	var projectMCP map[string]any
	if probe.ReadJSON(filepath.Join(s.opts.ProjectDir, ".mcp.json"), &projectMCP) {
		servers := projectMCP
		if nested, ok := projectMCP["mcpServers"].(map[string]any); ok {
			servers = nested
		}
		for name := range servers {
			record(name, ".mcp.json")
		}
	}

	cliChecks := []struct {
		cmd string
		id  string
	}{
		{"which claude", "claude-code"},
		{"which codex", "codex-cli"},
		{"which cursor", "cursor"},
		{"which aider", "aider"},
		{"which gemini", "gemini-cli"},
	}
	for _, c := range cliChecks {
		if _, dup := seen[c.id]; dup {
			continue
		}
		if out, ok := probe.ShellOutput(ctx, s.opts.HomeDir, c.cmd, 0); ok && out != "" {
			seen[c.id] = struct{}{}
			findings = append(findings, taxonomy.RawFinding{
				ID:         c.id,
				Source:     c.cmd,
				Confidence: taxonomy.ConfidenceHigh,
			})
		}
	}

	// Cursor directory fallback when the binary is not on PATH.
	if _, dup := seen["cursor"]; !dup && probe.FileExists("~/.cursor/") {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "cursor",
			Source:     "~/.cursor/",
			Confidence: taxonomy.ConfidenceMedium,
		})
	}

	return s.opts.Registry.Classify(findings), nil
}
