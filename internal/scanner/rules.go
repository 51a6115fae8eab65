package scanner

import (
	"fmt"

	"github.com/example/vibescan/internal/taxonomy"
)

// checkKind selects the evaluator for a rule.
type checkKind int

const (
	checkExists checkKind = iota
	checkLineCount
	checkDirChildren
	checkGrepKeywords
	checkJSONField
	checkShell
	checkTestRatio
	checkFilePermission
)

// testRatioPenalty is the sentinel threshold meaning "penalize a project with
// >5 source files and zero tests".
const testRatioPenalty = -1

// emission is one category award produced by a passing rule.
type emission struct {
	ID       string
	Category taxonomy.Category
	Tier     taxonomy.Tier
	Points   int
	Signal   string
}

// rule is one declarative check. Artifact is a relative path, a directory
// (trailing slash), or a shell command for checkShell. Rules for the same
// artifact and check kind must be listed highest-threshold-first; within a
// scan only the first passing rule per (artifact, category) emits.
type rule struct {
	Artifact   string
	Check      checkKind
	Threshold  float64
	Keywords   []string
	JSONPath   string
	Scopes     []taxonomy.Scope
	DependsOn  string
	Supersedes string
	Emissions  []emission
}

var projectScope = []taxonomy.Scope{taxonomy.ScopeProject}
var globalScope = []taxonomy.Scope{taxonomy.ScopeGlobal}

// one builds a single-emission rule body.
func one(id string, cat taxonomy.Category, tier taxonomy.Tier, points int, signal string) []emission {
	return []emission{{ID: id, Category: cat, Tier: tier, Points: points, Signal: signal}}
}

// defaultRules is the built-in detection table. Ordering matters: for each
// artifact the most specific (highest threshold) rule comes first so the
// conditional-chain dedup awards only the deepest match.
var defaultRules = []rule{
	// AI tool customization
	{
		Artifact: "CLAUDE.md", Check: checkGrepKeywords, Threshold: 100,
		Keywords: []string{"architecture", "security", "memory", "convention", "principle", "constraint", "pattern", "workflow"},
		Scopes:   projectScope, Supersedes: "claude-md",
		Emissions: []emission{
			{ID: "ufs:claude-md:deep", Category: taxonomy.Tooling, Tier: taxonomy.TierAdvanced, Points: 15, Signal: "CLAUDE.md >100 lines with architecture keywords"},
			{ID: "ufs:claude-md:deep:continuity", Category: taxonomy.Continuity, Tier: taxonomy.TierAdvanced, Points: 10, Signal: "CLAUDE.md deep continuity context"},
			{ID: "ufs:claude-md:deep:autonomy", Category: taxonomy.Autonomy, Tier: taxonomy.TierBasic, Points: 5, Signal: "CLAUDE.md autonomy guidance"},
		},
	},
	{
		Artifact: "CLAUDE.md", Check: checkLineCount, Threshold: 50,
		Scopes: projectScope, Supersedes: "claude-md",
		Emissions: []emission{
			{ID: "ufs:claude-md:rich", Category: taxonomy.Tooling, Tier: taxonomy.TierIntermediate, Points: 8, Signal: "CLAUDE.md >50 lines"},
			{ID: "ufs:claude-md:rich:continuity", Category: taxonomy.Continuity, Tier: taxonomy.TierBasic, Points: 5, Signal: "CLAUDE.md continuity context"},
		},
	},
	{
		Artifact: "CLAUDE.md", Check: checkExists, Scopes: projectScope, Supersedes: "claude-md",
		Emissions: one("ufs:claude-md:exists", taxonomy.Tooling, taxonomy.TierBasic, 3, "CLAUDE.md exists"),
	},

	{
		Artifact: ".claude/", Check: checkGrepKeywords,
		Keywords: []string{"agents", "skills", "rules", "hooks"},
		Scopes:   projectScope,
		Emissions: []emission{
			{ID: "ufs:claude-dir:advanced", Category: taxonomy.Tooling, Tier: taxonomy.TierAdvanced, Points: 15, Signal: ".claude/ with agents/skills/rules/hooks"},
			{ID: "ufs:claude-dir:advanced:autonomy", Category: taxonomy.Autonomy, Tier: taxonomy.TierBasic, Points: 5, Signal: ".claude/ autonomy features"},
		},
	},
	{
		Artifact: ".claude/settings.json", Check: checkLineCount, Threshold: 3, Scopes: projectScope,
		Emissions: one("ufs:claude-settings:custom", taxonomy.Tooling, taxonomy.TierBasic, 5, ".claude/settings.json non-default"),
	},
	{
		Artifact: ".claude/", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:claude-dir:exists", taxonomy.Tooling, taxonomy.TierBasic, 3, ".claude/ directory exists"),
	},

	{
		Artifact: ".cursorrules", Check: checkLineCount, Threshold: 30, Scopes: projectScope, Supersedes: "cursorrules",
		Emissions: one("ufs:cursorrules:rich", taxonomy.Tooling, taxonomy.TierIntermediate, 8, ".cursorrules >30 lines"),
	},
	{
		Artifact: ".cursorrules", Check: checkLineCount, Threshold: 30, Scopes: projectScope,
		Emissions: one("ufs:cursorrules:rich:continuity", taxonomy.Continuity, taxonomy.TierBasic, 5, ".cursorrules continuity"),
	},
	{
		Artifact: ".cursorrules", Check: checkExists, Scopes: projectScope, Supersedes: "cursorrules",
		Emissions: one("ufs:cursorrules:exists", taxonomy.Tooling, taxonomy.TierBasic, 3, ".cursorrules exists"),
	},

	{
		Artifact: ".cursor/rules", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:cursor-dir:rules", taxonomy.Tooling, taxonomy.TierIntermediate, 8, ".cursor/ with rules"),
	},

	{
		Artifact: ".github/copilot-instructions.md", Check: checkLineCount, Threshold: 20, Scopes: projectScope, Supersedes: "copilot-instructions",
		Emissions: one("ufs:copilot-instructions:rich", taxonomy.Tooling, taxonomy.TierIntermediate, 8, "Copilot instructions >20 lines"),
	},
	{
		Artifact: ".github/copilot-instructions.md", Check: checkExists, Scopes: projectScope, Supersedes: "copilot-instructions",
		Emissions: one("ufs:copilot-instructions:exists", taxonomy.Tooling, taxonomy.TierBasic, 3, "Copilot instructions exist"),
	},

	{
		Artifact: "AGENTS.md", Check: checkGrepKeywords, Threshold: 50,
		Keywords: []string{"behavioral", "coordinate", "delegate", "autonomous", "agent", "role", "responsibility"},
		Scopes:   projectScope, Supersedes: "agents-md",
		Emissions: []emission{
			{ID: "ufs:agents-md:deep", Category: taxonomy.Continuity, Tier: taxonomy.TierAdvanced, Points: 15, Signal: "AGENTS.md >50 lines with behavioral keywords"},
			{ID: "ufs:agents-md:deep:autonomy", Category: taxonomy.Autonomy, Tier: taxonomy.TierIntermediate, Points: 10, Signal: "AGENTS.md autonomy coordination"},
		},
	},
	{
		Artifact: "AGENTS.md", Check: checkExists, Scopes: projectScope, Supersedes: "agents-md",
		Emissions: one("ufs:agents-md:exists", taxonomy.Tooling, taxonomy.TierBasic, 3, "AGENTS.md exists"),
	},

	{
		Artifact: "SOUL.md", Check: checkLineCount, Threshold: 20, Scopes: projectScope, Supersedes: "soul-md",
		Emissions: []emission{
			{ID: "ufs:soul-md:rich", Category: taxonomy.Continuity, Tier: taxonomy.TierIntermediate, Points: 10, Signal: "SOUL.md >20 lines"},
			{ID: "ufs:soul-md:rich:intelligence", Category: taxonomy.Intelligence, Tier: taxonomy.TierBasic, Points: 5, Signal: "SOUL.md intelligence spec"},
		},
	},
	{
		Artifact: "SOUL.md", Check: checkExists, Scopes: projectScope, Supersedes: "soul-md",
		Emissions: one("ufs:soul-md:exists", taxonomy.Continuity, taxonomy.TierBasic, 5, "SOUL.md exists"),
	},

	{
		Artifact: "USER.md", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:user-md:exists", taxonomy.Continuity, taxonomy.TierBasic, 3, "USER.md exists"),
	},

	{
		Artifact: ".mcp.json", Check: checkJSONField, JSONPath: "mcpServers", Threshold: 6, Scopes: projectScope,
		Emissions: one("ufs:mcp-json:many", taxonomy.Tooling, taxonomy.TierAdvanced, 15, ".mcp.json >6 servers"),
	},
	{
		Artifact: ".mcp.json", Check: checkJSONField, JSONPath: "mcpServers", Threshold: 3, Scopes: projectScope,
		Emissions: one("ufs:mcp-json:several", taxonomy.Tooling, taxonomy.TierIntermediate, 10, ".mcp.json >3 servers"),
	},
	{
		Artifact: ".mcp.json", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:mcp-json:exists", taxonomy.Tooling, taxonomy.TierBasic, 5, ".mcp.json exists"),
	},

	{
		Artifact: "package.json", Check: checkGrepKeywords,
		Keywords: []string{"@modelcontextprotocol/sdk"}, Scopes: projectScope,
		Emissions: one("ufs:mcp-sdk:pioneer", taxonomy.Tooling, taxonomy.TierElite, 20, "@modelcontextprotocol/sdk in package.json"),
	},

	// Memory and persistence
	{
		Artifact: "memory/heartbeat-state.json", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:memory-dir:heartbeat", taxonomy.Autonomy, taxonomy.TierBasic, 5, "memory/ heartbeat state"),
	},
	{
		Artifact: "memory/active-work.md", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:memory-dir:active", taxonomy.Continuity, taxonomy.TierBasic, 5, "memory/ active work"),
	},
	{
		Artifact: "memory/", Check: checkDirChildren, Threshold: 5, Scopes: projectScope,
		Emissions: one("ufs:memory-dir:rich", taxonomy.Continuity, taxonomy.TierIntermediate, 10, "memory/ >5 dated files"),
	},
	{
		Artifact: "memory/", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:memory-dir:exists", taxonomy.Continuity, taxonomy.TierBasic, 5, "memory/ directory"),
	},

	{
		Artifact: "MEMORY.md", Check: checkLineCount, Threshold: 50, Scopes: projectScope, Supersedes: "memory-md",
		Emissions: one("ufs:memory-md:rich", taxonomy.Continuity, taxonomy.TierIntermediate, 10, "MEMORY.md >50 lines"),
	},
	{
		Artifact: "MEMORY.md", Check: checkExists, Scopes: projectScope, Supersedes: "memory-md",
		Emissions: one("ufs:memory-md:exists", taxonomy.Continuity, taxonomy.TierBasic, 5, "MEMORY.md exists"),
	},

	{
		Artifact: "HEARTBEAT.md", Check: checkExists, Scopes: projectScope, Supersedes: "heartbeat",
		Emissions: one("ufs:heartbeat-md:exists", taxonomy.Autonomy, taxonomy.TierBasic, 5, "HEARTBEAT.md exists"),
	},
	{
		Artifact: "EVOLVE.md", Check: checkExists, Scopes: projectScope, Supersedes: "evolve-md",
		Emissions: one("ufs:evolve-md:exists", taxonomy.Continuity, taxonomy.TierBasic, 5, "EVOLVE.md exists"),
	},

	// handoff* / handover* / session-state* glob
	{
		Artifact: artifactHandoff, Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:handoff:exists", taxonomy.Continuity, taxonomy.TierBasic, 5, "Handoff/session state files"),
	},

	// Project structure
	{
		Artifact: "specs/", Check: checkDirChildren, Threshold: 0, Scopes: projectScope,
		Emissions: one("ufs:specs-dir:exists", taxonomy.Ops, taxonomy.TierIntermediate, 10, "specs/ directory with files"),
	},
	{
		Artifact: "docs/", Check: checkGrepKeywords, Keywords: []string{"PRD"}, Scopes: projectScope,
		Emissions: one("ufs:prd:exists", taxonomy.Ops, taxonomy.TierIntermediate, 10, "PRD document"),
	},

	{
		Artifact: ".", Check: checkTestRatio, Threshold: 0.3, Scopes: projectScope,
		Emissions: one("ufs:test-ratio:high", taxonomy.Ship, taxonomy.TierAdvanced, 15, "Test ratio >0.3"),
	},
	{
		Artifact: ".", Check: checkTestRatio, Threshold: 0.1, Scopes: projectScope,
		Emissions: one("ufs:test-ratio:medium", taxonomy.Ship, taxonomy.TierIntermediate, 8, "Test ratio >0.1"),
	},
	{
		Artifact: ".", Check: checkTestRatio, Threshold: testRatioPenalty, Scopes: projectScope,
		Emissions: one("ufs:test-ratio:zero", taxonomy.Ship, taxonomy.TierBasic, -5, "No tests with >5 source files"),
	},

	{
		Artifact: ".env.example", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:env-example:exists", taxonomy.Social, taxonomy.TierBasic, 5, ".env.example exists"),
	},

	{
		Artifact: "README.md", Check: checkGrepKeywords, Keywords: []string{"![", "badge", "shield"}, Scopes: projectScope,
		Emissions: one("ufs:readme:badges", taxonomy.Ops, taxonomy.TierBasic, 3, "README.md with badges"),
	},
	{
		Artifact: "README.md", Check: checkLineCount, Threshold: 100, Scopes: projectScope, Supersedes: "documentation",
		Emissions: one("ufs:readme:rich", taxonomy.Ops, taxonomy.TierIntermediate, 8, "README.md >100 lines with >3 headers"),
	},
	{
		Artifact: "README.md", Check: checkExists, Scopes: projectScope, Supersedes: "documentation",
		Emissions: one("ufs:readme:exists", taxonomy.Ops, taxonomy.TierBasic, 3, "README.md exists"),
	},

	{
		Artifact: ".github/workflows/", Check: checkDirChildren, Threshold: 1, Scopes: projectScope, Supersedes: "github-actions",
		Emissions: one("ufs:ci:complex", taxonomy.Ship, taxonomy.TierIntermediate, 10, "2+ CI workflow files"),
	},
	{
		Artifact: ".github/workflows/", Check: checkDirChildren, Threshold: 0, Scopes: projectScope, Supersedes: "github-actions",
		Emissions: one("ufs:ci:exists", taxonomy.Ship, taxonomy.TierBasic, 5, "CI workflow exists"),
	},

	{
		Artifact: "Dockerfile", Check: checkExists, Scopes: projectScope, Supersedes: "docker",
		Emissions: one("ufs:docker:exists", taxonomy.Ship, taxonomy.TierBasic, 5, "Dockerfile exists"),
	},
	{
		Artifact: "docker-compose.yml", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:docker-compose:exists", taxonomy.Ship, taxonomy.TierBasic, 5, "docker-compose.yml exists"),
	},

	{
		Artifact: "turbo.json", Check: checkExists, Scopes: projectScope, Supersedes: "turbo",
		Emissions: one("ufs:turbo:exists", taxonomy.Ops, taxonomy.TierBasic, 5, "Turborepo config"),
	},
	{
		Artifact: "nx.json", Check: checkExists, Scopes: projectScope, Supersedes: "nx",
		Emissions: one("ufs:nx:exists", taxonomy.Ops, taxonomy.TierBasic, 5, "Nx config"),
	},

	{
		Artifact: ".github/CODEOWNERS", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:codeowners:exists", taxonomy.Social, taxonomy.TierBasic, 5, "CODEOWNERS file"),
	},
	{
		Artifact: ".github/PULL_REQUEST_TEMPLATE.md", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:pr-template:exists", taxonomy.Social, taxonomy.TierBasic, 3, "PR template"),
	},
	{
		Artifact: "CHANGELOG.md", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:changelog:exists", taxonomy.Ops, taxonomy.TierBasic, 5, "CHANGELOG.md exists"),
	},
	{
		Artifact: ".husky/", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:husky:exists", taxonomy.Ops, taxonomy.TierBasic, 5, "Husky git hooks"),
	},
	{
		Artifact: "LICENSE", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:license:exists", taxonomy.Social, taxonomy.TierBasic, 3, "LICENSE file"),
	},

	// Power-user agent infrastructure
	{
		Artifact: "skills/", Check: checkDirChildren, Threshold: 9, Scopes: projectScope,
		Emissions: one("ufs:openclaw-skills:many", taxonomy.Autonomy, taxonomy.TierElite, 20, "skills/ >9 entries"),
	},
	{
		Artifact: "skills/", Check: checkDirChildren, Threshold: 2, Scopes: projectScope,
		Emissions: one("ufs:openclaw-skills:some", taxonomy.Autonomy, taxonomy.TierAdvanced, 10, "skills/ >2 entries"),
	},
	{
		Artifact: "sops/", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:sops-dir:exists", taxonomy.Ops, taxonomy.TierIntermediate, 10, "sops/ directory"),
	},
	{
		Artifact: "kanban/", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:kanban:exists", taxonomy.Ops, taxonomy.TierAdvanced, 15, "kanban/ directory"),
	},
	{
		Artifact: "IDENTITY.md", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:identity-md:exists", taxonomy.Continuity, taxonomy.TierIntermediate, 8, "IDENTITY.md exists"),
	},
	{
		Artifact: "TOOLS.md", Check: checkLineCount, Threshold: 30, Scopes: projectScope,
		Emissions: one("ufs:tools-md:rich", taxonomy.Tooling, taxonomy.TierIntermediate, 8, "TOOLS.md >30 lines"),
	},
	{
		Artifact: "TOOLS.md", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:tools-md:exists", taxonomy.Tooling, taxonomy.TierBasic, 3, "TOOLS.md exists"),
	},
	{
		Artifact: "obsidian-vault/", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:obsidian-vault:exists", taxonomy.Continuity, taxonomy.TierAdvanced, 15, "obsidian-vault/ directory"),
	},
	{
		Artifact: "scripts/", Check: checkDirChildren, Threshold: 4, Scopes: projectScope,
		Emissions: one("ufs:scripts-dir:many", taxonomy.Ops, taxonomy.TierIntermediate, 10, "scripts/ >4 entries"),
	},
	{
		Artifact: "avatars/", Check: checkExists, Scopes: projectScope,
		Emissions: one("ufs:avatars:exists", taxonomy.Social, taxonomy.TierBasic, 3, "avatars/ directory"),
	},

	// Pattern bonuses: compound signals gated on a second artifact
	{
		Artifact: "MEMORY.md", Check: checkGrepKeywords, Threshold: 50,
		Keywords: []string{"daily", "curated", "active-work", "lesson"},
		DependsOn: "memory/", Scopes: projectScope,
		Emissions: []emission{
			{ID: "pattern:learning-loop", Category: taxonomy.Continuity, Tier: taxonomy.TierElite, Points: 20, Signal: "Learning Loop (MEMORY.md + memory/)"},
			{ID: "pattern:learning-loop:ops", Category: taxonomy.Ops, Tier: taxonomy.TierAdvanced, Points: 10, Signal: "Learning Loop ops maturity"},
		},
	},
	{
		Artifact: "TOOLS.md", Check: checkGrepKeywords,
		Keywords:  []string{"tailscale", "ssh", "mac mini", "VPN", "remote", "machine"},
		DependsOn: "skills/", Scopes: projectScope,
		Emissions: []emission{
			{ID: "pattern:distributed-rig", Category: taxonomy.Autonomy, Tier: taxonomy.TierElite, Points: 20, Signal: "Distributed Rig (TOOLS.md + skills/)"},
			{ID: "pattern:distributed-rig:ops", Category: taxonomy.Ops, Tier: taxonomy.TierAdvanced, Points: 10, Signal: "Distributed Rig ops maturity"},
		},
	},
	{
		Artifact: "AGENTS.md", Check: checkExists, DependsOn: "SOUL.md", Scopes: projectScope,
		Emissions: []emission{
			{ID: "pattern:full-agent-stack", Category: taxonomy.Autonomy, Tier: taxonomy.TierElite, Points: 25, Signal: "Full Agent Stack (AGENTS.md + SOUL.md)"},
			{ID: "pattern:full-agent-stack:continuity", Category: taxonomy.Continuity, Tier: taxonomy.TierElite, Points: 15, Signal: "Full Agent Stack continuity"},
		},
	},

	// Security
	{
		Artifact: "CLAUDE.md", Check: checkGrepKeywords,
		Keywords: []string{"canary", "honeypot", "tripwire"},
		Scopes:   projectScope, Supersedes: "canary-tokens",
		Emissions: one("ufs:security:canary", taxonomy.Security, taxonomy.TierBasic, 5, "Canary keyword in agent config"),
	},
	{
		Artifact: "CLAUDE.md", Check: checkGrepKeywords,
		Keywords: []string{"injection", "defense", "safety boundary"},
		Scopes:   projectScope, Supersedes: "prompt-injection-defense",
		Emissions: one("ufs:security:injection", taxonomy.Security, taxonomy.TierBasic, 5, "Injection defense keywords"),
	},
	{
		Artifact: "CLAUDE.md", Check: checkGrepKeywords,
		Keywords: []string{"require confirmation", "ask first", "ask before", "confirm before"},
		Scopes:   projectScope,
		Emissions: one("ufs:security:confirm", taxonomy.Security, taxonomy.TierBasic, 5, "Confirmation requirement in config"),
	},
	{
		Artifact: ".gitignore", Check: checkGrepKeywords,
		Keywords: []string{".env", "secret", "credential", ".pem", "key"},
		Scopes:   projectScope, Supersedes: "gitignore-env",
		Emissions: one("ufs:security:gitignore", taxonomy.Security, taxonomy.TierBasic, 3, ".gitignore covers secrets"),
	},

	// Deep-only shell checks against the home environment
	{
		Artifact: "crontab -l", Check: checkShell, Scopes: globalScope,
		Emissions: one("ufs:cron:ai", taxonomy.Autonomy, taxonomy.TierBasic, 5, "AI crontab entries"),
	},
	{
		Artifact: "launchctl list", Check: checkShell, Scopes: globalScope,
		Emissions: one("ufs:launchd:ai", taxonomy.Autonomy, taxonomy.TierBasic, 5, "AI launchd services"),
	},
}

// SupersededMap maps each legacy detection id to the universal-scanner
// detection ids that can replace it. The orchestrator drops a legacy
// detection only when one of its replacements actually fired.
func SupersededMap() map[string][]string {
	m := map[string][]string{}
	for _, r := range defaultRules {
		if r.Supersedes == "" {
			continue
		}
		for _, em := range r.Emissions {
			m[r.Supersedes] = append(m[r.Supersedes], em.ID)
		}
	}
	return m
}

// validateRules enforces the table invariants at load time: unique emission
// ids, supersedes backlinks that resolve to known taxonomy ids, and
// highest-threshold-first ordering per (artifact, category, check kind) so
// the conditional-chain dedup stays correct. Thresholds are only comparable
// within one check kind; a keyword rule's threshold says nothing about a
// line-count rule's, so mixed-kind chains order by specificity, not number.
func validateRules(rules []rule, reg taxonomy.Registry) error {
	seenIDs := map[string]struct{}{}
	lastThreshold := map[string]float64{}

	for _, r := range rules {
		if len(r.Emissions) == 0 {
			return fmt.Errorf("rule for %q has no emissions", r.Artifact)
		}
		if len(r.Scopes) == 0 {
			return fmt.Errorf("rule for %q has no scopes", r.Artifact)
		}

		if r.Supersedes != "" {
			if _, ok := reg[r.Supersedes]; !ok {
				return fmt.Errorf("rule for %q supersedes unknown id %q", r.Artifact, r.Supersedes)
			}
		}

		for _, em := range r.Emissions {
			if _, dup := seenIDs[em.ID]; dup {
				return fmt.Errorf("duplicate emission id %q", em.ID)
			}
			seenIDs[em.ID] = struct{}{}
		}

		// Pattern-bonus rules are gated on a second artifact and sit outside
		// the specificity chain for their base path.
		if r.DependsOn != "" {
			continue
		}

		threshold := r.Threshold
		if r.Check == checkExists {
			threshold = -1
		}
		for _, em := range r.Emissions {
			key := fmt.Sprintf("%s\x00%s\x00%d", r.Artifact, em.Category, r.Check)
			if prev, ok := lastThreshold[key]; ok && threshold > prev {
				return fmt.Errorf("rules for %q/%s out of order: threshold %v after %v", r.Artifact, em.Category, threshold, prev)
			}
			lastThreshold[key] = threshold
		}
	}
	return nil
}
