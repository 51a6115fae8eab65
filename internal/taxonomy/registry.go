package taxonomy

// RegistryEntry maps a scanner-local finding id to its display name,
// category, and tier.
type RegistryEntry struct {
	ID       string
	Name     string
	Category Category
	Tier     Tier
}

// Registry is the static taxonomy lookup table. Lookup is exact-id and
// case-sensitive; there is no fuzzy matching.
type Registry map[string]RegistryEntry

// NewRegistry builds the built-in taxonomy table. The result is treated as
// read-only after construction and passed by reference.
func NewRegistry() Registry {
	reg := make(Registry, len(registryEntries))
	for _, e := range registryEntries {
		reg[e.ID] = e
	}
	return reg
}

var registryEntries = []RegistryEntry{
	// Model access
	{ID: "anthropic-api-key", Name: "Anthropic API key", Category: Intelligence, Tier: TierBasic},
	{ID: "openai-api-key", Name: "OpenAI API key", Category: Intelligence, Tier: TierBasic},
	{ID: "google-api-key", Name: "Google AI API key", Category: Intelligence, Tier: TierBasic},
	{ID: "xai-api-key", Name: "xAI API key", Category: Intelligence, Tier: TierBasic},
	{ID: "mistral-api-key", Name: "Mistral API key", Category: Intelligence, Tier: TierBasic},
	{ID: "together-api-key", Name: "Together API key", Category: Intelligence, Tier: TierBasic},
	{ID: "groq-api-key", Name: "Groq API key", Category: Intelligence, Tier: TierBasic},
	{ID: "fireworks-api-key", Name: "Fireworks API key", Category: Intelligence, Tier: TierBasic},
	{ID: "azure-openai-api-key", Name: "Azure OpenAI API key", Category: Intelligence, Tier: TierBasic},
	{ID: "model-routing", Name: "Model routing aliases", Category: Intelligence, Tier: TierIntermediate},
	{ID: "local-ollama", Name: "Ollama local models", Category: Intelligence, Tier: TierIntermediate},
	{ID: "local-lmstudio", Name: "LM Studio local models", Category: Intelligence, Tier: TierIntermediate},

	// Coding assistants
	{ID: "claude-code", Name: "Claude Code CLI", Category: Tooling, Tier: TierIntermediate},
	{ID: "codex-cli", Name: "Codex CLI", Category: Tooling, Tier: TierIntermediate},
	{ID: "cursor", Name: "Cursor", Category: Tooling, Tier: TierBasic},
	{ID: "aider", Name: "Aider", Category: Tooling, Tier: TierIntermediate},
	{ID: "gemini-cli", Name: "Gemini CLI", Category: Tooling, Tier: TierBasic},

	// MCP servers
	{ID: "mcp-filesystem", Name: "MCP: filesystem", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-github", Name: "MCP: GitHub", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-obsidian", Name: "MCP: Obsidian", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-supabase", Name: "MCP: Supabase", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-google-drive", Name: "MCP: Google Drive", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-brave-search", Name: "MCP: Brave Search", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-slack", Name: "MCP: Slack", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-puppeteer", Name: "MCP: Puppeteer", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-playwright", Name: "MCP: Playwright", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-postgres", Name: "MCP: Postgres", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-sqlite", Name: "MCP: SQLite", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-sentry", Name: "MCP: Sentry", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-notion", Name: "MCP: Notion", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-linear", Name: "MCP: Linear", Category: Tooling, Tier: TierIntermediate},
	{ID: "mcp-vercel", Name: "MCP: Vercel", Category: Tooling, Tier: TierIntermediate},

	// Agent scaffolding
	{ID: "subagents", Name: "Custom subagents", Category: Autonomy, Tier: TierAdvanced},
	{ID: "agents-md", Name: "AGENTS.md", Category: Autonomy, Tier: TierIntermediate},
	{ID: "soul-md", Name: "SOUL.md", Category: Continuity, Tier: TierIntermediate},
	{ID: "hooks", Name: "Agent hooks", Category: Autonomy, Tier: TierAdvanced},
	{ID: "claude-skills", Name: "Claude skills", Category: Autonomy, Tier: TierAdvanced},

	// Memory and persistence
	{ID: "claude-md", Name: "CLAUDE.md", Category: Tooling, Tier: TierIntermediate},
	{ID: "claude-memories", Name: "Claude memories directory", Category: Continuity, Tier: TierAdvanced},
	{ID: "split-rules", Name: "Split rule files", Category: Tooling, Tier: TierIntermediate},
	{ID: "memory-md", Name: "MEMORY.md", Category: Continuity, Tier: TierIntermediate},
	{ID: "daily-logs", Name: "Daily work logs", Category: Continuity, Tier: TierAdvanced},
	{ID: "evolve-md", Name: "EVOLVE.md", Category: Continuity, Tier: TierIntermediate},
	{ID: "cursorrules", Name: ".cursorrules", Category: Tooling, Tier: TierBasic},
	{ID: "windsurfrules", Name: ".windsurfrules", Category: Tooling, Tier: TierBasic},
	{ID: "copilot-instructions", Name: "Copilot instructions", Category: Tooling, Tier: TierBasic},

	// Orchestration
	{ID: "tmux", Name: "tmux sessions", Category: Autonomy, Tier: TierBasic},
	{ID: "git-worktrees", Name: "Git worktrees", Category: Autonomy, Tier: TierAdvanced},
	{ID: "orchestrator-gastown", Name: "Gas Town orchestrator", Category: Autonomy, Tier: TierElite},
	{ID: "orchestrator-claudeflow", Name: "Claude Flow orchestrator", Category: Autonomy, Tier: TierElite},
	{ID: "orchestrator-openclaw", Name: "OpenClaw orchestrator", Category: Autonomy, Tier: TierElite},
	{ID: "orchestrator-devswarm", Name: "DevSwarm orchestrator", Category: Autonomy, Tier: TierElite},
	{ID: "heartbeat", Name: "Heartbeat loop", Category: Autonomy, Tier: TierIntermediate},
	{ID: "parallel-scripts", Name: "Scheduled agent scripts", Category: Autonomy, Tier: TierIntermediate},
	{ID: "cron-scheduler:heavy", Name: "Heavy cron agent schedule", Category: Autonomy, Tier: TierAdvanced},

	// Security posture
	{ID: "gitignore-env", Name: ".gitignore covers secrets", Category: Security, Tier: TierBasic},
	{ID: "env-vars", Name: "Secrets kept in env vars", Category: Security, Tier: TierBasic},
	{ID: "agent-permissions", Name: "Agent permission scoping", Category: Security, Tier: TierIntermediate},
	{ID: "file-permissions", Name: "Locked-down key files", Category: Security, Tier: TierBasic},
	{ID: "canary-tokens", Name: "Canary tokens", Category: Security, Tier: TierAdvanced},
	{ID: "prompt-injection-defense", Name: "Prompt injection defense", Category: Security, Tier: TierAdvanced},

	// Shipping
	{ID: "github-actions", Name: "GitHub Actions", Category: Ship, Tier: TierIntermediate},
	{ID: "vitest", Name: "Vitest", Category: Ship, Tier: TierIntermediate},
	{ID: "jest", Name: "Jest", Category: Ship, Tier: TierIntermediate},
	{ID: "pytest", Name: "pytest", Category: Ship, Tier: TierIntermediate},
	{ID: "playwright", Name: "Playwright E2E", Category: Ship, Tier: TierAdvanced},
	{ID: "cypress", Name: "Cypress E2E", Category: Ship, Tier: TierAdvanced},
	{ID: "eslint", Name: "ESLint", Category: Ship, Tier: TierBasic},
	{ID: "prettier", Name: "Prettier", Category: Ship, Tier: TierBasic},
	{ID: "biome", Name: "Biome", Category: Ship, Tier: TierBasic},
	{ID: "typescript-strict", Name: "TypeScript strict mode", Category: Ship, Tier: TierIntermediate},
	{ID: "docker", Name: "Docker", Category: Ship, Tier: TierIntermediate},
	{ID: "vercel", Name: "Vercel deploys", Category: Ship, Tier: TierIntermediate},
	{ID: "netlify", Name: "Netlify deploys", Category: Ship, Tier: TierIntermediate},
	{ID: "fly", Name: "Fly.io deploys", Category: Ship, Tier: TierIntermediate},
	{ID: "railway", Name: "Railway deploys", Category: Ship, Tier: TierIntermediate},
	{ID: "render", Name: "Render deploys", Category: Ship, Tier: TierIntermediate},
	{ID: "cloudflare-workers", Name: "Cloudflare Workers", Category: Ship, Tier: TierIntermediate},

	// Process and ops
	{ID: "npm-scripts", Name: "npm lifecycle scripts", Category: Ops, Tier: TierBasic},
	{ID: "maintenance-scripts", Name: "Maintenance scripts", Category: Ops, Tier: TierIntermediate},
	{ID: "kanban-integration", Name: "Kanban integration", Category: Ops, Tier: TierAdvanced},
	{ID: "automated-docs", Name: "Automated docs", Category: Ops, Tier: TierIntermediate},
	{ID: "monitoring-config", Name: "Monitoring config", Category: Ops, Tier: TierAdvanced},
	{ID: "documentation", Name: "Project documentation", Category: Ops, Tier: TierBasic},
	{ID: "task-tracking", Name: "Task tracking", Category: Ops, Tier: TierBasic},
	{ID: "turbo", Name: "Turborepo", Category: Ops, Tier: TierBasic},
	{ID: "nx", Name: "Nx", Category: Ops, Tier: TierBasic},

	// Social
	{ID: "github-repos", Name: "GitHub-hosted repos", Category: Social, Tier: TierBasic},
	{ID: "npm-public", Name: "Public npm package", Category: Social, Tier: TierIntermediate},
	{ID: "slack-webhook", Name: "Slack webhook", Category: Social, Tier: TierIntermediate},
	{ID: "discord-bot", Name: "Discord bot", Category: Social, Tier: TierIntermediate},
}
