package scanner

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/example/vibescan/internal/probe"
	"github.com/example/vibescan/internal/taxonomy"
)

var devOpsScriptRe = regexp.MustCompile(`^(build|dev|lint|start|test|format|typecheck)$`)
var maintenanceScriptRe = regexp.MustCompile(`clean|migrate|seed|reset|setup|postinstall`)
var kanbanScriptRe = regexp.MustCompile(`(?i)linear|jira|notion|asana`)
var docsScriptRe = regexp.MustCompile(`(?i)typedoc|jsdoc|storybook|docusaurus`)
var monitoringRe = regexp.MustCompile(`(?i)sentry|datadog|newrelic`)
var pyprojectPytestRe = regexp.MustCompile(`(?i)\[tool\.pytest`)
var taskTrackingRe = regexp.MustCompile(`(?i)todo|task|backlog`)

// RepositoriesScanner inspects the project's CI, test, lint, and script
// configuration to infer development discipline.
type RepositoriesScanner struct {
	opts Options
}

func NewRepositoriesScanner(opts Options) *RepositoriesScanner {
	return &RepositoriesScanner{opts: opts}
}

func (s *RepositoriesScanner) Name() string { return "repositories" }

func (s *RepositoriesScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	var findings []taxonomy.RawFinding
	project := s.opts.ProjectDir

	has := func(id string) bool {
		for _, f := range findings {
			if f.ID == id {
				return true
			}
		}
		return false
	}

	if workflows, ok := probe.DirEntries(filepath.Join(project, ".github/workflows")); ok {
		ymlCount := 0
		for _, wf := range workflows {
			if strings.HasSuffix(wf.Name(), ".yml") || strings.HasSuffix(wf.Name(), ".yaml") {
				ymlCount++
			}
		}
		if ymlCount > 0 {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "github-actions",
				Source:     ".github/workflows/",
				Confidence: taxonomy.ConfidenceHigh,
				Details:    map[string]any{"workflowCount": ymlCount},
			})
		}
	}

	configExts := []string{"", ".ts", ".js", ".mjs", ".cjs"}
	frameworkConfigs := []struct {
		base string
		id   string
	}{
		{"vitest.config", "vitest"},
		{"jest.config", "jest"},
		{"pytest.ini", "pytest"},
		{"playwright.config", "playwright"},
		{"cypress.config", "cypress"},
	}
	for _, fc := range frameworkConfigs {
		for _, ext := range configExts {
			file := fc.base + ext
			if probe.FileExists(filepath.Join(project, file)) {
				findings = append(findings, taxonomy.RawFinding{
					ID:         fc.id,
					Source:     file,
					Confidence: taxonomy.ConfidenceHigh,
				})
				break
			}
		}
	}

	qualityConfigs := []struct {
		files []string
		id    string
	}{
		{[]string{"eslint.config.js", "eslint.config.mjs", "eslint.config.cjs", "eslint.config.ts", ".eslintrc", ".eslintrc.js", ".eslintrc.json", ".eslintrc.yml"}, "eslint"},
		{[]string{"prettier.config.js", "prettier.config.mjs", "prettier.config.cjs", ".prettierrc", ".prettierrc.js", ".prettierrc.json", ".prettierrc.yml"}, "prettier"},
		{[]string{"biome.json", "biome.jsonc"}, "biome"},
	}
	for _, qc := range qualityConfigs {
		for _, file := range qc.files {
			if probe.FileExists(filepath.Join(project, file)) {
				findings = append(findings, taxonomy.RawFinding{
					ID:         qc.id,
					Source:     file,
					Confidence: taxonomy.ConfidenceHigh,
				})
				break
			}
		}
	}

	var tsconfig struct {
		CompilerOptions struct {
			Strict bool `json:"strict"`
		} `json:"compilerOptions"`
	}
	if probe.ReadJSON(filepath.Join(project, "tsconfig.json"), &tsconfig) && tsconfig.CompilerOptions.Strict {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "typescript-strict",
			Source:     "tsconfig.json",
			Confidence: taxonomy.ConfidenceHigh,
		})
	}

	if pyproject, ok := probe.ReadFile(filepath.Join(project, "pyproject.toml")); ok {
		if pyprojectPytestRe.MatchString(pyproject) && !has("pytest") {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "pytest",
				Source:     "pyproject.toml",
				Confidence: taxonomy.ConfidenceHigh,
			})
		}
	}

	var pkg struct {
		Scripts         map[string]string `json:"scripts"`
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if probe.ReadJSON(filepath.Join(project, "package.json"), &pkg) && len(pkg.Scripts) > 0 {
		var names, values []string
		for name, value := range pkg.Scripts {
			names = append(names, name)
			values = append(values, value)
		}

		hasDevOps := false
		for _, n := range names {
			if devOpsScriptRe.MatchString(n) {
				hasDevOps = true
				break
			}
		}
		if hasDevOps {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "npm-scripts",
				Source:     "package.json",
				Confidence: taxonomy.ConfidenceHigh,
				Details:    map[string]any{"scripts": names},
			})
		}

		for _, n := range names {
			if maintenanceScriptRe.MatchString(n) {
				findings = append(findings, taxonomy.RawFinding{
					ID:         "maintenance-scripts",
					Source:     "package.json",
					Confidence: taxonomy.ConfidenceMedium,
				})
				break
			}
		}

		joined := strings.Join(values, "\n")
		if kanbanScriptRe.MatchString(joined) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "kanban-integration",
				Source:     "package.json",
				Confidence: taxonomy.ConfidenceMedium,
			})
		}
		if docsScriptRe.MatchString(joined) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "automated-docs",
				Source:     "package.json",
				Confidence: taxonomy.ConfidenceHigh,
			})
		}

		hasMonitoringDep := false
		for dep := range pkg.Dependencies {
			if monitoringRe.MatchString(dep) {
				hasMonitoringDep = true
				break
			}
		}
		if !hasMonitoringDep {
			for dep := range pkg.DevDependencies {
				if monitoringRe.MatchString(dep) {
					hasMonitoringDep = true
					break
				}
			}
		}
		if monitoringRe.MatchString(joined) || hasMonitoringDep {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "monitoring-config",
				Source:     "package.json",
				Confidence: taxonomy.ConfidenceMedium,
			})
		}
	}

	if !has("maintenance-scripts") && probe.FileExists(filepath.Join(project, "Makefile")) {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "maintenance-scripts",
			Source:     "Makefile",
			Confidence: taxonomy.ConfidenceMedium,
		})
	}
	if !has("maintenance-scripts") {
		if _, ok := probe.DirEntries(filepath.Join(project, "scripts")); ok {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "maintenance-scripts",
				Source:     "scripts/",
				Confidence: taxonomy.ConfidenceMedium,
			})
		}
	}

	if probe.FileExists(filepath.Join(project, "README.md")) {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "documentation",
			Source:     "README.md",
			Confidence: taxonomy.ConfidenceHigh,
		})
	}

	if claudeMD, ok := probe.ReadFile(filepath.Join(project, "CLAUDE.md")); ok {
		if taskTrackingRe.MatchString(claudeMD) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "task-tracking",
				Source:     "CLAUDE.md",
				Confidence: taxonomy.ConfidenceMedium,
			})
		}
	}

	if !has("monitoring-config") {
		monitorConfigs := []string{
			"sentry.client.config.ts",
			"sentry.server.config.ts",
			"sentry.config.ts",
			"datadog.config.ts",
		}
		for _, cfg := range monitorConfigs {
			if probe.FileExists(filepath.Join(project, cfg)) {
				findings = append(findings, taxonomy.RawFinding{
					ID:         "monitoring-config",
					Source:     cfg,
					Confidence: taxonomy.ConfidenceHigh,
				})
				break
			}
		}
	}

	return s.opts.Registry.Classify(findings), nil
}
