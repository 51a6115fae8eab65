package scanner

import (
	"context"
	"regexp"
	"strings"

	"github.com/example/vibescan/internal/probe"
	"github.com/example/vibescan/internal/taxonomy"
)

// apiKeyFindings maps exported env var names to taxonomy ids. Only the
// presence of an export is recorded, never the value.
var apiKeyFindings = []struct {
	envVar string
	id     string
}{
	{"ANTHROPIC_API_KEY", "anthropic-api-key"},
	{"OPENAI_API_KEY", "openai-api-key"},
	{"GOOGLE_API_KEY", "google-api-key"},
	{"GEMINI_API_KEY", "google-api-key"},
	{"XAI_API_KEY", "xai-api-key"},
	{"MISTRAL_API_KEY", "mistral-api-key"},
	{"TOGETHER_API_KEY", "together-api-key"},
	{"GROQ_API_KEY", "groq-api-key"},
	{"FIREWORKS_API_KEY", "fireworks-api-key"},
	{"AZURE_OPENAI_API_KEY", "azure-openai-api-key"},
}

var shellConfigFiles = []string{"~/.zshrc", "~/.bashrc", "~/.zprofile", "~/.bash_profile"}

var modelAliasRe = regexp.MustCompile(`(?i)alias\s+(\w+).*model`)

// EnvironmentScanner inspects shell configs for AI provider keys, model
// routing aliases, and local model runners.
type EnvironmentScanner struct {
	opts Options
}

func NewEnvironmentScanner(opts Options) *EnvironmentScanner {
	return &EnvironmentScanner{opts: opts}
}

func (s *EnvironmentScanner) Name() string { return "environment" }

func (s *EnvironmentScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	var findings []taxonomy.RawFinding
	seen := map[string]struct{}{}

	var contents []string
	for _, file := range shellConfigFiles {
		if content, ok := probe.ReadFile(file); ok {
			contents = append(contents, content)
		}
	}
	combined := strings.Join(contents, "\n")

	for _, k := range apiKeyFindings {
		if _, dup := seen[k.id]; dup {
			continue
		}
		pattern := regexp.MustCompile(`(?m)(export\s+)?` + k.envVar + `\s*=`)
		if pattern.MatchString(combined) {
			seen[k.id] = struct{}{}
			findings = append(findings, taxonomy.RawFinding{
				ID:         k.id,
				Source:     "shell config",
				Confidence: taxonomy.ConfidenceHigh,
			})
		}
	}

	var aliases []string
	for _, m := range modelAliasRe.FindAllStringSubmatch(combined, -1) {
		aliases = append(aliases, m[1])
	}
	if len(aliases) > 0 {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "model-routing",
			Source:     "shell config",
			Confidence: taxonomy.ConfidenceMedium,
			Details:    map[string]any{"aliases": aliases},
		})
	}

	if out, ok := probe.ShellOutput(ctx, s.opts.HomeDir, "which ollama", 0); ok && out != "" {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "local-ollama",
			Source:     "which ollama",
			Confidence: taxonomy.ConfidenceHigh,
		})
	}
	if out, ok := probe.ShellOutput(ctx, s.opts.HomeDir, "which lms", 0); ok && out != "" {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "local-lmstudio",
			Source:     "which lms",
			Confidence: taxonomy.ConfidenceHigh,
		})
	}

	return s.opts.Registry.Classify(findings), nil
}
