package scanner

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/example/vibescan/internal/probe"
	"github.com/example/vibescan/internal/taxonomy"
)

var slackWebhookRe = regexp.MustCompile(`(?i)SLACK_WEBHOOK|slack.*webhook`)
var discordWebhookRe = regexp.MustCompile(`(?i)DISCORD_WEBHOOK|DISCORD_BOT_TOKEN|discord.*webhook`)

type packageManifest struct {
	Name    string `json:"name"`
	Private *bool  `json:"private"`
}

// SocialScanner looks for public-facing signals: GitHub remotes, published
// packages, and chat webhooks.
type SocialScanner struct {
	opts Options
}

func NewSocialScanner(opts Options) *SocialScanner {
	return &SocialScanner{opts: opts}
}

func (s *SocialScanner) Name() string { return "social" }

func (s *SocialScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	var findings []taxonomy.RawFinding
	project := s.opts.ProjectDir

	if remotes, ok := probe.ShellOutput(ctx, project, "git remote -v", 0); ok {
		if strings.Contains(strings.ToLower(remotes), "github.com") {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "github-repos",
				Source:     "git remote -v",
				Confidence: taxonomy.ConfidenceMedium,
			})
		}
	}

	var pkg packageManifest
	hasPkg := probe.ReadJSON(filepath.Join(project, "package.json"), &pkg)
	if hasPkg && pkg.Private != nil && !*pkg.Private {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "npm-public",
			Source:     "package.json",
			Confidence: taxonomy.ConfidenceHigh,
			Details:    map[string]any{"packageName": pkg.Name},
		})
	}

	for _, file := range []string{".env", ".env.local", "package.json"} {
		content, ok := probe.ReadFile(filepath.Join(project, file))
		if !ok {
			continue
		}
		if slackWebhookRe.MatchString(content) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "slack-webhook",
				Source:     file,
				Confidence: taxonomy.ConfidenceMedium,
			})
		}
		if discordWebhookRe.MatchString(content) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "discord-bot",
				Source:     file,
				Confidence: taxonomy.ConfidenceMedium,
			})
		}
	}

	// Scoped package name on a not-explicitly-private package.
	if hasPkg && strings.HasPrefix(pkg.Name, "@") && (pkg.Private == nil || !*pkg.Private) {
		findings = append(findings, taxonomy.RawFinding{
			ID:         "npm-public",
			Source:     "package.json",
			Confidence: taxonomy.ConfidenceMedium,
			Details:    map[string]any{"scope": strings.SplitN(pkg.Name, "/", 2)[0]},
		})
	}

	return s.opts.Registry.Classify(findings), nil
}
