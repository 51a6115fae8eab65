package scanner

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/example/vibescan/internal/probe"
	"github.com/example/vibescan/internal/taxonomy"
)

var deployWorkflowRe = regexp.MustCompile(`(?i)deploy|release|publish|cd\b`)
var deployScriptNameRe = regexp.MustCompile(`(?i)deploy|release|publish|ship`)

// DeployScanner detects hosting platform configs, container files, and
// deploy tooling.
type DeployScanner struct {
	opts Options
}

func NewDeployScanner(opts Options) *DeployScanner {
	return &DeployScanner{opts: opts}
}

func (s *DeployScanner) Name() string { return "deploy" }

func (s *DeployScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	var findings []taxonomy.RawFinding
	project := s.opts.ProjectDir

	deployConfigs := []struct {
		file string
		id   string
	}{
		{".vercel/project.json", "vercel"},
		{"vercel.json", "vercel"},
		{"netlify.toml", "netlify"},
		{"fly.toml", "fly"},
		{"railway.json", "railway"},
		{"render.yaml", "render"},
		{"wrangler.toml", "cloudflare-workers"},
	}
	seenDeploy := map[string]struct{}{}
	for _, dc := range deployConfigs {
		if _, dup := seenDeploy[dc.id]; dup {
			continue
		}
		if probe.FileExists(filepath.Join(project, dc.file)) {
			seenDeploy[dc.id] = struct{}{}
			findings = append(findings, taxonomy.RawFinding{
				ID:         dc.id,
				Source:     dc.file,
				Confidence: taxonomy.ConfidenceHigh,
			})
		}
	}

	for _, file := range []string{"Dockerfile", "docker-compose.yml", "docker-compose.yaml"} {
		if probe.FileExists(filepath.Join(project, file)) {
			findings = append(findings, taxonomy.RawFinding{
				ID:         "docker",
				Source:     file,
				Confidence: taxonomy.ConfidenceHigh,
			})
			break
		}
	}

	if workflows, ok := probe.DirEntries(filepath.Join(project, ".github/workflows")); ok {
		for _, wf := range workflows {
			name := wf.Name()
			if !strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml") {
				continue
			}
			content, ok := probe.ReadFile(filepath.Join(project, ".github/workflows", name))
			if ok && deployWorkflowRe.MatchString(content) {
				findings = append(findings, taxonomy.RawFinding{
					ID:         "github-actions",
					Source:     ".github/workflows/" + name,
					Confidence: taxonomy.ConfidenceHigh,
					Details:    map[string]any{"type": "deploy"},
				})
				break
			}
		}
	}

	cliChecks := []struct {
		cmd string
		id  string
	}{
		{"which vercel", "vercel"},
		{"which netlify", "netlify"},
		{"which wrangler", "cloudflare-workers"},
	}
	for _, c := range cliChecks {
		if _, dup := seenDeploy[c.id]; dup {
			continue
		}
		if out, ok := probe.ShellOutput(ctx, s.opts.HomeDir, c.cmd, 0); ok && out != "" {
			seenDeploy[c.id] = struct{}{}
			findings = append(findings, taxonomy.RawFinding{
				ID:         c.id,
				Source:     c.cmd,
				Confidence: taxonomy.ConfidenceMedium,
			})
		}
	}

	// Nothing found yet: infer the platform from deploy scripts.
	if len(findings) == 0 {
		var pkg struct {
			Scripts map[string]string `json:"scripts"`
		}
		if probe.ReadJSON(filepath.Join(project, "package.json"), &pkg) {
			var values []string
			for name, value := range pkg.Scripts {
				if deployScriptNameRe.MatchString(name) {
					values = append(values, value)
				}
			}
			combined := strings.Join(values, " ")
			if strings.Contains(strings.ToLower(combined), "vercel") {
				findings = append(findings, taxonomy.RawFinding{
					ID:         "vercel",
					Source:     "package.json",
					Confidence: taxonomy.ConfidenceMedium,
				})
			}
			if strings.Contains(strings.ToLower(combined), "netlify") {
				findings = append(findings, taxonomy.RawFinding{
					ID:         "netlify",
					Source:     "package.json",
					Confidence: taxonomy.ConfidenceMedium,
				})
			}
		}
	}

	return s.opts.Registry.Classify(findings), nil
}
