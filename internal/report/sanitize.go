package report

import (
	"regexp"
	"strings"

	"github.com/example/vibescan/internal/scanner"
	"github.com/example/vibescan/internal/taxonomy"
)

// Detail keys safe to share outside the machine they were gathered on.
// Everything else is dropped: paths, alias names, plist names, script lists.
var allowedNumericKeys = map[string]struct{}{
	"count": {}, "ratio": {}, "commitsPerWeek": {}, "last30d": {},
	"worktreeCount": {}, "hookCount": {}, "smallPct": {}, "largePct": {},
	"morning": {}, "afternoon": {}, "evening": {}, "night": {},
}

var allowedStringKeys = map[string]struct{}{
	"pattern": {},
}

var shellConfigSourceRe = regexp.MustCompile(`^~/\.(zshrc|bashrc|zprofile|bash_profile)$`)

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	}
	return false
}

func stripDetails(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	clean := map[string]any{}
	for k, v := range details {
		if _, ok := allowedNumericKeys[k]; ok && isNumeric(v) {
			clean[k] = v
			continue
		}
		if _, ok := allowedStringKeys[k]; ok {
			if _, isStr := v.(string); isStr {
				clean[k] = v
			}
		}
	}
	if len(clean) == 0 {
		return nil
	}
	return clean
}

func normalizeSource(source string) string {
	switch {
	case shellConfigSourceRe.MatchString(source):
		return "shell-config"
	case source == "crontab":
		return "crontab"
	case strings.Contains(source, ".claude/agents"):
		return "agents-dir"
	case strings.Contains(source, ".claude/skills"):
		return "skills-dir"
	case strings.Contains(source, ".claude/commands"):
		return "commands-dir"
	case strings.Contains(source, "LaunchAgents"):
		return "launch-agents"
	case strings.Contains(source, ".claude/memories"):
		return "memories-dir"
	}
	return source
}

// Sanitize strips machine-identifying data from an artifact before it leaves
// the machine. The input is not mutated.
func Sanitize(a Artifact) Artifact {
	out := a
	out.Platform = "redacted"

	out.ScanResults = make([]scanner.Result, len(a.ScanResults))
	for i, sr := range a.ScanResults {
		out.ScanResults[i] = scanner.Result{
			Scanner:  sr.Scanner,
			Duration: sr.Duration,
		}
	}

	out.Detections = make([]taxonomy.Detection, len(a.Detections))
	for i, d := range a.Detections {
		clean := d
		clean.Source = normalizeSource(d.Source)
		clean.Details = stripDetails(d.Details)
		out.Detections[i] = clean
	}
	return out
}
