package scanner

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/example/vibescan/internal/probe"
	"github.com/example/vibescan/internal/taxonomy"
)

const gitLogLimit = 500

type gitCommit struct {
	Hash       string
	Subject    string
	AuthorName string
	AuthorDate time.Time
	Committer  string
}

type fileChange struct {
	Insertions int
	Deletions  int
	Path       string
}

type commitStats struct {
	Hash            string
	Files           []fileChange
	TotalInsertions int
	TotalDeletions  int
}

type commitType string

const (
	commitConventional commitType = "conventional"
	commitAIGenerated  commitType = "ai_generated"
	commitDescriptive  commitType = "descriptive"
	commitWIP          commitType = "wip"
	commitAIAttributed commitType = "ai_attributed"
)

var (
	conventionalRe  = regexp.MustCompile(`^(feat|fix|chore|docs|style|refactor|test|perf|ci|build|revert)(\(.+\))?!?:\s`)
	aiAttributionRe = regexp.MustCompile(`(?i)co-authored-by:`)
	aiMarkersRe     = regexp.MustCompile(`(?i)\[ai\]|\[claude\]|\[copilot\]|🤖`)
	aiGeneratedRe   = regexp.MustCompile(`^(Update|Fix|Add|Remove|Create|Implement|Refactor)\s\w+$`)
	wipSubjectRe    = regexp.MustCompile(`(?i)^(wip|tmp|asdf|fixup!|squash!)$`)
	aiCoauthorRe    = regexp.MustCompile(`(?i)co-authored-by:\s*.*(claude|copilot|gpt|gemini|cursor|openai|anthropic|github-actions|dependabot)`)
	hashLineRe      = regexp.MustCompile(`^[0-9a-f]{40}$`)
	numstatLineRe   = regexp.MustCompile(`^(\d+|-)\t(\d+|-)\t(.+)$`)
	featureBranchRe = regexp.MustCompile(`^(origin/)?(feature|fix)/`)
	releaseBranchRe = regexp.MustCompile(`release/`)
	semverTagRe     = regexp.MustCompile(`^v?\d+\.\d+\.\d+`)
	testPathRe      = regexp.MustCompile(`\.(test|spec)\.(ts|tsx|js|jsx)$|__tests__/|/test/`)
	docPathRe       = regexp.MustCompile(`(?i)\.(md|rst|txt|adoc)$|docs?/`)
)

// classifyCommit orders the checks by specificity: attribution beats
// convention, convention beats sloppiness.
func classifyCommit(subject string) commitType {
	if aiAttributionRe.MatchString(subject) || aiMarkersRe.MatchString(subject) {
		return commitAIAttributed
	}
	if conventionalRe.MatchString(subject) {
		return commitConventional
	}
	lower := strings.ToLower(strings.TrimSpace(subject))
	if wipSubjectRe.MatchString(lower) || (len(strings.Fields(lower)) == 1 && len(lower) < 8) {
		return commitWIP
	}
	if aiGeneratedRe.MatchString(subject) && len(subject) < 30 {
		return commitAIGenerated
	}
	return commitDescriptive
}

func parseCommitLog(raw string) []gitCommit {
	var commits []gitCommit
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\x00")
		if len(parts) < 5 {
			continue
		}
		date, err := time.Parse("2006-01-02 15:04:05 -0700", parts[3])
		if err != nil {
			continue
		}
		commits = append(commits, gitCommit{
			Hash:       parts[0],
			Subject:    parts[1],
			AuthorName: parts[2],
			AuthorDate: date,
			Committer:  parts[4],
		})
	}
	return commits
}

func parseNumstat(raw string) []commitStats {
	var stats []commitStats
	var current *commitStats

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if hashLineRe.MatchString(trimmed) {
			if current != nil {
				stats = append(stats, *current)
			}
			current = &commitStats{Hash: trimmed}
			continue
		}
		if current == nil {
			continue
		}
		m := numstatLineRe.FindStringSubmatch(trimmed)
		if m == nil || m[1] == "-" || m[2] == "-" {
			continue
		}
		ins, _ := strconv.Atoi(m[1])
		del, _ := strconv.Atoi(m[2])
		current.Files = append(current.Files, fileChange{Insertions: ins, Deletions: del, Path: m[3]})
		current.TotalInsertions += ins
		current.TotalDeletions += del
	}
	if current != nil {
		stats = append(stats, *current)
	}
	return stats
}

func parseRefList(raw string) []string {
	var refs []string
	for _, line := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			refs = append(refs, t)
		}
	}
	return refs
}

// gitDetection builds a detection whose tier follows its point value.
func gitDetection(id string, category taxonomy.Category, points int, name string, details map[string]any) taxonomy.Detection {
	tier := taxonomy.TierBasic
	switch {
	case points >= 10:
		tier = taxonomy.TierAdvanced
	case points > 0:
		tier = taxonomy.TierIntermediate
	}
	fullID := "git:" + id
	p := points
	return taxonomy.Detection{
		ID:            fullID,
		Category:      category,
		Name:          name,
		Source:        "git-history",
		Confidence:    taxonomy.ConfidenceHigh,
		Tier:          tier,
		TaxonomyMatch: &fullID,
		Points:        &p,
		Details:       details,
	}
}

// GitHistoryScanner derives working-style signals from the repository's
// commit log: message discipline, velocity, branch strategy, and time of
// day patterns.
type GitHistoryScanner struct {
	opts Options
	now  func() time.Time
}

func NewGitHistoryScanner(opts Options) *GitHistoryScanner {
	return &GitHistoryScanner{opts: opts, now: time.Now}
}

func (s *GitHistoryScanner) Name() string { return "git-history" }

func (s *GitHistoryScanner) Scan(ctx context.Context) ([]taxonomy.Detection, error) {
	project := s.opts.ProjectDir

	isGit, _ := probe.ShellOutput(ctx, project, "git rev-parse --is-inside-work-tree", 5*time.Second)
	if strings.TrimSpace(isGit) != "true" {
		return nil, nil
	}

	logRaw, _ := probe.ShellOutput(ctx, project,
		"git log --format='%H%x00%s%x00%an%x00%ai%x00%cn' -"+strconv.Itoa(gitLogLimit), 10*time.Second)
	commits := parseCommitLog(logRaw)
	if len(commits) == 0 {
		return nil, nil
	}

	numstatRaw, _ := probe.ShellOutput(ctx, project,
		"git log --format='%H' --numstat -"+strconv.Itoa(gitLogLimit), 10*time.Second)
	branchRaw, _ := probe.ShellOutput(ctx, project, "git branch -a --format='%(refname:short)'", 5*time.Second)
	tagRaw, _ := probe.ShellOutput(ctx, project, "git tag --list", 5*time.Second)

	statsMap := map[string]commitStats{}
	for _, st := range parseNumstat(numstatRaw) {
		statsMap[st.Hash] = st
	}
	branches := parseRefList(branchRaw)
	tags := parseRefList(tagRaw)

	var detections []taxonomy.Detection
	detections = append(detections, analyzeCommitMessages(commits)...)
	detections = append(detections, s.analyzeCommitVelocity(commits, statsMap)...)
	detections = append(detections, analyzeBranchStrategy(branches, tags)...)
	detections = append(detections, analyzeFileTypeDistribution(commits, statsMap)...)
	detections = append(detections, analyzeTimeOfDay(commits)...)

	return detections, nil
}

func analyzeCommitMessages(commits []gitCommit) []taxonomy.Detection {
	var detections []taxonomy.Detection
	counts := map[commitType]int{}
	for _, c := range commits {
		counts[classifyCommit(c.Subject)]++
	}

	total := float64(len(commits))
	pct := func(n int) int { return int(math.Round(float64(n) / total * 100)) }

	if float64(counts[commitConventional])/total > 0.5 {
		detections = append(detections, gitDetection("conventional-commits", taxonomy.Ops, 10,
			"Conventional commits", map[string]any{"ratio": pct(counts[commitConventional])}))
	}
	if counts[commitAIAttributed] > 0 {
		detections = append(detections, gitDetection("ai-attribution", taxonomy.Social, 5,
			"AI attribution in commits", map[string]any{"count": counts[commitAIAttributed]}))
	}
	if float64(counts[commitAIGenerated])/total > 0.8 {
		detections = append(detections, gitDetection("ai-generated-dominant", taxonomy.Ops, -5,
			"AI-generated commit messages dominant", map[string]any{"ratio": pct(counts[commitAIGenerated])}))
	}

	aiCoauthorCount := 0
	for _, c := range commits {
		if aiCoauthorRe.MatchString(c.Subject) {
			aiCoauthorCount++
		}
	}
	if aiCoauthorCount > 0 {
		detections = append(detections, gitDetection("ai-coauthor", taxonomy.Intelligence, 5,
			"AI co-author in commits", map[string]any{"count": aiCoauthorCount}))
	}
	return detections
}

func (s *GitHistoryScanner) analyzeCommitVelocity(commits []gitCommit, statsMap map[string]commitStats) []taxonomy.Detection {
	var detections []taxonomy.Detection

	small, medium, large := 0, 0, 0
	for _, c := range commits {
		size := 0
		if st, ok := statsMap[c.Hash]; ok {
			size = st.TotalInsertions + st.TotalDeletions
		}
		switch {
		case size < 50:
			small++
		case size <= 300:
			medium++
		default:
			large++
		}
	}
	total := float64(len(commits))
	if float64(small)/total > 0.3 && float64(large)/total > 0.3 && float64(medium)/total < 0.2 {
		detections = append(detections, gitDetection("bimodal-commits", taxonomy.Intelligence, 5,
			"Bimodal commit size distribution", map[string]any{
				"smallPct": int(math.Round(float64(small) / total * 100)),
				"largePct": int(math.Round(float64(large) / total * 100)),
			}))
	}

	thirtyDaysAgo := s.now().AddDate(0, 0, -30)
	recent := 0
	for _, c := range commits {
		if c.AuthorDate.After(thirtyDaysAgo) {
			recent++
		}
	}
	if recent == 0 {
		detections = append(detections, gitDetection("stale-repo", taxonomy.Ship, -10,
			"Stale repository (0 commits in 30 days)", nil))
		return detections
	}
	perWeek := float64(recent) / (30.0 / 7.0)
	if perWeek > 5 {
		detections = append(detections, gitDetection("active-velocity", taxonomy.Ship, 10,
			"Active commit velocity", map[string]any{
				"commitsPerWeek": math.Round(perWeek*10) / 10,
				"last30d":        recent,
			}))
	}
	return detections
}

func analyzeBranchStrategy(branches, tags []string) []taxonomy.Detection {
	var detections []taxonomy.Detection

	featureCount := 0
	releaseCount := 0
	for _, b := range branches {
		if featureBranchRe.MatchString(b) {
			featureCount++
		}
		if releaseBranchRe.MatchString(b) {
			releaseCount++
		}
	}
	if featureCount > 0 {
		detections = append(detections, gitDetection("feature-branches", taxonomy.Ops, 5,
			"Feature/fix branch naming", map[string]any{"count": featureCount}))
	}

	semverCount := 0
	for _, t := range tags {
		if semverTagRe.MatchString(t) {
			semverCount++
		}
	}
	if releaseCount > 0 && semverCount > 0 {
		detections = append(detections, gitDetection("release-engineering", taxonomy.Ship, 10,
			"Release engineering", map[string]any{
				"releaseBranches": releaseCount,
				"semverTags":      semverCount,
			}))
	}

	mainBranches := map[string]struct{}{
		"main": {}, "master": {}, "develop": {},
		"origin/main": {}, "origin/master": {}, "origin/develop": {},
	}
	nonMainline := 0
	for _, b := range branches {
		if _, ok := mainBranches[b]; !ok {
			nonMainline++
		}
	}
	if nonMainline > 10 {
		detections = append(detections, gitDetection("chaotic-branches", taxonomy.Ops, -3,
			"Chaotic branch sprawl", map[string]any{"count": nonMainline}))
	}
	return detections
}

func analyzeFileTypeDistribution(commits []gitCommit, statsMap map[string]commitStats) []taxonomy.Detection {
	var detections []taxonomy.Detection

	withTests, withDocs := 0, 0
	for _, c := range commits {
		st, ok := statsMap[c.Hash]
		if !ok {
			continue
		}
		hasTest, hasDoc := false, false
		for _, f := range st.Files {
			if testPathRe.MatchString(f.Path) {
				hasTest = true
			}
			if docPathRe.MatchString(f.Path) {
				hasDoc = true
			}
		}
		if hasTest {
			withTests++
		}
		if hasDoc {
			withDocs++
		}
	}

	total := float64(len(commits))
	if float64(withTests)/total > 0.2 {
		detections = append(detections, gitDetection("test-in-commits", taxonomy.Ship, 10,
			"Tests included in commits", map[string]any{"ratio": int(math.Round(float64(withTests) / total * 100))}))
	}
	if float64(withDocs)/total > 0.1 {
		detections = append(detections, gitDetection("docs-in-commits", taxonomy.Ops, 5,
			"Docs included in commits", map[string]any{"ratio": int(math.Round(float64(withDocs) / total * 100))}))
	}
	return detections
}

func analyzeTimeOfDay(commits []gitCommit) []taxonomy.Detection {
	histogram := make([]int, 24)
	for _, c := range commits {
		histogram[c.AuthorDate.Hour()]++
	}

	sum := func(from, to int) int {
		n := 0
		for h := from; h < to; h++ {
			n += histogram[h]
		}
		return n
	}
	night := sum(0, 6)
	morning := sum(6, 12)
	afternoon := sum(12, 18)
	evening := sum(18, 24)
	total := float64(len(commits))

	pattern := "always_on"
	switch {
	case float64(morning+afternoon)/total > 0.8:
		pattern = "9_to_5"
	case float64(evening+night)/total > 0.6:
		pattern = "night_owl"
	case float64(morning)/total > 0.5:
		pattern = "early_bird"
	}

	return []taxonomy.Detection{gitDetection("time-pattern", taxonomy.Ops, 0,
		"Commit time pattern", map[string]any{
			"pattern":   pattern,
			"histogram": histogram,
			"morning":   morning,
			"afternoon": afternoon,
			"evening":   evening,
			"night":     night,
		})}
}
