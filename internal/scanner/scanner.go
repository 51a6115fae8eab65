package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/example/vibescan/internal/taxonomy"
)

// Scanner is implemented by modules that can inspect one evidence domain.
type Scanner interface {
	Name() string
	Scan(ctx context.Context) ([]taxonomy.Detection, error)
}

// Result is one scanner's output plus how long it ran.
type Result struct {
	Scanner    string
	Detections []taxonomy.Detection
	Duration   time.Duration
}

// resultJSON is the interchange shape: durations cross machine boundaries as
// integer milliseconds.
type resultJSON struct {
	Scanner    string               `json:"scanner"`
	Detections []taxonomy.Detection `json:"detections"`
	DurationMS int64                `json:"durationMs"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Scanner:    r.Scanner,
		Detections: r.Detections,
		DurationMS: r.Duration.Milliseconds(),
	})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{
		Scanner:    raw.Scanner,
		Detections: raw.Detections,
		Duration:   time.Duration(raw.DurationMS) * time.Millisecond,
	}
	return nil
}

// Options carries the shared environment every scanner constructor needs.
type Options struct {
	ProjectDir string
	HomeDir    string
	Deep       bool
	Registry   taxonomy.Registry
}

// Factory builds a scanner instance.
type Factory func(opts Options) Scanner

// Registry maps scanner names to constructors.
type Registry map[string]Factory

// DefaultRegistry contains the built-in scanners.
var DefaultRegistry = Registry{
	"environment":   func(o Options) Scanner { return NewEnvironmentScanner(o) },
	"mcp":           func(o Options) Scanner { return NewMCPScanner(o) },
	"agents":        func(o Options) Scanner { return NewAgentsScanner(o) },
	"memory":        func(o Options) Scanner { return NewMemoryScanner(o) },
	"orchestration": func(o Options) Scanner { return NewOrchestrationScanner(o) },
	"security":      func(o Options) Scanner { return NewSecurityScanner(o) },
	"social":        func(o Options) Scanner { return NewSocialScanner(o) },
	"repositories":  func(o Options) Scanner { return NewRepositoriesScanner(o) },
	"deploy":        func(o Options) Scanner { return NewDeployScanner(o) },
	"git-history":   func(o Options) Scanner { return NewGitHistoryScanner(o) },
	"universal-file": func(o Options) Scanner { return NewUniversalScanner(o) },
}

// DefaultOrder lists the built-in scanners in merge-precedence order. The
// universal scanner runs last so its detections are considered after the
// legacy set when supersession is applied.
var DefaultOrder = []string{
	"environment",
	"mcp",
	"agents",
	"memory",
	"orchestration",
	"security",
	"social",
	"repositories",
	"deploy",
	"git-history",
	"universal-file",
}

// Build instantiates scanners from the provided names, preserving
// DefaultOrder and dropping duplicates.
func (r Registry) Build(names []string, opts Options) ([]Scanner, error) {
	if len(names) == 0 {
		names = DefaultOrder
	}

	requested := map[string]struct{}{}
	for _, name := range names {
		if _, ok := r[name]; !ok {
			return nil, fmt.Errorf("unknown scanner: %s", name)
		}
		requested[name] = struct{}{}
	}

	var scanners []Scanner
	for _, name := range DefaultOrder {
		if _, ok := requested[name]; !ok {
			continue
		}
		scanners = append(scanners, r[name](opts))
	}
	return scanners, nil
}

// DefaultOptions resolves the project directory and home directory for a scan.
func DefaultOptions(projectDir string, deep bool) Options {
	if projectDir == "" {
		projectDir, _ = os.Getwd()
	}
	home, _ := os.UserHomeDir()
	return Options{
		ProjectDir: projectDir,
		HomeDir:    home,
		Deep:       deep,
		Registry:   taxonomy.NewRegistry(),
	}
}

// MergeDetections flattens scan results into one detection list, unioning by
// id with first-seen precedence, then suppresses every legacy detection whose
// declared universal replacement actually fired in this run. Results must be
// passed in merge-precedence order (legacy scanners before the universal
// scanner); that ordering is a merge contract, not a concurrency one.
func MergeDetections(results []Result, superseded map[string][]string) []taxonomy.Detection {
	seen := map[string]struct{}{}
	var merged []taxonomy.Detection
	for _, r := range results {
		for _, d := range r.Detections {
			if _, dup := seen[d.ID]; dup {
				continue
			}
			seen[d.ID] = struct{}{}
			merged = append(merged, d)
		}
	}

	if len(superseded) == 0 {
		return merged
	}

	filtered := merged[:0]
	for _, d := range merged {
		if replacementFired(d.ID, superseded, seen) {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}

// replacementFired reports whether at least one declared replacement for the
// legacy id was actually emitted. A merely registered replacement that did
// not fire keeps the legacy detection alive.
func replacementFired(legacyID string, superseded map[string][]string, emitted map[string]struct{}) bool {
	for _, repl := range superseded[legacyID] {
		if _, ok := emitted[repl]; ok {
			return true
		}
	}
	return false
}

// UnionByID merges two detection lists by id, first-seen wins. This is the
// cross-machine merge contract for externally supplied detection sets.
func UnionByID(first, second []taxonomy.Detection) []taxonomy.Detection {
	seen := map[string]struct{}{}
	var out []taxonomy.Detection
	for _, list := range [][]taxonomy.Detection{first, second} {
		for _, d := range list {
			if _, dup := seen[d.ID]; dup {
				continue
			}
			seen[d.ID] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

// SortResults orders results by scanner name for stable presentation.
func SortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Scanner < results[j].Scanner
	})
}
