package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/example/vibescan/internal/scoring"
	"github.com/example/vibescan/internal/taxonomy"
)

var categoryLabels = map[taxonomy.Category]string{
	taxonomy.Intelligence: "Intelligence",
	taxonomy.Tooling:      "Tooling",
	taxonomy.Continuity:   "Continuity",
	taxonomy.Autonomy:     "Autonomy",
	taxonomy.Ship:         "Ship",
	taxonomy.Security:     "Security",
	taxonomy.Ops:          "Ops",
	taxonomy.Social:       "Social",
}

var (
	bold       = color.New(color.Bold)
	dim        = color.New(color.Faint)
	green      = color.New(color.FgGreen)
	yellow     = color.New(color.FgYellow)
	yellowBold = color.New(color.FgYellow, color.Bold)
	red        = color.New(color.FgRed)
	cyan       = color.New(color.FgCyan)
	cyanBold   = color.New(color.FgCyan, color.Bold)
	magenta    = color.New(color.FgMagenta)
)

func scoreColor(score int) *color.Color {
	switch {
	case score >= 50:
		return green
	case score >= 25:
		return yellow
	default:
		return red
	}
}

func tierBadge(tier taxonomy.Tier) string {
	switch tier {
	case taxonomy.TierBasic:
		return dim.Sprint("[basic]")
	case taxonomy.TierIntermediate:
		return cyan.Sprint("[inter]")
	case taxonomy.TierAdvanced:
		return magenta.Sprint("[adv]")
	case taxonomy.TierElite:
		return yellow.Sprint("[elite]")
	}
	return dim.Sprintf("[%s]", tier)
}

// Render prints the human-readable scan summary.
func Render(w io.Writer, score scoring.Result, detections []taxonomy.Detection) {
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s %s\n",
		bold.Sprintf("Level %d", score.Level),
		cyanBold.Sprint(score.Tier.Title),
		dim.Sprintf("[%s]", score.TypeCode.Code))
	if name := scoring.ArchetypeName(score.TypeCode.Code); name != score.TypeCode.Code {
		fmt.Fprintf(w, "  %s\n", dim.Sprint(name))
	}
	fmt.Fprintf(w, "  %s\n\n", dim.Sprint(score.Tier.Tagline))

	fmt.Fprintln(w, bold.Sprint("  Categories"))
	fmt.Fprintln(w, dim.Sprint("  "+strings.Repeat("-", 52)))
	for _, cs := range score.Categories {
		label := fmt.Sprintf("%-14s", categoryLabels[cs.Category])
		top := dim.Sprint("--")
		if cs.DetectionCount > 0 {
			top = tierBadge(cs.TopTier)
		}
		fmt.Fprintf(w, "  %s %s/100  %s  %s\n",
			label,
			scoreColor(cs.Score).Sprintf("%3d", cs.Score),
			dim.Sprintf("%d found", cs.DetectionCount),
			top)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, bold.Sprint("  Detections"))
	fmt.Fprintln(w, dim.Sprint("  "+strings.Repeat("-", 52)))
	for _, cat := range taxonomy.Categories {
		var group []taxonomy.Detection
		for _, d := range detections {
			if d.Category == cat {
				group = append(group, d)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s\n", bold.Sprint(categoryLabels[cat]))
		for _, d := range group {
			marker := ""
			if d.TaxonomyMatch == nil {
				marker = yellow.Sprint(" *")
			}
			conf := ""
			if d.Confidence == taxonomy.ConfidenceLow {
				conf = dim.Sprint(" (low)")
			}
			fmt.Fprintf(w, "     %s %s%s%s\n", tierBadge(d.Tier), d.Name, marker, conf)
			fmt.Fprintf(w, "       %s\n", dim.Sprint(d.Source))
		}
	}
	fmt.Fprintln(w)

	if score.Pioneer.IsPioneer {
		fmt.Fprintln(w, yellowBold.Sprint("  * Pioneer Badge"))
		fmt.Fprintln(w, yellow.Sprintf("    %d innovation(s) detected", len(score.Pioneer.Innovations)))
		for _, inn := range score.Pioneer.Innovations {
			fmt.Fprintln(w, yellow.Sprintf("    -> %s (%s)", inn.Name, inn.Source))
		}
		fmt.Fprintln(w)
	}

	var weakest []scoring.CategoryScore
	for _, c := range score.Categories {
		if c.Score < 50 {
			weakest = append(weakest, c)
		}
	}
	sort.Slice(weakest, func(i, j int) bool { return weakest[i].Score < weakest[j].Score })
	if len(weakest) > 3 {
		weakest = weakest[:3]
	}
	if len(weakest) > 0 {
		fmt.Fprintln(w, bold.Sprint("  Growth areas"))
		for _, c := range weakest {
			fmt.Fprintf(w, "  %s %s: %d/100\n", dim.Sprint("->"), categoryLabels[c.Category], c.Score)
		}
		fmt.Fprintln(w)
	}

	if next := scoring.NextTier(score.Tier.Title); next != nil {
		fmt.Fprintln(w, dim.Sprintf("  Next tier: %s (level %d+)", next.Title, next.MinLevel))
		fmt.Fprintln(w)
	}
}
