package scoring

import (
	"math"
	"sort"

	"github.com/example/vibescan/internal/taxonomy"
)

// CategoryScore is one category's aggregated result.
type CategoryScore struct {
	Category       taxonomy.Category `json:"category"`
	Score          int               `json:"score"`
	DetectionCount int               `json:"detectionCount"`
	TopTier        taxonomy.Tier     `json:"topTier"`
}

// TypeCode is the 4-letter working-style classification.
type TypeCode struct {
	Code         string `json:"code"`
	Intelligence string `json:"intelligence"`
	Autonomy     string `json:"autonomy"`
	Ship         string `json:"ship"`
	Depth        string `json:"depth"`
}

// PioneerStatus summarizes the innovation candidates found during a scan.
type PioneerStatus struct {
	IsPioneer             bool                 `json:"isPioneer"`
	HighConfidenceCount   int                  `json:"highConfidenceCount"`
	MediumConfidenceCount int                  `json:"mediumConfidenceCount"`
	Innovations           []taxonomy.Detection `json:"innovations"`
}

// TierBand is the level band a score falls into.
type TierBand struct {
	Title   string `json:"title"`
	Tagline string `json:"tagline"`
}

// Result is the full scoring output for one detection set.
type Result struct {
	Level      int             `json:"level"`
	Categories []CategoryScore `json:"categories"`
	Tier       TierBand        `json:"tier"`
	TypeCode   TypeCode        `json:"typeCode"`
	Pioneer    PioneerStatus   `json:"pioneer"`
}

// ComputeCategoryScores aggregates detections into per-category scores in
// canonical category order. Innovation candidates earn a confidence bonus on
// top of their point value.
func ComputeCategoryScores(detections []taxonomy.Detection) []CategoryScore {
	scores := make([]CategoryScore, 0, len(taxonomy.Categories))
	for _, category := range taxonomy.Categories {
		cs := CategoryScore{Category: category, TopTier: taxonomy.TierBasic}
		raw := 0
		for _, d := range detections {
			if d.Category != category {
				continue
			}
			cs.DetectionCount++
			raw += d.PointValue()
			if d.Tier.Rank() > cs.TopTier.Rank() {
				cs.TopTier = d.Tier
			}
			if d.TaxonomyMatch == nil {
				switch d.Confidence {
				case taxonomy.ConfidenceHigh:
					raw += 3
				case taxonomy.ConfidenceMedium:
					raw += 1
				}
			}
		}
		if raw > 100 {
			raw = 100
		}
		if raw < 0 {
			raw = 0
		}
		cs.Score = raw
		scores = append(scores, cs)
	}
	return scores
}

// ComputeLevel collapses category scores into a single weighted level,
// clamped to [0, 100].
func ComputeLevel(categories []CategoryScore) int {
	level := 0.0
	for _, c := range categories {
		level += float64(c.Score) * taxonomy.CategoryWeights[c.Category]
	}
	if level > 100 {
		level = 100
	}
	if level < 0 {
		level = 0
	}
	return int(math.Round(level))
}

// AssignTier maps a level to its band. Levels above every band's range fall
// into the highest band.
func AssignTier(level int) TierBand {
	for _, t := range tierBands {
		if level >= t.min && level <= t.max {
			return TierBand{Title: t.title, Tagline: t.tagline}
		}
	}
	last := tierBands[len(tierBands)-1]
	return TierBand{Title: last.title, Tagline: last.tagline}
}

// ComputeTypeCode derives the 4-letter archetype code. Each axis flips at a
// category score of 50; depth averages tooling, continuity, and ops.
func ComputeTypeCode(categories []CategoryScore) TypeCode {
	scoreOf := func(cat taxonomy.Category) int {
		for _, c := range categories {
			if c.Category == cat {
				return c.Score
			}
		}
		return 0
	}

	pick := func(score int, high, low string) string {
		if score >= 50 {
			return high
		}
		return low
	}

	intelligence := pick(scoreOf(taxonomy.Intelligence), "M", "V")
	autonomy := pick(scoreOf(taxonomy.Autonomy), "A", "G")
	ship := pick(scoreOf(taxonomy.Ship), "R", "C")
	avgDepth := (scoreOf(taxonomy.Tooling) + scoreOf(taxonomy.Continuity) + scoreOf(taxonomy.Ops)) / 3
	depth := pick(avgDepth, "D", "L")

	return TypeCode{
		Code:         intelligence + autonomy + ship + depth,
		Intelligence: intelligence,
		Autonomy:     autonomy,
		Ship:         ship,
		Depth:        depth,
	}
}

// EvaluatePioneer collects innovation candidates (detections with no registry
// match) and applies the pioneer threshold: one high-confidence innovation,
// or three medium-confidence ones. Innovations are sorted by id so the output
// is independent of scanner completion order.
func EvaluatePioneer(detections []taxonomy.Detection) PioneerStatus {
	var innovations []taxonomy.Detection
	high, medium := 0, 0
	for _, d := range detections {
		if d.TaxonomyMatch != nil {
			continue
		}
		innovations = append(innovations, d)
		switch d.Confidence {
		case taxonomy.ConfidenceHigh:
			high++
		case taxonomy.ConfidenceMedium:
			medium++
		}
	}
	sort.Slice(innovations, func(i, j int) bool { return innovations[i].ID < innovations[j].ID })

	return PioneerStatus{
		IsPioneer:             high >= 1 || medium >= 3,
		HighConfidenceCount:   high,
		MediumConfidenceCount: medium,
		Innovations:           innovations,
	}
}

// ComputeScore runs the full pipeline over a merged detection set.
func ComputeScore(detections []taxonomy.Detection) Result {
	categories := ComputeCategoryScores(detections)
	level := ComputeLevel(categories)
	return Result{
		Level:      level,
		Categories: categories,
		Tier:       AssignTier(level),
		TypeCode:   ComputeTypeCode(categories),
		Pioneer:    EvaluatePioneer(detections),
	}
}
