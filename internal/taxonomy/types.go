package taxonomy

// Category is one of the 8 fixed scoring buckets.
type Category string

const (
	Intelligence Category = "intelligence"
	Tooling      Category = "tooling"
	Continuity   Category = "continuity"
	Autonomy     Category = "autonomy"
	Ship         Category = "ship"
	Security     Category = "security"
	Ops          Category = "ops"
	Social       Category = "social"
)

// Categories lists every category in canonical order. Score output follows
// this order so results are stable across runs.
var Categories = []Category{
	Intelligence,
	Tooling,
	Continuity,
	Autonomy,
	Ship,
	Security,
	Ops,
	Social,
}

// CategoryWeights sum to 1.00.
var CategoryWeights = map[Category]float64{
	Intelligence: 0.15,
	Tooling:      0.15,
	Continuity:   0.13,
	Autonomy:     0.15,
	Ship:         0.15,
	Security:     0.12,
	Ops:          0.10,
	Social:       0.05,
}

// Tier ranks the strength of a single detection.
type Tier string

const (
	TierBasic        Tier = "basic"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
	TierElite        Tier = "elite"
)

// TierPoints is the default score contribution per tier, used when a
// detection carries no explicit point value.
var TierPoints = map[Tier]int{
	TierBasic:        5,
	TierIntermediate: 15,
	TierAdvanced:     25,
	TierElite:        35,
}

var tierRank = map[Tier]int{
	TierBasic:        0,
	TierIntermediate: 1,
	TierAdvanced:     2,
	TierElite:        3,
}

// Rank returns the ordinal position of the tier (basic=0 .. elite=3).
func (t Tier) Rank() int { return tierRank[t] }

// Confidence grades how sure a scanner is about a detection.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Scope is the root-directory breadth a rule was evaluated against.
type Scope string

const (
	ScopeProject   Scope = "project"
	ScopeWorkspace Scope = "workspace"
	ScopeGlobal    Scope = "global"
)

// Detection is one normalized piece of evidence that a specific AI-tooling
// practice or artifact is present. Immutable once created.
type Detection struct {
	ID         string     `json:"id"`
	Category   Category   `json:"category"`
	Name       string     `json:"name"`
	Source     string     `json:"source"`
	Confidence Confidence `json:"confidence"`
	Tier       Tier       `json:"tier"`

	// TaxonomyMatch is the registry id this detection maps to. nil marks an
	// innovation candidate (the pioneer subsystem keys off this).
	TaxonomyMatch *string `json:"taxonomyMatch"`

	// Points, when set, overrides the tier-implied score contribution.
	Points *int `json:"points,omitempty"`

	Details   map[string]any `json:"details,omitempty"`
	ScanScope Scope          `json:"scanScope,omitempty"`
}

// PointValue returns the score contribution of the detection.
func (d Detection) PointValue() int {
	if d.Points != nil {
		return *d.Points
	}
	return TierPoints[d.Tier]
}
