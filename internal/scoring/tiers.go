package scoring

type tierBandDef struct {
	min, max int
	title    string
	tagline  string
}

var tierBands = []tierBandDef{
	{0, 10, "Observer", "A tourist in the land of code"},
	{11, 20, "Apprentice", "The AI is just a very chatty GPS"},
	{21, 30, "Practitioner", "You crossed into YOLO mode"},
	{31, 45, "Builder", "The AI becomes a partner"},
	{46, 55, "Operator", "You stop typing syntax. You become a manager"},
	{56, 65, "Commander", "Managing a parallel workforce"},
	{66, 75, "Architect", "You aren't coding anymore"},
	{76, 85, "Orchestrator", "Orchestrating a system of digital workers"},
	{86, 100, "Industrialist", "A self-sustaining software factory"},
}

// NextTier returns the band above the given title, or nil when the title is
// already the highest band or unknown.
type NextTierInfo struct {
	Title    string `json:"title"`
	Tagline  string `json:"tagline"`
	MinLevel int    `json:"minLevel"`
}

func NextTier(currentTitle string) *NextTierInfo {
	for i, t := range tierBands {
		if t.title != currentTitle {
			continue
		}
		if i >= len(tierBands)-1 {
			return nil
		}
		next := tierBands[i+1]
		return &NextTierInfo{Title: next.title, Tagline: next.tagline, MinLevel: next.min}
	}
	return nil
}

// ArchetypeNames maps each 4-letter code to its display name.
var ArchetypeNames = map[string]string{
	"MARD": "The Orchestrator",
	"MARC": "The Methodist",
	"MARL": "The Strategist",
	"MACD": "The Planner",
	"MACL": "The Analyst",
	"MGRD": "The Engineer",
	"MGRL": "The Pragmatist",
	"MGCD": "The Sentinel",
	"MGCL": "The Scholar",
	"VARD": "The Powerhouse",
	"VARL": "The Maverick",
	"VACD": "The Experimenter",
	"VACL": "The Freelancer",
	"VGRD": "The Blitz Builder",
	"VGRL": "The Scrapper",
	"VGCD": "The Tinkerer",
	"VGCL": "The Explorer",
}

// ArchetypeDescriptions maps each 4-letter code to a one-line description.
var ArchetypeDescriptions = map[string]string{
	"MARD": "Deep model expertise, autonomous agents, rigorous shipping, and a deep tool ecosystem. You run a symphony of AI tools.",
	"MARC": "Strategic model selection with autonomous agents, but shipping is measured and deliberate. You build carefully and deploy with confidence.",
	"MARL": "Smart model strategy with autonomous agents and rapid shipping, but a lighter tool footprint. Speed is the priority.",
	"MACD": "Master strategist with autonomous agents and deep tooling, but cautious on shipping. You perfect before you deploy.",
	"MACL": "Strategic thinker with autonomous agents in a lean setup. Quality over quantity, brains over brawn.",
	"MGRD": "Model expertise paired with guided agents and rigorous process. You trust the AI, but you steer the ship.",
	"MGRL": "Smart model use, guided agents, and rapid shipping with a lean stack. Efficient and effective.",
	"MGCD": "Deep model knowledge, guided agents, cautious shipping, deep tools. The fortress. Nothing gets past you.",
	"MGCL": "Thoughtful model strategy in a guided, lean setup. The scholar. Methodical and measured.",
	"VARD": "Velocity-first with autonomous agents, rapid shipping, and deep tooling. An unstoppable force.",
	"VARL": "Speed plus autonomy plus rapid shipping. Light on tools but heavy on output. The maverick.",
	"VACD": "Velocity seeker with autonomous agents, cautious shipping, and deep tools. Tries everything, ships the best.",
	"VACL": "Fast, autonomous, cautious, light. The freelancer. Moves fast but picks battles carefully.",
	"VGRD": "Velocity is the vibe. Ships fast, integrates everything, but keeps the AI on a leash.",
	"VGRL": "Fast, guided, rapid, light. The scrapper. Does more with less and ships it yesterday.",
	"VGCD": "Velocity seeker who tinkers with deep tools under guided supervision. Always on the bleeding edge.",
	"VGCL": "The explorer. Fast-moving, guided, cautious, and light. Just getting started on the journey, but moving quick.",
}

// ArchetypeName resolves a code to its display name, falling back to the
// code itself for codes outside the table.
func ArchetypeName(code string) string {
	if name, ok := ArchetypeNames[code]; ok {
		return name
	}
	return code
}
