package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vibescan/internal/taxonomy"
)

func TestDefaultRulesAreValid(t *testing.T) {
	require.NoError(t, validateRules(defaultRules, taxonomy.NewRegistry()))
}

func TestValidateRulesRejectsDuplicateEmissionIDs(t *testing.T) {
	rules := []rule{
		{Artifact: "a.md", Check: checkExists, Scopes: projectScope,
			Emissions: one("dup-id", taxonomy.Tooling, taxonomy.TierBasic, 3, "a")},
		{Artifact: "b.md", Check: checkExists, Scopes: projectScope,
			Emissions: one("dup-id", taxonomy.Tooling, taxonomy.TierBasic, 3, "b")},
	}

	err := validateRules(rules, taxonomy.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dup-id")
}

func TestValidateRulesRejectsUnknownSupersedes(t *testing.T) {
	rules := []rule{
		{Artifact: "a.md", Check: checkExists, Scopes: projectScope, Supersedes: "no-such-id",
			Emissions: one("x", taxonomy.Tooling, taxonomy.TierBasic, 3, "a")},
	}

	err := validateRules(rules, taxonomy.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-id")
}

func TestValidateRulesRejectsOutOfOrderThresholds(t *testing.T) {
	rules := []rule{
		{Artifact: "a.md", Check: checkLineCount, Threshold: 10, Scopes: projectScope,
			Emissions: one("a-small", taxonomy.Tooling, taxonomy.TierBasic, 3, "small")},
		{Artifact: "a.md", Check: checkLineCount, Threshold: 50, Scopes: projectScope,
			Emissions: one("a-big", taxonomy.Tooling, taxonomy.TierIntermediate, 8, "big")},
	}

	err := validateRules(rules, taxonomy.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of order")
}

func TestValidateRulesOrdersPerCheckKind(t *testing.T) {
	rules := []rule{
		{Artifact: "README.md", Check: checkGrepKeywords, Keywords: []string{"badge"}, Scopes: projectScope,
			Emissions: one("r-badges", taxonomy.Ops, taxonomy.TierBasic, 3, "badges")},
		{Artifact: "README.md", Check: checkLineCount, Threshold: 100, Scopes: projectScope,
			Emissions: one("r-rich", taxonomy.Ops, taxonomy.TierIntermediate, 8, "rich")},
		{Artifact: "README.md", Check: checkExists, Scopes: projectScope,
			Emissions: one("r-exists", taxonomy.Ops, taxonomy.TierBasic, 3, "exists")},
	}

	require.NoError(t, validateRules(rules, taxonomy.NewRegistry()),
		"thresholds of different check kinds are not comparable")
}

func TestValidateRulesExemptsDependentRulesFromOrdering(t *testing.T) {
	rules := []rule{
		{Artifact: "a.md", Check: checkExists, Scopes: projectScope,
			Emissions: one("a-exists", taxonomy.Tooling, taxonomy.TierBasic, 3, "exists")},
		{Artifact: "a.md", Check: checkGrepKeywords, Threshold: 50, DependsOn: "other/", Scopes: projectScope,
			Emissions: one("a-pattern", taxonomy.Continuity, taxonomy.TierElite, 20, "pattern")},
	}

	require.NoError(t, validateRules(rules, taxonomy.NewRegistry()))
}

func TestSupersededMapCollectsAllReplacements(t *testing.T) {
	m := SupersededMap()

	require.Contains(t, m, "claude-md")
	assert.Contains(t, m["claude-md"], "ufs:claude-md:deep")
	assert.Contains(t, m["claude-md"], "ufs:claude-md:rich")
	assert.Contains(t, m["claude-md"], "ufs:claude-md:exists")

	require.Contains(t, m, "github-actions")
	assert.Contains(t, m["github-actions"], "ufs:ci:exists")
}
