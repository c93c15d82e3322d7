package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-agent/internal/types"
)

func specWithTiers(tiers map[string]types.CompetencyTier) *types.InterviewSpec {
	spec := &types.InterviewSpec{}
	for id, tier := range tiers {
		spec.Competencies = append(spec.Competencies, types.SelectedCompetency{
			CompetencyID: id,
			Tier:         tier,
		})
	}
	return spec
}

func scoresAt(levels map[string]int) map[string]*types.CompetencyScore {
	scores := make(map[string]*types.CompetencyScore, len(levels))
	for id, level := range levels {
		s := NewScore(id)
		s.CurrentLevel = level
		scores[id] = s
	}
	return scores
}

func TestOverallCriticalGate(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	spec := specWithTiers(map[string]types.CompetencyTier{
		"structuring":   types.TierCritical,
		"communication": types.TierImportant,
	})

	// A failing critical competency caps the overall at 2 even when
	// everything else is strong.
	scores := scoresAt(map[string]int{
		"structuring":   2,
		"communication": 5,
	})
	assert.Equal(t, 2, agg.Overall(scores, spec))

	// The cap truncates the critical mean rather than rounding it up.
	spec2 := specWithTiers(map[string]types.CompetencyTier{
		"a": types.TierCritical,
		"b": types.TierCritical,
	})
	scores2 := scoresAt(map[string]int{"a": 1, "b": 2})
	assert.Equal(t, 1, agg.Overall(scores2, spec2))
}

func TestOverallBonusCannotRescue(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	spec := specWithTiers(map[string]types.CompetencyTier{
		"judgment": types.TierCritical,
		"extra":    types.TierBonus,
	})
	scores := scoresAt(map[string]int{
		"judgment": 2,
		"extra":    5,
	})
	assert.Equal(t, 2, agg.Overall(scores, spec))
}

func TestOverallBonusBoost(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	spec := specWithTiers(map[string]types.CompetencyTier{
		"a":     types.TierCritical,
		"b":     types.TierImportant,
		"c":     types.TierImportant,
		"extra": types.TierBonus,
	})

	// base mean 10/3 ~= 3.33 rounds to 3 on its own
	scores := scoresAt(map[string]int{"a": 3, "b": 3, "c": 4})
	assert.Equal(t, 3, agg.Overall(scores, spec))

	// a strong bonus competency adds (5-3)*0.1 and tips the rounding
	scores["extra"] = func() *types.CompetencyScore {
		s := NewScore("extra")
		s.CurrentLevel = 5
		return s
	}()
	assert.Equal(t, 4, agg.Overall(scores, spec))

	// a weak bonus competency never subtracts
	scores["extra"].CurrentLevel = 1
	assert.Equal(t, 3, agg.Overall(scores, spec))
}

func TestOverallTiesRoundToEven(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	spec := specWithTiers(map[string]types.CompetencyTier{
		"a": types.TierCritical,
		"b": types.TierImportant,
	})

	// 4 and 5 average to 4.5: the tie resolves down to the even 4
	assert.Equal(t, 4, agg.Overall(scoresAt(map[string]int{"a": 4, "b": 5}), spec))

	// 3 and 4 average to 3.5: the tie resolves up to the even 4
	assert.Equal(t, 4, agg.Overall(scoresAt(map[string]int{"a": 3, "b": 4}), spec))
}

func TestOverallCapAtMax(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	spec := specWithTiers(map[string]types.CompetencyTier{
		"a":     types.TierCritical,
		"extra": types.TierBonus,
	})
	scores := scoresAt(map[string]int{"a": 5, "extra": 5})
	assert.Equal(t, 5, agg.Overall(scores, spec))
}

func TestOverallNotAssessedDistinctFromFail(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	spec := specWithTiers(map[string]types.CompetencyTier{
		"a": types.TierCritical,
		"b": types.TierImportant,
	})

	// Nothing assessed yet: overall is 0, never 1.
	scores := InitScores(spec)
	assert.Equal(t, 0, agg.Overall(scores, spec))
	assert.Equal(t, "NOT_ASSESSED", LevelName(0))
	assert.NotEqual(t, LevelName(0), LevelName(1))

	// Unassessed competencies are excluded from the average, not
	// counted as zeros.
	scores["b"].CurrentLevel = 4
	assert.Equal(t, 4, agg.Overall(scores, spec))
}

func TestApplyEvidenceTrail(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	score := NewScore("communication")
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, ev := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
		agg.Apply(score, Observation{Level: 3, Evidence: ev}, i+1, now)
	}

	// Oldest evidence dropped first, trail bounded at the limit.
	require.Len(t, score.Evidence, 5)
	assert.Equal(t, []string{"three", "four", "five", "six", "seven"}, score.Evidence)
	assert.Equal(t, types.ConfidenceHigh, score.Confidence)
}

func TestApplyLevelHistoryOnlyOnChange(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	score := NewScore("structuring")
	now := time.Now()

	agg.Apply(score, Observation{Level: 3, Evidence: "solid framework", Justification: "built a MECE tree"}, 1, now)
	agg.Apply(score, Observation{Level: 3, Evidence: "held structure under pressure"}, 2, now)
	agg.Apply(score, Observation{Level: 4, Evidence: "reprioritized on new data"}, 3, now)

	require.Len(t, score.LevelHistory, 2)
	assert.Equal(t, 3, score.LevelHistory[0].Level)
	assert.Equal(t, 1, score.LevelHistory[0].Exchange)
	assert.Equal(t, "built a MECE tree", score.LevelHistory[0].Justification)
	assert.Equal(t, 4, score.LevelHistory[1].Level)
	assert.Equal(t, 4, score.CurrentLevel)
}

func TestApplyZeroLevelLeavesScoreUntouched(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	score := NewScore("quant")
	agg.Apply(score, Observation{Level: 4, Evidence: "clean sizing"}, 1, time.Now())

	agg.Apply(score, Observation{Level: 0}, 2, time.Now())
	assert.Equal(t, 4, score.CurrentLevel)
	assert.Len(t, score.LevelHistory, 1)
}

func TestApplyFlagDedupe(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	score := NewScore("judgment")
	now := time.Now()

	agg.Apply(score, Observation{Level: 3, RedFlags: []string{"ignores data", ""}, GreenFlags: []string{"asks for constraints"}}, 1, now)
	agg.Apply(score, Observation{Level: 3, RedFlags: []string{"ignores data", "no prioritization"}, GreenFlags: []string{"asks for constraints"}}, 2, now)

	assert.Equal(t, []string{"ignores data", "no prioritization"}, score.RedFlags)
	assert.Equal(t, []string{"asks for constraints"}, score.GreenFlags)
}

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, types.ConfidenceLow, ConfidenceFor(0))
	assert.Equal(t, types.ConfidenceLow, ConfidenceFor(1))
	assert.Equal(t, types.ConfidenceMedium, ConfidenceFor(2))
	assert.Equal(t, types.ConfidenceHigh, ConfidenceFor(3))
	assert.Equal(t, types.ConfidenceHigh, ConfidenceFor(7))
}

func TestLevelNames(t *testing.T) {
	assert.Equal(t, "FAIL", LevelName(1))
	assert.Equal(t, "WEAK", LevelName(2))
	assert.Equal(t, "GOOD_NOT_ENOUGH", LevelName(3))
	assert.Equal(t, "CLEAR_PASS", LevelName(4))
	assert.Equal(t, "OUTSTANDING", LevelName(5))
	assert.Equal(t, "UNKNOWN", LevelName(9))
}
