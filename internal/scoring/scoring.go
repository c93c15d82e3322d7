// Package scoring maintains per-competency score cards and folds them
// into a single overall interview level using tiered aggregation.
package scoring

import (
	"math"
	"time"

	"github.com/jonathan/interview-agent/internal/types"
)

// Config holds the aggregation knobs. The defaults encode the tier
// semantics: a critical competency below the gate threshold caps the
// overall level, and bonus competencies can nudge but never carry.
type Config struct {
	// GateThreshold is the minimum level every critical competency must
	// reach before the candidate can score above GateCap overall.
	GateThreshold int
	// GateCap is the ceiling applied when any critical competency sits
	// below GateThreshold.
	GateCap int
	// BonusPivot is the level at which bonus competencies start adding
	// to the average rather than being neutral.
	BonusPivot float64
	// BonusFactor scales how much the bonus-tier mean above the pivot
	// contributes to the base average.
	BonusFactor float64
	// MaxLevel is the scale ceiling.
	MaxLevel int
	// EvidenceLimit bounds the evidence trail kept per competency; the
	// oldest observations are dropped first.
	EvidenceLimit int
}

// DefaultConfig returns the standard 1-5 scale configuration.
func DefaultConfig() Config {
	return Config{
		GateThreshold: 3,
		GateCap:       2,
		BonusPivot:    3,
		BonusFactor:   0.1,
		MaxLevel:      5,
		EvidenceLimit: 5,
	}
}

// Observation is a single per-competency judgment produced by the
// assessment stage. A zero Level means the turn produced no signal for
// this competency and the stored score is left untouched.
type Observation struct {
	Level         int
	Evidence      string
	Justification string
	RedFlags      []string
	GreenFlags    []string
}

// Aggregator applies observations to score cards and computes the
// overall level.
type Aggregator struct {
	cfg Config
}

func NewAggregator(cfg Config) *Aggregator {
	if cfg.MaxLevel == 0 {
		cfg = DefaultConfig()
	}
	return &Aggregator{cfg: cfg}
}

// NewScore returns an empty score card for a competency. Level 0 is the
// explicit not-assessed state, distinct from a level-1 fail.
func NewScore(competencyID string) *types.CompetencyScore {
	return &types.CompetencyScore{
		CompetencyID: competencyID,
		CurrentLevel: 0,
		Evidence:     []string{},
		Confidence:   types.ConfidenceLow,
		LevelHistory: []types.LevelChange{},
		RedFlags:     []string{},
		GreenFlags:   []string{},
	}
}

// InitScores builds the initial score map for every competency the spec
// selects.
func InitScores(spec *types.InterviewSpec) map[string]*types.CompetencyScore {
	scores := make(map[string]*types.CompetencyScore, len(spec.Competencies))
	for _, sel := range spec.Competencies {
		scores[sel.CompetencyID] = NewScore(sel.CompetencyID)
	}
	return scores
}

// Apply merges one observation into the score card. Evidence is kept as
// a bounded trail, flags are deduplicated in insertion order, and the
// level history records an entry only when the level actually moves.
func (a *Aggregator) Apply(score *types.CompetencyScore, obs Observation, exchange int, now time.Time) {
	if score == nil {
		return
	}
	if obs.Evidence != "" {
		score.Evidence = append(score.Evidence, obs.Evidence)
		if limit := a.cfg.EvidenceLimit; limit > 0 && len(score.Evidence) > limit {
			score.Evidence = score.Evidence[len(score.Evidence)-limit:]
		}
	}
	if obs.Level > 0 && obs.Level != score.CurrentLevel {
		justification := obs.Justification
		if justification == "" {
			justification = obs.Evidence
		}
		score.LevelHistory = append(score.LevelHistory, types.LevelChange{
			Level:         obs.Level,
			Exchange:      exchange,
			Justification: justification,
			Timestamp:     now,
		})
		score.CurrentLevel = obs.Level
	}
	score.RedFlags = mergeFlags(score.RedFlags, obs.RedFlags)
	score.GreenFlags = mergeFlags(score.GreenFlags, obs.GreenFlags)
	score.Confidence = ConfidenceFor(len(score.Evidence))
}

// ConfidenceFor derives confidence from the volume of supporting
// evidence.
func ConfidenceFor(evidenceCount int) types.Confidence {
	switch {
	case evidenceCount >= 3:
		return types.ConfidenceHigh
	case evidenceCount >= 2:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// Overall computes the aggregate interview level.
//
// Not-yet-assessed competencies (level 0) are excluded. If any critical
// competency sits below the gate threshold the result is capped: the
// candidate cannot pass on the strength of other tiers. Otherwise the
// critical and important levels are averaged and the bonus tier adds a
// small boost when its own mean exceeds the pivot. A result of 0 means
// nothing has been assessed yet.
func (a *Aggregator) Overall(scores map[string]*types.CompetencyScore, spec *types.InterviewSpec) int {
	if len(scores) == 0 {
		return 0
	}

	var critical, important, bonus []int
	for id, score := range scores {
		if score == nil || score.CurrentLevel == 0 {
			continue
		}
		switch spec.TierOf(id) {
		case types.TierCritical:
			critical = append(critical, score.CurrentLevel)
		case types.TierBonus:
			bonus = append(bonus, score.CurrentLevel)
		default:
			important = append(important, score.CurrentLevel)
		}
	}

	if len(critical) > 0 && minOf(critical) < a.cfg.GateThreshold {
		capped := int(mean(critical))
		if capped > a.cfg.GateCap {
			capped = a.cfg.GateCap
		}
		return capped
	}

	all := append(append([]int{}, critical...), important...)
	if len(all) == 0 {
		return 0
	}

	base := mean(all)
	if len(bonus) > 0 {
		boost := (mean(bonus) - a.cfg.BonusPivot) * a.cfg.BonusFactor
		if boost < 0 {
			boost = 0
		}
		base += boost
		if ceiling := float64(a.cfg.MaxLevel); base > ceiling {
			base = ceiling
		}
	}
	// Ties round to the even neighbor, so a 4/5 split stays a 4.
	return int(math.RoundToEven(base))
}

var levelNames = map[int]string{
	0: "NOT_ASSESSED",
	1: "FAIL",
	2: "WEAK",
	3: "GOOD_NOT_ENOUGH",
	4: "CLEAR_PASS",
	5: "OUTSTANDING",
}

// LevelName maps an overall level to its canonical name.
func LevelName(level int) string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return "UNKNOWN"
}

func mergeFlags(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, f := range existing {
		seen[f] = struct{}{}
	}
	for _, f := range incoming {
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		existing = append(existing, f)
	}
	return existing
}

func mean(values []int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func minOf(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
