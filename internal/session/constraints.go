package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/interview-agent/internal/types"
)

// Urgency thresholds. Time is measured in minutes remaining, exchanges
// in candidate turns remaining.
const (
	mustEndMinutes   = 3
	mustEndExchanges = 2
	wrapUpMinutes    = 8
	wrapUpExchanges  = 4
)

// constraintCheck is the full output of the constraint stage: the
// advisory result stored on the session plus the hard-stop decision,
// which is the only part that can force completion.
type constraintCheck struct {
	Result   *types.ConstraintResult
	HardStop bool
	Reason   string
}

// checkConstraints evaluates the session after a completed exchange.
// Everything it produces except the hard stops is advisory: guidance
// for the next turn's response stage, never an override of it.
func checkConstraints(state *types.SessionState, now time.Time) constraintCheck {
	c := state.Spec.Constraints
	exchanges := state.ExchangeCount()
	elapsed := now.Sub(state.StartedAt).Minutes()

	timeRemaining := float64(c.MaxDurationMinutes) - elapsed
	exchangesRemaining := c.MaxExchanges - exchanges

	urgency := types.UrgencyNormal
	switch {
	case timeRemaining <= mustEndMinutes || exchangesRemaining <= mustEndExchanges:
		urgency = types.UrgencyMustEnd
	case timeRemaining <= wrapUpMinutes || exchangesRemaining <= wrapUpExchanges:
		urgency = types.UrgencyWrapUpSoon
	}

	// Hard stops. These end the session regardless of what any stage
	// thinks.
	if exchanges >= c.MaxExchanges {
		return constraintCheck{
			Result: &types.ConstraintResult{
				ShouldContinue: false,
				Urgency:        types.UrgencyMustEnd,
				FocusArea:      "Maximum exchanges reached",
			},
			HardStop: true,
			Reason:   "maximum exchanges reached",
		}
	}
	if elapsed >= float64(c.MaxDurationMinutes) {
		return constraintCheck{
			Result: &types.ConstraintResult{
				ShouldContinue: false,
				Urgency:        types.UrgencyMustEnd,
				FocusArea:      "Time limit reached",
			},
			HardStop: true,
			Reason:   "time limit reached",
		}
	}

	undercovered, satisfied := coverage(state)

	focusArea := ""
	if len(undercovered) > 0 {
		var criticalUndercovered []string
		for _, id := range undercovered {
			if state.Spec.TierOf(id) == types.TierCritical {
				criticalUndercovered = append(criticalUndercovered, id)
			}
		}
		if len(criticalUndercovered) > 0 {
			if len(criticalUndercovered) > 2 {
				criticalUndercovered = criticalUndercovered[:2]
			}
			focusArea = "Need more signal on: " + strings.Join(criticalUndercovered, ", ")
		} else {
			focusArea = "Explore: " + undercovered[0]
		}
	}

	suggestedPhase, phaseReason := phaseSuggestion(state, exchanges)

	// When every competency has confident signal and the candidate has
	// answered enough, nudge toward the close. Advisory only.
	if c.AllowEarlyTermination && exchanges >= c.MinExchangesForCompletion && len(undercovered) == 0 {
		if urgency == types.UrgencyNormal {
			urgency = types.UrgencyWrapUpSoon
		}
		focusArea = "All competencies assessed - consider moving to close"
	}

	return constraintCheck{
		Result: &types.ConstraintResult{
			ShouldContinue:           true,
			Urgency:                  urgency,
			FocusArea:                focusArea,
			UndercoveredCompetencies: undercovered,
			SatisfiedCompetencies:    satisfied,
			SuggestedPhase:           suggestedPhase,
			PhaseSuggestionReason:    phaseReason,
		},
	}
}

// coverage partitions the spec's competencies by whether enough signal
// has been gathered. A competency still needs signal when it is
// unassessed, assessed at low confidence, or critical and still below
// passing.
func coverage(state *types.SessionState) (undercovered, satisfied []string) {
	for _, sel := range state.Spec.Competencies {
		score := state.CompetencyScores[sel.CompetencyID]
		level, confidence := 0, types.ConfidenceLow
		if score != nil {
			level = score.CurrentLevel
			confidence = score.Confidence
		}

		switch {
		case level == 0:
			undercovered = append(undercovered, sel.CompetencyID)
		case confidence == types.ConfidenceLow:
			undercovered = append(undercovered, sel.CompetencyID)
		case sel.Tier == types.TierCritical && level < 3:
			undercovered = append(undercovered, sel.CompetencyID)
		default:
			satisfied = append(satisfied, sel.CompetencyID)
		}
	}
	return undercovered, satisfied
}

// phaseSuggestion proposes moving to the next phase once the current
// one has used up its suggested exchange budget. The response stage may
// ignore it.
func phaseSuggestion(state *types.SessionState, exchanges int) (string, string) {
	idx := state.Spec.PhaseIndex(state.CurrentPhase)
	if idx < 0 {
		return "", ""
	}
	current := state.Spec.Phases[idx]
	if current.SuggestedMaxExchanges == 0 {
		return "", ""
	}

	phaseExchanges := exchanges - state.PhaseEnteredAtExchange
	if phaseExchanges < current.SuggestedMaxExchanges {
		return "", ""
	}
	if idx+1 >= len(state.Spec.Phases) {
		return "", ""
	}

	next := state.Spec.Phases[idx+1]
	return next.ID, fmt.Sprintf("Current phase (%s) has reached its suggested duration", current.Name)
}
