package oracle

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/interview-agent/internal/types"
)

// DefaultAction is the neutral directive action per interview type,
// used whenever the oracle's judgment is unavailable.
func DefaultAction(t types.InterviewType) types.DirectiveAction {
	if t == types.InterviewFirstRound {
		return types.ActionExploreDeeper
	}
	return types.ActionDoNotHelp
}

// DegradedAssessment is the fallback when the assessment stage produced
// nothing usable: no score changes, a neutral action, and a directive
// flagged as degraded so downstream consumers can tell.
func DegradedAssessment(t types.InterviewType) *Assessment {
	return &Assessment{
		PerCompetency: map[string]CompetencyAssessment{},
		Action:        DefaultAction(t),
		Guidance:      "Continue the interview naturally.",
		Degraded:      true,
	}
}

// validActions per interview type. An out-of-vocabulary action is a
// model error, not a new capability.
func validAction(t types.InterviewType, action types.DirectiveAction) bool {
	caseActions := map[types.DirectiveAction]bool{
		types.ActionDoNotHelp:   true,
		types.ActionMinimalHelp: true,
		types.ActionLightHelp:   true,
		types.ActionChallenge:   true,
		types.ActionLetShine:    true,
	}
	firstRoundActions := map[types.DirectiveAction]bool{
		types.ActionExploreDeeper: true,
		types.ActionMoveOn:        true,
		types.ActionReframe:       true,
		types.ActionProbeGap:      true,
		types.ActionWrapUp:        true,
	}
	if t == types.InterviewFirstRound {
		return firstRoundActions[action]
	}
	return caseActions[action]
}

// ParseAssessment decodes the assessment stage's JSON output. It never
// fails: unparseable output yields the degraded fallback, and malformed
// pieces inside an otherwise valid document are clamped or dropped.
func ParseAssessment(text string, spec *types.InterviewSpec) *Assessment {
	var raw Assessment
	if err := json.Unmarshal([]byte(CleanJSONBlock(text)), &raw); err != nil {
		return DegradedAssessment(spec.InterviewType)
	}

	if raw.PerCompetency == nil {
		raw.PerCompetency = map[string]CompetencyAssessment{}
	}

	// Drop scores for competencies the spec did not select and clamp
	// levels to the scale.
	for id, ca := range raw.PerCompetency {
		if spec.CompetencyByID(id) == nil {
			delete(raw.PerCompetency, id)
			continue
		}
		if ca.Level < 0 {
			ca.Level = 0
		}
		if ca.Level > 5 {
			ca.Level = 5
		}
		raw.PerCompetency[id] = ca
	}

	if !validAction(spec.InterviewType, raw.Action) {
		raw.Action = DefaultAction(spec.InterviewType)
	}

	return &raw
}

// ParseResponse decodes the response stage's JSON output. Unparseable
// output falls back to treating the whole text as the utterance, so a
// chatty model still produces a usable interviewer message.
func ParseResponse(text string) *Response {
	var resp Response
	if err := json.Unmarshal([]byte(CleanJSONBlock(text)), &resp); err != nil || resp.Utterance == "" {
		return &Response{
			Utterance: strings.TrimSpace(text),
			Degraded:  true,
		}
	}
	return &resp
}

// CleanJSONBlock removes markdown code block wrappers from JSON
// responses. Models often wrap JSON in ```json fences even when
// instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
