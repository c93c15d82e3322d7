// Package oracle is the judgment boundary of the engine. Everything that
// requires reading a human answer — scoring it, choosing how to respond —
// goes through the Oracle interface; everything outside this package is
// deterministic orchestration.
package oracle

import (
	"context"

	"github.com/jonathan/interview-agent/internal/types"
)

// Oracle produces the two judgment calls of a turn. Implementations must
// be safe for concurrent use across sessions.
type Oracle interface {
	// Assess scores the candidate's latest answer against the spec's
	// competencies and directs the interviewer's next move.
	Assess(ctx context.Context, req AssessmentRequest) (*Assessment, error)
	// Respond generates the interviewer's next utterance in persona.
	Respond(ctx context.Context, req ResponseRequest) (*Response, error)
}

// AssessmentRequest carries everything the assessment stage is allowed
// to see.
type AssessmentRequest struct {
	Spec       *types.InterviewSpec
	Scores     map[string]*types.CompetencyScore
	Transcript []types.Message
	Phase      string
}

// CompetencyAssessment is the oracle's judgment for one competency on
// one turn. Level 0 means no new signal: the stored score is untouched.
type CompetencyAssessment struct {
	Level         int      `json:"level"`
	Evidence      string   `json:"evidence"`
	Justification string   `json:"justification,omitempty"`
	RedFlags      []string `json:"red_flags,omitempty"`
	GreenFlags    []string `json:"green_flags,omitempty"`
}

// Assessment is the full output of the assessment stage. The overall
// level and its trend are deliberately absent: both are aggregated
// deterministically from the per-competency scores, so the model is
// never asked for them.
type Assessment struct {
	PerCompetency map[string]CompetencyAssessment `json:"per_competency"`
	Action        types.DirectiveAction           `json:"action"`
	Guidance      string                          `json:"interviewer_guidance,omitempty"`
	DataToReveal  string                          `json:"data_to_reveal,omitempty"`
	FocusNext     string                          `json:"focus_next,omitempty"`

	// Degraded marks a fallback assessment that carries no judgment.
	Degraded bool `json:"-"`
}

// Directive converts the assessment into the scratch directive the
// response stage consumes.
func (a *Assessment) Directive() types.Directive {
	return types.Directive{
		Action:       a.Action,
		Guidance:     a.Guidance,
		DataToReveal: a.DataToReveal,
		FocusNext:    a.FocusNext,
		Degraded:     a.Degraded,
	}
}

// ResponseRequest carries everything the response stage is allowed to
// see. Raw scores are deliberately absent: the response stage acts on
// the directive, not the numbers.
type ResponseRequest struct {
	Spec       *types.InterviewSpec
	Transcript []types.Message
	Directive  types.Directive
	Constraint *types.ConstraintResult
	Phase      string
}

// Response is the output of the response stage.
type Response struct {
	Utterance string `json:"utterance"`
	IsClosing bool   `json:"is_closing"`
	Phase     string `json:"phase,omitempty"`

	// Degraded marks a fallback response built from unparseable output.
	Degraded bool `json:"-"`
}
