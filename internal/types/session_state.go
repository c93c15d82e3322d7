package types

import "time"

// Role identifies who produced a transcript entry
type Role string

// Transcript roles
const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
)

// Message is one transcript entry. The transcript is append-only; existing
// entries are never mutated.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Confidence expresses how much assessment signal backs a competency score.
// It is derived deterministically from the evidence log length.
type Confidence string

// Confidence levels
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Trend compares the newly-aggregated overall level with the prior one
type Trend string

// Trend values
const (
	TrendUp     Trend = "UP"
	TrendStable Trend = "STABLE"
	TrendDown   Trend = "DOWN"
)

// LevelChange is one append-only entry in a competency's level history
type LevelChange struct {
	Level         int       `json:"level"`
	Exchange      int       `json:"exchange"`
	Justification string    `json:"justification,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// CompetencyScore is the mutable per-competency record inside a session.
// It is only ever mutated by merging an assessment-stage result; the
// response and constraint-check stages never touch it.
type CompetencyScore struct {
	CompetencyID string `json:"competency_id"`
	// CurrentLevel is 0 when the competency has not been assessed yet,
	// 1-5 thereafter. Level 0 is distinct from level 1 (fail) and must
	// never be conflated with it.
	CurrentLevel int           `json:"current_level"`
	Evidence     []string      `json:"evidence"`
	Confidence   Confidence    `json:"confidence"`
	LevelHistory []LevelChange `json:"level_history"`
	RedFlags     []string      `json:"red_flags_observed"`
	GreenFlags   []string      `json:"green_flags_observed"`
}

// DirectiveAction is the assessment stage's instruction to the response
// stage about how much help or challenge to offer.
type DirectiveAction string

// Actions for case and technical interviews
const (
	ActionDoNotHelp   DirectiveAction = "DO_NOT_HELP"
	ActionMinimalHelp DirectiveAction = "MINIMAL_HELP"
	ActionLightHelp   DirectiveAction = "LIGHT_HELP"
	ActionChallenge   DirectiveAction = "CHALLENGE"
	ActionLetShine    DirectiveAction = "LET_SHINE"
)

// Actions for first-round screening interviews
const (
	ActionExploreDeeper DirectiveAction = "EXPLORE_DEEPER"
	ActionMoveOn        DirectiveAction = "MOVE_ON"
	ActionReframe       DirectiveAction = "REFRAME"
	ActionProbeGap      DirectiveAction = "PROBE_GAP"
	ActionWrapUp        DirectiveAction = "WRAP_UP"
)

// Directive is the scratch field set by the assessment stage and consumed,
// then cleared, by the response stage within the same turn. It is nil on
// any state observed between turns.
type Directive struct {
	Action       DirectiveAction `json:"action"`
	Guidance     string          `json:"guidance,omitempty"`
	DataToReveal string          `json:"data_to_reveal,omitempty"`
	FocusNext    string          `json:"focus_next,omitempty"`
	// Degraded marks that the assessment stage applied its parse fallback,
	// so the directive carries no real judgment. Visible for debugging.
	Degraded bool `json:"degraded,omitempty"`
}

// Urgency is the constraint checker's time-management signal. It only
// escalates within a session, never de-escalates.
type Urgency string

// Urgency levels, in escalation order
const (
	UrgencyNormal     Urgency = "normal"
	UrgencyWrapUpSoon Urgency = "wrap_up_soon"
	UrgencyMustEnd    Urgency = "must_end"
)

// Escalates reports whether u is a strictly higher urgency than prev.
func (u Urgency) Escalates(prev Urgency) bool {
	return urgencyRank(u) > urgencyRank(prev)
}

func urgencyRank(u Urgency) int {
	switch u {
	case UrgencyWrapUpSoon:
		return 1
	case UrgencyMustEnd:
		return 2
	default:
		return 0
	}
}

// ConstraintResult is the constraint-check stage's advisory output. Only the
// hard stops inside it end the session; everything else is guidance for the
// next turn's response stage.
type ConstraintResult struct {
	ShouldContinue bool    `json:"should_continue"`
	Urgency        Urgency `json:"urgency"`
	FocusArea      string  `json:"focus_area,omitempty"`

	UndercoveredCompetencies []string `json:"undercovered_competencies,omitempty"`
	SatisfiedCompetencies    []string `json:"satisfied_competencies,omitempty"`

	SuggestedPhase        string `json:"suggested_phase,omitempty"`
	PhaseSuggestionReason string `json:"phase_suggestion_reason,omitempty"`
}

// SessionState is the complete mutable record of one interview in progress.
// It is JSON-serializable and round-trips without loss so it can cross a
// process boundary.
type SessionState struct {
	SessionID   string    `json:"session_id"`
	CandidateID string    `json:"candidate_id,omitempty"`
	StartedAt   time.Time `json:"started_at"`

	Spec *InterviewSpec `json:"interview_spec"`

	CurrentPhase string    `json:"current_phase"`
	Transcript   []Message `json:"messages"`
	// PhaseEnteredAtExchange records the exchange count at the moment the
	// current phase began, so per-phase pacing can be measured.
	PhaseEnteredAtExchange int `json:"phase_entered_at_exchange"`

	CompetencyScores map[string]*CompetencyScore `json:"competency_scores"`

	OverallLevel int    `json:"current_level"`
	LevelName    string `json:"level_name"`
	LevelTrend   Trend  `json:"level_trend"`

	RedFlags   []string `json:"red_flags_observed"`
	GreenFlags []string `json:"green_flags_observed"`

	Directive  *Directive        `json:"directive,omitempty"`
	Constraint *ConstraintResult `json:"constraint_result,omitempty"`
	Urgency    Urgency           `json:"urgency"`

	IsComplete bool     `json:"is_complete"`
	FinalScore *float64 `json:"final_score,omitempty"`
}

// ExchangeCount returns the number of candidate turns so far.
func (s *SessionState) ExchangeCount() int {
	n := 0
	for _, m := range s.Transcript {
		if m.Role == RoleCandidate {
			n++
		}
	}
	return n
}

// LastInterviewerMessage returns the most recent interviewer transcript
// entry, or the empty string when none exists.
func (s *SessionState) LastInterviewerMessage() string {
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if s.Transcript[i].Role == RoleInterviewer {
			return s.Transcript[i].Content
		}
	}
	return ""
}
