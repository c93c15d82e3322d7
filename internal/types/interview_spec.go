// Package types provides type definitions for structured data used throughout the interview-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// InterviewType identifies the interview archetype
type InterviewType string

// Interview archetypes
const (
	InterviewCase       InterviewType = "case"
	InterviewFirstRound InterviewType = "first_round"
	InterviewTechnical  InterviewType = "technical"
)

// CompetencyTier is the importance class of a selected competency
type CompetencyTier string

// Competency tiers. Critical competencies gate the overall pass/fail,
// important competencies contribute to the average, bonus competencies
// can only nudge the result upward.
const (
	TierCritical  CompetencyTier = "critical"
	TierImportant CompetencyTier = "important"
	TierBonus     CompetencyTier = "bonus"
)

// PacketType identifies which variant of the context packet is populated
type PacketType string

// Context packet variants, one per interview archetype
const (
	PacketCaseStudy        PacketType = "case_study"
	PacketCVScreen         PacketType = "cv_screen"
	PacketTechnicalProblem PacketType = "technical_problem"
)

// InterviewSpec is the immutable, per-session configuration assembled once
// at session creation. Agents read behavior from here instead of hardcoded
// logic: which competencies apply, how the interviewer should behave, which
// phases the conversation moves through, and the hard session limits.
type InterviewSpec struct {
	SpecID        string        `json:"spec_id" validate:"required"`
	InterviewType InterviewType `json:"interview_type" validate:"required,oneof=case first_round technical"`
	Title         string        `json:"title"`
	Version       string        `json:"version,omitempty"`

	ContextPacket ContextPacket        `json:"context_packet"`
	Competencies  []SelectedCompetency `json:"competencies" validate:"required,min=1,dive"`
	Heuristics    Heuristics           `json:"heuristics"`
	Phases        []PhaseConfig        `json:"phases" validate:"required,min=1,dive"`
	Constraints   SessionConstraints   `json:"constraints"`

	TemplateID string `json:"template_id,omitempty"`
}

// SelectedCompetency references a rubric competency and assigns it a tier
// for this session. Session-specific flag patterns are merged on top of the
// library definition when building prompts.
type SelectedCompetency struct {
	CompetencyID         string         `json:"competency_id" validate:"required"`
	Tier                 CompetencyTier `json:"tier" validate:"required,oneof=critical important bonus"`
	AdditionalRedFlags   []string       `json:"additional_red_flags,omitempty"`
	AdditionalGreenFlags []string       `json:"additional_green_flags,omitempty"`
}

// ContextPacket is a tagged union holding the archetype-specific material the
// response stage is grounded in. Exactly one variant is populated, matching
// PacketType.
type ContextPacket struct {
	PacketType PacketType `json:"packet_type" validate:"required,oneof=case_study cv_screen technical_problem"`

	CaseStudy        *CaseStudyContext        `json:"case_study,omitempty"`
	CVScreen         *CVScreenContext         `json:"cv_screen,omitempty"`
	TechnicalProblem *TechnicalProblemContext `json:"technical_problem,omitempty"`
}

// CaseStudyContext is the material for case interviews
type CaseStudyContext struct {
	CasePrompt            string              `json:"case_prompt" validate:"required"`
	Facts                 map[string]string   `json:"facts,omitempty"`
	RootCause             string              `json:"root_cause,omitempty"`
	StrongRecommendations []string            `json:"strong_recommendations,omitempty"`
	CalibrationExamples   map[string][]string `json:"calibration_examples,omitempty"`
}

// CVScreenContext is the material for first-round screening interviews
type CVScreenContext struct {
	JobDescription   string   `json:"job_description" validate:"required"`
	CandidateCV      string   `json:"candidate_cv" validate:"required"`
	RoleTitle        string   `json:"role_title"`
	CompanyContext   string   `json:"company_context,omitempty"`
	GapsToProbe      []string `json:"gaps_to_probe,omitempty"`
	ClaimsToValidate []string `json:"claims_to_validate,omitempty"`
}

// TechnicalProblemContext is the material for technical/coding interviews
type TechnicalProblemContext struct {
	ProblemStatement   string   `json:"problem_statement" validate:"required"`
	StarterCode        string   `json:"starter_code,omitempty"`
	ExpectedComplexity string   `json:"expected_complexity,omitempty"`
	SolutionApproach   string   `json:"solution_approach,omitempty"`
	AvailableHints     []string `json:"available_hints,omitempty"`
	CommonPitfalls     []string `json:"common_pitfalls,omitempty"`
	EdgeCases          []string `json:"edge_cases,omitempty"`
}

// Heuristics is free-form behavioral guidance consumed only by the
// response-generation stage, never by orchestration logic.
type Heuristics struct {
	Tone               string `json:"tone,omitempty"`
	PersonaDescription string `json:"persona_description,omitempty"`
	HintPhilosophy     string `json:"hint_philosophy,omitempty"`
	RescuePolicy       string `json:"rescue_policy,omitempty"`
	PushbackStyle      string `json:"pushback_style,omitempty"`
	DataRevelation     string `json:"data_revelation,omitempty"`
	OpeningStyle       string `json:"opening_style,omitempty"`
	ClosingStyle       string `json:"closing_style,omitempty"`
}

// PhaseConfig describes one phase in the interview's ordered phase list.
// Transition guidance is soft: the constraint checker suggests moving on,
// the response stage decides.
type PhaseConfig struct {
	ID                    string   `json:"id" validate:"required"`
	Name                  string   `json:"name"`
	Objective             string   `json:"objective,omitempty"`
	SuggestedMinExchanges int      `json:"suggested_min_exchanges,omitempty"`
	SuggestedMaxExchanges int      `json:"suggested_max_exchanges,omitempty"`
	FocusCompetencies     []string `json:"focus_competencies,omitempty"`
}

// SessionConstraints are the hard limits on one interview session
type SessionConstraints struct {
	MaxDurationMinutes        int  `json:"max_duration_minutes" validate:"min=1"`
	MaxExchanges              int  `json:"max_exchanges" validate:"min=1"`
	MinExchangesForCompletion int  `json:"min_exchanges_for_completion" validate:"min=0"`
	AllowEarlyTermination     bool `json:"allow_early_termination"`
}

// ActiveContext returns a short human-readable label for the populated
// context packet variant, used in logs and list output.
func (p *ContextPacket) ActiveContext() string {
	switch p.PacketType {
	case PacketCaseStudy:
		return "case study"
	case PacketCVScreen:
		return "CV screen"
	case PacketTechnicalProblem:
		return "technical problem"
	}
	return string(p.PacketType)
}

// CompetencyByID returns the selected competency with the given id, or nil.
func (s *InterviewSpec) CompetencyByID(id string) *SelectedCompetency {
	for i := range s.Competencies {
		if s.Competencies[i].CompetencyID == id {
			return &s.Competencies[i]
		}
	}
	return nil
}

// CriticalCompetencies returns the competencies that must pass for an
// overall pass.
func (s *InterviewSpec) CriticalCompetencies() []SelectedCompetency {
	var out []SelectedCompetency
	for _, c := range s.Competencies {
		if c.Tier == TierCritical {
			out = append(out, c)
		}
	}
	return out
}

// TierOf returns the tier of a competency id, defaulting to important when
// the id is not part of the spec's selected set.
func (s *InterviewSpec) TierOf(id string) CompetencyTier {
	if c := s.CompetencyByID(id); c != nil {
		return c.Tier
	}
	return TierImportant
}

// PhaseIndex returns the position of a phase id in the ordered phase list,
// or -1 if the id is unknown. Matching is case-insensitive because phase ids
// travel through prompts and oracle output.
func (s *InterviewSpec) PhaseIndex(id string) int {
	for i, p := range s.Phases {
		if strings.EqualFold(p.ID, id) {
			return i
		}
	}
	return -1
}
