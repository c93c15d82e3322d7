// Package specs assembles and validates interview specs: the immutable
// per-session configuration that selects competencies from the rubric,
// packages the interview material, and sets behavioral heuristics,
// phases, and hard limits for one session.
package specs

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/interview-agent/internal/rubric"
	"github.com/jonathan/interview-agent/internal/types"
)

var validate = validator.New()

// CaseMaterial is the authored content for one case interview.
type CaseMaterial struct {
	ID                    string              `json:"id" yaml:"id"`
	Title                 string              `json:"title" yaml:"title"`
	Opening               string              `json:"opening" yaml:"opening"`
	Facts                 map[string]string   `json:"facts,omitempty" yaml:"facts,omitempty"`
	RootCause             string              `json:"root_cause,omitempty" yaml:"root_cause,omitempty"`
	StrongRecommendations []string            `json:"strong_recommendations,omitempty" yaml:"strong_recommendations,omitempty"`
	RedFlags              []string            `json:"red_flags,omitempty" yaml:"red_flags,omitempty"`
	GreenFlags            []string            `json:"green_flags,omitempty" yaml:"green_flags,omitempty"`
	Calibration           map[string][]string `json:"calibration,omitempty" yaml:"calibration,omitempty"`
}

// ScreeningMaterial is the input for one first-round screening interview.
type ScreeningMaterial struct {
	RoleTitle        string   `json:"role_title" yaml:"role_title"`
	JobDescription   string   `json:"job_description" yaml:"job_description"`
	CandidateCV      string   `json:"candidate_cv" yaml:"candidate_cv"`
	CompanyContext   string   `json:"company_context,omitempty" yaml:"company_context,omitempty"`
	GapsToProbe      []string `json:"gaps_to_probe,omitempty" yaml:"gaps_to_probe,omitempty"`
	ClaimsToValidate []string `json:"claims_to_validate,omitempty" yaml:"claims_to_validate,omitempty"`
}

// ProblemMaterial is the authored content for one technical interview.
type ProblemMaterial struct {
	ID                 string   `json:"id" yaml:"id"`
	Title              string   `json:"title" yaml:"title"`
	ProblemStatement   string   `json:"problem_statement" yaml:"problem_statement"`
	StarterCode        string   `json:"starter_code,omitempty" yaml:"starter_code,omitempty"`
	ExpectedComplexity string   `json:"expected_complexity,omitempty" yaml:"expected_complexity,omitempty"`
	SolutionApproach   string   `json:"solution_approach,omitempty" yaml:"solution_approach,omitempty"`
	Hints              []string `json:"hints,omitempty" yaml:"hints,omitempty"`
	CommonPitfalls     []string `json:"common_pitfalls,omitempty" yaml:"common_pitfalls,omitempty"`
	EdgeCases          []string `json:"edge_cases,omitempty" yaml:"edge_cases,omitempty"`
}

// NewCaseSpec builds a validated case interview spec from case material,
// layered over the case archetype template.
func NewCaseSpec(material CaseMaterial) (*types.InterviewSpec, error) {
	tpl, err := LoadTemplate(TemplateCase)
	if err != nil {
		return nil, err
	}

	specID := material.ID
	if specID == "" {
		specID = uuid.NewString()[:8]
	}
	specID = "case_" + specID

	spec := &types.InterviewSpec{
		SpecID:        specID,
		InterviewType: types.InterviewCase,
		Title:         defaultString(material.Title, "Case Interview"),
		Version:       "1.0",
		ContextPacket: types.ContextPacket{
			PacketType: types.PacketCaseStudy,
			CaseStudy: &types.CaseStudyContext{
				CasePrompt:            material.Opening,
				Facts:                 material.Facts,
				RootCause:             material.RootCause,
				StrongRecommendations: material.StrongRecommendations,
				CalibrationExamples:   material.Calibration,
			},
		},
		Competencies: selectCompetencies(tpl, material.RedFlags, material.GreenFlags),
		Heuristics:   tpl.Heuristics,
		Phases:       tpl.Phases,
		Constraints:  tpl.Constraints,
		TemplateID:   tpl.TemplateID,
	}

	return spec, Validate(spec)
}

// NewFirstRoundSpec builds a validated screening interview spec from a
// JD/CV pair, layered over the first-round archetype template.
func NewFirstRoundSpec(material ScreeningMaterial) (*types.InterviewSpec, error) {
	tpl, err := LoadTemplate(TemplateFirstRound)
	if err != nil {
		return nil, err
	}

	spec := &types.InterviewSpec{
		SpecID:        "first_round_" + uuid.NewString()[:8],
		InterviewType: types.InterviewFirstRound,
		Title:         fmt.Sprintf("First Round - %s", defaultString(material.RoleTitle, "Screening")),
		Version:       "1.0",
		ContextPacket: types.ContextPacket{
			PacketType: types.PacketCVScreen,
			CVScreen: &types.CVScreenContext{
				JobDescription:   material.JobDescription,
				CandidateCV:      material.CandidateCV,
				RoleTitle:        material.RoleTitle,
				CompanyContext:   material.CompanyContext,
				GapsToProbe:      material.GapsToProbe,
				ClaimsToValidate: material.ClaimsToValidate,
			},
		},
		Competencies: selectCompetencies(tpl, nil, nil),
		Heuristics:   tpl.Heuristics,
		Phases:       tpl.Phases,
		Constraints:  tpl.Constraints,
		TemplateID:   tpl.TemplateID,
	}

	return spec, Validate(spec)
}

// NewTechnicalSpec builds a validated technical interview spec from
// problem material, layered over the technical archetype template.
func NewTechnicalSpec(material ProblemMaterial) (*types.InterviewSpec, error) {
	tpl, err := LoadTemplate(TemplateTechnical)
	if err != nil {
		return nil, err
	}

	specID := material.ID
	if specID == "" {
		specID = uuid.NewString()[:8]
	}
	specID = "technical_" + specID

	spec := &types.InterviewSpec{
		SpecID:        specID,
		InterviewType: types.InterviewTechnical,
		Title:         defaultString(material.Title, "Technical Interview"),
		Version:       "1.0",
		ContextPacket: types.ContextPacket{
			PacketType: types.PacketTechnicalProblem,
			TechnicalProblem: &types.TechnicalProblemContext{
				ProblemStatement:   material.ProblemStatement,
				StarterCode:        material.StarterCode,
				ExpectedComplexity: material.ExpectedComplexity,
				SolutionApproach:   material.SolutionApproach,
				AvailableHints:     material.Hints,
				CommonPitfalls:     material.CommonPitfalls,
				EdgeCases:          material.EdgeCases,
			},
		},
		Competencies: selectCompetencies(tpl, nil, nil),
		Heuristics:   tpl.Heuristics,
		Phases:       tpl.Phases,
		Constraints:  tpl.Constraints,
		TemplateID:   tpl.TemplateID,
	}

	return spec, Validate(spec)
}

// selectCompetencies maps template competency selections into the spec,
// attaching material-specific flags where the template opts in. Ids the
// rubric does not know are carried through so Validate rejects the spec
// instead of silently shrinking it.
func selectCompetencies(tpl *Template, redFlags, greenFlags []string) []types.SelectedCompetency {
	selected := make([]types.SelectedCompetency, 0, len(tpl.Competencies))
	for _, tc := range tpl.Competencies {
		sel := types.SelectedCompetency{
			CompetencyID: tc.ID,
			Tier:         tc.Tier,
		}
		if tc.InheritCaseFlags {
			sel.AdditionalRedFlags = redFlags
			sel.AdditionalGreenFlags = greenFlags
		}
		selected = append(selected, sel)
	}
	return selected
}

// expectedPacket maps each interview type to the context packet variant
// it requires.
var expectedPacket = map[types.InterviewType]types.PacketType{
	types.InterviewCase:       types.PacketCaseStudy,
	types.InterviewFirstRound: types.PacketCVScreen,
	types.InterviewTechnical:  types.PacketTechnicalProblem,
}

// Validate checks a spec for structural and semantic problems. It
// collects every issue it finds and returns them together as a
// ConfigurationError; a nil return means the spec is usable.
func Validate(spec *types.InterviewSpec) error {
	var issues []string

	if err := validate.Struct(spec); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				issues = append(issues, fmt.Sprintf("field %s failed %s validation", ve.Namespace(), ve.Tag()))
			}
		} else {
			issues = append(issues, err.Error())
		}
	}

	if expected, ok := expectedPacket[spec.InterviewType]; ok && spec.ContextPacket.PacketType != expected {
		issues = append(issues, fmt.Sprintf("%s interview requires %s context packet, got %s",
			spec.InterviewType, expected, spec.ContextPacket.PacketType))
	}

	switch spec.ContextPacket.PacketType {
	case types.PacketCaseStudy:
		if spec.ContextPacket.CaseStudy == nil {
			issues = append(issues, "case_study context is missing")
		}
	case types.PacketCVScreen:
		if spec.ContextPacket.CVScreen == nil {
			issues = append(issues, "cv_screen context is missing")
		}
	case types.PacketTechnicalProblem:
		if spec.ContextPacket.TechnicalProblem == nil {
			issues = append(issues, "technical_problem context is missing")
		}
	}

	hasCritical := false
	for _, sel := range spec.Competencies {
		comp, ok := rubric.Get(sel.CompetencyID)
		if !ok {
			issues = append(issues, fmt.Sprintf("unknown competency: %s", sel.CompetencyID))
			continue
		}
		if !comp.AppliesTo(spec.InterviewType) {
			issues = append(issues, fmt.Sprintf("competency %s does not apply to %s interviews",
				sel.CompetencyID, spec.InterviewType))
		}
		if sel.Tier == types.TierCritical {
			hasCritical = true
		}
	}
	if len(spec.Competencies) > 0 && !hasCritical {
		issues = append(issues, "at least one competency must be marked critical")
	}

	for _, phase := range spec.Phases {
		for _, focus := range phase.FocusCompetencies {
			if spec.CompetencyByID(focus) == nil {
				issues = append(issues, fmt.Sprintf("phase %q references competency %q not selected in spec",
					phase.ID, focus))
			}
		}
		if phase.SuggestedMaxExchanges > 0 && phase.SuggestedMaxExchanges < phase.SuggestedMinExchanges {
			issues = append(issues, fmt.Sprintf("phase %q has max exchanges below min", phase.ID))
		}
	}

	c := spec.Constraints
	if c.MinExchangesForCompletion > c.MaxExchanges {
		issues = append(issues, "min_exchanges_for_completion exceeds max_exchanges")
	}

	if len(issues) > 0 {
		return &ConfigurationError{SpecID: spec.SpecID, Issues: issues}
	}
	return nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
