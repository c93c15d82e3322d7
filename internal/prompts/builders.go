package prompts

import (
	"fmt"
	"strings"

	"github.com/jonathan/interview-agent/internal/rubric"
	"github.com/jonathan/interview-agent/internal/types"
)

// transcriptWindow bounds how much conversation is replayed into a
// prompt. Older exchanges are summarized by the scores, not re-read.
const transcriptWindow = 10

// ActionsFor returns the directive action vocabulary for an interview
// type. First-round screenings steer conversation; case and technical
// interviews calibrate help.
func ActionsFor(t types.InterviewType) string {
	if t == types.InterviewFirstRound {
		return "EXPLORE_DEEPER|MOVE_ON|REFRAME|PROBE_GAP|WRAP_UP"
	}
	return "DO_NOT_HELP|MINIMAL_HELP|LIGHT_HELP|CHALLENGE|LET_SHINE"
}

// BuildAssessment assembles the full prompt for the assessment stage:
// persona-aware system instructions, the interview material, the
// competency rubric with per-spec flag additions, the running scores,
// the recent transcript, and the JSON output contract.
func BuildAssessment(spec *types.InterviewSpec, scores map[string]*types.CompetencyScore, transcript []types.Message, phase string) (string, error) {
	systemKey := "system_case"
	switch spec.InterviewType {
	case types.InterviewFirstRound:
		systemKey = "system_first_round"
	case types.InterviewTechnical:
		systemKey = "system_technical"
	}

	system, err := AssessmentSection(systemKey)
	if err != nil {
		return "", err
	}
	system = Format(system, map[string]string{
		"Persona":        spec.Heuristics.PersonaDescription,
		"DataRevelation": spec.Heuristics.DataRevelation,
		"HintPhilosophy": spec.Heuristics.HintPhilosophy,
	})

	rules, err := AssessmentSection("scoring_rules")
	if err != nil {
		return "", err
	}

	output, err := AssessmentSection("output_format")
	if err != nil {
		return "", err
	}
	output = Format(output, map[string]string{
		"ScoresExample": scoresExample(spec),
		"Actions":       ActionsFor(spec.InterviewType),
	})

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\n")
	sb.WriteString(materialSection(spec))
	sb.WriteString("\n\n## COMPETENCIES TO ASSESS\n\n")
	sb.WriteString(competencySection(spec))
	sb.WriteString("\n\n")
	sb.WriteString(rules)
	sb.WriteString("\n\n## CURRENT SCORES\n\n")
	sb.WriteString(scoreSection(spec, scores))
	sb.WriteString("\n\n## CURRENT PHASE\n\n")
	sb.WriteString(phase)
	sb.WriteString("\n\n## CONVERSATION\n\n")
	sb.WriteString(FormatTranscript(transcript, transcriptWindow))
	sb.WriteString("\n\n")
	sb.WriteString(output)
	return sb.String(), nil
}

// BuildResponse assembles the full prompt for the response stage. The
// directive and constraint results are injected as instructions; the
// response stage never sees raw scores.
func BuildResponse(spec *types.InterviewSpec, transcript []types.Message, directive types.Directive, constraint *types.ConstraintResult, phase string) (string, error) {
	system, err := ResponseSection("system")
	if err != nil {
		return "", err
	}
	h := spec.Heuristics
	system = Format(system, map[string]string{
		"Persona":        h.PersonaDescription,
		"Tone":           h.Tone,
		"HintPhilosophy": h.HintPhilosophy,
		"RescuePolicy":   h.RescuePolicy,
		"PushbackStyle":  h.PushbackStyle,
		"DataRevelation": h.DataRevelation,
		"ClosingStyle":   h.ClosingStyle,
	})

	directiveBlock, err := ResponseSection("directive_block")
	if err != nil {
		return "", err
	}
	data := directive.DataToReveal
	if data == "" {
		data = "none"
	}
	directiveBlock = Format(directiveBlock, map[string]string{
		"Action":   string(directive.Action),
		"Guidance": directive.Guidance,
		"Data":     data,
	})

	output, err := ResponseSection("output_format")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\n")
	sb.WriteString(materialSection(spec))
	sb.WriteString("\n\n")
	sb.WriteString(phaseBlock(spec, constraint, phase))
	sb.WriteString("\n\n")
	sb.WriteString(directiveBlock)

	if constraint != nil {
		switch constraint.Urgency {
		case types.UrgencyWrapUpSoon:
			if block, err := ResponseSection("urgency_wrap_up_soon"); err == nil {
				sb.WriteString("\n\n")
				sb.WriteString(block)
			}
		case types.UrgencyMustEnd:
			if block, err := ResponseSection("urgency_must_end"); err == nil {
				sb.WriteString("\n\n")
				sb.WriteString(block)
			}
		}
	}

	sb.WriteString("\n\n## CONVERSATION\n\n")
	sb.WriteString(FormatTranscript(transcript, transcriptWindow))
	sb.WriteString("\n\n")
	sb.WriteString(output)
	return sb.String(), nil
}

// Opening builds the deterministic first interviewer message straight
// from the context packet. No oracle call is involved: the material is
// authored, so the opening is too.
func Opening(spec *types.InterviewSpec) string {
	switch spec.ContextPacket.PacketType {
	case types.PacketCaseStudy:
		return caseOpening(spec)
	case types.PacketCVScreen:
		return cvOpening(spec)
	case types.PacketTechnicalProblem:
		return technicalOpening(spec)
	}
	return spec.Title
}

func caseOpening(spec *types.InterviewSpec) string {
	cs := spec.ContextPacket.CaseStudy
	if cs == nil {
		return spec.Title
	}
	prompt := strings.ReplaceAll(cs.CasePrompt, "\n\nOver to you.", "")
	prompt = strings.TrimSpace(strings.ReplaceAll(prompt, "Over to you.", ""))

	intro := "Over to you."
	if strings.Contains(strings.ToLower(spec.Heuristics.OpeningStyle), "moment") {
		intro = "Take a moment to gather your thoughts. Feel free to ask any clarifying questions, and when you're ready, share how you'd like to approach this.\n\nOver to you."
	}
	return prompt + "\n\n" + intro
}

func cvOpening(spec *types.InterviewSpec) string {
	cv := spec.ContextPacket.CVScreen
	role := "this role"
	if cv != nil && cv.RoleTitle != "" {
		role = "the " + cv.RoleTitle + " position"
	}
	minutes := spec.Constraints.MaxDurationMinutes
	if minutes == 0 {
		minutes = 30
	}
	return fmt.Sprintf("Thanks for joining me today. I've had a chance to review your background, and I'm looking forward to learning more about your experience.\n\nWe'll spend about %d minutes today discussing your background and %s. I'd love to hear about what you've been working on and what brings you to this opportunity.\n\nLet's start with your most recent role. Tell me about what you've been doing there.", minutes, role)
}

func technicalOpening(spec *types.InterviewSpec) string {
	tp := spec.ContextPacket.TechnicalProblem
	if tp == nil {
		return spec.Title
	}
	var sb strings.Builder
	sb.WriteString("Thanks for joining. Let me share a problem with you.\n\nTake a moment to read through it, and feel free to ask any clarifying questions before you start.\n\n---\n\n")
	sb.WriteString(tp.ProblemStatement)
	if tp.StarterCode != "" {
		sb.WriteString("\n\nHere is some starter code:\n\n")
		sb.WriteString(tp.StarterCode)
	}
	return sb.String()
}

// FormatTranscript renders the most recent messages as labeled lines.
func FormatTranscript(messages []types.Message, limit int) string {
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		label := "Candidate"
		if m.Role == types.RoleInterviewer {
			label = "Interviewer"
		}
		lines = append(lines, label+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

func materialSection(spec *types.InterviewSpec) string {
	var sb strings.Builder
	switch spec.ContextPacket.PacketType {
	case types.PacketCaseStudy:
		cs := spec.ContextPacket.CaseStudy
		sb.WriteString("## CASE MATERIAL\n\n")
		sb.WriteString(cs.CasePrompt)
		if len(cs.Facts) > 0 {
			sb.WriteString("\n\nFacts (reveal only when earned):\n")
			for key, value := range cs.Facts {
				fmt.Fprintf(&sb, "- %s: %s\n", key, value)
			}
		}
		if cs.RootCause != "" {
			sb.WriteString("\nRoot cause (what good looks like): " + cs.RootCause)
		}
		if len(cs.StrongRecommendations) > 0 {
			sb.WriteString("\nStrong recommendations would include:\n")
			for _, rec := range cs.StrongRecommendations {
				sb.WriteString("- " + rec + "\n")
			}
		}
	case types.PacketCVScreen:
		cv := spec.ContextPacket.CVScreen
		sb.WriteString("## ROLE AND CANDIDATE\n\n")
		sb.WriteString("Role: " + cv.RoleTitle + "\n\n")
		if cv.CompanyContext != "" {
			sb.WriteString("Company context: " + cv.CompanyContext + "\n\n")
		}
		sb.WriteString("Job description:\n" + cv.JobDescription + "\n\n")
		sb.WriteString("Candidate CV:\n" + cv.CandidateCV)
		if len(cv.GapsToProbe) > 0 {
			sb.WriteString("\n\nGaps to probe (JD requirements not evidenced in the CV):\n")
			for _, gap := range cv.GapsToProbe {
				sb.WriteString("- " + gap + "\n")
			}
		}
		if len(cv.ClaimsToValidate) > 0 {
			sb.WriteString("\nClaims to validate:\n")
			for _, claim := range cv.ClaimsToValidate {
				sb.WriteString("- " + claim + "\n")
			}
		}
	case types.PacketTechnicalProblem:
		tp := spec.ContextPacket.TechnicalProblem
		sb.WriteString("## PROBLEM\n\n")
		sb.WriteString(tp.ProblemStatement)
		if tp.ExpectedComplexity != "" {
			sb.WriteString("\n\nExpected complexity: " + tp.ExpectedComplexity)
		}
		if tp.SolutionApproach != "" {
			sb.WriteString("\n\nSolution approach (never reveal): " + tp.SolutionApproach)
		}
		if len(tp.AvailableHints) > 0 {
			sb.WriteString("\n\nTiered hints, smallest first:\n")
			for i, hint := range tp.AvailableHints {
				fmt.Fprintf(&sb, "%d. %s\n", i+1, hint)
			}
		}
		if len(tp.CommonPitfalls) > 0 {
			sb.WriteString("\nCommon pitfalls:\n")
			for _, pitfall := range tp.CommonPitfalls {
				sb.WriteString("- " + pitfall + "\n")
			}
		}
		if len(tp.EdgeCases) > 0 {
			sb.WriteString("\nEdge cases a strong candidate finds:\n")
			for _, ec := range tp.EdgeCases {
				sb.WriteString("- " + ec + "\n")
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func competencySection(spec *types.InterviewSpec) string {
	block := mustSection(assessmentFile, "competency_block")
	sections := make([]string, 0, len(spec.Competencies))
	for _, sel := range spec.Competencies {
		comp, ok := rubric.Get(sel.CompetencyID)
		if !ok {
			continue
		}
		redFlags := append(append([]string{}, comp.RedFlags...), sel.AdditionalRedFlags...)
		greenFlags := append(append([]string{}, comp.GreenFlags...), sel.AdditionalGreenFlags...)
		sections = append(sections, Format(block, map[string]string{
			"ID":          comp.ID,
			"Tier":        string(sel.Tier),
			"Name":        comp.Name,
			"Description": comp.Description,
			"RedFlags":    strings.Join(redFlags, "; "),
			"GreenFlags":  strings.Join(greenFlags, "; "),
		}))
	}
	return strings.Join(sections, "\n\n")
}

func scoreSection(spec *types.InterviewSpec, scores map[string]*types.CompetencyScore) string {
	lines := make([]string, 0, len(spec.Competencies))
	for _, sel := range spec.Competencies {
		score, ok := scores[sel.CompetencyID]
		if !ok || score == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: level %d, confidence %s, %d observations",
			sel.CompetencyID, score.CurrentLevel, score.Confidence, len(score.Evidence)))
	}
	if len(lines) == 0 {
		return "No scores yet."
	}
	return strings.Join(lines, "\n")
}

func phaseBlock(spec *types.InterviewSpec, constraint *types.ConstraintResult, phase string) string {
	block := mustSection(responseFile, "phase_block")
	name, objective := phase, ""
	if idx := spec.PhaseIndex(phase); idx >= 0 {
		name = spec.Phases[idx].Name
		objective = spec.Phases[idx].Objective
	}
	suggestion := ""
	if constraint != nil && constraint.SuggestedPhase != "" && !strings.EqualFold(constraint.SuggestedPhase, phase) {
		suggestion = fmt.Sprintf("Consider moving to the %s phase: %s", constraint.SuggestedPhase, constraint.PhaseSuggestionReason)
	}
	return Format(block, map[string]string{
		"PhaseName":  name,
		"Objective":  objective,
		"Suggestion": suggestion,
	})
}

func scoresExample(spec *types.InterviewSpec) string {
	ids := make([]string, 0, 3)
	for _, sel := range spec.Competencies {
		ids = append(ids, sel.CompetencyID)
		if len(ids) == 3 {
			break
		}
	}
	examples := make([]string, 0, len(ids))
	for _, id := range ids {
		examples = append(examples, fmt.Sprintf(`"%s": {"level": 3, "evidence": "specific observation", "justification": "", "red_flags": [], "green_flags": []}`, id))
	}
	out := strings.Join(examples, ",\n        ")
	if len(spec.Competencies) > 3 {
		out += ",\n        ..."
	}
	return out
}
