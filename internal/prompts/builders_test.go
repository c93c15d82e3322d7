package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-agent/internal/specs"
	"github.com/jonathan/interview-agent/internal/types"
)

func caseSpec(t *testing.T) *types.InterviewSpec {
	t.Helper()
	spec, err := specs.NewCaseSpec(specs.CaseMaterial{
		ID:      "retail_margin",
		Title:   "Retail Margin Decline",
		Opening: "Your client is a grocery chain whose margins halved in two years.",
		Facts:   map[string]string{"margin": "4% down from 8%"},
		RedFlags: []string{
			"Never asks about the competitive landscape",
		},
	})
	require.NoError(t, err)
	return spec
}

func TestBuildAssessment(t *testing.T) {
	spec := caseSpec(t)
	scores := map[string]*types.CompetencyScore{
		"problem_structuring": {CompetencyID: "problem_structuring", CurrentLevel: 3, Confidence: types.ConfidenceMedium, Evidence: []string{"a", "b"}},
	}
	transcript := []types.Message{
		{Role: types.RoleInterviewer, Content: "Over to you."},
		{Role: types.RoleCandidate, Content: "I'd split this into revenue and cost."},
	}

	prompt, err := BuildAssessment(spec, scores, transcript, "structuring")
	require.NoError(t, err)

	assert.Contains(t, prompt, "problem_structuring")
	assert.Contains(t, prompt, "grocery chain")
	assert.Contains(t, prompt, "DO_NOT_HELP|MINIMAL_HELP|LIGHT_HELP|CHALLENGE|LET_SHINE")
	assert.Contains(t, prompt, "level 3, confidence medium, 2 observations")
	assert.Contains(t, prompt, "Candidate: I'd split this into revenue and cost.")
	// material-specific flags ride along with the rubric's
	assert.Contains(t, prompt, "Never asks about the competitive landscape")
}

func TestBuildAssessmentFirstRoundActions(t *testing.T) {
	spec, err := specs.NewFirstRoundSpec(specs.ScreeningMaterial{
		RoleTitle:      "Platform Engineer",
		JobDescription: "Kubernetes at scale.",
		CandidateCV:    "Ran a 200-node fleet.",
	})
	require.NoError(t, err)

	prompt, err := BuildAssessment(spec, nil, nil, "background")
	require.NoError(t, err)
	assert.Contains(t, prompt, "EXPLORE_DEEPER|MOVE_ON|REFRAME|PROBE_GAP|WRAP_UP")
	assert.NotContains(t, prompt, "DO_NOT_HELP")
}

func TestBuildResponse(t *testing.T) {
	spec := caseSpec(t)
	directive := types.Directive{
		Action:       types.ActionChallenge,
		Guidance:     "Push back on the revenue-only framing.",
		DataToReveal: "margin: 4% down from 8%",
	}
	constraint := &types.ConstraintResult{
		ShouldContinue: true,
		Urgency:        types.UrgencyWrapUpSoon,
		SuggestedPhase: "synthesis",
	}

	prompt, err := BuildResponse(spec, nil, directive, constraint, "analysis")
	require.NoError(t, err)

	assert.Contains(t, prompt, "CHALLENGE")
	assert.Contains(t, prompt, "Push back on the revenue-only framing.")
	assert.Contains(t, prompt, "running short")
	assert.Contains(t, prompt, "synthesis")
	assert.Contains(t, prompt, `"is_closing"`)
}

func TestBuildResponseMustEnd(t *testing.T) {
	spec := caseSpec(t)
	prompt, err := BuildResponse(spec, nil, types.Directive{Action: types.ActionDoNotHelp}, &types.ConstraintResult{
		Urgency: types.UrgencyMustEnd,
	}, "closing")
	require.NoError(t, err)
	assert.Contains(t, prompt, "must end now")
}

func TestOpeningCase(t *testing.T) {
	spec := caseSpec(t)
	opening := Opening(spec)
	assert.True(t, strings.HasPrefix(opening, "Your client is a grocery chain"))
	assert.True(t, strings.HasSuffix(opening, "Over to you."))
}

func TestOpeningCaseStripsDuplicateHandoff(t *testing.T) {
	spec := caseSpec(t)
	spec.ContextPacket.CaseStudy.CasePrompt = "The case.\n\nOver to you."
	opening := Opening(spec)
	assert.Equal(t, 1, strings.Count(opening, "Over to you."))
}

func TestOpeningFirstRound(t *testing.T) {
	spec, err := specs.NewFirstRoundSpec(specs.ScreeningMaterial{
		RoleTitle:      "Data Engineer",
		JobDescription: "jd",
		CandidateCV:    "cv",
	})
	require.NoError(t, err)

	opening := Opening(spec)
	assert.Contains(t, opening, "Data Engineer position")
	assert.Contains(t, opening, "most recent role")
}

func TestOpeningTechnical(t *testing.T) {
	spec, err := specs.NewTechnicalSpec(specs.ProblemMaterial{
		ID:               "two_sum",
		ProblemStatement: "Given an array and a target, return indices of two numbers that sum to it.",
		StarterCode:      "func twoSum(nums []int, target int) []int {}",
	})
	require.NoError(t, err)

	opening := Opening(spec)
	assert.Contains(t, opening, "Given an array and a target")
	assert.Contains(t, opening, "starter code")
}

func TestFormatTranscriptWindow(t *testing.T) {
	var messages []types.Message
	for i := 0; i < 15; i++ {
		messages = append(messages, types.Message{Role: types.RoleCandidate, Content: strings.Repeat("x", i+1)})
	}
	out := FormatTranscript(messages, 10)
	assert.Equal(t, 10, strings.Count(out, "Candidate:"))
	assert.NotContains(t, out, "Candidate: x\n")
}
