package rubric

import (
	"github.com/jonathan/interview-agent/internal/types"
)

// levelNames is the universal 1-5 naming shared by every competency
var levelNames = map[int]string{
	5: "Outstanding",
	4: "Strong",
	3: "Adequate",
	2: "Weak",
	1: "Insufficient",
}

// LevelLabel returns the per-competency name of a level on the 1-5
// scale. Level 0 is the not-assessed state.
func LevelLabel(level int) string {
	if level == 0 {
		return "Not Assessed"
	}
	if name, ok := levelNames[level]; ok {
		return name
	}
	return "Unknown"
}

// stdLevels builds the 1-5 level map from per-level descriptions and
// indicators, ordered 5 down to 1.
func stdLevels(descriptions [5]string, indicators [5][]string) map[int]Level {
	out := make(map[int]Level, 5)
	for i := 0; i < 5; i++ {
		lvl := 5 - i
		out[lvl] = Level{
			Level:       lvl,
			Name:        levelNames[lvl],
			Description: descriptions[i],
			Indicators:  indicators[i],
		}
	}
	return out
}

var (
	catalog      map[string]*Competency
	catalogOrder []string
)

func init() {
	defs := []*Competency{
		{
			ID:          "problem_structuring",
			Name:        "Problem Structuring",
			Description: "Ability to break down ambiguous problems into logical, MECE components",
			Levels: stdLevels(
				[5]string{
					"Creates novel, insightful framework perfectly tailored to the problem",
					"Solid, logical structure that covers key dimensions",
					"Basic structure present but may miss dimensions or lack prioritization",
					"Minimal structure, jumps to analysis without framework",
					"No meaningful structure, chaotic approach",
				},
				[5][]string{
					{"Identifies non-obvious problem dimensions", "Framework reveals strategic tensions", "Prioritizes ruthlessly with clear rationale"},
					{"MECE breakdown of problem", "Clear prioritization of areas", "Explains reasoning behind structure"},
					{"Attempts to break down problem", "Covers obvious dimensions", "May need prompting to prioritize"},
					{"Lists topics rather than structures", "No clear prioritization", "Misses major dimensions"},
					{"Dives into random details", "No attempt to organize thinking", "Cannot articulate approach"},
				},
			),
			RedFlags: []string{
				"Uses generic framework without tailoring",
				"Cannot explain why structure fits this problem",
				"Abandons structure immediately when challenged",
			},
			GreenFlags: []string{
				"Creates custom framework for the specific problem",
				"Explicitly deprioritizes areas with reasoning",
				"Structure reveals insight about problem nature",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewCase},
		},
		{
			ID:          "analytical_reasoning",
			Name:        "Analytical Reasoning",
			Description: "Ability to draw logical conclusions from data and identify patterns",
			Levels: stdLevels(
				[5]string{
					"Extracts non-obvious insights, synthesizes across data sources",
					"Clear logical reasoning, appropriate conclusions from data",
					"Basic analysis present but may miss nuances",
					"Struggles to interpret data or draws wrong conclusions",
					"Cannot perform basic analysis",
				},
				[5][]string{
					{"Identifies second-order implications", "Connects disparate data points", "Generates testable hypotheses"},
					{"Interprets data correctly", "Draws reasonable conclusions", "Identifies key drivers"},
					{"Can work with data when provided", "Draws obvious conclusions", "Analysis is surface-level"},
					{"Misreads data", "Conclusions don't follow from evidence", "Ignores contradictory information"},
					{"Overwhelmed by data", "No logical reasoning present", "Makes random assertions"},
				},
			),
			RedFlags: []string{
				"Conclusion contradicts the data provided",
				"Ignores inconvenient data points",
				"Cannot explain the 'so what' of analysis",
			},
			GreenFlags: []string{
				"Proactively stress-tests own conclusions",
				"Asks for specific data to test hypotheses",
				"Identifies what would change their view",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewCase, types.InterviewTechnical},
		},
		{
			ID:          "quantitative_reasoning",
			Name:        "Quantitative Reasoning",
			Description: "Ability to work with numbers, make estimates, and perform calculations",
			Levels: stdLevels(
				[5]string{
					"Elegant quantitative approach, comfortable with ambiguity in numbers",
					"Accurate calculations, sensible estimates",
					"Can do calculations but may make errors or need guidance",
					"Struggles with quantitative aspects",
					"Cannot engage with quantitative elements",
				},
				[5][]string{
					{"Structures calculations for insight", "Sanity-checks results instinctively", "Translates numbers to business meaning"},
					{"Sets up problems correctly", "Arithmetic is accurate", "Makes reasonable assumptions"},
					{"Basic math skills present", "May make computational errors", "Needs help structuring quant problems"},
					{"Frequent calculation errors", "Cannot structure quant problems", "Unreasonable estimates"},
					{"Freezes on math", "Cannot make basic estimates", "No numerical intuition"},
				},
			),
			RedFlags: []string{
				"Off by order of magnitude without noticing",
				"Cannot set up basic percentage/ratio calculations",
				"Refuses to estimate when exact data unavailable",
			},
			GreenFlags: []string{
				"Proactively sanity-checks calculations",
				"Comfortable with back-of-envelope estimation",
				"Uses ranges and sensitivity analysis",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewCase, types.InterviewTechnical},
		},
		{
			ID:          "synthesis_recommendation",
			Name:        "Synthesis & Recommendation",
			Description: "Ability to synthesize analysis into clear, actionable recommendations",
			Levels: stdLevels(
				[5]string{
					"CEO-ready recommendation with clear logic, risks, and next steps",
					"Clear recommendation supported by analysis",
					"Has a recommendation but may lack conviction or completeness",
					"Unclear or unsupported recommendation",
					"Cannot synthesize or make recommendation",
				},
				[5][]string{
					{"Crisp, confident recommendation", "Acknowledges key risks and mitigations", "Prioritized implementation steps"},
					{"Takes a clear position", "Links back to analysis", "Actionable next steps"},
					{"Provides an answer", "Some supporting logic", "May hedge excessively"},
					{"Cannot commit to position", "Recommendation contradicts analysis", "No implementation thinking"},
					{"Restates facts without synthesis", "No clear recommendation", "Cannot answer 'so what'"},
				},
			),
			RedFlags: []string{
				"Recommendation contradicts own analysis",
				"Cannot prioritize when asked",
				"Presents options instead of recommendation",
			},
			GreenFlags: []string{
				"Leads with the answer",
				"Proactively addresses risks",
				"Clear on what success looks like",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewCase},
		},
		{
			ID:          "business_judgment",
			Name:        "Business Judgment",
			Description: "Commercial awareness and practical business sense",
			Levels: stdLevels(
				[5]string{
					"Sophisticated commercial instincts, sees business as integrated system",
					"Good commercial awareness, practical thinking",
					"Basic business awareness but may miss commercial nuances",
					"Limited commercial awareness",
					"No business sense evident",
				},
				[5][]string{
					{"Considers multiple stakeholders", "Understands competitive dynamics", "Balances short and long-term"},
					{"Considers customer perspective", "Aware of competitive context", "Thinks about execution"},
					{"Understands basic business concepts", "May miss stakeholder impacts", "Analysis somewhat academic"},
					{"Ignores business realities", "Recommendations impractical", "Thinks in abstractions"},
					{"Completely academic approach", "No understanding of business context", "Recommendations naive"},
				},
			),
			RedFlags: []string{
				"Ignores obvious implementation barriers",
				"Treats all stakeholders as having aligned interests",
				"No awareness of competitive dynamics",
			},
			GreenFlags: []string{
				"Proactively considers implementation challenges",
				"Asks about organizational constraints",
				"Thinks about customer and competitive response",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewCase, types.InterviewFirstRound},
		},
		{
			ID:          "communication",
			Name:        "Communication",
			Description: "Clarity, structure, and effectiveness of verbal communication",
			Levels: stdLevels(
				[5]string{
					"Exceptionally clear, engaging, adapts to audience perfectly",
					"Clear, well-organized communication",
					"Communicates adequately but may ramble or lack structure",
					"Difficult to follow or overly brief",
					"Cannot communicate effectively",
				},
				[5][]string{
					{"Complex ideas explained simply", "Compelling narrative structure", "Concise yet complete"},
					{"Easy to follow", "Good structure to responses", "Appropriate level of detail"},
					{"Gets point across eventually", "Some structure present", "May need to be redirected"},
					{"Hard to understand main point", "No structure to responses", "Doesn't answer questions asked"},
					{"Incoherent responses", "Cannot articulate thoughts", "Completely misses questions"},
				},
			),
			RedFlags: []string{
				"Cannot give a straight answer to direct questions",
				"Rambles for minutes without making a point",
				"Uses jargon to obscure lack of substance",
			},
			GreenFlags: []string{
				"Answers question directly then elaborates",
				"Signals structure ('Three things...')",
				"Asks clarifying questions when appropriate",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewFirstRound, types.InterviewCase, types.InterviewTechnical},
		},
		{
			ID:          "experience_depth",
			Name:        "Experience Depth",
			Description: "Genuine depth of experience vs surface-level exposure",
			Levels: stdLevels(
				[5]string{
					"Deep, hands-on experience with clear ownership and impact",
					"Solid experience with good depth in key areas",
					"Has experience but depth is uneven",
					"Experience appears exaggerated or shallow",
					"Claims not supported by evidence",
				},
				[5][]string{
					{"Can go multiple levels deep on any topic", "Specific numbers and outcomes", "Clear personal contribution"},
					{"Can elaborate on most claims", "Specific examples available", "Reasonable depth on probing"},
					{"Some areas have good depth", "Other areas surface-level", "Can go deeper with prompting"},
					{"Cannot provide specifics", "Stories don't hold up to probing", "Vague on details"},
					{"Stories contradict each other", "Cannot answer basic questions about own work", "No credible experience"},
				},
			),
			RedFlags: []string{
				"Story changes when probed from different angles",
				"Uses 'we' exclusively, cannot articulate own contribution",
				"Metrics don't pass basic sanity checks",
			},
			GreenFlags: []string{
				"Readily shares specific numbers and outcomes",
				"Acknowledges limitations and what they'd do differently",
				"Can explain the 'why' behind decisions",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewFirstRound},
		},
		{
			ID:          "self_awareness",
			Name:        "Self-Awareness",
			Description: "Accurate understanding of own strengths, weaknesses, and impact",
			Levels: stdLevels(
				[5]string{
					"Exceptional self-awareness, genuinely reflective",
					"Good self-awareness, can discuss development areas",
					"Some self-awareness but may be limited",
					"Limited self-awareness",
					"No self-awareness evident",
				},
				[5][]string{
					{"Accurately assesses own strengths and gaps", "Specific examples of learning from failure", "Growth mindset evident"},
					{"Honest about weaknesses", "Can give real failure examples", "Shows learning and adaptation"},
					{"Can discuss weaknesses if pushed", "Failures tend to be 'safe' examples", "Limited reflection depth"},
					{"Weaknesses are strengths in disguise", "Blames others for failures", "Cannot articulate development areas"},
					{"Cannot acknowledge any weakness", "No learning from past evident", "Defensive when probed"},
				},
			),
			RedFlags: []string{
				"Every failure was someone else's fault",
				"'Weakness' is actually a humble brag",
				"Self-assessment wildly inconsistent with evidence",
			},
			GreenFlags: []string{
				"Volunteers genuine weakness without being asked",
				"Can explain specific feedback received and actions taken",
				"Asks thoughtful questions about role fit",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewFirstRound},
		},
		{
			ID:          "role_motivation",
			Name:        "Role & Company Motivation",
			Description: "Genuine interest in this specific role and company",
			Levels: stdLevels(
				[5]string{
					"Deeply researched, compelling fit narrative",
					"Good understanding of role and company, clear motivation",
					"Basic understanding and motivation",
					"Limited research or motivation unclear",
					"No genuine interest evident",
				},
				[5][]string{
					{"Specific reasons for this company", "Clear career logic leading here", "Asks insightful questions"},
					{"Has done research", "Can articulate why this role", "Thoughtful questions"},
					{"General interest evident", "Some company knowledge", "Motivation somewhat generic"},
					{"Couldn't name company specifics", "Role could be anywhere", "Questions are generic"},
					{"Knows nothing about company", "Cannot articulate why here", "Going through the motions"},
				},
			),
			RedFlags: []string{
				"Cannot name what company actually does",
				"Story about why this role doesn't make sense",
				"No questions for interviewer",
			},
			GreenFlags: []string{
				"References specific company initiatives or values",
				"Career narrative clearly leads to this role",
				"Questions reveal genuine thought about the role",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewFirstRound},
		},
		{
			ID:          "problem_decomposition",
			Name:        "Problem Decomposition",
			Description: "Breaking down technical problems into solvable components",
			Levels: stdLevels(
				[5]string{
					"Elegant decomposition, identifies optimal subproblems",
					"Good decomposition, logical components",
					"Can decompose but may miss optimal structure",
					"Struggles to decompose, monolithic thinking",
					"Cannot break down problems",
				},
				[5][]string{
					{"Identifies clean abstractions", "Sees reusable components", "Considers edge cases upfront"},
					{"Breaks problem into clear parts", "Reasonable interfaces between parts", "Tackles complexity incrementally"},
					{"Attempts to break down problem", "Components somewhat coupled", "May need hints for better structure"},
					{"Tries to solve everything at once", "Cannot identify subproblems", "Gets lost in details"},
					{"No decomposition attempted", "Completely overwhelmed", "Cannot identify where to start"},
				},
			),
			RedFlags: []string{
				"Starts coding before understanding the problem",
				"Cannot explain approach at high level",
				"Components are tightly coupled",
			},
			GreenFlags: []string{
				"Draws out problem structure before coding",
				"Identifies helper functions proactively",
				"Thinks about interfaces and contracts",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewTechnical},
		},
		{
			ID:          "code_quality",
			Name:        "Code Quality",
			Description: "Clean, readable, maintainable code",
			Levels: stdLevels(
				[5]string{
					"Production-quality code, excellent style",
					"Good quality code, minor issues only",
					"Working code but quality issues present",
					"Poor code quality, hard to follow",
					"Code doesn't work or is incomprehensible",
				},
				[5][]string{
					{"Clean, idiomatic code", "Good naming and structure", "Handles edge cases gracefully"},
					{"Readable and well-organized", "Reasonable naming", "Mostly handles edge cases"},
					{"Code works but messy", "Some naming issues", "Needs cleanup before merge"},
					{"Code is confusing", "Poor naming throughout", "Edge cases ignored"},
					{"Syntax errors", "Logic fundamentally broken", "Cannot explain own code"},
				},
			),
			RedFlags: []string{
				"Magic numbers everywhere",
				"Functions doing multiple things",
				"Cannot explain what code does",
			},
			GreenFlags: []string{
				"Refactors proactively when seeing mess",
				"Asks about code style preferences",
				"Writes self-documenting code",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewTechnical},
		},
		{
			ID:          "testing_mindset",
			Name:        "Testing Mindset",
			Description: "Thinking about correctness, edge cases, and verification",
			Levels: stdLevels(
				[5]string{
					"Thorough testing approach, catches edge cases proactively",
					"Good testing awareness, catches most edge cases",
					"Some testing awareness but not comprehensive",
					"Limited testing awareness",
					"No testing mindset",
				},
				[5][]string{
					{"Identifies edge cases before coding", "Writes tests alongside code", "Thinks about failure modes"},
					{"Tests code as they go", "Identifies common edge cases", "Reasonable coverage"},
					{"Tests happy path", "Misses some edge cases", "Tests when prompted"},
					{"Doesn't test until asked", "Misses obvious edge cases", "Surprised by failures"},
					{"Cannot identify test cases", "Code has obvious bugs", "No verification of correctness"},
				},
			),
			RedFlags: []string{
				"Claims code is correct without testing",
				"Cannot generate test cases when asked",
				"Surprised by obvious edge cases",
			},
			GreenFlags: []string{
				"Asks about test cases upfront",
				"Tests as they implement",
				"Proactively identifies edge cases",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewTechnical},
		},
		{
			ID:          "technical_communication",
			Name:        "Technical Communication",
			Description: "Ability to explain technical thinking and trade-offs",
			Levels: stdLevels(
				[5]string{
					"Crystal clear technical communication",
					"Clear technical explanations",
					"Can explain but may need prompting",
					"Difficult to follow technical explanations",
					"Cannot communicate technical thinking",
				},
				[5][]string{
					{"Explains complex ideas simply", "Anticipates questions", "Adapts to audience"},
					{"Easy to follow reasoning", "Explains trade-offs well", "Thinks aloud effectively"},
					{"Explains when asked", "Sometimes hard to follow", "Needs prompting to elaborate"},
					{"Mumbles while coding", "Cannot explain approach", "Gets lost in details"},
					{"Silent while working", "Cannot explain own code", "No reasoning visible"},
				},
			),
			RedFlags: []string{
				"Cannot explain why they chose an approach",
				"Gets defensive when questioned",
				"Cannot discuss complexity or trade-offs",
			},
			GreenFlags: []string{
				"Thinks aloud naturally",
				"Discusses trade-offs unprompted",
				"Asks clarifying questions",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewTechnical},
		},
		{
			ID:          "complexity_optimization",
			Name:        "Complexity & Optimization",
			Description: "Understanding of algorithmic complexity and optimization",
			Levels: stdLevels(
				[5]string{
					"Deep complexity understanding, optimal solutions",
					"Good complexity analysis, reasonable optimization",
					"Basic complexity awareness",
					"Limited complexity understanding",
					"No understanding of complexity",
				},
				[5][]string{
					{"Identifies optimal complexity upfront", "Knows when to optimize", "Understands space-time trade-offs"},
					{"Correctly analyzes complexity", "Can improve from naive solution", "Good intuition for bottlenecks"},
					{"Knows O(n) vs O(n^2)", "Can optimize with hints", "May miss optimization opportunities"},
					{"Cannot analyze complexity", "Writes inefficient code", "No optimization instinct"},
					{"Doesn't know Big O", "Cannot discuss efficiency", "Brute force only"},
				},
			),
			RedFlags: []string{
				"O(n^3) solution when O(n) exists and is obvious",
				"Cannot explain complexity of own solution",
				"No awareness of scalability",
			},
			GreenFlags: []string{
				"Discusses complexity before coding",
				"Iterates from working to optimal",
				"Considers space complexity too",
			},
			ApplicableTypes: []types.InterviewType{types.InterviewTechnical},
		},
	}

	catalog = make(map[string]*Competency, len(defs))
	catalogOrder = make([]string, 0, len(defs))
	for _, c := range defs {
		catalog[c.ID] = c
		catalogOrder = append(catalogOrder, c.ID)
	}
}
