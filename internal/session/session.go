// Package session runs the interview state machine: one engine per
// process, one state record per interview, and a strict three-stage
// pipeline per candidate answer. All judgment calls are delegated to
// the injected oracle; everything in this package is deterministic.
package session

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/interview-agent/internal/oracle"
	"github.com/jonathan/interview-agent/internal/prompts"
	"github.com/jonathan/interview-agent/internal/scoring"
	"github.com/jonathan/interview-agent/internal/specs"
	"github.com/jonathan/interview-agent/internal/types"
)

// Engine orchestrates interview sessions.
type Engine struct {
	store  *Store
	oracle oracle.Oracle
	agg    *scoring.Aggregator
	now    func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces the engine's time source. Tests use this to drive
// duration-based constraints deterministically.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithAggregator replaces the default scoring aggregator.
func WithAggregator(agg *scoring.Aggregator) Option {
	return func(e *Engine) { e.agg = agg }
}

// NewEngine creates an engine backed by an in-memory store.
func NewEngine(o oracle.Oracle, opts ...Option) *Engine {
	e := &Engine{
		store:  NewStore(),
		oracle: o,
		agg:    scoring.NewAggregator(scoring.DefaultConfig()),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start creates a session from a validated spec and produces the
// deterministic opening message. The session is immediately in
// progress: the first candidate answer can follow.
func (e *Engine) Start(ctx context.Context, spec *types.InterviewSpec, candidateID string) (*types.SessionState, error) {
	if err := specs.Validate(spec); err != nil {
		return nil, err
	}

	now := e.now()
	state := &types.SessionState{
		SessionID:        uuid.NewString(),
		CandidateID:      candidateID,
		StartedAt:        now,
		Spec:             spec,
		CurrentPhase:     spec.Phases[0].ID,
		CompetencyScores: scoring.InitScores(spec),
		LevelName:        scoring.LevelName(0),
		LevelTrend:       types.TrendStable,
		Urgency:          types.UrgencyNormal,
	}

	state.Transcript = append(state.Transcript, types.Message{
		Role:      types.RoleInterviewer,
		Content:   prompts.Opening(spec),
		Timestamp: now,
	})

	e.store.Put(state)
	log.Printf("session %s started: %s (%s)", state.SessionID, spec.Title, spec.InterviewType)
	return state, nil
}

// Respond processes one candidate answer through the turn pipeline:
// assess, respond, check constraints. The transcript gains exactly one
// candidate message and at least one interviewer message; on the turn
// that completes the session a closing message is synthesized if the
// response stage did not already close.
func (e *Engine) Respond(ctx context.Context, sessionID, answer string) (*types.SessionState, error) {
	release, err := e.store.Acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	state, err := e.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if state.IsComplete {
		return nil, &InvalidStateError{SessionID: sessionID, Op: "respond to", Reason: "interview is complete"}
	}

	state.Transcript = append(state.Transcript, types.Message{
		Role:      types.RoleCandidate,
		Content:   answer,
		Timestamp: e.now(),
	})

	e.assessStage(ctx, state)
	response := e.respondStage(ctx, state)
	e.constraintStage(state, response)

	return state, nil
}

// assessStage scores the latest answer and sets the turn's directive.
// Oracle failure is absorbed: scores stay untouched and the directive
// degrades to neutral, because losing one assessment must not lose the
// interview.
func (e *Engine) assessStage(ctx context.Context, state *types.SessionState) {
	assessment, err := e.oracle.Assess(ctx, oracle.AssessmentRequest{
		Spec:       state.Spec,
		Scores:     state.CompetencyScores,
		Transcript: state.Transcript,
		Phase:      state.CurrentPhase,
	})
	if err != nil {
		log.Printf("session %s: assessment failed, continuing degraded: %v", state.SessionID, err)
		assessment = oracle.DegradedAssessment(state.Spec.InterviewType)
	}

	now := e.now()
	exchange := state.ExchangeCount()
	for id, ca := range assessment.PerCompetency {
		score := state.CompetencyScores[id]
		if score == nil {
			continue
		}
		e.agg.Apply(score, scoring.Observation{
			Level:         ca.Level,
			Evidence:      ca.Evidence,
			Justification: ca.Justification,
			RedFlags:      ca.RedFlags,
			GreenFlags:    ca.GreenFlags,
		}, exchange, now)
	}

	// Trend is derived, never reported: the fresh aggregate is compared
	// against the level the previous turn left in state.
	prior := state.OverallLevel
	state.OverallLevel = e.agg.Overall(state.CompetencyScores, state.Spec)
	state.LevelName = scoring.LevelName(state.OverallLevel)
	switch {
	case state.OverallLevel > prior:
		state.LevelTrend = types.TrendUp
	case state.OverallLevel < prior:
		state.LevelTrend = types.TrendDown
	default:
		state.LevelTrend = types.TrendStable
	}
	state.RedFlags = collectFlags(state, func(s *types.CompetencyScore) []string { return s.RedFlags })
	state.GreenFlags = collectFlags(state, func(s *types.CompetencyScore) []string { return s.GreenFlags })

	directive := assessment.Directive()
	state.Directive = &directive
}

// respondStage produces the interviewer's next message from the
// directive and the previous turn's constraint guidance. The directive
// is scratch for the current turn: it is consumed here and cleared so
// it never outlives the turn that set it.
func (e *Engine) respondStage(ctx context.Context, state *types.SessionState) *oracle.Response {
	var directive types.Directive
	if state.Directive != nil {
		directive = *state.Directive
	}
	state.Directive = nil

	response, err := e.oracle.Respond(ctx, oracle.ResponseRequest{
		Spec:       state.Spec,
		Transcript: state.Transcript,
		Directive:  directive,
		Constraint: state.Constraint,
		Phase:      state.CurrentPhase,
	})
	if err != nil {
		log.Printf("session %s: response failed, continuing degraded: %v", state.SessionID, err)
		response = &oracle.Response{
			Utterance: "Let's keep going. Walk me through your thinking on that.",
			Degraded:  true,
		}
	}

	state.Transcript = append(state.Transcript, types.Message{
		Role:      types.RoleInterviewer,
		Content:   response.Utterance,
		Timestamp: e.now(),
	})

	// The response stage may move the conversation to another declared
	// phase. Undeclared phase ids are ignored.
	if response.Phase != "" {
		if idx := state.Spec.PhaseIndex(response.Phase); idx >= 0 {
			phaseID := state.Spec.Phases[idx].ID
			if phaseID != state.CurrentPhase {
				state.CurrentPhase = phaseID
				state.PhaseEnteredAtExchange = state.ExchangeCount()
			}
		}
	}

	return response
}

// constraintStage evaluates limits and coverage, stores the advisory
// result for the next turn, and decides completion. Hard limits always
// complete the session; a closing response completes it only when early
// termination is allowed and the exchange floor is met.
func (e *Engine) constraintStage(state *types.SessionState, response *oracle.Response) {
	check := checkConstraints(state, e.now())
	state.Constraint = check.Result

	// Urgency only ratchets up within a session.
	if check.Result.Urgency.Escalates(state.Urgency) {
		state.Urgency = check.Result.Urgency
	}

	c := state.Spec.Constraints
	closing := response.IsClosing && c.AllowEarlyTermination && state.ExchangeCount() >= c.MinExchangesForCompletion

	if !check.HardStop && !closing {
		return
	}

	e.complete(state, check.Reason, response.IsClosing)
}

// complete finalizes the session, synthesizing a closing message unless
// the response stage flagged its own message as closing. The flag is
// the only signal consulted: the message text is never inspected.
func (e *Engine) complete(state *types.SessionState, reason string, alreadyClosed bool) {
	state.IsComplete = true
	finalScore := float64(state.OverallLevel)
	state.FinalScore = &finalScore

	if !alreadyClosed {
		state.Transcript = append(state.Transcript, types.Message{
			Role:      types.RoleInterviewer,
			Content:   closingMessage(state.Spec),
			Timestamp: e.now(),
		})
	}

	if reason == "" {
		reason = "closing reached"
	}
	log.Printf("session %s complete (%s): level %d (%s)", state.SessionID, reason, state.OverallLevel, state.LevelName)
}

// Get returns the state of a session.
func (e *Engine) Get(sessionID string) (*types.SessionState, error) {
	return e.store.Get(sessionID)
}

// Summary builds the assessment summary for a session.
func (e *Engine) Summary(sessionID string) (*types.Summary, error) {
	state, err := e.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return buildSummary(state, e.now()), nil
}

// List returns all known session ids.
func (e *Engine) List() []string {
	return e.store.IDs()
}

// collectFlags merges per-competency flags into a deduplicated
// session-level list, preserving insertion order across competencies in
// spec order.
func collectFlags(state *types.SessionState, pick func(*types.CompetencyScore) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, sel := range state.Spec.Competencies {
		score := state.CompetencyScores[sel.CompetencyID]
		if score == nil {
			continue
		}
		for _, flag := range pick(score) {
			if _, ok := seen[flag]; ok {
				continue
			}
			seen[flag] = struct{}{}
			out = append(out, flag)
		}
	}
	return out
}

// closingMessage picks the archetype-appropriate closing.
func closingMessage(spec *types.InterviewSpec) string {
	switch spec.InterviewType {
	case types.InterviewFirstRound:
		return "That's been really helpful - thank you for sharing your background with me. Do you have any questions for me about the role or the company before we wrap up?"
	case types.InterviewTechnical:
		return "That's a good stopping point. Thanks for working through this problem with me. Let's briefly discuss what you'd do if you had more time."
	default:
		return "That's a good place to wrap up. Thank you for working through this case with me."
	}
}
