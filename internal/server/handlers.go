package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/interview-agent/internal/caselib"
	"github.com/jonathan/interview-agent/internal/schemas"
	"github.com/jonathan/interview-agent/internal/session"
	"github.com/jonathan/interview-agent/internal/specs"
	"github.com/jonathan/interview-agent/internal/types"
)

// CreateInterviewRequest starts a session either from a library case id
// or from inline material.
type CreateInterviewRequest struct {
	CandidateID string            `json:"candidate_id,omitempty"`
	CaseID      string            `json:"case_id,omitempty"`
	Material    *caselib.Material `json:"material,omitempty"`
}

// RespondRequest carries one candidate answer.
type RespondRequest struct {
	Message string `json:"message"`
}

// TurnResponse is the per-turn view returned after session creation and
// after each candidate answer.
type TurnResponse struct {
	SessionID     string        `json:"session_id"`
	Reply         string        `json:"reply"`
	Phase         string        `json:"phase"`
	ExchangeCount int           `json:"exchange_count"`
	CurrentLevel  int           `json:"current_level"`
	LevelName     string        `json:"level_name"`
	LevelTrend    types.Trend   `json:"level_trend"`
	Urgency       types.Urgency `json:"urgency"`
	IsComplete    bool          `json:"is_complete"`
	FinalScore    *float64      `json:"final_score,omitempty"`
}

func turnResponse(state *types.SessionState) TurnResponse {
	return TurnResponse{
		SessionID:     state.SessionID,
		Reply:         state.LastInterviewerMessage(),
		Phase:         state.CurrentPhase,
		ExchangeCount: state.ExchangeCount(),
		CurrentLevel:  state.OverallLevel,
		LevelName:     state.LevelName,
		LevelTrend:    state.LevelTrend,
		Urgency:       state.Urgency,
		IsComplete:    state.IsComplete,
		FinalScore:    state.FinalScore,
	}
}

// handleCreateInterview starts a new session from a library case id or
// inline material.
func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	var req CreateInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.CaseID == "" && req.Material == nil {
		s.errorResponse(w, http.StatusBadRequest, "Either case_id or material is required")
		return
	}
	if req.CaseID != "" && req.Material != nil {
		s.errorResponse(w, http.StatusBadRequest, "case_id and material are mutually exclusive")
		return
	}

	spec, err := s.buildSpec(&req)
	if err != nil {
		var notFound *caselib.NotFoundError
		if errors.As(err, &notFound) {
			s.errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		// Bad inline material or an unbuildable spec is a client problem.
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := s.engine.Start(r.Context(), spec, req.CandidateID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, turnResponse(state))
}

func (s *Server) buildSpec(req *CreateInterviewRequest) (*types.InterviewSpec, error) {
	if req.CaseID != "" {
		if s.library == nil {
			return nil, &caselib.NotFoundError{ID: req.CaseID}
		}
		return s.library.BuildSpec(req.CaseID)
	}
	return caselib.BuildSpec(req.Material)
}

// handleRespond runs one full turn for a candidate answer.
func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		s.errorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	state, err := s.engine.Respond(r.Context(), sessionID, req.Message)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, turnResponse(state))
}

// handleGetInterview returns the full session state.
func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.Get(r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, state)
}

// handleGetSummary returns the hiring-decision summary for a session.
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.Summary(r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

// handleListInterviews lists active and completed session ids.
func (s *Server) handleListInterviews(w http.ResponseWriter, _ *http.Request) {
	ids := s.engine.List()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sessions": ids,
		"count":    len(ids),
	})
}

// handleListCases lists the loaded material library.
func (s *Server) handleListCases(w http.ResponseWriter, _ *http.Request) {
	if s.library == nil {
		s.errorResponse(w, http.StatusNotFound, "No material library configured")
		return
	}
	entries := s.library.List()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"cases": entries,
		"count": len(entries),
	})
}

// handleGetCase returns one library material document.
func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		s.errorResponse(w, http.StatusNotFound, "No material library configured")
		return
	}
	material, err := s.library.Get(r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, material)
}

// serviceError maps domain errors onto HTTP statuses.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	var (
		sessionNotFound *session.NotFoundError
		caseNotFound    *caselib.NotFoundError
		busy            *session.BusyError
		invalidState    *session.InvalidStateError
		configErr       *specs.ConfigurationError
		validationErr   *schemas.ValidationError
	)

	switch {
	case errors.As(err, &sessionNotFound), errors.As(err, &caseNotFound):
		s.errorResponse(w, http.StatusNotFound, err.Error())
	case errors.As(err, &busy):
		s.errorResponse(w, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &invalidState):
		s.errorResponse(w, http.StatusConflict, err.Error())
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		s.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
	}
}
