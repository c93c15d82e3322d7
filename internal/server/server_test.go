package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-agent/internal/oracle"
	"github.com/jonathan/interview-agent/internal/session"
	"github.com/jonathan/interview-agent/internal/types"
)

// fakeOracle gives deterministic turns without a real model behind it.
type fakeOracle struct {
	assessFn  func(req oracle.AssessmentRequest) (*oracle.Assessment, error)
	respondFn func(req oracle.ResponseRequest) (*oracle.Response, error)
}

func (f *fakeOracle) Assess(_ context.Context, req oracle.AssessmentRequest) (*oracle.Assessment, error) {
	if f.assessFn != nil {
		return f.assessFn(req)
	}
	return oracle.DegradedAssessment(req.Spec.InterviewType), nil
}

func (f *fakeOracle) Respond(_ context.Context, req oracle.ResponseRequest) (*oracle.Response, error) {
	if f.respondFn != nil {
		return f.respondFn(req)
	}
	return &oracle.Response{Utterance: "Tell me more.", Phase: req.Phase}, nil
}

const caseMaterialJSON = `{
	"candidate_id": "cand-1",
	"material": {
		"interview_type": "case",
		"case": {
			"id": "airline_profit",
			"title": "Airline Profitability",
			"opening": "Your client is a regional airline losing money on a third of its routes."
		}
	}
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine := session.NewEngine(&fakeOracle{})
	s, err := New(Config{Port: 0}, engine)
	require.NoError(t, err)
	return s
}

func newTestServerWithLibrary(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	material := `{
		"interview_type": "case",
		"case": {
			"id": "airline_profit",
			"title": "Airline Profitability",
			"opening": "Your client is a regional airline losing money on a third of its routes."
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "airline.json"), []byte(material), 0644))

	engine := session.NewEngine(&fakeOracle{})
	s, err := New(Config{Port: 0, LibraryDir: dir}, engine)
	require.NoError(t, err)
	return s
}

func createInterview(t *testing.T, s *Server, body string) TurnResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/interviews", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleCreateInterview(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var turn TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	return turn
}

func TestHandleCreateInterview_InlineMaterial(t *testing.T) {
	s := newTestServer(t)

	turn := createInterview(t, s, caseMaterialJSON)
	assert.NotEmpty(t, turn.SessionID)
	assert.Equal(t, "opening", turn.Phase)
	assert.Contains(t, turn.Reply, "regional airline")
	assert.Equal(t, "NOT_ASSESSED", turn.LevelName)
	assert.False(t, turn.IsComplete)
}

func TestHandleCreateInterview_FromLibrary(t *testing.T) {
	s := newTestServerWithLibrary(t)

	turn := createInterview(t, s, `{"case_id": "airline_profit"}`)
	assert.NotEmpty(t, turn.SessionID)
	assert.Contains(t, turn.Reply, "regional airline")
}

func TestHandleCreateInterview_UnknownLibraryID(t *testing.T) {
	s := newTestServerWithLibrary(t)

	req := httptest.NewRequest(http.MethodPost, "/interviews", strings.NewReader(`{"case_id": "nope"}`))
	w := httptest.NewRecorder()

	s.handleCreateInterview(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleCreateInterview_MissingBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/interviews", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	s.handleCreateInterview(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "case_id or material")
}

func TestHandleCreateInterview_BothSourcesRejected(t *testing.T) {
	s := newTestServerWithLibrary(t)

	body := strings.Replace(caseMaterialJSON, `"candidate_id": "cand-1",`, `"case_id": "airline_profit",`, 1)
	req := httptest.NewRequest(http.MethodPost, "/interviews", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleCreateInterview(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateInterview_InvalidMaterial(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/interviews",
		strings.NewReader(`{"material": {"interview_type": "panel"}}`))
	w := httptest.NewRecorder()

	s.handleCreateInterview(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRespond(t *testing.T) {
	s := newTestServer(t)
	turn := createInterview(t, s, caseMaterialJSON)

	req := httptest.NewRequest(http.MethodPost, "/interviews/"+turn.SessionID+"/respond",
		strings.NewReader(`{"message": "I would segment the routes by cost structure."}`))
	req.SetPathValue("id", turn.SessionID)
	w := httptest.NewRecorder()

	s.handleRespond(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var next TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &next))
	assert.Equal(t, turn.SessionID, next.SessionID)
	assert.Equal(t, "Tell me more.", next.Reply)
	assert.Equal(t, 1, next.ExchangeCount)
}

func TestHandleRespond_EmptyMessage(t *testing.T) {
	s := newTestServer(t)
	turn := createInterview(t, s, caseMaterialJSON)

	req := httptest.NewRequest(http.MethodPost, "/interviews/"+turn.SessionID+"/respond",
		strings.NewReader(`{"message": ""}`))
	req.SetPathValue("id", turn.SessionID)
	w := httptest.NewRecorder()

	s.handleRespond(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRespond_UnknownSession(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/interviews/missing/respond",
		strings.NewReader(`{"message": "hello"}`))
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	s.handleRespond(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetInterview(t *testing.T) {
	s := newTestServer(t)
	turn := createInterview(t, s, caseMaterialJSON)

	req := httptest.NewRequest(http.MethodGet, "/interviews/"+turn.SessionID, nil)
	req.SetPathValue("id", turn.SessionID)
	w := httptest.NewRecorder()

	s.handleGetInterview(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var state types.SessionState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, turn.SessionID, state.SessionID)
	assert.Equal(t, "cand-1", state.CandidateID)
	require.Len(t, state.Transcript, 1)
}

func TestHandleGetInterview_NotFound(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/interviews/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	s.handleGetInterview(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetSummary(t *testing.T) {
	s := newTestServer(t)
	turn := createInterview(t, s, caseMaterialJSON)

	req := httptest.NewRequest(http.MethodGet, "/interviews/"+turn.SessionID+"/summary", nil)
	req.SetPathValue("id", turn.SessionID)
	w := httptest.NewRecorder()

	s.handleGetSummary(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var summary types.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, turn.SessionID, summary.SessionID)
	assert.Equal(t, "Airline Profitability", summary.Title)
	assert.NotEmpty(t, summary.Competencies)
}

func TestHandleListInterviews(t *testing.T) {
	s := newTestServer(t)
	createInterview(t, s, caseMaterialJSON)

	req := httptest.NewRequest(http.MethodGet, "/interviews", nil)
	w := httptest.NewRecorder()

	s.handleListInterviews(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Sessions []string `json:"sessions"`
		Count    int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Sessions, 1)
}

func TestHandleListCases(t *testing.T) {
	s := newTestServerWithLibrary(t)

	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	w := httptest.NewRecorder()

	s.handleListCases(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestHandleListCases_NoLibrary(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	w := httptest.NewRecorder()

	s.handleListCases(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetCase(t *testing.T) {
	s := newTestServerWithLibrary(t)

	req := httptest.NewRequest(http.MethodGet, "/cases/airline_profit", nil)
	req.SetPathValue("id", "airline_profit")
	w := httptest.NewRecorder()

	s.handleGetCase(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var material map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &material))
	assert.Equal(t, "case", material["interview_type"])
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestRouter_EndToEndTurn(t *testing.T) {
	s := newTestServer(t)
	handler := s.withLogging(s.withCORS(s.routes()))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interviews", strings.NewReader(caseMaterialJSON)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var turn TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interviews/"+turn.SessionID+"/respond",
		strings.NewReader(`{"message": "First I would size the losses per route."}`)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestCORS_PreflightOK(t *testing.T) {
	s := newTestServer(t)
	handler := s.withCORS(s.routes())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/interviews", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
