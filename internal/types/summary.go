package types

import "time"

// CompetencyBreakdown is the per-competency slice of a session summary
type CompetencyBreakdown struct {
	CompetencyID string         `json:"competency_id"`
	Name         string         `json:"name"`
	Tier         CompetencyTier `json:"tier"`
	Level        int            `json:"level"`
	LevelName    string         `json:"level_name"`
	Confidence   Confidence     `json:"confidence"`
	Evidence     []string       `json:"evidence"`
	RedFlags     []string       `json:"red_flags"`
	GreenFlags   []string       `json:"green_flags"`
	LevelHistory []LevelChange  `json:"level_history"`
}

// Summary is the read-only assessment snapshot derived from a session
type Summary struct {
	SessionID     string                `json:"session_id"`
	InterviewType InterviewType         `json:"interview_type"`
	Title         string                `json:"title"`
	OverallLevel  int                   `json:"overall_level"`
	LevelName     string                `json:"level_name"`
	Trend         Trend                 `json:"trend"`
	Competencies  []CompetencyBreakdown `json:"per_competency_breakdown"`
	RedFlags      []string              `json:"red_flags"`
	GreenFlags    []string              `json:"green_flags"`
	ExchangeCount int                   `json:"exchange_count"`
	StartedAt     time.Time             `json:"started_at"`
	Duration      string                `json:"duration"`
	IsComplete    bool                  `json:"is_complete"`
}
