package report

import (
	"encoding/json"
	"io"

	"github.com/USC-NSL-DDB/ddbstat/internal/domain"
)

// SchemaVersion tags every NDJSON object so agents can detect drift.
const SchemaVersion = 1

// SummaryRecord is the NDJSON form of the aggregate figures.
type SummaryRecord struct {
	Type          string `json:"type"` // "summary"
	SchemaVersion int    `json:"schemaVersion"`
	GeneratedAt   string `json:"generated_at,omitempty"`

	TotalSessions  int `json:"total_sessions"`
	ActiveSessions int `json:"active_sessions"`
	Users          int `json:"users"`
	OpenSessions   int `json:"open_sessions"`
	Outliers       int `json:"outlier_sessions"`

	AvgSteps            float64 `json:"avg_steps"`
	AvgBreakpointOps    float64 `json:"avg_breakpoint_ops"`
	AvgFrameSwitches    float64 `json:"avg_frame_switches"`
	AvgDbtFrameSwitches float64 `json:"avg_dbt_frame_switches"`

	AvgSteppingSeconds   float64 `json:"avg_stepping_seconds"`
	SteppingOps          int     `json:"stepping_ops"`
	TotalSteppingSeconds float64 `json:"total_stepping_seconds"`

	MultiDebuggee    int     `json:"multi_debuggee_sessions"`
	PctMultiDebuggee float64 `json:"pct_multi_debuggee"`

	AvgSessionSeconds float64 `json:"avg_session_seconds"`
	AvgPauseSeconds   float64 `json:"avg_pause_seconds"`

	PctPaused           float64 `json:"pct_paused"`
	TotalPauseSeconds   float64 `json:"total_pause_seconds"`
	TotalSessionSeconds float64 `json:"total_session_seconds"`

	AvgJumps         float64 `json:"avg_jumps"`
	AvgSignals       float64 `json:"avg_signals"`
	AvgVariableExams float64 `json:"avg_variable_examinations"`
}

// SessionRecord is the NDJSON form of one session's breakdown.
type SessionRecord struct {
	Type          string `json:"type"` // "session"
	SchemaVersion int    `json:"schemaVersion"`
	Index         int    `json:"index"`

	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`

	StartTS         int64   `json:"start_ts"`
	EndTS           int64   `json:"end_ts"`
	DurationSeconds float64 `json:"duration_seconds"`
	Open            bool    `json:"open,omitempty"`

	Steps                int `json:"steps"`
	BreakpointOps        int `json:"breakpoint_ops"`
	FrameSwitches        int `json:"frame_switches"`
	DbtFrameSwitches     int `json:"dbt_frame_switches"`
	PauseCount           int `json:"pause_count"`
	ContinueCount        int `json:"continue_count"`
	JumpCount            int `json:"jump_count"`
	SignalCount          int `json:"signal_count"`
	VariableExaminations int `json:"variable_examinations"`

	SteppingSeconds float64  `json:"stepping_seconds"`
	PausedSeconds   float64  `json:"paused_seconds"`
	Debuggees       []string `json:"debuggees_viewed,omitempty"`
}

// NDJSONWriter emits one JSON object per line for machine consumers.
type NDJSONWriter struct {
	enc *json.Encoder
}

// NewNDJSONWriter creates a writer emitting to w.
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{enc: json.NewEncoder(w)}
}

// WriteSummary emits the aggregate metrics object.
func (w *NDJSONWriter) WriteSummary(sum Summary, generatedAt string) error {
	return w.enc.Encode(SummaryRecord{
		Type:                 "summary",
		SchemaVersion:        SchemaVersion,
		GeneratedAt:          generatedAt,
		TotalSessions:        sum.TotalSessions,
		ActiveSessions:       sum.ActiveSessions,
		Users:                sum.Users,
		OpenSessions:         sum.OpenSessions,
		Outliers:             sum.Outliers,
		AvgSteps:             sum.AvgSteps,
		AvgBreakpointOps:     sum.AvgBreakpointOps,
		AvgFrameSwitches:     sum.AvgFrameSwitches,
		AvgDbtFrameSwitches:  sum.AvgDbtFrameSwitches,
		AvgSteppingSeconds:   sum.AvgSteppingSeconds,
		SteppingOps:          sum.SteppingOps,
		TotalSteppingSeconds: sum.TotalSteppingSeconds,
		MultiDebuggee:        sum.MultiDebuggee,
		PctMultiDebuggee:     sum.PctMultiDebuggee,
		AvgSessionSeconds:    sum.AvgSessionSeconds,
		AvgPauseSeconds:      sum.AvgPauseSeconds,
		PctPaused:            sum.PctPaused,
		TotalPauseSeconds:    sum.TotalPauseSeconds,
		TotalSessionSeconds:  sum.TotalSessionSeconds,
		AvgJumps:             sum.AvgJumps,
		AvgSignals:           sum.AvgSignals,
		AvgVariableExams:     sum.AvgVariableExams,
	})
}

// WriteSession emits one per-session object. index is 1-based to match the
// text table.
func (w *NDJSONWriter) WriteSession(index int, s *domain.DebugSession) error {
	return w.enc.Encode(SessionRecord{
		Type:                 "session",
		SchemaVersion:        SchemaVersion,
		Index:                index,
		SessionID:            s.SessionID,
		UserID:               s.UserID,
		StartTS:              s.StartTS,
		EndTS:                s.EndTS,
		DurationSeconds:      s.Duration().Seconds(),
		Open:                 s.Open,
		Steps:                s.StepCount,
		BreakpointOps:        s.BreakpointOps,
		FrameSwitches:        s.FrameSwitches,
		DbtFrameSwitches:     s.DbtFrameSwitches,
		PauseCount:           s.PauseCount,
		ContinueCount:        s.ContinueCount,
		JumpCount:            s.JumpCount,
		SignalCount:          s.SignalCount,
		VariableExaminations: s.VariableExaminations,
		SteppingSeconds:      s.TotalSteppingTime().Seconds(),
		PausedSeconds:        s.TotalPauseTime().Seconds(),
		Debuggees:            s.DebuggeesViewed(),
	})
}

// WriteWarning emits a data-quality warning (open sessions, outliers,
// skipped input lines).
func (w *NDJSONWriter) WriteWarning(message string) error {
	return w.enc.Encode(map[string]interface{}{
		"type":          "warning",
		"schemaVersion": SchemaVersion,
		"message":       message,
	})
}

// WriteError emits a machine-readable failure with a stable code.
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	obj := map[string]interface{}{
		"type":          "error",
		"schemaVersion": SchemaVersion,
		"code":          code,
		"message":       message,
	}
	if len(hint) > 0 && hint[0] != "" {
		obj["hint"] = hint[0]
	}
	return w.enc.Encode(obj)
}
