package domain

import (
	"sort"
	"time"
)

// DebugSession is the unit of aggregation: one debug-session window for one
// user, bounded by an adapter initialization marker and the earliest
// terminating marker. The builder populates identity, boundaries and the
// event subset; the interpreter populates everything else in a single pass.
type DebugSession struct {
	UserID    string
	SessionID string // adapter session.id that opened the window

	StartTS int64 // nanoseconds, inclusive
	EndTS   int64 // nanoseconds, inclusive
	Open    bool  // no terminating marker was observed for this window

	Events []Event

	StepCount            int // step_over + step_in + step_out
	BreakpointOps        int // set_breakpoints
	FrameSwitches        int // select_frame
	DbtFrameSwitches     int // select_frame with after_boundary=true
	PauseCount           int
	ContinueCount        int
	JumpCount            int // reverse_continue + step_back
	SignalCount          int // no contributing action exists; kept for the output schema
	VariableExaminations int // expand_variable + evaluate

	// Distinct debuggee-session identifiers referenced by any event's
	// session= parameter, excluding the "undefined" sentinel.
	UniqueSessionsViewed map[string]struct{}

	StepDurations  []int64 // completed stepping intervals, nanoseconds
	PauseDurations []int64 // completed pause intervals, nanoseconds
}

// NewDebugSession creates a session with identity and time boundaries only.
func NewDebugSession(userID, sessionID string, startTS, endTS int64) *DebugSession {
	return &DebugSession{
		UserID:               userID,
		SessionID:            sessionID,
		StartTS:              startTS,
		EndTS:                endTS,
		UniqueSessionsViewed: make(map[string]struct{}),
	}
}

// Duration is the full session window length.
func (s *DebugSession) Duration() time.Duration {
	if s.EndTS < s.StartTS {
		return 0
	}
	return time.Duration(s.EndTS - s.StartTS)
}

// TotalSteppingTime is the sum of all completed stepping intervals.
func (s *DebugSession) TotalSteppingTime() time.Duration {
	return sumNanos(s.StepDurations)
}

// TotalPauseTime is the sum of all completed pause intervals.
func (s *DebugSession) TotalPauseTime() time.Duration {
	return sumNanos(s.PauseDurations)
}

// Active reports whether the session saw any stepping, breakpoint or
// frame-switch activity. Inactive sessions are noise from idle windows.
func (s *DebugSession) Active() bool {
	return s.StepCount > 0 || s.BreakpointOps > 0 || s.FrameSwitches > 0
}

// DebuggeesViewed returns the unique debuggee-session identifiers in sorted
// order, for stable rendering.
func (s *DebugSession) DebuggeesViewed() []string {
	if len(s.UniqueSessionsViewed) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.UniqueSessionsViewed))
	for id := range s.UniqueSessionsViewed {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func sumNanos(ds []int64) time.Duration {
	var total int64
	for _, d := range ds {
		total += d
	}
	return time.Duration(total)
}
