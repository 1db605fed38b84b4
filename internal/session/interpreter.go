package session

import (
	"sort"

	"github.com/USC-NSL-DDB/ddbstat/internal/domain"
)

// Action tokens recognized by the interpreter.
const (
	actionStepOver        = "step_over"
	actionStepIn          = "step_in"
	actionStepOut         = "step_out"
	actionStop            = "stop"
	actionContinue        = "continue"
	actionSetBreakpoints  = "set_breakpoints"
	actionSelectFrame     = "select_frame"
	actionPause           = "pause"
	actionReverseContinue = "reverse_continue"
	actionStepBack        = "step_back"
	actionExpandVariable  = "expand_variable"
	actionEvaluate        = "evaluate"
)

// Interpret replays the session's events in timestamp order through the
// counter/duration state machine, mutating the session in place. Counters
// are reset on entry, so re-running on an unmodified session is a no-op,
// and the input order of the event slice does not matter.
//
// Stepping or pause intervals still open when the events run out are
// dropped: their true end is unknowable.
func Interpret(s *domain.DebugSession, opts Options) {
	sort.SliceStable(s.Events, func(i, j int) bool {
		return s.Events[i].Timestamp < s.Events[j].Timestamp
	})

	s.StepCount = 0
	s.BreakpointOps = 0
	s.FrameSwitches = 0
	s.DbtFrameSwitches = 0
	s.PauseCount = 0
	s.ContinueCount = 0
	s.JumpCount = 0
	s.SignalCount = 0
	s.VariableExaminations = 0
	s.UniqueSessionsViewed = make(map[string]struct{})
	s.StepDurations = nil
	s.PauseDurations = nil

	resume := opts.resumeReasonSet()
	var stepping, paused interval

	for i := range s.Events {
		ev := &s.Events[i]
		act, ok := domain.ParseActivity(ev.Body)
		if !ok {
			// Includes the init/stop markers bounding the window.
			continue
		}
		ts := ev.Timestamp

		// Any action referencing a debuggee session counts it as viewed.
		if id := act.Param("session"); id != "" && id != domain.SentinelUndefined {
			s.UniqueSessionsViewed[id] = struct{}{}
		}

		switch act.Action {
		case actionStepOver, actionStepIn, actionStepOut:
			s.StepCount++
			stepping.start(ts)
			// A step always implicitly resumes from pause.
			if d, closed := paused.stop(ts); closed {
				s.PauseDurations = append(s.PauseDurations, d)
			}

		case actionStop:
			if ev.Service() != opts.AdapterService {
				break
			}
			if _, resumes := resume[act.Param("reason")]; resumes {
				if d, closed := stepping.stop(ts); closed {
					s.StepDurations = append(s.StepDurations, d)
				}
			}
			// Every halt enters a paused state, whatever the reason.
			paused.start(ts)

		case actionContinue:
			if ev.Service() != opts.AdapterService {
				break
			}
			if d, closed := paused.stop(ts); closed {
				s.PauseDurations = append(s.PauseDurations, d)
			}
			s.ContinueCount++

		case actionSetBreakpoints:
			s.BreakpointOps++

		case actionSelectFrame:
			s.FrameSwitches++
			if act.Param("after_boundary") == "true" {
				s.DbtFrameSwitches++
			}

		case actionPause:
			// Counter only; pause intervals are driven by stop,
			// continue and step actions.
			s.PauseCount++

		case actionReverseContinue, actionStepBack:
			s.JumpCount++

		case actionExpandVariable, actionEvaluate:
			s.VariableExaminations++
		}
	}
}

// interval is one half of the interpreter's state machine: an optionally
// open window with its opening timestamp.
type interval struct {
	open  bool
	since int64
}

// start opens the window at ts. Opening an already-open window keeps the
// earlier timestamp.
func (iv *interval) start(ts int64) {
	if iv.open {
		return
	}
	iv.open = true
	iv.since = ts
}

// stop closes an open window and returns its length in nanoseconds. The
// second return value is false when no window was open.
func (iv *interval) stop(ts int64) (int64, bool) {
	if !iv.open {
		return 0, false
	}
	iv.open = false
	return ts - iv.since, true
}
