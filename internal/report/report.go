package report

import (
	"time"

	"github.com/samber/lo"

	"github.com/USC-NSL-DDB/ddbstat/internal/domain"
)

// Summary holds the aggregate figures the reporting surface exposes,
// computed over active sessions only. The three time-based averages
// (session duration, pause time, paused percentage) exclude outlier
// sessions whose window exceeds the implausible-duration threshold,
// since those almost always reflect a missing stop marker.
type Summary struct {
	TotalSessions  int
	ActiveSessions int
	Users          int
	OpenSessions   int // windows with no observed terminator
	Outliers       int // active sessions beyond the duration threshold

	AvgSteps            float64
	AvgBreakpointOps    float64
	AvgFrameSwitches    float64
	AvgDbtFrameSwitches float64

	AvgSteppingSeconds   float64
	SteppingOps          int
	TotalSteppingSeconds float64

	MultiDebuggee    int
	PctMultiDebuggee float64

	AvgSessionSeconds float64
	AvgPauseSeconds   float64

	PctPaused           float64
	TotalPauseSeconds   float64
	TotalSessionSeconds float64

	AvgJumps            float64
	AvgSignals          float64
	AvgVariableExams    float64
}

// Active filters to sessions with at least one step, breakpoint or
// frame-switch operation.
func Active(sessions []*domain.DebugSession) []*domain.DebugSession {
	return lo.Filter(sessions, func(s *domain.DebugSession, _ int) bool {
		return s.Active()
	})
}

// Compute reduces a session list to its Summary. maxDuration is the
// implausible-duration threshold; sessions beyond it are counted as
// outliers and excluded from the time-based aggregates only.
func Compute(sessions []*domain.DebugSession, maxDuration time.Duration) Summary {
	active := Active(sessions)

	sum := Summary{
		TotalSessions:  len(sessions),
		ActiveSessions: len(active),
		Users:          len(lo.UniqBy(sessions, func(s *domain.DebugSession) string { return s.UserID })),
		OpenSessions: lo.CountBy(active, func(s *domain.DebugSession) bool {
			return s.Open
		}),
	}
	if len(active) == 0 {
		return sum
	}
	n := float64(len(active))

	timed := lo.Filter(active, func(s *domain.DebugSession, _ int) bool {
		return s.Duration() <= maxDuration
	})
	sum.Outliers = len(active) - len(timed)

	sum.AvgSteps = lo.SumBy(active, func(s *domain.DebugSession) float64 { return float64(s.StepCount) }) / n
	sum.AvgBreakpointOps = lo.SumBy(active, func(s *domain.DebugSession) float64 { return float64(s.BreakpointOps) }) / n
	sum.AvgFrameSwitches = lo.SumBy(active, func(s *domain.DebugSession) float64 { return float64(s.FrameSwitches) }) / n
	sum.AvgDbtFrameSwitches = lo.SumBy(active, func(s *domain.DebugSession) float64 { return float64(s.DbtFrameSwitches) }) / n
	sum.AvgJumps = lo.SumBy(active, func(s *domain.DebugSession) float64 { return float64(s.JumpCount) }) / n
	sum.AvgSignals = lo.SumBy(active, func(s *domain.DebugSession) float64 { return float64(s.SignalCount) }) / n
	sum.AvgVariableExams = lo.SumBy(active, func(s *domain.DebugSession) float64 { return float64(s.VariableExaminations) }) / n

	stepDurations := lo.FlatMap(active, func(s *domain.DebugSession, _ int) []int64 {
		return s.StepDurations
	})
	sum.SteppingOps = len(stepDurations)
	sum.TotalSteppingSeconds = seconds(lo.Sum(stepDurations))
	if len(stepDurations) > 0 {
		sum.AvgSteppingSeconds = sum.TotalSteppingSeconds / float64(len(stepDurations))
	}

	sum.MultiDebuggee = lo.CountBy(active, func(s *domain.DebugSession) bool {
		return len(s.UniqueSessionsViewed) > 1
	})
	sum.PctMultiDebuggee = float64(sum.MultiDebuggee) / n * 100

	if len(timed) > 0 {
		tn := float64(len(timed))
		sum.TotalSessionSeconds = lo.SumBy(timed, func(s *domain.DebugSession) float64 {
			return s.Duration().Seconds()
		})
		sum.TotalPauseSeconds = lo.SumBy(timed, func(s *domain.DebugSession) float64 {
			return s.TotalPauseTime().Seconds()
		})
		sum.AvgSessionSeconds = sum.TotalSessionSeconds / tn
		sum.AvgPauseSeconds = sum.TotalPauseSeconds / tn
		if sum.TotalSessionSeconds > 0 {
			sum.PctPaused = sum.TotalPauseSeconds / sum.TotalSessionSeconds * 100
		}
	}

	return sum
}

func seconds(ns int64) float64 { return float64(ns) / 1e9 }
