package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/USC-NSL-DDB/ddbstat/internal/domain"
)

func sessionWith(uid string, start, end int64, mutate func(*domain.DebugSession)) *domain.DebugSession {
	s := domain.NewDebugSession(uid, "sess-"+uid, start, end)
	if mutate != nil {
		mutate(s)
	}
	return s
}

func TestActiveFilter(t *testing.T) {
	sessions := []*domain.DebugSession{
		sessionWith("u1", 0, 100, func(s *domain.DebugSession) { s.StepCount = 1 }),
		sessionWith("u2", 0, 100, nil),
		sessionWith("u3", 0, 100, func(s *domain.DebugSession) { s.FrameSwitches = 2 }),
	}

	active := Active(sessions)
	require.Len(t, active, 2)
	assert.Equal(t, "u1", active[0].UserID)
	assert.Equal(t, "u3", active[1].UserID)
}

func TestComputeEmpty(t *testing.T) {
	sum := Compute(nil, 24*time.Hour)
	assert.Zero(t, sum.TotalSessions)
	assert.Zero(t, sum.ActiveSessions)
	assert.Zero(t, sum.AvgSteps)
}

func TestComputeNoActiveSessions(t *testing.T) {
	sessions := []*domain.DebugSession{
		sessionWith("u1", 0, 100, nil),
	}
	sum := Compute(sessions, 24*time.Hour)
	assert.Equal(t, 1, sum.TotalSessions)
	assert.Zero(t, sum.ActiveSessions)
}

func TestComputeAverages(t *testing.T) {
	sessions := []*domain.DebugSession{
		sessionWith("u1", 0, 10e9, func(s *domain.DebugSession) {
			s.StepCount = 4
			s.BreakpointOps = 2
			s.FrameSwitches = 3
			s.DbtFrameSwitches = 1
			s.JumpCount = 2
			s.VariableExaminations = 5
			s.StepDurations = []int64{2e9, 4e9}
			s.PauseDurations = []int64{1e9}
			s.UniqueSessionsViewed = map[string]struct{}{"1": {}, "2": {}}
		}),
		sessionWith("u2", 0, 30e9, func(s *domain.DebugSession) {
			s.StepCount = 2
			s.PauseDurations = []int64{3e9}
		}),
	}

	sum := Compute(sessions, 24*time.Hour)

	assert.Equal(t, 2, sum.TotalSessions)
	assert.Equal(t, 2, sum.ActiveSessions)
	assert.Equal(t, 2, sum.Users)
	assert.Zero(t, sum.Outliers)

	assert.InDelta(t, 3.0, sum.AvgSteps, 1e-9)
	assert.InDelta(t, 1.0, sum.AvgBreakpointOps, 1e-9)
	assert.InDelta(t, 1.5, sum.AvgFrameSwitches, 1e-9)
	assert.InDelta(t, 0.5, sum.AvgDbtFrameSwitches, 1e-9)
	assert.InDelta(t, 1.0, sum.AvgJumps, 1e-9)
	assert.Zero(t, sum.AvgSignals)
	assert.InDelta(t, 2.5, sum.AvgVariableExams, 1e-9)

	assert.Equal(t, 2, sum.SteppingOps)
	assert.InDelta(t, 6.0, sum.TotalSteppingSeconds, 1e-9)
	assert.InDelta(t, 3.0, sum.AvgSteppingSeconds, 1e-9)

	assert.Equal(t, 1, sum.MultiDebuggee)
	assert.InDelta(t, 50.0, sum.PctMultiDebuggee, 1e-9)

	assert.InDelta(t, 20.0, sum.AvgSessionSeconds, 1e-9)
	assert.InDelta(t, 2.0, sum.AvgPauseSeconds, 1e-9)
	assert.InDelta(t, 10.0, sum.PctPaused, 1e-9) // 4s paused over 40s total
}

func TestComputeOutlierExclusion(t *testing.T) {
	day := int64(24 * 3600 * 1e9)
	sessions := []*domain.DebugSession{
		sessionWith("u1", 0, 10e9, func(s *domain.DebugSession) {
			s.StepCount = 1
			s.PauseDurations = []int64{2e9}
		}),
		// Two days long: a missing stop marker, not a real session.
		sessionWith("u2", 0, 2*day, func(s *domain.DebugSession) {
			s.StepCount = 9
			s.PauseDurations = []int64{day}
		}),
	}

	sum := Compute(sessions, 24*time.Hour)

	assert.Equal(t, 1, sum.Outliers)
	// Count-based metrics still include the outlier.
	assert.InDelta(t, 5.0, sum.AvgSteps, 1e-9)
	// Time-based metrics exclude it.
	assert.InDelta(t, 10.0, sum.AvgSessionSeconds, 1e-9)
	assert.InDelta(t, 2.0, sum.AvgPauseSeconds, 1e-9)
	assert.InDelta(t, 20.0, sum.PctPaused, 1e-9)
}

func TestComputeOpenSessions(t *testing.T) {
	sessions := []*domain.DebugSession{
		sessionWith("u1", 0, 100, func(s *domain.DebugSession) {
			s.StepCount = 1
			s.Open = true
		}),
		sessionWith("u1", 200, 300, func(s *domain.DebugSession) { s.StepCount = 1 }),
	}

	sum := Compute(sessions, 24*time.Hour)
	assert.Equal(t, 1, sum.OpenSessions)
	assert.Equal(t, 1, sum.Users)
}
