package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/USC-NSL-DDB/ddbstat/internal/domain"
)

// TextRenderer writes the human-readable report: the twelve numbered
// aggregate figures followed by a per-session breakdown table.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer creates a renderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// RenderSummary writes the aggregate metric lines.
func (r *TextRenderer) RenderSummary(sum Summary) {
	if sum.Outliers > 0 {
		fmt.Fprintf(r.w, "WARNING: %d session(s) exceed the duration threshold (likely missing stop events)\n", sum.Outliers)
		fmt.Fprintf(r.w, "  Metrics 7-9 exclude these outliers for accuracy\n\n")
	}
	if sum.OpenSessions > 0 {
		fmt.Fprintf(r.w, "WARNING: %d session(s) have no observed terminator (closed at last event)\n\n", sum.OpenSessions)
	}

	fmt.Fprintf(r.w, " 1. Average number of steps per session:                 %.2f\n", sum.AvgSteps)
	fmt.Fprintf(r.w, " 2. Average number of breakpoint operations per session: %.2f\n", sum.AvgBreakpointOps)
	fmt.Fprintf(r.w, " 3. Average number of frame switches per session:        %.2f\n", sum.AvgFrameSwitches)
	fmt.Fprintf(r.w, " 4. Average number of dbt frame switches per session:    %.2f\n", sum.AvgDbtFrameSwitches)
	fmt.Fprintf(r.w, " 5. Average time per stepping operation:                 %.2fs (%d operations, total %.2fs)\n",
		sum.AvgSteppingSeconds, sum.SteppingOps, sum.TotalSteppingSeconds)
	fmt.Fprintf(r.w, " 6. Pct of sessions viewing >1 debuggee sessions:        %.1f%% (%d/%d)\n",
		sum.PctMultiDebuggee, sum.MultiDebuggee, sum.ActiveSessions)
	fmt.Fprintf(r.w, " 7. Average time per session:                            %.2fs (%.1fmin)\n",
		sum.AvgSessionSeconds, sum.AvgSessionSeconds/60)
	fmt.Fprintf(r.w, " 8. Average pause time per session:                      %.2fs (%.1fmin)\n",
		sum.AvgPauseSeconds, sum.AvgPauseSeconds/60)
	fmt.Fprintf(r.w, " 9. Pct of paused time over total time (aggregated):     %.1f%% (%.1fs / %.1fs)\n",
		sum.PctPaused, sum.TotalPauseSeconds, sum.TotalSessionSeconds)
	fmt.Fprintf(r.w, "10. Average number of jumps per session:                 %.2f\n", sum.AvgJumps)
	fmt.Fprintf(r.w, "11. Average number of signals per session:               %.2f\n", sum.AvgSignals)
	fmt.Fprintf(r.w, "12. Average number of variable examinations per session: %.2f\n", sum.AvgVariableExams)
}

// RenderSessions writes the per-session breakdown table.
func (r *TextRenderer) RenderSessions(sessions []*domain.DebugSession) error {
	fmt.Fprintf(r.w, "\nPER-SESSION BREAKDOWN\n")

	table := tablewriter.NewWriter(r.w)
	table.Header("#", "Session ID", "User ID", "Dur", "Steps", "BpOps", "Frames", "DbtFr", "Vars", "Paused", "Open", "Debuggees")
	for i, s := range sessions {
		open := ""
		if s.Open {
			open = "yes"
		}
		debuggees := strings.Join(s.DebuggeesViewed(), ",")
		if debuggees == "" {
			debuggees = "-"
		}
		if err := table.Append([]string{
			strconv.Itoa(i + 1),
			s.SessionID,
			s.UserID,
			fmt.Sprintf("%.0fs", s.Duration().Seconds()),
			strconv.Itoa(s.StepCount),
			strconv.Itoa(s.BreakpointOps),
			strconv.Itoa(s.FrameSwitches),
			strconv.Itoa(s.DbtFrameSwitches),
			strconv.Itoa(s.VariableExaminations),
			fmt.Sprintf("%.0fs", s.TotalPauseTime().Seconds()),
			open,
			debuggees,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
