package cli

import (
	"fmt"
	"time"

	"github.com/USC-NSL-DDB/ddbstat/internal/report"
)

// AnalyzeCmd computes the aggregate metrics and per-session breakdown from
// a telemetry export
type AnalyzeCmd struct {
	File        string        `arg:"" help:"Telemetry JSONL export (.jsonl, .jsonl.gz, .jsonl.zst)"`
	MaxDuration time.Duration `help:"Implausible session duration threshold; longer sessions are excluded from time-based metrics" default:"${config_max_duration}"`
	All         bool          `help:"Include inactive sessions in the breakdown"`
}

// Run executes the analyze command
func (c *AnalyzeCmd) Run(globals *Globals) error {
	if err := validateFlags(globals, c.MaxDuration); err != nil {
		return err
	}
	start := globals.Clock.Now()

	batch, sessions, err := loadAndInterpret(globals, c.File)
	if err != nil {
		return err
	}

	active := report.Active(sessions)
	sum := report.Compute(sessions, c.MaxDuration)

	shown := active
	if c.All {
		shown = sessions
	}

	if globals.Format == "ndjson" {
		w := report.NewNDJSONWriter(globals.Stdout)
		if !globals.Quiet {
			if batch.Skipped > 0 {
				w.WriteWarning(fmt.Sprintf("skipped %d unparseable input line(s)", batch.Skipped))
			}
			if sum.Outliers > 0 {
				w.WriteWarning(fmt.Sprintf("%d session(s) exceed %s; excluded from time-based metrics", sum.Outliers, c.MaxDuration))
			}
			if sum.OpenSessions > 0 {
				w.WriteWarning(fmt.Sprintf("%d session(s) have no observed terminator", sum.OpenSessions))
			}
		}
		if err := w.WriteSummary(sum, start.UTC().Format(time.RFC3339)); err != nil {
			return outputErrorCommon(globals, codeWriteFailed, err.Error())
		}
		for i, s := range shown {
			if err := w.WriteSession(i+1, s); err != nil {
				return outputErrorCommon(globals, codeWriteFailed, err.Error())
			}
		}
		return nil
	}

	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "Loaded %d events", len(batch.Events))
		if batch.Skipped > 0 {
			fmt.Fprintf(globals.Stdout, " (%d unparseable lines skipped)", batch.Skipped)
		}
		fmt.Fprintln(globals.Stdout)
		fmt.Fprintf(globals.Stdout, "Found %d debug sessions across %d users\n", sum.TotalSessions, sum.Users)
		fmt.Fprintf(globals.Stdout, "Active sessions (with at least one activity): %d\n\n", sum.ActiveSessions)
	}

	if len(active) == 0 {
		fmt.Fprintln(globals.Stdout, "No active sessions found.")
		return nil
	}

	r := report.NewTextRenderer(globals.Stdout)
	r.RenderSummary(sum)
	if err := r.RenderSessions(shown); err != nil {
		return outputErrorCommon(globals, codeWriteFailed, err.Error())
	}

	if !globals.Quiet {
		elapsed := globals.Clock.Now().Sub(start)
		fmt.Fprintf(globals.Stdout, "\nAnalyzed in %s\n", elapsed.Round(time.Millisecond))
	}
	return nil
}
