package cli

import (
	"fmt"
	"time"

	"github.com/USC-NSL-DDB/ddbstat/internal/report"
)

// SessionsCmd prints the per-session breakdown without the aggregate
// metrics
type SessionsCmd struct {
	File        string        `arg:"" help:"Telemetry JSONL export (.jsonl, .jsonl.gz, .jsonl.zst)"`
	MaxDuration time.Duration `help:"Implausible session duration threshold" default:"${config_max_duration}"`
	All         bool          `help:"Include inactive sessions"`
}

// Run executes the sessions command
func (c *SessionsCmd) Run(globals *Globals) error {
	if err := validateFlags(globals, c.MaxDuration); err != nil {
		return err
	}

	_, sessions, err := loadAndInterpret(globals, c.File)
	if err != nil {
		return err
	}

	shown := report.Active(sessions)
	if c.All {
		shown = sessions
	}

	if globals.Format == "ndjson" {
		w := report.NewNDJSONWriter(globals.Stdout)
		for i, s := range shown {
			if err := w.WriteSession(i+1, s); err != nil {
				return outputErrorCommon(globals, codeWriteFailed, err.Error())
			}
		}
		return nil
	}

	if len(shown) == 0 {
		fmt.Fprintln(globals.Stdout, "No sessions found.")
		return nil
	}
	r := report.NewTextRenderer(globals.Stdout)
	if err := r.RenderSessions(shown); err != nil {
		return outputErrorCommon(globals, codeWriteFailed, err.Error())
	}
	return nil
}
