package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/USC-NSL-DDB/ddbstat/internal/config"
	"github.com/USC-NSL-DDB/ddbstat/internal/domain"
	"github.com/USC-NSL-DDB/ddbstat/internal/session"
	"github.com/USC-NSL-DDB/ddbstat/internal/telemetry"
)

// sessionOptions maps loaded config onto the session package's marker
// vocabulary.
func sessionOptions(cfg *config.Config) session.Options {
	opts := session.DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Services.Adapter != "" {
		opts.AdapterService = cfg.Services.Adapter
	}
	if cfg.Services.Extension != "" {
		opts.ExtensionService = cfg.Services.Extension
	}
	if cfg.Services.Server != "" {
		opts.ServerService = cfg.Services.Server
	}
	if len(cfg.Defaults.ResumeReasons) > 0 {
		opts.ResumeReasons = cfg.Defaults.ResumeReasons
	}
	return opts
}

// loadAndInterpret runs the full pipeline: load the export, build the
// session windows, replay each one through the interpreter.
func loadAndInterpret(globals *Globals, file string) (*telemetry.Batch, []*domain.DebugSession, error) {
	globals.Debug("loading telemetry export %s", file)
	batch, err := telemetry.ParseFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, outputErrorCommon(globals, codeFileNotFound, fmt.Sprintf("telemetry export not found: %s", file))
		}
		return nil, nil, outputErrorCommon(globals, codeParseFailed, err.Error())
	}
	globals.Debug("loaded %d events (%d lines skipped)", len(batch.Events), batch.Skipped)

	opts := sessionOptions(globals.Config)
	sessions := session.Build(batch.Events, opts)
	for _, s := range sessions {
		session.Interpret(s, opts)
	}
	globals.Debug("built %d sessions", len(sessions))
	return batch, sessions, nil
}

// validateFlags centralizes common flag checks to keep behavior consistent.
func validateFlags(globals *Globals, maxDuration time.Duration) error {
	if maxDuration <= 0 {
		return outputErrorCommon(globals, codeInvalidFlags, "--max-duration must be positive", "use a duration like 24h")
	}
	return nil
}
