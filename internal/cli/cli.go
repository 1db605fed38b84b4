package cli

import (
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/mattn/go-isatty"

	"github.com/USC-NSL-DDB/ddbstat/internal/config"
)

// CLI is the root command structure parsed by kong
type CLI struct {
	Format  string `help:"Output format (text, ndjson, auto)" enum:"text,ndjson,auto" default:"${config_format}"`
	Quiet   bool   `short:"q" help:"Suppress informational output"`
	Verbose bool   `help:"Enable verbose debug logging"`

	Analyze  AnalyzeCmd  `cmd:"" help:"Compute aggregate metrics and per-session breakdown from a telemetry export"`
	Sessions SessionsCmd `cmd:"" help:"Print the per-session breakdown only"`
	Config   ConfigCmd   `cmd:"" help:"Inspect or generate configuration"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// Globals carries shared command dependencies: resolved flags, IO streams,
// loaded config and the wall clock (mockable in tests).
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Clock   clock.Clock

	logger *agentLogger
}

// NewGlobalsWithConfig creates Globals from parsed CLI flags with config
// fallbacks. Format "auto" resolves by terminal: text on a tty, ndjson when
// piped (agents consume the pipe).
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  c.Format,
		Quiet:   c.Quiet || cfg.Quiet,
		Verbose: c.Verbose || cfg.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		Clock:   clock.New(),
	}
	if g.Format == "" || g.Format == "auto" {
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			g.Format = "text"
		} else {
			g.Format = "ndjson"
		}
	}
	g.logger = newAgentLogger(g)
	return g
}

// Debug logs a debug message when verbose mode is enabled
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Debug(format, args...)
	}
}
