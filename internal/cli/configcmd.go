package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/USC-NSL-DDB/ddbstat/internal/config"
	"github.com/USC-NSL-DDB/ddbstat/internal/report"
)

// ConfigCmd groups configuration subcommands
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" help:"Show the active configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show which config file is in use"`
	Generate ConfigGenerateCmd `cmd:"" help:"Print a sample configuration file"`
}

// ConfigShowCmd shows the active configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "ndjson" {
		out := map[string]interface{}{
			"type":          "config",
			"schemaVersion": report.SchemaVersion,
			"format":        cfg.Format,
			"quiet":         cfg.Quiet,
			"verbose":       cfg.Verbose,
			"defaults": map[string]interface{}{
				"max_duration":   cfg.Defaults.MaxDuration,
				"resume_reasons": cfg.Defaults.ResumeReasons,
			},
			"services": map[string]interface{}{
				"adapter":   cfg.Services.Adapter,
				"extension": cfg.Services.Extension,
				"server":    cfg.Services.Server,
			},
		}
		return json.NewEncoder(globals.Stdout).Encode(out)
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:   %t\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %t\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "Defaults:")
	fmt.Fprintf(globals.Stdout, "  max_duration:   %s\n", cfg.Defaults.MaxDuration)
	fmt.Fprintf(globals.Stdout, "  resume_reasons: %s\n", strings.Join(cfg.Defaults.ResumeReasons, ", "))
	fmt.Fprintln(globals.Stdout, "Services:")
	fmt.Fprintf(globals.Stdout, "  adapter:   %s\n", cfg.Services.Adapter)
	fmt.Fprintf(globals.Stdout, "  extension: %s\n", cfg.Services.Extension)
	fmt.Fprintf(globals.Stdout, "  server:    %s\n", cfg.Services.Server)
	return nil
}

// ConfigPathCmd shows which config file is in use
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		out := map[string]interface{}{
			"type":          "config_path",
			"schemaVersion": report.SchemaVersion,
			"path":          path,
		}
		return json.NewEncoder(globals.Stdout).Encode(out)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found (using defaults)")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}
	return nil
}

// ConfigGenerateCmd prints a sample configuration file
type ConfigGenerateCmd struct{}

const sampleConfig = `# ddbstat configuration file
# Place at ~/.ddbstat.yaml or ./ddbstat.yaml

# Output format: text, ndjson, or auto (text on a terminal, ndjson when piped)
format: auto

# Suppress informational output
quiet: false

# Enable verbose debug logging
verbose: false

defaults:
  # Sessions longer than this are flagged as implausible and excluded
  # from the time-based aggregate metrics
  max_duration: 24h

  # Stop reasons that close an open stepping interval
  resume_reasons:
    - end-stepping-range
    - function-finished

# Service names recognized as session markers, for renamed deployments
services:
  adapter: ddb-da
  extension: ddb-ext
  server: ddb
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	fmt.Fprint(globals.Stdout, sampleConfig)
	return nil
}
