package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/USC-NSL-DDB/ddbstat/internal/cli"
	"github.com/USC-NSL-DDB/ddbstat/internal/config"
)

const quickStart = `ddbstat - per-session behavioral metrics from DDB telemetry exports

Quick start:
  ddbstat analyze export.jsonl              Aggregate metrics + breakdown
  ddbstat sessions export.jsonl.zst         Per-session breakdown only
  ddbstat analyze export.jsonl --format ndjson | jq .

For help:
  ddbstat --help                            All commands and flags
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format":       cfg.Format,
		"config_max_duration": cfg.Defaults.MaxDuration,
	}

	ctx := kong.Parse(&c,
		kong.Name("ddbstat"),
		kong.Description("Correlate DDB telemetry logs into debug sessions and compute per-session behavioral metrics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	// Create globals with config fallbacks
	globals := cli.NewGlobalsWithConfig(&c, cfg)
	err = ctx.Run(globals)
	if err != nil {
		os.Exit(1)
	}
}
