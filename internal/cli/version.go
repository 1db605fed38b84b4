package cli

import (
	"encoding/json"
	"fmt"

	"github.com/USC-NSL-DDB/ddbstat/internal/report"
)

// Set via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "unknown"
)

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (c *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		out := map[string]interface{}{
			"type":          "version",
			"schemaVersion": report.SchemaVersion,
			"version":       Version,
			"commit":        Commit,
		}
		return json.NewEncoder(globals.Stdout).Encode(out)
	}
	fmt.Fprintf(globals.Stdout, "ddbstat %s (%s)\n", Version, Commit)
	return nil
}
