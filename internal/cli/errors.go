package cli

import (
	"errors"
	"fmt"

	"github.com/USC-NSL-DDB/ddbstat/internal/report"
)

// Stable error codes emitted on the ndjson surface.
const (
	codeFileNotFound = "FILE_NOT_FOUND"
	codeParseFailed  = "PARSE_FAILED"
	codeInvalidFlags = "INVALID_FLAGS"
	codeNoSessions   = "NO_SESSIONS"
	codeWriteFailed  = "WRITE_FAILED"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so agents always get machine-readable failures.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	if globals != nil && globals.Format == "ndjson" {
		report.NewNDJSONWriter(globals.Stdout).WriteError(code, message, hint...)
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s", code, message)
		if len(hint) > 0 && hint[0] != "" {
			fmt.Fprintf(globals.Stderr, " (hint: %s)", hint[0])
		}
		fmt.Fprintln(globals.Stderr)
	}
	return errors.New(message)
}
