package session

import "github.com/USC-NSL-DDB/ddbstat/internal/domain"

// Marker bodies delimiting a debug-session window.
const (
	// InitBodyPrefix opens a window. Adapter-origin only; the full body
	// carries deployment details after the prefix.
	InitBodyPrefix = "[OTel] Debugger Adapter initialized"
	// StoppedBody is the extension's session-stop marker.
	StoppedBody = "[activity] debug_session_stopped"
	// ServerStoppedBody is the top-level server's shutdown marker.
	ServerStoppedBody = "API server stopped"
)

// Options configures marker recognition and stop-reason classification.
// The zero value is not usable; start from DefaultOptions.
type Options struct {
	// Service names, overridable for renamed deployments.
	AdapterService   string
	ExtensionService string
	ServerService    string

	// Stop reasons that mark a halt as completing a stepping operation.
	ResumeReasons []string
}

// DefaultOptions returns the marker vocabulary of a stock DDB deployment.
func DefaultOptions() Options {
	return Options{
		AdapterService:   domain.ServiceAdapter,
		ExtensionService: domain.ServiceExtension,
		ServerService:    domain.ServiceServer,
		ResumeReasons:    []string{"end-stepping-range", "function-finished"},
	}
}

func (o Options) resumeReasonSet() map[string]struct{} {
	set := make(map[string]struct{}, len(o.ResumeReasons))
	for _, r := range o.ResumeReasons {
		set[r] = struct{}{}
	}
	return set
}
