package domain

// Resource keys present on every DDB telemetry export record.
const (
	ResourceUserID      = "user.id"
	ResourceServiceName = "service.name"
	ResourceSessionID   = "session.id"
)

// Service names of the cooperating DDB components.
const (
	ServiceAdapter   = "ddb-da"  // debug adapter backend
	ServiceExtension = "ddb-ext" // VS Code extension front-end
	ServiceServer    = "ddb"     // top-level API server
)

// Event is a single telemetry log record from a JSONL export.
// Timestamps are integer nanoseconds, used only for ordering and duration
// arithmetic. Events are read-only once loaded; the core never mutates them.
type Event struct {
	Timestamp int64             `json:"timestamp"`
	Body      string            `json:"body"`
	Resources map[string]string `json:"resources_string"`
}

// UserID returns the owning user identity, or "" when absent.
func (e *Event) UserID() string { return e.Resources[ResourceUserID] }

// Service returns the originating service name, or "" when absent.
func (e *Event) Service() string { return e.Resources[ResourceServiceName] }

// SessionID returns the adapter session identity, or "" when absent.
func (e *Event) SessionID() string { return e.Resources[ResourceSessionID] }
