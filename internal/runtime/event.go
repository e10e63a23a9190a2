package runtime

// EventKind identifies what happened in a session.
type EventKind int

const (
	// EventData carries a chunk of output.
	EventData EventKind = iota
	// EventExit reports the process exit. ExitCode is nil when unknown.
	EventExit
	// EventClosed is the last event of a session.
	EventClosed
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventData:
		return "data"
	case EventExit:
		return "exit"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is emitted by sessions onto the engine's event channel.
type Event struct {
	Kind      EventKind
	SessionID string
	Data      []byte
	ExitCode  *int
	Err       error
}
