package sim

import "fmt"

// Kind classifies an engine error so callers can branch on it without
// parsing the message. See spec §7 for the full taxonomy.
type Kind string

const (
	// KindInvalidInput covers bad floors, oversized scenario counts, and
	// origin==destination requests. Unknown scenario names are not errors:
	// they spawn a default batch of 10 uniform requests.
	KindInvalidInput Kind = "INVALID_INPUT"
	// KindFull covers an internal request assigned to a full elevator.
	KindFull Kind = "FULL"
	// KindNotFound covers an internal request naming an unknown elevator.
	KindNotFound Kind = "NOT_FOUND"
	// KindState covers commands rejected due to engine run state (e.g. reconfig while running).
	KindState Kind = "STATE"
	// KindTransient covers scheduler/sampler errors caught and logged during a tick.
	KindTransient Kind = "TRANSIENT"
	// KindTransport covers subscriber send failures on the push channel.
	KindTransport Kind = "TRANSPORT"
)

// Error is the engine's command-boundary error type. It carries a Kind so
// callers (HTTP handlers, WS command dispatch) can map it to a status code
// or a structured reply without string matching.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds an *Error with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
