package ports

import "fmt"

// Names of the external systems, used so every surfaced failure says which
// collaborator broke. "Fleet optimization is down" and "tracking is
// unconfigured" must never share one generic message.
const (
	SystemSolver    = "solver"
	SystemTelemetry = "telemetry"
)

// AuthError reports credential misconfiguration against an external system.
// Fatal for the call; an operational rather than transient condition.
type AuthError struct {
	System string
	Detail string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication failed: %s", e.System, e.Detail)
}

// ValidationCause is one field-level problem reported by an external system.
type ValidationCause struct {
	Message string
	Action  string
}

// ValidationError reports a malformed or under-specified request rejected by
// an external system. Locally correctable by the caller.
type ValidationError struct {
	System string
	Status int
	Causes []ValidationCause
}

func (e *ValidationError) Error() string {
	if len(e.Causes) > 0 {
		return fmt.Sprintf("%s: request rejected (status %d): %s", e.System, e.Status, e.Causes[0].Message)
	}
	return fmt.Sprintf("%s: request rejected (status %d)", e.System, e.Status)
}

// TransportError reports a network-level failure or timeout talking to an
// external system. Eligible for caller-driven retry; never retried here.
type TransportError struct {
	System string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.System, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
