package session

import "fmt"

// NotFoundError indicates an unknown session id.
type NotFoundError struct {
	SessionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// BusyError indicates a turn is already in flight for the session.
// Turns within one session are strictly serial.
type BusyError struct {
	SessionID string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("session %s already has a turn in progress", e.SessionID)
}

// InvalidStateError indicates an operation that the session's lifecycle
// state does not permit, such as answering a completed interview.
type InvalidStateError struct {
	SessionID string
	Op        string
	Reason    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s session %s: %s", e.Op, e.SessionID, e.Reason)
}
