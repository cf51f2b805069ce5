package port

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownNode        = errors.New("unknown node")
	ErrNodeNotFound       = errors.New("node is not on the ring")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrStoreClosed        = errors.New("counter store is closed")
	ErrInvalidKey         = errors.New("invalid counter key")
	ErrInvalidAmount      = errors.New("invalid increment amount")
)

// UnknownNodeError reports a ring member that has no provisioned connection.
// It is a configuration defect and is never retried.
type UnknownNodeError struct {
	NodeID string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("%v: %s has no connection handle", ErrUnknownNode, e.NodeID)
}

func (e *UnknownNodeError) Is(target error) bool {
	return target == ErrUnknownNode
}

// BackendUnavailableError reports a node whose connectivity failures outlasted the retry budget.
type BackendUnavailableError struct {
	Node     string
	Attempts int
	Err      error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("%v: %s after %d attempts: %v", ErrBackendUnavailable, e.Node, e.Attempts, e.Err)
}

func (e *BackendUnavailableError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}
