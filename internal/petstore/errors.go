package petstore

import (
	"errors"
	"fmt"
)

// RemoteStoreError reports a failed round trip to the pet backend. Network
// failures, non-2xx statuses and undecodable bodies all collapse into it.
type RemoteStoreError struct {
	Op         string
	Method     string
	Path       string
	StatusCode int // zero when no response was received
	RequestID  string
	Cause      error
}

func (e *RemoteStoreError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s pets: %s %s: status %d: %v", e.Op, e.Method, e.Path, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s pets: %s %s: %v", e.Op, e.Method, e.Path, e.Cause)
}

func (e *RemoteStoreError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is a RemoteStoreError for a 404 response.
func IsNotFound(err error) bool {
	var rse *RemoteStoreError
	return errors.As(err, &rse) && rse.StatusCode == 404
}
