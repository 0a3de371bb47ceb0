package errs

import "fmt"

// BackendError reports that the store could not complete an operation:
// unreachable, statement rejected, or the connection dropped mid-call.
//
// It is deliberately distinct from *HTTPError: nothing about the request
// was wrong. Unwrap exposes the driver error so SQLSTATE classification
// in package sqlerr still sees it.
type BackendError struct {
	// Op names the failed operation, e.g. "authenticate user".
	Op  string
	Err error
}

// NewBackendError wraps err as a failure of operation op.
func NewBackendError(op string, err error) *BackendError {
	return &BackendError{Op: op, Err: err}
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: backend failure: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
