package analyzer

import "errors"

// tooBusyError signals queue timeout/overflow for 429 mapping.
type tooBusyError struct{ reason string }

func (e tooBusyError) Error() string { return "too busy: " + e.reason }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	var e tooBusyError
	return errors.As(err, &e)
}

// TooBusyReason returns the backpressure reason ("queue", "inflight", ...)
// or "" when err is not a backpressure error.
func TooBusyReason(err error) string {
	var e tooBusyError
	if errors.As(err, &e) {
		return e.reason
	}
	return ""
}

// dependencyUnavailableError signals a missing or not yet usable backend so
// the HTTP layer can return 503 Service Unavailable instead of 500.
type dependencyUnavailableError struct {
	msg string
	err error
}

func (e dependencyUnavailableError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.msg
}

func (e dependencyUnavailableError) Unwrap() error { return e.err }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// DependencyUnavailable marks err, returned by a backend, as temporary
// unavailability (e.g. a model that is still loading).
func DependencyUnavailable(err error) error { return dependencyUnavailableError{err: err} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var e dependencyUnavailableError
	return errors.As(err, &e)
}

// backendFailureError wraps an error returned by a model backend.
type backendFailureError struct {
	task string
	err  error
}

func (e backendFailureError) Error() string { return e.task + " backend: " + e.err.Error() }

func (e backendFailureError) Unwrap() error { return e.err }

// IsBackendFailure reports whether err came from a model backend call (502).
func IsBackendFailure(err error) bool {
	var e backendFailureError
	return errors.As(err, &e)
}
