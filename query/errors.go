package query

import "errors"

// HostError reports that a forwarded query never produced a collaborator
// answer: the request could not be routed, or the response could not be
// parsed. Timeouts and resource exhaustion in the host also surface here.
type HostError struct {
	Desc string
}

func (e *HostError) Error() string {
	return "query transport failure: " + e.Desc
}

// RejectedError reports that the collaborator was reached and explicitly
// rejected the request.
type RejectedError struct {
	Desc string
}

func (e *RejectedError) Error() string {
	return "query rejected: " + e.Desc
}

// IsHostFailure reports whether err is (or wraps) a transport-layer failure.
func IsHostFailure(err error) bool {
	var e *HostError
	return errors.As(err, &e)
}

// IsRejected reports whether err is (or wraps) a collaborator rejection.
func IsRejected(err error) bool {
	var e *RejectedError
	return errors.As(err, &e)
}
