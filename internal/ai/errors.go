package ai

import (
	"errors"
	"fmt"
)

// ServiceError reports an analyzer call that never produced a usable
// response: connection failures, timeouts, quota errors. Callers substitute
// a documented neutral default instead of propagating it into ranking.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("analyzer %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// MalformedResponseError reports analyzer output that could not be parsed as
// the expected structured data, even after the brace-extraction recovery
// attempt. For fallback purposes it is equivalent to a ServiceError.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("analyzer returned malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsRecoverable reports whether the error is one of the per-call analyzer
// failures a batch should absorb with a neutral default.
func IsRecoverable(err error) bool {
	var service *ServiceError
	var malformed *MalformedResponseError
	return errors.As(err, &service) || errors.As(err, &malformed)
}
