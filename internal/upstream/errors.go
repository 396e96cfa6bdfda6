// Package upstream holds the errors returned by the outbound HTTP clients.
package upstream

import "fmt"

// Error reports a failed call to an upstream service. StatusCode is zero
// when the request never produced a response.
type Error struct {
	Service    string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error %d: %s", e.Service, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s error: %v", e.Service, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MissingFieldError reports an upstream body that decoded but lacked a
// required field.
type MissingFieldError struct {
	Service string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s error: response missing %q field", e.Service, e.Field)
}
