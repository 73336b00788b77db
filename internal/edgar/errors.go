package edgar

import "fmt"

// NotFoundError reports a company or filing that EDGAR does not know about.
// Callers should treat it as terminal for that lookup, not retry it.
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("edgar: %s not found: %s", e.Resource, e.Message)
}

// TransientError reports a failure that may succeed on retry: rate limiting,
// server errors, or network faults.
type TransientError struct {
	Message string
	Cause   error
}

func (e *TransientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("edgar: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("edgar: %s", e.Message)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}
