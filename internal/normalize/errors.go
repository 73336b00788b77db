package normalize

import "fmt"

// ParseError represents markup that could not be parsed by either the XML or
// the HTML backend. Callers should treat it as "no text for this document",
// not as a fatal condition.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
