// Package generation produces tailored STAR-style bullets from role source
// achievements via the text-generation capability.
package generation

import "fmt"

// APICallError represents an error during the generation call
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ResponseError represents a structurally invalid generation response
// (schema violation, word-count bounds, untraceable source text).
type ResponseError struct {
	Message string
	Cause   error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}
