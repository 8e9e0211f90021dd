// Package roles provides read-only loading of candidate role records and the skill whitelist.
package roles

import "fmt"

// LoadError represents a failure to load or validate role source data.
// Missing role files are fatal to the run; the pipeline never starts on
// partial source data.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
