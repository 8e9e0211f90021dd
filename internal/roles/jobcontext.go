package roles

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/cv-tailor/internal/types"
)

// LoadJobContext reads and validates the job context record produced by the
// upstream JD-extraction stage.
func LoadJobContext(path string) (*types.JobContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read job context", Cause: err}
	}

	var jobCtx types.JobContext
	if err := json.Unmarshal(data, &jobCtx); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse job context JSON", Cause: err}
	}
	if err := jobCtx.Validate(); err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("invalid job context: %v", err)}
	}

	return &jobCtx, nil
}
