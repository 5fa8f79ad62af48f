package scenario

import (
	"fmt"
)

// InvalidInputError reports malformed caller input. It is surfaced to
// the caller immediately and never retried.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}

// SchemaViolationError reports an impact assessment that failed
// validation. When it originates from the generative path it triggers
// a fallback and never reaches the caller; from the deterministic
// path it indicates a programming defect.
type SchemaViolationError struct {
	Field   string
	Message string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation: %s: %s", e.Field, e.Message)
}
