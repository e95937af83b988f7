package tabulate

import (
	"errors"
	"fmt"
)

// ErrPlaceholder marks a document whose body is the platform's
// "Application Error" page instead of a real report. It is recoverable:
// the report contributes an empty triple to the batch.
var ErrPlaceholder = errors.New("document is an application error placeholder")

// StructuralError reports a violated layout invariant in a single
// document. It is fatal for that report only, never for the batch.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural mismatch: %s", e.Reason)
}

func structuralf(format string, args ...any) error {
	return &StructuralError{Reason: fmt.Sprintf(format, args...)}
}
