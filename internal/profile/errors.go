package profile

import "fmt"

// ValidationError reports a malformed description. It is fatal to the
// construction of whatever object graph was being built from the description.
type ValidationError struct {
	Path   string // dotted location inside the document, e.g. "layouts.left.components.trigger"
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "invalid profile: " + e.Reason
	}
	return fmt.Sprintf("invalid profile: %s: %s", e.Path, e.Reason)
}

func validationErrorf(path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
