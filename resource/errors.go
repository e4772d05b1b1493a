package resource

import (
	"fmt"
	"strings"
)

// ValidationError reports invalid action input. It is a tool-level failure:
// the protocol exchange succeeds and the message is written so an automated
// caller can correct the envelope and retry.
type ValidationError struct {
	// Errors maps a field path (e.g. "body.name") to its problems.
	Errors map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "invalid input"
	}
	parts := make([]string, 0, len(e.Errors))
	for field, msgs := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	sortStrings(parts)
	return "invalid input: " + strings.Join(parts, ", ")
}

// NewFieldError creates a ValidationError for a single field.
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Errors: map[string][]string{field: {message}}}
}

// Add appends a problem for a field.
func (e *ValidationError) Add(field, message string) {
	if e.Errors == nil {
		e.Errors = make(map[string][]string)
	}
	e.Errors[field] = append(e.Errors[field], message)
}

// Empty reports whether no problems were recorded.
func (e *ValidationError) Empty() bool { return len(e.Errors) == 0 }

// insertion sort; error field lists are tiny and this keeps the message
// deterministic without pulling in sort for one call site.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// NotFoundError reports a missing record. Handlers return it so the tool
// error text can name the lookup that failed.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Resource, e.Key)
}
