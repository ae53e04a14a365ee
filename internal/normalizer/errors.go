package normalizer

import "fmt"

type ValidationKind string

const (
	MissingRequiredField ValidationKind = "missing_required_field"
	InvalidType          ValidationKind = "invalid_type"
)

// ValidationError reports a structurally invalid raw record. Offer-level:
// the ranking flow skips and counts the offending offer, it never aborts
// the whole batch.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s (%s)", e.Field, e.Kind)
}

func NewValidationError(kind ValidationKind, field string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field}
}
