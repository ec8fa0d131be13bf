package shared

import "fmt"

// FieldError describes a single invalid field in a request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// ValidationResult collects field errors so the caller receives one complete
// report instead of the first failure. Validation always runs before any
// mutation; persistence is never interleaved with it.
type ValidationResult struct {
	errors []FieldError
}

// NewValidationResult creates an empty validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{}
}

// AddError records an invalid field
func (v *ValidationResult) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// AddErrorf records an invalid field with a formatted message
func (v *ValidationResult) AddErrorf(field, format string, args ...interface{}) {
	v.AddError(field, fmt.Sprintf(format, args...))
}

// Valid reports whether no field errors were recorded
func (v *ValidationResult) Valid() bool {
	return len(v.errors) == 0
}

// Errors returns the recorded field errors
func (v *ValidationResult) Errors() []FieldError {
	return v.errors
}

// AsError converts the result into a VALIDATION domain error, or nil if valid.
func (v *ValidationResult) AsError() error {
	if v.Valid() {
		return nil
	}
	details := make([]string, 0, len(v.errors))
	for _, fe := range v.errors {
		details = append(details, fe.String())
	}
	return NewDomainErrorWithDetails(CodeValidation, "Request validation failed", details)
}
