// Package errors provides structured error handling for the Crucible
// substitution generator. It defines error codes, categories, and severities
// for both human-readable terminal output and machine-parseable JSON.
package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a unique error code in the generator
type ErrorCode string

// ErrorCategory represents the category of generator error
type ErrorCategory string

const (
	// CategoryManifest represents manifest loading/validation errors (MAN001-099)
	CategoryManifest ErrorCategory = "manifest"
	// CategoryNaming represents identifier derivation errors (GEN601)
	CategoryNaming ErrorCategory = "naming"
	// CategoryEmission represents artifact emission errors (GEN602)
	CategoryEmission ErrorCategory = "emission"
	// CategoryDriver represents driver state errors (GEN603)
	CategoryDriver ErrorCategory = "driver"
	// CategoryClassification represents parameter classification warnings (GEN604)
	CategoryClassification ErrorCategory = "classification"
)

// ErrorSeverity indicates the severity level of a diagnostic
type ErrorSeverity string

const (
	// SeverityError indicates an error that makes the pass output unusable
	SeverityError ErrorSeverity = "error"
	// SeverityWarning indicates a condition the pass survived but callers should see
	SeverityWarning ErrorSeverity = "warning"
)

// GenError is a structured generator diagnostic. Method identifies the
// originating target method as "DeclaringType.method" when one exists.
type GenError struct {
	Code       ErrorCode     `json:"code"`
	Category   ErrorCategory `json:"category"`
	Severity   ErrorSeverity `json:"severity"`
	Message    string        `json:"message"`
	Method     string        `json:"method,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
}

// Error implements the error interface
func (e *GenError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Method, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// WithSuggestion sets a suggestion for fixing the error
func (e *GenError) WithSuggestion(suggestion string) *GenError {
	e.Suggestion = suggestion
	return e
}

// List is a collection of generator diagnostics
type List []*GenError

// Error implements the error interface
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
}

// HasErrors returns true if the list contains any error-severity diagnostics
func (l List) HasErrors() bool {
	for _, e := range l {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics by severity
func (l List) Count() (errors, warnings int) {
	for _, e := range l {
		switch e.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return
}

// ToJSON returns all diagnostics as an indented JSON array
func (l List) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func newError(code ErrorCode, category ErrorCategory, severity ErrorSeverity, method, message string) *GenError {
	return &GenError{
		Code:     code,
		Category: category,
		Severity: severity,
		Method:   method,
		Message:  message,
	}
}
