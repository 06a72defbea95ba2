// SPDX-License-Identifier: MIT

// Package validate provides the boundary validation used when records enter
// the application: accumulate every problem, then report them together.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/chidev/nestx/internal/jsonvalue"
)

// Rule names identify which check produced an Error.
const (
	RuleRequired = "required"
	RuleType     = "type"
	RuleUnknown  = "unknown"
	RuleNotEmpty = "not_empty"
	RuleNotNull  = "not_null"
	RuleURL      = "url"
	RuleOneOf    = "one_of"
	RuleCustom   = "custom"
)

// Sentinel errors matched with errors.Is against a ValidationError or Error.
var (
	ErrRequired     = errors.New("missing required field")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrUnknownField = errors.New("unknown field")
	ErrInvalid      = errors.New("invalid value")
)

// Error represents a validation error
type Error struct {
	Field   string      // Field name that failed validation
	Rule    string      // Rule that rejected the value
	Value   interface{} // The invalid value
	Message string      // Human-readable error message
}

// Error implements the error interface
func (e Error) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap maps the rule to its sentinel error.
func (e Error) Unwrap() error {
	switch e.Rule {
	case RuleRequired, RuleNotNull:
		return ErrRequired
	case RuleType:
		return ErrTypeMismatch
	case RuleUnknown:
		return ErrUnknownField
	default:
		return ErrInvalid
	}
}

// Validator accumulates validation errors and can produce a ValidationError when invalid.
type Validator struct {
	errors []Error
}

// ValidationError bundles multiple validation errors into a single error value.
type ValidationError struct {
	errors []Error
}

// New creates a new validator
func New() *Validator {
	return &Validator{
		errors: make([]Error, 0),
	}
}

// AddError adds a validation error produced by a custom check.
func (v *Validator) AddError(field, message string, value interface{}) {
	v.add(field, RuleCustom, message, value)
}

func (v *Validator) add(field, rule, message string, value interface{}) {
	v.errors = append(v.errors, Error{
		Field:   field,
		Rule:    rule,
		Value:   value,
		Message: message,
	})
}

// IsValid returns true if no errors have been accumulated
func (v *Validator) IsValid() bool {
	return len(v.errors) == 0
}

// Errors returns all accumulated validation errors
func (v *Validator) Errors() []Error {
	return v.errors
}

// Merge appends the errors of another validation failure. Non-validation
// errors are recorded as custom errors on field.
func (v *Validator) Merge(field string, err error) {
	if err == nil {
		return
	}
	var ve ValidationError
	if errors.As(err, &ve) {
		v.errors = append(v.errors, ve.errors...)
		return
	}
	var single Error
	if errors.As(err, &single) {
		v.errors = append(v.errors, single)
		return
	}
	v.AddError(field, err.Error(), nil)
}

// Err converts the accumulated validation errors into an error value.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}

	copied := make([]Error, len(v.errors))
	copy(copied, v.errors)

	return ValidationError{errors: copied}
}

// Errors returns the individual validation errors making up the validation failure.
func (e ValidationError) Errors() []Error {
	return e.errors
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	if len(e.errors) == 0 {
		return ""
	}

	if len(e.errors) == 1 {
		return e.errors[0].Error()
	}

	// Multiple errors - format as list
	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e ValidationError) Unwrap() []error {
	out := make([]error, len(e.errors))
	for i, err := range e.errors {
		out[i] = err
	}
	return out
}

// Fields returns the distinct field names that failed, in first-seen order.
func (e ValidationError) Fields() []string {
	seen := make(map[string]struct{}, len(e.errors))
	fields := make([]string, 0, len(e.errors))
	for _, err := range e.errors {
		if _, ok := seen[err.Field]; ok {
			continue
		}
		seen[err.Field] = struct{}{}
		fields = append(fields, err.Field)
	}
	return fields
}

// Required records a missing required field.
func (v *Validator) Required(field string, present bool) {
	if !present {
		v.add(field, RuleRequired, "required field is missing", nil)
	}
}

// NotNull records a required field that is present but null. Typed nils
// such as a nil map count as null.
func (v *Validator) NotNull(field string, value interface{}) {
	if jsonvalue.KindOf(value) == jsonvalue.Null {
		v.add(field, RuleNotNull, "value cannot be null", nil)
	}
}

// TypeMismatch records a value whose JSON type does not match the schema.
func (v *Validator) TypeMismatch(field, want, got string) {
	v.add(field, RuleType, fmt.Sprintf("expected %s, got %s", want, got), got)
}

// Unknown records a field that the schema does not declare.
func (v *Validator) Unknown(field string) {
	v.add(field, RuleUnknown, "field is not declared by the schema", nil)
}

// URL validates a URL string
func (v *Validator) URL(field, value string, allowedSchemes []string) {
	if value == "" {
		v.add(field, RuleURL, "URL cannot be empty", value)
		return
	}

	u, err := url.Parse(value)
	if err != nil {
		v.add(field, RuleURL, fmt.Sprintf("invalid URL: %v", err), value)
		return
	}

	if u.Host == "" {
		v.add(field, RuleURL, "URL must have a host", value)
		return
	}

	// Check allowed schemes
	if len(allowedSchemes) > 0 {
		schemeValid := false
		for _, scheme := range allowedSchemes {
			if u.Scheme == scheme {
				schemeValid = true
				break
			}
		}
		if !schemeValid {
			v.add(field, RuleURL,
				fmt.Sprintf("unsupported URL scheme %q (allowed: %v)", u.Scheme, allowedSchemes),
				value)
		}
	}
}

// NotEmpty validates that a string is not empty or whitespace-only
func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, RuleNotEmpty, "value cannot be empty", value)
	}
}

// OneOf validates that a value is one of the allowed values
func (v *Validator) OneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.add(field, RuleOneOf,
		fmt.Sprintf("value must be one of %v, got %q", allowed, value),
		value)
}

// Custom allows custom validation logic
// The validator function should return an error if validation fails
func (v *Validator) Custom(field string, value interface{}, validator func(interface{}) error) {
	if err := validator(value); err != nil {
		v.add(field, RuleCustom, err.Error(), value)
	}
}
