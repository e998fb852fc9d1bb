package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every *InvalidInputError
	ErrInvalidInput = errors.New("invalid calculation input")
	// ErrPolicyConfig is matched by every *PolicyConfigError
	ErrPolicyConfig = errors.New("invalid policy configuration")
	// ErrMissingContract is returned when an employee has no contract for the period
	ErrMissingContract = errors.New("employee has no contract")
)

// InvalidInputError reports a malformed or out-of-range CalculationInput field
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// PolicyConfigError reports a malformed section of a PolicyConfig
type PolicyConfigError struct {
	Section string
	Reason  string
}

func (e *PolicyConfigError) Error() string {
	return fmt.Sprintf("invalid policy %s: %s", e.Section, e.Reason)
}

// Is lets errors.Is(err, ErrPolicyConfig) match
func (e *PolicyConfigError) Is(target error) bool {
	return target == ErrPolicyConfig
}

// NewInvalidInput builds an *InvalidInputError with a formatted reason
func NewInvalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NewPolicyConfigError builds a *PolicyConfigError with a formatted reason
func NewPolicyConfigError(section, format string, args ...any) error {
	return &PolicyConfigError{Section: section, Reason: fmt.Sprintf(format, args...)}
}
