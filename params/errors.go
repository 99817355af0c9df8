package params

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks a parameter that is missing or outside its range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnsupportedModel marks an unrecognized diffusion model selector.
	ErrUnsupportedModel = errors.New("unsupported model")
	// ErrDomain marks a log or power of a non-positive operand reached during evaluation.
	ErrDomain = errors.New("domain error")
)

// ParamError describes which value failed and why. It unwraps to one of the
// sentinel errors above.
type ParamError struct {
	Name   string
	Value  float64
	Reason string
	Kind   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", e.Kind, e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return e.Kind
}

func invalid(name string, value float64, reason string) error {
	return &ParamError{Name: name, Value: value, Reason: reason, Kind: ErrInvalidParameter}
}

// Domain builds an ErrDomain error for an operand that cannot be evaluated.
func Domain(name string, value float64, reason string) error {
	return &ParamError{Name: name, Value: value, Reason: reason, Kind: ErrDomain}
}

// Positive fails with ErrInvalidParameter unless value is finite and > 0.
func Positive(name string, value float64) error {
	if !isFinite(value) || value <= 0 {
		return invalid(name, value, "must be positive")
	}
	return nil
}
