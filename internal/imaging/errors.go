package imaging

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	// ErrUnknownMode is returned when a color mode name is not registered.
	ErrUnknownMode = errors.New("unknown color mode")

	// ErrNoConversionPath is returned when the conversion graph cannot reach
	// the target family from the source family.
	ErrNoConversionPath = errors.New("no conversion path")

	// ErrShapeMismatch is returned when buffer dimensions or channel counts do
	// not match what an operation requires.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidParameter is returned for out-of-range arguments such as
	// levels < 2 or a non-positive hash size.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// UnknownModeError reports a mode name missing from the registry.
type UnknownModeError struct {
	Name string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown color mode %q", e.Name)
}

func (e *UnknownModeError) Is(target error) bool { return target == ErrUnknownMode }

// NoConversionPathError reports two families the graph does not connect.
type NoConversionPathError struct {
	Source string
	Target string
}

func (e *NoConversionPathError) Error() string {
	return fmt.Sprintf("no conversion path from %q to %q", e.Source, e.Target)
}

func (e *NoConversionPathError) Is(target error) bool { return target == ErrNoConversionPath }

// ShapeMismatchError reports incompatible buffer shapes.
type ShapeMismatchError struct {
	Op   string
	Want string
	Got  string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: shape mismatch: want %s, got %s", e.Op, e.Want, e.Got)
}

func (e *ShapeMismatchError) Is(target error) bool { return target == ErrShapeMismatch }

// InvalidParameterError reports an argument outside its valid domain.
type InvalidParameterError struct {
	Op     string
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Op, e.Param, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }
