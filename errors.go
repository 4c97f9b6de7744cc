package fractal

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fractal package.
var (
	// ErrInvalidMaxIterations is returned when max iterations is below 1.
	ErrInvalidMaxIterations = errors.New("fractal: max iterations must be at least 1")

	// ErrInvalidEscapeRadius is returned when the escape radius is not
	// positive and finite.
	ErrInvalidEscapeRadius = errors.New("fractal: escape radius must be positive and finite")

	// ErrInvalidViewport is returned for empty dimensions or a bad scale.
	ErrInvalidViewport = errors.New("fractal: invalid viewport")

	// ErrInvalidAALevel is returned when a request asks for an AA level
	// other than 0, 2 or 4.
	ErrInvalidAALevel = errors.New("fractal: aa level must be 0, 2 or 4")

	// ErrWorkerClosed is returned by Worker.Submit after Close.
	ErrWorkerClosed = errors.New("fractal: worker closed")
)

// InvalidParamsError reports which iteration parameter failed validation.
// It unwraps to ErrInvalidMaxIterations or ErrInvalidEscapeRadius.
type InvalidParamsError struct {
	Field string
	Value float64
	Err   error
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("fractal: invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidParamsError) Unwrap() error {
	return e.Err
}

// InvalidViewportError describes a rejected viewport.
// It unwraps to ErrInvalidViewport.
type InvalidViewportError struct {
	Width  int
	Height int
	Scale  float64
	Reason string
}

func (e *InvalidViewportError) Error() string {
	return fmt.Sprintf("fractal: invalid viewport %dx%d scale %g: %s", e.Width, e.Height, e.Scale, e.Reason)
}

func (e *InvalidViewportError) Unwrap() error {
	return ErrInvalidViewport
}
