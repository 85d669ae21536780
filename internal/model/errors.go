package model

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the parent of every input validation failure.
// Callers match any of the specific errors below with errors.Is(err, ErrInvalidParameter).
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrSerialization reports a program that cannot be written as G-code.
var ErrSerialization = errors.New("serialization error")

// Specific parameter failures. Each one wraps ErrInvalidParameter.
var (
	ErrToolDiameter    = fmt.Errorf("%w: tool diameter must be > 0", ErrInvalidParameter)
	ErrFluteCount      = fmt.Errorf("%w: flute count must be > 0", ErrInvalidParameter)
	ErrUnknownMaterial = fmt.Errorf("%w: unknown material", ErrInvalidParameter)
	ErrDepthOfCut      = fmt.Errorf("%w: depth of cut must be >= 0", ErrInvalidParameter)
	ErrAxialDepth      = fmt.Errorf("%w: axial depth of cut must be > 0", ErrInvalidParameter)
	ErrRadialDepth     = fmt.Errorf("%w: radial depth of cut must be > 0", ErrInvalidParameter)
	ErrSafeZ           = fmt.Errorf("%w: safe Z must be at or above the top Z level", ErrInvalidParameter)
	ErrFeedRate        = fmt.Errorf("%w: feed rate must be > 0", ErrInvalidParameter)
	ErrBoundary        = fmt.Errorf("%w: boundary and Z levels must be finite", ErrInvalidParameter)
	ErrStepPolicy      = fmt.Errorf("%w: unknown row step policy", ErrInvalidParameter)
	ErrMaterial        = fmt.Errorf("%w: invalid material definition", ErrInvalidParameter)
	ErrTooManySteps    = fmt.Errorf("%w: depth of cut too small for the facing area", ErrInvalidParameter)
)
