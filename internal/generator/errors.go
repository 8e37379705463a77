package generator

import "errors"

var (
	// ErrConfiguration is returned for an unknown category id or a classify-only family.
	ErrConfiguration = errors.New("generator: configuration error")
	// ErrGeometry is returned when a constraint combination has no real realization.
	ErrGeometry = errors.New("generator: impossible geometry")
)
