package entitlement

import "errors"

var (
	// ErrUnknownFeature is returned when a feature name is not in the closed set
	ErrUnknownFeature = errors.New("unknown feature")

	// ErrMalformedConfig is returned when a stored level configuration cannot be interpreted
	ErrMalformedConfig = errors.New("malformed level configuration")
)
