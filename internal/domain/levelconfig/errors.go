package levelconfig

import "errors"

var (
	// ErrLevelConfigNotFound is returned when no configuration row exists for a rank
	ErrLevelConfigNotFound = errors.New("level config not found")

	// ErrStoreUnavailable is returned when the configuration store cannot be read
	ErrStoreUnavailable = errors.New("level config store unavailable")

	// ErrInvalidName is returned when the display name is empty or too long
	ErrInvalidName = errors.New("invalid level name")

	// ErrInvalidColor is returned when the color is not a #rrggbb value
	ErrInvalidColor = errors.New("invalid level color")

	// ErrInvalidQuota is returned when the upload quota is below -1
	ErrInvalidQuota = errors.New("invalid upload quota")

	// ErrIncompletePermissions is returned when a new row does not configure every feature
	ErrIncompletePermissions = errors.New("permissions must configure every feature")
)
