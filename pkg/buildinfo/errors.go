package buildinfo

import "errors"

var (
	// ErrUnknownBuild indicates the build identifier is not present in the catalog.
	ErrUnknownBuild = errors.New("unknown build id")

	// ErrDuplicateBuild is returned when a build id or name is added to a catalog twice.
	ErrDuplicateBuild = errors.New("build already registered")

	// ErrInvalidBuild indicates a build id outside the supported range.
	ErrInvalidBuild = errors.New("invalid build id")
)
