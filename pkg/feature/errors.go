package feature

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/modkit/pkg/buildinfo"
)

var (
	// ErrFeatureNotFound indicates that no feature is registered under the id.
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrDuplicateFeature indicates the same feature identity was registered twice.
	ErrDuplicateFeature = errors.New("duplicate feature identity")

	// ErrInvalidDefinition indicates a structurally invalid feature definition.
	ErrInvalidDefinition = errors.New("invalid feature definition")

	// ErrSettingNotFound indicates the feature has no setting with that name.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrFeatureDestroyed is returned for operations after Shutdown.
	ErrFeatureDestroyed = errors.New("feature destroyed")

	// ErrPersistFailed indicates the config store rejected a write.
	ErrPersistFailed = errors.New("failed to persist feature state")
)

// TransitionError indicates the lifecycle has no transition for the state/event pair.
type TransitionError struct {
	State State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.State, e.Event)
}

// IsTransitionError reports whether err carries a *TransitionError.
func IsTransitionError(err error) bool {
	var e *TransitionError
	return errors.As(err, &e)
}

// IsConfigurationError reports errors that must abort startup of the
// affected module.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrDuplicateFeature) ||
		errors.Is(err, ErrInvalidDefinition) ||
		errors.Is(err, buildinfo.ErrUnknownBuild)
}
