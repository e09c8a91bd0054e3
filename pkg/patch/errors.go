package patch

import (
	"errors"
	"fmt"
)

// Resolution errors.
var (
	ErrTypeNotFound        = errors.New("type not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrAmbiguousOverload   = errors.New("ambiguous overload")
	ErrMissingTypeProvider = errors.New("missing type provider")
)

// Application errors.
var (
	ErrTargetAlreadyPatched = errors.New("target already patched")
	ErrUnresolvedTarget     = errors.New("unresolved target")
	ErrHostMutationFailed   = errors.New("host mutation failed")
)

var (
	ErrInvalidDescriptor     = errors.New("invalid patch descriptor")
	ErrMissingHooks          = errors.New("patch declares no hooks")
	ErrDuplicateTypeProvider = errors.New("type provider already registered")
)

// ResolutionError describes why a descriptor could not be resolved.
type ResolutionError struct {
	Descriptor Descriptor
	Backend    string
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s on %s backend: %v", e.Descriptor, e.Backend, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ApplicationError describes a failed apply or revert of one unit.
type ApplicationError struct {
	Feature    string
	Descriptor Descriptor
	Op         string
	Err        error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s %s for feature %q: %v", e.Op, e.Descriptor, e.Feature, e.Err)
}

func (e *ApplicationError) Unwrap() error { return e.Err }

// IsResolutionError reports whether err carries a *ResolutionError.
func IsResolutionError(err error) bool {
	var e *ResolutionError
	return errors.As(err, &e)
}

// IsApplicationError reports whether err carries an *ApplicationError.
func IsApplicationError(err error) bool {
	var e *ApplicationError
	return errors.As(err, &e)
}
