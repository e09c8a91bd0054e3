package modkit

import "errors"

var (
	// ErrInvalidModule indicates a module without a name.
	ErrInvalidModule = errors.New("invalid module")

	// ErrDuplicateModule indicates a module name loaded twice.
	ErrDuplicateModule = errors.New("module already loaded")
)
