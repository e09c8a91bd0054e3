package backend

import "errors"

var (
	ErrUnknownBackend  = errors.New("unknown backend")
	ErrSyntheticMember = errors.New("member is a synthetic interop wrapper")
)
