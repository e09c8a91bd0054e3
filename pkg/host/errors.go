package host

import "errors"

var (
	ErrDuplicateType   = errors.New("type already defined")
	ErrTypeNotFound    = errors.New("type not found")
	ErrDuplicateMember = errors.New("member already defined")
	ErrMemberNotFound  = errors.New("member not found")
	ErrAlreadyDetoured = errors.New("member already detoured")
	ErrNotDetoured     = errors.New("member is not detoured")
	ErrNilMember       = errors.New("member is nil")
)
