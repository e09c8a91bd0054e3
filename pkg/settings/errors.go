package settings

import "errors"

var (
	ErrInvalidValue  = errors.New("invalid setting value")
	ErrUnknownOption = errors.New("unknown option")
	ErrValueTooLong  = errors.New("value exceeds maximum length")
)
