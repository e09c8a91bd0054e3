package settingsapi

import (
	"errors"
	"net/http"
)

// ErrToggleLocked is returned when the UI tries to toggle an automated or
// toggle-disabled feature.
var ErrToggleLocked = errors.New("feature cannot be toggled from the menu")

// HTTPError pairs a status code with a stable error key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

var (
	errBadRequest  = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	errNotFound    = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	errConflict    = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	errValidation  = HTTPError{Code: http.StatusUnprocessableEntity, Key: "validation_error"}
	errUnavailable = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
	errInternal    = HTTPError{Code: http.StatusInternalServerError, Key: "internal_error"}
)
