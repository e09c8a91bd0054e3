package settingsapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/modkit/pkg/feature"
	"github.com/dmitrymomot/modkit/pkg/settings"
)

// Envelope is the body of every response.
type Envelope struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any, meta map[string]any) {
	writeJSON(w, http.StatusOK, Envelope{Data: data, Meta: meta})
}

func writeError(w http.ResponseWriter, err error) {
	httpErr := classify(err)
	writeJSON(w, httpErr.Code, Envelope{Error: &ErrorDetail{Code: httpErr.Key, Message: err.Error()}})
}

// classify maps domain errors to HTTP errors.
func classify(err error) HTTPError {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, feature.ErrFeatureNotFound), errors.Is(err, feature.ErrSettingNotFound):
		return errNotFound
	case errors.Is(err, ErrToggleLocked):
		return errConflict
	case errors.Is(err, settings.ErrInvalidValue),
		errors.Is(err, settings.ErrUnknownOption),
		errors.Is(err, settings.ErrValueTooLong):
		return errValidation
	case errors.Is(err, feature.ErrFeatureDestroyed):
		return errUnavailable
	default:
		return errInternal
	}
}
