package httpserver

import "errors"

var (
	ErrStart          = errors.New("failed to start settings HTTP server")
	ErrAlreadyRunning = errors.New("settings HTTP server already running")
	ErrShutdown       = errors.New("failed to shut down settings HTTP server")
)
