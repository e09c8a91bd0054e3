package feature

import (
	"time"

	"github.com/google/uuid"
)

// Diagnostic records a non-fatal failure surfaced to the operator.
type Diagnostic struct {
	ID      uuid.UUID
	Feature string
	// Target is the patch descriptor or setting name involved, if any.
	Target  string
	Backend string
	Op      string
	Err     error
	At      time.Time
}

func newDiagnostic(feature, target, backend, op string, err error) Diagnostic {
	return Diagnostic{
		ID:      uuid.New(),
		Feature: feature,
		Target:  target,
		Backend: backend,
		Op:      op,
		Err:     err,
		At:      time.Now().UTC(),
	}
}
