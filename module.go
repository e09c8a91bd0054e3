package modkit

import (
	"github.com/dmitrymomot/modkit/pkg/buildinfo"
	"github.com/dmitrymomot/modkit/pkg/feature"
)

// Module is a named bundle of features shipped together.
type Module struct {
	Name string
	// Builds restricts the whole module. Empty means every build.
	Builds   buildinfo.Range
	Features []feature.Definition
}

// LoadReport lists the outcome per module.
type LoadReport struct {
	Loaded  []string
	Skipped []string
	Failed  map[string]error
}
