package buildinfo

import "fmt"

// Gate evaluates ranges against the build the process is running on.
type Gate struct {
	catalog *Catalog
	current BuildID
}

// NewGate validates current against the catalog.
func NewGate(catalog *Catalog, current BuildID) (*Gate, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if !catalog.Known(current) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBuild, current)
	}
	return &Gate{catalog: catalog, current: current}, nil
}

// MustNewGate is like NewGate but panics on error.
func MustNewGate(catalog *Catalog, current BuildID) *Gate {
	g, err := NewGate(catalog, current)
	if err != nil {
		panic(err)
	}
	return g
}

// Current returns the running build.
func (g *Gate) Current() BuildID { return g.current }

// CurrentName returns the display name of the running build.
func (g *Gate) CurrentName() string { return g.catalog.Name(g.current) }

// Catalog returns the catalog the gate evaluates against.
func (g *Gate) Catalog() *Catalog { return g.catalog }

// Applies reports whether r covers the running build. The latest sentinel is
// resolved against the catalog at call time: on its own it matches only the
// newest build, combined with explicit builds it matches everything from the
// lowest explicit build upwards.
func (g *Gate) Applies(r Range) bool {
	if r.Contains(g.current) {
		return true
	}
	if !r.HasLatest() {
		return false
	}
	lowest, ok := r.Lowest()
	if !ok {
		return g.current == g.catalog.Newest()
	}
	return g.current >= lowest
}

// Bounds returns the lowest and highest builds covered by r, with the sentinel
// resolved to the newest known build.
func (g *Gate) Bounds(r Range) (lo, hi BuildID, ok bool) {
	lo, hasLo := r.Lowest()
	hi, hasHi := r.Highest()
	if r.HasLatest() {
		newest := g.catalog.Newest()
		if !hasLo {
			lo = newest
		}
		if !hasHi || newest > hi {
			hi = newest
		}
		return lo, hi, newest != 0
	}
	return lo, hi, hasLo && hasHi
}

// Label renders r as "R4" or "R4-R6". An empty range renders as "".
func (g *Gate) Label(r Range) string {
	lo, hi, ok := g.Bounds(r)
	if !ok {
		return ""
	}
	if lo == hi {
		return g.catalog.Name(lo)
	}
	return g.catalog.Name(lo) + "-" + g.catalog.Name(hi)
}
