package buildinfo

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// BuildID identifies a host release. Ids are ordered: a higher id is a newer build.
type BuildID uint8

// MaxBuildID is the largest id a Range can represent.
const MaxBuildID BuildID = 62

// LatestName is the textual alias for the newest known build.
const LatestName = "latest"

// Catalog is the ordered set of host builds known to the process.
// It is safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	names  map[BuildID]string
	byName map[string]BuildID
	newest BuildID
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		names:  make(map[BuildID]string),
		byName: make(map[string]BuildID),
	}
}

// DefaultCatalog returns a catalog with builds R1 through R8.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for id := BuildID(1); id <= 8; id++ {
		_ = c.Add(id, "R"+strconv.Itoa(int(id)))
	}
	return c
}

// Add introduces a new build. Ranges holding the latest sentinel start matching
// it immediately if it becomes the newest build.
func (c *Catalog) Add(id BuildID, name string) error {
	if id == 0 || id > MaxBuildID {
		return fmt.Errorf("%w: %d", ErrInvalidBuild, id)
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, LatestName) {
		return fmt.Errorf("%w: invalid name %q", ErrInvalidBuild, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.names[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateBuild, id)
	}
	key := strings.ToLower(name)
	if _, ok := c.byName[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBuild, name)
	}

	c.names[id] = name
	c.byName[key] = id
	if id > c.newest {
		c.newest = id
	}
	return nil
}

// Known reports whether id is in the catalog.
func (c *Catalog) Known(id BuildID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.names[id]
	return ok
}

// Newest returns the newest known build, or zero for an empty catalog.
func (c *Catalog) Newest() BuildID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.newest
}

// Name returns the display name of id, falling back to "R<id>".
func (c *Catalog) Name(id BuildID) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if name, ok := c.names[id]; ok {
		return name
	}
	return "R" + strconv.Itoa(int(id))
}

// Builds returns every known build in ascending order.
func (c *Catalog) Builds() []BuildID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]BuildID, 0, len(c.names))
	for id := range c.names {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Parse resolves a build name ("R6"), a bare number ("6") or "latest".
func (c *Catalog) Parse(s string) (BuildID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Join(ErrUnknownBuild, errors.New("empty build name"))
	}

	if strings.EqualFold(s, LatestName) {
		if newest := c.Newest(); newest != 0 {
			return newest, nil
		}
		return 0, errors.Join(ErrUnknownBuild, errors.New("catalog is empty"))
	}

	c.mu.RLock()
	id, ok := c.byName[strings.ToLower(s)]
	c.mu.RUnlock()
	if ok {
		return id, nil
	}

	if n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(s), "R")); err == nil && n > 0 && n <= int(MaxBuildID) {
		if c.Known(BuildID(n)) {
			return BuildID(n), nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownBuild, s)
}
