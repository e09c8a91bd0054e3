package feature

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/modkit/pkg/buildinfo"
	"github.com/dmitrymomot/modkit/pkg/patch"
	"github.com/dmitrymomot/modkit/pkg/settings"
)

// Well-known group names.
const (
	GroupDev     = "Dev"
	GroupDefault = "General"
)

// Definition declares a feature.
type Definition struct {
	// ID is the stable identity used for persistence. Required.
	ID          string
	Name        string
	Description string
	Group       string

	Hidden          bool
	Automated       bool
	RequiresRestart bool
	DisableToggle   bool
	PlaceInSubMenu  bool

	// EnabledByDefault is used when no persisted value exists.
	EnabledByDefault bool

	// Builds restricts the feature to some host builds. Empty means every build.
	Builds buildinfo.Range

	// TypeProvider supplies the owner type for patches that do not name one.
	TypeProvider patch.TypeProvider

	Patches  []Patch
	Settings []settings.Setting

	// OnEnable and OnDisable run after the patch set changed. Errors are
	// recorded as diagnostics. They run under the manager lock and must not
	// call back into the Manager.
	OnEnable  func(ctx context.Context) error
	OnDisable func(ctx context.Context) error
}

// Patch declares one patch target of a feature.
type Patch struct {
	Target patch.Descriptor
	Hooks  patch.Hooks
	// Builds restricts this patch further. Empty means every build the
	// feature applies to.
	Builds buildinfo.Range
	// TypeProvider overrides the feature-wide provider for this patch.
	TypeProvider patch.TypeProvider
}

// DisplayName returns Name, or ID when no name is set.
func (d Definition) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// GroupName returns Group, or GroupDefault when no group is set.
func (d Definition) GroupName() string {
	if d.Group != "" {
		return d.Group
	}
	return GroupDefault
}

// Validate checks the definition for structural problems.
func (d Definition) Validate() error {
	var errs []error
	if strings.TrimSpace(d.ID) == "" {
		errs = append(errs, errors.New("id is empty"))
	}
	if strings.ContainsAny(d.ID, "/ ") {
		errs = append(errs, fmt.Errorf("id %q must not contain '/' or spaces", d.ID))
	}
	for i, p := range d.Patches {
		if err := p.Target.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("patch %d: %w", i, err))
		}
		if p.Hooks.IsZero() {
			errs = append(errs, fmt.Errorf("patch %d (%s): %w", i, p.Target, patch.ErrMissingHooks))
		}
	}
	seen := make(map[string]bool, len(d.Settings))
	for i, s := range d.Settings {
		if s == nil {
			errs = append(errs, fmt.Errorf("setting %d is nil", i))
			continue
		}
		name := s.Meta().Name
		if name == "" {
			errs = append(errs, fmt.Errorf("setting %d has no name", i))
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("setting %q declared twice", name))
		}
		seen[name] = true
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q: %w", ErrInvalidDefinition, d.ID, errors.Join(errs...))
}
