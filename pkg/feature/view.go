package feature

import (
	"slices"

	"github.com/dmitrymomot/modkit/pkg/buildinfo"
	"github.com/dmitrymomot/modkit/pkg/settings"
)

// View is a point-in-time snapshot of one feature.
type View struct {
	ID          string
	Name        string
	Description string
	Group       string

	Hidden          bool
	Automated       bool
	RequiresRestart bool
	DisableToggle   bool
	PlaceInSubMenu  bool

	Builds     buildinfo.Range
	BuildLabel string

	State State
	// AppliesToCurrentBuild is false for features gated out of this build.
	AppliesToCurrentBuild bool
	// Enabled is the live state: true while the patch set is installed.
	Enabled bool
	// EnabledInConfig is the persisted flag.
	EnabledInConfig  bool
	RestartRequested bool
	ActivePatches    int
	TotalPatches     int

	Settings    []SettingView
	Diagnostics []Diagnostic
}

// Degraded reports a feature that is enabled with some patches missing.
func (v View) Degraded() bool { return v.State == StateDegraded }

// SettingView is a snapshot of one setting.
type SettingView struct {
	Meta  settings.Meta
	Kind  settings.Kind
	Value any
	// Label is the menu text for the current value.
	Label     string
	Options   []string
	MaxLength int
	// AppliesToCurrentBuild reflects Meta.Builds.
	AppliesToCurrentBuild bool
}

// Group is a named, ordered set of features.
type Group struct {
	Name     string
	Features []View
}

func (m *Manager) view(f *entry) View {
	def := f.def
	v := View{
		ID:                    def.ID,
		Name:                  def.DisplayName(),
		Description:           def.Description,
		Group:                 def.GroupName(),
		Hidden:                def.Hidden,
		Automated:             def.Automated,
		RequiresRestart:       def.RequiresRestart,
		DisableToggle:         def.DisableToggle,
		PlaceInSubMenu:        def.PlaceInSubMenu,
		Builds:                def.Builds,
		BuildLabel:            m.gate.Label(def.Builds),
		State:                 f.state,
		AppliesToCurrentBuild: f.state != StateInapplicable,
		Enabled:               f.enabled,
		EnabledInConfig:       f.persisted,
		RestartRequested:      f.restartRequested,
		Diagnostics:           slices.Clone(f.diagnostics),
	}

	for _, u := range m.registry.Units(def.ID) {
		v.TotalPatches++
		if u.Applied() {
			v.ActivePatches++
		}
	}

	v.Settings = make([]SettingView, 0, len(def.Settings))
	for _, s := range def.Settings {
		v.Settings = append(v.Settings, m.settingView(s))
	}
	return v
}

func (m *Manager) settingView(s settings.Setting) SettingView {
	meta := s.Meta()
	sv := SettingView{
		Meta:                  meta,
		Kind:                  s.Kind(),
		Value:                 settings.Value(s),
		AppliesToCurrentBuild: meta.Builds.IsEmpty() || m.gate.Applies(meta.Builds),
	}
	switch v := s.(type) {
	case *settings.Bool:
		sv.Label = onOff(v.Get())
	case *settings.String:
		sv.Label = v.Get()
		sv.MaxLength = v.MaxLength()
	case *settings.Color:
		sv.Label = v.Get().Hex()
	case *settings.Enum:
		sv.Label = v.Get()
		sv.Options = v.Options()
	case *settings.EnumList:
		sv.Label = v.Label()
		sv.Options = v.Options()
	}
	return sv
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}
