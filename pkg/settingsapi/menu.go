package settingsapi

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/modkit/pkg/buildinfo"
	"github.com/dmitrymomot/modkit/pkg/feature"
	"github.com/dmitrymomot/modkit/pkg/settings"
)

// Menu label fragments.
const (
	HiddenPrefix  = "[H] "
	RestartPrefix = "[!] "

	ToggleEnabled   = "Enabled"
	ToggleDisabled  = "Disabled"
	ToggleAutomated = "Automated"
)

// Menu is the whole settings menu.
type Menu struct {
	Build            string  `json:"build"`
	RestartRequested bool    `json:"restart_requested"`
	Groups           []Group `json:"groups"`
}

// Group is one menu section.
type Group struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Entry is one feature in the menu.
type Entry struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	// Toggle is the text of the toggle button.
	Toggle     string `json:"toggle"`
	Toggleable bool   `json:"toggleable"`
	Builds     string `json:"builds,omitempty"`
	State      string `json:"state"`
	Applies    bool   `json:"applies"`
	Degraded   bool   `json:"degraded,omitempty"`
	SubMenu    bool   `json:"sub_menu,omitempty"`

	RestartRequested bool `json:"restart_requested,omitempty"`

	Settings    []SettingEntry    `json:"settings,omitempty"`
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`
}

// SettingEntry is one setting row.
type SettingEntry struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Kind        string   `json:"kind"`
	Value       any      `json:"value"`
	ValueLabel  string   `json:"value_label"`
	Options     []string `json:"options,omitempty"`
	MaxLength   int      `json:"max_length,omitempty"`
	Header      string   `json:"header,omitempty"`
	Separator   bool     `json:"separator,omitempty"`
	Spacer      bool     `json:"spacer,omitempty"`
}

// DiagnosticEntry is the wire form of feature.Diagnostic.
type DiagnosticEntry struct {
	ID      string    `json:"id"`
	Feature string    `json:"feature"`
	Target  string    `json:"target,omitempty"`
	Backend string    `json:"backend,omitempty"`
	Op      string    `json:"op"`
	Error   string    `json:"error"`
	At      time.Time `json:"at"`
}

// MenuBuilder turns manager snapshots into menu entries.
type MenuBuilder struct {
	DevMode  bool
	Language language.Tag
}

// Build renders the grouped menu. Groups and entries are ordered with the
// collation rules of the builder's language. The Dev group comes last.
func (b MenuBuilder) Build(gate *buildinfo.Gate, views []feature.View, restart bool) Menu {
	byGroup := make(map[string][]Entry)
	for _, v := range views {
		if !b.visible(v) {
			continue
		}
		byGroup[v.Group] = append(byGroup[v.Group], b.Entry(v))
	}

	col := collate.New(b.Language, collate.IgnoreCase)
	names := make([]string, 0, len(byGroup))
	for name := range byGroup {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, c string) int {
		switch {
		case a == c:
			return 0
		case a == feature.GroupDev:
			return 1
		case c == feature.GroupDev:
			return -1
		}
		return col.CompareString(a, c)
	})

	menu := Menu{
		Build:            gate.CurrentName(),
		RestartRequested: restart,
		Groups:           make([]Group, 0, len(names)),
	}
	for _, name := range names {
		entries := byGroup[name]
		slices.SortStableFunc(entries, func(x, y Entry) int {
			return col.CompareString(stripPrefixes(x.Label), stripPrefixes(y.Label))
		})
		menu.Groups = append(menu.Groups, Group{Name: name, Entries: entries})
	}
	return menu
}

func (b MenuBuilder) visible(v feature.View) bool {
	if b.DevMode {
		return true
	}
	return !v.Hidden && v.Group != feature.GroupDev
}

// Entry renders one feature.
func (b MenuBuilder) Entry(v feature.View) Entry {
	e := Entry{
		ID:               v.ID,
		Label:            Label(v),
		Description:      v.Description,
		Toggle:           ToggleText(v),
		Toggleable:       !v.Automated && !v.DisableToggle,
		Builds:           v.BuildLabel,
		State:            string(v.State),
		Applies:          v.AppliesToCurrentBuild,
		Degraded:         v.Degraded(),
		SubMenu:          v.PlaceInSubMenu,
		RestartRequested: v.RestartRequested,
	}
	for _, s := range v.Settings {
		if !s.AppliesToCurrentBuild || (s.Meta.Hidden && !b.DevMode) {
			continue
		}
		e.Settings = append(e.Settings, settingEntry(s))
	}
	for _, d := range v.Diagnostics {
		e.Diagnostics = append(e.Diagnostics, diagnosticEntry(d))
	}
	return e
}

// Label is the menu text of a feature.
func Label(v feature.View) string {
	label := v.Name
	if v.Hidden {
		label = HiddenPrefix + label
	}
	if v.RequiresRestart {
		label = RestartPrefix + label
	}
	return label
}

// ToggleText shows the live state for features that apply to the current
// build and switch without restart, and the persisted state otherwise.
func ToggleText(v feature.View) string {
	if v.Automated {
		return ToggleAutomated
	}
	on := v.EnabledInConfig
	if v.AppliesToCurrentBuild && !v.RequiresRestart {
		on = v.Enabled
	}
	if on {
		return ToggleEnabled
	}
	return ToggleDisabled
}

func stripPrefixes(label string) string {
	label = strings.TrimPrefix(label, RestartPrefix)
	return strings.TrimPrefix(label, HiddenPrefix)
}

func settingEntry(s feature.SettingView) SettingEntry {
	return SettingEntry{
		Name:        s.Meta.Name,
		Label:       settingLabel(s.Meta),
		Description: s.Meta.Description,
		Kind:        s.Kind.String(),
		Value:       s.Value,
		ValueLabel:  s.Label,
		Options:     s.Options,
		MaxLength:   s.MaxLength,
		Header:      s.Meta.Header,
		Separator:   s.Meta.SeparatorAbove,
		Spacer:      s.Meta.SpacerAbove,
	}
}

func settingLabel(m settings.Meta) string {
	if m.Hidden {
		return HiddenPrefix + m.Label()
	}
	return m.Label()
}

func diagnosticEntry(d feature.Diagnostic) DiagnosticEntry {
	e := DiagnosticEntry{
		ID:      d.ID.String(),
		Feature: d.Feature,
		Target:  d.Target,
		Backend: d.Backend,
		Op:      d.Op,
		At:      d.At,
	}
	if d.Err != nil {
		e.Error = d.Err.Error()
	}
	return e
}
