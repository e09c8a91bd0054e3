package settingsapi_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/modkit/pkg/buildinfo"
	"github.com/dmitrymomot/modkit/pkg/feature"
	"github.com/dmitrymomot/modkit/pkg/settings"
	"github.com/dmitrymomot/modkit/pkg/settingsapi"
)

func TestLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		view feature.View
		want string
	}{
		{"plain", feature.View{Name: "God Mode"}, "God Mode"},
		{"hidden", feature.View{Name: "God Mode", Hidden: true}, "[H] God Mode"},
		{"restart", feature.View{Name: "God Mode", RequiresRestart: true}, "[!] God Mode"},
		{"both", feature.View{Name: "God Mode", Hidden: true, RequiresRestart: true}, "[!] [H] God Mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, settingsapi.Label(tt.view))
		})
	}
}

func TestToggleText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		view feature.View
		want string
	}{
		{"automated", feature.View{Automated: true, Enabled: true}, "Automated"},
		{"live enabled", feature.View{AppliesToCurrentBuild: true, Enabled: true}, "Enabled"},
		{"live wins over config", feature.View{AppliesToCurrentBuild: true, EnabledInConfig: true}, "Disabled"},
		{"restart shows config", feature.View{AppliesToCurrentBuild: true, RequiresRestart: true, EnabledInConfig: true}, "Enabled"},
		{"inapplicable shows config", feature.View{EnabledInConfig: true}, "Enabled"},
		{"inapplicable disabled", feature.View{Enabled: true}, "Disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, settingsapi.ToggleText(tt.view))
		})
	}
}

func TestMenuBuilder_Build(t *testing.T) {
	t.Parallel()

	gate := buildinfo.MustNewGate(nil, 5)
	views := []feature.View{
		{ID: "zoom", Name: "zoom", Group: "Camera"},
		{ID: "aim", Name: "Aim Assist", Group: "Combat"},
		{ID: "orbit", Name: "Orbit", Group: "Camera", Hidden: true},
		{ID: "console", Name: "Console", Group: feature.GroupDev},
		{ID: "eclair", Name: "Éclair", Group: "Camera", RequiresRestart: true},
		{ID: "armor", Name: "armor", Group: "Combat"},
	}

	t.Run("player mode hides dev and hidden entries", func(t *testing.T) {
		t.Parallel()
		menu := settingsapi.MenuBuilder{Language: language.English}.Build(gate, views, true)

		assert.Equal(t, "R5", menu.Build)
		assert.True(t, menu.RestartRequested)
		require.Len(t, menu.Groups, 2)
		assert.Equal(t, "Camera", menu.Groups[0].Name)
		assert.Equal(t, []string{"eclair", "zoom"}, ids(menu.Groups[0]))
		assert.Equal(t, []string{"aim", "armor"}, ids(menu.Groups[1]))
	})

	t.Run("dev mode shows everything with dev last", func(t *testing.T) {
		t.Parallel()
		menu := settingsapi.MenuBuilder{DevMode: true, Language: language.English}.Build(gate, views, false)

		require.Len(t, menu.Groups, 3)
		assert.Equal(t, "Dev", menu.Groups[2].Name)
		assert.Equal(t, []string{"eclair", "orbit", "zoom"}, ids(menu.Groups[0]))
		assert.Equal(t, "[H] Orbit", menu.Groups[0].Entries[1].Label)
	})
}

func TestMenuBuilder_Entry(t *testing.T) {
	t.Parallel()

	mode := "hard"
	v := feature.View{
		ID:                    "god-mode",
		Name:                  "God Mode",
		BuildLabel:            "R4-R6",
		State:                 feature.StateDegraded,
		AppliesToCurrentBuild: true,
		Enabled:               true,
		DisableToggle:         true,
		Settings: []feature.SettingView{
			{Meta: settings.Meta{Name: "mode"}, Kind: settings.KindEnum, Value: mode, Label: mode, Options: []string{"easy", "hard"}, AppliesToCurrentBuild: true},
			{Meta: settings.Meta{Name: "debug", Hidden: true}, Kind: settings.KindBool, Value: false, Label: "Off", AppliesToCurrentBuild: true},
			{Meta: settings.Meta{Name: "future"}, Kind: settings.KindBool, Value: false, Label: "Off"},
		},
		Diagnostics: []feature.Diagnostic{{Feature: "god-mode", Op: "resolve", Err: errors.New("member not found")}},
	}

	e := settingsapi.MenuBuilder{}.Entry(v)
	assert.Equal(t, "Enabled", e.Toggle)
	assert.False(t, e.Toggleable)
	assert.True(t, e.Degraded)
	assert.Equal(t, "R4-R6", e.Builds)
	require.Len(t, e.Settings, 1)
	assert.Equal(t, "enum", e.Settings[0].Kind)
	require.Len(t, e.Diagnostics, 1)
	assert.Equal(t, "member not found", e.Diagnostics[0].Error)

	dev := settingsapi.MenuBuilder{DevMode: true}.Entry(v)
	require.Len(t, dev.Settings, 2)
	assert.Equal(t, "[H] debug", dev.Settings[1].Label)
}

func ids(g settingsapi.Group) []string {
	out := make([]string, 0, len(g.Entries))
	for _, e := range g.Entries {
		out = append(out, e.ID)
	}
	return out
}
