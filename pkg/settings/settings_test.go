package settings_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/buildinfo"
	"github.com/dmitrymomot/modkit/pkg/settings"
)

type featureSettings struct {
	ShowHUD bool
	Prefix  string
	Tint    settings.RGBA
	Mode    string
	Sources []string
}

func newSettings(cfg *featureSettings) []settings.Setting {
	return []settings.Setting{
		settings.NewBool("show_hud", settings.Ref(&cfg.ShowHUD), settings.WithDisplayName("Show HUD")),
		settings.NewString("prefix", 8, settings.Ref(&cfg.Prefix)),
		settings.NewColor("tint", settings.Ref(&cfg.Tint), settings.WithHeader("Visuals"), settings.WithSeparator()),
		settings.NewEnum("mode", []string{"Fast", "Safe"}, settings.Ref(&cfg.Mode), settings.WithBuilds(buildinfo.FromTo(5, 6))),
		settings.NewEnumList("sources", []string{"Lights", "Doors", "Terminals"}, settings.Ref(&cfg.Sources), settings.Hidden(), settings.WithSpacer()),
	}
}

func TestMeta(t *testing.T) {
	t.Parallel()

	list := newSettings(&featureSettings{})
	kinds := make([]string, len(list))
	for i, s := range list {
		kinds[i] = s.Kind().String()
	}
	assert.Equal(t, []string{"bool", "string", "color", "enum", "enum_list"}, kinds)

	assert.Equal(t, "Show HUD", list[0].Meta().Label())
	assert.Equal(t, "prefix", list[1].Meta().Label())
	assert.Equal(t, "Visuals", list[2].Meta().Header)
	assert.True(t, list[2].Meta().SeparatorAbove)
	assert.True(t, list[3].Meta().Builds.Contains(5))
	assert.True(t, list[4].Meta().Hidden)
	assert.True(t, list[4].Meta().SpacerAbove)
}

func TestAccessorsWriteThrough(t *testing.T) {
	t.Parallel()

	cfg := &featureSettings{}
	list := newSettings(cfg)

	require.NoError(t, settings.Assign(list[0], true))
	require.NoError(t, settings.Assign(list[1], "abc"))
	require.NoError(t, settings.Assign(list[2], "#FF000080"))
	require.NoError(t, settings.Assign(list[3], "Safe"))
	require.NoError(t, settings.Assign(list[4], []any{"Terminals", "Lights"}))

	assert.True(t, cfg.ShowHUD)
	assert.Equal(t, "abc", cfg.Prefix)
	assert.Equal(t, settings.RGBA{R: 255, A: 128}, cfg.Tint)
	assert.Equal(t, "Safe", cfg.Mode)
	assert.Equal(t, []string{"Lights", "Terminals"}, cfg.Sources)

	assert.Equal(t, true, settings.Value(list[0]))
	assert.Equal(t, "#FF000080", settings.Value(list[2]))
}

func TestAssignRejectsBadValues(t *testing.T) {
	t.Parallel()

	cfg := &featureSettings{Mode: "Fast", Prefix: "ok"}
	list := newSettings(cfg)

	assert.ErrorIs(t, settings.Assign(list[0], "yes"), settings.ErrInvalidValue)
	assert.ErrorIs(t, settings.Assign(list[1], "123456789"), settings.ErrValueTooLong)
	assert.ErrorIs(t, settings.Assign(list[1], 12), settings.ErrInvalidValue)
	assert.ErrorIs(t, settings.Assign(list[2], "#GG0000"), settings.ErrInvalidValue)
	assert.ErrorIs(t, settings.Assign(list[2], 7), settings.ErrInvalidValue)
	assert.ErrorIs(t, settings.Assign(list[3], "Reckless"), settings.ErrUnknownOption)
	assert.ErrorIs(t, settings.Assign(list[4], []any{"Lights", 3}), settings.ErrInvalidValue)
	assert.ErrorIs(t, settings.Assign(list[4], []string{"Vents"}), settings.ErrUnknownOption)

	assert.Equal(t, "Fast", cfg.Mode)
	assert.Equal(t, "ok", cfg.Prefix)
}

func TestStringLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	var v string
	s := settings.NewString("name", 0, settings.Ref(&v))
	assert.Equal(t, settings.DefaultMaxLength, s.MaxLength())

	short := settings.NewString("short", 3, settings.Ref(&v))
	require.NoError(t, short.Set("äöü"))
	assert.ErrorIs(t, short.Set("äöüß"), settings.ErrValueTooLong)
	assert.Equal(t, "äöü", v)
}

func TestColorHex(t *testing.T) {
	t.Parallel()

	c, err := settings.ParseHex("#00ff7f")
	require.NoError(t, err)
	assert.Equal(t, settings.RGBA{G: 255, B: 127, A: 255}, c)
	assert.Equal(t, "#00FF7F", c.Hex())

	c, err = settings.ParseHex("11223344")
	require.NoError(t, err)
	assert.Equal(t, "#11223344", c.Hex())

	for _, bad := range []string{"", "#123", "#1234567", "zzzzzz"} {
		_, err := settings.ParseHex(bad)
		assert.ErrorIs(t, err, settings.ErrInvalidValue, bad)
	}
}

func TestEnumList(t *testing.T) {
	t.Parallel()

	var selected []string
	list := settings.NewEnumList("loot", []string{"Ammo", "Medipack", "ToolRefill", "Disinfection", "Artifacts", "Keycards"}, settings.Ref(&selected))

	assert.Equal(t, "[None]", list.Label())

	require.NoError(t, list.Toggle("Medipack"))
	require.NoError(t, list.Toggle("Ammo"))
	assert.Equal(t, []string{"Ammo", "Medipack"}, list.Get())
	assert.Equal(t, "Ammo, Medipack", list.Label())

	require.NoError(t, list.Toggle("Ammo"))
	assert.Equal(t, []string{"Medipack"}, selected)
	assert.ErrorIs(t, list.Toggle("Grenades"), settings.ErrUnknownOption)

	require.NoError(t, list.Set(list.Options()))
	label := list.Label()
	assert.True(t, strings.HasSuffix(label, " ..."))
	assert.Equal(t, 36+len(" ..."), len([]rune(label)))
	assert.True(t, strings.HasPrefix(label, "Ammo, Medipack, ToolRefill"))

	require.NoError(t, list.Set([]string{"Keycards", "Keycards"}))
	assert.Equal(t, []string{"Keycards"}, list.Get())
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	src := &featureSettings{
		ShowHUD: true,
		Prefix:  "R6",
		Tint:    settings.RGBA{R: 1, G: 2, B: 3, A: 255},
		Mode:    "Safe",
		Sources: []string{"Doors"},
	}
	dst := &featureSettings{Mode: "Fast"}
	from, to := newSettings(src), newSettings(dst)

	for i := range from {
		raw, err := settings.Encode(from[i])
		require.NoError(t, err)
		require.NoError(t, settings.Decode(to[i], raw), from[i].Meta().Name)
	}
	assert.Equal(t, src, dst)

	raw, err := settings.Encode(from[2])
	require.NoError(t, err)
	assert.JSONEq(t, `"#010203"`, string(raw))

	assert.ErrorIs(t, settings.Decode(to[0], []byte("{")), settings.ErrInvalidValue)
	require.NoError(t, settings.Decode(to[4], []byte("null")))
	assert.Empty(t, dst.Sources)
}
