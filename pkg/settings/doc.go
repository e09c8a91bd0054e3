// Package settings defines the typed settings a feature exposes to the UI and
// the codec used to persist them.
//
// Setting is a closed set of variants: Bool, String, Color, Enum and EnumList.
// Each variant reads and writes a value owned by the feature through an
// Accessor, so the feature keeps using its own field while the settings
// bridge updates it. Every variant carries Meta, including a buildinfo.Range
// hint the UI uses for conditional display.
//
// Value, Assign, Encode and Decode switch exhaustively over the variants.
//
//	var cfg struct {
//		Enabled bool
//		Tint    settings.RGBA
//		Mode    string
//	}
//
//	list := []settings.Setting{
//		settings.NewBool("enabled", settings.Ref(&cfg.Enabled)),
//		settings.NewColor("tint", settings.Ref(&cfg.Tint), settings.WithHeader("Visuals")),
//		settings.NewEnum("mode", []string{"Fast", "Safe"}, settings.Ref(&cfg.Mode)),
//	}
//
//	raw, _ := settings.Encode(list[1]) // "\"#FF0000\""
package settings
