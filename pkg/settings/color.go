package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// RGBA is an 8-bit per channel color.
type RGBA struct {
	R, G, B, A uint8
}

// ParseHex parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is optional and
// a missing alpha channel means fully opaque.
func ParseHex(s string) (RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return RGBA{}, fmt.Errorf("%w: color %q", ErrInvalidValue, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: color %q", ErrInvalidValue, s)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex renders "#RRGGBB", adding the alpha byte only when the color is not opaque.
func (c RGBA) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
