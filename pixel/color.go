package pixel

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/pkg/errors"
)

var rxHex = regexp.MustCompile(`^[[:xdigit:]]{6}$`)

// Color is a non-premultiplied 8 bit color.
type Color struct {
	R, G, B, A uint8
}

var (
	Black = Color{A: 0xff}
	White = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// ParseHex parses an rrggbb string (an optional leading # is allowed) into an opaque color.
// An empty string is black.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return Black, nil
	}

	if !rxHex.MatchString(s) {
		return Color{}, errors.Wrapf(errs.ErrArgument, "hex rrggbb needed, got %q", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, errors.Wrapf(errs.ErrArgument, "hex rrggbb needed, got %q", s)
	}

	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}

	return c
}

func (c Color) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// SameRGB reports whether both colors have equal color samples, ignoring alpha.
func (c Color) SameRGB(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func FromNRGBA(c color.NRGBA) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
