package manipulator

import (
	"strings"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/denismitr/voodoo/pixel"
	"github.com/pkg/errors"
)

// DefaultBorderWidth is used when BorderOptions.Width is nil. A zero Color is black.
const DefaultBorderWidth = 3

type BorderStyle string

const (
	BorderPlain  BorderStyle = "plain"
	BorderRaised BorderStyle = "raised"
	BorderEtched BorderStyle = "etched"
)

// ParseBorderStyle maps a style name to a BorderStyle. Anything unknown is plain.
func ParseBorderStyle(s string) BorderStyle {
	switch BorderStyle(strings.ToLower(strings.TrimSpace(s))) {
	case BorderRaised:
		return BorderRaised
	case BorderEtched:
		return BorderEtched
	default:
		return BorderPlain
	}
}

type BorderOptions struct {
	Width *int
	Color pixel.Color
	Style BorderStyle
}

// BorderWidth is a convenience for filling BorderOptions.Width.
func BorderWidth(px int) *int {
	return &px
}

// AddBorder returns a copy of src framed by a border of opts.Width pixels on every side.
func AddBorder(src *pixel.Buffer, opts BorderOptions) (*pixel.Buffer, error) {
	b := DefaultBorderWidth
	if opts.Width != nil {
		b = *opts.Width
	}

	if b < 0 {
		return nil, errors.Wrapf(errs.ErrArgument, "border width must not be negative, got %d", b)
	}

	col := opts.Color
	if col == (pixel.Color{}) {
		col = pixel.Black
	}

	w, h := src.Width()+2*b, src.Height()+2*b
	target, err := pixel.New(w, h, src.Format())
	if err != nil {
		return nil, err
	}

	return Paint(target, func(c *Canvas) error {
		c.SetColor(col)

		switch opts.Style {
		case BorderRaised:
			c.Fill3DRect(0, 0, w, h, true)
		case BorderEtched:
			c.Fill3DRect(0, 0, w, h, false)
		default:
			c.FillRect(0, 0, w, h)
		}

		c.DrawImage(src, b, b)
		return nil
	})
}

// Rect draws a rectangle onto buf in place, filled or outlined.
func Rect(buf *pixel.Buffer, x, y, width, height int, col pixel.Color, fill bool) error {
	return RoundedRect(buf, x, y, width, height, col, 0, 0, fill)
}

func Square(buf *pixel.Buffer, x, y, dim int, col pixel.Color, fill bool) error {
	return Rect(buf, x, y, dim, dim, col, fill)
}

// RoundedRect draws a rectangle with elliptic corners of arcWidth x arcHeight onto buf in place.
func RoundedRect(buf *pixel.Buffer, x, y, width, height int, col pixel.Color, arcWidth, arcHeight int, fill bool) error {
	if width < 0 || height < 0 {
		return errors.Wrapf(errs.ErrArgument, "shape size must not be negative, got %dx%d", width, height)
	}

	_, err := Paint(buf, func(c *Canvas) error {
		c.SetColor(col)
		if fill {
			c.FillRoundRect(x, y, width, height, arcWidth, arcHeight)
		} else {
			c.StrokeRoundRect(x, y, width, height, arcWidth, arcHeight)
		}

		return nil
	})

	return err
}

func RoundedSquare(buf *pixel.Buffer, x, y, dim int, col pixel.Color, arc int, fill bool) error {
	return RoundedRect(buf, x, y, dim, dim, col, arc, arc, fill)
}
