// Package pixel holds the decoded pixel grid every transform operates on.
package pixel

import (
	"image"
	"image/color"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Format is the channel layout of a Buffer.
type Format int

const (
	RGB Format = iota + 1
	RGBA
)

func (f Format) Channels() int {
	if f == RGBA {
		return 4
	}

	return 3
}

func (f Format) String() string {
	switch f {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	default:
		return "unknown"
	}
}

// Buffer is a width x height grid of colors.
//
// Buffers are treated as immutable once built: transforms always return a new Buffer.
// Only the canvas primitives (Set and the manipulator shape functions) write into one.
// Pixels are kept as non-premultiplied NRGBA; an RGB buffer always has alpha 255.
type Buffer struct {
	format Format
	img    *image.NRGBA
}

// New allocates a blank buffer. RGB buffers start opaque black, RGBA buffers transparent black.
func New(width, height int, format Format) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(errs.ErrArgument, "buffer dimensions must be positive, got %dx%d", width, height)
	}

	if format != RGB && format != RGBA {
		return nil, errors.Wrapf(errs.ErrArgument, "unknown pixel format %d", format)
	}

	if format == RGB {
		return &Buffer{format: RGB, img: imaging.New(width, height, color.NRGBA{A: 0xff})}, nil
	}

	return &Buffer{format: RGBA, img: image.NewNRGBA(image.Rect(0, 0, width, height))}, nil
}

// Filled allocates a buffer where every pixel is c.
func Filled(width, height int, format Format, c Color) (*Buffer, error) {
	b, err := New(width, height, format)
	if err != nil {
		return nil, err
	}

	if format == RGB {
		c.A = 0xff
	}

	b.img = imaging.New(width, height, c.NRGBA())

	return b, nil
}

// FromImage copies any decoded image into a buffer. The result is RGBA when
// the source carries transparency, RGB otherwise.
func FromImage(img image.Image) *Buffer {
	format := RGB
	if hasAlpha(img) {
		format = RGBA
	}

	return Wrap(imaging.Clone(img), format)
}

// Wrap takes ownership of img. For RGB every alpha sample is forced to 255.
func Wrap(img *image.NRGBA, format Format) *Buffer {
	if img.Rect.Min != (image.Point{}) {
		img = imaging.Clone(img)
	}

	if format != RGBA {
		format = RGB
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = 0xff
		}
	}

	return &Buffer{format: format, img: img}
}

func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}

	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.YCbCrModel, color.CMYKModel:
		return false
	}

	return true
}

func (b *Buffer) Width() int {
	return b.img.Rect.Dx()
}

func (b *Buffer) Height() int {
	return b.img.Rect.Dy()
}

func (b *Buffer) Format() Format {
	return b.format
}

func (b *Buffer) HasAlpha() bool {
	return b.format == RGBA
}

func (b *Buffer) Bounds() image.Rectangle {
	return b.img.Rect
}

func (b *Buffer) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width() && y < b.Height()
}

// At returns the color at (x, y).
func (b *Buffer) At(x, y int) (Color, error) {
	if !b.contains(x, y) {
		return Color{}, errors.Wrapf(errs.ErrArgument, "pixel (%d,%d) outside %dx%d", x, y, b.Width(), b.Height())
	}

	return FromNRGBA(b.img.NRGBAAt(x, y)), nil
}

// Set writes a single pixel. It is part of the canvas family and mutates b.
func (b *Buffer) Set(x, y int, c Color) error {
	if !b.contains(x, y) {
		return errors.Wrapf(errs.ErrArgument, "pixel (%d,%d) outside %dx%d", x, y, b.Width(), b.Height())
	}

	if b.format == RGB {
		c.A = 0xff
	}

	b.img.SetNRGBA(x, y, c.NRGBA())

	return nil
}

// NRGBA exposes the backing image. Callers must not write to it unless they own b as a canvas.
func (b *Buffer) NRGBA() *image.NRGBA {
	return b.img
}

// Clone returns an independent copy.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{format: b.format, img: imaging.Clone(b.img)}
}

// Flatten returns an opaque RGB copy. Color samples are kept as they are and alpha becomes 255.
func (b *Buffer) Flatten() *Buffer {
	return Wrap(imaging.Clone(b.img), RGB)
}

// Samples returns the row-major packed samples, Format().Channels() per pixel.
func (b *Buffer) Samples() []uint8 {
	if b.format == RGBA {
		out := make([]uint8, len(b.img.Pix))
		copy(out, b.img.Pix)
		return out
	}

	w, h := b.Width(), b.Height()
	out := make([]uint8, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := b.img.Pix[y*b.img.Stride : y*b.img.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			out = append(out, row[i], row[i+1], row[i+2])
		}
	}

	return out
}

// Equal reports whether both buffers have the same size, format and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil || b.format != other.format || b.Width() != other.Width() || b.Height() != other.Height() {
		return false
	}

	w := b.Width() * 4
	for y := 0; y < b.Height(); y++ {
		r1 := b.img.Pix[y*b.img.Stride : y*b.img.Stride+w]
		r2 := other.img.Pix[y*other.img.Stride : y*other.img.Stride+w]
		for i := range r1 {
			if r1[i] != r2[i] {
				return false
			}
		}
	}

	return true
}
