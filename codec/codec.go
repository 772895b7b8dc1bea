// Package codec turns bytes into pixel buffers and back.
package codec

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/denismitr/voodoo/media"
	"github.com/denismitr/voodoo/pixel"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	_ "golang.org/x/image/webp"
)

// DefaultQuality is used for lossy formats when no quality hint was given.
const DefaultQuality = 100

var imagingFormats = map[media.Format]imaging.Format{
	media.JPEG: imaging.JPEG,
	media.PNG:  imaging.PNG,
	media.GIF:  imaging.GIF,
	media.BMP:  imaging.BMP,
	media.TIFF: imaging.TIFF,
}

// Config is what can be learned about an image without decoding its pixels.
type Config struct {
	Width      int
	Height     int
	Format     media.Format
	Components int
}

// DecodeConfig reads the image header only.
func DecodeConfig(b []byte) (*Config, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(errs.ErrDecode, err.Error())
	}

	f, err := media.NormalizeExtension(name)
	if err != nil {
		return nil, errors.Wrapf(errs.ErrDecode, "unknown detected format %s", name)
	}

	return &Config{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Format:     f,
		Components: components(cfg.ColorModel),
	}, nil
}

// Decode produces a buffer and the detected format from raw bytes.
func Decode(b []byte) (*pixel.Buffer, media.Format, error) {
	if len(b) == 0 {
		return nil, "", errors.Wrap(errs.ErrDecode, "empty input")
	}

	cfg, err := DecodeConfig(b)
	if err != nil {
		return nil, "", err
	}

	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", errors.Wrap(errs.ErrDecode, err.Error())
	}

	return pixel.FromImage(img), cfg.Format, nil
}

// Encode writes buf in the given format. RGBA buffers are flattened when the
// format has no alpha channel. quality is in [0, 1] and only matters to lossy encoders.
func Encode(w io.Writer, buf *pixel.Buffer, f media.Format, quality *float64) error {
	target, ok := imagingFormats[f]
	if !ok || !f.Encodable() {
		return errors.Wrapf(errs.ErrEncode, "format %q is not supported for writing", f)
	}

	src := buf
	if buf.HasAlpha() && !f.SupportsAlpha() {
		src = buf.Flatten()
	}

	var opts []imaging.EncodeOption
	if f == media.JPEG {
		opts = append(opts, imaging.JPEGQuality(jpegQuality(quality)))
	}

	if err := imaging.Encode(w, src.NRGBA(), target, opts...); err != nil {
		return errors.Wrapf(errs.ErrEncode, "could not encode image to %s: %v", f, err)
	}

	return nil
}

// EncodeBytes is Encode into a fresh byte slice.
func EncodeBytes(buf *pixel.Buffer, f media.Format, quality *float64) ([]byte, error) {
	out := &bytes.Buffer{}
	if err := Encode(out, buf, f, quality); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func jpegQuality(quality *float64) int {
	if quality == nil {
		return DefaultQuality
	}

	q := int(math.Round(*quality * 100))
	if q < 1 {
		return 1
	}

	if q > 100 {
		return 100
	}

	return q
}

func components(m color.Model) int {
	if _, ok := m.(color.Palette); ok {
		return 1
	}

	switch m {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.YCbCrModel:
		return 3
	case color.CMYKModel:
		return 4
	case color.NRGBAModel, color.RGBAModel, color.NRGBA64Model, color.RGBA64Model, color.NYCbCrAModel:
		return 4
	}

	return 3
}
