package voodoo

import (
	"bytes"
	"context"
	"math"
	"sync"

	"github.com/denismitr/voodoo/codec"
	"github.com/denismitr/voodoo/manipulator"
	"github.com/denismitr/voodoo/media"
	"github.com/denismitr/voodoo/metadata"
	"github.com/denismitr/voodoo/pixel"
	"github.com/denismitr/voodoo/storage"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// lazyMetadata is shared by an image and everything derived from it, so the
// source bytes are parsed at most once.
type lazyMetadata struct {
	source []byte

	once   sync.Once
	reader *metadata.Reader
}

func (m *lazyMetadata) get() *metadata.Reader {
	m.once.Do(func() {
		m.reader = metadata.Read(m.source)
	})

	return m.reader
}

// Image is a decoded picture plus where it came from: its format, an
// optional quality hint for lossy encoders and the metadata of the source.
type Image struct {
	engine  *Voodoo
	buf     *pixel.Buffer
	format  media.Format
	quality *float64
	meta    *lazyMetadata
}

func (img *Image) derive(op string, buf *pixel.Buffer) *Image {
	out := &Image{
		engine:  img.engine,
		buf:     buf,
		format:  img.format,
		quality: img.quality,
		meta:    img.meta,
	}

	img.engine.trace(op, out)

	return out
}

func (img *Image) unsupported(op string) error {
	return errors.Wrapf(ErrUnsupportedFeature, "backend %s does not support %s", img.engine.backend.Name(), op)
}

func (img *Image) Width() int {
	return img.buf.Width()
}

func (img *Image) Height() int {
	return img.buf.Height()
}

// Format is the format the image was decoded from or created for.
func (img *Image) Format() media.Format {
	return img.format
}

// Buffer exposes the pixels. Treat the result as read only.
func (img *Image) Buffer() *pixel.Buffer {
	return img.buf
}

func (img *Image) ColorAt(x, y int) (pixel.Color, error) {
	return img.buf.At(x, y)
}

// Metadata parses the source bytes on first use. Images that were not
// decoded from bytes report every directory as absent.
func (img *Image) Metadata() *metadata.Reader {
	return img.meta.get()
}

// Quality returns a copy carrying the hint q, which must lie in [0, 1].
func (img *Image) Quality(q float64) (*Image, error) {
	if math.IsNaN(q) || q < 0 || q > 1 {
		return nil, errors.Wrapf(ErrArgument, "quality must be within [0, 1], got %v", q)
	}

	out := img.derive("quality", img.buf)
	out.quality = &q

	return out, nil
}

func (img *Image) AdjustBrightness(scale, offset float64) (*Image, error) {
	b, ok := img.engine.backend.(manipulator.ColorAdjuster)
	if !ok {
		return nil, img.unsupported("adjust brightness")
	}

	buf, err := b.AdjustBrightness(img.buf, scale, offset)
	if err != nil {
		return nil, err
	}

	return img.derive("adjust_brightness", buf), nil
}

// Alpha replaces every pixel whose color equals the rrggbb hex with an opaque
// sentinel color. The result is RGBA.
func (img *Image) Alpha(hex string) (*Image, error) {
	key, err := pixel.ParseHex(hex)
	if err != nil {
		return nil, err
	}

	b, ok := img.engine.backend.(manipulator.AlphaKeyer)
	if !ok {
		return nil, img.unsupported("alpha")
	}

	buf, err := b.AlphaKey(img.buf, key)
	if err != nil {
		return nil, err
	}

	return img.derive("alpha", buf), nil
}

func (img *Image) Greyscale() (*Image, error) {
	b, ok := img.engine.backend.(manipulator.ColorAdjuster)
	if !ok {
		return nil, img.unsupported("greyscale")
	}

	buf, err := b.Greyscale(img.buf)
	if err != nil {
		return nil, err
	}

	return img.derive("greyscale", buf), nil
}

func (img *Image) Grayscale() (*Image, error) {
	return img.Greyscale()
}

func (img *Image) Negative() (*Image, error) {
	b, ok := img.engine.backend.(manipulator.ColorAdjuster)
	if !ok {
		return nil, img.unsupported("negative")
	}

	buf, err := b.Negative(img.buf)
	if err != nil {
		return nil, err
	}

	return img.derive("negative", buf), nil
}

func (img *Image) FlipHorizontally() (*Image, error) {
	b, ok := img.engine.backend.(manipulator.Flipper)
	if !ok {
		return nil, img.unsupported("flip horizontally")
	}

	buf, err := b.FlipHorizontal(img.buf)
	if err != nil {
		return nil, err
	}

	return img.derive("flip_horizontally", buf), nil
}

func (img *Image) FlipVertically() (*Image, error) {
	b, ok := img.engine.backend.(manipulator.Flipper)
	if !ok {
		return nil, img.unsupported("flip vertically")
	}

	buf, err := b.FlipVertical(img.buf)
	if err != nil {
		return nil, err
	}

	return img.derive("flip_vertically", buf), nil
}

// WithCrop keeps [left, right) x [top, bottom).
func (img *Image) WithCrop(left, top, right, bottom int) (*Image, error) {
	b, ok := img.engine.backend.(manipulator.Cropper)
	if !ok {
		return nil, img.unsupported("crop")
	}

	buf, err := b.Crop(img.buf, left, top, right, bottom)
	if err != nil {
		return nil, err
	}

	return img.derive("crop", buf), nil
}

func (img *Image) Resize(width, height int) (*Image, error) {
	b, ok := img.engine.backend.(manipulator.Resizer)
	if !ok {
		return nil, img.unsupported("resize")
	}

	buf, err := b.Resize(img.buf, width, height)
	if err != nil {
		return nil, err
	}

	return img.derive("resize", buf), nil
}

// Scale resizes by ratio, truncating the new dimensions.
func (img *Image) Scale(ratio float64) (*Image, error) {
	b, ok := img.engine.backend.(manipulator.Resizer)
	if !ok {
		return nil, img.unsupported("scale")
	}

	buf, err := manipulator.ScaleWith(b, img.buf, ratio)
	if err != nil {
		return nil, err
	}

	return img.derive("scale", buf), nil
}

// Thumbnail scales the image so that its longest edge becomes size.
func (img *Image) Thumbnail(size int) (*Image, error) {
	b, ok := img.engine.backend.(manipulator.Resizer)
	if !ok {
		return nil, img.unsupported("thumbnail")
	}

	buf, err := manipulator.ThumbnailWith(b, img.buf, size)
	if err != nil {
		return nil, err
	}

	return img.derive("thumbnail", buf), nil
}

// CroppedThumbnail cuts the centered square and thumbnails it to size.
func (img *Image) CroppedThumbnail(size int) (*Image, error) {
	b, ok := img.engine.backend.(manipulator.Thumbnailer)
	if !ok {
		return nil, img.unsupported("cropped thumbnail")
	}

	buf, err := manipulator.CroppedThumbnailWith(b, img.buf, size)
	if err != nil {
		return nil, err
	}

	return img.derive("cropped_thumbnail", buf), nil
}

// Rotate turns the image clockwise by degrees.
func (img *Image) Rotate(degrees float64) (*Image, error) {
	b, ok := img.engine.backend.(manipulator.Rotator)
	if !ok {
		return nil, img.unsupported("rotate")
	}

	buf, err := b.Rotate(img.buf, degrees)
	if err != nil {
		return nil, err
	}

	return img.derive("rotate", buf), nil
}

// CorrectOrientation undoes the EXIF orientation recorded in the source.
// Images without one come back unchanged.
func (img *Image) CorrectOrientation() (*Image, error) {
	o := img.Metadata().Orientation()
	if o <= manipulator.TopLeftSide || o > manipulator.LeftSideBottom {
		return img, nil
	}

	b, ok := img.engine.backend.(manipulator.Orienter)
	if !ok {
		return nil, img.unsupported("correct orientation")
	}

	buf, err := manipulator.OrientWith(b, img.buf, o)
	if err != nil {
		return nil, err
	}

	return img.derive("correct_orientation", buf), nil
}

func (img *Image) AddBorder(opts manipulator.BorderOptions) (*Image, error) {
	b, ok := img.engine.backend.(manipulator.Bordering)
	if !ok {
		return nil, img.unsupported("add border")
	}

	buf, err := b.AddBorder(img.buf, opts)
	if err != nil {
		return nil, err
	}

	return img.derive("add_border", buf), nil
}

// Rect returns a copy with a rectangle drawn in the rrggbb color hex.
func (img *Image) Rect(x, y, width, height int, hex string, fill bool) (*Image, error) {
	return img.RoundedRect(x, y, width, height, hex, 0, 0, fill)
}

func (img *Image) Square(x, y, dim int, hex string, fill bool) (*Image, error) {
	return img.RoundedRect(x, y, dim, dim, hex, 0, 0, fill)
}

func (img *Image) RoundedSquare(x, y, dim int, hex string, arc int, fill bool) (*Image, error) {
	return img.RoundedRect(x, y, dim, dim, hex, arc, arc, fill)
}

// RoundedRect returns a copy with a rounded rectangle drawn in the rrggbb color hex.
func (img *Image) RoundedRect(x, y, width, height int, hex string, arcWidth, arcHeight int, fill bool) (*Image, error) {
	c, err := pixel.ParseHex(hex)
	if err != nil {
		return nil, err
	}

	canvas := img.buf.Clone()
	if err := manipulator.RoundedRect(canvas, x, y, width, height, c, arcWidth, arcHeight, fill); err != nil {
		return nil, err
	}

	return img.derive("shape", canvas), nil
}

// Apply runs a parsed recipe: sizing first, then rotation, flips, greyscale,
// negative and finally the quality hint. The result takes the recipe's format.
func (img *Image) Apply(t *manipulator.Transformation) (*Image, error) {
	if t == nil {
		return nil, errors.Wrap(ErrArgument, "no transformation given")
	}

	out := img
	var err error

	r := t.Resize
	switch {
	case r.CroppedThumbnail != 0:
		out, err = out.CroppedThumbnail(int(r.CroppedThumbnail))
	case r.Thumbnail != 0:
		out, err = out.Thumbnail(int(r.Thumbnail))
	case r.Scale != 0:
		out, err = out.Scale(float64(r.Scale) / 100)
	case r.WidthOrHeightProvided():
		out, err = out.Resize(r.Target(out.Width(), out.Height()))
	}

	if err != nil {
		return nil, err
	}

	steps := []struct {
		on bool
		fn func(*Image) (*Image, error)
	}{
		{t.Rotation != 0, func(i *Image) (*Image, error) { return i.Rotate(float64(t.Rotation)) }},
		{t.Flip.Horizontal, (*Image).FlipHorizontally},
		{t.Flip.Vertical, (*Image).FlipVertically},
		{t.Greyscale, (*Image).Greyscale},
		{t.Negative, (*Image).Negative},
	}

	for _, s := range steps {
		if !s.on {
			continue
		}

		if out, err = s.fn(out); err != nil {
			return nil, err
		}
	}

	if q := t.QualityRatio(); q != nil {
		if out, err = out.Quality(*q); err != nil {
			return nil, err
		}
	}

	if out == img {
		out = img.derive("apply", img.buf)
	}

	if t.Format != "" {
		out.format = t.Format
	}

	return out, nil
}

// ApplyRecipe parses recipe (see manipulator.ParseRecipe) and applies it.
func (img *Image) ApplyRecipe(recipe, extension string) (*Image, error) {
	t, err := manipulator.ParseRecipe(recipe, extension)
	if err != nil {
		return nil, err
	}

	return img.Apply(t)
}

// Bytes encodes the image. format is an informal name such as "png" or "jpg".
// The quality hint only reaches lossy encoders.
func (img *Image) Bytes(format string) ([]byte, error) {
	f, err := media.NormalizeExtension(format)
	if err != nil {
		return nil, err
	}

	return codec.EncodeBytes(img.buf, f, img.qualityFor(f))
}

func (img *Image) qualityFor(f media.Format) *float64 {
	if !f.Lossy() {
		return nil
	}

	return img.quality
}

// Save encodes the image in the format named by path's extension and stores it.
func (img *Image) Save(ctx context.Context, path string) error {
	f, err := media.FromFilename(path)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := codec.Encode(buf, img.buf, f, img.qualityFor(f)); err != nil {
		return err
	}

	size := buf.Len()
	namespace, filename := storage.SplitPath(path)

	item, err := img.engine.storage.Put(ctx, namespace, filename, buf)
	if err != nil {
		img.engine.logger.WithField("path", path).Errorln(err)
		return err
	}

	img.engine.logger.WithFields(logrus.Fields{
		"op":     "save",
		"path":   item.Path,
		"format": f,
		"size":   size,
	}).Debug("image saved")

	return nil
}
