package manipulator

import (
	"image"
	"math"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/denismitr/voodoo/pixel"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/math/f64"
)

// Crop keeps the half open rectangle [left, right) x [top, bottom).
func Crop(src *pixel.Buffer, left, top, right, bottom int) (*pixel.Buffer, error) {
	if left < 0 || top < 0 || right > src.Width() || bottom > src.Height() || right <= left || bottom <= top {
		return nil, errors.Wrapf(
			errs.ErrArgument,
			"crop (%d,%d)-(%d,%d) does not fit a %dx%d image",
			left, top, right, bottom, src.Width(), src.Height(),
		)
	}

	return pixel.Wrap(imaging.Crop(src.NRGBA(), image.Rect(left, top, right, bottom)), src.Format()), nil
}

func FlipHorizontal(src *pixel.Buffer) *pixel.Buffer {
	return pixel.Wrap(imaging.FlipH(src.NRGBA()), src.Format())
}

func FlipVertical(src *pixel.Buffer) *pixel.Buffer {
	return pixel.Wrap(imaging.FlipV(src.NRGBA()), src.Format())
}

// Resize scales src to exactly width x height with a Catmull-Rom kernel.
func Resize(src *pixel.Buffer, width, height int) (*pixel.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(errs.ErrArgument, "resize target must be positive, got %dx%d", width, height)
	}

	if width == src.Width() && height == src.Height() {
		return src.Clone(), nil
	}

	target, err := pixel.New(width, height, src.Format())
	if err != nil {
		return nil, err
	}

	return Paint(target, func(c *Canvas) error {
		c.DrawScaled(src, c.Bounds())
		return nil
	})
}

// Scale resizes by ratio. New dimensions are truncated, not rounded.
func Scale(src *pixel.Buffer, ratio float64) (*pixel.Buffer, error) {
	return ScaleWith(Raster{}, src, ratio)
}

// ScaleWith is Scale carried out with the resize of r.
func ScaleWith(r Resizer, src *pixel.Buffer, ratio float64) (*pixel.Buffer, error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, errors.Wrapf(errs.ErrArgument, "scale ratio must be positive, got %v", ratio)
	}

	return r.Resize(src, int(float64(src.Width())*ratio), int(float64(src.Height())*ratio))
}

// Thumbnail scales src so that its longest edge becomes maxEdge.
func Thumbnail(src *pixel.Buffer, maxEdge int) (*pixel.Buffer, error) {
	return ThumbnailWith(Raster{}, src, maxEdge)
}

func ThumbnailWith(r Resizer, src *pixel.Buffer, maxEdge int) (*pixel.Buffer, error) {
	if maxEdge <= 0 {
		return nil, errors.Wrapf(errs.ErrArgument, "thumbnail edge must be positive, got %d", maxEdge)
	}

	longest := src.Width()
	if src.Height() > longest {
		longest = src.Height()
	}

	return ScaleWith(r, src, float64(maxEdge)/float64(longest))
}

// Thumbnailer is what a backend needs for a cropped thumbnail.
type Thumbnailer interface {
	Cropper
	Resizer
}

// CroppedThumbnail cuts the centered square out of src and thumbnails it to size.
func CroppedThumbnail(src *pixel.Buffer, size int) (*pixel.Buffer, error) {
	return CroppedThumbnailWith(Raster{}, src, size)
}

func CroppedThumbnailWith(b Thumbnailer, src *pixel.Buffer, size int) (*pixel.Buffer, error) {
	left, top, right, bottom := CenteredSquare(src.Width(), src.Height())

	square, err := b.Crop(src, left, top, right, bottom)
	if err != nil {
		return nil, err
	}

	return ThumbnailWith(b, square, size)
}

// CenteredSquare is the largest square centered in a width x height image,
// as the crop rectangle [left, right) x [top, bottom).
func CenteredSquare(width, height int) (left, top, right, bottom int) {
	right, bottom = width, height

	half := (width - height) / 2
	if half < 0 {
		half = -half
	}

	switch {
	case width > height:
		left, right = half, half+height
	case height > width:
		top, bottom = half, half+width
	}

	return left, top, right, bottom
}

// RotatedSize is the canvas needed to hold a width x height image turned by degrees.
func RotatedSize(width, height int, degrees float64) (int, int) {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	w, h := float64(width), float64(height)

	// quarter turns must not pick up float noise
	const eps = 1e-9
	return int(math.Floor(w*cos + h*sin + eps)), int(math.Floor(w*sin + h*cos + eps))
}

// Rotate turns src clockwise by degrees. Quarter turns are exact; any other
// angle is resampled onto a canvas large enough to hold the whole result, and
// the uncovered corners stay transparent (RGBA) or black (RGB).
func Rotate(src *pixel.Buffer, degrees float64) (*pixel.Buffer, error) {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return nil, errors.Wrapf(errs.ErrArgument, "rotation must be finite, got %v", degrees)
	}

	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}

	// imaging turns counter-clockwise
	switch d {
	case 0:
		return src.Clone(), nil
	case 90:
		return pixel.Wrap(imaging.Rotate270(src.NRGBA()), src.Format()), nil
	case 180:
		return pixel.Wrap(imaging.Rotate180(src.NRGBA()), src.Format()), nil
	case 270:
		return pixel.Wrap(imaging.Rotate90(src.NRGBA()), src.Format()), nil
	}

	w, h := RotatedSize(src.Width(), src.Height(), d)
	target, err := pixel.New(w, h, src.Format())
	if err != nil {
		return nil, err
	}

	sin, cos := math.Sincos(d * math.Pi / 180)
	cx, cy := float64(src.Width())/2, float64(src.Height())/2
	tx, ty := float64(w)/2, float64(h)/2

	m := f64.Aff3{
		cos, -sin, tx - (cos*cx - sin*cy),
		sin, cos, ty - (sin*cx + cos*cy),
	}

	return Paint(target, func(c *Canvas) error {
		c.DrawTransformed(src, m)
		return nil
	})
}
