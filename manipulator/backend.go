// Package manipulator holds the pixel operations: color adjustments, geometry,
// the compositor and its shapes, EXIF orientation and transformation recipes.
package manipulator

import "github.com/denismitr/voodoo/pixel"

// Backend is a pixel engine. What it can do is expressed by the capability
// interfaces below; callers type assert for the ones they need.
type Backend interface {
	Name() string
}

type Cropper interface {
	Crop(src *pixel.Buffer, left, top, right, bottom int) (*pixel.Buffer, error)
}

type Flipper interface {
	FlipHorizontal(src *pixel.Buffer) (*pixel.Buffer, error)
	FlipVertical(src *pixel.Buffer) (*pixel.Buffer, error)
}

type Resizer interface {
	Resize(src *pixel.Buffer, width, height int) (*pixel.Buffer, error)
}

type Rotator interface {
	Rotate(src *pixel.Buffer, degrees float64) (*pixel.Buffer, error)
}

type ColorAdjuster interface {
	AdjustBrightness(src *pixel.Buffer, scale, offset float64) (*pixel.Buffer, error)
	Greyscale(src *pixel.Buffer) (*pixel.Buffer, error)
	Negative(src *pixel.Buffer) (*pixel.Buffer, error)
}

type AlphaKeyer interface {
	AlphaKey(src *pixel.Buffer, key pixel.Color) (*pixel.Buffer, error)
}

type Bordering interface {
	AddBorder(src *pixel.Buffer, opts BorderOptions) (*pixel.Buffer, error)
}

// Raster is the in-process backend. It supports every capability.
type Raster struct{}

var (
	_ Backend       = Raster{}
	_ Cropper       = Raster{}
	_ Flipper       = Raster{}
	_ Resizer       = Raster{}
	_ Rotator       = Raster{}
	_ ColorAdjuster = Raster{}
	_ AlphaKeyer    = Raster{}
	_ Bordering     = Raster{}
)

func (Raster) Name() string {
	return "raster"
}

func (Raster) Crop(src *pixel.Buffer, left, top, right, bottom int) (*pixel.Buffer, error) {
	return Crop(src, left, top, right, bottom)
}

func (Raster) FlipHorizontal(src *pixel.Buffer) (*pixel.Buffer, error) {
	return FlipHorizontal(src), nil
}

func (Raster) FlipVertical(src *pixel.Buffer) (*pixel.Buffer, error) {
	return FlipVertical(src), nil
}

func (Raster) Resize(src *pixel.Buffer, width, height int) (*pixel.Buffer, error) {
	return Resize(src, width, height)
}

func (Raster) Rotate(src *pixel.Buffer, degrees float64) (*pixel.Buffer, error) {
	return Rotate(src, degrees)
}

func (Raster) AdjustBrightness(src *pixel.Buffer, scale, offset float64) (*pixel.Buffer, error) {
	return AdjustBrightness(src, scale, offset), nil
}

func (Raster) Greyscale(src *pixel.Buffer) (*pixel.Buffer, error) {
	return Greyscale(src), nil
}

func (Raster) Negative(src *pixel.Buffer) (*pixel.Buffer, error) {
	return Negative(src), nil
}

func (Raster) AlphaKey(src *pixel.Buffer, key pixel.Color) (*pixel.Buffer, error) {
	return AlphaKey(src, key), nil
}

func (Raster) AddBorder(src *pixel.Buffer, opts BorderOptions) (*pixel.Buffer, error) {
	return AddBorder(src, opts)
}
