package manipulator

import (
	"image"
	"sync"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/denismitr/voodoo/pixel"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// Canvas is a drawing context bound to one buffer for the duration of a Paint call.
// It must not be kept after fn returns.
type Canvas struct {
	dst   *pixel.Buffer
	color pixel.Color
	path  vector.Rasterizer
}

var canvasPool = sync.Pool{
	New: func() interface{} {
		return new(Canvas)
	},
}

func acquireCanvas(dst *pixel.Buffer) *Canvas {
	c := canvasPool.Get().(*Canvas)
	c.dst = dst
	c.color = pixel.Black
	return c
}

func (c *Canvas) release() {
	c.dst = nil
	c.color = pixel.Color{}
	canvasPool.Put(c)
}

// Paint hands fn a canvas bound to target and returns the painted target.
// The canvas goes back to the pool however fn exits, panics included.
func Paint(target *pixel.Buffer, fn func(c *Canvas) error) (*pixel.Buffer, error) {
	if target == nil {
		return nil, errors.Wrap(errs.ErrArgument, "nothing to paint on")
	}

	c := acquireCanvas(target)
	defer c.release()

	if err := fn(c); err != nil {
		return nil, err
	}

	return target, nil
}

func (c *Canvas) released() bool {
	return c.dst == nil
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.dst.Bounds()
}

func (c *Canvas) SetColor(col pixel.Color) {
	c.color = col
}

func (c *Canvas) Color() pixel.Color {
	return c.color
}

// DrawImage composites src over the canvas with its top left corner at (x, y).
func (c *Canvas) DrawImage(src *pixel.Buffer, x, y int) {
	r := src.Bounds().Add(image.Pt(x, y))
	draw.Draw(c.dst.NRGBA(), r, src.NRGBA(), image.Point{}, draw.Over)
}

// DrawScaled replaces r with src scaled to fit it (Catmull-Rom).
func (c *Canvas) DrawScaled(src *pixel.Buffer, r image.Rectangle) {
	draw.CatmullRom.Scale(c.dst.NRGBA(), r, src.NRGBA(), src.Bounds(), draw.Src, nil)
}

// DrawTransformed composites src over the canvas through the source to canvas
// affine transform m, sampling bilinearly.
func (c *Canvas) DrawTransformed(src *pixel.Buffer, m f64.Aff3) {
	draw.BiLinear.Transform(c.dst.NRGBA(), m, src.NRGBA(), src.Bounds(), draw.Over, nil)
}

func (c *Canvas) FillRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}

	r := image.Rect(x, y, x+w, y+h)
	draw.Draw(c.dst.NRGBA(), r, image.NewUniform(c.color.NRGBA()), image.Point{}, draw.Over)
}

// StrokeRect outlines the rectangle. The outline covers w+1 by h+1 pixels.
func (c *Canvas) StrokeRect(x, y, w, h int) {
	if w < 0 || h < 0 {
		return
	}

	c.FillRect(x, y, w, 1)
	c.FillRect(x+w, y, 1, h)
	c.FillRect(x+1, y+h, w, 1)
	c.FillRect(x, y+1, 1, h)
}

// FillRoundRect fills a rectangle whose corners are quarter ellipses of arcW by arcH.
func (c *Canvas) FillRoundRect(x, y, w, h, arcW, arcH int) {
	if arcW <= 0 || arcH <= 0 {
		c.FillRect(x, y, w, h)
		return
	}

	if w <= 0 || h <= 0 {
		return
	}

	c.path.Reset(w, h)
	roundRectPath(&c.path, 0, 0, float32(w), float32(h), arcW, arcH)
	c.drawPath(image.Rect(x, y, x+w, y+h))
}

// StrokeRoundRect outlines a rounded rectangle with a one pixel wide line.
// Like StrokeRect, the outline covers w+1 by h+1 pixels.
func (c *Canvas) StrokeRoundRect(x, y, w, h, arcW, arcH int) {
	if arcW <= 0 || arcH <= 0 {
		c.StrokeRect(x, y, w, h)
		return
	}

	if w < 0 || h < 0 {
		return
	}

	ow, oh := w+1, h+1
	c.path.Reset(ow, oh)
	roundRectPath(&c.path, 0, 0, float32(ow), float32(oh), arcW, arcH)

	if ow > 2 && oh > 2 {
		// the inner outline runs the other way and cuts the hole
		roundRectPath(&c.path, float32(ow-1), 1, 1, float32(oh-1), -(arcW - 2), arcH-2)
	}

	c.drawPath(image.Rect(x, y, x+ow, y+oh))
}

// Fill3DRect fills the rectangle with a one pixel bevel, raised or sunken.
// Highlight and shadow colors are derived from the current color.
func (c *Canvas) Fill3DRect(x, y, w, h int, raised bool) {
	base := c.color
	light, dark := brighter(base), darker(base)
	defer c.SetColor(base)

	if !raised {
		c.SetColor(dark)
	}

	c.FillRect(x+1, y+1, w-2, h-2)

	if raised {
		c.SetColor(light)
	} else {
		c.SetColor(dark)
	}

	c.FillRect(x, y, 1, h)
	c.FillRect(x+1, y, w-2, 1)

	if raised {
		c.SetColor(dark)
	} else {
		c.SetColor(light)
	}

	c.FillRect(x+1, y+h-1, w-1, 1)
	c.FillRect(x+w-1, y, 1, h-1)
}

func (c *Canvas) drawPath(r image.Rectangle) {
	c.path.DrawOp = draw.Over
	c.path.Draw(c.dst.NRGBA(), r, image.NewUniform(c.color.NRGBA()), image.Point{})
}

// kappa places cubic control points so that a quarter ellipse is approximated closely.
const kappa = 0.5522848

// roundRectPath adds a closed rounded rectangle from (x0, y0) to (x1, y1).
// Passing x0 > x1 together with a negative arcW mirrors the path, which winds
// it in the opposite direction.
func roundRectPath(z *vector.Rasterizer, x0, y0, x1, y1 float32, arcW, arcH int) {
	rx := clampRadius(float32(arcW)/2, (x1-x0)/2)
	ry := clampRadius(float32(arcH)/2, (y1-y0)/2)
	kx, ky := rx*kappa, ry*kappa

	z.MoveTo(x0+rx, y0)
	z.LineTo(x1-rx, y0)
	z.CubeTo(x1-rx+kx, y0, x1, y0+ry-ky, x1, y0+ry)
	z.LineTo(x1, y1-ry)
	z.CubeTo(x1, y1-ry+ky, x1-rx+kx, y1, x1-rx, y1)
	z.LineTo(x0+rx, y1)
	z.CubeTo(x0+rx-kx, y1, x0, y1-ry+ky, x0, y1-ry)
	z.LineTo(x0, y0+ry)
	z.CubeTo(x0, y0+ry-ky, x0+rx-kx, y0, x0+rx, y0)
	z.ClosePath()
}

// clampRadius limits r to half of the side it rounds, keeping the sign of the side.
func clampRadius(r, half float32) float32 {
	if half < 0 {
		if r < half {
			return half
		}

		if r > 0 {
			return 0
		}

		return r
	}

	if r > half {
		return half
	}

	if r < 0 {
		return 0
	}

	return r
}

const shadeFactor = 0.7

// brighter and darker shade a color the way classic 2D toolkits bevel their 3D rectangles.
func brighter(c pixel.Color) pixel.Color {
	const floor = 3

	if c.R == 0 && c.G == 0 && c.B == 0 {
		return pixel.Color{R: floor, G: floor, B: floor, A: c.A}
	}

	up := func(v uint8) uint8 {
		if v > 0 && v < floor {
			v = floor
		}

		f := float64(v) / shadeFactor
		if f > 255 {
			return 255
		}

		return uint8(f)
	}

	return pixel.Color{R: up(c.R), G: up(c.G), B: up(c.B), A: c.A}
}

func darker(c pixel.Color) pixel.Color {
	down := func(v uint8) uint8 {
		return uint8(float64(v) * shadeFactor)
	}

	return pixel.Color{R: down(c.R), G: down(c.G), B: down(c.B), A: c.A}
}
