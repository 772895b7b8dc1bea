package manipulator

import (
	"image/color"
	"math"

	"github.com/denismitr/voodoo/pixel"
	"github.com/disintegration/imaging"
)

// AlphaSentinel replaces every pixel matched by AlphaKey.
var AlphaSentinel = pixel.Color{R: 0x8f, G: 0x1c, B: 0x1c, A: 0xff}

// Y coefficients of sRGB adapted to a D50 white point.
const (
	lumaR = 0.2225
	lumaG = 0.7169
	lumaB = 0.0606
)

var linearLUT [256]float64

func init() {
	for i := range linearLUT {
		s := float64(i) / 255
		if s <= 0.04045 {
			linearLUT[i] = s / 12.92
		} else {
			linearLUT[i] = math.Pow((s+0.055)/1.055, 2.4)
		}
	}
}

func encodeSRGB(v float64) uint8 {
	var s float64
	if v <= 0.0031308 {
		s = v * 12.92
	} else {
		s = 1.055*math.Pow(v, 1/2.4) - 0.055
	}

	return clamp(s * 255)
}

func clamp(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}

	v = math.Round(v)
	if v < 0 {
		return 0
	}

	if v > 255 {
		return 255
	}

	return uint8(v)
}

// AdjustBrightness maps every color sample p to clamp(round(p*scale+offset)). Alpha is left alone.
func AdjustBrightness(src *pixel.Buffer, scale, offset float64) *pixel.Buffer {
	out := imaging.AdjustFunc(src.NRGBA(), func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clamp(float64(c.R)*scale + offset),
			G: clamp(float64(c.G)*scale + offset),
			B: clamp(float64(c.B)*scale + offset),
			A: c.A,
		}
	})

	return pixel.Wrap(out, src.Format())
}

// Negative inverts the color samples.
func Negative(src *pixel.Buffer) *pixel.Buffer {
	return pixel.Wrap(imaging.Invert(src.NRGBA()), src.Format())
}

// Greyscale replaces each pixel by its luminance, computed in linear light.
func Greyscale(src *pixel.Buffer) *pixel.Buffer {
	out := imaging.AdjustFunc(src.NRGBA(), func(c color.NRGBA) color.NRGBA {
		y := lumaR*linearLUT[c.R] + lumaG*linearLUT[c.G] + lumaB*linearLUT[c.B]
		g := encodeSRGB(y)
		return color.NRGBA{R: g, G: g, B: g, A: c.A}
	})

	return pixel.Wrap(out, src.Format())
}

// AlphaKey returns an RGBA copy where every pixel whose color samples equal key
// is replaced by AlphaSentinel. The alpha of the source pixel is not compared.
func AlphaKey(src *pixel.Buffer, key pixel.Color) *pixel.Buffer {
	sentinel := AlphaSentinel.NRGBA()
	out := imaging.AdjustFunc(src.NRGBA(), func(c color.NRGBA) color.NRGBA {
		if key.SameRGB(pixel.FromNRGBA(c)) {
			return sentinel
		}

		return c
	})

	return pixel.Wrap(out, pixel.RGBA)
}
