// Package testutil builds images and metadata streams for tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/denismitr/voodoo/pixel"
)

// Quadrants builds a 2*half square RGB buffer: top-left, top-right, bottom-left, bottom-right.
//
//	tl tr
//	bl br
func Quadrants(half int, tl, tr, bl, br string) *pixel.Buffer {
	b, err := pixel.New(half*2, half*2, pixel.RGB)
	if err != nil {
		panic(err)
	}

	fill := func(x0, y0 int, hex string) {
		c := pixel.MustParseHex(hex)
		for y := y0; y < y0+half; y++ {
			for x := x0; x < x0+half; x++ {
				if err := b.Set(x, y, c); err != nil {
					panic(err)
				}
			}
		}
	}

	fill(0, 0, tl)
	fill(half, 0, tr)
	fill(0, half, bl)
	fill(half, half, br)

	return b
}

// Gradient builds a w x h image with distinct, position dependent pixels.
func Gradient(w, h int, withAlpha bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(0xff)
			if withAlpha {
				a = uint8((x*7 + y*3) % 256)
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 11), G: uint8(y * 13), B: uint8((x + y) * 5), A: a})
		}
	}

	return img
}

func PNG(img image.Image) []byte {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		panic(err)
	}

	return buf.Bytes()
}

func JPEG(img image.Image) []byte {
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 95}); err != nil {
		panic(err)
	}

	return buf.Bytes()
}

// JPEGWithExif encodes img and inserts an APP1 Exif segment holding tiff right after SOI.
func JPEGWithExif(img image.Image, tiff []byte) []byte {
	encoded := JPEG(img)

	payload := append([]byte("Exif\x00\x00"), tiff...)
	segLen := len(payload) + 2

	out := make([]byte, 0, len(encoded)+segLen+2)
	out = append(out, encoded[:2]...)
	out = append(out, 0xff, 0xe1, byte(segLen>>8), byte(segLen))
	out = append(out, payload...)
	out = append(out, encoded[2:]...)

	return out
}
