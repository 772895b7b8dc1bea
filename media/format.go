// Package media describes the image formats the codec understands.
package media

import (
	"path/filepath"
	"strings"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/pkg/errors"
)

var ErrInvalidExtension = errors.Wrap(errs.ErrArgument, "invalid extension")

// Format is the informal lowercase short name of an image format.
type Format string

const (
	JPEG Format = "jpg"
	PNG  Format = "png"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WEBP Format = "webp"
)

type formatInfo struct {
	mime      string
	alpha     bool
	lossy     bool
	encodable bool
}

var formats = map[Format]formatInfo{
	JPEG: {mime: "image/jpeg", lossy: true, encodable: true},
	PNG:  {mime: "image/png", alpha: true, encodable: true},
	GIF:  {mime: "image/gif", alpha: true, encodable: true},
	BMP:  {mime: "image/bmp", encodable: true},
	TIFF: {mime: "image/tiff", alpha: true, encodable: true},
	// decode only
	WEBP: {mime: "image/webp", alpha: true, lossy: true},
}

var extensions = map[string]Format{
	"png":  PNG,
	"jpg":  JPEG,
	"jpeg": JPEG,
	"jpe":  JPEG,
	"gif":  GIF,
	"bmp":  BMP,
	"tif":  TIFF,
	"tiff": TIFF,
	"webp": WEBP,
}

// NormalizeExtension maps an extension or format name ("JPEG", ".png", "tif") to its Format.
func NormalizeExtension(ext string) (Format, error) {
	e := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if f, ok := extensions[e]; ok {
		return f, nil
	}

	return "", errors.Wrapf(ErrInvalidExtension, "extension unsupported: %s", ext)
}

// FromFilename derives the format from the extension of name.
func FromFilename(name string) (Format, error) {
	ext := filepath.Ext(name)
	if ext == "" || ext == "." {
		return "", errors.Wrapf(errs.ErrArgument, "no extension in file name %s", name)
	}

	return NormalizeExtension(ext)
}

func GuessMimeFromExtension(ext string) (string, error) {
	f, err := NormalizeExtension(ext)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidExtension, "mime type unsupported for %s", ext)
	}

	return f.Mime(), nil
}

func (f Format) String() string {
	return string(f)
}

func (f Format) Mime() string {
	return formats[f].mime
}

// SupportsAlpha reports whether the format can store an alpha channel.
func (f Format) SupportsAlpha() bool {
	return formats[f].alpha
}

// Lossy reports whether a quality hint means anything to the encoder.
func (f Format) Lossy() bool {
	return formats[f].lossy
}

func (f Format) Encodable() bool {
	return formats[f].encodable
}
