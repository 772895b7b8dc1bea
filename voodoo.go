// Package voodoo loads images, runs them through a chain of transforms and
// writes them back out.
//
//	err := voodoo.WithImage(ctx, "photo.jpg", func(img *voodoo.Image) error {
//		thumb, err := img.CroppedThumbnail(100)
//		if err != nil {
//			return err
//		}
//		return thumb.Save(ctx, "thumb.png")
//	})
//
// Every transform returns a new *Image; the receiver is never changed.
package voodoo

import (
	"bytes"
	"context"
	"sync"

	"github.com/denismitr/voodoo/codec"
	"github.com/denismitr/voodoo/manipulator"
	"github.com/denismitr/voodoo/media"
	"github.com/denismitr/voodoo/pixel"
	"github.com/denismitr/voodoo/storage"
	"github.com/denismitr/voodoo/storage/fsstorage"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config wires an engine. Zero fields fall back to the raster backend, the
// local filesystem and the logrus standard logger.
type Config struct {
	Backend manipulator.Backend
	Storage storage.Storage
	Logger  *logrus.Logger
}

type Voodoo struct {
	backend manipulator.Backend
	storage storage.Storage
	logger  *logrus.Logger
}

func New(cfg *Config) *Voodoo {
	v := &Voodoo{
		backend: manipulator.Raster{},
		storage: fsstorage.New(),
		logger:  logrus.StandardLogger(),
	}

	if cfg == nil {
		return v
	}

	if cfg.Backend != nil {
		v.backend = cfg.Backend
	}

	if cfg.Storage != nil {
		v.storage = cfg.Storage
	}

	if cfg.Logger != nil {
		v.logger = cfg.Logger
	}

	return v
}

func (v *Voodoo) Backend() manipulator.Backend {
	return v.backend
}

// Open reads the file at path from storage and decodes it. A missing file
// fails with ErrNotFound before any decoding is attempted.
func (v *Voodoo) Open(ctx context.Context, path string) (*Image, error) {
	namespace, filename := storage.SplitPath(path)
	if filename == "" {
		return nil, errors.Wrapf(ErrArgument, "no file name in path %q", path)
	}

	buf := &bytes.Buffer{}
	if err := v.storage.Download(ctx, buf, namespace, filename); err != nil {
		if !errors.Is(err, ErrNotFound) {
			v.logger.WithField("path", path).Errorln(err)
		}

		return nil, err
	}

	img, err := v.FromBytes(buf.Bytes())
	if err != nil {
		v.logger.WithField("path", path).Errorln(err)
		return nil, errors.Wrapf(err, "could not load %s", path)
	}

	return img, nil
}

// FromBytes decodes an in-memory image.
func (v *Voodoo) FromBytes(b []byte) (*Image, error) {
	buf, format, err := codec.Decode(b)
	if err != nil {
		return nil, err
	}

	img := &Image{
		engine: v,
		buf:    buf,
		format: format,
		meta:   &lazyMetadata{source: b},
	}

	v.trace("decode", img)

	return img, nil
}

// NewImage creates a blank image whose format comes from fileName's extension:
// RGB for jpg, RGBA for everything else.
func (v *Voodoo) NewImage(width, height int, fileName string) (*Image, error) {
	format, err := media.FromFilename(fileName)
	if err != nil {
		return nil, err
	}

	layout := pixel.RGBA
	if format == media.JPEG {
		layout = pixel.RGB
	}

	buf, err := pixel.New(width, height, layout)
	if err != nil {
		return nil, err
	}

	return &Image{engine: v, buf: buf, format: format, meta: &lazyMetadata{}}, nil
}

// Canvas creates an RGBA image of width x height filled with the rrggbb color hex.
func (v *Voodoo) Canvas(width, height int, hex string) (*Image, error) {
	c, err := pixel.ParseHex(hex)
	if err != nil {
		return nil, err
	}

	buf, err := pixel.Filled(width, height, pixel.RGBA, c)
	if err != nil {
		return nil, err
	}

	return &Image{engine: v, buf: buf, format: media.PNG, meta: &lazyMetadata{}}, nil
}

// WithImage opens path and hands the image to fn.
func (v *Voodoo) WithImage(ctx context.Context, path string, fn func(img *Image) error) error {
	img, err := v.Open(ctx, path)
	if err != nil {
		return err
	}

	return fn(img)
}

// WithBytes decodes b and hands the image to fn.
func (v *Voodoo) WithBytes(b []byte, fn func(img *Image) error) error {
	img, err := v.FromBytes(b)
	if err != nil {
		return err
	}

	return fn(img)
}

func (v *Voodoo) trace(op string, img *Image) {
	v.logger.WithFields(logrus.Fields{
		"op":      op,
		"backend": v.backend.Name(),
		"width":   img.buf.Width(),
		"height":  img.buf.Height(),
		"format":  img.format,
	}).Debug("image ready")
}

var (
	defaultOnce sync.Once
	defaultV    *Voodoo
)

// Default is the engine behind the package level helpers.
func Default() *Voodoo {
	defaultOnce.Do(func() {
		defaultV = New(nil)
	})

	return defaultV
}

func Open(ctx context.Context, path string) (*Image, error) {
	return Default().Open(ctx, path)
}

func FromBytes(b []byte) (*Image, error) {
	return Default().FromBytes(b)
}

func WithImage(ctx context.Context, path string, fn func(img *Image) error) error {
	return Default().WithImage(ctx, path, fn)
}

func WithBytes(b []byte, fn func(img *Image) error) error {
	return Default().WithBytes(b, fn)
}
