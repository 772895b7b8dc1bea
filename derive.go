package voodoo

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/denismitr/voodoo/codec"
	"github.com/denismitr/voodoo/manipulator"
	"github.com/denismitr/voodoo/storage"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Derived describes a rendition produced by Derive.
type Derived struct {
	Item   *storage.Item
	Width  int
	Height int
	// Cached is set when the rendition already existed and nothing was rendered.
	Cached bool
}

// Derive renders the original at src through recipe and stores the result
// under namespace, in a directory named after the original's file name stem,
// as the recipe's canonical file name: "photos/cat.png" derived with
// "w200_h100_r90_g_q80" to jpg ends up at "<namespace>/cat/g_h100_q80_r90_w200.jpg".
// An existing rendition is reused, so originals sharing a stem need
// separate namespaces.
func (v *Voodoo) Derive(ctx context.Context, src, recipe, extension, namespace string) (*Derived, error) {
	// Step 1: parse the recipe
	t, err := manipulator.ParseRecipe(recipe, extension)
	if err != nil {
		return nil, err
	}

	namespace, err = renditionNamespace(namespace, src)
	if err != nil {
		return nil, err
	}

	filename := t.Filename()

	// Step 2: look for an existing rendition
	if d, ok := v.findRendition(ctx, namespace, filename); ok {
		return d, nil
	}

	// Step 3: load and transform the original
	original, err := v.Open(ctx, src)
	if err != nil {
		return nil, err
	}

	out, err := original.Apply(t)
	if err != nil {
		return nil, err
	}

	// Step 4: stream the encoded rendition into storage
	errCh := make(chan error, 1)
	pr := v.encodeStream(out, errCh)

	item, err := v.storage.Put(ctx, namespace, filename, pr)
	// unblocks the encoder when storage gave up early
	pr.Close()
	encErr := <-errCh

	if err != nil {
		v.logger.WithField("file", filename).Errorln(err)
		return nil, err
	}

	if encErr != nil {
		return nil, encErr
	}

	v.logger.WithFields(logrus.Fields{
		"op":     "derive",
		"source": src,
		"path":   item.Path,
		"width":  out.Width(),
		"height": out.Height(),
	}).Debug("rendition stored")

	return &Derived{Item: item, Width: out.Width(), Height: out.Height()}, nil
}

func renditionNamespace(namespace, src string) (string, error) {
	_, name := storage.SplitPath(src)
	stem := strings.TrimSuffix(name, path.Ext(name))
	if stem == "" {
		return "", errors.Wrapf(ErrArgument, "no file name in source path %s", src)
	}

	return path.Join(namespace, stem), nil
}

func (v *Voodoo) encodeStream(img *Image, errCh chan<- error) *io.PipeReader {
	pr, pw := io.Pipe()

	go func() {
		err := codec.Encode(pw, img.buf, img.format, img.qualityFor(img.format))
		pw.CloseWithError(err)
		errCh <- err
	}()

	return pr
}

func (v *Voodoo) findRendition(ctx context.Context, namespace, filename string) (*Derived, bool) {
	buf := &bytes.Buffer{}
	if err := v.storage.Download(ctx, buf, namespace, filename); err != nil {
		if !errors.Is(err, ErrNotFound) {
			v.logger.WithField("file", filename).Errorln(err)
		}

		return nil, false
	}

	cfg, err := codec.DecodeConfig(buf.Bytes())
	if err != nil {
		v.logger.WithField("file", filename).Errorln(err)
		return nil, false
	}

	return &Derived{
		Item:   &storage.Item{Path: path.Join(namespace, filename)},
		Width:  cfg.Width,
		Height: cfg.Height,
		Cached: true,
	}, true
}
