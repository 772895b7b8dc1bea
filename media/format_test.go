package media

import (
	"fmt"
	"testing"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeExtension(t *testing.T) {
	tt := []struct {
		ext  string
		want Format
	}{
		{"png", PNG},
		{".PNG", PNG},
		{"jpeg", JPEG},
		{"JPG", JPEG},
		{"tif", TIFF},
		{"gif", GIF},
		{"bmp", BMP},
		{"webp", WEBP},
	}

	for _, tc := range tt {
		t.Run(tc.ext, func(t *testing.T) {
			f, err := NormalizeExtension(tc.ext)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, f)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := NormalizeExtension("psd")
		assert.True(t, errors.Is(err, ErrInvalidExtension))
		assert.True(t, errors.Is(err, errs.ErrArgument))
	})
}

func TestFromFilename(t *testing.T) {
	f, err := FromFilename("/tmp/out/thumb.JPG")
	assert.NoError(t, err)
	assert.Equal(t, JPEG, f)

	for _, name := range []string{"noext", "trailing.", ""} {
		t.Run(fmt.Sprintf("missing extension %q", name), func(t *testing.T) {
			_, err := FromFilename(name)
			assert.True(t, errors.Is(err, errs.ErrArgument))
		})
	}
}

func TestFormatCapabilities(t *testing.T) {
	assert.False(t, JPEG.SupportsAlpha())
	assert.False(t, BMP.SupportsAlpha())
	assert.True(t, PNG.SupportsAlpha())
	assert.True(t, JPEG.Lossy())
	assert.False(t, PNG.Lossy())
	assert.False(t, WEBP.Encodable())

	m, err := GuessMimeFromExtension("jpeg")
	assert.NoError(t, err)
	assert.Equal(t, "image/jpeg", m)
}
