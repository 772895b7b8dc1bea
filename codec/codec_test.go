package codec

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/denismitr/voodoo/internal/testutil"
	"github.com/denismitr/voodoo/media"
	"github.com/denismitr/voodoo/pixel"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("png keeps alpha", func(t *testing.T) {
		buf, f, err := Decode(testutil.PNG(testutil.Gradient(6, 4, true)))
		require.NoError(t, err)

		assert.Equal(t, media.PNG, f)
		assert.Equal(t, 6, buf.Width())
		assert.Equal(t, 4, buf.Height())
		assert.Equal(t, pixel.RGBA, buf.Format())
	})

	t.Run("jpeg is rgb", func(t *testing.T) {
		buf, f, err := Decode(testutil.JPEG(testutil.Gradient(8, 8, false)))
		require.NoError(t, err)

		assert.Equal(t, media.JPEG, f)
		assert.Equal(t, pixel.RGB, buf.Format())
	})

	for _, in := range [][]byte{nil, []byte("some invalid image bytes")} {
		t.Run(fmt.Sprintf("invalid %q", in), func(t *testing.T) {
			buf, _, err := Decode(in)
			assert.Nil(t, buf)
			assert.True(t, errors.Is(err, errs.ErrDecode))
		})
	}
}

func TestEncode_RoundTripLossless(t *testing.T) {
	for _, withAlpha := range []bool{true, false} {
		t.Run(fmt.Sprintf("alpha=%v", withAlpha), func(t *testing.T) {
			src := pixel.FromImage(testutil.Gradient(9, 5, withAlpha))

			b, err := EncodeBytes(src, media.PNG, nil)
			require.NoError(t, err)

			decoded, f, err := Decode(b)
			require.NoError(t, err)

			assert.Equal(t, media.PNG, f)
			assert.True(t, src.Equal(decoded))
		})
	}
}

func TestEncode_FlattensAlphaForJpeg(t *testing.T) {
	src, err := pixel.Filled(16, 16, pixel.RGBA, pixel.Color{R: 0xff, A: 0})
	require.NoError(t, err)

	b, err := EncodeBytes(src, media.JPEG, nil)
	require.NoError(t, err)

	decoded, f, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, media.JPEG, f)
	assert.Equal(t, pixel.RGB, decoded.Format())

	c, err := decoded.At(8, 8)
	require.NoError(t, err)
	// the red samples survive, they are not premultiplied away
	assert.InDelta(t, 0xff, int(c.R), 4)
	assert.InDelta(t, 0, int(c.G), 4)
}

func TestEncode_Bmp(t *testing.T) {
	src := pixel.FromImage(testutil.Gradient(5, 5, true))

	b, err := EncodeBytes(src, media.BMP, nil)
	require.NoError(t, err)

	decoded, f, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, media.BMP, f)
	assert.True(t, src.Flatten().Equal(decoded))
}

func TestEncode_Unsupported(t *testing.T) {
	src := pixel.FromImage(testutil.Gradient(2, 2, false))

	for _, f := range []media.Format{media.WEBP, media.Format("psd")} {
		t.Run(string(f), func(t *testing.T) {
			err := Encode(&bytes.Buffer{}, src, f, nil)
			assert.True(t, errors.Is(err, errs.ErrEncode))
		})
	}
}

func TestEncode_QualityIsIgnoredForLossless(t *testing.T) {
	src := pixel.FromImage(testutil.Gradient(4, 4, false))
	q := 0.1

	withHint, err := EncodeBytes(src, media.PNG, &q)
	require.NoError(t, err)

	withoutHint, err := EncodeBytes(src, media.PNG, nil)
	require.NoError(t, err)

	assert.Equal(t, withoutHint, withHint)
}

func Test_jpegQuality(t *testing.T) {
	q := func(v float64) *float64 { return &v }

	tt := []struct {
		in   *float64
		want int
	}{
		{nil, 100},
		{q(0.8), 80},
		{q(0), 1},
		{q(1), 100},
		{q(0.756), 76},
	}

	for _, tc := range tt {
		t.Run(fmt.Sprintf("%d", tc.want), func(t *testing.T) {
			assert.Equal(t, tc.want, jpegQuality(tc.in))
		})
	}
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(testutil.JPEG(testutil.Gradient(12, 7, false)))
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Width)
	assert.Equal(t, 7, cfg.Height)
	assert.Equal(t, media.JPEG, cfg.Format)
	assert.Equal(t, 3, cfg.Components)
}
