package manipulator

import (
	"fmt"
	"math"
	"testing"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/denismitr/voodoo/internal/testutil"
	"github.com/denismitr/voodoo/pixel"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hexAt(t *testing.T, b *pixel.Buffer, x, y int) string {
	t.Helper()

	c, err := b.At(x, y)
	require.NoError(t, err)

	return c.Hex()
}

func quadrants() *pixel.Buffer {
	return testutil.Quadrants(10, "000000", "444444", "888888", "bbbbbb")
}

func TestCrop(t *testing.T) {
	src := quadrants()

	t.Run("full rectangle is identity", func(t *testing.T) {
		out, err := Crop(src, 0, 0, src.Width(), src.Height())
		require.NoError(t, err)
		assert.True(t, src.Equal(out))
	})

	t.Run("bottom right quadrant", func(t *testing.T) {
		out, err := Crop(src, 10, 10, 20, 20)
		require.NoError(t, err)
		assert.Equal(t, 10, out.Width())
		assert.Equal(t, 10, out.Height())
		assert.Equal(t, "bbbbbb", hexAt(t, out, 0, 0))
		assert.Equal(t, "bbbbbb", hexAt(t, out, 9, 9))
	})

	invalid := [][4]int{
		{-1, 0, 5, 5},
		{0, -1, 5, 5},
		{0, 0, 21, 5},
		{0, 0, 5, 21},
		{5, 0, 5, 5},
		{0, 5, 5, 5},
		{6, 0, 5, 5},
	}

	for _, r := range invalid {
		t.Run(fmt.Sprintf("rejects %v", r), func(t *testing.T) {
			out, err := Crop(src, r[0], r[1], r[2], r[3])
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, errs.ErrArgument))
		})
	}
}

func TestFlips(t *testing.T) {
	src := quadrants()

	h := FlipHorizontal(src)
	assert.Equal(t, "444444", hexAt(t, h, 0, 0))
	assert.Equal(t, "888888", hexAt(t, h, 19, 19))
	assert.True(t, src.Equal(FlipHorizontal(h)))

	v := FlipVertical(src)
	assert.Equal(t, "888888", hexAt(t, v, 0, 0))
	assert.Equal(t, "444444", hexAt(t, v, 19, 19))
	assert.True(t, src.Equal(FlipVertical(v)))
}

func TestRotate_QuarterTurnsInSequence(t *testing.T) {
	tt := []struct {
		degrees float64
		topLeft string
	}{
		{90, "888888"},
		{180, "444444"},
		{270, "bbbbbb"},
	}

	img := quadrants()
	for _, tc := range tt {
		var err error
		img, err = Rotate(img, tc.degrees)
		require.NoError(t, err)

		assert.Equal(t, tc.topLeft, hexAt(t, img, 0, 0), "after rotating by another %v", tc.degrees)
	}
}

func TestRotate_Identities(t *testing.T) {
	src := testutil.Quadrants(3, "112233", "445566", "778899", "aabbcc")

	t.Run("360", func(t *testing.T) {
		out, err := Rotate(src, 360)
		require.NoError(t, err)
		assert.True(t, src.Equal(out))
	})

	t.Run("four quarter turns", func(t *testing.T) {
		out := src
		for i := 0; i < 4; i++ {
			var err error
			out, err = Rotate(out, 90)
			require.NoError(t, err)
		}

		assert.True(t, src.Equal(out))
	})

	t.Run("negative quarter turn", func(t *testing.T) {
		a, err := Rotate(src, -90)
		require.NoError(t, err)
		b, err := Rotate(src, 270)
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	})
}

func TestRotate_QuarterTurnSwapsDimensions(t *testing.T) {
	src, err := pixel.New(7, 3, pixel.RGB)
	require.NoError(t, err)

	out, err := Rotate(src, 90)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Width())
	assert.Equal(t, 7, out.Height())
}

func TestRotate_ArbitraryAngle(t *testing.T) {
	fill := pixel.MustParseHex("336699")

	t.Run("rgb corners are black", func(t *testing.T) {
		src, err := pixel.Filled(20, 20, pixel.RGB, fill)
		require.NoError(t, err)

		out, err := Rotate(src, 45)
		require.NoError(t, err)
		assert.Equal(t, 28, out.Width())
		assert.Equal(t, 28, out.Height())
		assert.Equal(t, pixel.RGB, out.Format())

		corner, err := out.At(0, 0)
		require.NoError(t, err)
		assert.Equal(t, pixel.Black, corner)

		center, err := out.At(14, 14)
		require.NoError(t, err)
		assert.InDelta(t, 0x33, int(center.R), 1)
		assert.InDelta(t, 0x66, int(center.G), 1)
		assert.InDelta(t, 0x99, int(center.B), 1)
	})

	t.Run("rgba corners are transparent", func(t *testing.T) {
		src, err := pixel.Filled(20, 20, pixel.RGBA, fill)
		require.NoError(t, err)

		out, err := Rotate(src, 30)
		require.NoError(t, err)
		assert.Equal(t, pixel.RGBA, out.Format())

		corner, err := out.At(0, 0)
		require.NoError(t, err)
		assert.Equal(t, uint8(0), corner.A)
	})

	t.Run("rejects non finite angles", func(t *testing.T) {
		src, err := pixel.New(2, 2, pixel.RGB)
		require.NoError(t, err)

		_, err = Rotate(src, math.NaN())
		assert.True(t, errors.Is(err, errs.ErrArgument))
	})
}

func TestRotatedSize(t *testing.T) {
	tt := []struct {
		w, h    int
		degrees float64
		wantW   int
		wantH   int
	}{
		{10, 20, 90, 20, 10},
		{10, 20, 180, 10, 20},
		{100, 100, 45, 141, 141},
		{4, 2, 270, 2, 4},
		{20, 20, 45, 28, 28},
	}

	for _, tc := range tt {
		t.Run(fmt.Sprintf("%dx%d by %v", tc.w, tc.h, tc.degrees), func(t *testing.T) {
			w, h := RotatedSize(tc.w, tc.h, tc.degrees)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}

func TestResize(t *testing.T) {
	src, err := pixel.Filled(16, 8, pixel.RGB, pixel.MustParseHex("808080"))
	require.NoError(t, err)

	t.Run("target dimensions", func(t *testing.T) {
		out, err := Resize(src, 5, 9)
		require.NoError(t, err)
		assert.Equal(t, 5, out.Width())
		assert.Equal(t, 9, out.Height())

		c, err := out.At(2, 4)
		require.NoError(t, err)
		assert.InDelta(t, 0x80, int(c.R), 1)
		assert.Equal(t, uint8(0xff), c.A)
	})

	t.Run("same size is a copy", func(t *testing.T) {
		out, err := Resize(src, 16, 8)
		require.NoError(t, err)
		assert.True(t, src.Equal(out))
		assert.NotSame(t, src, out)
	})

	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 5}, {5, -3}} {
		t.Run(fmt.Sprintf("rejects %dx%d", dims[0], dims[1]), func(t *testing.T) {
			out, err := Resize(src, dims[0], dims[1])
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, errs.ErrArgument))
		})
	}
}

func TestScaleAndThumbnail(t *testing.T) {
	src, err := pixel.New(10, 7, pixel.RGB)
	require.NoError(t, err)

	scaled, err := Scale(src, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 5, scaled.Width())
	assert.Equal(t, 3, scaled.Height())

	_, err = Scale(src, 0)
	assert.True(t, errors.Is(err, errs.ErrArgument))

	wide, err := pixel.New(100, 50, pixel.RGB)
	require.NoError(t, err)

	thumb, err := Thumbnail(wide, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, thumb.Width())
	assert.Equal(t, 10, thumb.Height())

	_, err = Thumbnail(wide, 0)
	assert.True(t, errors.Is(err, errs.ErrArgument))
}

func TestCroppedThumbnail(t *testing.T) {
	red, green, blue := pixel.MustParseHex("ff0000"), pixel.MustParseHex("00ff00"), pixel.MustParseHex("0000ff")

	src, err := pixel.Filled(100, 50, pixel.RGB, green)
	require.NoError(t, err)
	require.NoError(t, Rect(src, 0, 0, 25, 50, red, true))
	require.NoError(t, Rect(src, 75, 0, 25, 50, blue, true))

	t.Run("square from the middle", func(t *testing.T) {
		out, err := CroppedThumbnail(src, 50)
		require.NoError(t, err)
		assert.Equal(t, 50, out.Width())
		assert.Equal(t, 50, out.Height())
		assert.Equal(t, "00ff00", hexAt(t, out, 0, 0))
		assert.Equal(t, "00ff00", hexAt(t, out, 49, 49))
	})

	t.Run("scaled down", func(t *testing.T) {
		out, err := CroppedThumbnail(src, 20)
		require.NoError(t, err)
		assert.Equal(t, 20, out.Width())
		assert.Equal(t, 20, out.Height())
	})

	t.Run("tall source", func(t *testing.T) {
		tall, err := pixel.New(30, 90, pixel.RGBA)
		require.NoError(t, err)

		out, err := CroppedThumbnail(tall, 10)
		require.NoError(t, err)
		assert.Equal(t, 10, out.Width())
		assert.Equal(t, 10, out.Height())
		assert.Equal(t, pixel.RGBA, out.Format())
	})
}

type recordingThumbnailer struct {
	calls []string
}

func (r *recordingThumbnailer) Crop(src *pixel.Buffer, left, top, right, bottom int) (*pixel.Buffer, error) {
	r.calls = append(r.calls, fmt.Sprintf("crop %d,%d-%d,%d", left, top, right, bottom))
	return Crop(src, left, top, right, bottom)
}

func (r *recordingThumbnailer) Resize(src *pixel.Buffer, width, height int) (*pixel.Buffer, error) {
	r.calls = append(r.calls, fmt.Sprintf("resize %dx%d", width, height))
	return Resize(src, width, height)
}

func TestSizingWith_UsesBackend(t *testing.T) {
	src, err := pixel.New(100, 50, pixel.RGB)
	require.NoError(t, err)

	t.Run("scale", func(t *testing.T) {
		rec := &recordingThumbnailer{}
		_, err := ScaleWith(rec, src, 0.333)
		require.NoError(t, err)
		assert.Equal(t, []string{"resize 33x16"}, rec.calls)
	})

	t.Run("thumbnail", func(t *testing.T) {
		rec := &recordingThumbnailer{}
		_, err := ThumbnailWith(rec, src, 40)
		require.NoError(t, err)
		assert.Equal(t, []string{"resize 40x20"}, rec.calls)
	})

	t.Run("cropped thumbnail", func(t *testing.T) {
		rec := &recordingThumbnailer{}
		out, err := CroppedThumbnailWith(rec, src, 20)
		require.NoError(t, err)
		assert.Equal(t, []string{"crop 25,0-75,50", "resize 20x20"}, rec.calls)
		assert.Equal(t, 20, out.Width())
	})

	t.Run("rejected before the backend runs", func(t *testing.T) {
		rec := &recordingThumbnailer{}
		_, err := ThumbnailWith(rec, src, 0)
		assert.True(t, errors.Is(err, errs.ErrArgument))
		assert.Empty(t, rec.calls)
	})
}

func TestCenteredSquare(t *testing.T) {
	tt := []struct {
		width, height            int
		left, top, right, bottom int
	}{
		{100, 50, 25, 0, 75, 50},
		{30, 90, 0, 30, 30, 60},
		{7, 7, 0, 0, 7, 7},
		{5, 2, 1, 0, 3, 2},
	}

	for _, tc := range tt {
		t.Run(fmt.Sprintf("%dx%d", tc.width, tc.height), func(t *testing.T) {
			l, tp, r, b := CenteredSquare(tc.width, tc.height)
			assert.Equal(t, []int{tc.left, tc.top, tc.right, tc.bottom}, []int{l, tp, r, b})
		})
	}
}
