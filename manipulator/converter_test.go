package manipulator

import (
	"testing"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/denismitr/voodoo/media"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipe(t *testing.T) {
	type expected struct {
		filename string
		format   media.Format
		height   Pixels
		width    Pixels
		rotation Degrees
	}

	tt := []struct {
		recipe    string
		extension string
		expected  expected
	}{
		{
			recipe:    "h200",
			extension: "jpg",
			expected:  expected{filename: "h200.jpg", format: media.JPEG, height: 200},
		},
		{
			recipe:    "h200",
			extension: "jpeg",
			expected:  expected{filename: "h200.jpg", format: media.JPEG, height: 200},
		},
		{
			recipe:    "h200_w400",
			extension: "png",
			expected:  expected{filename: "h200_w400.png", format: media.PNG, height: 200, width: 400},
		},
		{
			recipe:    "w200_h100_r90_g_q80",
			extension: "jpg",
			expected: expected{
				filename: "g_h100_q80_r90_w200.jpg",
				format:   media.JPEG,
				height:   100,
				width:    200,
				rotation: 90,
			},
		},
		{
			recipe:    "/fv_fh_n/",
			extension: "PNG",
			expected:  expected{filename: "fh_fv_n.png", format: media.PNG},
		},
		{
			recipe:    "ct50_t20_s50",
			extension: "gif",
			expected:  expected{filename: "ct50_s50_t20.gif", format: media.GIF},
		},
	}

	for _, tc := range tt {
		t.Run(tc.recipe, func(t *testing.T) {
			tr, err := ParseRecipe(tc.recipe, tc.extension)
			if !assert.NoError(t, err) {
				t.Fatalf("Error: %v", err.(*ValidationError).Errors())
			}

			assert.Equal(t, tc.expected.filename, tr.Filename())
			assert.Equal(t, tc.expected.format, tr.Format)
			assert.Equal(t, tc.expected.height, tr.Resize.Height)
			assert.Equal(t, tc.expected.width, tr.Resize.Width)
			assert.Equal(t, tc.expected.rotation, tr.Rotation)
		})
	}
}

func TestParseRecipe_Invalid(t *testing.T) {
	tt := []struct {
		recipe    string
		extension string
		field     string
	}{
		{recipe: "h200", extension: "foo", field: "extension"},
		{recipe: "h200", extension: "webp", field: "extension"},
		{recipe: "", extension: "png", field: "segments"},
		{recipe: "wxpo", extension: "png", field: "wxpo"},
		{recipe: "h0", extension: "png", field: "height"},
		{recipe: "w20000", extension: "png", field: "width"},
		{recipe: "q101", extension: "jpg", field: "quality"},
		{recipe: "r360", extension: "jpg", field: "rotation"},
		{recipe: "r0", extension: "jpg", field: "segments"},
	}

	for _, tc := range tt {
		t.Run(tc.recipe+"."+tc.extension, func(t *testing.T) {
			tr, err := ParseRecipe(tc.recipe, tc.extension)
			require.Error(t, err)
			assert.Nil(t, tr)
			assert.True(t, errors.Is(err, errs.ErrArgument))

			vErr, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Contains(t, vErr.Errors(), tc.field)
		})
	}
}

func TestParseRecipe_CollectsEveryBadSegment(t *testing.T) {
	_, err := ParseRecipe("h0_w0_zz_g", "png")
	require.Error(t, err)

	vErr := err.(*ValidationError)
	assert.Len(t, vErr.Errors(), 3)
	assert.Contains(t, vErr.Error(), "height")
	assert.Contains(t, vErr.Error(), "zz: unknown segment")
}

func TestTransformation_QualityRatio(t *testing.T) {
	tr := &Transformation{}
	assert.Nil(t, tr.QualityRatio())

	tr.Quality = 80
	require.NotNil(t, tr.QualityRatio())
	assert.InDelta(t, 0.8, *tr.QualityRatio(), 1e-9)
}

func TestSizing_Target(t *testing.T) {
	tt := []struct {
		resize       Sizing
		wantW, wantH int
	}{
		{Sizing{Width: 50}, 50, 25},
		{Sizing{Height: 10}, 20, 10},
		{Sizing{Width: 30, Height: 30}, 30, 30},
		{Sizing{}, 100, 50},
		{Sizing{Height: 1}, 2, 1},
	}

	for _, tc := range tt {
		w, h := tc.resize.Target(100, 50)
		assert.Equal(t, tc.wantW, w)
		assert.Equal(t, tc.wantH, h)
	}
}
