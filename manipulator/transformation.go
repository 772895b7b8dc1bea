package manipulator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/denismitr/voodoo/media"
)

type Percent uint16
type Degrees int64
type Pixels uint16

type Flip struct {
	Horizontal bool
	Vertical   bool
}

func (f Flip) None() bool {
	return !f.Vertical && !f.Horizontal
}

// Sizing holds the sizing steps of a recipe. At most one of them is applied,
// in the order CroppedThumbnail, Thumbnail, Scale, then Width/Height.
type Sizing struct {
	Height           Pixels
	Width            Pixels
	Scale            Percent
	Thumbnail        Pixels
	CroppedThumbnail Pixels
}

func (r Sizing) None() bool {
	return r.Width == 0 && r.Height == 0 && r.Scale == 0 && r.Thumbnail == 0 && r.CroppedThumbnail == 0
}

func (r Sizing) WidthOrHeightProvided() bool {
	return r.Width != 0 || r.Height != 0
}

// Target computes the final width and height of a Width/Height resize of a
// srcWidth x srcHeight image. A missing side keeps the aspect ratio.
func (r Sizing) Target(srcWidth, srcHeight int) (int, int) {
	w, h := int(r.Width), int(r.Height)
	switch {
	case w == 0 && h == 0:
		return srcWidth, srcHeight
	case w == 0:
		w = int(float64(srcWidth) * float64(h) / float64(srcHeight))
	case h == 0:
		h = int(float64(srcHeight) * float64(w) / float64(srcWidth))
	}

	if w < 1 {
		w = 1
	}

	if h < 1 {
		h = 1
	}

	return w, h
}

// Transformation is a parsed recipe such as "w200_h100_r90_fh_g_q80".
type Transformation struct {
	Resize    Sizing
	Rotation  Degrees
	Flip      Flip
	Greyscale bool
	Negative  bool
	Quality   Percent
	Format    media.Format
}

func (t *Transformation) Empty() bool {
	return t.Resize.None() && t.Flip.None() && t.Rotation == 0 && !t.Greyscale && !t.Negative && t.Quality == 0
}

func (t *Transformation) RequiresResize() bool {
	return !t.Resize.None()
}

// QualityRatio converts the quality percent into the [0, 1] hint the codec takes.
// It is nil when the recipe carries no quality.
func (t *Transformation) QualityRatio() *float64 {
	if t.Quality == 0 {
		return nil
	}

	q := float64(t.Quality) / 100
	return &q
}

// Filename renders the canonical name of the recipe's output: segments sorted,
// lower case, followed by the format extension.
func (t *Transformation) Filename() string {
	var segments []string
	if t.Resize.Height != 0 {
		segments = append(segments, fmt.Sprintf("%s%d", height, t.Resize.Height))
	}

	if t.Resize.Width != 0 {
		segments = append(segments, fmt.Sprintf("%s%d", width, t.Resize.Width))
	}

	if t.Resize.Scale != 0 {
		segments = append(segments, fmt.Sprintf("%s%d", scale, t.Resize.Scale))
	}

	if t.Resize.Thumbnail != 0 {
		segments = append(segments, fmt.Sprintf("%s%d", thumbnail, t.Resize.Thumbnail))
	}

	if t.Resize.CroppedThumbnail != 0 {
		segments = append(segments, fmt.Sprintf("%s%d", croppedThumbnail, t.Resize.CroppedThumbnail))
	}

	if t.Rotation != 0 {
		segments = append(segments, fmt.Sprintf("%s%d", rotation, t.Rotation))
	}

	if t.Flip.Horizontal {
		segments = append(segments, string(flipHorizontal))
	}

	if t.Flip.Vertical {
		segments = append(segments, string(flipVertical))
	}

	if t.Greyscale {
		segments = append(segments, string(greyscale))
	}

	if t.Negative {
		segments = append(segments, string(negative))
	}

	if t.Quality != 0 {
		segments = append(segments, fmt.Sprintf("%s%d", quality, t.Quality))
	}

	sort.Strings(segments)

	return strings.ToLower(strings.Join(segments, "_") + "." + string(t.Format))
}
