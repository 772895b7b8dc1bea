package manipulator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/denismitr/voodoo/media"
	"github.com/pkg/errors"
)

type prefix string

const (
	height           prefix = "h"
	width            prefix = "w"
	scale            prefix = "s"
	thumbnail        prefix = "t"
	croppedThumbnail prefix = "ct"
	rotation         prefix = "r"
	quality          prefix = "q"
	flipHorizontal   prefix = "fh"
	flipVertical     prefix = "fv"
	greyscale        prefix = "g"
	negative         prefix = "n"
)

const (
	minHeight   = 1
	maxHeight   = 10000
	minWidth    = 1
	maxWidth    = 10000
	minPercent  = 1
	maxPercent  = 100
	minRotation = 0
	maxRotation = 359
)

type integerCheck struct {
	name   string
	rx     *regexp.Regexp
	min    int
	max    int
	setter func(v int, t *Transformation)
}

type flagCheck struct {
	segment prefix
	setter  func(t *Transformation)
}

type recipeConverter struct {
	intChecks  []integerCheck
	flagChecks []flagCheck
}

var defaultConverter = newRecipeConverter()

// ParseRecipe turns an underscore separated recipe ("w200_h100_r90_fh_g_q80")
// and an output extension into a Transformation. Every bad segment is reported
// in a single *ValidationError.
func ParseRecipe(recipe, extension string) (*Transformation, error) {
	t := new(Transformation)
	if err := defaultConverter.convertTo(t, recipe, extension); err != nil {
		return nil, err
	}

	return t, nil
}

func (rc *recipeConverter) convertTo(t *Transformation, recipe, extension string) error {
	vErr := NewValidationError()

	f, err := media.NormalizeExtension(extension)
	if err != nil || !f.Encodable() {
		vErr.Add("extension", fmt.Sprintf("unsupported extension %s", extension))
		return vErr
	}

	t.Format = f

	recipe = strings.Trim(recipe, "/ ")
	if recipe == "" {
		vErr.Add("segments", "no segments provided")
		return vErr
	}

	for _, s := range strings.Split(recipe, "_") {
		if !rc.apply(t, s, vErr) {
			vErr.Add(s, "unknown segment")
		}
	}

	if !vErr.Empty() {
		return vErr
	}

	if t.Empty() {
		vErr.Add("segments", "no valid segments provided")
		return vErr
	}

	return nil
}

// apply reports whether any check recognized the segment.
func (rc *recipeConverter) apply(t *Transformation, s string, vErr *ValidationError) bool {
	for _, check := range rc.flagChecks {
		if s == string(check.segment) {
			check.setter(t)
			return true
		}
	}

	for _, check := range rc.intChecks {
		v, matched, err := matchInteger(check.rx, s, check.min, check.max)
		if !matched {
			continue
		}

		if err != nil {
			vErr.Add(check.name, err.Error())
		} else {
			check.setter(v, t)
		}

		return true
	}

	return false
}

func newRecipeConverter() *recipeConverter {
	checks := []integerCheck{
		{
			name:   "height",
			rx:     regexp.MustCompile(`^h(\d{1,5})$`),
			min:    minHeight,
			max:    maxHeight,
			setter: func(v int, t *Transformation) { t.Resize.Height = Pixels(v) },
		},
		{
			name:   "width",
			rx:     regexp.MustCompile(`^w(\d{1,5})$`),
			min:    minWidth,
			max:    maxWidth,
			setter: func(v int, t *Transformation) { t.Resize.Width = Pixels(v) },
		},
		{
			name:   "scale",
			rx:     regexp.MustCompile(`^s(\d{1,3})$`),
			min:    minPercent,
			max:    maxPercent,
			setter: func(v int, t *Transformation) { t.Resize.Scale = Percent(v) },
		},
		{
			name:   "thumbnail",
			rx:     regexp.MustCompile(`^t(\d{1,5})$`),
			min:    minWidth,
			max:    maxWidth,
			setter: func(v int, t *Transformation) { t.Resize.Thumbnail = Pixels(v) },
		},
		{
			name:   "croppedThumbnail",
			rx:     regexp.MustCompile(`^ct(\d{1,5})$`),
			min:    minWidth,
			max:    maxWidth,
			setter: func(v int, t *Transformation) { t.Resize.CroppedThumbnail = Pixels(v) },
		},
		{
			name:   "rotation",
			rx:     regexp.MustCompile(`^r(\d{1,3})$`),
			min:    minRotation,
			max:    maxRotation,
			setter: func(v int, t *Transformation) { t.Rotation = Degrees(v) },
		},
		{
			name:   "quality",
			rx:     regexp.MustCompile(`^q(\d{1,3})$`),
			min:    minPercent,
			max:    maxPercent,
			setter: func(v int, t *Transformation) { t.Quality = Percent(v) },
		},
	}

	flags := []flagCheck{
		{segment: flipHorizontal, setter: func(t *Transformation) { t.Flip.Horizontal = true }},
		{segment: flipVertical, setter: func(t *Transformation) { t.Flip.Vertical = true }},
		{segment: greyscale, setter: func(t *Transformation) { t.Greyscale = true }},
		{segment: negative, setter: func(t *Transformation) { t.Negative = true }},
	}

	return &recipeConverter{intChecks: checks, flagChecks: flags}
}

func matchInteger(rx *regexp.Regexp, input string, min, max int) (int, bool, error) {
	match := rx.FindStringSubmatch(input)
	if len(match) < 2 {
		return 0, false, nil
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, true, errors.Wrapf(err, "invalid value %s", input)
	}

	if value < min || value > max {
		return 0, true, errors.Errorf("int value of %s must be between %d and %d", input, min, max)
	}

	return value, true, nil
}
