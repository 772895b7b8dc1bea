package manipulator

import "github.com/denismitr/voodoo/pixel"

// Exif Orientation tag values
// http://sylvana.net/jpegcrop/exif_orientation.html
const (
	TopLeftSide     = 1
	TopRightSide    = 2
	BottomRightSide = 3
	BottomLeftSide  = 4
	LeftSideTop     = 5
	RightSideTop    = 6
	RightSideBottom = 7
	LeftSideBottom  = 8
)

// Orienter is what a backend needs to undo an EXIF orientation.
type Orienter interface {
	Flipper
	Rotator
}

// CorrectOrientation returns src turned upright according to an EXIF orientation
// value. Unknown values and TopLeftSide leave the image as it is.
func CorrectOrientation(src *pixel.Buffer, orientation int) (*pixel.Buffer, error) {
	return OrientWith(Raster{}, src, orientation)
}

// OrientWith is CorrectOrientation carried out with the flips and rotations of b.
func OrientWith(b Orienter, src *pixel.Buffer, orientation int) (*pixel.Buffer, error) {
	switch orientation {
	case TopRightSide:
		return b.FlipHorizontal(src)
	case BottomRightSide:
		return b.Rotate(src, 180)
	case BottomLeftSide:
		return b.FlipVertical(src)
	case LeftSideTop:
		return flipThenRotate(b, src, 270)
	case RightSideTop:
		return b.Rotate(src, 90)
	case RightSideBottom:
		return flipThenRotate(b, src, 90)
	case LeftSideBottom:
		return b.Rotate(src, 270)
	default:
		return src, nil
	}
}

func flipThenRotate(b Orienter, src *pixel.Buffer, degrees float64) (*pixel.Buffer, error) {
	flipped, err := b.FlipHorizontal(src)
	if err != nil {
		return nil, err
	}

	return b.Rotate(flipped, degrees)
}
