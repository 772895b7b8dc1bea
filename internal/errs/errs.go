package errs

import "github.com/pkg/errors"

var (
	ErrArgument           = errors.New("invalid argument")
	ErrDecode             = errors.New("could not decode image")
	ErrNotFound           = errors.New("not found")
	ErrEncode             = errors.New("could not encode image")
	ErrUnsupportedFeature = errors.New("unsupported feature")
)
