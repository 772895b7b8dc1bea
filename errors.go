package voodoo

import (
	"github.com/denismitr/voodoo/internal/errs"
	"github.com/denismitr/voodoo/storage"
)

// Errors returned by this package and its subpackages wrap one of these;
// check them with errors.Is.
var (
	ErrArgument           = errs.ErrArgument
	ErrDecode             = errs.ErrDecode
	ErrNotFound           = errs.ErrNotFound
	ErrEncode             = errs.ErrEncode
	ErrUnsupportedFeature = errs.ErrUnsupportedFeature
	ErrStorageFailed      = storage.ErrStorageFailed
)
