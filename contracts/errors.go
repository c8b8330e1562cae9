package contracts

import "errors"

var (
	ErrUnknownFormat          = errors.New("unknown format")
	ErrFileNotFound           = errors.New("file not found")
	ErrDocumentLoad           = errors.New("failed to load document")
	ErrPageOutOfBounds        = errors.New("page index out of bounds")
	ErrDecode                 = errors.New("failed to decode image")
	ErrMissingContainerHeader = errors.New("missing container header")
	ErrInvalidHexColor        = errors.New("invalid hex color code")
	ErrWouldOverwriteInput    = errors.New("refusing to overwrite input file")
	ErrEncode                 = errors.New("failed to encode image")
	ErrWrite                  = errors.New("failed to write file")
	ErrNoFileStem             = errors.New("input path has no file stem")
	ErrUnsupportedOutput      = errors.New("format cannot be used for output")
	ErrInvalidResize          = errors.New("invalid resize")
	ErrNotImplemented         = errors.New("not implemented")
)
