package formats

import (
	"strings"

	"github.com/pkg/errors"

	"imcon/contracts"
)

// Format is the closed set of formats the pipeline understands.
type Format int

const (
	Pdf Format = iota
	Heif
	Png
	Jpeg
	Bmp
)

// All lists every format in declaration order.
var All = []Format{Pdf, Heif, Png, Jpeg, Bmp}

// String returns the canonical lowercase extension. Heif maps to "heic".
func (f Format) String() string {
	switch f {
	case Pdf:
		return "pdf"
	case Heif:
		return "heic"
	case Png:
		return "png"
	case Jpeg:
		return "jpg"
	case Bmp:
		return "bmp"
	}
	return "unknown"
}

// Codec returns the identifier the native backends use for the format.
func (f Format) Codec() string {
	switch f {
	case Pdf:
		return "PDF"
	case Heif:
		return "HEIC"
	case Png:
		return "PNG"
	case Jpeg:
		return "JPEG"
	case Bmp:
		return "BMP"
	}
	return ""
}

// IsDocument reports whether a source of this format may hold several frames.
func (f Format) IsDocument() bool {
	return f == Pdf
}

// IsRaster reports whether the generic raster codec handles the format.
func (f Format) IsRaster() bool {
	return f == Png || f == Jpeg || f == Bmp
}

// Parse matches s case-insensitively against the known extensions. A leading
// dot is ignored.
func Parse(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "pdf":
		return Pdf, nil
	case "heic", "heif":
		return Heif, nil
	case "png":
		return Png, nil
	case "jpg", "jpeg":
		return Jpeg, nil
	case "bmp":
		return Bmp, nil
	}
	return 0, errors.Wrapf(contracts.ErrUnknownFormat, "%q", s)
}

// FromCodec is the inverse of Codec.
func FromCodec(codec string) (Format, error) {
	for _, f := range All {
		if strings.EqualFold(f.Codec(), codec) {
			return f, nil
		}
	}
	if strings.EqualFold(codec, "HEIF") {
		return Heif, nil
	}
	return 0, errors.Wrapf(contracts.ErrUnknownFormat, "codec %q", codec)
}
