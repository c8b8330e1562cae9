package formats

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"imcon/contracts"
)

// IsHexColor reports whether token looks like a #RGB, #RGBA, #RRGGBB or
// #RRGGBBAA literal. Only the shape is checked, digits are validated when the
// colour is parsed.
func IsHexColor(token string) bool {
	if !strings.HasPrefix(token, "#") {
		return false
	}
	switch len(token) {
	case 4, 5, 7, 9:
		return true
	}
	return false
}

// ResolveInput picks the format of an input token. An explicit override wins,
// hex colour literals are synthetic BMP sources, anything else goes by
// extension.
func ResolveInput(token, override string) (Format, error) {
	if override != "" {
		return Parse(override)
	}
	if IsHexColor(token) {
		return Bmp, nil
	}
	ext := filepath.Ext(token)
	if ext == "" {
		return 0, errors.Wrapf(contracts.ErrUnknownFormat, "%s has no file extension", token)
	}
	f, err := Parse(ext)
	if err != nil {
		return 0, errors.Wrapf(err, "input %s", token)
	}
	return f, nil
}

// DefaultOutput is the output format used when neither an override nor the
// output path names one.
func DefaultOutput(input Format) Format {
	switch input {
	case Pdf:
		return Png
	case Heif:
		return Jpeg
	}
	return input
}

// ResolveOutput picks the output format: explicit override, then the
// extension of the output path, then the default for the input format. An
// extension that names no known format is an error.
func ResolveOutput(input Format, outputPath, override string) (Format, error) {
	if override != "" {
		return Parse(override)
	}
	if ext := filepath.Ext(outputPath); ext != "" {
		f, err := Parse(ext)
		if err != nil {
			return 0, errors.Wrapf(err, "output %s", outputPath)
		}
		return f, nil
	}
	return DefaultOutput(input), nil
}

var ftypBox = []byte("ftyp")

// HasHEIFContainer reports whether data starts with an ISO BMFF ftyp box,
// the header every HEIF/HEIC file carries.
func HasHEIFContainer(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	return bytes.Equal(data[4:8], ftypBox)
}
