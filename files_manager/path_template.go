package files_manager

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"imcon/contracts"
	"imcon/formats"
)

// FileStem returns the file name of path without its extension. A bare
// extension such as ".png" or a root has no stem.
func FileStem(path string) (string, error) {
	if path == "" {
		return "", errors.Wrap(contracts.ErrNoFileStem, "empty path")
	}
	base := filepath.Base(path)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", errors.Wrapf(contracts.ErrNoFileStem, "%s", path)
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "", errors.Wrapf(contracts.ErrNoFileStem, "%s", path)
	}
	return stem, nil
}

// ExpandTemplate fills in an output path template.
//
//	{}         input file name without extension
//	{i}        page number, zero padded to the digit count of totalPages
//	{dir}      directory of the input path
//	{filename} input file name with extension
//
// Other braces are kept as written. page is 1-based.
func ExpandTemplate(template, inputPath string, page, totalPages int) (string, error) {
	stem, err := FileStem(inputPath)
	if err != nil {
		return "", err
	}
	places := len(strconv.Itoa(totalPages))
	r := strings.NewReplacer(
		"{}", stem,
		"{i}", fmt.Sprintf("%0*d", places, page),
		"{dir}", filepath.Dir(inputPath),
		"{filename}", filepath.Base(inputPath),
	)
	return r.Replace(template), nil
}

// DefaultTemplate is the output template used when --output is not given.
// Documents get one file per page.
func DefaultTemplate(input, output formats.Format) string {
	if input.IsDocument() {
		return "{}_{i}." + output.String()
	}
	return "{}." + output.String()
}
