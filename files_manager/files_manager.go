package files_manager

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"imcon/contracts"
	"imcon/formats"
)

// GetImagePaths walks dir and its subdirectories for files whose extension
// resolves to a known format. AppleDouble files ("._x") are skipped. Paths
// come back sorted.
func GetImagePaths(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "._") {
			return nil
		}
		if _, err := formats.Parse(filepath.Ext(entry.Name())); err != nil {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// CollectInputs expands the command line inputs. Directories are replaced by
// the image files of their whole tree when recursive is set and rejected otherwise. Colour
// literals and plain paths pass through; missing files are reported later by
// the decoder.
func CollectInputs(inputs []string, recursive bool) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, input := range inputs {
		if formats.IsHexColor(input) {
			out = append(out, input)
			continue
		}
		stat, err := os.Stat(input)
		if err != nil || !stat.IsDir() {
			out = append(out, input)
			continue
		}
		if !recursive {
			return nil, errors.Errorf("%s is a directory, use --recursive to convert its images", input)
		}
		paths, err := GetImagePaths(input)
		if err != nil {
			return nil, errors.Wrapf(err, "scanning %s", input)
		}
		if len(paths) == 0 {
			return nil, errors.Wrapf(contracts.ErrFileNotFound, "no images in %s", input)
		}
		out = append(out, paths...)
	}
	return out, nil
}
