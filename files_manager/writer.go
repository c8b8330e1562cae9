package files_manager

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"imcon/contracts"
)

// CheckOverwrite fails with ErrWouldOverwriteInput when outputPath and
// inputPath name the same file and force is not set. Both paths are resolved
// through the file system, so symlinks and hard links are caught. An output
// that does not exist yet can never collide.
func CheckOverwrite(outputPath, inputPath string, force bool) error {
	if force || inputPath == "" {
		return nil
	}
	outStat, err := os.Stat(outputPath)
	if err != nil {
		return nil
	}
	inStat, err := os.Stat(inputPath)
	if err != nil {
		return nil
	}
	if os.SameFile(outStat, inStat) {
		return errors.Wrapf(contracts.ErrWouldOverwriteInput, "%s, use --force to allow it", outputPath)
	}
	return nil
}

// WriteFile writes the output through a temporary file in the destination
// directory and renames it into place, so a failed encode never leaves a
// truncated file behind.
func WriteFile(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(base, filepath.Ext(base))+"-*.tmp")
	if err != nil {
		return errors.Wrapf(contracts.ErrWrite, "%s: %v", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(contracts.ErrWrite, "%s: %v", path, err)
	}

	info, err := os.Stat(tmpPath)
	if err != nil {
		return errors.Wrapf(contracts.ErrWrite, "failed to get file info: %v", err)
	}
	if info.Size() == 0 {
		return errors.Wrapf(contracts.ErrWrite, "file is empty: %s", tmpPath)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return errors.Wrapf(contracts.ErrWrite, "%s: %v", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(contracts.ErrWrite, "failed to rename file: %v", err)
	}
	return nil
}
