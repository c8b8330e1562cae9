// Package transform holds the geometric operations applied between decode and
// encode.
package transform

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"imcon/contracts"
)

// Resize is a pending geometry request. A zero field means no constraint, so
// the zero value is the identity transform.
type Resize struct {
	Width     int
	Height    int
	MaxWidth  int
	MaxHeight int
	Scale     float64
}

// IsIdentity reports whether no field is set.
func (r Resize) IsIdentity() bool {
	return r == Resize{}
}

// Validate rejects negative values.
func (r Resize) Validate() error {
	if r.Width < 0 || r.Height < 0 || r.MaxWidth < 0 || r.MaxHeight < 0 || r.Scale < 0 {
		return errors.Wrapf(contracts.ErrInvalidResize, "%+v", r)
	}
	return nil
}

// CalculateDimensions computes the output size for a frame of the given size.
//
// Stages run in order on the running pair: scale, max width clamp, max height
// clamp, then explicit width/height. The max clamps only ever shrink. When
// both width and height are set they win outright. A lone width keeps the
// aspect ratio of the running pair; a lone height scales the running width by
// the ratio to the original height. Results are truncated.
func (r Resize) CalculateDimensions(currentWidth, currentHeight int) (int, int) {
	width := float64(currentWidth)
	height := float64(currentHeight)

	if r.Scale > 0 {
		width *= r.Scale
		height *= r.Scale
	}

	if r.MaxWidth > 0 {
		maxWidth := float64(r.MaxWidth)
		if width > maxWidth {
			height *= maxWidth / width
			width = maxWidth
		}
	}

	if r.MaxHeight > 0 {
		maxHeight := float64(r.MaxHeight)
		if height > maxHeight {
			width *= maxHeight / height
			height = maxHeight
		}
	}

	switch {
	case r.Width > 0 && r.Height > 0:
		width = float64(r.Width)
		height = float64(r.Height)
	case r.Width > 0:
		target := float64(r.Width)
		height *= target / width
		width = target
	case r.Height > 0:
		target := float64(r.Height)
		width *= target / float64(currentHeight)
		height = target
	}

	return int(width), int(height)
}

// Hint adapts the resize to a backend geometry hint.
func (r Resize) Hint() contracts.GeometryHint {
	if r.IsIdentity() {
		return nil
	}
	return r.CalculateDimensions
}

// Fit resamples img to exactly width x height with a Lanczos3 filter. Sizes
// below one pixel become one. img is returned unchanged when it already has
// that size.
func Fit(img image.Image, width, height int) image.Image {
	width = max(width, 1)
	height = max(height, 1)
	b := img.Bounds()
	if width == b.Dx() && height == b.Dy() {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}
