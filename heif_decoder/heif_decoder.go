// Package heif_decoder decodes HEIF/HEIC images with libvips.
package heif_decoder

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/pkg/errors"

	"imcon/contracts"
	"imcon/formats"
	"imcon/raster_codec"
)

var (
	mu      sync.Mutex
	started bool
)

func startup() {
	mu.Lock()
	defer mu.Unlock()
	if started {
		return
	}
	vips.LoggingSettings(func(domain string, level vips.LogLevel, msg string) {
		fmt.Fprintf(os.Stderr, "[vips] %s: %s\n", domain, msg)
	}, vips.LogLevelWarning)
	vips.Startup(nil)
	started = true
}

// Shutdown stops libvips if it was started. Call once at process exit.
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	if started {
		vips.Shutdown()
		started = false
	}
}

// Decoder yields the primary image of a HEIF container as an interleaved RGB
// raster. libvips is started on first use.
type Decoder struct{}

func New() *Decoder {
	return &Decoder{}
}

// DecodeHEIF returns ErrMissingContainerHeader when data has no ftyp box, so
// callers can retry the bytes with another codec.
func (d *Decoder) DecodeHEIF(data []byte) (image.Image, error) {
	if !formats.HasHEIFContainer(data) {
		return nil, errors.Wrap(contracts.ErrMissingContainerHeader, "no ftyp box")
	}
	startup()

	ref, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return nil, errors.Wrapf(contracts.ErrDecode, "heif: %v", err)
	}
	defer ref.Close()

	if ref.HasAlpha() {
		if err := ref.Flatten(&vips.Color{R: 255, G: 255, B: 255}); err != nil {
			return nil, errors.Wrapf(contracts.ErrDecode, "heif flatten: %v", err)
		}
	}
	if err := ref.ToColorSpace(vips.InterpretationSRGB); err != nil {
		return nil, errors.Wrapf(contracts.ErrDecode, "heif colour space: %v", err)
	}
	if err := ref.Cast(vips.BandFormatUchar); err != nil {
		return nil, errors.Wrapf(contracts.ErrDecode, "heif cast: %v", err)
	}
	if ref.Bands() != 3 {
		return nil, errors.Wrapf(contracts.ErrDecode, "heif: expected 3 bands, got %d", ref.Bands())
	}

	raw, err := ref.ToBytes()
	if err != nil {
		return nil, errors.Wrapf(contracts.ErrDecode, "heif: %v", err)
	}
	rgb, ok := raster_codec.RGBFromRaw(ref.Width(), ref.Height(), raw)
	if !ok {
		return nil, errors.Wrapf(contracts.ErrDecode, "heif: short pixel buffer for %dx%d", ref.Width(), ref.Height())
	}
	return rgb, nil
}
