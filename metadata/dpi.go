package metadata

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	"github.com/pkg/errors"
)

// DPI is a horizontal and vertical resolution in dots per inch.
type DPI struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

const inchesPerMeter = 0.0254

// ExifDPI reads XResolution/YResolution from the EXIF block embedded in data.
// A ResolutionUnit of centimetres is converted to inches.
func ExifDPI(data []byte) (DPI, error) {
	index, err := collectExif(data)
	if err != nil {
		return DPI{}, err
	}

	dpi := DPI{}
	if tag, err := index.RootIfd.FindTagWithName("XResolution"); err == nil {
		if val, err := tag[0].Value(); err == nil {
			if rats, ok := val.([]exifcommon.Rational); ok && len(rats) > 0 && rats[0].Denominator != 0 {
				dpi.X = float64(rats[0].Numerator) / float64(rats[0].Denominator)
			}
		}
	}
	if tag, err := index.RootIfd.FindTagWithName("YResolution"); err == nil {
		if val, err := tag[0].Value(); err == nil {
			if rats, ok := val.([]exifcommon.Rational); ok && len(rats) > 0 && rats[0].Denominator != 0 {
				dpi.Y = float64(rats[0].Numerator) / float64(rats[0].Denominator)
			}
		}
	}
	if tag, err := index.RootIfd.FindTagWithName("ResolutionUnit"); err == nil {
		if val, err := tag[0].Value(); err == nil {
			if units, ok := val.([]uint16); ok && len(units) > 0 && units[0] == 3 {
				dpi.X *= 2.54
				dpi.Y *= 2.54
			}
		}
	}
	if dpi.X == 0 || dpi.Y == 0 {
		return DPI{}, errors.New("EXIF has no resolution")
	}
	return dpi, nil
}

func collectExif(data []byte) (exif.IfdIndex, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return exif.IfdIndex{}, errors.Wrap(err, "EXIF not found")
	}

	im := exifcommon.NewIfdMapping()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		return exif.IfdIndex{}, err
	}
	ti := exif.NewTagIndex()

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		return exif.IfdIndex{}, errors.Wrap(err, "failed to parse EXIF")
	}
	return index, nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// PNGDPI reads the pHYs chunk. ok is false when the chunk is missing or its
// unit is not metres.
func PNGDPI(data []byte) (dpi DPI, ok bool, err error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return DPI{}, false, errors.New("not a PNG file")
	}
	buf := bytes.NewReader(data[len(pngSignature):])

	for {
		var length uint32
		if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
			return DPI{}, false, nil
		}
		chunkType := make([]byte, 4)
		if _, err := io.ReadFull(buf, chunkType); err != nil {
			return DPI{}, false, nil
		}

		switch string(chunkType) {
		case "pHYs":
			var phys struct {
				PerUnitX, PerUnitY uint32
				Unit               byte
			}
			if err := binary.Read(buf, binary.BigEndian, &phys); err != nil {
				return DPI{}, false, errors.Wrap(err, "truncated pHYs chunk")
			}
			if phys.Unit != 1 {
				return DPI{}, false, nil
			}
			return DPI{
				X: float64(phys.PerUnitX) * inchesPerMeter,
				Y: float64(phys.PerUnitY) * inchesPerMeter,
			}, true, nil
		case "IDAT", "IEND":
			// pHYs must come before the image data
			return DPI{}, false, nil
		}

		// skip chunk data + CRC
		if _, err := buf.Seek(int64(length)+4, io.SeekCurrent); err != nil {
			return DPI{}, false, nil
		}
	}
}

// BMPDPI reads the pixels-per-metre fields of a BITMAPINFOHEADER. ok is
// false when they are zero.
func BMPDPI(data []byte) (dpi DPI, ok bool, err error) {
	if len(data) < 46 || string(data[:2]) != "BM" {
		return DPI{}, false, errors.New("not a BMP file")
	}
	x := int32(binary.LittleEndian.Uint32(data[38:42]))
	y := int32(binary.LittleEndian.Uint32(data[42:46]))
	if x <= 0 || y <= 0 {
		return DPI{}, false, nil
	}
	return DPI{X: float64(x) * inchesPerMeter, Y: float64(y) * inchesPerMeter}, true, nil
}
