// Package raster_codec decodes and encodes the single-frame raster formats.
package raster_codec

import (
	"bufio"
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"imcon/contracts"
	"imcon/formats"
)

const DefaultJpegQuality = 90

// Decode decodes data as the given raster format. The format is trusted, the
// content is not sniffed.
func Decode(data []byte, format formats.Format) (image.Image, error) {
	return DecodeReader(bytes.NewReader(data), format)
}

func DecodeReader(r io.Reader, format formats.Format) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	r = bufio.NewReader(r)
	switch format {
	case formats.Png:
		img, err = png.Decode(r)
	case formats.Jpeg:
		img, err = jpeg.Decode(r)
	case formats.Bmp:
		img, err = bmp.Decode(r)
	default:
		return nil, errors.Wrapf(contracts.ErrUnknownFormat, "%s is not a raster format", format)
	}
	if err != nil {
		return nil, errors.Wrapf(contracts.ErrDecode, "%s: %v", format.Codec(), err)
	}
	return img, nil
}

// Encode writes img in the given raster format. quality only applies to JPEG;
// values outside 1..100 select DefaultJpegQuality.
func Encode(w io.Writer, img image.Image, format formats.Format, quality int) error {
	var err error
	switch format {
	case formats.Png:
		err = png.Encode(w, img)
	case formats.Jpeg:
		if quality < 1 || quality > 100 {
			quality = DefaultJpegQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case formats.Bmp:
		err = bmp.Encode(w, img)
	default:
		return errors.Wrapf(contracts.ErrUnsupportedOutput, "%s", format)
	}
	if err != nil {
		return errors.Wrapf(contracts.ErrEncode, "%s: %v", format.Codec(), err)
	}
	return nil
}
