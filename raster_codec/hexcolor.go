package raster_codec

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"imcon/contracts"
)

// SolidColorSize is the edge length of the raster built from a colour literal.
const SolidColorSize = 512

// ParseHexColor decodes #RGB, #RGBA, #RRGGBB and #RRGGBBAA (the # is
// optional) into 3 or 4 channel bytes. Short digits are expanded, f -> ff.
func ParseHexColor(hex string) ([]uint8, error) {
	digits := strings.TrimPrefix(hex, "#")
	var out []uint8
	switch len(digits) {
	case 3, 4:
		for i := 0; i < len(digits); i++ {
			v, err := strconv.ParseUint(digits[i:i+1], 16, 8)
			if err != nil {
				return nil, errors.Wrapf(contracts.ErrInvalidHexColor, "%s", hex)
			}
			out = append(out, uint8(v)*0x11)
		}
	case 6, 8:
		for i := 0; i < len(digits); i += 2 {
			v, err := strconv.ParseUint(digits[i:i+2], 16, 8)
			if err != nil {
				return nil, errors.Wrapf(contracts.ErrInvalidHexColor, "%s", hex)
			}
			out = append(out, uint8(v))
		}
	default:
		return nil, errors.Wrapf(contracts.ErrInvalidHexColor, "%s", hex)
	}
	return out, nil
}

// SolidColor builds a SolidColorSize square filled with the literal. Three
// channel colours give an *RGB, four channel colours an *image.NRGBA.
func SolidColor(hex string) (image.Image, error) {
	channels, err := ParseHexColor(hex)
	if err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, SolidColorSize, SolidColorSize)
	if len(channels) == 3 {
		img := NewRGB(rect)
		for i := 0; i < len(img.Pix); i += 3 {
			copy(img.Pix[i:i+3], channels)
		}
		return img, nil
	}
	img := image.NewNRGBA(rect)
	c := color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}
	for y := 0; y < SolidColorSize; y++ {
		for x := 0; x < SolidColorSize; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}
