package raster_codec

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imcon/contracts"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want []uint8
	}{
		{"#f00", []uint8{0xff, 0, 0}},
		{"#ff0000", []uint8{0xff, 0, 0}},
		{"#1234", []uint8{0x11, 0x22, 0x33, 0x44}},
		{"#0a0B0c80", []uint8{0x0a, 0x0b, 0x0c, 0x80}},
		{"abc", []uint8{0xaa, 0xbb, 0xcc}},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"#ff", "#ggg", "#12345", "#zz0000", ""} {
		_, err := ParseHexColor(bad)
		assert.True(t, errors.Is(err, contracts.ErrInvalidHexColor), bad)
	}
}

func TestSolidColorShortAndLongAgree(t *testing.T) {
	for _, hex := range []string{"#f00", "#ff0000"} {
		img, err := SolidColor(hex)
		require.NoError(t, err)

		rgb, ok := img.(*RGB)
		require.True(t, ok, "%s should decode to an RGB raster, got %T", hex, img)
		assert.Equal(t, image.Rect(0, 0, 512, 512), rgb.Bounds())
		for i := 0; i < len(rgb.Pix); i += 3 {
			if rgb.Pix[i] != 0xff || rgb.Pix[i+1] != 0 || rgb.Pix[i+2] != 0 {
				t.Fatalf("%s: pixel %d is %v, want solid red", hex, i/3, rgb.Pix[i:i+3])
			}
		}
	}
}

func TestSolidColorWithAlpha(t *testing.T) {
	img, err := SolidColor("#00ff0080")
	require.NoError(t, err)
	nrgba, ok := img.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0x80}, nrgba.NRGBAAt(511, 511))
}

func TestToRGBAPromotesRGB(t *testing.T) {
	img, err := SolidColor("#102030")
	require.NoError(t, err)

	rgba := ToRGBA(img)
	assert.Equal(t, image.Rect(0, 0, 512, 512), rgba.Bounds())
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, rgba.RGBAAt(100, 200))
}

func TestToRGBAKeepsRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	assert.Same(t, src, ToRGBA(src))

	offset := image.NewRGBA(image.Rect(2, 2, 6, 6))
	out := ToRGBA(offset)
	assert.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
}

func TestRGBFromRaw(t *testing.T) {
	_, ok := RGBFromRaw(2, 2, make([]uint8, 11))
	assert.False(t, ok)

	rgb, ok := RGBFromRaw(2, 1, []uint8{1, 2, 3, 4, 5, 6})
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 4, G: 5, B: 6, A: 0xff}, rgb.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{}, rgb.RGBAAt(2, 0))
}
