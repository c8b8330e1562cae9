package transform

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"imcon/contracts"
)

type size struct{ w, h int }

func TestCalculateDimensionsIdentity(t *testing.T) {
	for _, s := range []size{{1, 1}, {640, 480}, {480, 640}, {4000, 3}} {
		w, h := Resize{}.CalculateDimensions(s.w, s.h)
		assert.Equal(t, s, size{w, h})
	}
}

func TestCalculateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		resize  Resize
		current size
		want    size
	}{
		{name: "scale", resize: Resize{Scale: 0.5}, current: size{200, 100}, want: size{100, 50}},
		{name: "scale up", resize: Resize{Scale: 2}, current: size{200, 100}, want: size{400, 200}},
		{name: "max width clamps", resize: Resize{MaxWidth: 100}, current: size{200, 100}, want: size{100, 50}},
		{name: "max width never upscales", resize: Resize{MaxWidth: 500}, current: size{200, 100}, want: size{200, 100}},
		{name: "max height clamps", resize: Resize{MaxHeight: 50}, current: size{200, 100}, want: size{100, 50}},
		{name: "max height never upscales", resize: Resize{MaxHeight: 500}, current: size{200, 100}, want: size{200, 100}},
		{
			name:    "max width then max height",
			resize:  Resize{MaxWidth: 100, MaxHeight: 40},
			current: size{200, 200},
			want:    size{40, 40},
		},
		{
			name:    "explicit pair wins",
			resize:  Resize{Width: 33, Height: 77, Scale: 3, MaxWidth: 10, MaxHeight: 10},
			current: size{200, 100},
			want:    size{33, 77},
		},
		{name: "width keeps aspect", resize: Resize{Width: 100}, current: size{200, 100}, want: size{100, 50}},
		{name: "height keeps aspect", resize: Resize{Height: 50}, current: size{200, 100}, want: size{100, 50}},
		{
			name:    "width uses running pair after clamp",
			resize:  Resize{MaxWidth: 100, Width: 300},
			current: size{400, 200},
			want:    size{300, 150},
		},
		{
			name:    "height uses original height after clamp",
			resize:  Resize{MaxWidth: 100, Height: 100},
			current: size{400, 200},
			want:    size{50, 100},
		},
		{name: "truncates", resize: Resize{Scale: 0.333}, current: size{100, 100}, want: size{33, 33}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.resize.CalculateDimensions(tt.current.w, tt.current.h)
			assert.Equal(t, tt.want, size{w, h})
		})
	}
}

func TestExplicitPairIgnoresEverythingElse(t *testing.T) {
	r := Resize{Width: 12, Height: 34}
	for _, extra := range []Resize{{Scale: 0.1}, {MaxWidth: 1}, {MaxHeight: 1}, {Scale: 9, MaxWidth: 3, MaxHeight: 4}} {
		extra.Width, extra.Height = r.Width, r.Height
		w, h := extra.CalculateDimensions(1000, 10)
		assert.Equal(t, size{12, 34}, size{w, h})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Resize{Width: 10, Scale: 1.5}.Validate())
	err := Resize{MaxHeight: -1}.Validate()
	assert.True(t, errors.Is(err, contracts.ErrInvalidResize))
}

func TestHint(t *testing.T) {
	assert.Nil(t, Resize{}.Hint())
	hint := Resize{MaxWidth: 100}.Hint()
	w, h := hint(200, 100)
	assert.Equal(t, size{100, 50}, size{w, h})
}

func TestFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			src.Set(x, y, color.RGBA{R: 0, G: 0, B: 255, A: 255})
		}
	}

	out := Fit(src, 10, 5)
	assert.Equal(t, image.Rect(0, 0, 10, 5), out.Bounds())

	// aspect ratio is not preserved, the caller picks the size
	out = Fit(src, 7, 30)
	assert.Equal(t, image.Rect(0, 0, 7, 30), out.Bounds())

	assert.Same(t, src, Fit(src, 40, 20).(*image.RGBA))

	w, h := Resize{Scale: 0.01}.CalculateDimensions(40, 20)
	tiny := Fit(src, w, h)
	assert.Equal(t, image.Rect(0, 0, 1, 1), tiny.Bounds())
}
