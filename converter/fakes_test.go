package converter

import (
	"image"
	"image/color"
	"math"
	"os"

	"github.com/pkg/errors"

	"imcon/contracts"
	"imcon/formats"
	"imcon/raster_codec"
)

type fakeRasterizer struct {
	pages    []image.Point
	failPage int // 1-based, 0 disables
	opened   int
	hints    []image.Point
}

func (f *fakeRasterizer) OpenFile(path string) (contracts.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(contracts.ErrDocumentLoad, "%v", err)
	}
	return f.OpenMemory(data)
}

func (f *fakeRasterizer) OpenMemory(data []byte) (contracts.Document, error) {
	f.opened++
	if len(data) == 0 {
		return nil, errors.Wrap(contracts.ErrDocumentLoad, "empty document")
	}
	return &fakeDocument{owner: f}, nil
}

type fakeDocument struct {
	owner  *fakeRasterizer
	closed bool
}

func (d *fakeDocument) PageCount() int { return len(d.owner.pages) }

func (d *fakeDocument) PageSize(index int) image.Point { return d.owner.pages[index] }

// RenderPage renders the way the ImageMagick backend does: the hint picks a
// whole-number density and the page comes out at native*density/72, close to
// but not exactly the hinted size.
func (d *fakeDocument) RenderPage(index int, hint contracts.GeometryHint) (image.Image, error) {
	if index+1 == d.owner.failPage {
		return nil, errors.Wrapf(contracts.ErrDecode, "page %d", index+1)
	}
	size := d.owner.pages[index]
	if hint != nil {
		w, h := hint(size.X, size.Y)
		d.owner.hints = append(d.owner.hints, image.Pt(w, h))
		factor := math.Max(float64(w)/float64(size.X), float64(h)/float64(size.Y))
		density := math.Ceil(72 * factor)
		size = image.Pt(int(float64(size.X)*density/72), int(float64(size.Y)*density/72))
	}
	return filled(size.X, size.Y, color.RGBA{R: 200, G: 10, B: 10, A: 255}), nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

// fakeHEIF accepts anything with an ftyp box and rejects the rest the way
// the real decoder does.
type fakeHEIF struct {
	calls int
}

func (f *fakeHEIF) DecodeHEIF(data []byte) (image.Image, error) {
	f.calls++
	if !formats.HasHEIFContainer(data) {
		return nil, contracts.ErrMissingContainerHeader
	}
	img := raster_codec.NewRGB(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	return img, nil
}

func filled(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
