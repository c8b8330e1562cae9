// Package pdf_rasterizer renders PDF pages through ImageMagick (and its
// Ghostscript delegate).
package pdf_rasterizer

import (
	"bytes"
	"image"
	"math"
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"gopkg.in/gographics/imagick.v2/imagick"

	"imcon/contracts"
	"imcon/formats"
)

const (
	// NativeDensity renders one pixel per PDF point.
	NativeDensity = 72.0
	MinDensity    = 18.0
	MaxDensity    = 1200.0
)

var (
	mu      sync.Mutex
	started bool
)

// initialize binds ImageMagick once per process.
func initialize() {
	mu.Lock()
	defer mu.Unlock()
	if !started {
		imagick.Initialize()
		started = true
	}
}

// Terminate releases the ImageMagick environment. Call once at process exit.
func Terminate() {
	mu.Lock()
	defer mu.Unlock()
	if started {
		imagick.Terminate()
		started = false
	}
}

// Rasterizer opens PDF documents. ImageMagick is bound on first use.
type Rasterizer struct {
	// Density is the resolution used when the caller gives no geometry hint.
	Density float64
}

func New() *Rasterizer {
	return &Rasterizer{Density: NativeDensity}
}

func (r *Rasterizer) OpenFile(path string) (contracts.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(contracts.ErrFileNotFound, "%s", path)
		}
		return nil, errors.Wrapf(contracts.ErrDocumentLoad, "%s: %v", path, err)
	}
	return r.OpenMemory(data)
}

func (r *Rasterizer) OpenMemory(data []byte) (contracts.Document, error) {
	if !looksLikePDF(data) {
		return nil, errors.Wrap(contracts.ErrDocumentLoad, "missing %PDF header")
	}
	initialize()

	probe := imagick.NewMagickWand()
	defer probe.Destroy()
	if err := probe.SetResolution(NativeDensity, NativeDensity); err != nil {
		return nil, errors.Wrapf(contracts.ErrDocumentLoad, "%v", err)
	}
	if err := probe.PingImageBlob(data); err != nil {
		return nil, errors.Wrapf(contracts.ErrDocumentLoad, "%v", err)
	}
	if err := checkCodec(probe.GetImageFormat()); err != nil {
		return nil, err
	}

	n := int(probe.GetNumberImages())
	sizes := make([]image.Point, n)
	for i := 0; i < n; i++ {
		probe.SetIteratorIndex(i)
		sizes[i] = image.Pt(int(probe.GetImageWidth()), int(probe.GetImageHeight()))
	}

	density := r.Density
	if density <= 0 {
		density = NativeDensity
	}
	return &Document{data: data, sizes: sizes, density: density}, nil
}

// checkCodec rejects blobs that carry a PDF header but that ImageMagick
// identified as something else.
func checkCodec(codec string) error {
	f, err := formats.FromCodec(codec)
	if err != nil {
		return errors.Wrapf(contracts.ErrDocumentLoad, "%v", err)
	}
	if f != formats.Pdf {
		return errors.Wrapf(contracts.ErrDocumentLoad, "read as %s", f.Codec())
	}
	return nil
}

// looksLikePDF checks for the header within the first KiB, where readers
// are required to look for it.
func looksLikePDF(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(head, []byte("%PDF-"))
}

// Document keeps the raw PDF and renders pages on demand. Pages rendered at
// the same density share one ImageMagick read.
type Document struct {
	data    []byte
	sizes   []image.Point
	density float64

	wand        *imagick.MagickWand
	wandDensity float64
}

func (d *Document) PageCount() int {
	return len(d.sizes)
}

// PageSize is the page size at NativeDensity.
func (d *Document) PageSize(index int) image.Point {
	if index < 0 || index >= len(d.sizes) {
		return image.Point{}
	}
	return d.sizes[index]
}

// RenderPage renders at a density where the page is at least as large as the
// hinted size. The result is not resampled to the exact size.
func (d *Document) RenderPage(index int, hint contracts.GeometryHint) (image.Image, error) {
	if index < 0 || index >= len(d.sizes) {
		return nil, errors.Wrapf(contracts.ErrPageOutOfBounds, "page %d of %d", index+1, len(d.sizes))
	}
	density := d.densityFor(d.sizes[index], hint)
	if d.wand == nil || d.wandDensity != density {
		if err := d.read(density); err != nil {
			return nil, err
		}
	}

	if !d.wand.SetIteratorIndex(index) {
		return nil, errors.Wrapf(contracts.ErrPageOutOfBounds, "page %d", index+1)
	}
	width, height := d.wand.GetImageWidth(), d.wand.GetImageHeight()
	pixels, err := d.wand.ExportImagePixels(0, 0, width, height, "RGBA", imagick.PIXEL_CHAR)
	if err != nil {
		return nil, errors.Wrapf(contracts.ErrDecode, "page %d: %v", index+1, err)
	}
	pix, ok := pixels.([]byte)
	if !ok || len(pix) < int(width*height*4) {
		return nil, errors.Wrapf(contracts.ErrDecode, "page %d: unexpected pixel buffer", index+1)
	}

	page := &image.NRGBA{
		Pix:    pix,
		Stride: 4 * int(width),
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}
	// Transparent page areas become white paper.
	out := image.NewRGBA(page.Rect)
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), page, image.Point{}, draw.Over)
	return out, nil
}

// densityFor picks the render resolution so the page comes out at least as
// large as the size the pipeline will resize it to.
func (d *Document) densityFor(native image.Point, hint contracts.GeometryHint) float64 {
	if hint == nil || native.X <= 0 || native.Y <= 0 {
		return d.density
	}
	width, height := hint(native.X, native.Y)
	factor := math.Max(float64(width)/float64(native.X), float64(height)/float64(native.Y))
	density := math.Ceil(NativeDensity * factor)
	return math.Min(math.Max(density, MinDensity), MaxDensity)
}

func (d *Document) read(density float64) error {
	if d.wand != nil {
		d.wand.Destroy()
		d.wand = nil
	}
	wand := imagick.NewMagickWand()
	if err := wand.SetResolution(density, density); err != nil {
		wand.Destroy()
		return errors.Wrapf(contracts.ErrDocumentLoad, "%v", err)
	}
	if err := wand.ReadImageBlob(d.data); err != nil {
		wand.Destroy()
		return errors.Wrapf(contracts.ErrDocumentLoad, "%v", err)
	}
	d.wand = wand
	d.wandDensity = density
	return nil
}

func (d *Document) Close() error {
	if d.wand != nil {
		d.wand.Destroy()
		d.wand = nil
	}
	return nil
}
