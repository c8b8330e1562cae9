package converter

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/pkg/errors"

	"imcon/contracts"
	"imcon/files_manager"
	"imcon/formats"
	"imcon/raster_codec"
	"imcon/transform"
)

// Image is a conversion pipeline value: a source, its format and a pending
// resize. Setters return a modified copy, so values can be chained and
// shared. Save, SaveEveryImage and ToImage decode the source each time they
// run.
type Image struct {
	format formats.Format
	source DataSource
	name   string
	resize *transform.Resize

	output   *formats.Format
	force    bool
	quality  int
	reporter io.Writer
	decoders *Dispatcher
}

// Open creates an Image reading from a file.
func Open(path string, format formats.Format) Image {
	return Image{format: format, source: FileSource{Path: path}, name: path}
}

// Read creates an Image from an encoded file held in memory.
func Read(data []byte, format formats.Format) Image {
	return Image{format: format, source: MemorySource{Data: data}, name: "stdin"}
}

// FromDecoded wraps a raster that is already decoded.
func FromDecoded(img image.Image, format formats.Format) Image {
	return Image{format: format, source: DecodedSource{Image: img}, name: "stdin"}
}

// FromHexColor builds a solid colour source from a #RGB[A] or #RRGGBB[AA]
// literal. Outputs are named after the digits.
func FromHexColor(hex string) (Image, error) {
	img, err := raster_codec.SolidColor(hex)
	if err != nil {
		return Image{}, err
	}
	name := hex
	if len(name) > 1 && name[0] == '#' {
		name = name[1:]
	}
	return Image{format: formats.Bmp, source: DecodedSource{Image: img}, name: name}, nil
}

func (im Image) Format() formats.Format { return im.format }

// PendingResize returns the resize that will be applied, if any.
func (im Image) PendingResize() (transform.Resize, bool) {
	if im.resize == nil {
		return transform.Resize{}, false
	}
	return *im.resize, true
}

func (im Image) withResize(update func(r *transform.Resize)) Image {
	var r transform.Resize
	if im.resize != nil {
		r = *im.resize
	}
	update(&r)
	im.resize = &r
	return im
}

func (im Image) Width(width int) Image {
	return im.withResize(func(r *transform.Resize) { r.Width = width })
}

func (im Image) Height(height int) Image {
	return im.withResize(func(r *transform.Resize) { r.Height = height })
}

func (im Image) MaxWidth(width int) Image {
	return im.withResize(func(r *transform.Resize) { r.MaxWidth = width })
}

func (im Image) MaxHeight(height int) Image {
	return im.withResize(func(r *transform.Resize) { r.MaxHeight = height })
}

func (im Image) Scale(scale float64) Image {
	return im.withResize(func(r *transform.Resize) { r.Scale = scale })
}

// Resize replaces the pending resize.
func (im Image) Resize(r transform.Resize) Image {
	im.resize = &r
	return im
}

// Named sets the path used for {} and friends in output templates.
func (im Image) Named(name string) Image {
	im.name = name
	return im
}

// OutputFormat forces the encoder instead of going by the output extension.
func (im Image) OutputFormat(f formats.Format) Image {
	im.output = &f
	return im
}

// Force allows writing over the input file.
func (im Image) Force(force bool) Image {
	im.force = force
	return im
}

// Quality sets the JPEG quality, 1..100.
func (im Image) Quality(quality int) Image {
	im.quality = quality
	return im
}

// Reporter receives one "Converted to <path>" line per written file. Defaults
// to stdout.
func (im Image) Reporter(w io.Writer) Image {
	im.reporter = w
	return im
}

// Decoders sets the dispatcher. Without one only PNG, JPEG and BMP decode.
func (im Image) Decoders(d *Dispatcher) Image {
	im.decoders = d
	return im
}

func (im Image) dispatcher() *Dispatcher {
	if im.decoders != nil {
		return im.decoders
	}
	return NewDispatcher(Backends{})
}

func (im Image) inputPath() string {
	if file, ok := im.source.(FileSource); ok {
		return file.Path
	}
	return ""
}

func (im Image) validate() error {
	if im.resize != nil {
		return im.resize.Validate()
	}
	return nil
}

// ToImage decodes the first frame, applies the pending resize and returns it
// as RGBA8.
func (im Image) ToImage() (*image.RGBA, error) {
	if err := im.validate(); err != nil {
		return nil, err
	}
	frames, err := im.dispatcher().Open(im.format, im.source)
	if err != nil {
		return nil, err
	}
	defer frames.Close()

	return im.render(frames, 0)
}

// Save writes the first frame (page 1 of a document) to the path the
// template expands to, numbering it as page 1 of 1.
func (im Image) Save(template string) (string, error) {
	if err := im.validate(); err != nil {
		return "", err
	}
	path, err := files_manager.ExpandTemplate(template, im.name, 1, 1)
	if err != nil {
		return "", err
	}
	img, err := im.ToImage()
	if err != nil {
		return "", err
	}
	if err := im.write(img, path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveEveryImage writes one file per frame. Each frame is resized from its
// own size. Writes are not transactional: when a frame fails, the files
// written before it stay and the error is returned with the paths written
// so far.
func (im Image) SaveEveryImage(template string) ([]string, error) {
	if err := im.validate(); err != nil {
		return nil, err
	}
	if _, err := files_manager.FileStem(im.name); err != nil {
		return nil, err
	}
	frames, err := im.dispatcher().Open(im.format, im.source)
	if err != nil {
		return nil, err
	}
	defer frames.Close()

	total := frames.Len()
	written := make([]string, 0, total)
	for i := 0; i < total; i++ {
		path, err := files_manager.ExpandTemplate(template, im.name, i+1, total)
		if err != nil {
			return written, err
		}
		img, err := im.render(frames, i)
		if err != nil {
			return written, errors.Wrapf(err, "page %d", i+1)
		}
		if err := im.write(img, path); err != nil {
			return written, errors.Wrapf(err, "page %d", i+1)
		}
		written = append(written, path)
	}
	return written, nil
}

// render decodes one frame as RGBA8. The output size is computed once from
// the native frame size; the backend may render closer to it through the
// hint, and the result is then resampled to exactly that size.
func (im Image) render(frames Frames, index int) (*image.RGBA, error) {
	if im.resize == nil || im.resize.IsIdentity() {
		img, err := frames.Frame(index, nil)
		if err != nil {
			return nil, err
		}
		return raster_codec.ToRGBA(img), nil
	}

	native, err := frames.Size(index)
	if err != nil {
		return nil, err
	}
	width, height := im.resize.CalculateDimensions(native.X, native.Y)
	img, err := frames.Frame(index, im.resize.Hint())
	if err != nil {
		return nil, err
	}
	return raster_codec.ToRGBA(transform.Fit(raster_codec.ToRGBA(img), width, height)), nil
}

func (im Image) write(img *image.RGBA, path string) error {
	var out formats.Format
	if im.output != nil {
		out = *im.output
	} else {
		resolved, err := formats.ResolveOutput(im.format, path, "")
		if err != nil {
			return err
		}
		out = resolved
	}
	if !out.IsRaster() {
		return errors.Wrapf(contracts.ErrUnsupportedOutput, "%s", out)
	}
	if err := files_manager.CheckOverwrite(path, im.inputPath(), im.force); err != nil {
		return err
	}
	err := files_manager.WriteFile(path, func(w io.Writer) error {
		return raster_codec.Encode(w, img, out, im.quality)
	})
	if err != nil {
		return err
	}

	reporter := im.reporter
	if reporter == nil {
		reporter = os.Stdout
	}
	fmt.Fprintf(reporter, "Converted to %s\n", path)
	return nil
}
