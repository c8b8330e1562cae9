package converter

import (
	"image"
	"io/fs"
	"os"

	"github.com/pkg/errors"

	"imcon/contracts"
	"imcon/formats"
	"imcon/raster_codec"
)

// Backends are the native decoders. Either may be nil when the matching
// format is not needed.
type Backends struct {
	PDF  contracts.DocumentRasterizer
	HEIF contracts.HEIFDecoder
}

// Dispatcher routes a (format, source) pair to the decoder that handles it.
type Dispatcher struct {
	backends Backends
}

func NewDispatcher(backends Backends) *Dispatcher {
	return &Dispatcher{backends: backends}
}

// Frames is an opened source. Single images have exactly one frame. Size
// is the native size of a frame, known without rendering it.
type Frames interface {
	Len() int
	Size(index int) (image.Point, error)
	Frame(index int, hint contracts.GeometryHint) (image.Image, error)
	Close() error
}

type singleFrame struct {
	img image.Image
}

func (s singleFrame) Len() int { return 1 }

func (s singleFrame) Frame(index int, _ contracts.GeometryHint) (image.Image, error) {
	if index != 0 {
		return nil, errors.Wrapf(contracts.ErrPageOutOfBounds, "frame %d of 1", index+1)
	}
	return s.img, nil
}

func (s singleFrame) Size(index int) (image.Point, error) {
	if index != 0 {
		return image.Point{}, errors.Wrapf(contracts.ErrPageOutOfBounds, "frame %d of 1", index+1)
	}
	return s.img.Bounds().Size(), nil
}

func (s singleFrame) Close() error { return nil }

type documentFrames struct {
	doc contracts.Document
}

func (d documentFrames) Len() int { return d.doc.PageCount() }

func (d documentFrames) Frame(index int, hint contracts.GeometryHint) (image.Image, error) {
	if index < 0 || index >= d.doc.PageCount() {
		return nil, errors.Wrapf(contracts.ErrPageOutOfBounds, "page %d of %d", index+1, d.doc.PageCount())
	}
	return d.doc.RenderPage(index, hint)
}

func (d documentFrames) Size(index int) (image.Point, error) {
	if index < 0 || index >= d.doc.PageCount() {
		return image.Point{}, errors.Wrapf(contracts.ErrPageOutOfBounds, "page %d of %d", index+1, d.doc.PageCount())
	}
	return d.doc.PageSize(index), nil
}

func (d documentFrames) Close() error { return d.doc.Close() }

// Open prepares the frames of source. Documents are opened, single images are
// decoded right away.
func (d *Dispatcher) Open(format formats.Format, source DataSource) (Frames, error) {
	if decoded, ok := source.(DecodedSource); ok {
		if decoded.Image == nil {
			return nil, errors.Wrap(contracts.ErrDecode, "empty decoded source")
		}
		return singleFrame{img: decoded.Image}, nil
	}

	if file, ok := source.(FileSource); ok {
		if err := checkExists(file.Path); err != nil {
			return nil, err
		}
	}

	switch {
	case format.IsDocument():
		doc, err := d.openDocument(source)
		if err != nil {
			return nil, err
		}
		return documentFrames{doc: doc}, nil
	case format == formats.Heif:
		data, err := readSource(source)
		if err != nil {
			return nil, err
		}
		img, err := d.decodeHEIF(data)
		if err != nil {
			return nil, err
		}
		return singleFrame{img: img}, nil
	case format.IsRaster():
		data, err := readSource(source)
		if err != nil {
			return nil, err
		}
		img, err := raster_codec.Decode(data, format)
		if err != nil {
			return nil, err
		}
		return singleFrame{img: img}, nil
	}
	return nil, errors.Wrapf(contracts.ErrUnknownFormat, "%d", format)
}

func (d *Dispatcher) openDocument(source DataSource) (contracts.Document, error) {
	if d.backends.PDF == nil {
		return nil, errors.Wrap(contracts.ErrDocumentLoad, "no PDF backend configured")
	}
	switch s := source.(type) {
	case FileSource:
		return d.backends.PDF.OpenFile(s.Path)
	case MemorySource:
		return d.backends.PDF.OpenMemory(s.Data)
	}
	return nil, errors.Wrapf(contracts.ErrDocumentLoad, "unsupported source %T", source)
}

// decodeHEIF falls back to JPEG when the container header is missing. Some
// phones write JPEG files with a .heic extension.
func (d *Dispatcher) decodeHEIF(data []byte) (image.Image, error) {
	if d.backends.HEIF == nil {
		return nil, errors.Wrap(contracts.ErrDecode, "no HEIF backend configured")
	}
	img, err := d.backends.HEIF.DecodeHEIF(data)
	if err == nil {
		return img, nil
	}
	if !errors.Is(err, contracts.ErrMissingContainerHeader) {
		return nil, err
	}
	img, jpegErr := raster_codec.Decode(data, formats.Jpeg)
	if jpegErr != nil {
		return nil, errors.Wrapf(contracts.ErrDecode, "%v; jpeg fallback: %v", err, jpegErr)
	}
	return img, nil
}

func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(contracts.ErrFileNotFound, "%s", path)
		}
		return errors.Wrapf(contracts.ErrDecode, "%s: %v", path, err)
	}
	return nil
}

func readSource(source DataSource) ([]byte, error) {
	switch s := source.(type) {
	case FileSource:
		data, err := os.ReadFile(s.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, errors.Wrapf(contracts.ErrFileNotFound, "%s", s.Path)
			}
			return nil, errors.Wrapf(contracts.ErrDecode, "%s: %v", s.Path, err)
		}
		return data, nil
	case MemorySource:
		return s.Data, nil
	}
	return nil, errors.Errorf("cannot read bytes from %T", source)
}
