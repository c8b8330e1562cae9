// Package metadata builds the --metadata report: size, page count,
// resolution, EXIF tags and PDF document info of each input.
package metadata

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"imcon/contracts"
	"imcon/converter"
	"imcon/formats"
)

// Report describes one input.
type Report struct {
	Path   string            `yaml:"path"`
	Format string            `yaml:"format"`
	Width  int               `yaml:"width"`
	Height int               `yaml:"height"`
	Pages  int               `yaml:"pages"`
	DPI    *DPI              `yaml:"dpi,omitempty"`
	PDF    *PDFInfo          `yaml:"pdf,omitempty"`
	EXIF   map[string]string `yaml:"exif,omitempty"`
}

// Collector opens inputs through the same dispatcher the conversions use.
type Collector struct {
	dispatcher *converter.Dispatcher
}

func NewCollector(backends converter.Backends) *Collector {
	return &Collector{dispatcher: converter.NewDispatcher(backends)}
}

// Collect builds the report for the file at path. Width and height are the
// native size of the first frame; document pages are not rendered.
func (c *Collector) Collect(path string, format formats.Format) (Report, error) {
	report := Report{Path: path, Format: format.String()}

	frames, err := c.dispatcher.Open(format, converter.FileSource{Path: path})
	if err != nil {
		return report, err
	}
	defer frames.Close()

	report.Pages = frames.Len()
	if report.Pages > 0 {
		size, err := frames.Size(0)
		if err != nil {
			return report, err
		}
		report.Width = size.X
		report.Height = size.Y
	}

	if format.IsDocument() {
		info, err := ReadPDFInfo(path)
		if err != nil {
			return report, err
		}
		report.PDF = info
		return report, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return report, errors.Wrapf(contracts.ErrFileNotFound, "%s: %v", path, err)
	}
	report.DPI = rasterDPI(data, format)
	if format == formats.Jpeg || format == formats.Heif {
		// images without EXIF simply have no tags
		if tags, err := ExifTags(data); err == nil && len(tags) > 0 {
			report.EXIF = tags
		}
	}
	return report, nil
}

func rasterDPI(data []byte, format formats.Format) *DPI {
	var (
		dpi DPI
		ok  bool
	)
	switch format {
	case formats.Png:
		dpi, ok, _ = PNGDPI(data)
	case formats.Bmp:
		dpi, ok, _ = BMPDPI(data)
	case formats.Jpeg, formats.Heif:
		var err error
		dpi, err = ExifDPI(data)
		ok = err == nil
	}
	if !ok {
		return nil
	}
	return &dpi
}

// Writer emits reports as a stream of YAML documents.
type Writer struct {
	enc *yaml.Encoder
}

func NewWriter(w io.Writer) *Writer {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &Writer{enc: enc}
}

func (w *Writer) Write(r Report) error {
	if err := w.enc.Encode(r); err != nil {
		return errors.Wrapf(err, "failed to encode report for %s", r.Path)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.enc.Close()
}
