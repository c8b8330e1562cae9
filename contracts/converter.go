package contracts

import "image"

type Converter interface {
	Convert(request ConversionRequest) error
}

type ConversionRequest struct {
	Parameters InputFlags
	Input      string
}

// GeometryHint lets a backend render close to the final size. It maps the
// native frame size to the size the pipeline will resize to.
type GeometryHint func(width, height int) (int, int)

// DocumentRasterizer opens multi-page documents.
type DocumentRasterizer interface {
	OpenFile(path string) (Document, error)
	OpenMemory(data []byte) (Document, error)
}

// Document is an opened document. Pages are 0-based. PageSize is the native
// pixel size of a page, the size RenderPage produces without a hint.
type Document interface {
	PageCount() int
	PageSize(index int) image.Point
	RenderPage(index int, hint GeometryHint) (image.Image, error)
	Close() error
}

// HEIFDecoder decodes the primary image of a HEIF container into an
// interleaved RGB raster.
type HEIFDecoder interface {
	DecodeHEIF(data []byte) (image.Image, error)
}
