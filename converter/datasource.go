package converter

import "image"

// DataSource says where the bytes of an image live. Exactly one of
// FileSource, MemorySource or DecodedSource.
type DataSource interface {
	isDataSource()
}

// FileSource reads from a path. The path also names the outputs.
type FileSource struct {
	Path string
}

// MemorySource holds an encoded file in memory.
type MemorySource struct {
	Data []byte
}

// DecodedSource holds a raster that needs no decoding.
type DecodedSource struct {
	Image image.Image
}

func (FileSource) isDataSource()    {}
func (MemorySource) isDataSource()  {}
func (DecodedSource) isDataSource() {}
