package metadata

import (
	"github.com/pkg/errors"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"imcon/contracts"
)

// PDFInfo is the document level metadata of a PDF file.
type PDFInfo struct {
	Version  string `yaml:"version"`
	Pages    int    `yaml:"pages"`
	Title    string `yaml:"title,omitempty"`
	Author   string `yaml:"author,omitempty"`
	Subject  string `yaml:"subject,omitempty"`
	Creator  string `yaml:"creator,omitempty"`
	Producer string `yaml:"producer,omitempty"`
}

// ReadPDFInfo reads the version, page count and information dictionary of
// the PDF file at path. Pages are not rendered.
func ReadPDFInfo(path string) (*PDFInfo, error) {
	r, err := pdf.Open(path, nil)
	if err != nil {
		return nil, errors.Wrapf(contracts.ErrDocumentLoad, "%s: %v", path, err)
	}
	defer r.Close()

	meta := r.GetMeta()
	pages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, errors.Wrapf(contracts.ErrDocumentLoad, "%s: page tree: %v", path, err)
	}

	info := &PDFInfo{
		Version: meta.Version.String(),
		Pages:   pages,
	}
	if meta.Info != nil {
		info.Title = string(meta.Info.Title)
		info.Author = string(meta.Info.Author)
		info.Subject = string(meta.Info.Subject)
		info.Creator = string(meta.Info.Creator)
		info.Producer = string(meta.Info.Producer)
	}
	return info, nil
}
