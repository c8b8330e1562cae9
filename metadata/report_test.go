package metadata

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imcon/contracts"
	"imcon/converter"
	"imcon/formats"
)

func TestCollectPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.png")
	require.NoError(t, os.WriteFile(path, withPHYs(t, encodePNG(t, 30, 20), 11811, 1), 0o644))

	report, err := NewCollector(converter.Backends{}).Collect(path, formats.Png)
	require.NoError(t, err)

	require.NotNil(t, report.DPI)
	assert.InDelta(t, 300, report.DPI.X, 0.1)
	report.DPI = nil
	want := Report{Path: path, Format: "png", Width: 30, Height: 20, Pages: 1}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectErrors(t *testing.T) {
	dir := t.TempDir()
	c := NewCollector(converter.Backends{})

	_, err := c.Collect(filepath.Join(dir, "missing.png"), formats.Png)
	assert.True(t, errors.Is(err, contracts.ErrFileNotFound))

	doc := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(doc, []byte("%PDF-1.4"), 0o644))
	_, err = c.Collect(doc, formats.Pdf)
	assert.True(t, errors.Is(err, contracts.ErrDocumentLoad))
}

func TestWriter(t *testing.T) {
	reports := []Report{
		{Path: "a.png", Format: "png", Width: 2, Height: 3, Pages: 1, DPI: &DPI{X: 72, Y: 72}},
		{Path: "b.jpg", Format: "jpg", Width: 4, Height: 5, Pages: 1, EXIF: map[string]string{"Make": "Acme"}},
	}
	var buf bytes.Buffer
	out := NewWriter(&buf)
	for _, r := range reports {
		require.NoError(t, out.Write(r))
	}
	require.NoError(t, out.Close())

	text := buf.String()
	assert.Contains(t, text, "path: a.png\n")
	assert.Contains(t, text, "dpi:\n  x: 72\n  y: 72\n")
	assert.Contains(t, text, "---\npath: b.jpg\n")
	assert.Contains(t, text, "exif:\n  Make: Acme\n")
	assert.NotContains(t, text, "pdf:")
}
