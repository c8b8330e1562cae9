package formats

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imcon/contracts"
)

func TestFormatRoundTrip(t *testing.T) {
	for _, f := range []Format{Png, Jpeg, Bmp, Pdf} {
		got, err := Parse(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got, "Parse(%q)", f.String())
	}

	assert.Equal(t, "heic", Heif.String())
	got, err := Parse("heic")
	require.NoError(t, err)
	assert.Equal(t, Heif, got)

	got, err = Parse("heif")
	require.NoError(t, err)
	assert.Equal(t, Heif, got)
}

func TestParseIsCaseInsensitive(t *testing.T) {
	for _, s := range []string{"PNG", "Jpeg", "JPG", ".bmp", "PdF"} {
		_, err := Parse(s)
		assert.NoError(t, err, s)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("tiff")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrUnknownFormat))
}

func TestCodecRoundTrip(t *testing.T) {
	for _, f := range All {
		got, err := FromCodec(f.Codec())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := FromCodec("WEBP")
	assert.True(t, errors.Is(err, contracts.ErrUnknownFormat))
}
