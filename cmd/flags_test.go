package main

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imcon/contracts"
)

func TestParseFlags(t *testing.T) {
	got, err := parseFlags([]string{"a.pdf", "-W", "800", "--output", "{}_{i}.jpg", "b.png", "-f", "-q", "75"}, io.Discard)
	require.NoError(t, err)

	want := contracts.InputFlags{
		Inputs:      []string{"a.pdf", "b.png"},
		Output:      "{}_{i}.jpg",
		MaxWidth:    800,
		JpegQuality: 75,
		Force:       true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFlagsShortAndLongShareValue(t *testing.T) {
	got, err := parseFlags([]string{"-h", "10", "--width", "20", "--scale", "0.5", "x.png"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Height)
	assert.Equal(t, 20, got.Width)
	assert.Equal(t, 0.5, got.Scale)
	assert.Equal(t, 90, got.JpegQuality)
}

func TestParseFlagsRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"-f"}},
		{"output and output format", []string{"-o", "x.png", "--output-format", "png", "a.png"}},
		{"negative width", []string{"-w", "-5", "a.png"}},
		{"negative scale", []string{"--scale", "-1", "a.png"}},
		{"quality out of range", []string{"-q", "101", "a.png"}},
		{"metadata with geometry", []string{"-m", "all", "-w", "10", "a.png"}},
		{"dominant with output", []string{"--dominant", "3", "-o", "x.png", "a.png"}},
		{"metadata and dominant", []string{"-m", "all", "--dominant", "3", "a.png"}},
		{"unknown metadata value", []string{"-m", "some", "a.png"}},
		{"unknown flag", []string{"--bogus", "a.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}
