package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"imcon/contracts"
	"imcon/raster_codec"
)

const usageHeader = `Usage: imcon [options] <input>...

Inputs are files, directories (with --recursive) or colour literals such as
#f00, #ff000080. Output templates accept {} (input name without extension),
{i} (page number), {dir} and {filename}.

Options:
`

// parseFlags reads the command line into InputFlags. Options and inputs may
// be mixed in any order.
func parseFlags(args []string, stderr io.Writer) (contracts.InputFlags, error) {
	var f contracts.InputFlags

	fs := flag.NewFlagSet("imcon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageHeader)
		fs.PrintDefaults()
	}

	fs.StringVar(&f.InputFormat, "input-format", "", "Input format, overrides the file extension (pdf, heic, png, jpg, bmp)")
	fs.StringVar(&f.OutputFormat, "output-format", "", "Output format (png, jpg, bmp), not with --output")
	stringVar(fs, &f.Output, "o", "output", "", "Output path template, not with --output-format")
	intVar(fs, &f.Width, "w", "width", 0, "Output width in pixels")
	intVar(fs, &f.Height, "h", "height", 0, "Output height in pixels")
	intVar(fs, &f.MaxWidth, "W", "max-width", 0, "Shrink to at most this width")
	intVar(fs, &f.MaxHeight, "H", "max-height", 0, "Shrink to at most this height")
	fs.Float64Var(&f.Scale, "scale", 0, "Scale factor applied before the other geometry options")
	intVar(fs, &f.JpegQuality, "q", "quality", raster_codec.DefaultJpegQuality, "JPEG quality (1-100)")
	boolVar(fs, &f.Force, "f", "force", false, "Allow overwriting the input file")
	boolVar(fs, &f.KeepGoing, "k", "keep-going", false, "Continue with the next input after an error")
	boolVar(fs, &f.Recursive, "r", "recursive", false, "Convert the images of directory inputs and their subdirectories")
	stringVar(fs, &f.Metadata, "m", "metadata", "", "Print metadata instead of converting (all)")
	fs.IntVar(&f.Dominant, "dominant", 0, "Print the n dominant colours (not implemented)")

	for {
		if err := fs.Parse(args); err != nil {
			return f, err
		}
		if fs.NArg() == 0 {
			break
		}
		f.Inputs = append(f.Inputs, fs.Arg(0))
		args = fs.Args()[1:]
	}

	return f, validate(f)
}

func validate(f contracts.InputFlags) error {
	if len(f.Inputs) == 0 {
		return errors.New("no input given")
	}
	if f.Output != "" && f.OutputFormat != "" {
		return errors.New("--output and --output-format are mutually exclusive")
	}
	if f.Width < 0 || f.Height < 0 || f.MaxWidth < 0 || f.MaxHeight < 0 {
		return errors.Wrap(contracts.ErrInvalidResize, "sizes must be positive")
	}
	if f.Scale < 0 {
		return errors.Wrap(contracts.ErrInvalidResize, "--scale must be positive")
	}
	if f.JpegQuality < 1 || f.JpegQuality > 100 {
		return errors.Errorf("--quality must be between 1 and 100, got %d", f.JpegQuality)
	}
	if f.Dominant < 0 {
		return errors.New("--dominant must be positive")
	}

	inspecting := f.Metadata != "" || f.Dominant > 0
	if inspecting && (f.HasGeometry() || f.Output != "" || f.OutputFormat != "") {
		return errors.New("--metadata and --dominant cannot be combined with output or geometry options")
	}
	if f.Metadata != "" && f.Dominant > 0 {
		return errors.New("--metadata and --dominant are mutually exclusive")
	}
	if f.Metadata != "" && !strings.EqualFold(f.Metadata, "all") {
		return errors.Errorf("unknown --metadata value %q, expected all", f.Metadata)
	}
	return nil
}

func stringVar(fs *flag.FlagSet, p *string, short, long, value, usage string) {
	fs.StringVar(p, long, value, usage)
	fs.StringVar(p, short, value, "Shorthand for --"+long)
}

func intVar(fs *flag.FlagSet, p *int, short, long string, value int, usage string) {
	fs.IntVar(p, long, value, usage)
	fs.IntVar(p, short, value, "Shorthand for --"+long)
}

func boolVar(fs *flag.FlagSet, p *bool, short, long string, value bool, usage string) {
	fs.BoolVar(p, long, value, usage)
	fs.BoolVar(p, short, value, "Shorthand for --"+long)
}
