package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"imcon/contracts"
	"imcon/converter"
	"imcon/files_manager"
	"imcon/formats"
	"imcon/heif_decoder"
	"imcon/metadata"
	"imcon/pdf_rasterizer"
)

func main() {
	code := run(os.Args[1:], os.Stdout, os.Stderr, converter.Backends{
		PDF:  pdf_rasterizer.New(),
		HEIF: heif_decoder.New(),
	})
	pdf_rasterizer.Terminate()
	heif_decoder.Shutdown()
	os.Exit(code)
}

// run processes every input in order and returns the exit status. The
// native libraries behind backends are only bound when an input needs them.
func run(args []string, stdout, stderr io.Writer, backends converter.Backends) int {
	params, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "[ERROR]: %v\n", err)
		return 1
	}

	inputs, err := files_manager.CollectInputs(params.Inputs, params.Recursive)
	if err != nil {
		fmt.Fprintf(stderr, "[ERROR]: %v\n", err)
		return 1
	}

	var process func(input string) error
	switch {
	case params.Dominant > 0:
		process = func(string) error {
			return errors.Wrap(contracts.ErrNotImplemented, "--dominant")
		}
	case params.Metadata != "":
		collector := metadata.NewCollector(backends)
		out := metadata.NewWriter(stdout)
		defer out.Close()
		process = func(input string) error {
			return printMetadata(collector, out, input, params)
		}
	default:
		conv := converter.NewConverter(backends, stdout)
		process = func(input string) error {
			return conv.Convert(contracts.ConversionRequest{Parameters: params, Input: input})
		}
	}

	failed := 0
	for _, input := range inputs {
		if err := process(input); err != nil {
			fmt.Fprintf(stderr, "[ERROR]: %v\n", err)
			if !params.KeepGoing {
				return 1
			}
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(stderr, "%d of %d inputs failed\n", failed, len(inputs))
		return 1
	}
	return 0
}

func printMetadata(collector *metadata.Collector, out *metadata.Writer, input string, params contracts.InputFlags) error {
	if formats.IsHexColor(input) {
		return errors.Errorf("%s: metadata needs a file", input)
	}
	format, err := formats.ResolveInput(input, params.InputFormat)
	if err != nil {
		return err
	}
	report, err := collector.Collect(input, format)
	if err != nil {
		return err
	}
	return out.Write(report)
}
