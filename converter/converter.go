package converter

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"imcon/contracts"
	"imcon/files_manager"
	"imcon/formats"
	"imcon/transform"
)

// Converter runs one CLI conversion request through the pipeline.
type Converter struct {
	dispatcher *Dispatcher
	reporter   io.Writer
}

func NewConverter(backends Backends, reporter io.Writer) *Converter {
	if reporter == nil {
		reporter = os.Stdout
	}
	return &Converter{dispatcher: NewDispatcher(backends), reporter: reporter}
}

func (c *Converter) Convert(request contracts.ConversionRequest) error {
	params := request.Parameters

	inputFormat, err := formats.ResolveInput(request.Input, params.InputFormat)
	if err != nil {
		return err
	}

	var img Image
	if params.InputFormat == "" && formats.IsHexColor(request.Input) {
		img, err = FromHexColor(request.Input)
		if err != nil {
			return err
		}
	} else {
		img = Open(request.Input, inputFormat)
	}

	outputFormat, err := formats.ResolveOutput(inputFormat, params.Output, params.OutputFormat)
	if err != nil {
		return err
	}
	if !outputFormat.IsRaster() {
		return errors.Wrapf(contracts.ErrUnsupportedOutput, "%s", outputFormat)
	}

	template := params.Output
	if template == "" {
		template = files_manager.DefaultTemplate(inputFormat, outputFormat)
	}

	img = img.
		Decoders(c.dispatcher).
		Reporter(c.reporter).
		OutputFormat(outputFormat).
		Force(params.Force).
		Quality(params.JpegQuality)
	if params.HasGeometry() {
		img = img.Resize(transform.Resize{
			Width:     params.Width,
			Height:    params.Height,
			MaxWidth:  params.MaxWidth,
			MaxHeight: params.MaxHeight,
			Scale:     params.Scale,
		})
	}

	if inputFormat.IsDocument() {
		_, err = img.SaveEveryImage(template)
	} else {
		_, err = img.Save(template)
	}
	if err != nil {
		return errors.Wrapf(err, "%s", request.Input)
	}
	return nil
}
