package contracts

type InputFlags struct {
	Inputs       []string
	InputFormat  string
	OutputFormat string
	Output       string

	Width     int
	Height    int
	MaxWidth  int
	MaxHeight int
	Scale     float64

	JpegQuality int
	Force       bool
	KeepGoing   bool
	Recursive   bool

	Metadata string
	Dominant int
}

// HasGeometry reports whether any resize option was given.
func (f InputFlags) HasGeometry() bool {
	return f.Width > 0 || f.Height > 0 || f.MaxWidth > 0 || f.MaxHeight > 0 || f.Scale > 0
}
