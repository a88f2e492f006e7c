package folio

import (
	"github.com/tsawler/folio/builder"
	"github.com/tsawler/folio/ocr"
	"github.com/tsawler/folio/raster"
)

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// Recognition
	engine ocr.Engine
	prompt string

	// Rasterization
	dpi     int // PDF render resolution
	maxSide int // downscale cap before recognition, 0 disables

	// Output layout
	outputDir string
	imageDir  string // asset directory, relative to outputDir
	name      string // output base name, "" derives from the input

	// Classification thresholds for unlabeled segments
	classifier builder.Config
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		engine:     nil, // nil means pre-tagged input only
		prompt:     "",  // "" means the engine's default prompt
		dpi:        raster.DefaultDPI,
		maxSide:    raster.MaxSide,
		outputDir:  "output",
		imageDir:   "images",
		name:       "",
		classifier: builder.DefaultConfig(),
	}
}

// clone creates a copy of ConvertOptions. Every field is a value or a
// shared handle, so a plain copy is deep enough.
func (o ConvertOptions) clone() ConvertOptions {
	return o
}
