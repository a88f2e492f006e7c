// Package ocr recognizes text on page rasters.
//
// Engines return the raw text stream produced by the recognizer. A
// grounding-capable model (DeepSeek-OCR served by vLLM) emits
// <|ref|>/<|det|> layout tags that the scanner package parses into
// located segments; plain-text engines such as Tesseract return
// untagged text, which flows through the same pipeline as residual
// content.
package ocr

import (
	"context"
	"errors"
	"image"
)

// DefaultPrompt asks a grounding-capable model for tagged markdown.
const DefaultPrompt = "<image>\n<|grounding|>Convert the document to markdown."

// ErrNotEnabled is returned by engines whose native backend was not
// compiled in. Rebuild with -tags ocr to enable Tesseract support.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Input is one page raster handed to an engine.
type Input struct {
	// Name identifies the source document in error messages.
	Name string

	// Image is the page raster to recognize.
	Image image.Image

	// PageIndex is the zero-based page number within the source.
	PageIndex int

	// Prompt overrides DefaultPrompt when non-empty. Engines without
	// prompt support ignore it.
	Prompt string
}

// Result carries the raw recognizer output for one page.
type Result struct {
	Text string
}

// Engine recognizes text on page rasters. Implementations must be safe
// for concurrent use; batch hosts share one engine across workers.
type Engine interface {
	// Name reports the identifier used for engine selection and logs.
	Name() string

	// Recognize runs OCR on one page raster.
	Recognize(ctx context.Context, in Input) (Result, error)
}

func (in Input) prompt() string {
	if in.Prompt != "" {
		return in.Prompt
	}
	return DefaultPrompt
}
