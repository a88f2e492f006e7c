// Package folio provides a fluent API for converting OCR grounding
// output into Markdown and DOCX documents.
//
// Basic usage:
//
//	md, warnings, err := folio.Convert("scan.pdf").
//	    WithEngine(engine).
//	    Markdown()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", folio.FormatWarnings(warnings))
//	}
//
// Text already recognized by a grounding-capable model converts
// without an engine:
//
//	doc, _, err := folio.FromTagged("page", taggedText, img).Document()
//
// For advanced use cases, the lower-level scanner, builder, layout,
// extract, markdown and docx packages are also available.
package folio

import (
	"image"
)

// Convert opens an input file (a PDF or a raster image) and returns a
// Converter for fluent configuration. The file is read when a terminal
// operation like Markdown() runs; converting it requires an OCR engine
// set with WithEngine.
//
// Example:
//
//	md, warnings, err := folio.Convert("scan.pdf").WithEngine(engine).Markdown()
func Convert(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromTagged creates a Converter from text already recognized by a
// grounding-capable OCR model, bypassing the engine entirely. name
// becomes the output base name. raster may be nil when the source
// image is unavailable; image blocks are then reported as extraction
// warnings instead of producing assets.
//
// Example:
//
//	doc, warnings, err := folio.FromTagged("page", taggedText, img).Document()
func FromTagged(name, tagged string, raster image.Image) *Converter {
	c := &Converter{
		pages:   []taggedPage{{text: tagged, raster: raster}},
		options: defaultOptions(),
	}
	c.options.name = name
	return c
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := folio.Must(folio.Convert("scan.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is a helper that wraps a terminal operation returning
// (T, []Warning, error) and panics if the error is non-nil. It discards
// warnings and returns just the value. It is intended for use in
// scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	md := folio.MustResult(folio.FromTagged("page", tagged, img).Markdown())
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
