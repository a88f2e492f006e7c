package folio_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tsawler/folio"
	"github.com/tsawler/folio/ocr"
)

// These examples verify the README code samples compile correctly.
// They are not meant to be run as actual tests since they require files
// and a running OCR backend.

func Example_convertToMarkdown() {
	engine, err := ocr.NewHTTP(ocr.DefaultHTTPConfig("http://localhost:8000/ocr"))
	if err != nil {
		log.Fatal(err)
	}

	md, warnings, err := folio.Convert("scan.pdf").
		WithEngine(engine).
		OutputDir("out").
		Markdown()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(md)

	if len(warnings) > 0 {
		log.Println("Warnings:", folio.FormatWarnings(warnings))
	}
}

func Example_convertToDocx() {
	engine, err := ocr.NewHTTP(ocr.DefaultHTTPConfig("http://localhost:8000/ocr"))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	path, warnings, err := folio.Convert("scan.pdf").
		WithEngine(engine).
		WithContext(ctx).
		DPI(300). // render PDF pages at 300 DPI
		OutputDir("out").
		Docx()
	_ = path
	_ = warnings
	_ = err
}

func Example_fromTagged() {
	// Text already recognized by a grounding-capable model converts
	// without an engine; pass nil when the raster is unavailable.
	tagged := "<|ref|>title<|/ref|><|det|>[[100,50,900,120]]<|/det|>Hello"

	doc, _, err := folio.FromTagged("page", tagged, nil).Document()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(doc.PageCount(), "pages,", doc.BlockCount(), "blocks")
}

func Example_geminiEngine() {
	ctx := context.Background()

	engine, err := ocr.NewGemini(ctx, "YOUR_API_KEY", "")
	if err != nil {
		log.Fatal(err)
	}

	md := folio.MustResult(folio.Convert("scan.png").
		WithEngine(engine).
		WithContext(ctx).
		Markdown())
	fmt.Println(md)
}
