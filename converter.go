package folio

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/folio/builder"
	"github.com/tsawler/folio/docx"
	"github.com/tsawler/folio/extract"
	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/internal/atomicfile"
	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/markdown"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/ocr"
	"github.com/tsawler/folio/raster"
	"github.com/tsawler/folio/scanner"
)

// taggedPage holds one page's recognized text paired with its raster.
// The raster is nil when the source image is unavailable.
type taggedPage struct {
	text   string
	raster image.Image
}

// Converter provides a fluent interface for turning OCR grounding
// output into Markdown or DOCX documents. Each configuration method
// returns a new Converter instance, making it safe for concurrent use
// and allowing method chaining.
type Converter struct {
	// Source (exactly one is populated)
	filename string       // Convert: input file, read by terminal operations
	pages    []taggedPage // FromTagged: pre-recognized pages

	// Context for recognition and rasterization calls
	ctx context.Context

	// Configuration
	options ConvertOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Converter with a deep copy of
// options and pages. This ensures immutability - each chain method
// returns a new instance.
func (c *Converter) clone() *Converter {
	newConv := &Converter{
		filename: c.filename,
		pages:    append([]taggedPage(nil), c.pages...),
		ctx:      c.ctx,
		options:  c.options.clone(),
		err:      c.err,
		warnings: append([]Warning(nil), c.warnings...),
	}
	return newConv
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// WithEngine sets the OCR engine used to recognize page rasters.
// Converters created with Convert require one; converters created with
// FromTagged never invoke it. The converter does not close the engine;
// the caller owns its lifecycle.
//
// Example:
//
//	engine, err := ocr.NewHTTP(ocr.DefaultHTTPConfig("http://localhost:8000/ocr"))
//	if err != nil {
//	    // handle error
//	}
//	md, _, err := folio.Convert("scan.pdf").WithEngine(engine).Markdown()
func (c *Converter) WithEngine(engine ocr.Engine) *Converter {
	newConv := c.clone()
	newConv.options.engine = engine
	return newConv
}

// WithContext sets the context used by terminal operations for OCR
// calls and PDF rasterization. The default is context.Background().
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
//	defer cancel()
//	md, _, err := folio.Convert("scan.pdf").
//	    WithEngine(engine).
//	    WithContext(ctx).
//	    Markdown()
func (c *Converter) WithContext(ctx context.Context) *Converter {
	newConv := c.clone()
	newConv.ctx = ctx
	return newConv
}

// Prompt overrides the prompt sent to the OCR engine. An empty prompt
// keeps the engine's default grounding prompt.
//
// Example:
//
//	md, _, err := folio.Convert("scan.png").
//	    WithEngine(engine).
//	    Prompt("<image>\nFree OCR.").
//	    Markdown()
func (c *Converter) Prompt(prompt string) *Converter {
	newConv := c.clone()
	newConv.options.prompt = prompt
	return newConv
}

// DPI sets the resolution PDF pages are rasterized at. The default is
// raster.DefaultDPI.
//
// Example:
//
//	md, _, err := folio.Convert("scan.pdf").WithEngine(engine).DPI(300).Markdown()
func (c *Converter) DPI(dpi int) *Converter {
	newConv := c.clone()
	newConv.options.dpi = dpi
	return newConv
}

// MaxSide caps the longest side of each raster before recognition;
// larger pages are downscaled preserving aspect ratio. The default is
// raster.MaxSide. Zero disables downscaling.
func (c *Converter) MaxSide(px int) *Converter {
	newConv := c.clone()
	newConv.options.maxSide = px
	return newConv
}

// OutputDir sets the directory terminal operations write their
// artifacts to. It is created on demand. The default is "output".
//
// Example:
//
//	path, _, err := folio.Convert("scan.pdf").
//	    WithEngine(engine).
//	    OutputDir("out").
//	    Docx()
func (c *Converter) OutputDir(dir string) *Converter {
	newConv := c.clone()
	newConv.options.outputDir = dir
	return newConv
}

// ImageDir sets the directory extracted image assets are written to,
// relative to the output directory. The same relative path appears in
// rendered image references, so it doubles as the reference prefix.
// The default is "images".
//
// Example:
//
//	// Keep each document's assets in its own subdirectory.
//	md, _, err := folio.Convert("scan.pdf").
//	    WithEngine(engine).
//	    ImageDir("images/scan").
//	    Markdown()
func (c *Converter) ImageDir(dir string) *Converter {
	newConv := c.clone()
	newConv.options.imageDir = dir
	return newConv
}

// Name overrides the output base name. The default is the input
// filename without its extension, or the name given to FromTagged.
//
// Example:
//
//	// Writes out/report.md instead of out/scan-0042.md.
//	md, _, err := folio.Convert("scan-0042.png").
//	    WithEngine(engine).
//	    OutputDir("out").
//	    Name("report").
//	    Markdown()
func (c *Converter) Name(name string) *Converter {
	newConv := c.clone()
	newConv.options.name = name
	return newConv
}

// Classifier replaces the thresholds used to classify segments whose
// labels are missing or unrecognized. The default is
// builder.DefaultConfig().
func (c *Converter) Classifier(config builder.Config) *Converter {
	newConv := c.clone()
	newConv.options.classifier = config
	return newConv
}

// AddPage appends another pre-recognized page to a converter created
// with FromTagged. Pages render in the order they were added. Calling
// AddPage on a converter created with Convert is an error, surfaced by
// the next terminal operation.
//
// Example:
//
//	md, _, err := folio.FromTagged("report", page1, img1).
//	    AddPage(page2, img2).
//	    Markdown()
func (c *Converter) AddPage(tagged string, raster image.Image) *Converter {
	newConv := c.clone()
	if newConv.filename != "" {
		if newConv.err == nil {
			newConv.err = fmt.Errorf("AddPage requires a converter created with FromTagged")
		}
		return newConv
	}
	newConv.pages = append(newConv.pages, taggedPage{text: tagged, raster: raster})
	return newConv
}

// ============================================================================
// Terminal Operations (execute the pipeline and return results)
// ============================================================================

// PageCount returns the number of pages the input will produce,
// without running recognition. Image inputs count as one page.
//
// Example:
//
//	count, err := folio.Convert("scan.pdf").PageCount()
func (c *Converter) PageCount() (int, error) {
	if c.err != nil {
		return 0, c.err
	}

	if len(c.pages) > 0 {
		return len(c.pages), nil
	}
	if c.filename == "" {
		return 0, fmt.Errorf("no filename specified")
	}

	f, err := format.DetectFile(c.filename)
	if err != nil {
		return 0, err
	}
	switch {
	case f == format.PDF:
		return raster.PageCount(c.filename)
	case f.IsImage():
		return 1, nil
	default:
		return 0, unsupportedInput(c.filename)
	}
}

// Document runs recognition and block assembly and returns the
// resulting document model. Nothing is written to disk: image blocks
// keep an empty AssetPath, and no output directory is created. Use
// Markdown or Docx to produce file artifacts.
//
// Returns the document, any warnings encountered during processing,
// and an error if conversion failed.
//
// Example:
//
//	doc, warnings, err := folio.Convert("scan.pdf").
//	    WithEngine(engine).
//	    Document()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.PageCount(), "pages,", doc.BlockCount(), "blocks")
func (c *Converter) Document() (*model.Document, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	pages, err := c.loadPages(c.context())
	if err != nil {
		return nil, nil, err
	}

	doc, _ := c.buildDocument(pages)
	return doc, c.warnings, nil
}

// Markdown runs the full pipeline and renders the document as
// Markdown. It writes {name}.md, the verbatim {name}_raw.mmd artifact,
// and the extracted image assets under the output directory, and
// returns the rendered Markdown.
//
// Returns the Markdown text, any warnings encountered during
// processing, and an error if conversion failed.
//
// Example:
//
//	md, warnings, err := folio.Convert("scan.pdf").
//	    WithEngine(engine).
//	    OutputDir("out").
//	    Markdown()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", folio.FormatWarnings(warnings))
//	}
func (c *Converter) Markdown() (string, []Warning, error) {
	if c.err != nil {
		return "", nil, c.err
	}

	pages, err := c.loadPages(c.context())
	if err != nil {
		return "", nil, err
	}

	doc, rasters := c.buildDocument(pages)
	if err := c.extractAssets(doc, rasters); err != nil {
		return "", c.warnings, err
	}

	md := markdown.Render(doc)
	if err := c.writeArtifact(doc.Name+".md", []byte(md)); err != nil {
		return "", c.warnings, err
	}
	if err := c.writeArtifact(doc.Name+"_raw.mmd", []byte(markdown.Raw(doc))); err != nil {
		return "", c.warnings, err
	}

	return md, c.warnings, nil
}

// Docx runs the full pipeline and renders the document as a DOCX
// package. It writes {name}.docx, the verbatim {name}_raw.mmd
// artifact, and the extracted image assets under the output directory,
// and returns the path of the written .docx file.
//
// Returns the output path, any warnings encountered during processing,
// and an error if conversion failed.
//
// Example:
//
//	path, warnings, err := folio.Convert("scan.pdf").
//	    WithEngine(engine).
//	    OutputDir("out").
//	    Docx()
func (c *Converter) Docx() (string, []Warning, error) {
	if c.err != nil {
		return "", nil, c.err
	}

	pages, err := c.loadPages(c.context())
	if err != nil {
		return "", nil, err
	}

	doc, rasters := c.buildDocument(pages)
	if err := c.extractAssets(doc, rasters); err != nil {
		return "", c.warnings, err
	}

	var buf bytes.Buffer
	skips, err := docx.NewWriter(c.options.outputDir).Write(doc, &buf)
	if err != nil {
		return "", c.warnings, err
	}
	for _, s := range skips {
		c.warnings = append(c.warnings, Warning{Stage: StageRender, Page: s.Page, Message: s.Reason})
	}

	name := doc.Name + ".docx"
	if err := c.writeArtifact(name, buf.Bytes()); err != nil {
		return "", c.warnings, err
	}
	if err := c.writeArtifact(doc.Name+"_raw.mmd", []byte(markdown.Raw(doc))); err != nil {
		return "", c.warnings, err
	}

	return filepath.Join(c.options.outputDir, name), c.warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// context returns the configured context, defaulting to Background.
func (c *Converter) context() context.Context {
	if c.ctx != nil {
		return c.ctx
	}
	return context.Background()
}

// unsupportedInput builds the fatal error for inputs that are neither
// PDFs nor supported images.
func unsupportedInput(path string) error {
	return fmt.Errorf("%w: %s (supported: pdf, png, jpg, bmp, tiff)", format.ErrUnsupportedFormat, path)
}

// resolveName returns the output base name: the configured name when
// set, otherwise the input filename's stem.
func (c *Converter) resolveName() string {
	if c.options.name != "" {
		return c.options.name
	}
	if c.filename != "" {
		base := filepath.Base(c.filename)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return "document"
}

// loadPages produces one taggedPage per input page. Pre-recognized
// pages pass through untouched; file inputs are rasterized, downscaled,
// and recognized by the configured engine.
func (c *Converter) loadPages(ctx context.Context) ([]taggedPage, error) {
	if len(c.pages) > 0 {
		return c.pages, nil
	}
	if c.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}

	f, err := format.DetectFile(c.filename)
	if err != nil {
		return nil, err
	}

	var rasters []image.Image
	switch {
	case f == format.PDF:
		rasters, err = raster.RasterizePDF(ctx, c.filename, c.options.dpi)
		if err != nil {
			return nil, err
		}
	case f.IsImage():
		img, err := raster.Load(c.filename)
		if err != nil {
			return nil, err
		}
		rasters = []image.Image{img}
	default:
		return nil, unsupportedInput(c.filename)
	}

	if c.options.engine == nil {
		return nil, fmt.Errorf("no OCR engine configured; use WithEngine or FromTagged")
	}

	name := c.resolveName()
	pages := make([]taggedPage, len(rasters))
	for i, img := range rasters {
		// The downscaled raster is used for recognition and cropping
		// both, so tag coordinates and asset crops stay in the same
		// pixel space.
		img = raster.Downscale(img, c.options.maxSide)

		res, err := c.options.engine.Recognize(ctx, ocr.Input{
			Name:      name,
			Image:     img,
			PageIndex: i,
			Prompt:    c.options.prompt,
		})
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages[i] = taggedPage{text: res.Text, raster: img}
	}
	return pages, nil
}

// buildDocument assembles the document model from tagged pages and
// returns it with the per-page rasters, indexed by page, for asset
// extraction.
func (c *Converter) buildDocument(pages []taggedPage) (*model.Document, []image.Image) {
	doc := model.NewDocument(c.resolveName())
	rasters := make([]image.Image, len(pages))
	bld := builder.NewWithConfig(c.options.classifier)

	for i, pg := range pages {
		var w, h int
		if pg.raster != nil {
			b := pg.raster.Bounds()
			w, h = b.Dx(), b.Dy()
		}

		page := model.NewPage(w, h)
		page.Raw = pg.text

		segs := scanner.Scan(pg.text)
		c.noteRecoveries(segs, i)
		page.Blocks = bld.BuildAll(segs, i)
		layout.OrderPage(page)

		doc.AddPage(page)
		rasters[i] = pg.raster
	}
	return doc, rasters
}

// noteRecoveries records a warning for every residual segment that
// still contains a tag delimiter: those are malformed grounding tags
// the scanner kept as plain text.
func (c *Converter) noteRecoveries(segs []scanner.Segment, pageIndex int) {
	for _, seg := range segs {
		if seg.Kind == scanner.Residual && strings.Contains(seg.Content, "<|") {
			c.warnings = append(c.warnings, Warning{
				Stage:   StageScan,
				Page:    pageIndex,
				Message: "malformed grounding tag kept as plain text",
			})
		}
	}
}

// extractAssets writes image-block crops under the image directory and
// converts the extractor's skips into warnings.
func (c *Converter) extractAssets(doc *model.Document, rasters []image.Image) error {
	imageDir := filepath.Join(c.options.outputDir, c.options.imageDir)
	skips, err := extract.Extract(doc, rasters, imageDir, c.options.imageDir)
	if err != nil {
		return err
	}
	for _, s := range skips {
		c.warnings = append(c.warnings, Warning{Stage: StageExtract, Page: s.Page, Message: s.Reason})
	}
	return nil
}

// writeArtifact atomically writes one output file under the output
// directory, creating the directory on demand.
func (c *Converter) writeArtifact(name string, data []byte) error {
	if err := os.MkdirAll(c.options.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := atomicfile.WriteFile(filepath.Join(c.options.outputDir, name), data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
