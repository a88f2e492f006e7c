// Package docx writes Office Open XML (.docx) documents from the
// parsed document model.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/tsawler/folio/model"
)

// escapeCleaner removes LaTeX and Markdown escape sequences that read
// as noise in a word-processing document.
var escapeCleaner = strings.NewReplacer(
	`\(`, "(", `\)`, ")",
	`\[`, "[", `\]`, "]",
	`\{`, "{", `\}`, "}",
	`\%`, "%", `\_`, "_",
	`\#`, "#", `\&`, "&",
	`\$`, "$",
)

// Skip records a block the writer left out of the output and why.
type Skip struct {
	Page   int
	Reason string
}

// mediaPart is an image payload embedded in the package.
type mediaPart struct {
	Name  string // part name relative to word/, e.g. media/image1.jpeg
	RelID string
	Data  []byte
}

// Writer renders documents into DOCX packages. Relative asset paths on
// image blocks are resolved against the configured directory.
type Writer struct {
	assetDir string
}

// NewWriter returns a Writer that resolves image asset paths against
// dir. An empty dir resolves against the working directory.
func NewWriter(dir string) *Writer {
	return &Writer{assetDir: dir}
}

// Write renders doc into out as a complete DOCX package. Image blocks
// whose asset is missing, empty, or undecodable are skipped and
// reported; no per-block failure aborts the render.
func (w *Writer) Write(doc *model.Document, out io.Writer) ([]Skip, error) {
	var (
		skips    []Skip
		elements []any
		media    []mediaPart
	)

	for _, page := range doc.Pages {
		for _, block := range page.Blocks {
			content := escapeCleaner.Replace(strings.TrimSpace(block.Content))
			if content == "" && block.Type != model.Image {
				continue
			}

			switch block.Type {
			case model.Title:
				elements = append(elements, headingParagraph(content))
			case model.Image:
				parts, part, skip := w.imageParagraphs(block, content, len(media)+1)
				if skip != nil {
					skips = append(skips, *skip)
					continue
				}
				media = append(media, *part)
				elements = append(elements, parts...)
			case model.Table:
				if tbl := tableElement(content); tbl != nil {
					// Trailing empty paragraph keeps consecutive tables
					// apart and gives the table breathing room.
					elements = append(elements, tbl, &paragraphXML{})
				} else {
					elements = append(elements, textParagraph(content))
				}
			case model.Code:
				elements = append(elements, codeParagraph(content))
			case model.Formula:
				elements = append(elements, formulaParagraph(content))
			default:
				elements = append(elements, textParagraph(content))
			}
		}
	}

	if len(elements) == 0 {
		elements = append(elements, &paragraphXML{})
	}

	return skips, writePackage(out, elements, media)
}

// imageParagraphs builds the centered picture paragraph for an image
// block, plus a caption paragraph when the block carries one. The
// returned Skip is non-nil when the asset cannot be embedded.
func (w *Writer) imageParagraphs(block model.Block, caption string, seq int) ([]any, *mediaPart, *Skip) {
	if block.AssetPath == "" {
		return nil, nil, &Skip{Page: block.PageIndex, Reason: "image block has no extracted asset"}
	}

	full := filepath.Join(w.assetDir, filepath.FromSlash(block.AssetPath))
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, nil, &Skip{Page: block.PageIndex, Reason: fmt.Sprintf("reading image asset: %v", err)}
	}
	if len(data) == 0 {
		return nil, nil, &Skip{Page: block.PageIndex, Reason: fmt.Sprintf("image asset %s is empty", block.AssetPath)}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, nil, &Skip{Page: block.PageIndex, Reason: fmt.Sprintf("image asset %s is not decodable", block.AssetPath)}
	}

	widthIn := float64(cfg.Width) / pixelsPerInch
	if widthIn > maxImageWidthInches {
		widthIn = maxImageWidthInches
	}
	heightIn := widthIn * float64(cfg.Height) / float64(cfg.Width)

	part := &mediaPart{
		Name:  fmt.Sprintf("media/image%d.%s", seq, format),
		RelID: fmt.Sprintf("rId%d", firstMediaRel+seq-1),
		Data:  data,
	}

	parts := []any{imageParagraph(part.RelID, seq, int64(widthIn*emuPerInch), int64(heightIn*emuPerInch))}
	if caption != "" {
		parts = append(parts, captionParagraph(caption))
	}
	return parts, part, nil
}

// headingParagraph builds a level-2 heading: bold 14 pt with fixed
// space above and below.
func headingParagraph(content string) *paragraphXML {
	p := &paragraphXML{
		Props: &paragraphPropsXML{
			Style:   &styleRefXML{Val: styleHeading},
			Spacing: &spacingXML{Before: headingSpaceAbove, After: headingSpaceBelow},
		},
	}
	for _, run := range splitRuns(content) {
		props := &runPropsXML{
			Bold:   &boldXML{},
			Color:  &colorXML{Val: headingColor},
			Size:   &sizeXML{Val: headingHalfPoints},
			SizeCs: &sizeCsXML{Val: headingHalfPoints},
		}
		if run.Italic {
			props.Italic = &italicXML{}
		}
		if run.Code {
			props.Fonts = &fontsXML{ASCII: codeFont, HAnsi: codeFont}
		}
		p.Runs = append(p.Runs, makeRun(run.Text, props))
	}
	return p
}

// textParagraph builds a body paragraph in the Normal style, splitting
// inline emphasis markers into styled runs.
func textParagraph(content string) *paragraphXML {
	p := &paragraphXML{
		Props: &paragraphPropsXML{Justify: &justificationXML{Val: "left"}},
	}
	for _, run := range splitRuns(content) {
		p.Runs = append(p.Runs, makeRun(run.Text, inlineProps(run)))
	}
	return p
}

// inlineProps converts inline styling to run properties. Plain runs
// carry none and inherit the Normal style.
func inlineProps(run styledRun) *runPropsXML {
	if !run.Bold && !run.Italic && !run.Code {
		return nil
	}
	props := &runPropsXML{}
	if run.Code {
		props.Fonts = &fontsXML{ASCII: codeFont, HAnsi: codeFont}
		props.Shade = &shadeXML{Val: "clear", Color: "auto", Fill: codeShadeFill}
	}
	if run.Bold {
		props.Bold = &boldXML{}
	}
	if run.Italic {
		props.Italic = &italicXML{}
	}
	return props
}

// codeParagraph builds a single-spaced monospace paragraph on a light
// gray fill.
func codeParagraph(content string) *paragraphXML {
	props := &runPropsXML{
		Fonts:  &fontsXML{ASCII: codeFont, HAnsi: codeFont, CS: codeFont},
		Size:   &sizeXML{Val: codeHalfPoints},
		SizeCs: &sizeCsXML{Val: codeHalfPoints},
		Shade:  &shadeXML{Val: "clear", Color: "auto", Fill: codeShadeFill},
	}
	return &paragraphXML{
		Props: &paragraphPropsXML{Style: &styleRefXML{Val: styleNoSpacing}},
		Runs:  []runXML{makeRun(content, props)},
	}
}

// formulaParagraph builds a centered italic paragraph at 11 pt.
func formulaParagraph(content string) *paragraphXML {
	props := &runPropsXML{
		Italic: &italicXML{},
		Size:   &sizeXML{Val: formulaHalfPoints},
		SizeCs: &sizeCsXML{Val: formulaHalfPoints},
	}
	return &paragraphXML{
		Props: &paragraphPropsXML{Justify: &justificationXML{Val: "center"}},
		Runs:  []runXML{makeRun(content, props)},
	}
}

// captionParagraph builds the centered gray italic line under an image.
func captionParagraph(content string) *paragraphXML {
	props := &runPropsXML{
		Italic: &italicXML{},
		Color:  &colorXML{Val: captionColor},
		Size:   &sizeXML{Val: captionHalfPoints},
		SizeCs: &sizeCsXML{Val: captionHalfPoints},
	}
	return &paragraphXML{
		Props: &paragraphPropsXML{Justify: &justificationXML{Val: "center"}},
		Runs:  []runXML{makeRun(content, props)},
	}
}

// imageParagraph builds the centered paragraph holding an inline
// picture sized in EMUs.
func imageParagraph(relID string, id int, cx, cy int64) *paragraphXML {
	name := fmt.Sprintf("Picture %d", id)
	drawing := drawingXML{
		Inline: inlineXML{
			Extent:   extentXML{CX: cx, CY: cy},
			DocProps: docPropsXML{ID: id, Name: name},
			Graphic: graphicXML{
				Data: graphicDataXML{
					URI: nsPic,
					Pic: picXML{
						NvPicPr:  nvPicPrXML{CNvPr: cnvPrXML{ID: id, Name: name}},
						BlipFill: blipFillXML{Blip: blipXML{Embed: relID}},
						SpPr: shapePropsXML{
							Xfrm: xfrmXML{Ext: extentEmuXML{CX: cx, CY: cy}},
							Geom: presetGeomXML{Prst: "rect"},
						},
					},
				},
			},
		},
	}
	return &paragraphXML{
		Props: &paragraphPropsXML{Justify: &justificationXML{Val: "center"}},
		Runs:  []runXML{{Content: []any{drawing}}},
	}
}

// tableElement converts table content to a bordered grid with a bold
// header row. Returns nil when the content has no parseable rows.
func tableElement(content string) *tableXML {
	rows := parseRows(content)
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}

	cols := len(rows[0])
	tbl := &tableXML{
		Props: tableProps(),
		Grid:  tableGridXML{Cols: make([]gridColXML, cols)},
	}

	for i, row := range rows {
		tr := tableRowXML{}
		for j := 0; j < cols; j++ {
			var text string
			if j < len(row) {
				text = row[j]
			}
			props := &runPropsXML{
				Size:   &sizeXML{Val: bodyHalfPoints},
				SizeCs: &sizeCsXML{Val: bodyHalfPoints},
			}
			if i == 0 {
				props.Bold = &boldXML{}
			}
			tr.Cells = append(tr.Cells, tableCellXML{
				Paragraphs: []paragraphXML{{Runs: []runXML{makeRun(text, props)}}},
			})
		}
		tbl.Rows = append(tbl.Rows, tr)
	}
	return tbl
}

func tableProps() tablePropsXML {
	border := func(side string) borderXML {
		return borderXML{
			XMLName: xml.Name{Local: side},
			Val:     "single",
			Size:    4,
			Space:   0,
			Color:   "auto",
		}
	}
	return tablePropsXML{
		Width: tableWidthXML{W: 0, Type: "auto"},
		Borders: tableBordersXML{
			Top:     border("w:top"),
			Left:    border("w:left"),
			Bottom:  border("w:bottom"),
			Right:   border("w:right"),
			InsideH: border("w:insideH"),
			InsideV: border("w:insideV"),
		},
	}
}

// makeRun builds a run from text, converting embedded newlines to line
// breaks.
func makeRun(text string, props *runPropsXML) runXML {
	r := runXML{Props: props}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			r.Content = append(r.Content, breakXML{})
		}
		if line != "" {
			r.Content = append(r.Content, textXML{Space: "preserve", Value: line})
		}
	}
	return r
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// writePackage assembles the ZIP container.
func writePackage(out io.Writer, elements []any, media []mediaPart) error {
	zw := zip.NewWriter(out)

	document := documentXML{
		NSW:   nsW,
		NSR:   nsR,
		NSWP:  nsWP,
		NSA:   nsA,
		NSPic: nsPic,
		Body:  bodyXML{Elements: elements, Sect: sectProps()},
	}

	parts := []struct {
		name    string
		content any
	}{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRels()},
		{"word/document.xml", document},
		{"word/styles.xml", stylesPart()},
		{"word/footer1.xml", footerPart()},
		{"word/_rels/document.xml.rels", documentRels(media)},
	}
	for _, part := range parts {
		if err := writeXMLPart(zw, part.name, part.content); err != nil {
			return err
		}
	}

	for _, m := range media {
		f, err := zw.Create("word/" + m.Name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", m.Name, err)
		}
		if _, err := f.Write(m.Data); err != nil {
			return fmt.Errorf("writing %s: %w", m.Name, err)
		}
	}

	return zw.Close()
}

// writeXMLPart marshals one XML part into the archive.
func writeXMLPart(zw *zip.Writer, name string, content any) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := io.WriteString(f, xmlHeader); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := xml.NewEncoder(f).Encode(content); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return nil
}
