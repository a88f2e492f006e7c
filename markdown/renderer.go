// Package markdown renders a parsed document model as Markdown text.
package markdown

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/folio/model"
)

// inlineFormulaLimit is the longest formula content emitted inline as
// $...$. Longer content and anything spanning multiple lines becomes a
// display block wrapped in $$ delimiters.
const inlineFormulaLimit = 50

// pageSeparator joins the verbatim per-page streams in the raw artifact.
const pageSeparator = "\n\n---\n\n"

// Render converts a document to Markdown. Blocks are emitted in the
// order they appear on each page, separated by blank lines; callers
// establish reading order first (see layout.OrderPage). Pages after the
// first are preceded by an HTML comment recording the 1-based page
// number. Image blocks without an asset path are omitted so the output
// never contains dangling references.
func Render(doc *model.Document) string {
	var sb strings.Builder

	for _, page := range doc.Pages {
		if page.Index > 0 {
			writeChunk(&sb, fmt.Sprintf("<!-- Page %d -->", page.Index+1))
		}
		for _, block := range page.Blocks {
			writeChunk(&sb, renderBlock(block))
		}
	}

	return sb.String()
}

// Raw returns the verbatim tagged text of every page joined by a
// horizontal-rule separator. This is the diagnostic artifact written
// alongside the rendered document as {name}_raw.mmd.
func Raw(doc *model.Document) string {
	raws := make([]string, len(doc.Pages))
	for i, page := range doc.Pages {
		raws[i] = page.Raw
	}
	return strings.Join(raws, pageSeparator)
}

// writeChunk appends text to the builder, inserting a blank-line
// separator after any previous chunk. Empty chunks are dropped.
func writeChunk(sb *strings.Builder, text string) {
	if text == "" {
		return
	}
	if sb.Len() > 0 {
		sb.WriteString("\n\n")
	}
	sb.WriteString(text)
}

// renderBlock converts a single block to its Markdown form. Unknown
// block types pass their content through unchanged.
func renderBlock(b model.Block) string {
	switch b.Type {
	case model.Title:
		return "## " + b.Content
	case model.Image:
		return renderImage(b)
	case model.Table:
		return b.Content
	case model.Code:
		return "```\n" + b.Content + "\n```"
	case model.Formula:
		return renderFormula(b.Content)
	default:
		return b.Content
	}
}

// renderImage emits an image reference for an extracted asset. Blocks
// whose asset was never extracted render as nothing. A non-empty
// content string is treated as the caption and repeated as an italic
// line under the reference.
func renderImage(b model.Block) string {
	if b.AssetPath == "" {
		return ""
	}
	if b.Content != "" {
		return fmt.Sprintf("![%s](%s)\n*%s*", b.Content, b.AssetPath, b.Content)
	}
	return "![](" + b.AssetPath + ")"
}

func renderFormula(content string) string {
	if strings.Contains(content, "\n") || utf8.RuneCountInString(content) > inlineFormulaLimit {
		return "$$\n" + content + "\n$$"
	}
	return "$" + content + "$"
}
