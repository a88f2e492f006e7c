// Package builder maps scanned segments onto typed blocks. Type labels
// from the OCR model are matched against a closed synonym table; when a
// label is absent or unrecognized, classification falls back to an
// ordered chain of content heuristics. The chain is deterministic and
// order-sensitive: earlier rules win.
package builder

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/scanner"
)

// Config holds the classification thresholds. The defaults follow the
// OCR model's observed output; hosts tune them rather than patching the
// rule chain.
type Config struct {
	// MaxTitleLength is the longest content, in runes, the title
	// heuristic will accept.
	MaxTitleLength int

	// FormulaDominance is the minimum share of content runes that must
	// sit inside math delimiters for the formula heuristic to fire.
	FormulaDominance float64

	// MinPipeCount is the minimum number of '|' on a single line for
	// the table heuristic.
	MinPipeCount int
}

// DefaultConfig returns the default classification thresholds.
func DefaultConfig() Config {
	return Config{
		MaxTitleLength:   60,
		FormulaDominance: 0.6,
		MinPipeCount:     2,
	}
}

// labelTypes collapses the OCR model's type labels, lowercased, onto
// block types.
var labelTypes = map[string]model.BlockType{
	"title":        model.Title,
	"heading":      model.Title,
	"header":       model.Title,
	"header_title": model.Title,
	"text":         model.Text,
	"paragraph":    model.Text,
	"image":        model.Image,
	"figure":       model.Image,
	"picture":      model.Image,
	"table":        model.Table,
	"formula":      model.Formula,
	"equation":     model.Formula,
	"math":         model.Formula,
	"code":         model.Code,
	"algorithm":    model.Code,
}

// ResolveLabel maps an OCR type label onto a block type. The second
// return reports whether the label was recognized; unrecognized labels
// leave classification to the content heuristics.
func ResolveLabel(label string) (model.BlockType, bool) {
	bt, ok := labelTypes[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return model.Unknown, false
	}
	return bt, true
}

// Builder converts scanner segments into model blocks. A Builder is
// stateless apart from its thresholds and is safe for concurrent use.
type Builder struct {
	config Config
}

// New creates a builder with default thresholds.
func New() *Builder {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a builder with custom thresholds.
func NewWithConfig(config Config) *Builder {
	return &Builder{config: config}
}

// BuildAll maps segments in scan order onto blocks for one page.
// Segments whose content is empty after normalization are dropped
// unless they describe an image (image regions carry no text).
func (b *Builder) BuildAll(segs []scanner.Segment, pageIndex int) []model.Block {
	blocks := make([]model.Block, 0, len(segs))
	for i, seg := range segs {
		hasFollowing := i < len(segs)-1
		block, ok := b.build(seg, pageIndex, hasFollowing)
		if ok {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// Build maps a single segment onto a block. The boolean reports whether
// the segment produced a block at all; empty non-image segments do not.
func (b *Builder) Build(seg scanner.Segment, pageIndex int) (model.Block, bool) {
	return b.build(seg, pageIndex, false)
}

func (b *Builder) build(seg scanner.Segment, pageIndex int, hasFollowing bool) (model.Block, bool) {
	content := strings.TrimSpace(norm.NFC.String(seg.Content))

	blockType := model.Unknown
	if seg.Kind == scanner.Tagged {
		blockType, _ = ResolveLabel(seg.Label)
	} else if strings.Contains(content, "<|") {
		// A residual still carrying a tag delimiter is a malformed tag
		// the scanner recovered. It stays plain text; the heuristics
		// would read the delimiter pipes as a table row.
		blockType = model.Text
	}
	if blockType == model.Unknown {
		blockType = b.classify(content, hasFollowing)
	}

	if content == "" && blockType != model.Image {
		return model.Block{}, false
	}

	// Blocks store bare content; renderers own the markup. Heading,
	// fence, and math delimiters arriving from the OCR stream are
	// stripped so they are not doubled on output.
	switch blockType {
	case model.Title:
		content = stripHeadingMarker(content)
	case model.Code:
		content = stripFence(content)
	case model.Formula:
		content = stripMathDelimiters(content)
	}

	return model.Block{
		Type:      blockType,
		Regions:   seg.Boxes,
		Content:   content,
		PageIndex: pageIndex,
	}, true
}

// classify resolves a block type from content alone. The precedence is
// fixed: image reference, table, code, formula, title, text.
func (b *Builder) classify(content string, hasFollowing bool) model.BlockType {
	switch {
	case strings.HasPrefix(content, "!["):
		return model.Image
	case b.looksLikeTable(content):
		return model.Table
	case looksLikeCode(content):
		return model.Code
	case b.looksLikeFormula(content):
		return model.Formula
	case b.looksLikeTitle(content, hasFollowing):
		return model.Title
	default:
		return model.Text
	}
}

// looksLikeTable reports whether any line carries enough column
// delimiters to read as a markup table row.
func (b *Builder) looksLikeTable(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.Count(line, "|") >= b.config.MinPipeCount {
			return true
		}
	}
	return false
}

func looksLikeCode(content string) bool {
	return strings.HasPrefix(content, "```")
}

// looksLikeFormula fires when the content opens and closes as display
// math, or when math-delimited spans dominate the content.
func (b *Builder) looksLikeFormula(content string) bool {
	if strings.HasPrefix(content, "$$") && strings.HasSuffix(content, "$$") && len(content) > 4 {
		return true
	}
	total := utf8.RuneCountInString(content)
	if total == 0 {
		return false
	}
	inMath := mathSpanRunes(content)
	return float64(inMath)/float64(total) >= b.config.FormulaDominance
}

// mathSpanRunes counts the runes inside $...$ spans, delimiters
// included. An unpaired trailing $ contributes nothing.
func mathSpanRunes(content string) int {
	var count int
	rest := content
	for {
		open := strings.IndexByte(rest, '$')
		if open < 0 {
			return count
		}
		end := strings.IndexByte(rest[open+1:], '$')
		if end < 0 {
			return count
		}
		span := rest[open : open+end+2]
		count += utf8.RuneCountInString(span)
		rest = rest[open+end+2:]
	}
}

// looksLikeTitle accepts a short single line without terminal
// punctuation, but only when more content follows it; a trailing short
// line is ordinary text.
func (b *Builder) looksLikeTitle(content string, hasFollowing bool) bool {
	if strings.HasPrefix(content, "#") {
		return true
	}
	if !hasFollowing {
		return false
	}
	if content == "" || strings.ContainsRune(content, '\n') {
		return false
	}
	if utf8.RuneCountInString(content) > b.config.MaxTitleLength {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(content)
	return !strings.ContainsRune(".!?,;:。！？，；：", last)
}

// stripHeadingMarker removes markdown heading syntax from title
// content.
func stripHeadingMarker(content string) string {
	return strings.TrimSpace(strings.TrimLeft(content, "#"))
}

// stripFence removes the opening fence line (including any language
// tag) and the closing fence from code content.
func stripFence(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	if nl := strings.IndexByte(content, '\n'); nl >= 0 {
		content = content[nl+1:]
	} else {
		content = strings.TrimLeft(content, "`")
	}
	content = strings.TrimRight(content, "\n `")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimRight(content, "\n ")
}

// stripMathDelimiters removes surrounding $ or $$ from formula
// content.
func stripMathDelimiters(content string) string {
	return strings.TrimSpace(strings.Trim(content, "$"))
}
