// Package scanner tokenizes OCR output annotated with grounding tags
// into a flat sequence of segments. The grammar is machine-generated
// and imperfect, so the scanner recovers from malformed tags instead of
// failing: any span it cannot parse is downgraded to an untagged
// residual segment and scanning continues at the next tag.
package scanner

import (
	"strconv"
	"strings"

	"github.com/tsawler/folio/model"
)

// Grounding tag delimiters as emitted by the OCR model.
const (
	refOpen  = "<|ref|>"
	refClose = "<|/ref|>"
	detOpen  = "<|det|>"
	detClose = "<|/det|>"

	groundingMark = "<|grounding|>"
)

// SegmentKind distinguishes how a span of input was recognized.
type SegmentKind int

const (
	// Tagged is a well-formed grounding tag: a type label, one or more
	// coordinate quadruples, and the content up to the next tag.
	Tagged SegmentKind = iota

	// Residual is plain text outside any tag pair, including malformed
	// tags recovered as text.
	Residual
)

func (k SegmentKind) String() string {
	if k == Tagged {
		return "Tagged"
	}
	return "Residual"
}

// Segment is one scanned span of the annotated input.
type Segment struct {
	Kind  SegmentKind
	Label string // type label, empty for Residual

	// Boxes holds the tag's coordinate quadruples in the normalized
	// 0-999 space, passed through unscaled.
	Boxes []model.Region

	Content string

	// Pos is the byte offset of the span in the original input.
	Pos int
}

// cleanup applies the content normalizations the OCR model requires:
// grounding markers are dropped and its nonstandard coloneq escapes are
// rewritten to plain text.
var cleanup = strings.NewReplacer(
	groundingMark, "",
	`\coloneqq`, ":=",
	`\eqqcolon`, "=:",
)

// Scanner walks an annotated input string segment by segment. The zero
// value is not usable; create one with New.
type Scanner struct {
	input string
	pos   int
}

// New creates a scanner over the given annotated input.
func New(input string) *Scanner {
	return &Scanner{input: input}
}

// Reset rewinds the scanner to the start of its input.
func (s *Scanner) Reset() {
	s.pos = 0
}

// Next returns the next segment. The second return is false once the
// input is exhausted.
func (s *Scanner) Next() (Segment, bool) {
	for s.pos < len(s.input) {
		rest := s.input[s.pos:]

		tagStart := strings.Index(rest, refOpen)
		if tagStart < 0 {
			// No more tags; the remainder is residual text.
			seg, ok := s.residual(s.pos, s.input[s.pos:])
			s.pos = len(s.input)
			if ok {
				return seg, true
			}
			return Segment{}, false
		}

		if tagStart > 0 {
			// Plain text before the tag.
			seg, ok := s.residual(s.pos, rest[:tagStart])
			s.pos += tagStart
			if ok {
				return seg, true
			}
			continue
		}

		// Cursor is at a tag opener.
		seg, next, ok := s.scanTagged(s.pos)
		if !ok {
			// Malformed tag: everything up to the next opener becomes
			// residual text.
			recoverEnd := s.nextTagFrom(s.pos + len(refOpen))
			seg, emit := s.residual(s.pos, s.input[s.pos:recoverEnd])
			s.pos = recoverEnd
			if emit {
				return seg, true
			}
			continue
		}
		s.pos = next
		return seg, true
	}
	return Segment{}, false
}

// scanTagged parses one tagged segment starting at offset start, which
// must point at a refOpen. Returns the segment, the offset to resume
// at, and whether the tag was well formed.
func (s *Scanner) scanTagged(start int) (Segment, int, bool) {
	cursor := start + len(refOpen)

	labelEnd := strings.Index(s.input[cursor:], refClose)
	if labelEnd < 0 {
		return Segment{}, 0, false
	}
	label := strings.TrimSpace(s.input[cursor : cursor+labelEnd])
	cursor += labelEnd + len(refClose)

	// The geometry delimiter must immediately follow the label.
	if !strings.HasPrefix(s.input[cursor:], detOpen) {
		return Segment{}, 0, false
	}
	cursor += len(detOpen)

	coordEnd := strings.Index(s.input[cursor:], detClose)
	if coordEnd < 0 {
		return Segment{}, 0, false
	}
	boxes, ok := parseBoxes(s.input[cursor : cursor+coordEnd])
	if !ok {
		return Segment{}, 0, false
	}
	cursor += coordEnd + len(detClose)

	contentEnd := s.nextTagFrom(cursor)
	content := cleanup.Replace(s.input[cursor:contentEnd])

	seg := Segment{
		Kind:    Tagged,
		Label:   label,
		Boxes:   boxes,
		Content: content,
		Pos:     start,
	}
	return seg, contentEnd, true
}

// nextTagFrom returns the offset of the next tag opener at or after
// from, or the end of input.
func (s *Scanner) nextTagFrom(from int) int {
	if from >= len(s.input) {
		return len(s.input)
	}
	if i := strings.Index(s.input[from:], refOpen); i >= 0 {
		return from + i
	}
	return len(s.input)
}

// residual builds an untagged segment from a raw span. Spans that are
// blank after cleanup produce no segment.
func (s *Scanner) residual(pos int, raw string) (Segment, bool) {
	content := cleanup.Replace(raw)
	if strings.TrimSpace(content) == "" {
		return Segment{}, false
	}
	return Segment{Kind: Residual, Content: content, Pos: pos}, true
}

// parseBoxes parses a det payload of the form
// [[x1, y1, x2, y2], [x1, y1, x2, y2], ...]. Quadruples with extra
// numbers keep their first four; anything non-numeric fails the tag.
func parseBoxes(payload string) ([]model.Region, bool) {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, "[") || !strings.HasSuffix(payload, "]") {
		return nil, false
	}
	payload = strings.TrimSpace(payload[1 : len(payload)-1])
	if payload == "" {
		return nil, false
	}

	var boxes []model.Region
	for payload != "" {
		open := strings.IndexByte(payload, '[')
		if open < 0 {
			return nil, false
		}
		end := strings.IndexByte(payload[open:], ']')
		if end < 0 {
			return nil, false
		}
		quad := payload[open+1 : open+end]

		coords, ok := parseQuad(quad)
		if !ok {
			return nil, false
		}
		boxes = append(boxes, model.NewRegion(coords[0], coords[1], coords[2], coords[3]))

		payload = strings.TrimSpace(payload[open+end+1:])
		payload = strings.TrimPrefix(payload, ",")
		payload = strings.TrimSpace(payload)
	}
	if len(boxes) == 0 {
		return nil, false
	}
	return boxes, true
}

// parseQuad parses at least four comma-separated integers, keeping the
// first four.
func parseQuad(quad string) ([4]int, bool) {
	var coords [4]int
	parts := strings.Split(quad, ",")
	if len(parts) < 4 {
		return coords, false
	}
	for i := 0; i < 4; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return coords, false
		}
		coords[i] = n
	}
	return coords, true
}

// Scan tokenizes the whole input in one call. It is equivalent to
// draining a fresh Scanner and is safe to call repeatedly: the result
// is a pure function of the input.
func Scan(input string) []Segment {
	s := New(input)
	var segs []Segment
	for {
		seg, ok := s.Next()
		if !ok {
			return segs
		}
		segs = append(segs, seg)
	}
}
