package scanner

import (
	"strings"
	"testing"

	"github.com/tsawler/folio/model"
)

// ============================================================================
// Well-Formed Input Tests
// ============================================================================

func TestScanTwoTaggedSegments(t *testing.T) {
	input := "<|ref|>title<|/ref|><|det|>[[0,0,100,20]]<|/det|>\nHello\n\n" +
		"<|ref|>text<|/ref|><|det|>[[0,25,100,60]]<|/det|>\nWorld"

	segs := Scan(input)
	if len(segs) != 2 {
		t.Fatalf("Scan() returned %d segments, want 2", len(segs))
	}

	first := segs[0]
	if first.Kind != Tagged {
		t.Errorf("segment 0 kind = %v, want Tagged", first.Kind)
	}
	if first.Label != "title" {
		t.Errorf("segment 0 label = %q, want %q", first.Label, "title")
	}
	if len(first.Boxes) != 1 || first.Boxes[0] != model.NewRegion(0, 0, 100, 20) {
		t.Errorf("segment 0 boxes = %+v, want [[0,0,100,20]]", first.Boxes)
	}
	if strings.TrimSpace(first.Content) != "Hello" {
		t.Errorf("segment 0 content = %q, want %q", first.Content, "Hello")
	}

	second := segs[1]
	if second.Label != "text" {
		t.Errorf("segment 1 label = %q, want %q", second.Label, "text")
	}
	if strings.TrimSpace(second.Content) != "World" {
		t.Errorf("segment 1 content = %q, want %q", second.Content, "World")
	}
}

func TestScanMultipleBoxes(t *testing.T) {
	input := "<|ref|>table<|/ref|><|det|>[[0, 10, 500, 300], [0, 320, 500, 600]]<|/det|>| a | b |"

	segs := Scan(input)
	if len(segs) != 1 {
		t.Fatalf("Scan() returned %d segments, want 1", len(segs))
	}
	want := []model.Region{
		model.NewRegion(0, 10, 500, 300),
		model.NewRegion(0, 320, 500, 600),
	}
	if len(segs[0].Boxes) != 2 || segs[0].Boxes[0] != want[0] || segs[0].Boxes[1] != want[1] {
		t.Errorf("Boxes = %+v, want %+v", segs[0].Boxes, want)
	}
}

func TestScanLeadingResidual(t *testing.T) {
	input := "stray text\n<|ref|>text<|/ref|><|det|>[[0,0,10,10]]<|/det|>body"

	segs := Scan(input)
	if len(segs) != 2 {
		t.Fatalf("Scan() returned %d segments, want 2", len(segs))
	}
	if segs[0].Kind != Residual {
		t.Errorf("segment 0 kind = %v, want Residual", segs[0].Kind)
	}
	if strings.TrimSpace(segs[0].Content) != "stray text" {
		t.Errorf("segment 0 content = %q, want %q", segs[0].Content, "stray text")
	}
	if segs[1].Kind != Tagged {
		t.Errorf("segment 1 kind = %v, want Tagged", segs[1].Kind)
	}
}

func TestScanUntaggedInput(t *testing.T) {
	segs := Scan("just a plain line\nand another")
	if len(segs) != 1 {
		t.Fatalf("Scan() returned %d segments, want 1", len(segs))
	}
	if segs[0].Kind != Residual {
		t.Errorf("kind = %v, want Residual", segs[0].Kind)
	}
}

func TestScanEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "  \n\t\n"},
		{"grounding marker only", "<|grounding|>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if segs := Scan(tt.input); len(segs) != 0 {
				t.Errorf("Scan(%q) returned %d segments, want 0", tt.input, len(segs))
			}
		})
	}
}

// ============================================================================
// Content Cleanup Tests
// ============================================================================

func TestScanStripsGroundingMarker(t *testing.T) {
	input := "<|grounding|><|ref|>text<|/ref|><|det|>[[0,0,10,10]]<|/det|>hello <|grounding|>there"

	segs := Scan(input)
	if len(segs) != 1 {
		t.Fatalf("Scan() returned %d segments, want 1", len(segs))
	}
	if strings.Contains(segs[0].Content, "<|grounding|>") {
		t.Errorf("content %q still contains grounding marker", segs[0].Content)
	}
	if strings.TrimSpace(segs[0].Content) != "hello there" {
		t.Errorf("content = %q, want %q", segs[0].Content, "hello there")
	}
}

func TestScanColoneqRewrites(t *testing.T) {
	input := `<|ref|>text<|/ref|><|det|>[[0,0,10,10]]<|/det|>x \coloneqq 1, 2 \eqqcolon y`

	segs := Scan(input)
	if len(segs) != 1 {
		t.Fatalf("Scan() returned %d segments, want 1", len(segs))
	}
	want := "x := 1, 2 =: y"
	if strings.TrimSpace(segs[0].Content) != want {
		t.Errorf("content = %q, want %q", segs[0].Content, want)
	}
}

// ============================================================================
// Malformed Input Recovery Tests
// ============================================================================

func TestScanMalformedTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated ref", "<|ref|>title and nothing else"},
		{"missing det", "<|ref|>title<|/ref|>no geometry here"},
		{"det not adjacent", "<|ref|>title<|/ref|> <|det|>[[0,0,10,10]]<|/det|>x"},
		{"unterminated det", "<|ref|>title<|/ref|><|det|>[[0,0,10"},
		{"non-numeric coords", "<|ref|>title<|/ref|><|det|>[[a,b,c,d]]<|/det|>x"},
		{"too few coords", "<|ref|>title<|/ref|><|det|>[[1,2,3]]<|/det|>x"},
		{"empty det", "<|ref|>title<|/ref|><|det|>[]<|/det|>x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Scan(tt.input)
			if len(segs) != 1 {
				t.Fatalf("Scan(%q) returned %d segments, want 1", tt.input, len(segs))
			}
			if segs[0].Kind != Residual {
				t.Errorf("kind = %v, want Residual (recovered)", segs[0].Kind)
			}
		})
	}
}

func TestScanRecoversAfterMalformedTag(t *testing.T) {
	// A broken tag in the middle of the stream must not swallow the
	// well-formed tag that follows it.
	input := "<|ref|>broken<|/ref|>oops " +
		"<|ref|>text<|/ref|><|det|>[[0,0,50,50]]<|/det|>good"

	segs := Scan(input)
	if len(segs) != 2 {
		t.Fatalf("Scan() returned %d segments, want 2", len(segs))
	}
	if segs[0].Kind != Residual {
		t.Errorf("segment 0 kind = %v, want Residual", segs[0].Kind)
	}
	if segs[1].Kind != Tagged || strings.TrimSpace(segs[1].Content) != "good" {
		t.Errorf("segment 1 = %+v, want tagged %q", segs[1], "good")
	}
}

func TestScanExtraCoordinatesKeptToFour(t *testing.T) {
	input := "<|ref|>image<|/ref|><|det|>[[1,2,3,4,5]]<|/det|>"

	segs := Scan(input)
	if len(segs) != 1 || segs[0].Kind != Tagged {
		t.Fatalf("Scan() = %+v, want one tagged segment", segs)
	}
	if segs[0].Boxes[0] != model.NewRegion(1, 2, 3, 4) {
		t.Errorf("box = %+v, want [1 2 3 4]", segs[0].Boxes[0])
	}
}

// ============================================================================
// Round-Trip and Restartability Tests
// ============================================================================

func TestScanContentRoundTrip(t *testing.T) {
	// Reassembling segment contents in scan order reproduces the
	// stream with only the tag delimiters removed.
	parts := []string{"\nHello there\n\n", "\nfinal words"}
	input := "<|ref|>title<|/ref|><|det|>[[0,0,100,20]]<|/det|>" + parts[0] +
		"<|ref|>text<|/ref|><|det|>[[0,25,100,60]]<|/det|>" + parts[1]

	segs := Scan(input)
	if len(segs) != 2 {
		t.Fatalf("Scan() returned %d segments, want 2", len(segs))
	}

	var rebuilt strings.Builder
	for _, seg := range segs {
		rebuilt.WriteString(seg.Content)
	}
	if rebuilt.String() != parts[0]+parts[1] {
		t.Errorf("reassembled content = %q, want %q", rebuilt.String(), parts[0]+parts[1])
	}
}

func TestScannerReset(t *testing.T) {
	s := New("<|ref|>text<|/ref|><|det|>[[0,0,10,10]]<|/det|>abc")

	first, ok := s.Next()
	if !ok {
		t.Fatal("Next() = false on fresh scanner")
	}
	if _, ok := s.Next(); ok {
		t.Fatal("Next() = true after final segment")
	}

	s.Reset()
	again, ok := s.Next()
	if !ok {
		t.Fatal("Next() = false after Reset")
	}
	if again.Content != first.Content || again.Label != first.Label {
		t.Errorf("after Reset got %+v, want %+v", again, first)
	}
}

func TestScanDeterministic(t *testing.T) {
	input := "lead <|ref|>title<|/ref|><|det|>[[0,0,9,9]]<|/det|>one" +
		"<|ref|>bad<|/ref|>middle<|ref|>text<|/ref|><|det|>[[0,10,9,19]]<|/det|>two"

	a := Scan(input)
	b := Scan(input)
	if len(a) != len(b) {
		t.Fatalf("scan lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Content != b[i].Content || a[i].Pos != b[i].Pos {
			t.Errorf("segment %d differs between scans: %+v vs %+v", i, a[i], b[i])
		}
	}
}
