package markdown

import (
	"strings"
	"testing"

	"github.com/tsawler/folio/builder"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/scanner"
)

func singlePage(blocks ...model.Block) *model.Document {
	doc := model.NewDocument("test")
	page := model.NewPage(1000, 1000)
	page.Blocks = blocks
	doc.AddPage(page)
	return doc
}

// ============================================================================
// Block Rendering Tests
// ============================================================================

func TestRenderBlockTypes(t *testing.T) {
	tests := []struct {
		name  string
		block model.Block
		want  string
	}{
		{
			"title",
			model.Block{Type: model.Title, Content: "Results"},
			"## Results",
		},
		{
			"text",
			model.Block{Type: model.Text, Content: "Plain paragraph."},
			"Plain paragraph.",
		},
		{
			"table verbatim",
			model.Block{Type: model.Table, Content: "| a | b |\n| 1 | 2 |"},
			"| a | b |\n| 1 | 2 |",
		},
		{
			"code fenced",
			model.Block{Type: model.Code, Content: "x := 1"},
			"```\nx := 1\n```",
		},
		{
			"short formula inline",
			model.Block{Type: model.Formula, Content: "E = mc^2"},
			"$E = mc^2$",
		},
		{
			"multiline formula display",
			model.Block{Type: model.Formula, Content: "a = 1\nb = 2"},
			"$$\na = 1\nb = 2\n$$",
		},
		{
			"long formula display",
			model.Block{Type: model.Formula, Content: strings.Repeat("x + ", 20) + "y"},
			"$$\n" + strings.Repeat("x + ", 20) + "y" + "\n$$",
		},
		{
			"image with asset",
			model.Block{Type: model.Image, AssetPath: "images/image_0.jpg"},
			"![](images/image_0.jpg)",
		},
		{
			"image with caption",
			model.Block{Type: model.Image, Content: "Figure 1", AssetPath: "images/image_1.jpg"},
			"![Figure 1](images/image_1.jpg)\n*Figure 1*",
		},
		{
			"unknown passes through",
			model.Block{Type: model.Unknown, Content: "leftover"},
			"leftover",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(singlePage(tt.block))
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderTitleThenText(t *testing.T) {
	doc := singlePage(
		model.Block{Type: model.Title, Content: "Hello"},
		model.Block{Type: model.Text, Content: "World"},
	)

	got := Render(doc)
	want := "## Hello\n\nWorld"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderOmitsDanglingImages(t *testing.T) {
	doc := singlePage(
		model.Block{Type: model.Text, Content: "Before"},
		model.Block{Type: model.Image},
		model.Block{Type: model.Text, Content: "After"},
	)

	got := Render(doc)
	want := "Before\n\nAfter"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if strings.Contains(got, "![") {
		t.Errorf("Render() emitted a reference for an image without an asset: %q", got)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	doc := model.NewDocument("empty")
	if got := Render(doc); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

// ============================================================================
// Multi-Page Tests
// ============================================================================

func TestRenderPageMarkers(t *testing.T) {
	doc := model.NewDocument("pages")

	first := model.NewPage(1000, 1000)
	first.Blocks = []model.Block{{Type: model.Text, Content: "First"}}
	doc.AddPage(first)

	second := model.NewPage(1000, 1000)
	second.Blocks = []model.Block{{Type: model.Text, Content: "Second"}}
	doc.AddPage(second)

	got := Render(doc)
	want := "First\n\n<!-- Page 2 -->\n\nSecond"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderNoMarkerForSinglePage(t *testing.T) {
	doc := singlePage(model.Block{Type: model.Text, Content: "Only"})
	if got := Render(doc); strings.Contains(got, "<!-- Page") {
		t.Errorf("Render() emitted a page marker for a single page: %q", got)
	}
}

// ============================================================================
// Raw Artifact Tests
// ============================================================================

func TestRawSinglePage(t *testing.T) {
	doc := model.NewDocument("raw")
	page := model.NewPage(100, 100)
	page.Raw = "<|ref|>text<|/ref|><|det|>[[0,0,10,10]]<|/det|>Hello"
	doc.AddPage(page)

	if got := Raw(doc); got != page.Raw {
		t.Errorf("Raw() = %q, want %q", got, page.Raw)
	}
}

func TestRawJoinsPages(t *testing.T) {
	doc := model.NewDocument("raw")
	for _, text := range []string{"page one", "page two", "page three"} {
		page := model.NewPage(100, 100)
		page.Raw = text
		doc.AddPage(page)
	}

	got := Raw(doc)
	want := "page one\n\n---\n\npage two\n\n---\n\npage three"
	if got != want {
		t.Errorf("Raw() = %q, want %q", got, want)
	}
}

// ============================================================================
// Format Round-Trip Tests
// ============================================================================

// TestRenderRoundTrip verifies that splitting rendered Markdown on blank
// lines and reclassifying each chunk recovers the original block types.
func TestRenderRoundTrip(t *testing.T) {
	blocks := []model.Block{
		{Type: model.Title, Content: "Annual Report"},
		{Type: model.Text, Content: "Revenue grew this year."},
		{Type: model.Table, Content: "| q | revenue |\n| 1 | 10 |"},
		{Type: model.Code, Content: "func main() {}"},
		{Type: model.Formula, Content: "E = mc^2"},
		{Type: model.Image, AssetPath: "images/image_0.jpg"},
	}

	rendered := Render(singlePage(blocks...))
	chunks := strings.Split(rendered, "\n\n")
	if len(chunks) != len(blocks) {
		t.Fatalf("chunk count = %d, want %d", len(chunks), len(blocks))
	}

	b := builder.New()
	for i, chunk := range chunks {
		block, ok := b.Build(scanner.Segment{Kind: scanner.Residual, Content: chunk}, 0)
		if !ok {
			t.Fatalf("chunk %d %q produced no block", i, chunk)
		}
		if block.Type != blocks[i].Type {
			t.Errorf("chunk %d %q classified as %v, want %v", i, chunk, block.Type, blocks[i].Type)
		}
	}
}
