package layout

import (
	"testing"

	"github.com/tsawler/folio/model"
)

func block(content string, regions ...model.Region) model.Block {
	return model.Block{Type: model.Text, Content: content, Regions: regions}
}

func contents(blocks []model.Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Content
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// permutations returns every ordering of the input blocks.
func permutations(blocks []model.Block) [][]model.Block {
	if len(blocks) <= 1 {
		return [][]model.Block{blocks}
	}
	var result [][]model.Block
	for i := range blocks {
		rest := make([]model.Block, 0, len(blocks)-1)
		rest = append(rest, blocks[:i]...)
		rest = append(rest, blocks[i+1:]...)
		for _, sub := range permutations(rest) {
			perm := append([]model.Block{blocks[i]}, sub...)
			result = append(result, perm)
		}
	}
	return result
}

// ============================================================================
// Geometry Ordering Tests
// ============================================================================

func TestOrderByVerticalPosition(t *testing.T) {
	blocks := []model.Block{
		block("third", model.Region{X1: 0, Y1: 500, X2: 100, Y2: 550}),
		block("first", model.Region{X1: 0, Y1: 10, X2: 100, Y2: 60}),
		block("second", model.Region{X1: 0, Y1: 200, X2: 100, Y2: 260}),
	}

	got := contents(Order(blocks))
	want := []string{"first", "second", "third"}
	if !equalStrings(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestOrderTieBreaksLeftToRight(t *testing.T) {
	blocks := []model.Block{
		block("right", model.Region{X1: 500, Y1: 10, X2: 900, Y2: 60}),
		block("left", model.Region{X1: 0, Y1: 10, X2: 400, Y2: 60}),
	}

	got := contents(Order(blocks))
	want := []string{"left", "right"}
	if !equalStrings(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestOrderIgnoresInsertionOrder(t *testing.T) {
	canonical := []model.Block{
		block("a", model.Region{X1: 0, Y1: 0, X2: 100, Y2: 50}),
		block("b", model.Region{X1: 200, Y1: 0, X2: 300, Y2: 50}),
		block("c", model.Region{X1: 0, Y1: 100, X2: 100, Y2: 150}),
		block("d", model.Region{X1: 0, Y1: 200, X2: 100, Y2: 250}),
	}
	want := contents(Order(canonical))

	for i, perm := range permutations(canonical) {
		if got := contents(Order(perm)); !equalStrings(got, want) {
			t.Fatalf("permutation %d: Order() = %v, want %v", i, got, want)
		}
	}
}

func TestOrderMultiRegionUsesTopmostAnchor(t *testing.T) {
	// The table's second region sits below "after", but its anchor
	// (topmost region) places the whole block first.
	table := model.Block{
		Type:    model.Table,
		Content: "table",
		Regions: []model.Region{
			{X1: 0, Y1: 300, X2: 500, Y2: 400},
			{X1: 0, Y1: 10, X2: 500, Y2: 280},
		},
	}
	after := block("after", model.Region{X1: 0, Y1: 290, X2: 500, Y2: 295})

	got := contents(Order([]model.Block{after, table}))
	want := []string{"table", "after"}
	if !equalStrings(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

// ============================================================================
// Residual and Index Tests
// ============================================================================

func TestOrderResidualsFollowPositionedNeighbors(t *testing.T) {
	blocks := []model.Block{
		block("lead note"), // no geometry, scanned first
		block("top", model.Region{X1: 0, Y1: 10, X2: 100, Y2: 50}),
		block("attached note"), // no geometry, scanned after "top"
		block("bottom", model.Region{X1: 0, Y1: 400, X2: 100, Y2: 450}),
	}

	got := contents(Order(blocks))
	want := []string{"lead note", "top", "attached note", "bottom"}
	if !equalStrings(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestOrderAssignsSequentialIndices(t *testing.T) {
	blocks := []model.Block{
		block("b", model.Region{X1: 0, Y1: 100, X2: 10, Y2: 110}),
		block("a", model.Region{X1: 0, Y1: 0, X2: 10, Y2: 10}),
		block("c", model.Region{X1: 0, Y1: 200, X2: 10, Y2: 210}),
	}

	ordered := Order(blocks)
	for i, b := range ordered {
		if b.OrderIndex != i {
			t.Errorf("block %d OrderIndex = %d, want %d", i, b.OrderIndex, i)
		}
	}
}

func TestOrderEmpty(t *testing.T) {
	if got := Order(nil); len(got) != 0 {
		t.Errorf("Order(nil) returned %d blocks, want 0", len(got))
	}
}

func TestOrderPageInPlace(t *testing.T) {
	page := model.NewPage(999, 999)
	page.Blocks = []model.Block{
		block("second", model.Region{X1: 0, Y1: 100, X2: 10, Y2: 110}),
		block("first", model.Region{X1: 0, Y1: 0, X2: 10, Y2: 10}),
	}

	OrderPage(page)
	got := contents(page.Blocks)
	want := []string{"first", "second"}
	if !equalStrings(got, want) {
		t.Errorf("OrderPage() blocks = %v, want %v", got, want)
	}
}
