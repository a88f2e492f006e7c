// Package layout assigns reading order to classified blocks. The order
// is a single deterministic sort over block geometry: topmost region
// first, ties broken left to right. No column detection is performed;
// multi-column pages interleave by row, an accepted trade for an order
// that is a pure, recomputable function of geometry.
package layout

import (
	"sort"

	"github.com/tsawler/folio/model"
)

// Order returns the blocks in reading order with OrderIndex assigned
// 0..n-1. The result depends only on each block's anchor region, never
// on insertion order. Blocks without geometry (untagged residual text)
// inherit the anchor of the nearest positioned block before them in
// scan order, so they stay with the content they followed.
func Order(blocks []model.Block) []model.Block {
	keys := make([]model.Region, len(blocks))
	// A key that sorts before any real anchor, for leading residuals.
	last := model.Region{X1: -1, Y1: -1}
	for i, b := range blocks {
		if b.HasRegions() {
			last = b.Anchor()
		}
		keys[i] = last
	}

	idx := make([]int, len(blocks))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.Y1 != kb.Y1 {
			return ka.Y1 < kb.Y1
		}
		return ka.X1 < kb.X1
	})

	ordered := make([]model.Block, len(blocks))
	for n, i := range idx {
		block := blocks[i]
		block.OrderIndex = n
		ordered[n] = block
	}
	return ordered
}

// OrderPage sorts a page's blocks in place.
func OrderPage(page *model.Page) {
	page.Blocks = Order(page.Blocks)
}
