package model

// BlockType classifies one unit of document content.
type BlockType int

const (
	// Unknown marks a block whose type has not been resolved yet. It is
	// only used while classification is in progress; finished documents
	// never contain it.
	Unknown BlockType = iota
	Title
	Text
	Image
	Table
	Formula
	Code
)

func (bt BlockType) String() string {
	switch bt {
	case Title:
		return "Title"
	case Text:
		return "Text"
	case Image:
		return "Image"
	case Table:
		return "Table"
	case Formula:
		return "Formula"
	case Code:
		return "Code"
	default:
		return "Unknown"
	}
}

// Block is one classified unit of document content together with its
// source regions and reading-order position.
type Block struct {
	Type    BlockType
	Regions []Region
	Content string

	// PageIndex is the zero-based page the block belongs to.
	PageIndex int

	// OrderIndex is the block's position in final reading order,
	// unique within its page. It reflects geometry, not scan order.
	OrderIndex int

	// AssetPath is set on Image blocks after extraction, relative to
	// the image directory. Empty when no asset was written; renderers
	// must then omit the block rather than emit a broken reference.
	AssetPath string
}

// HasRegions reports whether the block carries any geometry.
func (b Block) HasRegions() bool {
	return len(b.Regions) > 0
}

// Anchor returns the block's topmost region, with ties broken by the
// leftmost edge. It is the sort key for reading order. A block with no
// regions returns the zero Region.
func (b Block) Anchor() Region {
	if len(b.Regions) == 0 {
		return Region{}
	}
	anchor := b.Regions[0]
	for _, r := range b.Regions[1:] {
		if r.Y1 < anchor.Y1 || (r.Y1 == anchor.Y1 && r.X1 < anchor.X1) {
			anchor = r
		}
	}
	return anchor
}
