package model

// CoordMax is the upper bound of the normalized coordinate space used
// by grounding tags. Tag coordinates run 0..CoordMax inclusive and are
// scaled against it when mapped onto raster pixels.
const CoordMax = 999

// Region is one axis-aligned bounding box, ordered [x1, y1, x2, y2].
// Coordinates are in the normalized tag space until Scale is applied.
type Region struct {
	X1, Y1, X2, Y2 int
}

// NewRegion creates a region from corner coordinates.
func NewRegion(x1, y1, x2, y2 int) Region {
	return Region{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Valid reports whether the region has positive extent on both axes.
func (r Region) Valid() bool {
	return r.X1 < r.X2 && r.Y1 < r.Y2
}

// Width returns the horizontal extent.
func (r Region) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent.
func (r Region) Height() int {
	return r.Y2 - r.Y1
}

// Area returns the covered area, or 0 for an invalid region.
func (r Region) Area() int {
	if !r.Valid() {
		return 0
	}
	return r.Width() * r.Height()
}

// Scale maps the region from the normalized tag space onto a raster of
// the given pixel dimensions. Integer division truncates; a coordinate
// of CoordMax lands exactly on the raster edge.
func (r Region) Scale(width, height int) Region {
	return Region{
		X1: r.X1 * width / CoordMax,
		Y1: r.Y1 * height / CoordMax,
		X2: r.X2 * width / CoordMax,
		Y2: r.Y2 * height / CoordMax,
	}
}

// Clamp constrains the region to the bounds [0, width] x [0, height],
// repairing inverted corner order first. The result may still be
// degenerate (zero area); callers must check Valid.
func (r Region) Clamp(width, height int) Region {
	x1, x2 := r.X1, r.X2
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	y1, y2 := r.Y1, r.Y2
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Region{
		X1: clampInt(x1, 0, width),
		Y1: clampInt(y1, 0, height),
		X2: clampInt(x2, 0, width),
		Y2: clampInt(y2, 0, height),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
