// Package model provides the intermediate representation (IR) for
// converted document content.
//
// This package defines the data structures shared by the scanner,
// classifier, extractor, and both renderers. Every conversion produces
// a [Document], which is the sole input to rendering, so the Markdown
// and DOCX outputs are always derived from identical content.
//
// # Structure
//
// A [Document] is an ordered list of pages built from one input file:
//
//	doc := model.NewDocument("report")
//	doc.AddPage(page)
//
// Each [Page] holds the page's raster dimensions, the verbatim tagged
// text it was built from, and its [Block] values in final reading
// order.
//
// # Blocks
//
// A [Block] is one classified unit of content. Its [BlockType] is one
// of Title, Text, Image, Table, Formula, or Code; Unknown exists only
// transiently during classification and never appears in a finished
// Document.
//
// # Regions
//
// A [Region] is one axis-aligned bounding box in the normalized 0-999
// coordinate space used by grounding tags. Regions are scaled to raster
// pixels with [Region.Scale] and constrained with [Region.Clamp] before
// any pixel work. A block may own several disjoint regions.
package model
