package model

// Page holds one raster page's content in final reading order.
type Page struct {
	// Index is the zero-based page position within the document.
	Index int

	// Width and Height are the source raster's pixel dimensions. Both
	// are 0 when no raster was supplied for the page.
	Width  int
	Height int

	// Raw is the verbatim tagged text the page was built from,
	// preserved for the diagnostic raw artifact.
	Raw string

	Blocks []Block
}

// NewPage creates a page with the given raster dimensions.
func NewPage(width, height int) *Page {
	return &Page{Width: width, Height: height}
}

// BlockCount returns the number of blocks on the page.
func (p *Page) BlockCount() int {
	return len(p.Blocks)
}

// Document is the ordered set of pages built from one input. A
// document is built once per input and treated as read-only by both
// renderers; only the image extractor writes to it, and only to the
// AssetPath of Image blocks.
type Document struct {
	// Name is the output base name, typically the input file's stem.
	// Asset names are derived from it, keeping parallel batch runs
	// collision-free.
	Name string

	Pages []*Page
}

// NewDocument creates an empty document with the given base name.
func NewDocument(name string) *Document {
	return &Document{
		Name:  name,
		Pages: make([]*Page, 0),
	}
}

// AddPage appends a page and assigns its index.
func (d *Document) AddPage(page *Page) {
	page.Index = len(d.Pages)
	d.Pages = append(d.Pages, page)
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// BlockCount returns the total number of blocks across all pages.
func (d *Document) BlockCount() int {
	var n int
	for _, page := range d.Pages {
		n += len(page.Blocks)
	}
	return n
}

// Images returns pointers to every Image block in page order. The
// extractor uses this to attach asset paths without touching any
// structural field.
func (d *Document) Images() []*Block {
	var images []*Block
	for _, page := range d.Pages {
		for i := range page.Blocks {
			if page.Blocks[i].Type == Image {
				images = append(images, &page.Blocks[i])
			}
		}
	}
	return images
}
