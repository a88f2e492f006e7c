package docx

import "encoding/xml"

// XML namespaces used in generated parts.
const (
	nsW            = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR            = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP           = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA            = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic          = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRelationship = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// documentXML is the root of word/document.xml.
type documentXML struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	NSWP    string   `xml:"xmlns:wp,attr"`
	NSA     string   `xml:"xmlns:a,attr"`
	NSPic   string   `xml:"xmlns:pic,attr"`
	Body    bodyXML
}

// bodyXML holds block-level content followed by the section properties.
// Elements are *paragraphXML or *tableXML values; each type's XMLName
// drives the emitted tag, preserving document order in one slice.
type bodyXML struct {
	XMLName  xml.Name `xml:"w:body"`
	Elements []any
	Sect     sectPropsXML
}

// sectPropsXML represents section properties (<w:sectPr>).
type sectPropsXML struct {
	XMLName    xml.Name `xml:"w:sectPr"`
	FooterRef  footerRefXML
	PageSize   pageSizeXML
	PageMargin pageMarginXML
}

// footerRefXML references a footer part from the section.
type footerRefXML struct {
	XMLName xml.Name `xml:"w:footerReference"`
	Type    string   `xml:"w:type,attr"`
	ID      string   `xml:"r:id,attr"`
}

// pageSizeXML represents page dimensions in twentieths of a point.
type pageSizeXML struct {
	XMLName xml.Name `xml:"w:pgSz"`
	W       int      `xml:"w:w,attr"`
	H       int      `xml:"w:h,attr"`
}

// pageMarginXML represents page margins in twentieths of a point.
type pageMarginXML struct {
	XMLName xml.Name `xml:"w:pgMar"`
	Top     int      `xml:"w:top,attr"`
	Right   int      `xml:"w:right,attr"`
	Bottom  int      `xml:"w:bottom,attr"`
	Left    int      `xml:"w:left,attr"`
	Header  int      `xml:"w:header,attr"`
	Footer  int      `xml:"w:footer,attr"`
	Gutter  int      `xml:"w:gutter,attr"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName xml.Name `xml:"w:p"`
	Props   *paragraphPropsXML
	Runs    []runXML
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
// Field order follows the OOXML schema sequence.
type paragraphPropsXML struct {
	XMLName    xml.Name `xml:"w:pPr"`
	Style      *styleRefXML
	Spacing    *spacingXML
	Justify    *justificationXML
	OutlineLvl *outlineLvlXML
}

// styleRefXML references a named paragraph style.
type styleRefXML struct {
	XMLName xml.Name `xml:"w:pStyle"`
	Val     string   `xml:"w:val,attr"`
}

// spacingXML represents paragraph spacing in twentieths of a point.
type spacingXML struct {
	XMLName  xml.Name `xml:"w:spacing"`
	Before   string   `xml:"w:before,attr,omitempty"`
	After    string   `xml:"w:after,attr,omitempty"`
	Line     string   `xml:"w:line,attr,omitempty"`
	LineRule string   `xml:"w:lineRule,attr,omitempty"`
}

// justificationXML represents paragraph alignment.
type justificationXML struct {
	XMLName xml.Name `xml:"w:jc"`
	Val     string   `xml:"w:val,attr"`
}

// outlineLvlXML represents the outline level of a heading style.
type outlineLvlXML struct {
	XMLName xml.Name `xml:"w:outlineLvl"`
	Val     string   `xml:"w:val,attr"`
}

// runXML represents a text run (<w:r>). Content holds textXML,
// breakXML, fldCharXML, instrTextXML, or drawingXML values in order.
type runXML struct {
	XMLName xml.Name `xml:"w:r"`
	Props   *runPropsXML
	Content []any
}

// runPropsXML represents run properties (<w:rPr>).
// Field order follows the OOXML schema sequence.
type runPropsXML struct {
	XMLName xml.Name `xml:"w:rPr"`
	Fonts   *fontsXML
	Bold    *boldXML
	Italic  *italicXML
	Color   *colorXML
	Size    *sizeXML
	SizeCs  *sizeCsXML
	Shade   *shadeXML
}

// fontsXML selects run typefaces.
type fontsXML struct {
	XMLName xml.Name `xml:"w:rFonts"`
	ASCII   string   `xml:"w:ascii,attr,omitempty"`
	HAnsi   string   `xml:"w:hAnsi,attr,omitempty"`
	CS      string   `xml:"w:cs,attr,omitempty"`
}

type boldXML struct {
	XMLName xml.Name `xml:"w:b"`
}

type italicXML struct {
	XMLName xml.Name `xml:"w:i"`
}

// colorXML represents run color as a hex RGB value.
type colorXML struct {
	XMLName xml.Name `xml:"w:color"`
	Val     string   `xml:"w:val,attr"`
}

// sizeXML represents run size in half-points.
type sizeXML struct {
	XMLName xml.Name `xml:"w:sz"`
	Val     int      `xml:"w:val,attr"`
}

type sizeCsXML struct {
	XMLName xml.Name `xml:"w:szCs"`
	Val     int      `xml:"w:val,attr"`
}

// shadeXML represents run shading (background fill).
type shadeXML struct {
	XMLName xml.Name `xml:"w:shd"`
	Val     string   `xml:"w:val,attr"`
	Color   string   `xml:"w:color,attr"`
	Fill    string   `xml:"w:fill,attr"`
}

// textXML represents literal run text (<w:t>).
type textXML struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

type breakXML struct {
	XMLName xml.Name `xml:"w:br"`
}

// fldCharXML delimits a field code (page numbers in the footer).
type fldCharXML struct {
	XMLName xml.Name `xml:"w:fldChar"`
	Type    string   `xml:"w:fldCharType,attr"`
}

// instrTextXML carries the instruction text of a field code.
type instrTextXML struct {
	XMLName xml.Name `xml:"w:instrText"`
	Space   string   `xml:"xml:space,attr"`
	Value   string   `xml:",chardata"`
}

// tableXML represents a table element (<w:tbl>).
type tableXML struct {
	XMLName xml.Name `xml:"w:tbl"`
	Props   tablePropsXML
	Grid    tableGridXML
	Rows    []tableRowXML
}

// tablePropsXML represents table properties (<w:tblPr>).
type tablePropsXML struct {
	XMLName xml.Name `xml:"w:tblPr"`
	Width   tableWidthXML
	Borders tableBordersXML
}

// tableWidthXML represents preferred table width.
type tableWidthXML struct {
	XMLName xml.Name `xml:"w:tblW"`
	W       int      `xml:"w:w,attr"`
	Type    string   `xml:"w:type,attr"`
}

// tableBordersXML carries the six border edges of the fixed grid style.
type tableBordersXML struct {
	XMLName xml.Name `xml:"w:tblBorders"`
	Top     borderXML
	Left    borderXML
	Bottom  borderXML
	Right   borderXML
	InsideH borderXML
	InsideV borderXML
}

// borderXML represents one border edge. XMLName is set at construction
// since each edge uses a different element name.
type borderXML struct {
	XMLName xml.Name
	Val     string `xml:"w:val,attr"`
	Size    int    `xml:"w:sz,attr"`
	Space   int    `xml:"w:space,attr"`
	Color   string `xml:"w:color,attr"`
}

type tableGridXML struct {
	XMLName xml.Name `xml:"w:tblGrid"`
	Cols    []gridColXML
}

type gridColXML struct {
	XMLName xml.Name `xml:"w:gridCol"`
}

type tableRowXML struct {
	XMLName xml.Name `xml:"w:tr"`
	Cells   []tableCellXML
}

type tableCellXML struct {
	XMLName    xml.Name `xml:"w:tc"`
	Paragraphs []paragraphXML
}

// drawingXML embeds an inline picture in a run.
type drawingXML struct {
	XMLName xml.Name `xml:"w:drawing"`
	Inline  inlineXML
}

// inlineXML represents an inline drawing object (<wp:inline>).
type inlineXML struct {
	XMLName  xml.Name `xml:"wp:inline"`
	DistT    int      `xml:"distT,attr"`
	DistB    int      `xml:"distB,attr"`
	DistL    int      `xml:"distL,attr"`
	DistR    int      `xml:"distR,attr"`
	Extent   extentXML
	DocProps docPropsXML
	Graphic  graphicXML
}

// extentXML represents drawing extent in EMUs.
type extentXML struct {
	XMLName xml.Name `xml:"wp:extent"`
	CX      int64    `xml:"cx,attr"`
	CY      int64    `xml:"cy,attr"`
}

type docPropsXML struct {
	XMLName xml.Name `xml:"wp:docPr"`
	ID      int      `xml:"id,attr"`
	Name    string   `xml:"name,attr"`
}

type graphicXML struct {
	XMLName xml.Name `xml:"a:graphic"`
	Data    graphicDataXML
}

type graphicDataXML struct {
	XMLName xml.Name `xml:"a:graphicData"`
	URI     string   `xml:"uri,attr"`
	Pic     picXML
}

type picXML struct {
	XMLName  xml.Name `xml:"pic:pic"`
	NvPicPr  nvPicPrXML
	BlipFill blipFillXML
	SpPr     shapePropsXML
}

type nvPicPrXML struct {
	XMLName  xml.Name `xml:"pic:nvPicPr"`
	CNvPr    cnvPrXML
	CNvPicPr cnvPicPrXML
}

type cnvPrXML struct {
	XMLName xml.Name `xml:"pic:cNvPr"`
	ID      int      `xml:"id,attr"`
	Name    string   `xml:"name,attr"`
}

type cnvPicPrXML struct {
	XMLName xml.Name `xml:"pic:cNvPicPr"`
}

type blipFillXML struct {
	XMLName xml.Name `xml:"pic:blipFill"`
	Blip    blipXML
	Stretch stretchXML
}

// blipXML references the embedded image part by relationship ID.
type blipXML struct {
	XMLName xml.Name `xml:"a:blip"`
	Embed   string   `xml:"r:embed,attr"`
}

type stretchXML struct {
	XMLName  xml.Name `xml:"a:stretch"`
	FillRect fillRectXML
}

type fillRectXML struct {
	XMLName xml.Name `xml:"a:fillRect"`
}

type shapePropsXML struct {
	XMLName xml.Name `xml:"pic:spPr"`
	Xfrm    xfrmXML
	Geom    presetGeomXML
}

type xfrmXML struct {
	XMLName xml.Name `xml:"a:xfrm"`
	Off     offsetXML
	Ext     extentEmuXML
}

type offsetXML struct {
	XMLName xml.Name `xml:"a:off"`
	X       int64    `xml:"x,attr"`
	Y       int64    `xml:"y,attr"`
}

type extentEmuXML struct {
	XMLName xml.Name `xml:"a:ext"`
	CX      int64    `xml:"cx,attr"`
	CY      int64    `xml:"cy,attr"`
}

type presetGeomXML struct {
	XMLName xml.Name `xml:"a:prstGeom"`
	Prst    string   `xml:"prst,attr"`
	AvLst   avListXML
}

type avListXML struct {
	XMLName xml.Name `xml:"a:avLst"`
}

// footerXML is the root of a footer part (word/footer1.xml).
type footerXML struct {
	XMLName    xml.Name `xml:"w:ftr"`
	NSW        string   `xml:"xmlns:w,attr"`
	Paragraphs []paragraphXML
}

// relationshipsXML is the root of a .rels part.
type relationshipsXML struct {
	XMLName xml.Name `xml:"Relationships"`
	NS      string   `xml:"xmlns,attr"`
	Rels    []relationshipXML
}

type relationshipXML struct {
	XMLName xml.Name `xml:"Relationship"`
	ID      string   `xml:"Id,attr"`
	Type    string   `xml:"Type,attr"`
	Target  string   `xml:"Target,attr"`
}

// contentTypesXML is the root of [Content_Types].xml.
type contentTypesXML struct {
	XMLName   xml.Name `xml:"Types"`
	NS        string   `xml:"xmlns,attr"`
	Defaults  []defaultTypeXML
	Overrides []overrideTypeXML
}

type defaultTypeXML struct {
	XMLName     xml.Name `xml:"Default"`
	Extension   string   `xml:"Extension,attr"`
	ContentType string   `xml:"ContentType,attr"`
}

type overrideTypeXML struct {
	XMLName     xml.Name `xml:"Override"`
	PartName    string   `xml:"PartName,attr"`
	ContentType string   `xml:"ContentType,attr"`
}
