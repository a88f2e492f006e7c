package docx

import "encoding/xml"

// Fixed document template. Every generated document uses A4 pages with
// the same margins, typefaces, and spacing; the values are not
// configurable.
const (
	pageWidthTwips   = 11906 // A4, 21.0 cm
	pageHeightTwips  = 16838 // A4, 29.7 cm
	marginVertTwips  = 1440  // 2.54 cm top and bottom
	marginHorizTwips = 1797  // 3.17 cm left and right
	headerDistTwips  = 720
	footerDistTwips  = 720

	bodyHalfPoints    = 21 // 10.5 pt
	headingHalfPoints = 28 // 14 pt
	codeHalfPoints    = 18 // 9 pt
	formulaHalfPoints = 22 // 11 pt
	captionHalfPoints = 18 // 9 pt

	lineSpacing       = "360" // 1.5 lines
	headingSpaceAbove = "240" // 12 pt
	headingSpaceBelow = "120" // 6 pt

	bodyFont = "Calibri"
	codeFont = "Consolas"

	codeShadeFill = "F0F0F0"
	captionColor  = "404040"
	headingColor  = "000000"

	maxImageWidthInches = 6.0
	pixelsPerInch       = 100
	emuPerInch          = 914400
)

// Paragraph style identifiers defined in word/styles.xml.
const (
	styleNormal    = "Normal"
	styleHeading   = "Heading2"
	styleNoSpacing = "NoSpacing"
)

// Relationship identifiers in word/_rels/document.xml.rels. Image
// relationships are numbered sequentially from firstMediaRel.
const (
	relStyles     = "rId1"
	relFooter     = "rId2"
	firstMediaRel = 3
)

// stylesXML is the root of word/styles.xml.
type stylesXML struct {
	XMLName     xml.Name `xml:"w:styles"`
	NSW         string   `xml:"xmlns:w,attr"`
	DocDefaults docDefaultsXML
	Styles      []styleDefXML
}

type docDefaultsXML struct {
	XMLName    xml.Name `xml:"w:docDefaults"`
	RPrDefault rPrDefaultXML
	PPrDefault pPrDefaultXML
}

type rPrDefaultXML struct {
	XMLName xml.Name `xml:"w:rPrDefault"`
	RPr     *runPropsXML
}

type pPrDefaultXML struct {
	XMLName xml.Name `xml:"w:pPrDefault"`
	PPr     *paragraphPropsXML
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	XMLName xml.Name `xml:"w:style"`
	Type    string   `xml:"w:type,attr"`
	Default string   `xml:"w:default,attr,omitempty"`
	StyleID string   `xml:"w:styleId,attr"`
	Name    styleNameXML
	BasedOn *basedOnXML
	PPr     *paragraphPropsXML
	RPr     *runPropsXML
}

type styleNameXML struct {
	XMLName xml.Name `xml:"w:name"`
	Val     string   `xml:"w:val,attr"`
}

type basedOnXML struct {
	XMLName xml.Name `xml:"w:basedOn"`
	Val     string   `xml:"w:val,attr"`
}

// stylesPart builds the fixed word/styles.xml: a Normal base style at
// 10.5 pt with 1.5 line spacing, the level-2 heading style, and the
// single-spaced style used for code blocks.
func stylesPart() stylesXML {
	return stylesXML{
		NSW: nsW,
		DocDefaults: docDefaultsXML{
			RPrDefault: rPrDefaultXML{RPr: &runPropsXML{
				Fonts:  &fontsXML{ASCII: bodyFont, HAnsi: bodyFont},
				Size:   &sizeXML{Val: bodyHalfPoints},
				SizeCs: &sizeCsXML{Val: bodyHalfPoints},
			}},
			PPrDefault: pPrDefaultXML{PPr: &paragraphPropsXML{
				Spacing: &spacingXML{Line: lineSpacing, LineRule: "auto"},
			}},
		},
		Styles: []styleDefXML{
			{
				Type:    "paragraph",
				Default: "1",
				StyleID: styleNormal,
				Name:    styleNameXML{Val: "Normal"},
			},
			{
				Type:    "paragraph",
				StyleID: styleHeading,
				Name:    styleNameXML{Val: "heading 2"},
				BasedOn: &basedOnXML{Val: styleNormal},
				PPr: &paragraphPropsXML{
					Spacing:    &spacingXML{Before: headingSpaceAbove, After: headingSpaceBelow},
					OutlineLvl: &outlineLvlXML{Val: "1"},
				},
				RPr: &runPropsXML{
					Bold:   &boldXML{},
					Size:   &sizeXML{Val: headingHalfPoints},
					SizeCs: &sizeCsXML{Val: headingHalfPoints},
				},
			},
			{
				Type:    "paragraph",
				StyleID: styleNoSpacing,
				Name:    styleNameXML{Val: "No Spacing"},
				PPr: &paragraphPropsXML{
					Spacing: &spacingXML{After: "0", Line: "240", LineRule: "auto"},
				},
			},
		},
	}
}

// footerPart builds word/footer1.xml: a centered PAGE field so every
// page carries its number.
func footerPart() footerXML {
	return footerXML{
		NSW: nsW,
		Paragraphs: []paragraphXML{{
			Props: &paragraphPropsXML{Justify: &justificationXML{Val: "center"}},
			Runs: []runXML{
				{Content: []any{fldCharXML{Type: "begin"}}},
				{Content: []any{instrTextXML{Space: "preserve", Value: "PAGE"}}},
				{Content: []any{fldCharXML{Type: "end"}}},
			},
		}},
	}
}

// sectProps builds the section properties closing the document body.
func sectProps() sectPropsXML {
	return sectPropsXML{
		FooterRef: footerRefXML{Type: "default", ID: relFooter},
		PageSize:  pageSizeXML{W: pageWidthTwips, H: pageHeightTwips},
		PageMargin: pageMarginXML{
			Top:    marginVertTwips,
			Right:  marginHorizTwips,
			Bottom: marginVertTwips,
			Left:   marginHorizTwips,
			Header: headerDistTwips,
			Footer: footerDistTwips,
		},
	}
}

// contentTypes builds [Content_Types].xml.
func contentTypes() contentTypesXML {
	return contentTypesXML{
		NS: nsContentTypes,
		Defaults: []defaultTypeXML{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
			{Extension: "jpeg", ContentType: "image/jpeg"},
			{Extension: "png", ContentType: "image/png"},
		},
		Overrides: []overrideTypeXML{
			{PartName: "/word/document.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
			{PartName: "/word/styles.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"},
			{PartName: "/word/footer1.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"},
		},
	}
}

// packageRels builds _rels/.rels, pointing at the main document part.
func packageRels() relationshipsXML {
	return relationshipsXML{
		NS: nsRelationship,
		Rels: []relationshipXML{{
			ID:     "rId1",
			Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument",
			Target: "word/document.xml",
		}},
	}
}

// documentRels builds word/_rels/document.xml.rels, including one image
// relationship per embedded media part.
func documentRels(media []mediaPart) relationshipsXML {
	rels := relationshipsXML{
		NS: nsRelationship,
		Rels: []relationshipXML{
			{ID: relStyles, Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles", Target: "styles.xml"},
			{ID: relFooter, Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer", Target: "footer1.xml"},
		},
	}
	for _, m := range media {
		rels.Rels = append(rels.Rels, relationshipXML{
			ID:     m.RelID,
			Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image",
			Target: m.Name,
		})
	}
	return rels
}
