package docx

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// styledRun is a span of text with uniform inline formatting.
type styledRun struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

func (r styledRun) sameStyle(o styledRun) bool {
	return r.Bold == o.Bold && r.Italic == o.Italic && r.Code == o.Code
}

var markdown = goldmark.New()

// splitRuns parses markdown emphasis markers (**bold**, *italic*,
// `code`) in content into styled runs. Content without markers, or with
// block structure beyond a single paragraph, comes back as one plain
// run so nothing is reinterpreted or lost.
func splitRuns(content string) []styledRun {
	if !strings.ContainsAny(content, "*`_") {
		return []styledRun{{Text: content}}
	}

	src := []byte(content)
	root := markdown.Parser().Parse(gmtext.NewReader(src))
	para := root.FirstChild()
	if para == nil || para.NextSibling() != nil || para.Kind() != ast.KindParagraph {
		return []styledRun{{Text: content}}
	}

	var runs []styledRun
	collectRuns(para, src, styledRun{}, &runs)
	if len(runs) == 0 {
		return []styledRun{{Text: content}}
	}
	return runs
}

// collectRuns walks inline children, carrying the accumulated style
// through nested emphasis and code spans.
func collectRuns(n ast.Node, src []byte, style styledRun, out *[]styledRun) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Text:
			appendRun(out, style, string(node.Segment.Value(src)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				appendRun(out, style, "\n")
			}
		case *ast.String:
			appendRun(out, style, string(node.Value))
		case *ast.Emphasis:
			nested := style
			if node.Level >= 2 {
				nested.Bold = true
			} else {
				nested.Italic = true
			}
			collectRuns(node, src, nested, out)
		case *ast.CodeSpan:
			nested := style
			nested.Code = true
			collectRuns(node, src, nested, out)
		case *ast.AutoLink:
			appendRun(out, style, string(node.Label(src)))
		default:
			collectRuns(child, src, style, out)
		}
	}
}

// appendRun adds text under the given style, merging with the previous
// run when the style is unchanged.
func appendRun(out *[]styledRun, style styledRun, text string) {
	if text == "" {
		return
	}
	if n := len(*out); n > 0 && (*out)[n-1].sameStyle(style) {
		(*out)[n-1].Text += text
		return
	}
	style.Text = text
	*out = append(*out, style)
}
