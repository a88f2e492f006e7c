package docx

import (
	"strings"

	"golang.org/x/net/html"
)

// parseRows converts table block content into rows of cell text. Pipe
// syntax is the primary form; content carrying an HTML <table> element
// is parsed as HTML instead. A nil result means the content is not
// tabular and the caller should fall back to a plain paragraph.
func parseRows(content string) [][]string {
	if strings.Contains(strings.ToLower(content), "<table") {
		return parseHTMLTable(content)
	}
	return parsePipeRows(content)
}

// parsePipeRows parses markdown pipe-delimited rows. Separator rows
// (the |---|---| alignment line) are dropped. Content with fewer than
// two lines is not treated as a table.
func parsePipeRows(content string) [][]string {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 2 {
		return nil
	}

	var rows [][]string
	for _, line := range lines {
		if isSeparatorRow(line) {
			continue
		}
		if cells := splitCells(line); len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// isSeparatorRow reports whether the line contains only pipes, dashes,
// colons, and spaces. Blank lines count as separators.
func isSeparatorRow(line string) bool {
	for _, r := range line {
		if !strings.ContainsRune("|-: ", r) {
			return false
		}
	}
	return true
}

// splitCells splits a pipe row into trimmed cells. The empty edge cells
// produced by leading and trailing pipes are removed; interior empty
// cells are kept so columns stay aligned.
func splitCells(line string) []string {
	cells := strings.Split(line, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	for _, c := range cells {
		if c != "" {
			return cells
		}
	}
	return nil
}

// parseHTMLTable extracts rows from the first <table> element in the
// content. Returns nil when no table rows can be found.
func parseHTMLTable(content string) [][]string {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil
	}
	table := findElement(root, "table")
	if table == nil {
		return nil
	}

	var rows [][]string
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			rows = append(rows, rowsFromSection(c)...)
		case "tr":
			if row := cellsFromRow(c); len(row) > 0 {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// rowsFromSection parses the tr children of a thead/tbody/tfoot node.
func rowsFromSection(section *html.Node) [][]string {
	var rows [][]string
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			if row := cellsFromRow(c); len(row) > 0 {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// cellsFromRow collects the td/th cell text of a single tr node.
func cellsFromRow(tr *html.Node) []string {
	var row []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			row = append(row, textContent(c))
		}
	}
	return row
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// textContent extracts the trimmed text of a node and its descendants.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.TrimSpace(sb.String())
}
