package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table is an ordered sequence of rows, each an ordered sequence of cell text.
type Table [][]string

// ExtractTables pulls every <table> out of the markup as rows of cell text.
// Extraction is best-effort: a malformed table produces short or empty rows
// rather than failing the whole call.
func ExtractTables(markup string) ([]Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &ParseError{Message: "failed to parse markup for tables", Cause: err}
	}

	var tables []Table
	doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		var table Table
		tbl.Find("tr").Each(func(_ int, row *goquery.Selection) {
			var cells []string
			row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.Join(strings.Fields(cell.Text()), " "))
			})
			table = append(table, cells)
		})
		tables = append(tables, table)
	})

	return tables, nil
}
