// Package export writes affiliation matches to CSV for spreadsheet review.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/filing-affiliations/internal/affiliation"
)

// Columns is the CSV header, in output order.
var Columns = []string{
	"person_name",
	"affiliation_type",
	"organization",
	"context",
	"confidence",
	"filing_type",
	"filing_date",
	"company_name",
	"ticker",
}

// WriteCSV writes the header and one row per match. Context fields are
// truncated to the export limit so a single long window cannot blow up the
// sheet.
func WriteCSV(w io.Writer, matches []affiliation.Match) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, m := range matches {
		row := []string{
			m.PersonName,
			string(m.Type),
			m.Organization,
			truncate(m.Context, affiliation.ExportContextLimit),
			string(m.Confidence),
			m.FilingInfo["filing_type"],
			m.FilingInfo["filing_date"],
			m.FilingInfo["company_name"],
			m.FilingInfo["ticker"],
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", m.PersonName, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes matches to a file, creating or truncating it.
func WriteCSVFile(path string, matches []affiliation.Match) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteCSV(f, matches); err != nil {
		return err
	}
	return f.Close()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
