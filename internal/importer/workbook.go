// Package importer extracts role-competency worksheet records from
// uploaded spreadsheet files. It stops at rows and cells; resolving roles
// and validating codes against the catalog belongs to the import service.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxUploadBytes caps accepted spreadsheet uploads, matching the 5MB
// limit the mapping UI advertises.
const MaxUploadBytes = 5 << 20

var (
	ErrEmptySheet      = errors.New("the selected sheet is empty")
	ErrFileTooLarge    = fmt.Errorf("uploaded file exceeds %d bytes", MaxUploadBytes)
	ErrNotASpreadsheet = errors.New("file could not be read as a spreadsheet")
)

// SheetNotFoundError reports that no usable worksheet exists, carrying the
// names that were available so the operator can see what was uploaded.
type SheetNotFoundError struct {
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf(`could not find "competency coded" tab or "Sheet1" in the Excel file. Available sheets: %s`,
		strings.Join(e.Available, ", "))
}

// Record is one worksheet data row keyed by the recognized column headers.
// Extra columns are ignored; missing columns leave fields empty.
type Record struct {
	Role         string
	Domain       string
	Subdomain    string
	Competencies string
}

// Sheet is the parsed worksheet: its name and every non-empty data row.
type Sheet struct {
	Name    string
	Records []Record
}

// Parse reads an xlsx workbook, selects the mapping worksheet and converts
// its rows into records.
//
// Worksheet selection: the first sheet whose name case-insensitively
// contains both "competenc" and "coded"; failing that a sheet literally
// named "Sheet1"; failing that *SheetNotFoundError.
func Parse(r io.Reader) (*Sheet, error) {
	limited := io.LimitReader(r, MaxUploadBytes+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(raw) > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrNotASpreadsheet
	}
	defer f.Close()

	name := selectSheet(f.GetSheetList())
	if name == "" {
		return nil, &SheetNotFoundError{Available: f.GetSheetList()}
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	records := toRecords(rows)
	if len(records) == 0 {
		return nil, ErrEmptySheet
	}
	return &Sheet{Name: name, Records: records}, nil
}

func selectSheet(names []string) string {
	for _, n := range names {
		lower := strings.ToLower(n)
		if strings.Contains(lower, "competenc") && strings.Contains(lower, "coded") {
			return n
		}
	}
	for _, n := range names {
		if n == "Sheet1" {
			return n
		}
	}
	return ""
}

// toRecords maps the header row to columns by name and converts each
// subsequent row; rows with no recognized content are skipped, the same
// way sheet-to-JSON conversion drops empty rows.
func toRecords(rows [][]string) []Record {
	if len(rows) < 2 {
		return nil
	}

	cols := map[string]int{}
	for i, header := range rows[0] {
		cols[strings.TrimSpace(header)] = i
	}

	cell := func(row []string, header string) string {
		idx, ok := cols[header]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var records []Record
	for _, row := range rows[1:] {
		rec := Record{
			Role:         cell(row, "Role"),
			Domain:       cell(row, "Domain"),
			Subdomain:    cell(row, "Subdomain"),
			Competencies: cell(row, "Competencies"),
		}
		if strings.TrimSpace(rec.Role) == "" &&
			strings.TrimSpace(rec.Domain) == "" &&
			strings.TrimSpace(rec.Subdomain) == "" &&
			strings.TrimSpace(rec.Competencies) == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}
