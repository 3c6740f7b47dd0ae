package importer

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheetName string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func mappingRows() [][]any {
	return [][]any{
		{"Role", "Domain", "Subdomain", "Competencies"},
		{"Chief Epidemiologist", "Leadership", "Strategy", "LG 1.1"},
		{"", "Leadership", "Strategy", "LG 1.2"},
		{"", "", "", ""},
		{"", "Data", "Analytics", "DM 2.1"},
	}
}

func TestParseSelectsCodedCompetencySheet(t *testing.T) {
	buf := buildWorkbook(t, "Competency Coded Mapping", mappingRows())

	sheet, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sheet.Name != "Competency Coded Mapping" {
		t.Fatalf("sheet name = %q", sheet.Name)
	}
	if len(sheet.Records) != 3 {
		t.Fatalf("expected 3 records (empty row dropped), got %d", len(sheet.Records))
	}
	if sheet.Records[0].Role != "Chief Epidemiologist" {
		t.Fatalf("role = %q", sheet.Records[0].Role)
	}
	if sheet.Records[2].Competencies != "DM 2.1" {
		t.Fatalf("competencies = %q", sheet.Records[2].Competencies)
	}
}

func TestParseFallsBackToSheet1(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", mappingRows())

	sheet, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sheet.Name != "Sheet1" {
		t.Fatalf("sheet name = %q", sheet.Name)
	}
}

func TestParseSheetNotFound(t *testing.T) {
	buf := buildWorkbook(t, "Totally Unrelated", mappingRows())

	_, err := Parse(buf)
	var sheetErr *SheetNotFoundError
	if !errors.As(err, &sheetErr) {
		t.Fatalf("expected SheetNotFoundError, got %v", err)
	}
	if len(sheetErr.Available) != 1 || sheetErr.Available[0] != "Totally Unrelated" {
		t.Fatalf("available sheets = %v", sheetErr.Available)
	}
}

func TestParseEmptySheet(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", [][]any{
		{"Role", "Domain", "Subdomain", "Competencies"},
	})

	_, err := Parse(buf)
	if !errors.Is(err, ErrEmptySheet) {
		t.Fatalf("expected ErrEmptySheet, got %v", err)
	}
}

func TestParseRejectsOversizedUpload(t *testing.T) {
	_, err := Parse(bytes.NewReader(make([]byte, MaxUploadBytes+1)))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("not a spreadsheet")))
	if !errors.Is(err, ErrNotASpreadsheet) {
		t.Fatalf("expected ErrNotASpreadsheet, got %v", err)
	}
}

func TestParseIgnoresExtraColumns(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", [][]any{
		{"Notes", "Role", "Competencies"},
		{"n/a", "Digital Transformation Expert", "LG 3.1"},
	})

	sheet, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sheet.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sheet.Records))
	}
	rec := sheet.Records[0]
	if rec.Role != "Digital Transformation Expert" || rec.Competencies != "LG 3.1" {
		t.Fatalf("record = %+v", rec)
	}
	if rec.Domain != "" || rec.Subdomain != "" {
		t.Fatalf("missing columns should stay empty, got %+v", rec)
	}
}

func TestParseManyDataRows(t *testing.T) {
	rows := [][]any{{"Role", "Domain", "Subdomain", "Competencies"}}
	for i := 0; i < 40; i++ {
		rows = append(rows, []any{"", "Data", "Analytics", fmt.Sprintf("DM 1.%d", i)})
	}
	buf := buildWorkbook(t, "coded competencies", rows)

	sheet, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sheet.Records) != 40 {
		t.Fatalf("expected 40 records, got %d", len(sheet.Records))
	}
}
