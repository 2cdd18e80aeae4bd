package services

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	appconfig "quotebuilder/config"
	"quotebuilder/testhelpers"
)

func TestGenerateQuoteXLSX(t *testing.T) {
	q := testhelpers.SampleQuote(t)
	s, err := ComputeSchedule(q.Subtotal(), q.DurationWeeks)
	if err != nil {
		t.Fatalf("ComputeSchedule: %v", err)
	}

	b, err := GenerateQuoteXLSX(q, s, appconfig.Default())
	if err != nil {
		t.Fatalf("GenerateQuoteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != q.Number {
		t.Errorf("sheet name = %q, want %q", sheet, q.Number)
	}

	cell := func(ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", ref, err)
		}
		return v
	}

	if got := cell("A2"); got != "Estimate #: TBG-20250310-0930" {
		t.Errorf("A2 = %q", got)
	}
	if got := cell("A6"); got != "Category" {
		t.Errorf("A6 = %q, want Category", got)
	}

	// Demo group: two items, then the subtotal row.
	if got := cell("A7"); got != "Demo" {
		t.Errorf("A7 = %q, want Demo", got)
	}
	if got := cell("A8"); got != "" {
		t.Errorf("A8 = %q, want empty (continuation row)", got)
	}
	if got := cell("B9"); got != "Demo subtotal" {
		t.Errorf("B9 = %q", got)
	}
	if got := cell("F9"); got != "$1,650.00" {
		t.Errorf("F9 = %q, want $1,650.00", got)
	}

	// Tile group and grand total.
	if got := cell("B11"); got != "Tile subtotal" {
		t.Errorf("B11 = %q", got)
	}
	if got := cell("B12"); got != "TOTAL" {
		t.Errorf("B12 = %q", got)
	}
	if got := cell("F12"); got != "$2,650.00" {
		t.Errorf("F12 = %q, want $2,650.00", got)
	}

	// Schedule block sits two rows below the total.
	if got := cell("A14"); got != "Payment" {
		t.Errorf("A14 = %q, want Payment", got)
	}
	if got := cell("A15"); got != "Deposit (20%)" {
		t.Errorf("A15 = %q", got)
	}
	if got := cell("F15"); got != "$530.00" {
		t.Errorf("F15 = %q, want $530.00", got)
	}
	if got := cell("F20"); got != "$2,650.00" {
		t.Errorf("schedule total F20 = %q, want $2,650.00", got)
	}
}

func TestExportQuoteXLSX(t *testing.T) {
	q := testhelpers.SampleQuote(t)
	s, err := ComputeSchedule(q.Subtotal(), q.DurationWeeks)
	if err != nil {
		t.Fatalf("ComputeSchedule: %v", err)
	}

	out := filepath.Join(t.TempDir(), "estimate.xlsx")
	if err := ExportQuoteXLSX(q, s, appconfig.Default(), out); err != nil {
		t.Fatalf("ExportQuoteXLSX: %v", err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Fatalf("output missing or empty: %v", err)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1+1", "'+1+1"},
		{"-cmd", "'-cmd"},
		{"@ref", "'@ref"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.in); got != tt.want {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
