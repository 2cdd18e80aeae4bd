package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	appconfig "quotebuilder/config"
	"quotebuilder/quote"
)

// GenerateQuoteXLSX creates an Excel rendition of the quote — line items
// grouped by category with subtotals, grand total, and the payment
// schedule — and returns the workbook bytes.
func GenerateQuoteXLSX(q quote.Quote, s Schedule, cfg appconfig.Config) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 chars.
	sheetName := q.Number
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Estimate"
	}
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{16, 42, 8, 8, 14, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: cfg.Brand.Red},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{cfg.Brand.Black},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	subtotalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{cfg.Brand.LightGray},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create subtotal style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{cfg.Brand.Black},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// ── Header rows ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(cfg.Company.Name+" — Estimate"))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	f.SetCellValue(sheetName, "A2", "Estimate #: "+q.Number)
	f.SetCellValue(sheetName, "A3", "Customer: "+sanitizeExcelCell(q.Customer.Name))
	f.SetCellValue(sheetName, "A4", "Date: "+q.Date.Format("01/02/2006")+
		"   Valid Until: "+q.ValidUntil().Format("01/02/2006"))
	f.SetCellStyle(sheetName, "A2", "A4", subtitleStyle)

	// ── Column headers ──────────────────────────────────────────────────

	headers := []string{"Category", "Description", "Qty", "Unit", "Rate", "Amount"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s6", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A6", lastCol+"6", headerStyle)

	// ── Item rows grouped by category ───────────────────────────────────

	rowNum := 7
	for _, g := range GroupByCategory(q.Items) {
		for i, li := range g.Items {
			rowStr := fmt.Sprintf("%d", rowNum)
			if i == 0 {
				f.SetCellValue(sheetName, "A"+rowStr, string(g.Category))
			}
			f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(li.Description))
			f.SetCellValue(sheetName, "C"+rowStr, formatQty(li.Quantity))
			f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(li.Unit))
			f.SetCellValue(sheetName, "E"+rowStr, FormatUSD(li.Rate))
			f.SetCellValue(sheetName, "F"+rowStr, FormatUSD(li.Total()))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
			rowNum++
		}
		rowStr := fmt.Sprintf("%d", rowNum)
		f.SetCellValue(sheetName, "B"+rowStr, string(g.Category)+" subtotal")
		f.SetCellValue(sheetName, "F"+rowStr, FormatUSD(g.Subtotal))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, subtotalStyle)
		rowNum++
	}

	rowStr := fmt.Sprintf("%d", rowNum)
	f.SetCellValue(sheetName, "B"+rowStr, "TOTAL")
	f.SetCellValue(sheetName, "F"+rowStr, FormatUSD(q.Subtotal()))
	f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, totalStyle)
	rowNum += 2

	// ── Payment schedule ────────────────────────────────────────────────

	rowStr = fmt.Sprintf("%d", rowNum)
	scheduleHeaders := []string{"Payment", "When", "", "", "", "Amount"}
	for i, h := range scheduleHeaders {
		if h != "" {
			f.SetCellValue(sheetName, columns[i]+rowStr, h)
		}
	}
	f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, headerStyle)
	rowNum++

	writeScheduleRow := func(payment, when string, amount quote.Money, style int) {
		rs := fmt.Sprintf("%d", rowNum)
		f.SetCellValue(sheetName, "A"+rs, payment)
		f.SetCellValue(sheetName, "B"+rs, when)
		f.SetCellValue(sheetName, "F"+rs, FormatUSD(amount))
		f.SetCellStyle(sheetName, "A"+rs, lastCol+rs, style)
		rowNum++
	}

	writeScheduleRow("Deposit (20%)", "Upon acceptance", s.Deposit, itemStyle)
	for _, inst := range s.Installments {
		writeScheduleRow(fmt.Sprintf("Payment %d", inst.Week), fmt.Sprintf("Week %d", inst.Week), inst.Amount, itemStyle)
	}
	writeScheduleRow("TOTAL", "", s.Total(), subtotalStyle)

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportQuoteXLSX writes the Excel artifact atomically to outPath.
func ExportQuoteXLSX(q quote.Quote, s Schedule, cfg appconfig.Config, outPath string) error {
	b, err := GenerateQuoteXLSX(q, s, cfg)
	if err != nil {
		return err
	}
	return publishFile(outPath, b)
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
