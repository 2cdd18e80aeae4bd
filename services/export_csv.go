package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"quotebuilder/quote"
)

// estimateCSVHeader is the fixed column set of the accounting-online
// "Import Estimates" feature. Order and spelling are part of the contract.
var estimateCSVHeader = []string{
	"Customer",
	"EstimateNumber",
	"EstimateDate",
	"ExpirationDate",
	"ItemDescription",
	"ItemQuantity",
	"ItemRate",
	"ItemAmount",
	"Memo",
}

// GenerateEstimateCSV serializes the quote and schedule into the delimited
// estimate grammar: one row per line item in entry order, then one row per
// schedule entry. Fields containing the delimiter or quote character are
// wrapped in quotes with internal quotes doubled (RFC 4180), which is what
// the importer requires — it rejects a malformed file wholesale rather than
// per row. Numeric fields carry exactly two decimals, no thousands
// separators.
func GenerateEstimateCSV(q quote.Quote, s Schedule) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	w.Write(estimateCSVHeader)

	date := q.Date.Format("01/02/2006")
	valid := q.ValidUntil().Format("01/02/2006")

	for i, li := range q.Items {
		memo := ""
		if i == 0 {
			memo = q.ProjectDescription
		}
		w.Write([]string{
			q.Customer.Name,
			q.Number,
			date,
			valid,
			fmt.Sprintf("%s: %s", li.Category, li.Description),
			li.Quantity.StringFixed(2),
			li.Rate.String(),
			li.Total().String(),
			memo,
		})
	}

	// Schedule rows ride along so the payment plan imports with the estimate.
	scheduleRow := func(desc string, amount quote.Money) []string {
		return []string{
			q.Customer.Name, q.Number, date, valid,
			desc, "1.00", amount.String(), amount.String(), "",
		}
	}
	w.Write(scheduleRow("Payment Schedule: Deposit (20%, due on acceptance)", s.Deposit))
	for _, inst := range s.Installments {
		w.Write(scheduleRow(fmt.Sprintf("Payment Schedule: Week %d", inst.Week), inst.Amount))
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write estimate csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportEstimateCSV writes the delimited estimate file atomically to
// outPath.
func ExportEstimateCSV(q quote.Quote, s Schedule, outPath string) error {
	b, err := GenerateEstimateCSV(q, s)
	if err != nil {
		return err
	}
	return publishFile(outPath, b)
}
