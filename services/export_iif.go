package services

import (
	"fmt"
	"strings"

	appconfig "quotebuilder/config"
	"quotebuilder/quote"
)

// IIF column declarations for an estimate import. The desktop importer
// matches these headers byte for byte.
const (
	iifTRNSHeader = "!TRNS\tTRNSTYPE\tDATE\tACCNT\tNAME\tCLASS\tAMOUNT\tDOCNUM\tMEMO"
	iifSPLHeader  = "!SPL\tTRNSTYPE\tDATE\tACCNT\tNAME\tAMOUNT\tDOCNUM\tMEMO\tQNTY\tPRICE"
	iifEndHeader  = "!ENDTRNS"
)

// iifMemoLimit caps memo and description fields. Longer values are truncated
// rather than rejected, which is what the importer itself would do.
const iifMemoLimit = 50

// GenerateEstimateIIF serializes the quote into a tab-delimited ledger
// transaction block: a TRNS header posting the subtotal to the receivable
// account, one sign-inverted SPL line per item against the income account,
// closed by ENDTRNS. The block is verified to balance (Σ SPL == −TRNS)
// before a single byte is produced, because the importer silently drops
// unbalanced transactions. Lines end with CRLF; the desktop importer chokes
// on bare LF files.
func GenerateEstimateIIF(q quote.Quote, s Schedule, accounts appconfig.Accounts) ([]byte, error) {
	subtotal := q.Subtotal()

	var splits quote.Money
	for _, li := range q.Items {
		splits -= li.Total()
	}
	if splits != -subtotal {
		return nil, &UnbalancedTransactionError{Header: subtotal, Splits: splits}
	}

	date := q.Date.Format("01/02/2006")

	memo := truncateRunes(q.ProjectDescription, iifMemoLimit)
	if memo == "" {
		memo = truncateRunes(
			fmt.Sprintf("Deposit %s, %d weekly payments", FormatUSD(s.Deposit), len(s.Installments)),
			iifMemoLimit,
		)
	}

	lines := []string{iifTRNSHeader, iifSPLHeader, iifEndHeader}

	trns, err := iifLine("TRNS",
		field{"TRNSTYPE", "ESTIMATE"},
		field{"DATE", date},
		field{"ACCNT", accounts.Receivable},
		field{"NAME", q.Customer.Name},
		field{"CLASS", ""},
		field{"AMOUNT", subtotal.String()},
		field{"DOCNUM", q.Number},
		field{"MEMO", memo},
	)
	if err != nil {
		return nil, err
	}
	lines = append(lines, trns)

	for _, li := range q.Items {
		desc := truncateRunes(fmt.Sprintf("%s: %s", li.Category, li.Description), iifMemoLimit)
		spl, err := iifLine("SPL",
			field{"TRNSTYPE", "ESTIMATE"},
			field{"DATE", date},
			field{"ACCNT", accounts.Income},
			field{"NAME", q.Customer.Name},
			field{"AMOUNT", (-li.Total()).String()},
			field{"DOCNUM", q.Number},
			field{"MEMO", desc},
			field{"QNTY", formatQty(li.Quantity)},
			field{"PRICE", li.Rate.String()},
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, spl)
	}

	lines = append(lines, "ENDTRNS", "")
	return []byte(strings.Join(lines, "\r\n")), nil
}

// ExportEstimateIIF writes the ledger transaction file atomically to
// outPath.
func ExportEstimateIIF(q quote.Quote, s Schedule, accounts appconfig.Accounts, outPath string) error {
	b, err := GenerateEstimateIIF(q, s, accounts)
	if err != nil {
		return err
	}
	return publishFile(outPath, b)
}

type field struct {
	name  string
	value string
}

// iifLine joins a row type and its fields with tabs. IIF has no quoting
// rule, so a field containing a tab or line break cannot be escaped and the
// whole export fails rather than emitting a row the importer would misparse.
func iifLine(rowType string, fields ...field) (string, error) {
	parts := make([]string, 0, len(fields)+1)
	parts = append(parts, rowType)
	for _, f := range fields {
		if strings.ContainsAny(f.value, "\t\r\n") {
			return "", &EscapeEncodingError{Field: f.name}
		}
		parts = append(parts, f.value)
	}
	return strings.Join(parts, "\t"), nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
