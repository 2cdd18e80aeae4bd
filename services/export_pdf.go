package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	appconfig "quotebuilder/config"
	"quotebuilder/quote"
)

var white = &props.Color{Red: 255, Green: 255, Blue: 255}

// RenderQuotePDF lays out the quote and payment schedule as a branded
// Letter-size document, appends the attachments in order, and atomically
// publishes the result at outPath. Image attachments are scaled to fit their
// page; PDF attachments are embedded page-for-page. Any failure aborts
// before outPath is touched, so a partial document is never visible.
func RenderQuotePDF(q quote.Quote, s Schedule, cfg appconfig.Config, outPath string) error {
	atts, err := preflightAttachments(q.Attachments)
	if err != nil {
		return err
	}

	workDir, err := os.MkdirTemp(filepath.Dir(outPath), ".quote-render-*")
	if err != nil {
		return &FileWriteError{Path: outPath, Err: err}
	}
	defer os.RemoveAll(workDir)

	doc, err := newQuoteDoc(q, cfg)
	if err != nil {
		return err
	}
	doc.addBody(s)

	// The document is built as segments: embedding a PDF attachment closes
	// the current segment so the attachment's own pages can be merged in
	// place, keeping the user-specified attachment order.
	var inputs []string
	flush := func() error {
		if doc.rows == 0 {
			return nil
		}
		seg := filepath.Join(workDir, fmt.Sprintf("segment-%03d.pdf", len(inputs)))
		if err := doc.writeTo(seg); err != nil {
			return err
		}
		inputs = append(inputs, seg)
		next, err := newQuoteDoc(q, cfg)
		if err != nil {
			return err
		}
		doc = next
		return nil
	}

	for i, a := range atts {
		if a.kind == attachmentImage {
			doc.addImageAttachment(i+1, a)
			continue
		}
		doc.addPDFAttachmentLabel(i+1, a)
		if err := flush(); err != nil {
			return err
		}
		inputs = append(inputs, a.Path)
	}
	if err := flush(); err != nil {
		return err
	}

	final := inputs[0]
	if len(inputs) > 1 {
		merged := filepath.Join(workDir, "merged.pdf")
		if err := api.MergeCreateFile(inputs, merged, false, nil); err != nil {
			return fmt.Errorf("merge attachment pages: %w", err)
		}
		final = merged
	}
	if err := os.Rename(final, outPath); err != nil {
		return &FileWriteError{Path: outPath, Err: err}
	}
	return nil
}

// quoteDoc wraps one maroto document segment with the quote, palette and a
// row counter so empty trailing segments are never written.
type quoteDoc struct {
	m    core.Maroto
	q    quote.Quote
	cfg  appconfig.Config
	rows int

	red, black, gray, lightGray *props.Color
}

func newQuoteDoc(q quote.Quote, cfg appconfig.Config) (*quoteDoc, error) {
	d := &quoteDoc{
		q:         q,
		cfg:       cfg,
		red:       hexColor(cfg.Brand.Red),
		black:     hexColor(cfg.Brand.Black),
		gray:      hexColor(cfg.Brand.Gray),
		lightGray: hexColor(cfg.Brand.LightGray),
	}

	pdfCfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(13).
		WithTopMargin(13).
		WithRightMargin(13).
		Build()
	d.m = maroto.New(pdfCfg)

	// Brand header on every page, including attachment pages.
	if err := d.m.RegisterHeader(d.headerRows()...); err != nil {
		return nil, fmt.Errorf("register pdf header: %w", err)
	}
	return d, nil
}

func (d *quoteDoc) add(rows ...core.Row) {
	d.m.AddRows(rows...)
	d.rows += len(rows)
}

func (d *quoteDoc) addPage(p core.Page) {
	d.m.AddPages(p)
	d.rows++
}

func (d *quoteDoc) writeTo(path string) error {
	doc, err := d.m.Generate()
	if err != nil {
		return fmt.Errorf("generate pdf: %w", err)
	}
	if err := os.WriteFile(path, doc.GetBytes(), 0o644); err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	return nil
}

// headerRows renders the company banner, contact line and red rule that
// repeat on every page.
func (d *quoteDoc) headerRows() []core.Row {
	co := d.cfg.Company
	return []core.Row{
		row.New(11).Add(
			col.New(8).Add(
				text.New(co.Name, props.Text{Size: 18, Style: fontstyle.Bold, Color: d.red}),
				text.New(co.Tagline, props.Text{Size: 8, Top: 8, Color: d.gray}),
			),
			col.New(4).Add(
				text.New("ESTIMATE", props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right, Color: d.black}),
				text.New("#"+d.q.Number, props.Text{Size: 9, Top: 7, Align: align.Right, Color: d.gray}),
			),
		),
		row.New(5).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("%s  |  %s  |  %s", co.Address, co.Phone, co.Email),
					props.Text{Size: 7, Color: d.gray}),
			),
		),
		row.New(4).Add(
			col.New(12).Add(
				line.New(props.Line{Color: d.red, Thickness: 0.8, SizePercent: 100}),
			),
		),
	}
}

func (d *quoteDoc) addBody(s Schedule) {
	q := d.q

	// Quote details beside the customer block.
	left := []string{
		"Date: " + q.Date.Format("01/02/2006"),
		"Valid Until: " + q.ValidUntil().Format("01/02/2006"),
		fmt.Sprintf("Estimated Duration: %d weeks", q.DurationWeeks),
	}
	right := []string{q.Customer.Name}
	if q.Customer.Address != "" {
		right = append(right, q.Customer.Address)
	}
	if cl := q.Customer.CityLine(); cl != "" {
		right = append(right, cl)
	}
	if q.Customer.Phone != "" {
		right = append(right, q.Customer.Phone)
	}
	if q.Customer.Email != "" {
		right = append(right, q.Customer.Email)
	}

	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		var leftText, rightText string
		if i < len(left) {
			leftText = left[i]
		}
		if i < len(right) {
			rightText = right[i]
		}
		bodyStyle := props.Text{Size: 9, Color: d.gray}
		rightStyle := bodyStyle
		if i == 0 {
			rightStyle.Style = fontstyle.Bold
			rightStyle.Color = d.black
		}
		d.add(row.New(5).Add(
			col.New(6).Add(text.New(leftText, bodyStyle)),
			col.New(6).Add(text.New(rightText, rightStyle)),
		))
	}

	if q.ProjectDescription != "" {
		d.addSectionTitle("PROJECT DESCRIPTION")
		d.addParagraph(q.ProjectDescription)
	}

	d.addSectionTitle("SCOPE OF WORK")
	d.addItemsTable()

	d.addSectionTitle("PAYMENT SCHEDULE")
	d.addScheduleTable(s)

	if q.Notes != "" {
		d.addSectionTitle("TERMS & CONDITIONS")
		d.addParagraph(q.Notes)
	}

	d.addSignatureBlock()

	d.add(row.New(8))
	d.add(row.New(4).Add(
		col.New(12).Add(
			text.New("Generated on "+q.Date.Format("01/02/2006"), props.Text{Size: 7, Color: d.gray}),
		),
	))
}

func (d *quoteDoc) addSectionTitle(title string) {
	d.add(
		row.New(4),
		row.New(6).Add(
			col.New(12).Add(
				text.New(title, props.Text{Size: 11, Style: fontstyle.Bold, Color: d.red}),
			),
		),
	)
}

func (d *quoteDoc) addParagraph(s string) {
	for _, ln := range strings.Split(s, "\n") {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		// Rough wrap estimate so long lines get enough row height.
		lines := 1 + len(ln)/95
		d.add(row.New(float64(4*lines)).Add(
			col.New(12).Add(text.New(ln, props.Text{Size: 9, Color: d.gray})),
		))
	}
}

// addItemsTable renders the line items grouped by category, each group
// followed by its subtotal, closed by the grand total row. Rows are atomic:
// a group may straddle a page break between rows but a row never splits.
func (d *quoteDoc) addItemsTable() {
	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: white}
	headerLeft := headerText
	headerLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: d.black}

	d.add(row.New(8).Add(
		col.New(2).Add(text.New("Category", headerLeft)).WithStyle(&headerCell),
		col.New(4).Add(text.New("Description", headerLeft)).WithStyle(&headerCell),
		col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
		col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
		col.New(2).Add(text.New("Rate", headerText)).WithStyle(&headerCell),
		col.New(2).Add(text.New("Amount", headerText)).WithStyle(&headerCell),
	))

	body := props.Text{Size: 8, Color: d.black}
	bodyRight := body
	bodyRight.Align = align.Right
	catText := props.Text{Size: 8, Style: fontstyle.Bold, Color: d.black}
	subText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: d.gray}
	subCell := props.Cell{BackgroundColor: d.lightGray}

	for _, g := range GroupByCategory(d.q.Items) {
		for i, li := range g.Items {
			cat := ""
			if i == 0 {
				cat = string(g.Category)
			}
			d.add(row.New(6).Add(
				col.New(2).Add(text.New(cat, catText)),
				col.New(4).Add(text.New(li.Description, body)),
				col.New(1).Add(text.New(formatQty(li.Quantity), bodyRight)),
				col.New(1).Add(text.New(li.Unit, body)),
				col.New(2).Add(text.New(FormatUSD(li.Rate), bodyRight)),
				col.New(2).Add(text.New(FormatUSD(li.Total()), bodyRight)),
			))
		}
		d.add(row.New(6).Add(
			col.New(8).Add(text.New(string(g.Category)+" subtotal", subText)).WithStyle(&subCell),
			col.New(4).Add(text.New(FormatUSD(g.Subtotal), subText)).WithStyle(&subCell),
		))
	}

	totalText := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: white}
	totalCell := props.Cell{BackgroundColor: d.black}
	d.add(row.New(8).Add(
		col.New(8).Add(text.New("TOTAL", totalText)).WithStyle(&totalCell),
		col.New(4).Add(text.New(FormatUSD(d.q.Subtotal()), totalText)).WithStyle(&totalCell),
	))
}

func (d *quoteDoc) addScheduleTable(s Schedule) {
	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left, Color: white}
	headerRight := headerText
	headerRight.Align = align.Right
	headerCell := props.Cell{BackgroundColor: d.black}

	d.add(row.New(8).Add(
		col.New(4).Add(text.New("Payment", headerText)).WithStyle(&headerCell),
		col.New(4).Add(text.New("When", headerText)).WithStyle(&headerCell),
		col.New(4).Add(text.New("Amount", headerRight)).WithStyle(&headerCell),
	))

	body := props.Text{Size: 8, Color: d.black}
	bodyRight := body
	bodyRight.Align = align.Right

	scheduleRow := func(payment, when string, amount quote.Money, shade bool) {
		cols := []core.Col{
			col.New(4).Add(text.New(payment, body)),
			col.New(4).Add(text.New(when, body)),
			col.New(4).Add(text.New(FormatUSD(amount), bodyRight)),
		}
		if shade {
			shadeCell := props.Cell{BackgroundColor: d.lightGray}
			for i := range cols {
				cols[i] = cols[i].WithStyle(&shadeCell)
			}
		}
		d.add(row.New(6).Add(cols...))
	}

	scheduleRow("Deposit (20%)", "Upon acceptance", s.Deposit, false)
	for _, inst := range s.Installments {
		scheduleRow(
			fmt.Sprintf("Payment %d", inst.Week),
			fmt.Sprintf("Week %d", inst.Week),
			inst.Amount,
			inst.Week%2 == 1,
		)
	}

	totalText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: d.black}
	totalCell := props.Cell{BackgroundColor: d.lightGray}
	d.add(row.New(7).Add(
		col.New(8).Add(text.New("TOTAL", totalText)).WithStyle(&totalCell),
		col.New(4).Add(text.New(FormatUSD(s.Total()), totalText)).WithStyle(&totalCell),
	))
}

func (d *quoteDoc) addSignatureBlock() {
	d.add(row.New(10))

	label := props.Text{Size: 9, Style: fontstyle.Bold, Color: d.black}
	small := props.Text{Size: 7, Color: d.gray}

	d.add(row.New(5).Add(
		col.New(6).Add(text.New("ACCEPTED BY:", label)),
		col.New(6).Add(text.New(d.cfg.Company.Name+":", label)),
	))
	d.add(row.New(10).Add(
		col.New(5).Add(line.New(props.Line{Color: d.gray, Thickness: 0.3, OffsetPercent: 90})),
		col.New(1),
		col.New(5).Add(line.New(props.Line{Color: d.gray, Thickness: 0.3, OffsetPercent: 90})),
		col.New(1),
	))
	d.add(row.New(4).Add(
		col.New(6).Add(text.New("Customer Signature / Date", small)),
		col.New(6).Add(text.New("Authorized Signature / Date", small)),
	))
}

// addImageAttachment puts the label and the image on a fresh page. The image
// is scaled into the available area preserving its aspect ratio, so an image
// larger than the page shrinks to fit.
func (d *quoteDoc) addImageAttachment(n int, a resolvedAttachment) {
	d.addPage(page.New().Add(
		d.attachmentLabelRow(n, a),
		row.New(195).Add(
			col.New(12).Add(image.NewFromBytes(a.data, a.ext, props.Rect{Center: true, Percent: 100})),
		),
	))
}

// addPDFAttachmentLabel renders the banner page that precedes an embedded
// PDF attachment; the attachment's own pages are merged in directly after.
func (d *quoteDoc) addPDFAttachmentLabel(n int, a resolvedAttachment) {
	d.addPage(page.New().Add(
		d.attachmentLabelRow(n, a),
		row.New(5).Add(
			col.New(12).Add(
				text.New("The following pages are reproduced from "+filepath.Base(a.Path)+".",
					props.Text{Size: 8, Color: d.gray}),
			),
		),
	))
}

func (d *quoteDoc) attachmentLabelRow(n int, a resolvedAttachment) core.Row {
	label := a.Label
	if label == "" {
		label = filepath.Base(a.Path)
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Attachment %d: %s", n, label),
				props.Text{Size: 10, Style: fontstyle.Bold, Color: d.black}),
		),
	)
}

func hexColor(hex string) *props.Color {
	var r, g, b int
	fmt.Sscanf(strings.TrimPrefix(hex, "#"), "%02x%02x%02x", &r, &g, &b)
	return &props.Color{Red: r, Green: g, Blue: b}
}
