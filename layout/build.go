package layout

import (
	"strconv"
	"strings"

	"invoicegen/calc"
	"invoicegen/models"
)

// A4 page geometry in points, with the fixed content margin used by
// every section.
const (
	PageWidth  = 595.28
	PageHeight = 841.89
	Margin     = 30.0

	// MinRows is the minimum visual row count of the items table;
	// sparse invoices are padded with blank rows up to this count.
	MinRows = 8

	// RowHeight is the fixed height of a data or padding row.
	RowHeight = 20.0

	headerRowHeight = 25.0
	totalsRowHeight = 25.0

	wordsBlockHeight     = 45.0
	termsBlockHeight     = 55.0
	signatureBlockHeight = 40.0

	// trailingHeight is the combined height of everything drawn after
	// the items table, gaps included. Reserved in one piece so the
	// totals, words, terms and signature never split across pages.
	trailingHeight = 2*totalsRowHeight + 10 + wordsBlockHeight + 10 + termsBlockHeight + 10 + signatureBlockHeight

	contentWidth = PageWidth - 2*Margin
	maxY         = PageHeight - Margin - 10

	// Item names longer than this are hard-truncated with an ellipsis;
	// rows are single-line and never wrap.
	maxNameLen = 35

	headerGray = "#f0f0f0"

	printDateFormat = "02/01/2006"
)

// Column boundaries of the items table as offsets from the left margin.
var colOffsets = [7]float64{0, 30, 225, 275, 315, 385, 455}

var colLabels = [7]string{"S.NO", "ITEMS", "QTY.", "UNIT", "RATE", "DISCOUNT", "AMOUNT"}

// Build lays out the full document for one invoice. The result is
// deterministic for identical inputs and safe for concurrent use.
func Build(inv models.Invoice, biz models.BusinessProfile) Plan {
	b := &builder{}
	b.startPage()
	b.titleBar()
	b.businessBlock(biz)
	b.partyBlock(inv)
	b.itemsTable(inv.Items)
	// The trailing blocks are kept together: when they no longer fit
	// under the final row they all move to a fresh page.
	b.ensureSpace(trailingHeight)
	b.totalsRows(inv)
	b.wordsBlock(inv.Total)
	b.termsBlock(biz)
	b.signatureBlock(biz)
	b.flush()
	return Plan{PageW: PageWidth, PageH: PageHeight, Pages: b.pages}
}

type builder struct {
	pages []Page
	ops   []Op
	y     float64
}

func (b *builder) add(ops ...Op) {
	b.ops = append(b.ops, ops...)
}

func (b *builder) flush() {
	b.pages = append(b.pages, Page{Ops: b.ops})
	b.ops = nil
}

// startPage opens a fresh page with the outer content border.
func (b *builder) startPage() {
	b.add(Box{X: Margin, Y: Margin, W: contentWidth, H: PageHeight - 2*Margin, Border: true})
	b.y = Margin + 10
}

// ensureSpace breaks to a new page when the next block of height h
// would cross the bottom margin.
func (b *builder) ensureSpace(h float64) {
	if b.y+h > maxY {
		b.flush()
		b.startPage()
	}
}

func (b *builder) hrule() {
	b.add(Rule{X1: Margin, Y1: b.y, X2: PageWidth - Margin, Y2: b.y})
}

func (b *builder) titleBar() {
	b.add(
		TextRun{Text: "BILL OF SUPPLY", X: Margin + 20, Y: b.y, Size: 16, Bold: true},
		Box{X: PageWidth - 150, Y: b.y - 2, W: 120, H: 15, Fill: headerGray},
		TextRun{Text: "ORIGINAL FOR RECIPIENT", X: PageWidth - 145, Y: b.y + 2, Size: 8},
	)
	b.y += 25
	b.hrule()
}

func (b *builder) businessBlock(biz models.BusinessProfile) {
	b.y += 15
	b.add(TextRun{Text: biz.Name, X: Margin + 20, Y: b.y, Size: 14, Bold: true, Align: "C", Width: contentWidth - 40})
	b.y += 20
	b.add(TextRun{Text: biz.Address, X: Margin + 20, Y: b.y, Size: 10, Align: "C", Width: contentWidth - 40})
	b.y += 15
	b.add(TextRun{Text: "Mobile: " + biz.Phone, X: Margin + 20, Y: b.y, Size: 10, Align: "C", Width: contentWidth - 40})
	b.y += 20
	b.hrule()
}

// partyBlock renders the two-half section: free-text billing address on
// the left, the invoice number and dates mini-table on the right,
// separated by a vertical rule. The block height is fixed; at most four
// address lines fit.
func (b *builder) partyBlock(inv models.Invoice) {
	b.y += 15
	top := b.y
	b.add(TextRun{Text: "BILL TO", X: Margin + 20, Y: top, Size: 10, Bold: true})

	lines := splitLines(inv.BillTo)
	if len(lines) > 4 {
		lines = lines[:4]
	}
	for i, line := range lines {
		b.add(TextRun{Text: line, X: Margin + 20, Y: top + 15 + float64(i)*12, Size: 9})
	}

	metaX := Margin + contentWidth/2 + 10
	b.add(
		TextRun{Text: "Invoice No.", X: metaX, Y: top, Size: 9, Bold: true},
		TextRun{Text: "Invoice Date", X: metaX + 80, Y: top, Size: 9, Bold: true},
		TextRun{Text: "Due Date", X: metaX + 160, Y: top, Size: 9, Bold: true},
		TextRun{Text: inv.InvoiceNo, X: metaX, Y: top + 15, Size: 9},
		TextRun{Text: inv.Date.Format(printDateFormat), X: metaX + 80, Y: top + 15, Size: 9},
		TextRun{Text: inv.DueDate.Format(printDateFormat), X: metaX + 160, Y: top + 15, Size: 9},
		Rule{X1: Margin + contentWidth/2, Y1: top, X2: Margin + contentWidth/2, Y2: top + 60},
	)

	b.y = top + 75
	b.hrule()
}

// tableHeader draws the shaded column-label row and advances the cursor.
func (b *builder) tableHeader() {
	b.add(
		Box{X: Margin, Y: b.y, W: contentWidth, H: headerRowHeight, Fill: headerGray},
		Box{X: Margin, Y: b.y, W: contentWidth, H: headerRowHeight, Border: true},
	)
	for i, label := range colLabels {
		if i > 0 {
			x := Margin + colOffsets[i]
			b.add(Rule{X1: x, Y1: b.y, X2: x, Y2: b.y + headerRowHeight})
		}
		b.add(TextRun{Text: label, X: Margin + colOffsets[i] + 5, Y: b.y + 8, Size: 9, Bold: true})
	}
	b.y += headerRowHeight
}

// itemsTable draws one bordered row per item followed by blank padding
// rows up to MinRows. Rows that no longer fit on the page flow onto a
// continuation page that repeats the table header.
func (b *builder) itemsTable(items []models.InvoiceItem) {
	b.y += 10
	b.tableHeader()

	rows := len(items)
	if rows < MinRows {
		rows = MinRows
	}
	for i := 0; i < rows; i++ {
		if b.y+RowHeight > maxY {
			b.flush()
			b.startPage()
			b.tableHeader()
		}
		b.add(Box{X: Margin, Y: b.y, W: contentWidth, H: RowHeight, Border: true})
		for j := 1; j < len(colOffsets); j++ {
			x := Margin + colOffsets[j]
			b.add(Rule{X1: x, Y1: b.y, X2: x, Y2: b.y + RowHeight})
		}
		if i < len(items) {
			it := items[i]
			b.add(
				TextRun{Text: strconv.Itoa(i + 1), X: Margin + colOffsets[0] + 5, Y: b.y + 6, Size: 8},
				TextRun{Text: truncateName(it.Name), X: Margin + colOffsets[1] + 5, Y: b.y + 6, Size: 8},
				TextRun{Text: formatQty(it.Qty), X: Margin + colOffsets[2] + 5, Y: b.y + 6, Size: 8},
				TextRun{Text: it.Unit, X: Margin + colOffsets[3] + 5, Y: b.y + 6, Size: 8},
				TextRun{Text: calc.Currency + formatQty(it.Rate), X: Margin + colOffsets[4] + 5, Y: b.y + 6, Size: 8},
				TextRun{Text: it.Discount, X: Margin + colOffsets[5] + 5, Y: b.y + 6, Size: 8},
				TextRun{Text: calc.Currency + formatMoney(it.Amount), X: Margin + colOffsets[6] + 5, Y: b.y + 6, Size: 8},
			)
		}
		b.y += RowHeight
	}
}

// totalsRows draws the TOTAL and RECEIVED AMOUNT rows: a shaded label
// cell merged across the first five columns with the amount
// right-aligned in the last column.
func (b *builder) totalsRows(inv models.Invoice) {
	b.totalsRow("TOTAL", inv.Total)
	b.totalsRow("RECEIVED AMOUNT", inv.Received)
	b.y += 10
}

func (b *builder) totalsRow(label string, amount float64) {
	labelW := colOffsets[5]
	b.add(
		Box{X: Margin, Y: b.y, W: labelW, H: totalsRowHeight, Fill: headerGray},
		Box{X: Margin, Y: b.y, W: contentWidth, H: totalsRowHeight, Border: true},
		Rule{X1: Margin + colOffsets[5], Y1: b.y, X2: Margin + colOffsets[5], Y2: b.y + totalsRowHeight},
		Rule{X1: Margin + colOffsets[6], Y1: b.y, X2: Margin + colOffsets[6], Y2: b.y + totalsRowHeight},
		TextRun{Text: label, X: Margin, Y: b.y + 8, Size: 10, Bold: true, Align: "C", Width: labelW},
		TextRun{Text: calc.Currency + " " + formatMoney(amount), X: Margin + colOffsets[6], Y: b.y + 8, Size: 10, Bold: true, Align: "R", Width: contentWidth - colOffsets[6] - 5},
	)
	b.y += totalsRowHeight
}

func (b *builder) wordsBlock(total float64) {
	const h = wordsBlockHeight
	b.add(
		Box{X: Margin, Y: b.y, W: contentWidth, H: h, Border: true},
		TextRun{Text: "Total Amount (in words)", X: Margin + 10, Y: b.y + 8, Size: 10, Bold: true},
		TextRun{Text: calc.AmountInWords(total), X: Margin + 10, Y: b.y + 25, Size: 9},
	)
	b.y += h + 10
}

func (b *builder) termsBlock(biz models.BusinessProfile) {
	const h = termsBlockHeight
	b.add(
		Box{X: Margin, Y: b.y, W: contentWidth, H: h, Border: true},
		TextRun{Text: "Terms and Conditions", X: Margin + 10, Y: b.y + 8, Size: 9, Bold: true},
		TextRun{Text: "1. Goods once sold will not be taken back or exchanged", X: Margin + 10, Y: b.y + 24, Size: 8},
		TextRun{Text: "2. All disputes are subject to " + biz.City + " jurisdiction only", X: Margin + 10, Y: b.y + 38, Size: 8},
	)
	b.y += h + 10
}

// signatureBlock is drawn only when vertical space remains on the page.
func (b *builder) signatureBlock(biz models.BusinessProfile) {
	const h = signatureBlockHeight
	if b.y+h > maxY {
		return
	}
	x := PageWidth - Margin - 210
	b.add(
		TextRun{Text: "For " + biz.Name, X: x, Y: b.y + 8, Size: 9, Bold: true, Align: "R", Width: 200},
		TextRun{Text: "Authorized Signatory", X: x, Y: b.y + 24, Size: 9, Align: "R", Width: 200},
	)
	b.y += h
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) <= maxNameLen {
		return name
	}
	return string(r[:maxNameLen-3]) + "..."
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func splitLines(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	return lines
}
