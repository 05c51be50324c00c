package layout

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/models"
)

var testBiz = models.BusinessProfile{
	Name:    "Sharma Traders",
	Address: "12 Gandhi Road, Pune",
	Phone:   "9876543210",
	City:    "Pune",
}

func testInvoice(itemCount int) models.Invoice {
	items := make([]models.InvoiceItem, itemCount)
	for i := range items {
		items[i] = models.InvoiceItem{
			Name: fmt.Sprintf("Item %d", i+1), Qty: 2, Unit: "PCS", Rate: 50,
			Discount: "0", Amount: 100,
		}
	}
	return models.Invoice{
		InvoiceNo: "INV-42",
		BillTo:    "Acme Traders\n12 Market Road",
		Date:      time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Items:     items,
		Total:     float64(itemCount) * 100,
		Received:  50,
	}
}

// rowBoxes counts bordered item-table rows across all pages; data and
// padding rows are the only boxes with RowHeight.
func rowBoxes(p Plan) int {
	n := 0
	for _, page := range p.Pages {
		for _, op := range page.Ops {
			if b, ok := op.(Box); ok && b.H == RowHeight && b.X == Margin {
				n++
			}
		}
	}
	return n
}

func texts(p Plan) []string {
	var out []string
	for _, page := range p.Pages {
		for _, op := range page.Ops {
			if t, ok := op.(TextRun); ok {
				out = append(out, t.Text)
			}
		}
	}
	return out
}

func contains(ts []string, want string) bool {
	for _, t := range ts {
		if t == want {
			return true
		}
	}
	return false
}

func TestBuildPadsToMinimumRows(t *testing.T) {
	p := Build(testInvoice(2), testBiz)

	assert.Equal(t, MinRows, rowBoxes(p))
}

func TestBuildExtendsBeyondMinimumRows(t *testing.T) {
	p := Build(testInvoice(12), testBiz)

	assert.Equal(t, 12, rowBoxes(p))
}

func TestBuildSections(t *testing.T) {
	p := Build(testInvoice(1), testBiz)
	ts := texts(p)

	for _, want := range []string{
		"BILL OF SUPPLY",
		"ORIGINAL FOR RECIPIENT",
		"Sharma Traders",
		"12 Gandhi Road, Pune",
		"Mobile: 9876543210",
		"BILL TO",
		"Acme Traders",
		"12 Market Road",
		"Invoice No.",
		"INV-42",
		"TOTAL",
		"RECEIVED AMOUNT",
		"Total Amount (in words)",
		"One Hundred Rupees",
		"Terms and Conditions",
		"1. Goods once sold will not be taken back or exchanged",
		"2. All disputes are subject to Pune jurisdiction only",
		"Authorized Signatory",
		"For Sharma Traders",
	} {
		assert.True(t, contains(ts, want), "missing text run %q", want)
	}
}

func TestBuildTableHeaderLabels(t *testing.T) {
	ts := texts(Build(testInvoice(1), testBiz))

	for _, label := range colLabels {
		assert.True(t, contains(ts, label), "missing column label %q", label)
	}
}

func TestBuildDatesFormattedDDMMYYYY(t *testing.T) {
	ts := texts(Build(testInvoice(1), testBiz))

	assert.True(t, contains(ts, "15/08/2026"))
	assert.True(t, contains(ts, "30/08/2026"))
}

func TestBuildTruncatesLongNames(t *testing.T) {
	inv := testInvoice(1)
	inv.Items[0].Name = strings.Repeat("Very Long Item Name ", 5)
	ts := texts(Build(inv, testBiz))

	found := false
	for _, s := range ts {
		if strings.HasSuffix(s, "...") {
			found = true
			assert.LessOrEqual(t, len([]rune(s)), maxNameLen)
		}
	}
	assert.True(t, found, "expected a truncated item name")
}

func TestBuildShortNamesNotTruncated(t *testing.T) {
	ts := texts(Build(testInvoice(1), testBiz))

	assert.True(t, contains(ts, "Item 1"))
}

func TestBuildSinglePageForShortInvoice(t *testing.T) {
	p := Build(testInvoice(3), testBiz)

	assert.Len(t, p.Pages, 1)
}

func TestBuildPaginatesLongInvoice(t *testing.T) {
	p := Build(testInvoice(60), testBiz)

	require.Greater(t, len(p.Pages), 1)
	assert.Equal(t, 60, rowBoxes(p))

	// Trailing blocks land on the last page
	last := texts(Plan{Pages: p.Pages[len(p.Pages)-1:]})
	assert.True(t, contains(last, "TOTAL"))
	assert.True(t, contains(last, "Total Amount (in words)"))

	// Continuation pages repeat the table header
	second := texts(Plan{Pages: p.Pages[1:2]})
	assert.True(t, contains(second, "ITEMS"))
}

// The blocks after the items table move to a fresh page as one unit;
// no item count may leave the totals on one page and the words or
// terms on the next.
func TestBuildTrailingBlocksStayTogether(t *testing.T) {
	trailing := []string{
		"TOTAL", "RECEIVED AMOUNT", "Total Amount (in words)",
		"Terms and Conditions", "Authorized Signatory",
	}
	for n := 1; n <= 80; n++ {
		p := Build(testInvoice(n), testBiz)

		last := texts(Plan{Pages: p.Pages[len(p.Pages)-1:]})
		for _, want := range trailing {
			assert.True(t, contains(last, want),
				"items=%d: %q missing from the last page", n, want)
		}
		for i := 0; i < len(p.Pages)-1; i++ {
			earlier := texts(Plan{Pages: p.Pages[i : i+1]})
			assert.False(t, contains(earlier, "TOTAL"),
				"items=%d: totals row split onto page %d", n, i+1)
		}
	}
}

func TestBuildZeroTotalWords(t *testing.T) {
	inv := testInvoice(1)
	inv.Total = 0
	ts := texts(Build(inv, testBiz))

	assert.True(t, contains(ts, "Rupees"))
}

func TestBuildDeterministic(t *testing.T) {
	inv := testInvoice(5)
	a := Build(inv, testBiz)
	b := Build(inv, testBiz)

	assert.True(t, reflect.DeepEqual(a, b))
}

func TestBuildBillToCappedAtFourLines(t *testing.T) {
	inv := testInvoice(1)
	inv.BillTo = "L1\nL2\nL3\nL4\nL5\nL6"
	ts := texts(Build(inv, testBiz))

	assert.True(t, contains(ts, "L4"))
	assert.False(t, contains(ts, "L5"))
}

func TestBuildPageGeometry(t *testing.T) {
	p := Build(testInvoice(1), testBiz)

	assert.Equal(t, PageWidth, p.PageW)
	assert.Equal(t, PageHeight, p.PageH)
}
