package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/models"
)

func TestComputeItemPercentageDiscount(t *testing.T) {
	it := ComputeItem(models.ItemInput{Name: "Sugar", Qty: "2", Unit: "KG", Rate: "100", Discount: "10%"})

	require.InDelta(t, 180, it.Amount, 1e-6)
	assert.Equal(t, "10%", it.Discount)
	assert.Equal(t, 2.0, it.Qty)
	assert.Equal(t, 100.0, it.Rate)
}

func TestComputeItemAbsoluteDiscount(t *testing.T) {
	it := ComputeItem(models.ItemInput{Name: "Rice", Qty: "3", Unit: "KG", Rate: "50", Discount: "15"})

	require.InDelta(t, 135, it.Amount, 1e-6)
	assert.Equal(t, "Rs.15", it.Discount)
}

func TestComputeItemMalformedDiscount(t *testing.T) {
	it := ComputeItem(models.ItemInput{Name: "Salt", Qty: "1", Unit: "PCS", Rate: "20", Discount: "abc"})

	require.InDelta(t, 20, it.Amount, 1e-6)
}

func TestComputeItemMalformedPercentage(t *testing.T) {
	it := ComputeItem(models.ItemInput{Name: "Salt", Qty: "1", Unit: "PCS", Rate: "20", Discount: "abc%"})

	require.InDelta(t, 20, it.Amount, 1e-6)
}

func TestComputeItemEmptyDiscount(t *testing.T) {
	it := ComputeItem(models.ItemInput{Name: "Oil", Qty: "4", Unit: "LTR", Rate: "25"})

	require.InDelta(t, 100, it.Amount, 1e-6)
	assert.Equal(t, "0", it.Discount)
}

func TestComputeItemMalformedNumbers(t *testing.T) {
	it := ComputeItem(models.ItemInput{Name: "Ghee", Qty: "x", Unit: "KG", Rate: "y"})

	assert.Zero(t, it.Qty)
	assert.Zero(t, it.Rate)
	assert.Zero(t, it.Amount)
}

// A discount larger than the gross is not clamped; negative line
// amounts are permitted.
func TestComputeItemDiscountExceedsGross(t *testing.T) {
	it := ComputeItem(models.ItemInput{Name: "Tea", Qty: "1", Unit: "PKT", Rate: "10", Discount: "25"})

	require.InDelta(t, -15, it.Amount, 1e-6)
}

func TestComputeItemDeterministic(t *testing.T) {
	in := models.ItemInput{Name: "Widget", Qty: "5", Unit: "PCS", Rate: "19.99", Discount: "7.5%"}

	assert.Equal(t, ComputeItem(in), ComputeItem(in))
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		gross    float64
		discount string
		want     float64
	}{
		{200, "10%", 20},
		{150, "15", 15},
		{20, "abc", 0},
		{100, "", 0},
		{100, "  ", 0},
		{100, " 12.5% ", 12.5},
		{100, "10 %", 10},
		{0, "50%", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, DiscountAmount(tt.gross, tt.discount), 1e-6,
			"gross=%v discount=%q", tt.gross, tt.discount)
	}
}

func TestDiscountLabel(t *testing.T) {
	assert.Equal(t, "0", DiscountLabel(""))
	assert.Equal(t, "0", DiscountLabel("0"))
	assert.Equal(t, "0", DiscountLabel("  "))
	assert.Equal(t, "10%", DiscountLabel("10%"))
	assert.Equal(t, "Rs.15", DiscountLabel("15"))
}

func TestComputeTotalSumsNetAmounts(t *testing.T) {
	items := []models.InvoiceItem{
		{Amount: 180},
		{Amount: 135},
		{Amount: -15},
		{Amount: 0.1},
	}
	var want float64
	for _, it := range items {
		want += it.Amount
	}

	require.InDelta(t, want, ComputeTotal(items), 1e-6)
}

func TestComputeTotalEmpty(t *testing.T) {
	assert.Zero(t, ComputeTotal(nil))
}
