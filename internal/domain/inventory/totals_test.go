package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/petmaison-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculateTotals_UnaLinea(t *testing.T) {
	got := inventory.CalculateTotals([]inventory.Line{
		{Quantity: 3, UnitAmount: d("1000"), Discount: decimal.Zero, VATRate: d("0.19")},
	})

	assert.True(t, got.SubtotalNet.Equal(d("3000")), "subtotal: %s", got.SubtotalNet)
	assert.True(t, got.VAT.Equal(d("570")), "vat: %s", got.VAT)
	assert.True(t, got.Total.Equal(d("3570")), "total: %s", got.Total)
	assert.True(t, got.Discount.IsZero())
}

func TestCalculateTotals_CompraDosLineas(t *testing.T) {
	got := inventory.CalculateTotals([]inventory.Line{
		{Quantity: 5, UnitAmount: d("1000"), VATRate: d("0.19")},
		{Quantity: 3, UnitAmount: d("2000"), VATRate: d("0.19")},
	})

	assert.True(t, got.SubtotalNet.Equal(d("11000")))
	assert.True(t, got.VAT.Equal(d("2090")))
	assert.True(t, got.Total.Equal(d("13090")))
}

func TestCalculateTotals_ConDescuento(t *testing.T) {
	got := inventory.CalculateTotals([]inventory.Line{
		{Quantity: 2, UnitAmount: d("1500"), Discount: d("500"), VATRate: d("0.19")},
		{Quantity: 1, UnitAmount: d("990.50"), Discount: decimal.Zero, VATRate: d("0")},
	})

	assert.True(t, got.SubtotalNet.Equal(d("3490.50")), "subtotal: %s", got.SubtotalNet)
	assert.True(t, got.Discount.Equal(d("500")))
	assert.True(t, got.VAT.Equal(d("475")), "vat: %s", got.VAT)
	assert.True(t, got.Total.Equal(d("3965.50")))
}

func TestCalculateTotals_SinLineas(t *testing.T) {
	got := inventory.CalculateTotals(nil)
	assert.True(t, got.SubtotalNet.IsZero())
	assert.True(t, got.VAT.IsZero())
	assert.True(t, got.Total.IsZero())
}

func TestLineTotal(t *testing.T) {
	line := inventory.Line{Quantity: 3, UnitAmount: d("1000"), Discount: d("100"), VATRate: d("0.19")}
	assert.True(t, inventory.LineTotal(line).Equal(d("3451")), "line total: %s", inventory.LineTotal(line))
}

func TestCalculateTotals_SinDerivaDecimal(t *testing.T) {
	lines := make([]inventory.Line, 0, 10)
	for i := 0; i < 10; i++ {
		lines = append(lines, inventory.Line{Quantity: 1, UnitAmount: d("0.10"), VATRate: d("0.19")})
	}
	got := inventory.CalculateTotals(lines)
	assert.True(t, got.SubtotalNet.Equal(d("1")))
	// 0.019 por línea se guarda como 0.02.
	assert.True(t, got.VAT.Equal(d("0.20")), "vat: %s", got.VAT)
	assert.True(t, got.Total.Equal(d("1.20")))
}

func TestCalculateTotals_EscalaDeMoneda(t *testing.T) {
	lines := []inventory.Line{
		{Quantity: 1, UnitAmount: d("1.01"), VATRate: d("0.19")},    // iva 0.1919
		{Quantity: 3, UnitAmount: d("333.333"), VATRate: d("0.19")}, // neto 999.999
		{Quantity: 1, UnitAmount: d("0.05"), VATRate: d("0.19")},    // iva 0.0095
	}
	got := inventory.CalculateTotals(lines)

	sum := decimal.Zero
	for _, l := range lines {
		lt := inventory.LineTotal(l)
		assert.LessOrEqual(t, -lt.Exponent(), int32(inventory.MoneyScale), "line total %s", lt)
		sum = sum.Add(lt)
	}
	assert.True(t, got.Total.Equal(sum), "Σ líneas %s, total %s", sum, got.Total)
	for _, v := range []decimal.Decimal{got.SubtotalNet, got.VAT, got.Total} {
		assert.True(t, v.Equal(v.Round(inventory.MoneyScale)), "%s tiene más de dos decimales", v)
	}
	assert.True(t, got.SubtotalNet.Equal(d("1001.06")), "subtotal: %s", got.SubtotalNet)
	assert.True(t, got.VAT.Equal(d("190.20")), "vat: %s", got.VAT)
}
