package inventory

import "github.com/shopspring/decimal"

// Line cantidad, valor unitario neto, descuento y tasa de IVA de una línea de documento.
// Para compras UnitAmount es el costo neto y Discount es cero.
type Line struct {
	Quantity   int
	UnitAmount decimal.Decimal
	Discount   decimal.Decimal
	VATRate    decimal.Decimal
}

// Totals totales del encabezado de un documento.
type Totals struct {
	SubtotalNet decimal.Decimal
	Discount    decimal.Decimal
	VAT         decimal.Decimal
	Total       decimal.Decimal
}

// MoneyScale decimales con que se guardan los montos (NUMERIC(18,2)).
const MoneyScale = 2

// Money redondea un monto a MoneyScale decimales.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Net base imponible de la línea: qty * unit - discount, a escala de moneda.
func (l Line) Net() decimal.Decimal {
	return Money(decimal.NewFromInt(int64(l.Quantity)).Mul(l.UnitAmount).Sub(l.Discount))
}

// VAT IVA de la línea redondeado a escala de moneda.
func (l Line) VAT() decimal.Decimal {
	return Money(l.Net().Mul(l.VATRate))
}

// LineTotal total de la línea con IVA: net + round(net * vat_rate).
func LineTotal(l Line) decimal.Decimal {
	return l.Net().Add(l.VAT())
}

// CalculateTotals recalcula los totales desde el conjunto completo de líneas.
// El IVA se redondea por línea, de modo que Σ LineTotal = Total.
//
//	subtotal_net = Σ(qty*unit - discount)
//	vat          = Σ round((qty*unit - discount) * vat_rate)
//	total        = subtotal_net + vat
func CalculateTotals(lines []Line) Totals {
	t := Totals{
		SubtotalNet: decimal.Zero,
		Discount:    decimal.Zero,
		VAT:         decimal.Zero,
	}
	for _, l := range lines {
		t.SubtotalNet = t.SubtotalNet.Add(l.Net())
		t.Discount = t.Discount.Add(l.Discount)
		t.VAT = t.VAT.Add(l.VAT())
	}
	t.Total = t.SubtotalNet.Add(t.VAT)
	return t
}
