// Package pdf genera el ticket de venta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + RUT          │  N° Venta + Fecha          │
//	│  CLIENTE: Nombre + RUT + comuna                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit neto | Dcto | Total         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Neto / Descuento / IVA / TOTAL                     │
//	│  Medio de pago                                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/petmaison-api/internal/application/sales"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 94, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ sales.TicketGenerator = (*MarotoTicketGenerator)(nil)

// MarotoTicketGenerator implementa sales.TicketGenerator usando Maroto v2.
type MarotoTicketGenerator struct {
	printer *message.Printer
}

// NewMarotoTicketGenerator construye el generador con formato numérico es-CL.
func NewMarotoTicketGenerator() *MarotoTicketGenerator {
	return &MarotoTicketGenerator{printer: message.NewPrinter(language.MustParse("es-CL"))}
}

// GenerateTicket genera el PDF y devuelve sus bytes.
func (g *MarotoTicketGenerator) GenerateTicket(_ context.Context, data sales.TicketData) ([]byte, error) {
	if data.Sale == nil {
		return nil, fmt.Errorf("pdf: venta requerida")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ticket de venta", true).
		WithAuthor(nonEmpty(data.Store.Name, "PetMaison"), true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableDetailRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(data))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Medio de pago: "+string(data.Sale.PaymentMethod), props.Text{Size: 8, Top: 2, Color: colorGray}),
	)))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("¡Gracias por su compra!", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorPrimary, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoTicketGenerator) headerRow(data sales.TicketData) core.Row {
	s := data.Sale
	number := strings.ToUpper(s.ID)
	if len(number) > 8 {
		number = number[:8]
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(data.Store.Name, "PetMaison"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUT: "+nonEmpty(data.Store.RUT, "-"), props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New(nonEmpty(data.Store.Address, ""), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TICKET DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+s.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(data sales.TicketData) core.Row {
	c := data.Customer
	if c == nil {
		return row.New(8).Add(col.New(12).Add(
			text.New("CLIENTE: consumidor final", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("RUT: %s   |   %s, %s",
				nonEmpty(c.RUT, "-"),
				nonEmpty(c.Address, "-"),
				nonEmpty(c.Comuna, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("P. Unit neto", 2, align.Right),
		h("Dcto", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func (g *MarotoTicketGenerator) tableDetailRows(lines []sales.TicketLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.Name
		if l.SKU != "" {
			name = l.SKU + " · " + l.Name
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(l.UnitPriceNet), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(l.Discount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(l.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *MarotoTicketGenerator) totalsRow(data sales.TicketData) core.Row {
	s := data.Sale
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(28).Add(
		col.New(6),
		col.New(3).Add(
			label("Neto:"),
			label("Descuento:"),
			label("IVA:"),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2}),
		),
		col.New(3).Add(
			value(g.money(s.SubtotalNet)),
			value(g.money(s.Discount)),
			value(g.money(s.VAT)),
			text.New(g.money(s.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}),
		),
	)
}

// money formatea pesos chilenos sin decimales con separador de miles local.
func (g *MarotoTicketGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprintf("%d", d.Round(0).IntPart())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
