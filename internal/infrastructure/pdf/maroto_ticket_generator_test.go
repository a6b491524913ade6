package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petmaison-api/internal/application/sales"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/infrastructure/pdf"
)

func TestGenerateTicket_DevuelvePDF(t *testing.T) {
	g := pdf.NewMarotoTicketGenerator()
	sale := &entity.Sale{
		ID:            "3f2a9c1e-0000-0000-0000-000000000000",
		Date:          time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		Status:        entity.SaleConfirmed,
		PaymentMethod: entity.PaymentCard,
		SubtotalNet:   decimal.RequireFromString("3000"),
		Discount:      decimal.Zero,
		VAT:           decimal.RequireFromString("570"),
		Total:         decimal.RequireFromString("3570"),
	}
	out, err := g.GenerateTicket(context.Background(), sales.TicketData{
		Store: sales.StoreInfo{Name: "PetMaison", RUT: "76.123.456-7"},
		Sale:  sale,
		Lines: []sales.TicketLine{{
			Quantity: 3, SKU: "ALI-001", Name: "Alimento perro 3kg",
			UnitPriceNet: decimal.RequireFromString("1000"), Discount: decimal.Zero,
			LineTotal: decimal.RequireFromString("3570"),
		}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el resultado debe ser un PDF")
}

func TestGenerateTicket_SinVenta(t *testing.T) {
	_, err := pdf.NewMarotoTicketGenerator().GenerateTicket(context.Background(), sales.TicketData{})
	assert.Error(t, err)
}
