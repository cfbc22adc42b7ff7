package receipt

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func comboSale() *model.Sale {
	complement := "apto 12"
	return &model.Sale{
		BaseModel:      model.BaseModel{ID: "abcdef12-3456", CreatedAt: time.Date(2026, 10, 14, 15, 4, 0, 0, time.UTC)},
		SaleType:       model.SaleTypeDelivery,
		PaymentMethod:  model.PaymentPix,
		Status:         orderstatus.Paid,
		Subtotal:       d("68"),
		DiscountAmount: d("5"),
		DeliveryFee:    d("6"),
		Total:          d("69"),
		Items: []model.SaleItem{
			{
				ProductName: "Combo", Quantity: d("2"), TotalPrice: d("50"), IsComposite: true,
				Components: []model.ExpandedComponent{
					{ProductName: "Burger", Quantity: d("2")},
					{ProductName: "Fries", Quantity: d("4")},
				},
			},
			{ProductName: "Burger", Quantity: d("1"), TotalPrice: d("18")},
		},
		Delivery: &model.DeliveryInfo{
			CustomerName:  "Ana",
			CustomerPhone: "+5511987654321",
			Street:        "Rua A",
			Number:        "10",
			Complement:    &complement,
			Neighborhood:  "Centro",
			City:          "São Paulo",
			State:         "SP",
			ZipCode:       "01000-000",
		},
	}
}

func TestSale(t *testing.T) {
	out := Sale(comboSale(), Options{Width: 32, Lang: "en", Header: "OMNIPOS"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	for _, l := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), 32, l)
	}
	assert.Contains(t, out, "Order #ABCDEF12")
	assert.Contains(t, out, "\n   2x Burger\n   4x Fries\n")
	assert.Contains(t, out, "Discount")
	assert.Contains(t, out, "-R$ 5,00")
	assert.Contains(t, out, "Delivery fee")
	assert.Contains(t, out, "Payment: Pix")
	assert.Contains(t, out, "Rua A, 10 apto 12 - Centro")
	assert.Contains(t, out, "São Paulo/SP 01000-000")

	tail := lines[len(lines)-4:]
	assert.Equal(t, []string{"[x] Pendente", "[x] Pago", "[ ] Embalado", "[ ] Entregue"}, tail)

	for _, l := range lines {
		if strings.HasPrefix(l, "TOTAL") {
			assert.True(t, strings.HasSuffix(l, "R$ 69,00"))
			assert.Equal(t, 32, utf8.RuneCountInString(l))
		}
	}
}

func TestSaleOffTrackStatus(t *testing.T) {
	s := comboSale()
	s.Status = orderstatus.Canceled
	s.Delivery = nil
	s.SaleType = model.SaleTypePickup

	out := Sale(s, Options{Lang: "en"})
	assert.Contains(t, out, "Status: Cancelado")
	assert.NotContains(t, out, "[x]")
	assert.NotContains(t, out, "Delivery fee")
	assert.Contains(t, out, "Pickup")
}

func TestQuote(t *testing.T) {
	items := comboSale().Items
	out := Quote("", items, sale.Totals{Subtotal: d("68"), Total: d("68")}, false, Options{Lang: "en"})
	assert.Contains(t, out, "Quote")
	assert.Contains(t, out, "   4x Fries")
	assert.NotContains(t, out, "Discount")
}

func TestWidthBounds(t *testing.T) {
	assert.Equal(t, DefaultWidth, Options{}.width())
	assert.Equal(t, MinWidth, Options{Width: 3}.width())
	assert.Equal(t, MaxWidth, Options{Width: 500}.width())
}
