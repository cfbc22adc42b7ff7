package simulation

import (
	"bytes"
	"testing"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSimulatePrice(t *testing.T) {
	tests := []struct {
		cost, margin, want string
	}{
		{"10000", "50", "150"},
		{"R$ 12,34", "10", "13.57"},
		{"", "50", "0"},
		{"10000", "250", "350"},
		{"10000", "5000", "1100"},
	}
	for _, tt := range tests {
		got := SimulatePrice(tt.cost, tt.margin)
		assert.True(t, d(tt.want).Equal(got), "%s @ %s%%: got %s", tt.cost, tt.margin, got)
	}
}

func TestSimulateMargin(t *testing.T) {
	m, ok := SimulateMargin("10000", "15000")
	require.True(t, ok)
	assert.True(t, d("50").Equal(m))

	_, ok = SimulateMargin("0", "15000")
	assert.False(t, ok)

	m, ok = SimulateMargin("300", "400")
	require.True(t, ok)
	assert.True(t, d("33.33").Equal(m))
}

func TestCost(t *testing.T) {
	items := []model.SaleItem{
		{ProductID: "soda", Quantity: d("2")},
		{ProductID: "combo", IsComposite: true, Components: []model.ExpandedComponent{
			{TotalPrice: d("10")}, {TotalPrice: d("8")},
		}},
	}
	got := Cost(items, map[string]decimal.Decimal{"soda": d("1.5"), "combo": d("99")})
	assert.True(t, d("21").Equal(got))
}

func TestExportXLSX(t *testing.T) {
	q := &Quote{
		Title: "Festa",
		Items: []model.SaleItem{
			{ProductName: "Combo", Quantity: d("2"), UnitPrice: d("25"), TotalPrice: d("50"), IsComposite: true,
				Components: []model.ExpandedComponent{{ProductName: "Burger", Quantity: d("2")}}},
		},
		Totals: sale.Totals{Subtotal: d("50"), DiscountAmount: d("5"), Total: d("45")},
	}

	out, err := ExportXLSX(q)
	require.NoError(t, err)
	assert.Equal(t, "orcamento.xlsx", out.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(out.Content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(quoteSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 8)
	assert.Equal(t, "Festa", rows[0][0])
	assert.Equal(t, "Descrição", rows[2][0])
	assert.Equal(t, "Combo", rows[3][0])
	assert.Equal(t, "    Burger", rows[4][0])
	assert.Equal(t, "Subtotal", rows[6][0])
	assert.Equal(t, "Desconto", rows[7][0])
	assert.Equal(t, "Total", rows[len(rows)-1][0])
}
