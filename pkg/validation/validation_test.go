package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string          `validate:"required"`
	Kind     string          `validate:"oneof=a b"`
	Quantity decimal.Decimal `validate:"gt=0"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{Name: "x", Kind: "a", Quantity: decimal.NewFromInt(1)}))

	err := Struct(sample{Kind: "c", Quantity: decimal.Zero})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Kind=oneof, Name=required, Quantity=gt", verr.Detail())
}

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("(11) 98765-4321", "BR")
	require.NoError(t, err)
	assert.Equal(t, "+5511987654321", got)

	_, err = NormalizePhone("123", "BR")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = NormalizePhone("", "BR")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
