package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	Init()

	assert.Equal(t, "Venda não encontrada.", T("sale_not_found", nil))
	assert.Equal(t, "Sale not found.", T("sale_not_found", nil, "en-US"))
	assert.Equal(t, "Venda não encontrada.", T("sale_not_found", nil, "fr"))
	assert.Equal(t, "Invalid data: quantity", T("validation_failed", map[string]interface{}{"Detail": "quantity"}, "en"))
	assert.Equal(t, "no_such_message", T("no_such_message", nil))
}
