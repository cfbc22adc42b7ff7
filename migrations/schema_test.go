package migrations

import (
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createTable = regexp.MustCompile(`(?is)CREATE TABLE IF NOT EXISTS (\w+) \((.*?)\n\);`)
	columnLine  = regexp.MustCompile(`^\s*([a-z_]+)\s+[A-Z]`)
)

// schema collects the columns of every table created by the up migrations.
func schema(t *testing.T) map[string]map[string]bool {
	t.Helper()
	files, err := fs.Glob(FS, "*.up.sql")
	require.NoError(t, err)
	sort.Strings(files)

	tables := map[string]map[string]bool{}
	for _, name := range files {
		raw, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		for _, m := range createTable.FindAllStringSubmatch(string(raw), -1) {
			cols := map[string]bool{}
			for _, line := range strings.Split(m[2], "\n") {
				if c := columnLine.FindStringSubmatch(line); c != nil {
					cols[c[1]] = true
				}
			}
			tables[m[1]] = cols
		}
	}
	return tables
}

func TestSchemaCoversRepositoryColumns(t *testing.T) {
	tables := schema(t)

	// Columns read or written by the repositories.
	used := map[string][]string{
		"categories": {"id", "merchant_id", "parent_id", "name", "description", "image_url",
			"sort_order", "is_active", "created_at", "updated_at"},
		"products": {"id", "merchant_id", "category_id", "sku", "barcode", "name", "description",
			"cost_price", "sale_price", "is_active", "manage_stock", "online_sale", "stock_quantity",
			"is_composition", "image_url", "created_at", "updated_at"},
		"component_relations": {"id", "parent_product_id", "component_product_id", "quantity", "created_at"},
		"sales": {"id", "merchant_id", "sale_type", "payment_method", "subtotal", "total", "status", "notes",
			"delivery_fee", "addition_type", "addition_value", "addition_amount",
			"discount_type", "discount_value", "discount_amount", "created_by", "created_at", "updated_at"},
		"sale_items": {"id", "sale_id", "product_id", "product_name", "quantity", "unit_price",
			"total_price", "is_composite", "created_at"},
		"delivery_info": {"id", "sale_id", "customer_name", "customer_phone", "delivery_date", "delivery_time",
			"street", "number", "complement", "neighborhood", "city", "state", "zip_code",
			"additional_info", "from_info", "to_info"},
		"stock_movements": {"id", "merchant_id", "product_id", "movement_type", "quantity_change",
			"quantity_before", "quantity_after", "reference_type", "reference_id", "notes",
			"created_by", "created_at"},
	}

	for table, cols := range used {
		got, ok := tables[table]
		require.True(t, ok, "table %s is not created", table)
		for _, c := range cols {
			assert.True(t, got[c], "%s.%s is missing", table, c)
		}
	}
}

func TestEveryUpMigrationHasDown(t *testing.T) {
	ups, err := fs.Glob(FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)
	for _, up := range ups {
		_, err := fs.Stat(FS, strings.TrimSuffix(up, ".up.sql")+".down.sql")
		assert.NoError(t, err, up)
	}
}
