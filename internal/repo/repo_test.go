package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/visionflow/internal/model"
)

func TestMemoryBudgetsCaseInsensitive(t *testing.T) {
	budgets := NewMemoryBudgets(DefaultSeeds().Budgets)
	ctx := context.Background()

	b, ok, err := budgets.Get(ctx, "it")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 15000.0, b.Available)

	_, ok, err = budgets.Get(ctx, "Legal")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryPurchaseOrders(t *testing.T) {
	pos := NewMemoryPurchaseOrders(DefaultSeeds().PurchaseOrders)
	ctx := context.Background()

	po, ok, err := pos.Get(ctx, "PO-20250110-1234")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1250.00, po.TotalAmount)
	assert.Len(t, po.LineItems, 2)

	require.NoError(t, pos.Put(ctx, model.PurchaseOrder{PONumber: "PO-NEW", TotalAmount: 99}))
	created, ok, err := pos.Get(ctx, "PO-NEW")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 99.0, created.TotalAmount)
}

func TestMemoryInventory(t *testing.T) {
	inv := NewMemoryInventory(DefaultSeeds().Inventory)
	ctx := context.Background()

	item, ok, err := inv.Get(ctx, "DESK-LAMP-002")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 8, item.OnHand)

	item.OnHand = 30
	require.NoError(t, inv.Put(ctx, item))
	updated, _, _ := inv.Get(ctx, "DESK-LAMP-002")
	assert.Equal(t, 30, updated.OnHand)

	items, err := inv.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 4)
	// sorted by SKU
	assert.Equal(t, "DESK-LAMP-002", items[0].SKU)
}

func TestMemoryOrders(t *testing.T) {
	orders := NewMemoryOrders(DefaultSeeds().Orders)
	o, ok, err := orders.Get(context.Background(), "ORDER-999")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Blue Shirt - Size M", o.ExpectedItem)
	assert.Equal(t, "IN_PROGRESS", o.Status)
}

func TestMemoryPaidInvoices(t *testing.T) {
	paid := NewMemoryPaidInvoices(DefaultSeeds().PaidInvoices)
	ctx := context.Background()

	ok, err := paid.IsPaid(ctx, "INV-12345")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = paid.IsPaid(ctx, "INV-1")
	assert.False(t, ok)

	require.NoError(t, paid.MarkPaid(ctx, "INV-1"))
	ok, _ = paid.IsPaid(ctx, "INV-1")
	assert.True(t, ok)
}

func TestLoadSeedsEmptyPath(t *testing.T) {
	seeds, err := LoadSeeds("")
	require.NoError(t, err)
	assert.Len(t, seeds.Budgets, 4)
	assert.Equal(t, []string{"INV-12345", "INV-67890"}, seeds.PaidInvoices)
}

func TestLoadSeedsOverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.yaml")
	data := `
budgets:
  - department: Engineering
    available: 50000
purchase_orders:
  - po_number: PO-20260101-0001
    vendor_name: Test Vendor
    total_amount: 300.5
    line_items:
      - description: Widgets
        quantity: 3
        unit_price: 100
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	seeds, err := LoadSeeds(path)
	require.NoError(t, err)

	require.Len(t, seeds.Budgets, 1)
	assert.Equal(t, "Engineering", seeds.Budgets[0].Department)

	require.Len(t, seeds.PurchaseOrders, 1)
	assert.Equal(t, "PO-20260101-0001", seeds.PurchaseOrders[0].PONumber)
	assert.Equal(t, 300.5, seeds.PurchaseOrders[0].TotalAmount)
	require.Len(t, seeds.PurchaseOrders[0].LineItems, 1)
	assert.Equal(t, 3, seeds.PurchaseOrders[0].LineItems[0].Quantity)

	// untouched sections keep defaults
	assert.Len(t, seeds.Inventory, 4)
	assert.Len(t, seeds.Orders, 2)
}

func TestLoadSeedsMissingFile(t *testing.T) {
	_, err := LoadSeeds(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
