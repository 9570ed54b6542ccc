// Package repo holds the lookup tables the services consult: department
// budgets, registered purchase orders, inventory, WMS orders, and the
// paid-invoice registry. Everything is behind an interface so the in-memory
// seeded implementations can be swapped for real system-of-record clients.
package repo

import (
	"context"

	"github.com/sells-group/visionflow/internal/model"
)

// Budget is a department's remaining procurement budget.
type Budget struct {
	Department string  `yaml:"department" json:"department"`
	Available  float64 `yaml:"available" json:"available"`
}

// InventoryItem is a stocked SKU with its replenishment parameters.
type InventoryItem struct {
	SKU          string `yaml:"sku" json:"sku"`
	OnHand       int    `yaml:"on_hand" json:"on_hand"`
	ReorderPoint int    `yaml:"reorder_point" json:"reorder_point"`
	MaxStock     int    `yaml:"max_stock" json:"max_stock"`
}

// WMSOrder is an order record as the warehouse management system knows it.
type WMSOrder struct {
	OrderID      string `yaml:"order_id" json:"order_id"`
	SKU          string `yaml:"sku" json:"sku"`
	ExpectedItem string `yaml:"expected_item" json:"expected_item"`
	Quantity     int    `yaml:"quantity" json:"quantity"`
	Status       string `yaml:"status" json:"status"`
}

// Budgets looks up department budgets.
type Budgets interface {
	Get(ctx context.Context, department string) (Budget, bool, error)
}

// PurchaseOrders stores and retrieves registered POs.
type PurchaseOrders interface {
	Get(ctx context.Context, poNumber string) (model.PurchaseOrder, bool, error)
	Put(ctx context.Context, po model.PurchaseOrder) error
}

// Inventory tracks stocked SKUs.
type Inventory interface {
	Get(ctx context.Context, sku string) (InventoryItem, bool, error)
	List(ctx context.Context) ([]InventoryItem, error)
	Put(ctx context.Context, item InventoryItem) error
}

// Orders looks up WMS order records.
type Orders interface {
	Get(ctx context.Context, orderID string) (WMSOrder, bool, error)
}

// PaidInvoices is the duplicate-payment registry.
type PaidInvoices interface {
	IsPaid(ctx context.Context, invoiceNumber string) (bool, error)
	MarkPaid(ctx context.Context, invoiceNumber string) error
}
