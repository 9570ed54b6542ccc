package repo

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/visionflow/internal/model"
)

// Seeds is the on-disk shape of the demo data file. Any section left empty in
// the file keeps its built-in defaults.
type Seeds struct {
	Budgets        []Budget              `yaml:"budgets"`
	PurchaseOrders []model.PurchaseOrder `yaml:"purchase_orders"`
	Inventory      []InventoryItem       `yaml:"inventory"`
	Orders         []WMSOrder            `yaml:"orders"`
	PaidInvoices   []string              `yaml:"paid_invoices"`
}

// DefaultSeeds returns the built-in demo data.
func DefaultSeeds() Seeds {
	return Seeds{
		Budgets: []Budget{
			{Department: "IT", Available: 15000},
			{Department: "HR", Available: 18000},
			{Department: "Finance", Available: 5000},
			{Department: "Operations", Available: 25000},
		},
		PurchaseOrders: []model.PurchaseOrder{
			{
				PONumber:    "PO-20250110-1234",
				VendorName:  "Office Supplies Co",
				TotalAmount: 1250.00,
				LineItems: []model.LineItem{
					{Description: "Office Chairs", Quantity: 5, UnitPrice: 200.00, LineTotal: 1000.00},
					{Description: "Desk Lamps", Quantity: 3, UnitPrice: 50.00, LineTotal: 150.00},
				},
			},
		},
		Inventory: []InventoryItem{
			{SKU: "OFFICE-CHAIR-001", OnHand: 45, ReorderPoint: 20, MaxStock: 100},
			{SKU: "DESK-LAMP-002", OnHand: 8, ReorderPoint: 15, MaxStock: 50},
			{SKU: "MONITOR-003", OnHand: 0, ReorderPoint: 10, MaxStock: 30},
			{SKU: "KEYBOARD-004", OnHand: 150, ReorderPoint: 25, MaxStock: 100},
		},
		Orders: []WMSOrder{
			{OrderID: "ORDER-999", SKU: "SKU-123", ExpectedItem: "Blue Shirt - Size M", Quantity: 1, Status: "IN_PROGRESS"},
			{OrderID: "ORDER-888", SKU: "SKU-456", ExpectedItem: "Red Shirt - Size L", Quantity: 2, Status: "PENDING"},
		},
		PaidInvoices: []string{"INV-12345", "INV-67890"},
	}
}

// LoadSeeds reads a YAML seed file and fills gaps with the defaults. An empty
// path returns the defaults unchanged.
func LoadSeeds(path string) (Seeds, error) {
	seeds := DefaultSeeds()
	if path == "" {
		return seeds, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Seeds{}, eris.Wrapf(err, "repo: read seed file %s", path)
	}

	var loaded Seeds
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Seeds{}, eris.Wrapf(err, "repo: parse seed file %s", path)
	}

	if len(loaded.Budgets) > 0 {
		seeds.Budgets = loaded.Budgets
	}
	if len(loaded.PurchaseOrders) > 0 {
		seeds.PurchaseOrders = loaded.PurchaseOrders
	}
	if len(loaded.Inventory) > 0 {
		seeds.Inventory = loaded.Inventory
	}
	if len(loaded.Orders) > 0 {
		seeds.Orders = loaded.Orders
	}
	if len(loaded.PaidInvoices) > 0 {
		seeds.PaidInvoices = loaded.PaidInvoices
	}
	return seeds, nil
}
