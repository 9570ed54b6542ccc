package repo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sells-group/visionflow/internal/model"
)

// MemoryBudgets is a map-backed Budgets implementation.
type MemoryBudgets struct {
	mu      sync.RWMutex
	budgets map[string]Budget
}

// NewMemoryBudgets builds a budget table keyed by department.
func NewMemoryBudgets(budgets []Budget) *MemoryBudgets {
	m := &MemoryBudgets{budgets: make(map[string]Budget, len(budgets))}
	for _, b := range budgets {
		m.budgets[strings.ToLower(b.Department)] = b
	}
	return m
}

func (m *MemoryBudgets) Get(_ context.Context, department string) (Budget, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.budgets[strings.ToLower(department)]
	return b, ok, nil
}

// MemoryPurchaseOrders is a map-backed PurchaseOrders implementation.
type MemoryPurchaseOrders struct {
	mu  sync.RWMutex
	pos map[string]model.PurchaseOrder
}

// NewMemoryPurchaseOrders builds a PO table keyed by PO number.
func NewMemoryPurchaseOrders(pos []model.PurchaseOrder) *MemoryPurchaseOrders {
	m := &MemoryPurchaseOrders{pos: make(map[string]model.PurchaseOrder, len(pos))}
	for _, po := range pos {
		m.pos[po.PONumber] = po
	}
	return m
}

func (m *MemoryPurchaseOrders) Get(_ context.Context, poNumber string) (model.PurchaseOrder, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	po, ok := m.pos[poNumber]
	return po, ok, nil
}

func (m *MemoryPurchaseOrders) Put(_ context.Context, po model.PurchaseOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos[po.PONumber] = po
	return nil
}

// MemoryInventory is a map-backed Inventory implementation.
type MemoryInventory struct {
	mu    sync.RWMutex
	items map[string]InventoryItem
}

// NewMemoryInventory builds an inventory table keyed by SKU.
func NewMemoryInventory(items []InventoryItem) *MemoryInventory {
	m := &MemoryInventory{items: make(map[string]InventoryItem, len(items))}
	for _, item := range items {
		m.items[item.SKU] = item
	}
	return m
}

func (m *MemoryInventory) Get(_ context.Context, sku string) (InventoryItem, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[sku]
	return item, ok, nil
}

func (m *MemoryInventory) List(_ context.Context) ([]InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]InventoryItem, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (m *MemoryInventory) Put(_ context.Context, item InventoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.SKU] = item
	return nil
}

// MemoryOrders is a map-backed Orders implementation.
type MemoryOrders struct {
	mu     sync.RWMutex
	orders map[string]WMSOrder
}

// NewMemoryOrders builds a WMS order table keyed by order ID.
func NewMemoryOrders(orders []WMSOrder) *MemoryOrders {
	m := &MemoryOrders{orders: make(map[string]WMSOrder, len(orders))}
	for _, o := range orders {
		m.orders[o.OrderID] = o
	}
	return m
}

func (m *MemoryOrders) Get(_ context.Context, orderID string) (WMSOrder, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[orderID]
	return o, ok, nil
}

// MemoryPaidInvoices is a set-backed PaidInvoices implementation.
type MemoryPaidInvoices struct {
	mu   sync.RWMutex
	paid map[string]struct{}
}

// NewMemoryPaidInvoices builds a registry from the already-paid invoice numbers.
func NewMemoryPaidInvoices(invoiceNumbers []string) *MemoryPaidInvoices {
	m := &MemoryPaidInvoices{paid: make(map[string]struct{}, len(invoiceNumbers))}
	for _, n := range invoiceNumbers {
		m.paid[n] = struct{}{}
	}
	return m
}

func (m *MemoryPaidInvoices) IsPaid(_ context.Context, invoiceNumber string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.paid[invoiceNumber]
	return ok, nil
}

func (m *MemoryPaidInvoices) MarkPaid(_ context.Context, invoiceNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paid[invoiceNumber] = struct{}{}
	return nil
}
