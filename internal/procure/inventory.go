package procure

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/visionflow/internal/model"
	"github.com/sells-group/visionflow/internal/repo"
)

// StockLevelResult reports a SKU's stock position.
type StockLevelResult struct {
	SKU             string    `json:"sku"`
	CurrentStock    int       `json:"current_stock"`
	ReorderPoint    int       `json:"reorder_point"`
	MaxStock        int       `json:"max_stock"`
	Status          string    `json:"status"` // IN_STOCK, LOW_STOCK, OUT_OF_STOCK, OVERSTOCKED
	Recommendations []string  `json:"recommendations"`
	Timestamp       time.Time `json:"timestamp"`
}

// overstockedRatio marks a SKU overstocked once on-hand passes this share of
// max stock.
const overstockedRatio = 0.9

func stockStatus(item repo.InventoryItem) (string, []string) {
	switch {
	case item.OnHand == 0:
		return "OUT_OF_STOCK", []string{"URGENT: Reorder immediately", "Check alternative suppliers"}
	case item.OnHand < item.ReorderPoint:
		return "LOW_STOCK", []string{
			fmt.Sprintf("Reorder %d units", item.ReorderPoint*2-item.OnHand),
			"Monitor daily",
		}
	case float64(item.OnHand) > float64(item.MaxStock)*overstockedRatio:
		return "OVERSTOCKED", []string{"Consider reducing order quantity", "Check for slow-moving inventory"}
	default:
		return "IN_STOCK", []string{"Stock level healthy", "Continue monitoring"}
	}
}

// CheckStock reports the stock position of a SKU. Unknown SKUs get the
// default replenishment parameters.
func (s *Service) CheckStock(ctx context.Context, sku string) (*StockLevelResult, error) {
	if sku == "" {
		return nil, model.Validationf("sku is required")
	}

	item, found, err := s.inventory.Get(ctx, sku)
	if err != nil {
		return nil, err
	}
	if !found {
		item = repo.InventoryItem{SKU: sku, OnHand: 0, ReorderPoint: 10, MaxStock: 50}
	}

	status, recommendations := stockStatus(item)

	return &StockLevelResult{
		SKU:             sku,
		CurrentStock:    item.OnHand,
		ReorderPoint:    item.ReorderPoint,
		MaxStock:        item.MaxStock,
		Status:          status,
		Recommendations: recommendations,
		Timestamp:       time.Now().UTC(),
	}, nil
}

// ReallocateResult is a scheduled inter-warehouse stock move.
type ReallocateResult struct {
	ReallocationID string    `json:"reallocation_id"`
	FromWarehouse  string    `json:"from_warehouse"`
	ToWarehouse    string    `json:"to_warehouse"`
	SKU            string    `json:"sku"`
	Quantity       int       `json:"quantity"`
	Status         string    `json:"status"`
	EstimatedCost  float64   `json:"estimated_cost"`
	Timestamp      time.Time `json:"timestamp"`
}

// reallocationCostPerUnit is the flat shipping/handling estimate.
const reallocationCostPerUnit = 5.0

// Reallocate schedules a stock move between warehouses.
func (s *Service) Reallocate(ctx context.Context, fromWarehouse, toWarehouse, sku string, quantity int) (*ReallocateResult, error) {
	if sku == "" || fromWarehouse == "" || toWarehouse == "" {
		return nil, model.Validationf("sku, from_warehouse, and to_warehouse are required")
	}
	if quantity <= 0 {
		return nil, model.Validationf("quantity must be positive")
	}

	now := time.Now().UTC()
	s.log.Info("stock reallocation scheduled",
		zap.String("sku", sku),
		zap.String("from", fromWarehouse),
		zap.String("to", toWarehouse),
		zap.Int("quantity", quantity))

	return &ReallocateResult{
		ReallocationID: fmt.Sprintf("REALLOC-%s-%s", now.Format("20060102150405"), uuid.NewString()[:8]),
		FromWarehouse:  fromWarehouse,
		ToWarehouse:    toWarehouse,
		SKU:            sku,
		Quantity:       quantity,
		Status:         "SCHEDULED",
		EstimatedCost:  float64(quantity) * reallocationCostPerUnit,
		Timestamp:      now,
	}, nil
}

// AdjustResult records an inventory adjustment.
type AdjustResult struct {
	AdjustmentID   string    `json:"adjustment_id"`
	SKU            string    `json:"sku"`
	WarehouseID    string    `json:"warehouse_id"`
	AdjustmentType string    `json:"adjustment_type"`
	Quantity       int       `json:"quantity"`
	PreviousStock  int       `json:"previous_stock"`
	NewStock       int       `json:"new_stock"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// Adjust applies an inventory movement. RECEIVED and RETURNED add stock,
// SOLD and DAMAGED remove it, ADJUSTED sets the level directly.
func (s *Service) Adjust(ctx context.Context, sku, warehouseID, adjustmentType string, quantity int) (*AdjustResult, error) {
	if sku == "" {
		return nil, model.Validationf("sku is required")
	}

	item, found, err := s.inventory.Get(ctx, sku)
	if err != nil {
		return nil, err
	}
	if !found {
		item = repo.InventoryItem{SKU: sku, ReorderPoint: 10, MaxStock: 50}
	}
	previous := item.OnHand

	switch adjustmentType {
	case "RECEIVED", "RETURNED":
		item.OnHand = previous + quantity
	case "SOLD", "DAMAGED":
		item.OnHand = previous - quantity
	case "ADJUSTED":
		item.OnHand = quantity
	default:
		return nil, model.Validationf("unknown adjustment_type %q", adjustmentType)
	}

	if err := s.inventory.Put(ctx, item); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &AdjustResult{
		AdjustmentID:   fmt.Sprintf("ADJ-%s-%s", now.Format("20060102150405"), uuid.NewString()[:8]),
		SKU:            sku,
		WarehouseID:    warehouseID,
		AdjustmentType: adjustmentType,
		Quantity:       quantity,
		PreviousStock:  previous,
		NewStock:       item.OnHand,
		Status:         "COMPLETED",
		Timestamp:      now,
	}, nil
}

// OptimizationRecommendation is one SKU-level action from an optimization run.
type OptimizationRecommendation struct {
	SKU      string `json:"sku"`
	Issue    string `json:"issue"`
	Action   string `json:"action"`
	Priority string `json:"priority"`
}

// OptimizeResult summarizes an inventory optimization pass.
type OptimizeResult struct {
	WarehouseID      string                       `json:"warehouse_id"`
	TotalSKUs        int                          `json:"total_skus"`
	LowStockItems    int                          `json:"low_stock_items"`
	OverstockedItems int                          `json:"overstocked_items"`
	Recommendations  []OptimizationRecommendation `json:"recommendations"`
	EstimatedSavings float64                      `json:"estimated_savings"`
	Timestamp        time.Time                    `json:"timestamp"`
}

// carryingCostPerOverstock is the estimated annual saving for clearing one
// overstocked SKU.
const carryingCostPerOverstock = 500.0

// Optimize scans the inventory and recommends replenishment and overstock
// actions.
func (s *Service) Optimize(ctx context.Context, warehouseID string) (*OptimizeResult, error) {
	if warehouseID == "" {
		warehouseID = "WAREHOUSE-001"
	}

	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	recommendations := []OptimizationRecommendation{}
	lowStock, overstocked := 0, 0
	for _, item := range items {
		status, _ := stockStatus(item)
		switch status {
		case "OUT_OF_STOCK":
			lowStock++
			recommendations = append(recommendations, OptimizationRecommendation{
				SKU:      item.SKU,
				Issue:    status,
				Action:   fmt.Sprintf("URGENT: Reorder %d units immediately", item.ReorderPoint),
				Priority: "CRITICAL",
			})
		case "LOW_STOCK":
			lowStock++
			recommendations = append(recommendations, OptimizationRecommendation{
				SKU:      item.SKU,
				Issue:    status,
				Action:   fmt.Sprintf("Reorder %d units to reach optimal level", item.ReorderPoint*2-item.OnHand),
				Priority: "HIGH",
			})
		case "OVERSTOCKED":
			overstocked++
			recommendations = append(recommendations, OptimizationRecommendation{
				SKU:      item.SKU,
				Issue:    status,
				Action:   "Consider reducing future orders by 30%",
				Priority: "MEDIUM",
			})
		}
	}

	return &OptimizeResult{
		WarehouseID:      warehouseID,
		TotalSKUs:        len(items),
		LowStockItems:    lowStock,
		OverstockedItems: overstocked,
		Recommendations:  recommendations,
		EstimatedSavings: float64(overstocked) * carryingCostPerOverstock,
		Timestamp:        time.Now().UTC(),
	}, nil
}
