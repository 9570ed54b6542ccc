// Package ops implements the warehouse operational endpoints: WMS order
// verification and exception resolution.
package ops

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/visionflow/internal/model"
	"github.com/sells-group/visionflow/internal/repo"
)

// Service handles WMS checks and exception tickets.
type Service struct {
	orders repo.Orders
	log    *zap.Logger
}

// New wires an ops Service over the WMS order repository.
func New(orders repo.Orders) *Service {
	return &Service{
		orders: orders,
		log:    zap.L().Named("ops"),
	}
}

// WMSCheckResult is the outcome of verifying a scanned SKU against the WMS
// order record.
type WMSCheckResult struct {
	OrderID                string        `json:"order_id"`
	SKU                    string        `json:"sku"`
	ExpectedItem           string        `json:"expected_item"`
	Quantity               int           `json:"quantity"`
	Status                 string        `json:"status"` // FOUND, MISMATCH, NOT_FOUND
	PredictedCause         string        `json:"predicted_cause,omitempty"`
	OptimizationSuggestion string        `json:"optimization_suggestion,omitempty"`
	WMSData                repo.WMSOrder `json:"wms_data"`
}

// CheckWMS looks up an order and, when a scanned SKU is supplied, verifies it
// against the order's expected SKU. A mismatch carries a predicted cause and a
// bin-move suggestion for the floor team.
func (s *Service) CheckWMS(ctx context.Context, orderID, sku string) (*WMSCheckResult, error) {
	if orderID == "" {
		return nil, model.Validationf("order_id is required")
	}

	order, found, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := &WMSCheckResult{OrderID: orderID}
	if found {
		result.Status = "FOUND"
		if sku != "" && sku != order.SKU {
			result.Status = "MISMATCH"
			result.PredictedCause = "Possible Picking Error: Item often confused with SKU-999 (Green Shirt)."
			result.OptimizationSuggestion = "Suggestion: Move SKU-123 to Bin B-02 to separate from similar items."
		}
	} else {
		order = repo.WMSOrder{
			OrderID:      orderID,
			SKU:          sku,
			ExpectedItem: fmt.Sprintf("Item for %s", orderID),
			Quantity:     1,
			Status:       "UNKNOWN",
		}
		if order.SKU == "" {
			order.SKU = "SKU-UNKNOWN"
		}
		result.Status = "NOT_FOUND"
		result.PredictedCause = "Order not yet synced from ERP."
	}

	result.SKU = order.SKU
	result.ExpectedItem = order.ExpectedItem
	result.Quantity = order.Quantity
	result.WMSData = order

	s.log.Info("wms check",
		zap.String("order_id", orderID),
		zap.String("scanned_sku", sku),
		zap.String("status", result.Status))

	return result, nil
}

// ExceptionRequest describes an operational exception raised on the line.
type ExceptionRequest struct {
	OrderID       string
	ExceptionType string
	Details       string
	StationID     string
	VendorID      string
}

// ExceptionResult is the resolution ticket for an exception.
type ExceptionResult struct {
	TicketID         string            `json:"ticket_id"`
	OrderID          string            `json:"order_id"`
	Status           string            `json:"status"` // HELD, QUARANTINED, ALERT_SENT
	ActionTaken      string            `json:"action_taken"`
	VendorEmailDraft string            `json:"vendor_email_draft,omitempty"`
	CarrierRates     map[string]string `json:"carrier_rates,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

// HandleException resolves a line exception. Label mismatches hold the order,
// damaged boxes are quarantined with a vendor damage-claim draft, and anything
// else raises an alert with return carrier rates.
func (s *Service) HandleException(ctx context.Context, req ExceptionRequest) (*ExceptionResult, error) {
	if req.OrderID == "" || req.ExceptionType == "" {
		return nil, model.Validationf("order_id and exception_type are required")
	}
	if req.VendorID == "" {
		req.VendorID = "VENDOR-001"
	}

	result := &ExceptionResult{
		TicketID:  fmt.Sprintf("TKT-%d", time.Now().Unix()),
		OrderID:   req.OrderID,
		Timestamp: time.Now().UTC(),
	}

	switch req.ExceptionType {
	case "LABEL_MISMATCH":
		result.Status = "HELD"
		result.ActionTaken = fmt.Sprintf(
			"Order %s held at %s. Alert sent to floor supervisor. Label mismatch detected.",
			req.OrderID, req.StationID)
	case "BOX_DAMAGED":
		result.Status = "QUARANTINED"
		result.ActionTaken = fmt.Sprintf(
			"Order %s quarantined. Box damage detected. Requires repack.", req.OrderID)
		result.VendorEmailDraft = fmt.Sprintf(
			"To: claims@%s.com\nSubject: Damage Claim - Shipment %s\n\n"+
				"Attached is evidence of damage for Order %s.\n"+
				"Damage detected upon arrival. Requesting immediate credit of $500.",
			req.VendorID, req.OrderID, req.OrderID)
	default:
		result.Status = "ALERT_SENT"
		result.ActionTaken = fmt.Sprintf(
			"Exception logged for %s. Manual review required.", req.OrderID)
		result.CarrierRates = map[string]string{
			"FedEx": "$12.50 (2 days)",
			"UPS":   "$14.00 (1 day)",
			"USPS":  "$8.50 (4 days)",
		}
	}

	s.log.Info("exception handled",
		zap.String("ticket_id", result.TicketID),
		zap.String("order_id", req.OrderID),
		zap.String("exception_type", req.ExceptionType),
		zap.String("status", result.Status))

	return result, nil
}
