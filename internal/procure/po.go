package procure

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/visionflow/internal/model"
	"github.com/sells-group/visionflow/internal/normalize"
	"github.com/sells-group/visionflow/internal/reconcile"
)

// POResult is the outcome of creating a purchase order.
type POResult struct {
	PONumber    string    `json:"po_number"`
	Status      string    `json:"status"`
	VendorName  string    `json:"vendor_name"`
	TotalAmount float64   `json:"total_amount"`
	CreatedDate string    `json:"created_date"`
	Timestamp   time.Time `json:"timestamp"`
}

// CreatePO builds a purchase order from extracted requisition data and
// registers it so later invoice matching can find it.
func (s *Service) CreatePO(ctx context.Context, requisitionData map[string]any, vendorName, department string) (*POResult, error) {
	if vendorName == "" {
		return nil, model.Validationf("vendor_name is required")
	}

	now := time.Now().UTC()
	poNumber := fmt.Sprintf("PO-%s-%04d", now.Format("20060102"), 1000+rand.Intn(9000))

	totalAmount := normalize.Amount(requisitionData["total_estimated_cost"])

	po := model.PurchaseOrder{
		PONumber:    poNumber,
		VendorName:  vendorName,
		PODate:      now.Format("2006-01-02"),
		RequestedBy: normalize.Str(requisitionData["requested_by"]),
		TotalAmount: totalAmount,
		LineItems:   normalize.LineItems(requisitionData["line_items"]),
	}
	if err := s.pos.Put(ctx, po); err != nil {
		return nil, err
	}

	s.log.Info("purchase order created",
		zap.String("po_number", poNumber),
		zap.String("vendor", vendorName),
		zap.String("department", department),
		zap.Float64("total_amount", totalAmount))

	return &POResult{
		PONumber:    poNumber,
		Status:      "CREATED",
		VendorName:  vendorName,
		TotalAmount: totalAmount,
		CreatedDate: now.Format("2006-01-02"),
		Timestamp:   now,
	}, nil
}

// MatchInvoice reconciles extracted invoice data against a registered PO and,
// when receipt data is supplied, the goods receipt. An unregistered PO number
// falls back to assuming the invoice total (demo mode for documents whose PO
// was never ingested).
func (s *Service) MatchInvoice(ctx context.Context, invoiceData map[string]any, poNumber string, receiptData map[string]any) (*model.MatchResult, error) {
	if poNumber == "" {
		return nil, model.Validationf("po_number is required")
	}
	if len(invoiceData) == 0 {
		return nil, model.Validationf("invoice_data is required")
	}

	invoice := normalize.Invoice(invoiceData)

	po, found, err := s.pos.Get(ctx, poNumber)
	if err != nil {
		return nil, err
	}
	if !found {
		poTotal := invoice.TotalAmount
		if poTotal <= 0 {
			poTotal = 1000.0
		}
		po = model.PurchaseOrder{PONumber: poNumber, TotalAmount: poTotal, LineItems: []model.LineItem{}}
		s.log.Warn("po not registered, matching against invoice total",
			zap.String("po_number", poNumber),
			zap.Float64("assumed_total", poTotal))
	}
	po.PONumber = poNumber

	var receipt *model.Receipt
	if len(receiptData) > 0 {
		r := normalize.Receipt(receiptData)
		receipt = &r
	}

	result := reconcile.ThreeWayMatch(po, invoice, receipt)

	s.log.Info("invoice matched",
		zap.String("po_number", poNumber),
		zap.String("invoice_number", result.InvoiceNumber),
		zap.String("status", string(result.MatchStatus)),
		zap.Int("discrepancies", len(result.Discrepancies)))

	return &result, nil
}
