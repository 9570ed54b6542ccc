package normalize

import (
	"github.com/sells-group/visionflow/internal/model"
)

// LineItems normalizes a raw item list. LineTotal is always re-derived from
// quantity and unit price; models frequently return a stale or rounded total.
func LineItems(v any) []model.LineItem {
	raw, ok := v.([]any)
	if !ok {
		return []model.LineItem{}
	}
	items := make([]model.LineItem, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		price := m["unit_price"]
		if price == nil {
			// requisition extractions carry estimated_price instead
			price = m["estimated_price"]
		}
		item := model.LineItem{
			Description: Ident(m["description"]),
			Quantity:    Quantity(m["quantity"]),
			UnitPrice:   Amount(price),
		}
		item.LineTotal = float64(item.Quantity) * item.UnitPrice
		items = append(items, item)
	}
	return items
}

// ReceivedItems normalizes a goods-receipt item list.
func ReceivedItems(v any) []model.ReceivedItem {
	raw, ok := v.([]any)
	if !ok {
		return []model.ReceivedItem{}
	}
	items := make([]model.ReceivedItem, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, model.ReceivedItem{
			Description: Ident(m["description"]),
			Quantity:    Quantity(m["quantity"]),
		})
	}
	return items
}

// Invoice normalizes a raw extraction into an Invoice.
func Invoice(m map[string]any) model.Invoice {
	return model.Invoice{
		InvoiceNumber: Ident(m["invoice_number"]),
		VendorName:    Ident(m["vendor_name"]),
		InvoiceDate:   Str(m["invoice_date"]),
		DueDate:       Str(m["due_date"]),
		TotalAmount:   Amount(m["total_amount"]),
		Subtotal:      Amount(m["subtotal"]),
		TaxAmount:     Amount(m["tax_amount"]),
		LineItems:     LineItems(m["line_items"]),
	}
}

// PurchaseOrder normalizes a raw extraction into a PurchaseOrder.
func PurchaseOrder(m map[string]any) model.PurchaseOrder {
	return model.PurchaseOrder{
		PONumber:    Ident(m["po_number"]),
		VendorName:  Ident(m["vendor_name"]),
		PODate:      Str(m["po_date"]),
		RequestedBy: Str(m["requested_by"]),
		TotalAmount: Amount(m["total_amount"]),
		LineItems:   LineItems(m["line_items"]),
	}
}

// Requisition normalizes a raw extraction into a Requisition.
func Requisition(m map[string]any) model.Requisition {
	return model.Requisition{
		RequisitionNumber:  Ident(m["requisition_number"]),
		RequestedBy:        Str(m["requested_by"]),
		RequestDate:        Str(m["request_date"]),
		Department:         Str(m["department"]),
		CostCenter:         Str(m["cost_center"]),
		Justification:      Str(m["justification"]),
		TotalEstimatedCost: Amount(m["total_estimated_cost"]),
		LineItems:          LineItems(m["line_items"]),
	}
}

// Receipt normalizes a raw extraction into a goods Receipt.
func Receipt(m map[string]any) model.Receipt {
	return model.Receipt{
		ReceiptNumber: Ident(m["receipt_number"]),
		PONumber:      Ident(m["po_number"]),
		ReceivedDate:  Str(m["received_date"]),
		VendorName:    Ident(m["vendor_name"]),
		Condition:     Str(m["condition"]),
		ReceivedItems: ReceivedItems(m["received_items"]),
	}
}
