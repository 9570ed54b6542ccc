// Package model holds the domain value types shared across the extraction,
// normalization, and reconciliation layers. Everything here is a plain value
// object; nothing is mutated after construction.
package model

import "time"

// DocumentType identifies the procurement document schema a model extraction
// targets.
type DocumentType string

const (
	DocInvoice     DocumentType = "invoice"
	DocPO          DocumentType = "po"
	DocRequisition DocumentType = "requisition"
	DocReceipt     DocumentType = "receipt"
)

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocInvoice, DocPO, DocRequisition, DocReceipt:
		return true
	}
	return false
}

// ExtractionResult is the outcome of a single vision-model call against a
// document image. ExtractedData holds the normalized document matching
// DocumentType.
type ExtractionResult struct {
	DocumentType  DocumentType `json:"document_type"`
	ExtractedData any          `json:"extracted_data"`
	Confidence    float64      `json:"confidence"`
	Timestamp     time.Time    `json:"timestamp"`
}

// LineItem is a single priced line on an invoice, PO, or requisition.
// LineTotal may be absent on the wire; normalization re-derives it from
// Quantity and UnitPrice.
type LineItem struct {
	Description string  `json:"description" yaml:"description"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	UnitPrice   float64 `json:"unit_price" yaml:"unit_price"`
	LineTotal   float64 `json:"line_total" yaml:"line_total"`
}

// ReceivedItem is a line on a goods receipt; receipts carry quantities only.
type ReceivedItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// Invoice is a normalized vendor invoice.
type Invoice struct {
	InvoiceNumber string     `json:"invoice_number"`
	VendorName    string     `json:"vendor_name"`
	InvoiceDate   string     `json:"invoice_date"`
	DueDate       string     `json:"due_date"`
	TotalAmount   float64    `json:"total_amount"`
	Subtotal      float64    `json:"subtotal"`
	TaxAmount     float64    `json:"tax_amount"`
	LineItems     []LineItem `json:"line_items"`
}

// PurchaseOrder is a normalized PO.
type PurchaseOrder struct {
	PONumber    string     `json:"po_number" yaml:"po_number"`
	VendorName  string     `json:"vendor_name" yaml:"vendor_name"`
	PODate      string     `json:"po_date" yaml:"po_date"`
	RequestedBy string     `json:"requested_by" yaml:"requested_by"`
	TotalAmount float64    `json:"total_amount" yaml:"total_amount"`
	LineItems   []LineItem `json:"line_items" yaml:"line_items"`
}

// Requisition is a normalized purchase requisition.
type Requisition struct {
	RequisitionNumber  string     `json:"requisition_number"`
	RequestedBy        string     `json:"requested_by"`
	RequestDate        string     `json:"request_date"`
	Department         string     `json:"department"`
	CostCenter         string     `json:"cost_center"`
	Justification      string     `json:"justification"`
	TotalEstimatedCost float64    `json:"total_estimated_cost"`
	LineItems          []LineItem `json:"line_items"`
}

// Receipt is a normalized goods receipt.
type Receipt struct {
	ReceiptNumber string         `json:"receipt_number"`
	PONumber      string         `json:"po_number"`
	ReceivedDate  string         `json:"received_date"`
	VendorName    string         `json:"vendor_name"`
	Condition     string         `json:"condition"`
	ReceivedItems []ReceivedItem `json:"received_items"`
}
