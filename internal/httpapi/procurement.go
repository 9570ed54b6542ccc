package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/visionflow/internal/model"
	"github.com/sells-group/visionflow/internal/procure"
)

// NewProcurementRouter builds the procurement service's HTTP surface.
func NewProcurementRouter(svc *procure.Service, modelConfigured bool) http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware())

	r.Post("/procurement/extract_document", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			DocumentURL  string `json:"document_url"`
			DocumentType string `json:"document_type"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := svc.ExtractDocument(req.Context(), model.DocumentType(body.DocumentType), body.DocumentURL)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/procurement/check_budget", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Department string  `json:"department"`
			Amount     float64 `json:"amount"`
			CostCenter string  `json:"cost_center"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := svc.CheckBudget(req.Context(), body.Department, body.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/procurement/create_po", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			RequisitionData map[string]any `json:"requisition_data"`
			VendorName      string         `json:"vendor_name"`
			Department      string         `json:"department"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := svc.CreatePO(req.Context(), body.RequisitionData, body.VendorName, body.Department)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/procurement/match_invoice", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			InvoiceData map[string]any `json:"invoice_data"`
			PONumber    string         `json:"po_number"`
			ReceiptData map[string]any `json:"receipt_data"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := svc.MatchInvoice(req.Context(), body.InvoiceData, body.PONumber, body.ReceiptData)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/procurement/approve_payment", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			InvoiceID      string            `json:"invoice_id"`
			InvoiceData    map[string]any    `json:"invoice_data"`
			MatchResult    model.MatchResult `json:"match_result"`
			ApprovalStatus string            `json:"approval_status"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := svc.ApprovePayment(req.Context(), body.InvoiceID, body.InvoiceData, body.MatchResult, body.ApprovalStatus)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/inventory/check_stock", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			SKU         string `json:"sku"`
			WarehouseID string `json:"warehouse_id"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := svc.CheckStock(req.Context(), body.SKU)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/inventory/reallocate", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			FromWarehouse string `json:"from_warehouse"`
			ToWarehouse   string `json:"to_warehouse"`
			SKU           string `json:"sku"`
			Quantity      int    `json:"quantity"`
			Reason        string `json:"reason"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := svc.Reallocate(req.Context(), body.FromWarehouse, body.ToWarehouse, body.SKU, body.Quantity)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/inventory/adjust", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			SKU            string `json:"sku"`
			WarehouseID    string `json:"warehouse_id"`
			AdjustmentType string `json:"adjustment_type"`
			Quantity       int    `json:"quantity"`
			Reason         string `json:"reason"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := svc.Adjust(req.Context(), body.SKU, body.WarehouseID, body.AdjustmentType, body.Quantity)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/inventory/optimize", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			WarehouseID string `json:"warehouse_id"`
			AnalyzeAll  bool   `json:"analyze_all"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := svc.Optimize(req.Context(), body.WarehouseID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":           "healthy",
			"service":          "procurement_automation",
			"model_configured": modelConfigured,
			"version":          "1.0.0",
			"features":         []string{"procurement", "inventory_management"},
		})
	})

	return r
}
