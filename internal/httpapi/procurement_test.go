package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/visionflow/internal/coerce"
	"github.com/sells-group/visionflow/internal/fetch"
	"github.com/sells-group/visionflow/internal/model"
	"github.com/sells-group/visionflow/internal/procure"
	"github.com/sells-group/visionflow/internal/repo"
	"github.com/sells-group/visionflow/internal/resilience"
	"github.com/sells-group/visionflow/internal/vision"
)

type fakeAnalyzer struct {
	result map[string]any
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string, _ *fetch.Image) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newProcurementHandler(analyzer *fakeAnalyzer) http.Handler {
	seeds := repo.DefaultSeeds()
	svc := procure.New(
		analyzer,
		fetch.New(),
		repo.NewMemoryBudgets(seeds.Budgets),
		repo.NewMemoryPurchaseOrders(seeds.PurchaseOrders),
		repo.NewMemoryInventory(seeds.Inventory),
		repo.NewMemoryPaidInvoices(seeds.PaidInvoices),
	)
	return NewProcurementRouter(svc, true)
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestProcurementHealth(t *testing.T) {
	handler := newProcurementHandler(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "procurement_automation", body["service"])
	assert.Equal(t, true, body["model_configured"])
}

func TestExtractDocumentEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, 0o644))

	handler := newProcurementHandler(&fakeAnalyzer{result: map[string]any{
		"invoice_number": "INV-1",
		"total_amount":   100.0,
	}})

	rec := postJSON(t, handler, "/procurement/extract_document",
		`{"document_url":"`+path+`","document_type":"invoice"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "invoice", body["document_type"])
	assert.Equal(t, 0.95, body["confidence"])
}

func TestExtractDocumentBadType(t *testing.T) {
	handler := newProcurementHandler(&fakeAnalyzer{})

	rec := postJSON(t, handler, "/procurement/extract_document",
		`{"document_url":"x.png","document_type":"contract"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckBudgetEndpoint(t *testing.T) {
	handler := newProcurementHandler(&fakeAnalyzer{})

	rec := postJSON(t, handler, "/procurement/check_budget",
		`{"department":"IT","amount":3000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["approval_required"])
	assert.Equal(t, "COMPLIANT", body["compliance_status"])
}

func TestCreateAndMatchEndpoints(t *testing.T) {
	handler := newProcurementHandler(&fakeAnalyzer{})

	rec := postJSON(t, handler, "/procurement/create_po",
		`{"requisition_data":{"total_estimated_cost":200,"line_items":[{"description":"Chairs","quantity":2,"estimated_price":100}]},"vendor_name":"Acme","department":"IT"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeBody(t, rec)
	poNumber, _ := created["po_number"].(string)
	require.NotEmpty(t, poNumber)

	rec = postJSON(t, handler, "/procurement/match_invoice",
		`{"invoice_data":{"invoice_number":"INV-9","total_amount":200,"line_items":[{"description":"Chairs","quantity":2,"unit_price":100}]},"po_number":"`+poNumber+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	matched := decodeBody(t, rec)
	assert.Equal(t, "MATCHED", matched["match_status"])
}

func TestApprovePaymentEndpoint(t *testing.T) {
	handler := newProcurementHandler(&fakeAnalyzer{})

	rec := postJSON(t, handler, "/procurement/approve_payment",
		`{"invoice_id":"INV-12345","invoice_data":{"invoice_number":"INV-12345","total_amount":100},"match_result":{"match_status":"MATCHED"},"approval_status":"APPROVED"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "REJECTED", body["status"])
	assert.Equal(t, true, body["duplicate_detected"])
}

func TestInventoryEndpoints(t *testing.T) {
	handler := newProcurementHandler(&fakeAnalyzer{})

	rec := postJSON(t, handler, "/inventory/check_stock", `{"sku":"MONITOR-003"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OUT_OF_STOCK", decodeBody(t, rec)["status"])

	rec = postJSON(t, handler, "/inventory/reallocate",
		`{"from_warehouse":"WH-1","to_warehouse":"WH-2","sku":"KEYBOARD-004","quantity":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50.0, decodeBody(t, rec)["estimated_cost"])

	rec = postJSON(t, handler, "/inventory/adjust",
		`{"sku":"DESK-LAMP-002","warehouse_id":"WH-1","adjustment_type":"RECEIVED","quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 13.0, decodeBody(t, rec)["new_stock"])

	rec = postJSON(t, handler, "/inventory/optimize", `{"warehouse_id":"WH-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 500.0, decodeBody(t, rec)["estimated_savings"])
}

func TestInvalidJSONBody(t *testing.T) {
	handler := newProcurementHandler(&fakeAnalyzer{})

	rec := postJSON(t, handler, "/inventory/check_stock", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", model.Validationf("bad input"), http.StatusBadRequest},
		{"retries exhausted", &resilience.RetriesExhaustedError{Attempts: 3, LastErr: errors.New("429")}, http.StatusTooManyRequests},
		{"malformed response", &coerce.MalformedResponseError{Snippet: "oops"}, http.StatusBadGateway},
		{"not configured", vision.ErrNotConfigured, http.StatusServiceUnavailable},
		{"timeout", &fetch.TimeoutError{Source: "http://x", Err: errors.New("deadline")}, http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), "detail")
		})
	}
}
