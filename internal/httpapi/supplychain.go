package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/visionflow/internal/chat"
	"github.com/sells-group/visionflow/internal/fetch"
	"github.com/sells-group/visionflow/internal/inspect"
	"github.com/sells-group/visionflow/internal/ops"
)

const maxUploadBytes = 32 << 20

// NewSupplychainRouter builds the supply-chain service's HTTP surface.
func NewSupplychainRouter(inspectSvc *inspect.Service, opsSvc *ops.Service, chatSvc *chat.Service, modelConfigured bool) http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware())

	r.Post("/inspect/box", func(w http.ResponseWriter, req *http.Request) {
		boxReq, ok := parseBoxRequest(w, req)
		if !ok {
			return
		}
		result, err := inspectSvc.InspectBox(req.Context(), boxReq)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/inspect/batch", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			ImageURLs []string `json:"image_urls"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		summary, err := inspectSvc.InspectBatch(req.Context(), body.ImageURLs)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	})

	r.Get("/shipments/{shipmentID}/history", func(w http.ResponseWriter, req *http.Request) {
		events, err := inspectSvc.History(req.Context(), chi.URLParam(req, "shipmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"shipment_id": chi.URLParam(req, "shipmentID"),
			"events":      events,
		})
	})

	r.Post("/vas/verify_label", func(w http.ResponseWriter, req *http.Request) {
		labelReq, ok := parseLabelRequest(w, req)
		if !ok {
			return
		}
		result, err := inspectSvc.VerifyLabel(req.Context(), labelReq)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/wms/check", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			OrderID string `json:"order_id"`
			SKU     string `json:"sku"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := opsSvc.CheckWMS(req.Context(), body.OrderID, body.SKU)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/ops/handle_exception", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			OrderID       string `json:"order_id"`
			ExceptionType string `json:"exception_type"`
			Details       string `json:"details"`
			StationID     string `json:"station_id"`
			VendorID      string `json:"vendor_id"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := opsSvc.HandleException(req.Context(), ops.ExceptionRequest{
			OrderID:       body.OrderID,
			ExceptionType: body.ExceptionType,
			Details:       body.Details,
			StationID:     body.StationID,
			VendorID:      body.VendorID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/chat", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Message string         `json:"message"`
			Context map[string]any `json:"context"`
		}
		if !decodeJSON(w, req, &body) {
			return
		}
		result, err := chatSvc.Chat(req.Context(), body.Message, body.Context)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":                 "healthy",
			"version":                "1.0.0",
			"model_configured":       modelConfigured,
			"orchestrate_configured": chatSvc.Configured(),
			"endpoints": []string{
				"/inspect/box - Box condition inspection",
				"/inspect/batch - Batch box inspection",
				"/vas/verify_label - VAS label verification",
				"/wms/check - WMS order check",
				"/ops/handle_exception - Exception handling",
				"/chat - Chat with the Hub Director",
			},
		})
	})

	return r
}

// parseBoxRequest accepts either a JSON body or a multipart form with a file
// upload, matching what the orchestration channel and the demo UI each send.
func parseBoxRequest(w http.ResponseWriter, req *http.Request) (inspect.BoxRequest, bool) {
	if isJSON(req) {
		var body struct {
			ImageURL    string         `json:"image_url"`
			ShipmentID  string         `json:"shipment_id"`
			Priority    string         `json:"priority"`
			Temperature *float64       `json:"temperature"`
			Dimensions  map[string]any `json:"dimensions"`
		}
		if !decodeJSON(w, req, &body) {
			return inspect.BoxRequest{}, false
		}
		return inspect.BoxRequest{
			ImageURL:    body.ImageURL,
			ShipmentID:  body.ShipmentID,
			Priority:    body.Priority,
			Temperature: body.Temperature,
			Dimensions:  body.Dimensions,
		}, true
	}

	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid form data: " + err.Error()})
		return inspect.BoxRequest{}, false
	}

	boxReq := inspect.BoxRequest{
		ImageURL:   req.FormValue("image_url"),
		ShipmentID: req.FormValue("shipment_id"),
		Priority:   req.FormValue("priority"),
	}
	if v := req.FormValue("temperature"); v != "" {
		if temp, err := strconv.ParseFloat(v, 64); err == nil {
			boxReq.Temperature = &temp
		}
	}
	if v := req.FormValue("dimensions_str"); v != "" {
		var dims map[string]any
		if err := json.Unmarshal([]byte(v), &dims); err == nil {
			boxReq.Dimensions = dims
		}
	}

	img, ok := formImage(w, req)
	if !ok {
		return inspect.BoxRequest{}, false
	}
	boxReq.Image = img
	return boxReq, true
}

func parseLabelRequest(w http.ResponseWriter, req *http.Request) (inspect.LabelRequest, bool) {
	if isJSON(req) {
		var body struct {
			ImageURL       string   `json:"image_url"`
			StationID      string   `json:"station_id"`
			OrderID        string   `json:"order_id"`
			ExpectedSKU    string   `json:"expected_sku"`
			KittingList    []string `json:"kitting_list"`
			AestheticCheck bool     `json:"aesthetic_check"`
		}
		if !decodeJSON(w, req, &body) {
			return inspect.LabelRequest{}, false
		}
		return inspect.LabelRequest{
			ImageURL:       body.ImageURL,
			StationID:      body.StationID,
			OrderID:        body.OrderID,
			ExpectedSKU:    body.ExpectedSKU,
			KittingList:    body.KittingList,
			AestheticCheck: body.AestheticCheck,
		}, true
	}

	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid form data: " + err.Error()})
		return inspect.LabelRequest{}, false
	}

	labelReq := inspect.LabelRequest{
		ImageURL:    req.FormValue("image_url"),
		StationID:   req.FormValue("station_id"),
		OrderID:     req.FormValue("order_id"),
		ExpectedSKU: req.FormValue("expected_sku"),
	}
	if v := req.FormValue("kitting_list_str"); v != "" {
		var list []string
		if err := json.Unmarshal([]byte(v), &list); err == nil {
			labelReq.KittingList = list
		}
	}
	if v := req.FormValue("aesthetic_check"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			labelReq.AestheticCheck = b
		}
	}

	img, ok := formImage(w, req)
	if !ok {
		return inspect.LabelRequest{}, false
	}
	labelReq.Image = img
	return labelReq, true
}

// formImage reads the optional "file" upload. A missing file is fine; the
// handler falls back to image_url.
func formImage(w http.ResponseWriter, req *http.Request) (*fetch.Image, bool) {
	file, header, err := req.FormFile("file")
	if err == http.ErrMissingFile {
		return nil, true
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid file upload: " + err.Error()})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "read file upload: " + err.Error()})
		return nil, false
	}
	return fetch.FromBytes(data, header.Header.Get("Content-Type"), header.Filename), true
}

func isJSON(req *http.Request) bool {
	return strings.Contains(strings.ToLower(req.Header.Get("Content-Type")), "application/json")
}
