// Package inspect implements the supply-chain vision operations: box
// inspection (single and batch) and VAS label verification. Every box
// inspection, successful or not, is appended to the shipment history log.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/sells-group/visionflow/internal/fetch"
	"github.com/sells-group/visionflow/internal/history"
	"github.com/sells-group/visionflow/internal/model"
	"github.com/sells-group/visionflow/internal/normalize"
	"github.com/sells-group/visionflow/internal/vision"
)

// Service carries the supply-chain inspection operations.
type Service struct {
	analyzer    vision.ImageAnalyzer
	fetcher     *fetch.Fetcher
	history     history.Log
	boxPolicy   normalize.InspectionPolicy
	labelPolicy normalize.LabelPolicy
	batchLimit  int
	log         *zap.Logger
}

// Options tunes the Service. Zero values use the defaults.
type Options struct {
	BoxPolicy   normalize.InspectionPolicy
	LabelPolicy normalize.LabelPolicy
	BatchLimit  int
}

// New wires an inspection Service.
func New(analyzer vision.ImageAnalyzer, fetcher *fetch.Fetcher, log history.Log, opts Options) *Service {
	if opts.BoxPolicy == (normalize.InspectionPolicy{}) {
		opts.BoxPolicy = normalize.DefaultInspectionPolicy()
	}
	if opts.LabelPolicy == (normalize.LabelPolicy{}) {
		opts.LabelPolicy = normalize.DefaultLabelPolicy()
	}
	if opts.BatchLimit <= 0 {
		opts.BatchLimit = 4
	}
	return &Service{
		analyzer:    analyzer,
		fetcher:     fetcher,
		history:     log,
		boxPolicy:   opts.BoxPolicy,
		labelPolicy: opts.LabelPolicy,
		batchLimit:  opts.BatchLimit,
		log:         zap.L().Named("inspect"),
	}
}

// BoxRequest is a box inspection job. Image takes precedence over ImageURL
// when both are set (multipart uploads arrive pre-loaded).
type BoxRequest struct {
	Image       *fetch.Image
	ImageURL    string
	ShipmentID  string
	Priority    string
	Temperature *float64
	Dimensions  map[string]any
}

// InspectBox inspects a single box image and records the request and outcome
// in the shipment history.
func (s *Service) InspectBox(ctx context.Context, req BoxRequest) (*model.InspectionResult, error) {
	if req.Image == nil && req.ImageURL == "" {
		return nil, model.Validationf("no image provided (file or image_url required)")
	}
	shipmentID := req.ShipmentID
	if shipmentID == "" {
		shipmentID = fmt.Sprintf("SHIP-%04d", 1000+rand.Intn(9000))
	}
	priority := req.Priority
	if priority == "" {
		priority = "STANDARD"
	}

	s.append(ctx, history.Event{
		ShipmentID: shipmentID,
		Kind:       "inspection_requested",
		Detail:     map[string]any{"priority": priority},
	})

	img := req.Image
	if img == nil {
		var err error
		img, err = s.fetcher.Get(ctx, req.ImageURL)
		if err != nil {
			s.appendFailure(ctx, shipmentID, err)
			var tErr *fetch.TimeoutError
			if errors.As(err, &tErr) {
				return nil, err
			}
			return nil, model.Validationf("failed to load image from %s: %v", req.ImageURL, err)
		}
	}

	prompt := boxPrompt(req.Temperature, s.boxPolicy.TempMin, s.boxPolicy.TempMax, req.Dimensions)
	raw, err := s.analyzer.Analyze(ctx, prompt, img)
	if err != nil {
		s.appendFailure(ctx, shipmentID, err)
		return nil, err
	}

	result := normalize.Inspection(raw, shipmentID, req.Temperature, s.boxPolicy)

	s.append(ctx, history.Event{
		ShipmentID: shipmentID,
		Kind:       "inspection_completed",
		Detail: map[string]any{
			"box_condition": string(result.BoxCondition),
			"can_ship":      result.CanShip,
			"total_defects": result.TotalDefects,
		},
	})

	s.log.Info("box inspected",
		zap.String("shipment_id", shipmentID),
		zap.String("box_condition", string(result.BoxCondition)),
		zap.Bool("can_ship", result.CanShip),
		zap.Int("total_defects", result.TotalDefects))

	return &result, nil
}

// History returns the recorded inspection events for a shipment.
func (s *Service) History(ctx context.Context, shipmentID string) ([]history.Event, error) {
	if shipmentID == "" {
		return nil, model.Validationf("shipment_id is required")
	}
	return s.history.Events(ctx, shipmentID)
}

func (s *Service) append(ctx context.Context, event history.Event) {
	if err := s.history.Append(ctx, event); err != nil {
		s.log.Warn("history append failed",
			zap.String("shipment_id", event.ShipmentID),
			zap.String("kind", event.Kind),
			zap.Error(err))
	}
}

func (s *Service) appendFailure(ctx context.Context, shipmentID string, cause error) {
	s.append(ctx, history.Event{
		ShipmentID: shipmentID,
		Kind:       "inspection_failed",
		Detail:     map[string]any{"error": cause.Error()},
	})
}

// LabelRequest is a VAS label verification job.
type LabelRequest struct {
	Image          *fetch.Image
	ImageURL       string
	StationID      string
	OrderID        string
	ExpectedSKU    string
	KittingList    []string
	AestheticCheck bool
}

// VerifyLabel checks that the shipping label matches the physical product in
// the package.
func (s *Service) VerifyLabel(ctx context.Context, req LabelRequest) (*model.LabelMatchResult, error) {
	if req.Image == nil && req.ImageURL == "" {
		return nil, model.Validationf("no image provided (file or image_url required)")
	}
	if req.StationID == "" {
		req.StationID = "Station-1"
	}
	if req.OrderID == "" {
		req.OrderID = "UNKNOWN"
	}

	img := req.Image
	if img == nil {
		var err error
		img, err = s.fetcher.Get(ctx, req.ImageURL)
		if err != nil {
			var tErr *fetch.TimeoutError
			if errors.As(err, &tErr) {
				return nil, err
			}
			return nil, model.Validationf("failed to load image from %s: %v", req.ImageURL, err)
		}
	}

	prompt := labelPrompt(req.ExpectedSKU, req.KittingList, req.AestheticCheck)
	raw, err := s.analyzer.Analyze(ctx, prompt, img)
	if err != nil {
		return nil, err
	}

	result := normalize.Label(raw, req.OrderID, req.StationID, req.AestheticCheck, s.labelPolicy)

	s.log.Info("label verified",
		zap.String("order_id", result.OrderID),
		zap.String("station_id", result.StationID),
		zap.Bool("match", result.Match),
		zap.String("action_required", string(result.ActionRequired)))

	return &result, nil
}
