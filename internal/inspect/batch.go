package inspect

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/visionflow/internal/model"
)

// InspectBatch inspects several boxes concurrently. One failed inspection
// never aborts the batch; the failed slot becomes a CRITICAL placeholder so
// the ship rate reflects every requested box.
func (s *Service) InspectBatch(ctx context.Context, imageURLs []string) (*model.BatchInspectionSummary, error) {
	if len(imageURLs) == 0 {
		return nil, model.Validationf("image_urls array cannot be empty")
	}

	results := make([]model.InspectionResult, len(imageURLs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for i, url := range imageURLs {
		i, url := i, url
		g.Go(func() error {
			shipmentID := fmt.Sprintf("BATCH-%d", i+1)
			result, err := s.InspectBox(ctx, BoxRequest{
				ImageURL:   url,
				ShipmentID: shipmentID,
				Priority:   "STANDARD",
			})
			if err != nil {
				results[i] = model.InspectionResult{
					ShipmentID:   shipmentID,
					Timestamp:    time.Now().UTC(),
					BoxCondition: model.ConditionCritical,
					CanShip:      false,
					Findings:     []model.DefectFinding{},
					Reasoning:    fmt.Sprintf("Inspection failed: %v", err),
				}
				return nil
			}
			results[i] = *result
			return nil
		})
	}
	// workers never return errors; Wait only propagates context cancellation
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &model.BatchInspectionSummary{
		TotalBoxes: len(results),
		Results:    results,
	}
	for _, r := range results {
		switch r.BoxCondition {
		case model.ConditionGood:
			summary.GoodBoxes++
		case model.ConditionDamaged, model.ConditionCritical:
			summary.DamagedBoxes++
		}
		if r.CanShip {
			summary.CanShipCount++
		}
	}
	summary.ShipRate = fmt.Sprintf("%.1f%%", float64(summary.CanShipCount)/float64(len(results))*100)
	return summary, nil
}
