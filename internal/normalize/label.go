package normalize

import (
	"time"

	"github.com/sells-group/visionflow/internal/model"
)

// LabelPolicy holds the thresholds for VAS label verification.
type LabelPolicy struct {
	AestheticMin  float64
	ConfidenceMin float64
}

// DefaultLabelPolicy matches station acceptance criteria.
func DefaultLabelPolicy() LabelPolicy {
	return LabelPolicy{AestheticMin: 0.9, ConfidenceMin: 0.7}
}

// Label normalizes a raw label-verification object and chooses the required
// station action. Rules are evaluated in priority order and the first match
// wins:
//
//	STOP_LINE               label text and visual object disagree
//	STOP_LINE_KITTING_FAIL  kitting could not be verified
//	REJECT_QUALITY          aesthetic check requested and score below minimum
//	RELABEL                 model confidence below minimum
//	PASS                    otherwise
func Label(m map[string]any, orderID, stationID string, aestheticCheck bool, policy LabelPolicy) model.LabelMatchResult {
	result := model.LabelMatchResult{
		OrderID:         orderID,
		StationID:       stationID,
		Timestamp:       time.Now().UTC(),
		LabelText:       Ident(m["label_text"]),
		VisualObject:    Ident(m["visual_object"]),
		Match:           Bool(m["match"], false),
		KittingVerified: Bool(m["kitting_verified"], true),
		AestheticScore:  Fraction(m["aesthetic_score"], 1.0),
		Confidence:      Fraction(m["confidence"], 0.8),
		Reasoning:       Str(m["reasoning"]),
	}

	switch {
	case !result.Match:
		result.ActionRequired = model.ActionStopLine
	case !result.KittingVerified:
		result.ActionRequired = model.ActionStopLineKitting
	case aestheticCheck && result.AestheticScore < policy.AestheticMin:
		result.ActionRequired = model.ActionRejectQuality
	case result.Confidence < policy.ConfidenceMin:
		result.ActionRequired = model.ActionRelabel
	default:
		result.ActionRequired = model.ActionPass
	}

	return result
}
