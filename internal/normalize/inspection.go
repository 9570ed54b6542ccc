package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/sells-group/visionflow/internal/model"
)

// InspectionPolicy holds the sensor thresholds applied after the model's own
// assessment. The safe band is inclusive on both ends.
type InspectionPolicy struct {
	TempMin float64
	TempMax float64
}

// DefaultInspectionPolicy is the cold-chain band for ambient goods.
func DefaultInspectionPolicy() InspectionPolicy {
	return InspectionPolicy{TempMin: 15, TempMax: 25}
}

// Findings normalizes the raw findings list from a box inspection.
func Findings(v any) []model.DefectFinding {
	raw, ok := v.([]any)
	if !ok {
		return []model.DefectFinding{}
	}
	findings := make([]model.DefectFinding, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		findings = append(findings, model.DefectFinding{
			DefectType:        Ident(m["defect_type"]),
			Severity:          severity(m["severity"]),
			Location:          Str(m["location"]),
			Confidence:        Fraction(m["confidence"], 0.8),
			RecommendedAction: Str(m["recommended_action"]),
		})
	}
	return findings
}

func severity(v any) model.Severity {
	switch model.Severity(strings.ToUpper(Str(v))) {
	case model.SeverityLow:
		return model.SeverityLow
	case model.SeverityHigh:
		return model.SeverityHigh
	case model.SeverityCritical:
		return model.SeverityCritical
	}
	return model.SeverityMedium
}

func boxCondition(v any) model.BoxCondition {
	switch model.BoxCondition(strings.ToUpper(Str(v))) {
	case model.ConditionGood:
		return model.ConditionGood
	case model.ConditionDamaged:
		return model.ConditionDamaged
	case model.ConditionCritical:
		return model.ConditionCritical
	}
	return model.ConditionUnknown
}

// Inspection normalizes a raw box-inspection object and applies the override
// rules that the model is not trusted with:
//
//   - any CRITICAL finding forces box_condition CRITICAL, can_ship false, and
//     clears conditional acceptance
//   - a sensor temperature outside the policy band appends a synthetic
//     temperature_excursion finding and applies the same override
//   - a worst severity of MEDIUM with the box judged unshippable grants
//     conditional acceptance (supervisor sign-off), leaving can_ship false
//
// temperature is nil when the request carried no sensor reading.
func Inspection(m map[string]any, shipmentID string, temperature *float64, policy InspectionPolicy) model.InspectionResult {
	result := model.InspectionResult{
		ShipmentID:            shipmentID,
		Timestamp:             time.Now().UTC(),
		BoxCondition:          boxCondition(m["box_condition"]),
		Findings:              Findings(m["findings"]),
		CanShip:               Bool(m["can_ship"], false),
		ConditionalAcceptance: Bool(m["conditional_acceptance"], false),
		VolumetricCheck:       Str(m["volumetric_check"]),
		Reasoning:             Str(m["reasoning"]),
	}
	if result.VolumetricCheck == "" {
		result.VolumetricCheck = "PASS"
	}

	if temperature != nil && (*temperature < policy.TempMin || *temperature > policy.TempMax) {
		result.Findings = append(result.Findings, model.DefectFinding{
			DefectType:        "temperature_excursion",
			Severity:          model.SeverityCritical,
			Location:          "internal_sensor",
			Confidence:        1.0,
			RecommendedAction: "Reject - Temp Spoilage",
		})
		result.Reasoning = strings.TrimSpace(result.Reasoning + fmt.Sprintf(
			" Sensor reading %.1f°C is outside the %.0f-%.0f°C safe band.",
			*temperature, policy.TempMin, policy.TempMax))
	}

	worst := model.SeverityLow
	for _, f := range result.Findings {
		if f.Severity.AtLeast(worst) {
			worst = f.Severity
		}
	}

	switch {
	case worst == model.SeverityCritical:
		result.BoxCondition = model.ConditionCritical
		result.CanShip = false
		result.ConditionalAcceptance = false
	case worst == model.SeverityMedium && !result.CanShip:
		result.ConditionalAcceptance = true
	}

	result.TotalDefects = len(result.Findings)
	return result
}
