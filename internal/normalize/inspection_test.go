package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/visionflow/internal/model"
)

func ptr(f float64) *float64 { return &f }

func goodRaw() map[string]any {
	return map[string]any{
		"box_condition":    "GOOD",
		"can_ship":         true,
		"volumetric_check": "PASS",
		"reasoning":        "No visible damage.",
		"findings":         []any{},
	}
}

func TestInspectionCleanBox(t *testing.T) {
	r := Inspection(goodRaw(), "SHIP-1", nil, DefaultInspectionPolicy())
	assert.Equal(t, "SHIP-1", r.ShipmentID)
	assert.Equal(t, model.ConditionGood, r.BoxCondition)
	assert.True(t, r.CanShip)
	assert.False(t, r.ConditionalAcceptance)
	assert.Zero(t, r.TotalDefects)
}

func TestInspectionCriticalFindingOverrides(t *testing.T) {
	raw := map[string]any{
		"box_condition": "DAMAGED",
		"can_ship":      true, // model is wrong; the override corrects it
		"findings": []any{
			map[string]any{"defect_type": "crush", "severity": "CRITICAL", "location": "corner", "confidence": 0.95},
		},
	}
	r := Inspection(raw, "SHIP-2", nil, DefaultInspectionPolicy())
	assert.Equal(t, model.ConditionCritical, r.BoxCondition)
	assert.False(t, r.CanShip)
	assert.False(t, r.ConditionalAcceptance)
	assert.Equal(t, 1, r.TotalDefects)
}

func TestInspectionTemperatureExcursion(t *testing.T) {
	for _, temp := range []float64{14.9, 25.1, -5, 40} {
		r := Inspection(goodRaw(), "SHIP-3", ptr(temp), DefaultInspectionPolicy())
		require.Len(t, r.Findings, 1, "temp %.1f", temp)

		f := r.Findings[0]
		assert.Equal(t, "temperature_excursion", f.DefectType)
		assert.Equal(t, model.SeverityCritical, f.Severity)
		assert.Equal(t, "internal_sensor", f.Location)
		assert.Equal(t, 1.0, f.Confidence)
		assert.Equal(t, "Reject - Temp Spoilage", f.RecommendedAction)

		assert.Equal(t, model.ConditionCritical, r.BoxCondition)
		assert.False(t, r.CanShip)
		assert.False(t, r.ConditionalAcceptance)
	}
}

func TestInspectionTemperatureBandInclusive(t *testing.T) {
	for _, temp := range []float64{15, 20, 25} {
		r := Inspection(goodRaw(), "SHIP-4", ptr(temp), DefaultInspectionPolicy())
		assert.Empty(t, r.Findings, "temp %.1f", temp)
		assert.True(t, r.CanShip)
	}
}

func TestInspectionMediumConditionalAcceptance(t *testing.T) {
	raw := map[string]any{
		"box_condition": "DAMAGED",
		"can_ship":      false,
		"findings": []any{
			map[string]any{"defect_type": "scuff", "severity": "MEDIUM", "location": "side", "confidence": 0.8},
		},
	}
	r := Inspection(raw, "SHIP-5", nil, DefaultInspectionPolicy())
	assert.True(t, r.ConditionalAcceptance)
	assert.False(t, r.CanShip)
	assert.Equal(t, model.ConditionDamaged, r.BoxCondition)
}

func TestInspectionHighSeverityNoAcceptance(t *testing.T) {
	raw := map[string]any{
		"box_condition": "DAMAGED",
		"can_ship":      false,
		"findings": []any{
			map[string]any{"defect_type": "tear", "severity": "HIGH", "location": "top", "confidence": 0.9},
		},
	}
	r := Inspection(raw, "SHIP-6", nil, DefaultInspectionPolicy())
	assert.False(t, r.ConditionalAcceptance)
	assert.False(t, r.CanShip)
}

func TestInspectionUnknownSeverityDefaultsMedium(t *testing.T) {
	findings := Findings([]any{
		map[string]any{"defect_type": "dent", "severity": "catastrophic"},
	})
	require.Len(t, findings, 1)
	assert.Equal(t, model.SeverityMedium, findings[0].Severity)
}

func TestInspectionVolumetricDefault(t *testing.T) {
	r := Inspection(map[string]any{"box_condition": "GOOD", "can_ship": true}, "SHIP-7", nil, DefaultInspectionPolicy())
	assert.Equal(t, "PASS", r.VolumetricCheck)
}

func TestFindingConfidenceDefault(t *testing.T) {
	findings := Findings([]any{
		map[string]any{"defect_type": "scuff", "severity": "LOW"},
	})
	require.Len(t, findings, 1)
	assert.Equal(t, 0.8, findings[0].Confidence)
}
