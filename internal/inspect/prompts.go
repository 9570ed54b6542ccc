package inspect

import (
	"fmt"
	"strings"
)

const boxPromptTemplate = `You are a supply chain quality inspector analyzing a SHIPPING BOX.

TASK: Examine this box image and determine if it's safe to ship.

%s
%s

CHECK FOR:
1. STRUCTURAL DAMAGE (Critical): Crushed, torn, water damage.
2. COSMETIC DAMAGE (Minor): Scratches, dents that don't affect integrity.
3. LABELS: Readable and attached.

Return ONLY valid JSON:
{
    "box_condition": "GOOD|DAMAGED|CRITICAL",
    "can_ship": true or false,
    "conditional_acceptance": true or false,
    "volumetric_check": "PASS|FAIL",
    "findings": [
        {
            "defect_type": "crushed|torn|water_damage|missing_label|structural_damage|cosmetic_dent",
            "severity": "LOW|MEDIUM|HIGH|CRITICAL",
            "location": "describe where on the box",
            "confidence": 0.95,
            "recommended_action": "Ship as is|Repack|Reject"
        }
    ],
    "reasoning": "Brief explanation including IoT/Volumetric analysis if applicable"
}`

func boxPrompt(temperature *float64, tempMin, tempMax float64, dimensions map[string]any) string {
	iotContext := ""
	if temperature != nil {
		iotContext = fmt.Sprintf("IOT SENSOR DATA: Temperature is %.1f°C. (Safe range: %.0f-%.0f°C).",
			*temperature, tempMin, tempMax)
	}
	volumetricContext := ""
	if len(dimensions) > 0 {
		volumetricContext = fmt.Sprintf("DIMENSIONS: %v. Check for volumetric weight discrepancies.", dimensions)
	}
	return fmt.Sprintf(boxPromptTemplate, iotContext, volumetricContext)
}

const labelPromptTemplate = `You are a VAS (Value-Added Services) Quality Control Specialist on a repacking line.

YOUR CRITICAL TASK: Verify that the shipping label matches the physical product.

STEP 1 - READ THE LABEL (OCR):
- Extract ALL text visible on labels, barcodes, or packaging

STEP 2 - IDENTIFY THE PHYSICAL OBJECT:
- What product/item is actually in the package?
- Look for: Product color, size, type, visible features

STEP 3 - COMPARE AND VERIFY:
- Does the label text match what you see?
- %s

STEP 4 - SPECIAL CHECKS:
%s
%s

Return ONLY valid JSON:
{
    "label_text": "exact text read from label (OCR)",
    "visual_object": "description of what you see in the package",
    "match": true or false,
    "kitting_verified": true or false,
    "aesthetic_score": 0.95,
    "confidence": 0.95,
    "action_required": "PASS|STOP_LINE|RELABEL",
    "reasoning": "explain why match/mismatch"
}

CRITICAL: If label and object don't match, set match=false and action_required="STOP_LINE"`

func labelPrompt(expectedSKU string, kittingList []string, aestheticCheck bool) string {
	expected := ""
	if expectedSKU != "" {
		expected = "Expected SKU: " + expectedSKU
	}
	kitting := ""
	if len(kittingList) > 0 {
		kitting = "KITTING CHECK: Verify these items are present: " + strings.Join(kittingList, ", ") + "."
	}
	aesthetic := ""
	if aestheticCheck {
		aesthetic = "AESTHETIC CHECK: Look for minor scratches, dust, or packaging misalignment. Rate condition 0.0-1.0."
	}
	return fmt.Sprintf(labelPromptTemplate, expected, kitting, aesthetic)
}
