package model

import "time"

// Severity grades a defect finding.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// rank orders severities from benign to worst.
func (s Severity) rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	}
	return 1 // unknown severities are treated as MEDIUM
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.rank() >= other.rank()
}

// BoxCondition is the overall condition assessment of an inspected box.
type BoxCondition string

const (
	ConditionGood     BoxCondition = "GOOD"
	ConditionDamaged  BoxCondition = "DAMAGED"
	ConditionCritical BoxCondition = "CRITICAL"
	ConditionUnknown  BoxCondition = "UNKNOWN"
)

// DefectFinding is a single defect identified during box inspection.
type DefectFinding struct {
	DefectType        string   `json:"defect_type"`
	Severity          Severity `json:"severity"`
	Location          string   `json:"location"`
	Confidence        float64  `json:"confidence"`
	RecommendedAction string   `json:"recommended_action"`
}

// InspectionResult is the full outcome of a box inspection. BoxCondition and
// CanShip are derived fields and must stay consistent with the worst severity
// present in Findings; normalize.Inspection enforces that.
type InspectionResult struct {
	ShipmentID            string          `json:"shipment_id"`
	Timestamp             time.Time       `json:"timestamp"`
	BoxCondition          BoxCondition    `json:"box_condition"`
	TotalDefects          int             `json:"total_defects"`
	Findings              []DefectFinding `json:"findings"`
	CanShip               bool            `json:"can_ship"`
	ConditionalAcceptance bool            `json:"conditional_acceptance"`
	VolumetricCheck       string          `json:"volumetric_check"`
	Reasoning             string          `json:"reasoning"`
}

// LabelAction is the line-side action demanded by a label verification,
// chosen by first-matching rule in this priority order.
type LabelAction string

const (
	ActionPass            LabelAction = "PASS"
	ActionStopLine        LabelAction = "STOP_LINE"
	ActionStopLineKitting LabelAction = "STOP_LINE_KITTING_FAIL"
	ActionRejectQuality   LabelAction = "REJECT_QUALITY"
	ActionRelabel         LabelAction = "RELABEL"
)

// LabelMatchResult is the outcome of a VAS label verification: OCR'd label
// text versus the physical object in the package.
type LabelMatchResult struct {
	OrderID         string      `json:"order_id"`
	StationID       string      `json:"station_id"`
	Timestamp       time.Time   `json:"timestamp"`
	LabelText       string      `json:"label_text"`
	VisualObject    string      `json:"visual_object"`
	Match           bool        `json:"match"`
	KittingVerified bool        `json:"kitting_verified"`
	AestheticScore  float64     `json:"aesthetic_score"`
	Confidence      float64     `json:"confidence"`
	ActionRequired  LabelAction `json:"action_required"`
	Reasoning       string      `json:"reasoning"`
}

// BatchInspectionSummary aggregates a batch of box inspections.
type BatchInspectionSummary struct {
	TotalBoxes   int                `json:"total_boxes"`
	GoodBoxes    int                `json:"good_boxes"`
	DamagedBoxes int                `json:"damaged_boxes"`
	CanShipCount int                `json:"can_ship_count"`
	ShipRate     string             `json:"ship_rate"`
	Results      []InspectionResult `json:"results"`
}
