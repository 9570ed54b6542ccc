package model

import "time"

// MatchStatus is the outcome of reconciling two or three documents.
// Transitions are downgrade-only: once a rule lowers the status, later rules
// never raise it back.
type MatchStatus string

const (
	Matched      MatchStatus = "MATCHED"
	PartialMatch MatchStatus = "PARTIAL_MATCH"
	Mismatch     MatchStatus = "MISMATCH"
)

// rank orders statuses from best to worst for downgrade comparisons.
func (s MatchStatus) rank() int {
	switch s {
	case Matched:
		return 0
	case PartialMatch:
		return 1
	default:
		return 2
	}
}

// WorseThan reports whether s is a lower (worse) status than other.
func (s MatchStatus) WorseThan(other MatchStatus) bool {
	return s.rank() > other.rank()
}

// MatchResult is the reconciliation record for an invoice against a PO and,
// optionally, a goods receipt.
type MatchResult struct {
	MatchStatus     MatchStatus `json:"match_status"`
	PONumber        string      `json:"po_number"`
	InvoiceNumber   string      `json:"invoice_number"`
	Discrepancies   []string    `json:"discrepancies"`
	MatchConfidence float64     `json:"match_confidence"`
	Timestamp       time.Time   `json:"timestamp"`
}
