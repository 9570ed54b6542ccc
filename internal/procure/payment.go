package procure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/visionflow/internal/model"
	"github.com/sells-group/visionflow/internal/normalize"
)

// PaymentResult is the outcome of a payment approval decision.
type PaymentResult struct {
	PaymentID         string    `json:"payment_id"`
	InvoiceID         string    `json:"invoice_id"`
	Status            string    `json:"status"` // APPROVED, ON_HOLD, REJECTED
	PaymentAmount     float64   `json:"payment_amount"`
	PaymentDate       string    `json:"payment_date,omitempty"`
	DuplicateDetected bool      `json:"duplicate_detected"`
	ExceptionReason   string    `json:"exception_reason,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// ApprovePayment decides whether an invoice gets paid. A duplicate invoice is
// always rejected; explicit HOLD/REJECTED decisions pass through; otherwise
// payment auto-approves only on a full match.
func (s *Service) ApprovePayment(ctx context.Context, invoiceID string, invoiceData map[string]any, matchResult model.MatchResult, approvalStatus string) (*PaymentResult, error) {
	if invoiceID == "" {
		return nil, model.Validationf("invoice_id is required")
	}

	invoiceNumber := normalize.Ident(invoiceData["invoice_number"])
	duplicate := false
	if invoiceNumber != "UNKNOWN" {
		var err error
		duplicate, err = s.paid.IsPaid(ctx, invoiceNumber)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	result := &PaymentResult{
		PaymentID:         fmt.Sprintf("PAY-%s-%s", now.Format("20060102150405"), uuid.NewString()[:8]),
		InvoiceID:         invoiceID,
		PaymentAmount:     normalize.Amount(invoiceData["total_amount"]),
		DuplicateDetected: duplicate,
		Timestamp:         now,
	}

	switch {
	case duplicate:
		result.Status = "REJECTED"
		result.ExceptionReason = "Duplicate invoice detected"
	case approvalStatus == "HOLD":
		result.Status = "ON_HOLD"
		result.ExceptionReason = holdReason(matchResult)
	case approvalStatus == "REJECTED":
		result.Status = "REJECTED"
		result.ExceptionReason = "Manually rejected"
	case matchResult.MatchStatus == model.Matched:
		result.Status = "APPROVED"
		result.PaymentDate = now.Format("2006-01-02")
		if invoiceNumber != "UNKNOWN" {
			if err := s.paid.MarkPaid(ctx, invoiceNumber); err != nil {
				return nil, err
			}
		}
	default:
		result.Status = "ON_HOLD"
		result.ExceptionReason = "Mismatch detected - requires review"
	}

	s.log.Info("payment decision",
		zap.String("invoice_id", invoiceID),
		zap.String("status", result.Status),
		zap.Bool("duplicate", duplicate))

	return result, nil
}

func holdReason(matchResult model.MatchResult) string {
	if len(matchResult.Discrepancies) > 0 {
		return strings.Join(matchResult.Discrepancies, "; ")
	}
	return "Manual review required"
}
